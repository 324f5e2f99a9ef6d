package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"candydash-backend/config"
	"candydash-backend/services"
	"candydash-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func paymentService() *services.PaymentService {
	return services.NewPaymentService(config.DB)
}

// GetBalances lists customers with outstanding balances plus roll-up totals
func GetBalances(c *gin.Context) {
	summary, err := paymentService().BalancesSummary()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load balances")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// RecordPayment records a payment and decrements the customer's balance.
// Overpayment is allowed; the operator just gets a warning.
func RecordPayment(c *gin.Context) {
	customerIDStr := c.PostForm("customer_id")
	if customerIDStr == "" {
		utils.RedirectWithFlash(c, "/balances", "error", "Customer ID is required")
		return
	}
	customerID, err := uuid.Parse(customerIDStr)
	if err != nil {
		utils.RedirectWithFlash(c, "/balances", "error", "Customer not found")
		return
	}

	amountCents, err := utils.ParseAmountCents(c.DefaultPostForm("amount", "0"))
	if err != nil || amountCents <= 0 {
		utils.RedirectWithFlash(c, "/balances", "error", "Payment amount must be greater than zero")
		return
	}

	result, err := paymentService().RecordPayment(customerID, amountCents, c.PostForm("notes"), time.Now())
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			utils.RedirectWithFlash(c, "/balances", "error", "Customer not found")
			return
		}
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			utils.RedirectWithFlash(c, "/balances", "error", "Payment amount must be greater than zero")
			return
		}
		utils.RedirectWithFlash(c, "/balances", "error", "Failed to record payment")
		return
	}

	if result.Overpaid {
		utils.RedirectWithFlash(c, "/balances", "warning", fmt.Sprintf(
			"Payment amount ($%.2f) exceeds current balance ($%.2f). Balance will go negative.",
			float64(amountCents)/100, float64(result.PreviousBalanceCents)/100))
		return
	}
	utils.RedirectWithFlash(c, "/balances", "success", fmt.Sprintf(
		"Payment of $%.2f recorded for %s", float64(amountCents)/100, result.CustomerName))
}
