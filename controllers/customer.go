package controllers

import (
	"errors"
	"net/http"
	"time"

	"candydash-backend/config"
	"candydash-backend/services"
	"candydash-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerJSON is the wire shape the route and calendar modals consume.
type CustomerJSON struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Phone        *string   `json:"phone"`
	Address      *string   `json:"address"`
	BalanceCents int64     `json:"balance_cents"`
	LastVisitAt  *string   `json:"last_visit_at"`
}

func customerService() *services.CustomerService {
	return services.NewCustomerService(config.DB)
}

// GetCustomers retrieves all customers ordered by name
func GetCustomers(c *gin.Context) {
	customers, err := customerService().List()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GetCustomersJSON returns all customers in the compact shape used by
// in-page scripts, with the last visit as an ISO calendar date.
func GetCustomersJSON(c *gin.Context) {
	customers, err := customerService().List()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	out := make([]CustomerJSON, 0, len(customers))
	for _, cust := range customers {
		var lastVisit *string
		if cust.LastVisitAt != nil {
			formatted := cust.LastVisitAt.Format(time.DateOnly)
			lastVisit = &formatted
		}
		out = append(out, CustomerJSON{
			ID:           cust.ID,
			Name:         cust.Name,
			Phone:        cust.Phone,
			Address:      cust.Address,
			BalanceCents: cust.BalanceCents,
			LastVisitAt:  lastVisit,
		})
	}
	c.JSON(http.StatusOK, out)
}

// AddCustomer creates a customer from form fields
func AddCustomer(c *gin.Context) {
	balanceCents, err := utils.ParseAmountCents(c.DefaultPostForm("balance", "0"))
	if err != nil {
		balanceCents = 0
	}

	input := services.CreateCustomerInput{
		Name:         c.PostForm("name"),
		Phone:        c.PostForm("phone"),
		Address:      c.PostForm("address"),
		City:         c.PostForm("city"),
		ZipCode:      c.PostForm("zip_code"),
		Notes:        c.PostForm("notes"),
		BalanceCents: balanceCents,
	}

	if _, err := customerService().Create(input); err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			utils.RedirectWithFlash(c, "/customers", "error", "Name is required")
			return
		}
		utils.RedirectWithFlash(c, "/customers", "error", "Failed to add customer")
		return
	}

	utils.RedirectWithFlash(c, "/customers", "success", "Customer added successfully")
}

// EditCustomer partially updates a customer; only submitted fields change
func EditCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RedirectWithFlash(c, "/customers", "error", "Invalid customer ID")
		return
	}

	svc := customerService()
	customer, err := svc.Get(customerID)
	if err != nil {
		utils.RedirectWithFlash(c, "/customers", "error", "Failed to load customer")
		return
	}
	if customer == nil {
		utils.RedirectWithFlash(c, "/customers", "error", "Customer not found")
		return
	}

	var input services.UpdateCustomerInput
	if v, ok := c.GetPostForm("name"); ok {
		input.Name = &v
	}
	if v, ok := c.GetPostForm("phone"); ok {
		input.Phone = &v
	}
	if v, ok := c.GetPostForm("address"); ok {
		input.Address = &v
	}
	if v, ok := c.GetPostForm("city"); ok {
		input.City = &v
	}
	if v, ok := c.GetPostForm("zip_code"); ok {
		input.ZipCode = &v
	}
	if v, ok := c.GetPostForm("notes"); ok {
		input.Notes = &v
	}
	if v, ok := c.GetPostForm("balance"); ok {
		if cents, err := utils.ParseAmountCents(v); err == nil {
			input.BalanceCents = &cents
		}
	}

	changed, err := svc.Update(customerID, input)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			utils.RedirectWithFlash(c, "/customers", "error", "Name is required")
			return
		}
		utils.RedirectWithFlash(c, "/customers", "error", "Failed to update customer")
		return
	}

	if changed {
		utils.RedirectWithFlash(c, "/customers", "success", "Customer updated")
	} else {
		utils.RedirectWithFlash(c, "/customers", "info", "No changes made")
	}
}

// DeleteCustomer deletes a customer; deleting a missing id is a no-op
func DeleteCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RedirectWithFlash(c, "/customers", "error", "Invalid customer ID")
		return
	}

	if err := customerService().Delete(customerID); err != nil {
		utils.RedirectWithFlash(c, "/customers", "error", "Failed to delete customer")
		return
	}
	utils.RedirectWithFlash(c, "/customers", "success", "Customer deleted")
}
