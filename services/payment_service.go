package services

import (
	"errors"
	"time"

	"candydash-backend/models"
	"candydash-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// PaymentResult reports a recorded payment. Overpaid is a warning, not an
// error: the payment went through and the balance is now negative.
type PaymentResult struct {
	Payment              models.Payment
	CustomerName         string
	PreviousBalanceCents int64
	Overpaid             bool
}

// BalancesSummary is the balances page payload: customers owing money,
// largest first, plus roll-up totals.
type BalancesSummary struct {
	Customers           []models.Customer `json:"customers"`
	TotalCustomers      int               `json:"total_customers"`
	TotalOwedCents      int64             `json:"total_owed_cents"`
	LargestBalanceCents int64             `json:"largest_balance_cents"`
}

// RecordPayment inserts the payment row and decrements the customer's balance
// by the same amount within one transaction. Overpayment is accepted and
// flagged on the result; the balance goes negative.
func (s *PaymentService) RecordPayment(customerID uuid.UUID, amountCents int64, note string, receivedAt time.Time) (*PaymentResult, error) {
	if amountCents <= 0 {
		return nil, &ValidationError{Message: "payment amount must be greater than zero"}
	}

	var result PaymentResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.First(&customer, "id = ?", customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return err
		}

		result.CustomerName = customer.Name
		result.PreviousBalanceCents = customer.BalanceCents
		result.Overpaid = amountCents > customer.BalanceCents

		payment := models.Payment{
			CustomerID:  customerID,
			AmountCents: amountCents,
			Note:        utils.TrimToNil(note),
			ReceivedAt:  receivedAt,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		result.Payment = payment

		return tx.Model(&models.Customer{}).
			Where("id = ?", customerID).
			Update("balance_cents", gorm.Expr("balance_cents - ?", amountCents)).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *PaymentService) BalancesSummary() (*BalancesSummary, error) {
	var customers []models.Customer
	if err := s.db.Where("balance_cents > 0").
		Order("balance_cents DESC").
		Find(&customers).Error; err != nil {
		return nil, err
	}

	summary := BalancesSummary{
		Customers:      customers,
		TotalCustomers: len(customers),
	}
	for _, c := range customers {
		summary.TotalOwedCents += c.BalanceCents
	}
	if len(customers) > 0 {
		summary.LargestBalanceCents = customers[0].BalanceCents
	}
	return &summary, nil
}
