package services

import (
	"errors"
	"strings"

	"candydash-backend/models"
	"candydash-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

// CreateCustomerInput carries the raw form values for a new customer. Free
// text is trimmed and empty strings are stored as NULL.
type CreateCustomerInput struct {
	Name         string
	Phone        string
	Address      string
	City         string
	ZipCode      string
	Notes        string
	BalanceCents int64
}

// UpdateCustomerInput is a partial update: only non-nil fields are written.
type UpdateCustomerInput struct {
	Name         *string
	Phone        *string
	Address      *string
	City         *string
	ZipCode      *string
	Notes        *string
	BalanceCents *int64
}

func (s *CustomerService) List() ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.Order("name").Find(&customers).Error
	return customers, err
}

// Get returns (nil, nil) when the id does not exist.
func (s *CustomerService) Get(id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (s *CustomerService) Create(input CreateCustomerInput) (*models.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, &ValidationError{Message: "name is required"}
	}

	customer := models.Customer{
		Name:         name,
		Phone:        utils.TrimToNil(input.Phone),
		Address:      utils.TrimToNil(input.Address),
		City:         utils.TrimToNil(input.City),
		ZipCode:      utils.TrimToNil(input.ZipCode),
		Notes:        utils.TrimToNil(input.Notes),
		BalanceCents: input.BalanceCents,
	}

	if err := s.db.Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// Update writes only the supplied fields. The field set is assembled and
// validated before anything reaches the store. Returns whether any field was
// actually written.
func (s *CustomerService) Update(id uuid.UUID, input UpdateCustomerInput) (bool, error) {
	updates := map[string]interface{}{}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return false, &ValidationError{Message: "name is required"}
		}
		updates["name"] = name
	}
	if input.Phone != nil {
		updates["phone"] = utils.TrimToNil(*input.Phone)
	}
	if input.Address != nil {
		updates["address"] = utils.TrimToNil(*input.Address)
	}
	if input.City != nil {
		updates["city"] = utils.TrimToNil(*input.City)
	}
	if input.ZipCode != nil {
		updates["zip_code"] = utils.TrimToNil(*input.ZipCode)
	}
	if input.Notes != nil {
		updates["notes"] = utils.TrimToNil(*input.Notes)
	}
	if input.BalanceCents != nil {
		updates["balance_cents"] = *input.BalanceCents
	}

	if len(updates) == 0 {
		return false, nil
	}

	err := s.db.Model(&models.Customer{}).Where("id = ?", id).Updates(updates).Error
	return err == nil, err
}

// Delete is idempotent: deleting a missing id is a no-op.
func (s *CustomerService) Delete(id uuid.UUID) error {
	return s.db.Delete(&models.Customer{}, "id = ?", id).Error
}

// AdjustBalance applies a signed delta as a single arithmetic UPDATE so
// concurrent adjustments never lose writes.
func (s *CustomerService) AdjustBalance(id uuid.UUID, deltaCents int64) error {
	return s.db.Model(&models.Customer{}).
		Where("id = ?", id).
		Update("balance_cents", gorm.Expr("balance_cents + ?", deltaCents)).Error
}
