package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key"`

	Name    string `gorm:"not null"`
	Phone   *string
	Address *string
	City    *string
	ZipCode *string
	Notes   *string

	// Amount owed in integer cents. Goes negative after overpayment.
	BalanceCents int64      `gorm:"not null;default:0"`
	LastVisitAt  *time.Time `gorm:"type:date"`

	// Deleting a customer takes their stop, visit and payment history with
	// them; the ledger has no meaning without its customer.
	Stops    []RouteStop `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Visits   []Visit     `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Payments []Payment   `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
