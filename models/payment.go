package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment is an append-only ledger row. Recording one decrements the
// customer's balance by the same amount inside a single transaction.
type Payment struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerID  uuid.UUID `gorm:"type:uuid;index;not null"`
	AmountCents int64     `gorm:"not null"`
	Note        *string
	ReceivedAt  time.Time `gorm:"not null"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
