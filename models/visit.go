package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Visit is an append-only record that a stop was actually completed. Written
// exactly once when a stop transitions to completed, never updated or deleted.
type Visit struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerID  uuid.UUID `gorm:"type:uuid;index;not null"`
	RouteStopID uuid.UUID `gorm:"type:uuid;index;not null"`
	VisitedAt   time.Time `gorm:"not null"`
}

func (v *Visit) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return
}
