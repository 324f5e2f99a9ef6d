package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Route is the set of stops planned for a single calendar date. One route per
// date, created implicitly the first time a stop is scheduled.
type Route struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	RouteDate time.Time `gorm:"type:date;uniqueIndex;not null"`

	Stops []RouteStop `gorm:"foreignKey:RouteID"`

	CreatedAt time.Time
}

func (r *Route) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// RouteStop is one scheduled customer visit within a day's route. StopOrder
// is assigned max+1 on insert; gaps are allowed and orders are never reused.
type RouteStop struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	RouteID    uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`

	StopOrder   int  `gorm:"not null;default:0"`
	Completed   bool `gorm:"not null;default:false"`
	CompletedAt *time.Time
	Notes       *string

	CreatedAt time.Time
}

func (s *RouteStop) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
