package services

import (
	"errors"
	"time"

	"candydash-backend/models"
	"candydash-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RouteService struct {
	db *gorm.DB
}

func NewRouteService(db *gorm.DB) *RouteService {
	return &RouteService{db: db}
}

// StopDetail is a stop joined with the customer display fields the route
// view needs.
type StopDetail struct {
	StopID          uuid.UUID  `json:"stop_id"`
	CustomerID      uuid.UUID  `json:"customer_id"`
	Name            string     `json:"name"`
	CustomerPhone   *string    `json:"customer_phone"`
	CustomerAddress *string    `json:"customer_address"`
	CustomerBalance int64      `json:"customer_balance_cents"`
	CustomerNotes   *string    `json:"customer_notes"`
	Completed       bool       `json:"completed"`
	CompletedAt     *time.Time `json:"completed_at"`
	Notes           *string    `json:"notes"`
	StopOrder       int        `json:"stop_order"`
}

// GetOrCreateRoute returns the route id for a calendar date, creating the
// route if absent. The insert is an atomic upsert keyed on route_date, so
// concurrent calls for the same date never create duplicates.
func (s *RouteService) GetOrCreateRoute(routeDate time.Time) (uuid.UUID, error) {
	day := utils.DateOnly(routeDate)

	route := models.Route{RouteDate: day}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "route_date"}},
		DoNothing: true,
	}).Create(&route).Error; err != nil {
		return uuid.Nil, err
	}

	var existing models.Route
	if err := s.db.First(&existing, "route_date = ?", day).Error; err != nil {
		return uuid.Nil, err
	}
	return existing.ID, nil
}

// AddCustomerToRoute schedules a customer on the route for the given date.
// No-op if the customer is already on that route. The next stop order is
// max+1; route sizes are small so a counter table is not worth it.
func (s *RouteService) AddCustomerToRoute(routeDate time.Time, customerID uuid.UUID) error {
	routeID, err := s.GetOrCreateRoute(routeDate)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.RouteStop{}).
		Where("route_id = ? AND customer_id = ?", routeID, customerID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var nextOrder int
	if err := s.db.Model(&models.RouteStop{}).
		Where("route_id = ?", routeID).
		Select("COALESCE(MAX(stop_order), -1) + 1").
		Scan(&nextOrder).Error; err != nil {
		return err
	}

	stop := models.RouteStop{
		RouteID:    routeID,
		CustomerID: customerID,
		StopOrder:  nextOrder,
	}
	return s.db.Create(&stop).Error
}

// StopsForDate returns the stops for a date ordered by stop_order. The route
// view depends on that ordering.
func (s *RouteService) StopsForDate(routeDate time.Time) ([]StopDetail, error) {
	day := utils.DateOnly(routeDate)

	var stops []StopDetail
	err := s.db.Table("route_stops AS rs").
		Select(`rs.id AS stop_id, rs.customer_id, c.name,
			c.phone AS customer_phone, c.address AS customer_address,
			c.balance_cents AS customer_balance, c.notes AS customer_notes,
			rs.completed, rs.completed_at, rs.notes, rs.stop_order`).
		Joins("JOIN routes r ON rs.route_id = r.id").
		Joins("JOIN customers c ON rs.customer_id = c.id").
		Where("r.route_date = ?", day).
		Order("rs.stop_order").
		Scan(&stops).Error
	return stops, err
}

// CompleteStop marks a stop completed and, in the same transaction, stamps
// the customer's last visit date and appends a Visit record. A missing stop
// id is a no-op, and so is an already-completed stop, so retries never append
// duplicate visits.
func (s *RouteService) CompleteStop(stopID uuid.UUID, asOf time.Time) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var stop models.RouteStop
		if err := tx.First(&stop, "id = ?", stopID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		res := tx.Model(&models.RouteStop{}).
			Where("id = ? AND completed = ?", stopID, false).
			Updates(map[string]interface{}{
				"completed":    true,
				"completed_at": asOf,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if err := tx.Model(&models.Customer{}).
			Where("id = ?", stop.CustomerID).
			Update("last_visit_at", utils.DateOnly(asOf)).Error; err != nil {
			return err
		}

		visit := models.Visit{
			CustomerID:  stop.CustomerID,
			RouteStopID: stopID,
			VisitedAt:   asOf,
		}
		return tx.Create(&visit).Error
	})
}

// RemoveStop is an unconditional, idempotent delete.
func (s *RouteService) RemoveStop(stopID uuid.UUID) error {
	return s.db.Delete(&models.RouteStop{}, "id = ?", stopID).Error
}

func (s *RouteService) UpdateStopNotes(stopID uuid.UUID, notes string) error {
	return s.db.Model(&models.RouteStop{}).
		Where("id = ?", stopID).
		Update("notes", utils.TrimToNil(notes)).Error
}
