package controllers

import (
	"net/http"
	"time"

	"candydash-backend/config"
	"candydash-backend/services"
	"candydash-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PriorityCustomerJSON struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	BalanceCents   int64     `json:"balance_cents"`
	LastVisitAt    *string   `json:"last_visit_at"`
	DaysSinceVisit *int      `json:"days_since_visit"`
}

type NewCustomerJSON struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Phone        *string   `json:"phone"`
	Address      *string   `json:"address"`
	BalanceCents int64     `json:"balance_cents"`
	CreatedAt    string    `json:"created_at"`
}

type OverdueCustomerJSON struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Phone        *string   `json:"phone"`
	Address      *string   `json:"address"`
	BalanceCents int64     `json:"balance_cents"`
	LastVisitAt  *string   `json:"last_visit_at"`
	DaysSince    *int      `json:"days_since"`
}

func scheduleService() *services.ScheduleService {
	return services.NewScheduleService(config.DB)
}

func isoDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.DateOnly)
	return &formatted
}

// GetCalendar assembles the scheduling calendar view model: date ranges,
// scheduled routes, priority customers and visit analytics.
func GetCalendar(c *gin.Context) {
	now := time.Now()
	svc := scheduleService()

	priority, err := svc.PriorityCustomers(now)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load priority customers")
		return
	}
	priorityJSON := make([]PriorityCustomerJSON, 0, len(priority))
	for _, p := range priority {
		priorityJSON = append(priorityJSON, PriorityCustomerJSON{
			ID:             p.ID,
			Name:           p.Name,
			BalanceCents:   p.BalanceCents,
			LastVisitAt:    isoDate(p.LastVisitAt),
			DaysSinceVisit: p.DaysSinceVisit,
		})
	}

	analytics, err := svc.VisitAnalytics(now)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load visit analytics")
		return
	}

	neverVisited, err := svc.NeverVisitedCount()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count never-visited customers")
		return
	}

	scheduled, err := svc.ScheduledRoutes(now)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load scheduled routes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"today":             utils.DateOnly(now).Format(time.DateOnly),
		"week_dates":        svc.WeekDates(now),
		"month_dates":       svc.MonthDates(now),
		"scheduled_visits":  scheduled,
		"priority_visits":   priorityJSON,
		"visits_this_week":  analytics.VisitsThisWeek,
		"visits_this_month": analytics.VisitsThisMonth,
		"avg_per_week":      analytics.AvgPerWeek,
		"completion_rate":   analytics.CompletionRate,
		"never_visited":     neverVisited,
	})
}

// GetNewCustomers lists never-visited customers, newest first
func GetNewCustomers(c *gin.Context) {
	customers, err := scheduleService().NewCustomers()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load new customers")
		return
	}

	out := make([]NewCustomerJSON, 0, len(customers))
	for _, cust := range customers {
		out = append(out, NewCustomerJSON{
			ID:           cust.ID,
			Name:         cust.Name,
			Phone:        cust.Phone,
			Address:      cust.Address,
			BalanceCents: cust.BalanceCents,
			CreatedAt:    cust.CreatedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, out)
}

// GetOverdueCustomers lists customers past the visit cutoff, oldest first
func GetOverdueCustomers(c *gin.Context) {
	overdue, err := scheduleService().OverdueCustomers(time.Now())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load overdue customers")
		return
	}

	out := make([]OverdueCustomerJSON, 0, len(overdue))
	for _, o := range overdue {
		out = append(out, OverdueCustomerJSON{
			ID:           o.ID,
			Name:         o.Name,
			Phone:        o.Phone,
			Address:      o.Address,
			BalanceCents: o.BalanceCents,
			LastVisitAt:  isoDate(o.LastVisitAt),
			DaysSince:    o.DaysSince,
		})
	}
	c.JSON(http.StatusOK, out)
}

// GetCustomersByArea groups customers needing attention by city/zip
func GetCustomersByArea(c *gin.Context) {
	groups, err := scheduleService().CustomersByArea(time.Now())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to group customers by area")
		return
	}
	c.JSON(http.StatusOK, groups)
}
