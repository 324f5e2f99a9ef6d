package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"candydash-backend/models"
	"candydash-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleService derives priority lists, overdue lists, calendar
// projections and visit analytics. It never mutates state; every operation
// takes an explicit as-of time so results are deterministic.
type ScheduleService struct {
	db *gorm.DB

	HighBalanceCents  int64
	PriorityLimit     int
	OverdueCutoffDays int
}

func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{
		db:                db,
		HighBalanceCents:  10000,
		PriorityLimit:     10,
		OverdueCutoffDays: 14,
	}
}

type PriorityCustomer struct {
	ID             uuid.UUID
	Name           string
	BalanceCents   int64
	LastVisitAt    *time.Time
	DaysSinceVisit *int
}

type OverdueCustomer struct {
	ID           uuid.UUID
	Name         string
	Phone        *string
	Address      *string
	BalanceCents int64
	LastVisitAt  *time.Time
	DaysSince    *int
}

type AreaCustomer struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	BalanceCents int64     `json:"balance_cents"`
	DaysSince    *int      `json:"days_since"`
}

// AreaGroup keeps the group ordering contract (largest group first, ties by
// area name) that a plain map cannot express.
type AreaGroup struct {
	Area      string         `json:"area"`
	Customers []AreaCustomer `json:"customers"`
}

type ScheduledVisit struct {
	CustomerName string `json:"customer_name"`
	Completed    bool   `json:"completed"`
}

type VisitAnalytics struct {
	VisitsThisWeek  int64   `json:"visits_this_week"`
	VisitsThisMonth int64   `json:"visits_this_month"`
	AvgPerWeek      float64 `json:"avg_per_week"`
	CompletionRate  float64 `json:"completion_rate"`
}

type DashboardStats struct {
	TotalCustomers       int64 `json:"total_customers"`
	CustomersOwing       int64 `json:"customers_owing"`
	TotalOwedCents       int64 `json:"total_owed_cents"`
	TotalStopsToday      int64 `json:"total_stops_today"`
	CompletedToday       int64 `json:"completed_today"`
	PaymentsToday        int64 `json:"payments_today"`
	CollectedTodayCents  int64 `json:"collected_today_cents"`
	WeeklyStops          int64 `json:"weekly_stops"`
	WeeklyCollectedCents int64 `json:"weekly_collected_cents"`
	NewCustomersWeek     int64 `json:"new_customers_week"`
}

type ActivityItem struct {
	Type         string    `json:"type"` // "completed" or "payment"
	CustomerName string    `json:"customer_name"`
	AmountCents  *int64    `json:"amount_cents,omitempty"`
	TimeAgo      string    `json:"time_ago"`
	Timestamp    time.Time `json:"timestamp"`
}

func priorityTier(c models.Customer, highBalance int64) int {
	switch {
	case c.LastVisitAt == nil:
		return 0
	case c.BalanceCents > highBalance:
		return 1
	default:
		return 2
	}
}

func daysSince(lastVisit *time.Time, asOf time.Time) *int {
	if lastVisit == nil {
		return nil
	}
	days := utils.DaysBetween(*lastVisit, asOf)
	return &days
}

// PriorityCustomers ranks customers worth visiting next: never-visited first,
// then high balances, then everyone else, oldest visit first within a tier.
func (s *ScheduleService) PriorityCustomers(asOf time.Time) ([]PriorityCustomer, error) {
	var customers []models.Customer
	if err := s.db.
		Where("balance_cents > 0 OR last_visit_at IS NULL").
		Find(&customers).Error; err != nil {
		return nil, err
	}

	sort.SliceStable(customers, func(i, j int) bool {
		ti, tj := priorityTier(customers[i], s.HighBalanceCents), priorityTier(customers[j], s.HighBalanceCents)
		if ti != tj {
			return ti < tj
		}
		vi, vj := customers[i].LastVisitAt, customers[j].LastVisitAt
		if vi == nil || vj == nil {
			return vi == nil && vj != nil
		}
		return vi.Before(*vj)
	})

	if len(customers) > s.PriorityLimit {
		customers = customers[:s.PriorityLimit]
	}

	ranked := make([]PriorityCustomer, 0, len(customers))
	for _, c := range customers {
		ranked = append(ranked, PriorityCustomer{
			ID:             c.ID,
			Name:           c.Name,
			BalanceCents:   c.BalanceCents,
			LastVisitAt:    c.LastVisitAt,
			DaysSinceVisit: daysSince(c.LastVisitAt, asOf),
		})
	}
	return ranked, nil
}

// NewCustomers lists never-visited customers, newest first.
func (s *ScheduleService) NewCustomers() ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.
		Where("last_visit_at IS NULL").
		Order("created_at DESC").
		Find(&customers).Error
	return customers, err
}

// OverdueCustomers returns customers whose last visit predates the cutoff
// window, or who have never been visited, oldest/never first.
func (s *ScheduleService) OverdueCustomers(asOf time.Time) ([]OverdueCustomer, error) {
	cutoff := utils.DateOnly(asOf).AddDate(0, 0, -s.OverdueCutoffDays)

	var customers []models.Customer
	if err := s.db.
		Where("last_visit_at < ? OR last_visit_at IS NULL", cutoff).
		Find(&customers).Error; err != nil {
		return nil, err
	}

	sort.SliceStable(customers, func(i, j int) bool {
		vi, vj := customers[i].LastVisitAt, customers[j].LastVisitAt
		if vi == nil || vj == nil {
			return vi == nil && vj != nil
		}
		return vi.Before(*vj)
	})

	overdue := make([]OverdueCustomer, 0, len(customers))
	for _, c := range customers {
		overdue = append(overdue, OverdueCustomer{
			ID:           c.ID,
			Name:         c.Name,
			Phone:        c.Phone,
			Address:      c.Address,
			BalanceCents: c.BalanceCents,
			LastVisitAt:  c.LastVisitAt,
			DaysSince:    daysSince(c.LastVisitAt, asOf),
		})
	}
	return overdue, nil
}

// NeverVisitedCount counts over the full customer set, not a ranked subset.
func (s *ScheduleService) NeverVisitedCount() (int64, error) {
	var count int64
	err := s.db.Model(&models.Customer{}).
		Where("last_visit_at IS NULL").
		Count(&count).Error
	return count, err
}

// CustomersByArea buckets customers needing attention (owing, never visited,
// or overdue) by city, falling back to zip code, then "Unknown". Groups come
// back largest first, ties alphabetically.
func (s *ScheduleService) CustomersByArea(asOf time.Time) ([]AreaGroup, error) {
	cutoff := utils.DateOnly(asOf).AddDate(0, 0, -s.OverdueCutoffDays)

	var customers []models.Customer
	if err := s.db.
		Where("balance_cents > 0 OR last_visit_at IS NULL OR last_visit_at < ?", cutoff).
		Order("city, zip_code, name").
		Find(&customers).Error; err != nil {
		return nil, err
	}

	grouped := map[string][]AreaCustomer{}
	for _, c := range customers {
		area := "Unknown"
		if c.City != nil {
			area = *c.City
		} else if c.ZipCode != nil {
			area = *c.ZipCode
		}

		address := "No address"
		if c.Address != nil {
			address = *c.Address
		}

		grouped[area] = append(grouped[area], AreaCustomer{
			ID:           c.ID,
			Name:         c.Name,
			Address:      address,
			BalanceCents: c.BalanceCents,
			DaysSince:    daysSince(c.LastVisitAt, asOf),
		})
	}

	groups := make([]AreaGroup, 0, len(grouped))
	for area, members := range grouped {
		groups = append(groups, AreaGroup{Area: area, Customers: members})
	}
	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i].Customers) != len(groups[j].Customers) {
			return len(groups[i].Customers) > len(groups[j].Customers)
		}
		return groups[i].Area < groups[j].Area
	})
	return groups, nil
}

// ScheduledRoutes projects the calendar window (7 days back through 60 days
// ahead of asOf) as a map keyed by ISO date. Dates without stops are absent
// from the map, never present with an empty list.
func (s *ScheduleService) ScheduledRoutes(asOf time.Time) (map[string][]ScheduledVisit, error) {
	day := utils.DateOnly(asOf)
	from := day.AddDate(0, 0, -7)
	to := day.AddDate(0, 0, 60)

	type scheduledRow struct {
		RouteDate time.Time
		Name      string
		Completed bool
	}
	var rows []scheduledRow
	if err := s.db.Table("route_stops AS rs").
		Select("r.route_date, c.name, rs.completed").
		Joins("JOIN routes r ON rs.route_id = r.id").
		Joins("JOIN customers c ON rs.customer_id = c.id").
		Where("r.route_date BETWEEN ? AND ?", from, to).
		Order("r.route_date, rs.stop_order").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	scheduled := map[string][]ScheduledVisit{}
	for _, row := range rows {
		key := row.RouteDate.Format(time.DateOnly)
		scheduled[key] = append(scheduled[key], ScheduledVisit{
			CustomerName: row.Name,
			Completed:    row.Completed,
		})
	}
	return scheduled, nil
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// VisitAnalytics computes trailing visit counts, the 4-week average and the
// 30-day completion rate. A window with zero stops yields a 0 rate.
func (s *ScheduleService) VisitAnalytics(asOf time.Time) (*VisitAnalytics, error) {
	day := utils.DateOnly(asOf)

	countVisitsSince := func(since time.Time) (int64, error) {
		var count int64
		err := s.db.Model(&models.Visit{}).
			Where("visited_at >= ?", since).
			Count(&count).Error
		return count, err
	}

	visitsWeek, err := countVisitsSince(day.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	visitsMonth, err := countVisitsSince(day.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}
	visitsFourWeeks, err := countVisitsSince(day.AddDate(0, 0, -28))
	if err != nil {
		return nil, err
	}

	monthAgo := day.AddDate(0, 0, -30)
	var totalStops, completedStops int64
	if err := s.db.Table("route_stops AS rs").
		Joins("JOIN routes r ON rs.route_id = r.id").
		Where("r.route_date >= ?", monthAgo).
		Count(&totalStops).Error; err != nil {
		return nil, err
	}
	if err := s.db.Table("route_stops AS rs").
		Joins("JOIN routes r ON rs.route_id = r.id").
		Where("r.route_date >= ? AND rs.completed = ?", monthAgo, true).
		Count(&completedStops).Error; err != nil {
		return nil, err
	}

	completionRate := 0.0
	if totalStops > 0 {
		completionRate = float64(completedStops) / float64(totalStops) * 100
	}

	return &VisitAnalytics{
		VisitsThisWeek:  visitsWeek,
		VisitsThisMonth: visitsMonth,
		AvgPerWeek:      round1(float64(visitsFourWeeks) / 4),
		CompletionRate:  round1(completionRate),
	}, nil
}

// WeekDates spans Monday through Sunday of the week containing asOf.
func (s *ScheduleService) WeekDates(asOf time.Time) []string {
	return utils.WeekDates(asOf)
}

// MonthDates spans the 1st through the last day of the month containing asOf.
func (s *ScheduleService) MonthDates(asOf time.Time) []string {
	return utils.MonthDates(asOf)
}

// DashboardStats rolls up the day's and week's numbers for the dashboard.
func (s *ScheduleService) DashboardStats(asOf time.Time) (*DashboardStats, error) {
	day := utils.DateOnly(asOf)
	tomorrow := day.AddDate(0, 0, 1)
	weekAgo := day.AddDate(0, 0, -7)

	stats := DashboardStats{}

	if err := s.db.Model(&models.Customer{}).Count(&stats.TotalCustomers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Customer{}).
		Where("balance_cents > 0").
		Count(&stats.CustomersOwing).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Customer{}).
		Select("COALESCE(SUM(balance_cents), 0)").
		Scan(&stats.TotalOwedCents).Error; err != nil {
		return nil, err
	}

	if err := s.db.Table("route_stops AS rs").
		Joins("JOIN routes r ON rs.route_id = r.id").
		Where("r.route_date = ?", day).
		Count(&stats.TotalStopsToday).Error; err != nil {
		return nil, err
	}
	if err := s.db.Table("route_stops AS rs").
		Joins("JOIN routes r ON rs.route_id = r.id").
		Where("r.route_date = ? AND rs.completed = ?", day, true).
		Count(&stats.CompletedToday).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Payment{}).
		Where("received_at >= ? AND received_at < ?", day, tomorrow).
		Count(&stats.PaymentsToday).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Payment{}).
		Where("received_at >= ? AND received_at < ?", day, tomorrow).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&stats.CollectedTodayCents).Error; err != nil {
		return nil, err
	}

	if err := s.db.Table("route_stops AS rs").
		Joins("JOIN routes r ON rs.route_id = r.id").
		Where("r.route_date >= ? AND rs.completed = ?", weekAgo, true).
		Count(&stats.WeeklyStops).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Payment{}).
		Where("received_at >= ?", weekAgo).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&stats.WeeklyCollectedCents).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Customer{}).
		Where("created_at >= ?", weekAgo).
		Count(&stats.NewCustomersWeek).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

func timeAgoLabel(asOf, t time.Time) string {
	hoursAgo := int(asOf.Sub(t).Hours())
	if hoursAgo > 0 {
		return fmt.Sprintf("%dh ago", hoursAgo)
	}
	return "Just now"
}

// RecentActivity merges stop completions and payments from the trailing 24
// hours into one feed, newest first, capped at 10 entries.
func (s *ScheduleService) RecentActivity(asOf time.Time) ([]ActivityItem, error) {
	since := asOf.Add(-24 * time.Hour)

	type completionRow struct {
		Name        string
		CompletedAt time.Time
	}
	var completions []completionRow
	if err := s.db.Table("route_stops AS rs").
		Select("c.name, rs.completed_at").
		Joins("JOIN customers c ON rs.customer_id = c.id").
		Where("rs.completed = ? AND rs.completed_at >= ?", true, since).
		Order("rs.completed_at DESC").
		Limit(10).
		Scan(&completions).Error; err != nil {
		return nil, err
	}

	type paymentRow struct {
		Name        string
		ReceivedAt  time.Time
		AmountCents int64
	}
	var payments []paymentRow
	if err := s.db.Table("payments AS p").
		Select("c.name, p.received_at, p.amount_cents").
		Joins("JOIN customers c ON p.customer_id = c.id").
		Where("p.received_at >= ?", since).
		Order("p.received_at DESC").
		Limit(10).
		Scan(&payments).Error; err != nil {
		return nil, err
	}

	activity := make([]ActivityItem, 0, len(completions)+len(payments))
	for _, row := range completions {
		activity = append(activity, ActivityItem{
			Type:         "completed",
			CustomerName: row.Name,
			TimeAgo:      timeAgoLabel(asOf, row.CompletedAt),
			Timestamp:    row.CompletedAt,
		})
	}
	for _, row := range payments {
		amount := row.AmountCents
		activity = append(activity, ActivityItem{
			Type:         "payment",
			CustomerName: row.Name,
			AmountCents:  &amount,
			TimeAgo:      timeAgoLabel(asOf, row.ReceivedAt),
			Timestamp:    row.ReceivedAt,
		})
	}

	sort.Slice(activity, func(i, j int) bool {
		return activity[i].Timestamp.After(activity[j].Timestamp)
	})
	if len(activity) > 10 {
		activity = activity[:10]
	}
	return activity, nil
}
