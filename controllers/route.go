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

func routeService() *services.RouteService {
	return services.NewRouteService(config.DB)
}

// GetRoute returns today's stops ordered by stop_order
func GetRoute(c *gin.Context) {
	today := time.Now()
	stops, err := routeService().StopsForDate(today)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load route")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":  utils.DateOnly(today).Format(time.DateOnly),
		"stops": stops,
	})
}

// AddToRoute schedules a customer on a route. The date form field is
// optional ISO; missing or unparsable values fall back to today.
func AddToRoute(c *gin.Context) {
	customerID, err := uuid.Parse(c.PostForm("customer_id"))
	if err != nil {
		utils.RedirectWithFlash(c, "/route", "error", "No customer selected")
		return
	}

	targetDate := time.Now()
	if dateStr := c.PostForm("date"); dateStr != "" {
		if parsed, err := time.Parse(time.DateOnly, dateStr); err == nil {
			targetDate = parsed
		}
	}

	if err := routeService().AddCustomerToRoute(targetDate, customerID); err != nil {
		utils.RedirectWithFlash(c, "/route", "error", "Failed to add customer to route")
		return
	}
	utils.RedirectWithFlash(c, "/route", "success", "Customer added to route")
}

// CompleteStop marks a stop done; retries and unknown ids are no-ops
func CompleteStop(c *gin.Context) {
	stopID, err := uuid.Parse(c.Param("stop_id"))
	if err != nil {
		utils.RedirectWithFlash(c, "/route", "error", "Invalid stop ID")
		return
	}

	if err := routeService().CompleteStop(stopID, time.Now()); err != nil {
		utils.RedirectWithFlash(c, "/route", "error", "Failed to complete stop")
		return
	}
	c.Redirect(http.StatusSeeOther, "/route")
}

// RemoveStop deletes a stop; removing a missing id is a no-op
func RemoveStop(c *gin.Context) {
	stopID, err := uuid.Parse(c.Param("stop_id"))
	if err != nil {
		utils.RedirectWithFlash(c, "/route", "error", "Invalid stop ID")
		return
	}

	if err := routeService().RemoveStop(stopID); err != nil {
		utils.RedirectWithFlash(c, "/route", "error", "Failed to remove stop")
		return
	}
	c.Redirect(http.StatusSeeOther, "/route")
}

// UpdateStopNotes stores trimmed notes, empty text clears them
func UpdateStopNotes(c *gin.Context) {
	stopID, err := uuid.Parse(c.Param("stop_id"))
	if err != nil {
		utils.RedirectWithFlash(c, "/route", "error", "Invalid stop ID")
		return
	}

	if err := routeService().UpdateStopNotes(stopID, c.PostForm("notes")); err != nil {
		utils.RedirectWithFlash(c, "/route", "error", "Failed to update notes")
		return
	}
	c.Redirect(http.StatusSeeOther, "/route")
}
