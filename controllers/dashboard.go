package controllers

import (
	"net/http"
	"time"

	"candydash-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview returns the day's and week's roll-up numbers plus the
// recent activity feed.
func GetDashboardOverview(c *gin.Context) {
	now := time.Now()
	svc := scheduleService()

	stats, err := svc.DashboardStats(now)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load dashboard stats")
		return
	}

	activity, err := svc.RecentActivity(now)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load recent activity")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":           stats,
		"recent_activity": activity,
	})
}
