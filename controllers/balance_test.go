package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"candydash-backend/config"
	"candydash-backend/models"
	"candydash-backend/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Customer{},
		&models.Route{},
		&models.RouteStop{},
		&models.Visit{},
		&models.Payment{},
	))
	config.DB = db

	return routes.SetupRouter()
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRecordPaymentEndpoint(t *testing.T) {
	r := setupRouter(t)

	customer := models.Customer{Name: "Ada", BalanceCents: 5000}
	require.NoError(t, config.DB.Create(&customer).Error)

	w := postForm(r, "/balances/record_payment", url.Values{
		"customer_id": {customer.ID.String()},
		"amount":      {"20.00"},
		"notes":       {"weekly collection"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Contains(t, w.Header().Get("Location"), "flash_level=success")

	var updated models.Customer
	require.NoError(t, config.DB.First(&updated, "id = ?", customer.ID).Error)
	require.Equal(t, int64(3000), updated.BalanceCents)
}

func TestRecordPaymentEndpointRejectsZeroAmount(t *testing.T) {
	r := setupRouter(t)

	customer := models.Customer{Name: "Ada", BalanceCents: 5000}
	require.NoError(t, config.DB.Create(&customer).Error)

	w := postForm(r, "/balances/record_payment", url.Values{
		"customer_id": {customer.ID.String()},
		"amount":      {"0"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Contains(t, w.Header().Get("Location"), "flash_level=error")

	var payments int64
	require.NoError(t, config.DB.Model(&models.Payment{}).Count(&payments).Error)
	require.Zero(t, payments)
}

func TestRecordPaymentEndpointOverpaymentWarns(t *testing.T) {
	r := setupRouter(t)

	customer := models.Customer{Name: "Ada", BalanceCents: 1000}
	require.NoError(t, config.DB.Create(&customer).Error)

	w := postForm(r, "/balances/record_payment", url.Values{
		"customer_id": {customer.ID.String()},
		"amount":      {"25.00"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Contains(t, w.Header().Get("Location"), "flash_level=warning")

	var updated models.Customer
	require.NoError(t, config.DB.First(&updated, "id = ?", customer.ID).Error)
	require.Equal(t, int64(-1500), updated.BalanceCents)
}

func TestAddToRouteEndpointDefaultsToToday(t *testing.T) {
	r := setupRouter(t)

	customer := models.Customer{Name: "Ada"}
	require.NoError(t, config.DB.Create(&customer).Error)

	w := postForm(r, "/route/add", url.Values{
		"customer_id": {customer.ID.String()},
		"date":        {"not-a-date"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	// Repeating the add must not duplicate the stop.
	postForm(r, "/route/add", url.Values{"customer_id": {customer.ID.String()}})

	var stops int64
	require.NoError(t, config.DB.Model(&models.RouteStop{}).Count(&stops).Error)
	require.Equal(t, int64(1), stops)
}
