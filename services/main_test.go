package services

import (
	"testing"

	"candydash-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	return openTestDB(t, "file:"+t.Name()+"?mode=memory&cache=shared")
}

// newTestDBWithFKs enables foreign key enforcement, matching what the
// postgres driver does unconditionally in production.
func newTestDBWithFKs(t *testing.T) *gorm.DB {
	return openTestDB(t, "file:"+t.Name()+"?mode=memory&cache=shared&_pragma=foreign_keys(1)")
}

func openTestDB(t *testing.T, dsn string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Customer{},
		&models.Route{},
		&models.RouteStop{},
		&models.Visit{},
		&models.Payment{},
	))
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, c models.Customer) models.Customer {
	require.NoError(t, db.Create(&c).Error)
	return c
}

func strPtr(s string) *string {
	return &s
}
