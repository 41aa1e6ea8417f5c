package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"trading-admin-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. The named shared-cache
// DSN keeps gorm's connection pool on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.Profile{},
		&models.Deposit{},
		&models.Withdrawal{},
		&models.AuditLog{},
		&models.UserRole{},
		&models.Referral{},
		&models.ReferralEarning{},
		&models.UserTradeProgress{},
		&models.TradeCycle{},
		&models.WalletTransfer{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, email string, walletBalance float64) models.Profile {
	t.Helper()

	profile := models.Profile{
		ID:            uuid.NewString(),
		Email:         email,
		WalletBalance: walletBalance,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}
	return profile
}

// newTestProvider points a provider client at an httptest server.
func newTestProvider(t *testing.T, handler http.Handler) *MyPayVerseService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &MyPayVerseService{BaseUrl: server.URL, CustomerId: "test-customer"}
}

func decodeJSONBody(t *testing.T, r *http.Request, out interface{}) {
	t.Helper()
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode request body: %v", err)
	}
}

func auditCount(db *gorm.DB) int64 {
	var count int64
	db.Model(&models.AuditLog{}).Count(&count)
	return count
}
