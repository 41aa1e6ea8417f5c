package services

import (
	"fmt"
	"net/http"
	"testing"

	"trading-admin-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func providerTransactionsJSON(transactions string) string {
	return fmt.Sprintf(`{"result":{"transactions":%s}}`, transactions)
}

func TestSyncUserIngestsCompletedDepositsOnce(t *testing.T) {
	db := newTestDB(t)
	profile := seedProfile(t, db, "alice@example.com", 0)

	// t1 appears twice in the same batch; only one row may land.
	body := providerTransactionsJSON(`[
		{"_id":"t1","transacionType":"DEPOSIT","transacionStatus":"COMPLETED","amount":50,"createdAt":"2026-01-10T12:00:00Z"},
		{"_id":"t1","transacionType":"DEPOSIT","transacionStatus":"COMPLETED","amount":50,"createdAt":"2026-01-10T12:00:00Z"},
		{"_id":"t2","transacionType":"WITHDRAWAL","transacionStatus":"COMPLETED","amount":25,"createdAt":"2026-01-10T13:00:00Z"},
		{"_id":"t3","transacionType":"DEPOSIT","transacionStatus":"PENDING","amount":30,"createdAt":"2026-01-10T14:00:00Z"}
	]`)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/customers/wallet/transactions", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	})

	provider := newTestProvider(t, mux)
	svc := NewSyncService(db, NewHelperService(db), provider)

	result, err := svc.SyncUser(profile.ID, "0xabc")
	assert.NoError(t, err)
	assert.Equal(t, 1, result.NewDeposits)
	assert.Equal(t, 50.0, result.Amount)

	var deposits []models.Deposit
	db.Where("user_id = ?", profile.ID).Find(&deposits)
	assert.Len(t, deposits, 1)
	assert.Equal(t, models.DepositApproved, deposits[0].Status)
	assert.Equal(t, "mypayverse_t1", *deposits[0].TransactionHash)
	assert.Equal(t, "0xabc", deposits[0].AdminWalletAddress)

	var updated models.Profile
	db.First(&updated, "id = ?", profile.ID)
	assert.Equal(t, 50.0, updated.WalletBalance)
	assert.Equal(t, 50.0, updated.TotalDeposits)

	// Second run against the same provider response is a no-op.
	result, err = svc.SyncUser(profile.ID, "0xabc")
	assert.NoError(t, err)
	assert.Equal(t, 0, result.NewDeposits)

	db.First(&updated, "id = ?", profile.ID)
	assert.Equal(t, 50.0, updated.WalletBalance)
}

func TestSyncUserFallbackExternalId(t *testing.T) {
	db := newTestDB(t)
	profile := seedProfile(t, db, "bob@example.com", 0)

	// Legacy shape: no id fields at all, amount as string, flat result array.
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/customers/wallet/transactions", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":[{"transacionType":"DEPOSIT","transacionStatus":"COMPLETED","amount":"75.5","createdAt":"2026-02-01T09:30:00Z"}]}`)
	})

	provider := newTestProvider(t, mux)
	svc := NewSyncService(db, NewHelperService(db), provider)

	result, err := svc.SyncUser(profile.ID, "0xdef")
	assert.NoError(t, err)
	assert.Equal(t, 1, result.NewDeposits)

	var deposit models.Deposit
	db.Where("user_id = ?", profile.ID).First(&deposit)
	assert.Equal(t, "mypayverse_2026-02-01T09:30:00Z_75.5", *deposit.TransactionHash)
	assert.Equal(t, 75.5, deposit.Amount)
}

func TestSyncAllCollectsPerUserErrors(t *testing.T) {
	db := newTestDB(t)
	alice := seedProfile(t, db, "alice@example.com", 0)
	bob := seedProfile(t, db, "bob@example.com", 0)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/customers/wallet/details", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("userId") == bob.ID {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"message":"upstream exploded"}`)
			return
		}
		fmt.Fprint(w, `{"result":{"wallet":{"walletAddress":"0xalice"}}}`)
	})
	mux.HandleFunc("/api/v1/customers/wallet/transactions", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, providerTransactionsJSON(`[{"_id":"a1","transacionType":"DEPOSIT","transacionStatus":"COMPLETED","amount":10,"createdAt":"2026-03-01T00:00:00Z"}]`))
	})

	provider := newTestProvider(t, mux)
	svc := NewSyncService(db, NewHelperService(db), provider)

	result, err := svc.SyncAll()
	assert.NoError(t, err)
	assert.Equal(t, 1, result.TotalDeposits)
	assert.Equal(t, 10.0, result.TotalAmount)
	assert.Len(t, result.SyncedUsers, 1)
	assert.Equal(t, alice.ID, result.SyncedUsers[0].UserId)
	assert.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "bob@example.com")

	// Alice's deposit persisted despite Bob's failure, carrying the sentinel.
	var deposit models.Deposit
	db.Where("user_id = ?", alice.ID).First(&deposit)
	assert.Equal(t, SentinelWalletAddress, deposit.AdminWalletAddress)
}

func TestSyncAllSkipsUsersWithoutWallet(t *testing.T) {
	db := newTestDB(t)
	seedProfile(t, db, "nowallet@example.com", 0)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/customers/wallet/details", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	provider := newTestProvider(t, mux)
	svc := NewSyncService(db, NewHelperService(db), provider)

	result, err := svc.SyncAll()
	assert.NoError(t, err)
	assert.Equal(t, 0, result.TotalDeposits)
	assert.Empty(t, result.Errors)
}

func TestBackfillReplacesSentinelAddress(t *testing.T) {
	db := newTestDB(t)
	alice := seedProfile(t, db, "alice@example.com", 0)

	hash := "mypayverse_b1"
	db.Create(&models.Deposit{
		ID:                 "dep-1",
		UserId:             alice.ID,
		Amount:             40,
		Status:             models.DepositApproved,
		AdminWalletAddress: SentinelWalletAddress,
		TransactionHash:    &hash,
	})
	manualHash := "0xmanual"
	db.Create(&models.Deposit{
		ID:                 "dep-2",
		UserId:             alice.ID,
		Amount:             15,
		Status:             models.DepositApproved,
		AdminWalletAddress: "0xreal",
		TransactionHash:    &manualHash,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/customers/wallet/details", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":{"wallet":{"walletAddress":"0xalice"}}}`)
	})

	provider := newTestProvider(t, mux)
	svc := NewSyncService(db, NewHelperService(db), provider)

	result, err := svc.Backfill()
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, result.Updated)

	var updated models.Deposit
	db.First(&updated, "id = ?", "dep-1")
	assert.Equal(t, "0xalice", updated.AdminWalletAddress)

	var untouched models.Deposit
	db.First(&untouched, "id = ?", "dep-2")
	assert.Equal(t, "0xreal", untouched.AdminWalletAddress)
}
