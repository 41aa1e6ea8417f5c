package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"trading-admin-service/internal/models"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// SentinelWalletAddress is stored on bulk-synced deposit rows that were
// created before the user's real provider address was known. Backfill
// replaces it.
const SentinelWalletAddress = "MyPayVerse"

// SyncService reconciles the provider's reported transactions against the
// local deposit ledger.
type SyncService struct {
	DB       *gorm.DB
	Helper   *HelperService
	Provider *MyPayVerseService
}

func NewSyncService(db *gorm.DB, helper *HelperService, provider *MyPayVerseService) *SyncService {
	return &SyncService{DB: db, Helper: helper, Provider: provider}
}

type SyncResult struct {
	NewDeposits int     `json:"newDeposits"`
	Amount      float64 `json:"amount"`
}

type UserSyncSummary struct {
	UserId   string  `json:"userId"`
	Email    string  `json:"email"`
	Amount   float64 `json:"amount"`
	Deposits int     `json:"deposits"`
}

type BulkSyncResult struct {
	TotalDeposits int               `json:"totalDeposits"`
	TotalAmount   float64           `json:"totalAmount"`
	SyncedUsers   []UserSyncSummary `json:"syncedUsers"`
	Errors        []string          `json:"errors,omitempty"`
}

type BackfillResult struct {
	Total   int      `json:"total"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors,omitempty"`
}

// SyncUser fetches the wallet's transactions from the provider and ingests
// any completed deposits not yet in the ledger. Used by the get-wallet
// auto-sync path, so the rows carry the user's real provider address.
func (s *SyncService) SyncUser(userId, walletAddress string) (SyncResult, error) {
	transactions, err := s.Provider.GetTransactions(walletAddress)
	if err != nil {
		return SyncResult{}, err
	}
	return s.ingest(userId, walletAddress, transactions)
}

// ingest is the reconciliation core: filter to completed deposits, drop
// every external id already present as a mypayverse_ transaction hash for
// this user, then insert the remainder as approved deposits and credit the
// profile. Inserts and the balance credit run in one transaction, and the
// credit is an atomic increment, so a re-run of the same provider response
// is a no-op.
func (s *SyncService) ingest(userId, adminWalletAddress string, transactions []ProviderTransaction) (SyncResult, error) {
	var hashes []string
	err := s.DB.Model(&models.Deposit{}).
		Where("user_id = ? AND transaction_hash LIKE ?", userId, models.ProviderHashPrefix+"%").
		Pluck("transaction_hash", &hashes).Error
	if err != nil {
		return SyncResult{}, err
	}

	seen := make(map[string]bool, len(hashes))
	for _, hash := range hashes {
		seen[strings.TrimPrefix(hash, models.ProviderHashPrefix)] = true
	}

	var result SyncResult
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, t := range transactions {
			if !t.IsCompletedDeposit() || t.Amount <= 0 {
				continue
			}

			externalId := t.ExternalId()
			if seen[externalId] {
				continue
			}
			seen[externalId] = true

			hash := models.ProviderHashPrefix + externalId
			approvedAt := parseProviderTime(t.CreatedAt)
			deposit := models.Deposit{
				ID:                 uuid.NewString(),
				UserId:             userId,
				Amount:             t.Amount,
				Status:             models.DepositApproved,
				AdminWalletAddress: adminWalletAddress,
				TransactionHash:    &hash,
				ApprovedAt:         &approvedAt,
			}
			if err := tx.Create(&deposit).Error; err != nil {
				return err
			}

			result.NewDeposits++
			result.Amount += t.Amount
		}

		if result.Amount > 0 {
			return s.Helper.CreditDeposit(tx, userId, result.Amount)
		}
		return nil
	})
	if err != nil {
		return SyncResult{}, err
	}

	if result.NewDeposits > 0 {
		log.Printf("Synced %d new deposits ($%.2f) for user %s", result.NewDeposits, result.Amount, userId)
	}
	return result, nil
}

// SyncAll walks every profile sequentially. A failing user is recorded in
// the error list and never aborts the batch; users without a provider
// wallet are skipped silently.
func (s *SyncService) SyncAll() (BulkSyncResult, error) {
	var profiles []models.Profile
	if err := s.DB.Select("id", "email").Find(&profiles).Error; err != nil {
		return BulkSyncResult{}, err
	}

	log.Printf("Starting provider deposit sync for %d users", len(profiles))

	result := BulkSyncResult{SyncedUsers: []UserSyncSummary{}}
	for _, profile := range profiles {
		userResult, err := s.syncProfile(profile)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", profile.Email, err))
			continue
		}
		if userResult.NewDeposits == 0 {
			continue
		}

		result.TotalDeposits += userResult.NewDeposits
		result.TotalAmount += userResult.Amount
		result.SyncedUsers = append(result.SyncedUsers, UserSyncSummary{
			UserId:   profile.ID,
			Email:    profile.Email,
			Amount:   userResult.Amount,
			Deposits: userResult.NewDeposits,
		})
	}

	log.Printf("Sync complete: %d deposits, $%.2f total, %d errors",
		result.TotalDeposits, result.TotalAmount, len(result.Errors))
	return result, nil
}

func (s *SyncService) syncProfile(profile models.Profile) (SyncResult, error) {
	wallet, err := s.Provider.GetWallet(profile.ID)
	if err != nil {
		return SyncResult{}, err
	}
	if wallet == nil || wallet.Address == "" {
		return SyncResult{}, nil
	}

	transactions, err := s.Provider.GetTransactions(wallet.Address)
	if err != nil {
		return SyncResult{}, err
	}

	return s.ingest(profile.ID, SentinelWalletAddress, transactions)
}

// Backfill replaces the sentinel admin_wallet_address on bulk-synced rows
// with the user's real provider wallet address.
func (s *SyncService) Backfill() (BackfillResult, error) {
	var deposits []models.Deposit
	err := s.DB.Select("id", "user_id").
		Where("admin_wallet_address = ?", SentinelWalletAddress).
		Find(&deposits).Error
	if err != nil {
		return BackfillResult{}, err
	}

	result := BackfillResult{Total: len(deposits)}
	if len(deposits) == 0 {
		return result, nil
	}

	byUser := make(map[string][]string)
	for _, d := range deposits {
		byUser[d.UserId] = append(byUser[d.UserId], d.ID)
	}

	for userId, depositIds := range byUser {
		wallet, err := s.Provider.GetWallet(userId)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", userId, err))
			continue
		}
		if wallet == nil || wallet.Address == "" {
			continue
		}

		err = s.DB.Model(&models.Deposit{}).
			Where("id IN ?", depositIds).
			Update("admin_wallet_address", wallet.Address).Error
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", userId, err))
			continue
		}
		result.Updated += len(depositIds)
	}

	return result, nil
}

// StartScheduler runs SyncAll on a cron schedule (SYNC_CRON, default every
// 30 minutes).
func (s *SyncService) StartScheduler() {
	spec := os.Getenv("SYNC_CRON")
	if spec == "" {
		spec = "*/30 * * * *"
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		log.Println("Running scheduled provider deposit sync...")
		if _, err := s.SyncAll(); err != nil {
			log.Printf("Scheduled sync failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("Error scheduling deposit sync: %v", err)
		return
	}
	c.Start()
	log.Printf("Deposit sync scheduler started (%s)", spec)
}

func parseProviderTime(value string) time.Time {
	if value != "" {
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			return t
		}
	}
	return time.Now()
}
