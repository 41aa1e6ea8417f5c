package worker

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task Types
const (
	TypeDepositSync    = "deposit-sync"
	TypeUserSync       = "user-deposit-sync"
	TypeWalletBackfill = "wallet-backfill"
)

type UserSyncDTO struct {
	UserId        string `json:"userId"`
	WalletAddress string `json:"walletAddress"`
}

// Task Creators

func NewDepositSyncTask() *asynq.Task {
	return asynq.NewTask(TypeDepositSync, nil)
}

func NewUserSyncTask(payload UserSyncDTO) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeUserSync, data), nil
}

func NewWalletBackfillTask() *asynq.Task {
	return asynq.NewTask(TypeWalletBackfill, nil)
}
