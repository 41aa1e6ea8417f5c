package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"trading-admin-service/internal/services"

	"github.com/hibiken/asynq"
)

type Worker struct {
	Sync *services.SyncService
}

func NewWorker(sync *services.SyncService) *Worker {
	return &Worker{Sync: sync}
}

func (w *Worker) HandleDepositSync(ctx context.Context, t *asynq.Task) error {
	result, err := w.Sync.SyncAll()
	if err != nil {
		return err
	}
	log.Printf("Background sync: %d deposits, $%.2f, %d errors",
		result.TotalDeposits, result.TotalAmount, len(result.Errors))
	return nil
}

func (w *Worker) HandleUserSync(ctx context.Context, t *asynq.Task) error {
	var p UserSyncDTO
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}

	result, err := w.Sync.SyncUser(p.UserId, p.WalletAddress)
	if err != nil {
		return err
	}
	if result.NewDeposits > 0 {
		log.Printf("Background user sync %s: %d deposits, $%.2f", p.UserId, result.NewDeposits, result.Amount)
	}
	return nil
}

func (w *Worker) HandleWalletBackfill(ctx context.Context, t *asynq.Task) error {
	result, err := w.Sync.Backfill()
	if err != nil {
		return err
	}
	log.Printf("Background backfill: %d/%d rows updated, %d errors",
		result.Updated, result.Total, len(result.Errors))
	return nil
}

func StartWorker(redisOpt asynq.RedisClientOpt, sync *services.SyncService) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 3,
				"low":     1,
			},
		},
	)

	worker := NewWorker(sync)
	mux := asynq.NewServeMux()

	mux.HandleFunc(TypeDepositSync, worker.HandleDepositSync)
	mux.HandleFunc(TypeUserSync, worker.HandleUserSync)
	mux.HandleFunc(TypeWalletBackfill, worker.HandleWalletBackfill)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
