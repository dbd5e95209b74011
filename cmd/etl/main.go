package main

import (
	"context"
	"log"
	"time"

	"gamedeals_backend/internal/app/di"
	etlentity "gamedeals_backend/internal/feature/etl/domain/entity"
	infradb "gamedeals_backend/internal/platform/db"
)

func main() {

	db := infradb.OpenDB()
	priceRepo := di.NewPriceRepository(nil, db)
	orchestrator := di.NewOrchestrator(db, priceRepo)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	run, err := orchestrator.RunOnce(ctx)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("etl run %s finished: %s (%d outcomes)", run.ID, run.Status, len(run.Outcomes))
	if run.Status == etlentity.RunStatusFailed {
		log.Fatal("etl run failed: ", run.ErrorSummary)
	}
}
