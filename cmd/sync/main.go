package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"go-ghlsync/internal/config"
	"go-ghlsync/internal/database"
	"go-ghlsync/internal/features/contact"
	"go-ghlsync/internal/features/credential"
	"go-ghlsync/internal/features/opportunity"
	sync_feature "go-ghlsync/internal/features/sync"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// One-shot sync run for operators and local debugging. Pass
// "opportunities" or "contacts" to limit the run; default is both.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(ctx)

	db := &database.MongodbDB{DB: client.Database(cfg.DBName)}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	credentials := credential.NewCredentialService(
		credential.NewGHLCredentialRepository(db),
		credential.NewSmartVaultTokenRepository(db),
		cfg, logger)

	syncService := sync_feature.NewSyncService(
		credentials,
		opportunity.NewOpportunityRepository(db),
		contact.NewContactRepository(db),
		sync_feature.NewSyncLogRepository(db),
		cfg, logger)

	var summary *sync_feature.RunSummary
	kind := "full"
	if len(os.Args) > 1 {
		kind = os.Args[1]
	}

	switch kind {
	case "opportunities":
		summary, err = syncService.RunOpportunities(ctx)
	case "contacts":
		summary, err = syncService.RunContacts(ctx)
	default:
		summary, err = syncService.RunAll(ctx)
	}
	if err != nil {
		log.Fatalf("sync failed: %v", err)
	}

	fmt.Printf("--- Sync Summary (%s) ---\n", kind)
	for _, col := range summary.Collections {
		fmt.Printf("%-30s fetched=%d saved=%d failed=%d", col.Name, col.Fetched, col.Saved, col.Failed)
		if col.Truncated {
			fmt.Print(" (truncated)")
		}
		if col.Error != "" {
			fmt.Printf(" error=%s", col.Error)
		}
		fmt.Println()
	}
	fmt.Printf("total: fetched=%d saved=%d failed=%d\n", summary.TotalFetched, summary.TotalSaved, summary.TotalFailed)
}
