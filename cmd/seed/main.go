// Command seed writes the built-in fleet fixture into the DynamoDB table the
// dashboard service loads its snapshot from.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/Vlad1s43nko/LogisticsSystem/internal/config"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/logging"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logging.New(logging.Options{Level: cfg.LogLevel}))

	table := flag.String("table", cfg.DynamoTable, "DynamoDB table to seed")
	region := flag.String("region", cfg.AWSRegion, "AWS region")
	flag.Parse()

	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(*region))
	if err != nil {
		slog.Error("Failed to load AWS config", "error", err)
		os.Exit(1)
	}

	snapshot := storage.SeedSnapshot()
	source := storage.NewDynamoDBSnapshotSource(dynamodb.NewFromConfig(awsCfg), *table)
	if err := source.Write(ctx, snapshot); err != nil {
		slog.Error("Failed to seed fleet table", "table", *table, "error", err)
		os.Exit(1)
	}

	slog.Info("Fleet table seeded", "table", *table,
		"trucks", len(snapshot.Trucks), "drivers", len(snapshot.Drivers), "series", len(snapshot.Series))
}
