// Script exporting sample documents of every collection from MongoDB.
// Run from the repository root: go run ./scripts/export_sample_data [output dir]
// Writes at most 20 documents per collection as <collection>.json, in the JSON cache format.
package main

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"shop_pos/config"
	"shop_pos/internal/cache"
	"shop_pos/internal/models"
	"shop_pos/internal/store"
)

const limitPerCollection = 20

func main() {
	outputDir := "data/sample"
	if len(os.Args) > 1 {
		outputDir = os.Args[1]
	}

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("Failed to read configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	s := store.NewMongoStore(cfg)
	if err := s.Connect(ctx); err != nil {
		logrus.Fatalf("MongoDB connection failed: %v", err)
	}
	defer s.Close(context.Background())

	out := cache.New(outputDir)
	success, skipped := 0, 0
	for _, kind := range models.AllKinds() {
		docs, err := s.FindAll(ctx, kind.Collection())
		if err != nil {
			logrus.Warnf("  [SKIP] %s: %v", kind, err)
			skipped++
			continue
		}
		if len(docs) == 0 {
			logrus.Infof("  [EMPTY] %s", kind)
			skipped++
			continue
		}
		if len(docs) > limitPerCollection {
			docs = docs[:limitPerCollection]
		}
		if err := out.Write(kind, docs); err != nil {
			logrus.Warnf("  [SKIP] %s write: %v", kind, err)
			skipped++
			continue
		}
		logrus.Infof("  [OK] %s: %d documents -> %s", kind, len(docs), out.Path(kind))
		success++
	}

	logrus.Infof("Done: %d collections, %d skipped. Output: %s", success, skipped, outputDir)
}
