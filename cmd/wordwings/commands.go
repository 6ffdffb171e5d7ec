package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wordwings/wordwings/internal/config"
	"github.com/wordwings/wordwings/internal/connectivity"
	"github.com/wordwings/wordwings/internal/content"
	"github.com/wordwings/wordwings/internal/domain"
	"github.com/wordwings/wordwings/internal/progress"
	"github.com/wordwings/wordwings/internal/remote"
	"github.com/wordwings/wordwings/internal/storage/sqlite"
)

// app holds everything a command needs, wired once per invocation.
type app struct {
	cfg     *config.Config
	db      *sqlite.DB
	store   *sqlite.ProgressStore
	mastery *sqlite.MasteryStore
	queue   *sqlite.QueueStore
	syncer  *progress.Syncer
	content *content.Service
	logger  *slog.Logger
}

func openApp() (*app, error) {
	dir, err := config.EnsureDir()
	if err != nil {
		return nil, fmt.Errorf("ensure app dir: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	db, err := sqlite.Open(config.DBPath(dir))
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	apiClient := remote.NewClient(cfg.Remote.BaseURL)
	progressClient := remote.NewBreakerProgressClient(remote.NewProgressClient(apiClient), logger)
	contentClient := remote.NewResilientContentClient(remote.NewContentClient(apiClient), logger)

	store := sqlite.NewProgressStore(db)
	masteryStore := sqlite.NewMasteryStore(db)
	queue := sqlite.NewQueueStore(db)

	cache, err := content.NewCache(sqlite.NewCacheStore(db), cfg.Cache.TTL())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load content cache: %w", err)
	}
	monitor := connectivity.NewMonitor(true)

	return &app{
		cfg:     cfg,
		db:      db,
		store:   store,
		mastery: masteryStore,
		queue:   queue,
		syncer:  progress.NewSyncer(progressClient, store, queue, logger),
		content: content.NewService(cache, contentClient, monitor, logger),
		logger:  logger,
	}, nil
}

func (a *app) close() {
	a.db.Close()
}

func cmdInit() error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	dir, err := config.Dir()
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir + "/config.yaml"); os.IsNotExist(err) {
		if err := config.Save(dir, a.cfg); err != nil {
			return err
		}
	}

	version, err := a.db.Version()
	if err != nil {
		return err
	}
	fmt.Printf("Initialized %s (schema v%d)\n", dir, version)
	return nil
}

func cmdSync() error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	report, err := a.syncer.Sync(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Applied %d, dropped %d, %d still pending\n",
		report.Applied, report.Dropped, report.Remaining)
	return nil
}

func cmdWatch() error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interval := a.cfg.Sync.Interval()
	if interval <= 0 {
		interval = time.Minute
	}
	a.logger.Info("watching sync queue", "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		report, err := a.syncer.Sync(ctx)
		if err != nil && ctx.Err() == nil {
			a.logger.Error("sync pass failed", "error", err)
		} else if report.Applied > 0 || report.Dropped > 0 {
			a.logger.Info("sync pass",
				"applied", report.Applied,
				"dropped", report.Dropped,
				"remaining", report.Remaining)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func cmdPending() error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	n, err := a.syncer.Pending()
	if err != nil {
		return err
	}
	fmt.Printf("%d changes pending\n", n)
	return nil
}

func cmdProgress(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: wordwings progress <learner> [content]")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if len(args) >= 2 {
		rec, err := a.store.Get(args[0], args[1])
		if err != nil {
			return err
		}
		printRecord(rec)
		return nil
	}

	recs, err := a.store.ForLearner(args[0])
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("No progress recorded yet")
		return nil
	}
	for _, rec := range recs {
		printRecord(rec)
	}
	return nil
}

func printRecord(rec *domain.ProgressRecord) {
	fmt.Printf("%s  %s  step %d  %ds", rec.ContentID, rec.Status, rec.CurrentStepIndex, rec.TotalTimeSeconds)
	if rec.OverallScore != nil {
		fmt.Printf("  score %d", *rec.OverallScore)
	}
	fmt.Println()
}

func contentFilters(args []string) domain.ContentFilters {
	var f domain.ContentFilters
	for i := 0; i+1 < len(args); i += 2 {
		switch args[i] {
		case "--kind":
			f.Kind = args[i+1]
		case "--tier":
			fmt.Sscanf(args[i+1], "%d", &f.Tier)
		case "--tag":
			f.Tag = args[i+1]
		}
	}
	return f
}

func cmdMastery(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: wordwings mastery <learner>")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	tracker := progress.NewMasteryTracker(a.mastery, a.cfg.Mastery)
	items, err := tracker.MasteredItems(args[0])
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No mastered items yet")
		return nil
	}
	for _, item := range items {
		fmt.Println(item)
	}
	return nil
}

func cmdStats(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: wordwings stats <learner>")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	analytics := progress.NewAnalytics(a.store, a.mastery, a.cfg.Mastery)
	overview, err := analytics.Overview(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Learner %s\n", overview.LearnerID)
	fmt.Printf("  Started:    %d\n", overview.TotalStarted)
	fmt.Printf("  Completed:  %d (%.0f%%)\n", overview.Completed, overview.CompletionRate*100)
	fmt.Printf("  Practice:   %ds, avg score %.1f\n", overview.TotalTimeSeconds, overview.AvgScore)
	fmt.Printf("  Mastered:   %d of %d items\n", overview.ItemsMastered, overview.ItemsPracticed)
	if len(overview.StruggleItems) > 0 {
		fmt.Println("  Needs work:")
		for _, item := range overview.StruggleItems {
			fmt.Printf("    %-16s %d attempts, %.0f%% correct\n",
				item.ItemID, item.Attempts, item.SuccessRate*100)
		}
	}
	return nil
}

func cmdContent(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: wordwings content <list|refresh>")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	switch args[0] {
	case "list":
		listing, err := a.content.List(context.Background(), contentFilters(args[1:]))
		if err != nil {
			return err
		}
		fmt.Printf("Catalog (%s, %d items)\n", listing.Freshness, len(listing.Items))
		for _, c := range listing.Items {
			fmt.Printf("  [tier %d] %-12s %s\n", c.Tier, c.Kind, c.Title)
		}
		return nil
	case "refresh":
		return a.content.Invalidate()
	default:
		return fmt.Errorf("unknown content command: %s", args[0])
	}
}

func cmdReset(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: wordwings reset <learner>")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.store.Reset(args[0]); err != nil {
		return err
	}
	if err := a.mastery.Reset(args[0]); err != nil {
		return err
	}
	fmt.Printf("Reset local data for learner %s\n", args[0])
	return nil
}
