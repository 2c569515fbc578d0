// Package main provides the hpprio binary, which annotates equipment-set
// Lua files with HP priorities and reports the priorities of equipped gear.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/hpprio/internal/config"
	"github.com/cory-johannsen/hpprio/internal/gear"
	"github.com/cory-johannsen/hpprio/internal/observability"
	"github.com/cory-johannsen/hpprio/internal/resource"
	"github.com/cory-johannsen/hpprio/internal/rewrite"
	"github.com/cory-johannsen/hpprio/internal/scoring"
	"github.com/cory-johannsen/hpprio/internal/snapshot"
	"github.com/cory-johannsen/hpprio/internal/updater"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty uses built-in defaults")
	setPath := flag.String("set", "", "set file or directory of *.lua set files to update")
	dryRun := flag.Bool("dry-run", false, "compute priorities without writing files")
	report := flag.Bool("report", false, "print the priority of each equipped item in the snapshot")
	snapshotPath := flag.String("snapshot", "", "snapshot file; overrides snapshot.path from the config")
	flag.Parse()

	paths := flag.Args()
	if *setPath != "" {
		paths = append([]string{*setPath}, paths...)
	}
	if len(paths) == 0 && !*report {
		fmt.Fprintln(os.Stderr, "usage: hpprio [-config <file>] [-snapshot <file>] [-dry-run] [-report] [-set <path>] [path...]")
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *snapshotPath != "" {
		cfg.Snapshot.Path = *snapshotPath
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	items, err := resource.Load(cfg.Resources.Path)
	if err != nil {
		logger.Fatal("loading item resources", zap.Error(err))
	}
	store, err := resource.NewStoreFrom(items)
	if err != nil {
		logger.Fatal("indexing item resources", zap.Error(err))
	}
	logger.Info("item resources loaded", zap.String("path", cfg.Resources.Path), zap.Int("items", store.Len()))

	snap := snapshot.Empty()
	if cfg.Snapshot.Path != "" {
		snap, err = snapshot.Load(cfg.Snapshot.Path, cfg.Snapshot.InstructionLimit, logger)
		if err != nil {
			logger.Fatal("loading snapshot", zap.Error(err))
		}
	} else {
		logger.Info("no snapshot configured; inventory augments and the belt formula are unavailable")
	}

	overrides, err := scoring.LoadOverrides(cfg.Overrides.Path)
	if err != nil {
		logger.Fatal("loading overrides", zap.Error(err))
	}

	index := scoring.NewAugmentIndex(snap, store, snap, logger)
	engine := scoring.NewEngine(store, snap, index, overrides, logger)

	if *report {
		if err := writeReport(os.Stdout, snap.Equipped(), store, engine); err != nil {
			logger.Fatal("writing report", zap.Error(err))
		}
	}

	if len(paths) > 0 {
		u := updater.New(rewrite.NewTransformer(engine, logger), updater.Options{
			DryRun:       *dryRun,
			VerifyLua:    cfg.Rewrite.VerifyLua,
			BackupSuffix: cfg.Rewrite.BackupSuffix,
		}, logger)
		sum, err := u.Run(paths...)
		for _, r := range sum.Results {
			fmt.Printf("%-40s %3d assignment(s) %3d change(s)%s\n", r.Path, r.Assignments, r.Changes, dryRunMark(*dryRun, r))
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("done in %s\n", time.Since(start).Round(time.Millisecond))
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.LoadFromViper(config.Defaults())
	}
	return config.Load(path)
}

func dryRunMark(dryRun bool, r updater.FileResult) string {
	if dryRun && r.Changes > 0 {
		return "  (not written)"
	}
	return ""
}

// itemScorer is the slice of *scoring.Engine the report needs.
type itemScorer interface {
	ScoreItem(slot gear.Slot, id int, name string, augments []string) int
}

// writeReport prints slot, item and priority for each equipped item.
// Items missing from the resource table are listed by id with priority 0.
func writeReport(w io.Writer, equipped []snapshot.Equipped, resources scoring.ResourceStore, scorer itemScorer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tITEM\tPRIORITY")
	for _, e := range equipped {
		name, ok := resources.ItemName(e.Record.ID)
		if !ok {
			fmt.Fprintf(tw, "%s\t#%d\t0\n", e.Slot, e.Record.ID)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\n", e.Slot, name, scorer.ScoreItem(e.Slot, e.Record.ID, name, e.Record.Augments))
	}
	return tw.Flush()
}
