// gymcontrol-backup exports the record store to a JSON snapshot file, or
// restores a snapshot into a fresh database.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/meltforce/gymcontrol/internal/config"
	"github.com/meltforce/gymcontrol/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	exportPath := flag.String("export", "", "write a snapshot to this file")
	importPath := flag.String("import", "", "restore a snapshot from this file")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if (*exportPath == "") == (*importPath == "") {
		fmt.Fprintf(os.Stderr, "Usage: gymcontrol-backup -config config.yaml (-export file.json | -import file.json)\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		log.Error("failed to open database", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if *exportPath != "" {
		err = runExport(ctx, db, *exportPath, log)
	} else {
		err = runImport(ctx, db, *importPath, log)
	}
	if err != nil {
		log.Error("backup failed", "error", err)
		os.Exit(1)
	}
}

func runExport(ctx context.Context, db *storage.DB, path string, log *slog.Logger) error {
	snap, err := db.ExportSnapshot(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.Info("snapshot written", "path", path,
		"workouts", len(snap.Workouts),
		"exercises", len(snap.Exercises),
		"sessions", len(snap.Sessions),
		"session_exercises", len(snap.SessionExercises),
	)
	return nil
}

func runImport(ctx context.Context, db *storage.DB, path string, log *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var snap storage.Snapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return fmt.Errorf("parsing snapshot: %w", err)
	}

	if err := db.ImportSnapshot(ctx, &snap); err != nil {
		return err
	}

	log.Info("snapshot restored", "path", path,
		"workouts", len(snap.Workouts),
		"exercises", len(snap.Exercises),
		"sessions", len(snap.Sessions),
		"session_exercises", len(snap.SessionExercises),
	)
	return nil
}
