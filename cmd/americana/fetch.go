package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hazyhaar/americana/pkg/importer"
)

func cmdFetch(args []string) {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	source := fs.String("source", "", "adapter ID to fetch (e.g. ssa-babynames-us)")
	all := fs.Bool("all", false, "fetch all available sources")
	dataDir := fs.String("data-dir", defaultDataDir, "dataset directory")
	fs.Parse(args)

	sdb, err := openSources(*dataDir)
	if err != nil {
		fatal(err)
	}
	defer sdb.Close()

	if !*all && *source == "" {
		listSources(sdb)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
	defer cancel()

	if *all {
		if err := fetchAllWith(ctx, sdb, *dataDir); err != nil {
			fatal(err)
		}
		return
	}

	a, err := importer.Get(*source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\nAvailable sources:\n", err)
		for _, a := range importer.All() {
			fmt.Fprintf(os.Stderr, "  %s\n", a.ID())
		}
		os.Exit(1)
	}

	if err := runAdapter(ctx, sdb, a, *dataDir); err != nil {
		fatal(err)
	}
}

// fetchAll is the --fetch flag path: every adapter, default layout.
func fetchAll(dataDir string) error {
	sdb, err := openSources(dataDir)
	if err != nil {
		return err
	}
	defer sdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
	defer cancel()
	return fetchAllWith(ctx, sdb, dataDir)
}

func fetchAllWith(ctx context.Context, sdb *importer.SourceDB, dataDir string) error {
	var failed int
	for _, a := range importer.All() {
		if err := runAdapter(ctx, sdb, a, dataDir); err != nil {
			fmt.Fprintf(os.Stderr, "[%s] ERROR: %v\n", a.ID(), err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d sources failed", failed, len(importer.All()))
	}
	return nil
}

func runAdapter(ctx context.Context, sdb *importer.SourceDB, a importer.Adapter, dataDir string) error {
	url, err := sdb.GetURL(a.ID())
	if err != nil {
		return fmt.Errorf("source url: %w", err)
	}
	fmt.Printf("[%s] fetching...\n", a.ID())
	if err := a.Import(ctx, url, dataDir); err != nil {
		return err
	}
	fmt.Printf("[%s] OK -> %s/%s/\n", a.ID(), dataDir, a.DatasetID())
	return nil
}

// openSources opens the source database under dataDir and seeds the
// default URLs for any adapter not yet present.
func openSources(dataDir string) (*importer.SourceDB, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	sdb, err := importer.OpenSourceDB(filepath.Join(dataDir, "sources.db"))
	if err != nil {
		return nil, err
	}
	if err := sdb.Seed(importer.All()); err != nil {
		sdb.Close()
		return nil, fmt.Errorf("seed sources: %w", err)
	}
	return sdb, nil
}

func listSources(sdb *importer.SourceDB) {
	sources, err := sdb.ListSources()
	if err != nil {
		fatal(err)
	}

	fmt.Println("Available sources:")
	fmt.Println()
	for _, src := range sources {
		status := ""
		if src.LastStatus != nil {
			status = fmt.Sprintf("  [%d]", *src.LastStatus)
		}
		fmt.Printf("  %-25s  %s  (-> %s)%s\n", src.AdapterID, src.Description, src.DatasetID, status)
	}
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  americana fetch --source <id> [--data-dir <dir>]")
	fmt.Println("  americana fetch --all [--data-dir <dir>]")
}
