package importer

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hazyhaar/americana/pkg/demo"
	"github.com/hazyhaar/americana/pkg/store"
)

func init() {
	Register(&ssaBabyNamesAdapter{})
}

// ssaBabyNamesAdapter builds the name popularity dataset from the SSA baby
// names archive: one yobYYYY.txt per year since 1880, each row
// Name,Sex,Count. Only the most popular name per sex per year is kept.
type ssaBabyNamesAdapter struct{}

func (a *ssaBabyNamesAdapter) ID() string        { return "ssa-babynames-us" }
func (a *ssaBabyNamesAdapter) DatasetID() string { return store.NamesDir }
func (a *ssaBabyNamesAdapter) Description() string {
	return "SSA baby names US (Social Security Administration)"
}
func (a *ssaBabyNamesAdapter) DefaultURL() string { return "https://www.ssa.gov/oact/babynames/names.zip" }
func (a *ssaBabyNamesAdapter) License() string    { return "Public Domain" }

func (a *ssaBabyNamesAdapter) Import(ctx context.Context, sourceURL, dataDir string) error {
	dlDir := filepath.Join(dataDir, "_download")
	if err := ensureDir(dlDir); err != nil {
		return err
	}
	defer os.RemoveAll(dlDir)

	zipPath := filepath.Join(dlDir, "names.zip")
	fmt.Printf("  downloading %s...\n", sourceURL)
	if err := downloadFile(ctx, sourceURL, zipPath); err != nil {
		return fmt.Errorf("download: %w", err)
	}

	files, err := unzipFile(zipPath, dlDir)
	if err != nil {
		return fmt.Errorf("unzip: %w", err)
	}

	names := make(demo.NameTable)
	for _, f := range files {
		year, ok := yearFromFilename(filepath.Base(f))
		if !ok {
			continue
		}
		rec, err := parseYearOfBirthFile(f)
		if err != nil {
			return fmt.Errorf("parse %s: %w", filepath.Base(f), err)
		}
		if len(rec) > 0 {
			names[year] = rec
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("no yobYYYY.txt files found in archive")
	}

	fmt.Printf("  %d years of name data\n", len(names))

	dsDir := filepath.Join(dataDir, a.DatasetID())
	if err := store.SaveNames(dsDir, names); err != nil {
		return fmt.Errorf("save dataset: %w", err)
	}

	return store.WriteManifest(dsDir, &store.Manifest{
		ID:        "names-us",
		Version:   "2026-08",
		Dataset:   "name_popularity",
		Source:    "SSA Baby Names",
		SourceURL: sourceURL,
		License:   "Public Domain",
		DataFile:  "data.json",
	})
}

// yearFromFilename extracts the year from a yobYYYY.txt filename.
func yearFromFilename(base string) (int, bool) {
	if !strings.HasPrefix(base, "yob") || !strings.HasSuffix(base, ".txt") {
		return 0, false
	}
	year, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(base, "yob"), ".txt"))
	if err != nil {
		return 0, false
	}
	return year, true
}

// parseYearOfBirthFile keeps the highest-count name per sex from one
// Name,Sex,Count file. The SSA files are already sorted by count within
// each sex, but the max is tracked explicitly rather than trusting order.
func parseYearOfBirthFile(path string) (demo.NamePopularityRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rec := make(demo.NamePopularityRecord)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		parts := strings.SplitN(scanner.Text(), ",", 3)
		if len(parts) != 3 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		if name == "" {
			continue
		}

		var g demo.Gender
		switch strings.TrimSpace(parts[1]) {
		case "M":
			g = demo.Male
		case "F":
			g = demo.Female
		default:
			continue
		}

		count, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			continue
		}

		if existing, ok := rec[g]; !ok || count > existing.Count {
			rec[g] = demo.NameEntry{Name: name, Count: count}
		}
	}
	return rec, scanner.Err()
}
