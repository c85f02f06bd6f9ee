package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hazyhaar/americana/pkg/demo"
	"github.com/hazyhaar/americana/pkg/store"
)

func init() {
	Register(&censusDemographicsAdapter{})
}

// censusDemographicsAdapter builds the demographics dataset from the Census
// Bureau's age-and-sex summary table: one row per year with the sex shares
// and the overall and per-sex median ages.
type censusDemographicsAdapter struct{}

func (a *censusDemographicsAdapter) ID() string        { return "census-demographics-us" }
func (a *censusDemographicsAdapter) DatasetID() string { return store.DemographicsDir }
func (a *censusDemographicsAdapter) Description() string {
	return "US Census Bureau age and sex estimates"
}
func (a *censusDemographicsAdapter) DefaultURL() string {
	return "https://www2.census.gov/programs-surveys/demo/tables/age-and-sex/us-median-age-sex.csv"
}
func (a *censusDemographicsAdapter) License() string { return "Public Domain" }

func (a *censusDemographicsAdapter) Import(ctx context.Context, sourceURL, dataDir string) error {
	dlDir := filepath.Join(dataDir, "_download")
	if err := ensureDir(dlDir); err != nil {
		return err
	}
	defer os.RemoveAll(dlDir)

	csvPath := filepath.Join(dlDir, "demographics.csv")
	fmt.Printf("  downloading %s...\n", sourceURL)
	if err := downloadFile(ctx, sourceURL, csvPath); err != nil {
		return fmt.Errorf("download: %w", err)
	}

	records, err := parseCensusDemographics(csvPath)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	fmt.Printf("  %d years of demographic data\n", len(records))

	dsDir := filepath.Join(dataDir, a.DatasetID())
	if err := store.SaveRecords(dsDir, records); err != nil {
		return fmt.Errorf("save dataset: %w", err)
	}

	return store.WriteManifest(dsDir, &store.Manifest{
		ID:        "demographics-us",
		Version:   "2026-08",
		Dataset:   "demographics",
		Source:    "US Census Bureau",
		SourceURL: sourceURL,
		License:   "Public Domain",
		DataFile:  "data.json",
	})
}

// parseCensusDemographics reads the Census age-and-sex CSV. The table ships
// in Windows-1252; columns: year, male_share, female_share, median_age,
// median_age_male, median_age_female. Per-sex medians may be blank in
// older vintages and are simply omitted.
func parseCensusDemographics(path string) (map[int]demo.YearRecord, error) {
	r, closer, err := openCSV(path, "windows-1252", ',')
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	colIdx := make(map[string]int)
	for i, h := range header {
		colIdx[strings.TrimSpace(strings.ToLower(h))] = i
	}
	yearCol, ok := colIdx["year"]
	if !ok {
		return nil, fmt.Errorf("column 'year' not found in header %v", header)
	}

	records := make(map[int]demo.YearRecord)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if yearCol >= len(row) {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(row[yearCol]))
		if err != nil {
			continue
		}

		rec := demo.YearRecord{Gender: demo.GenderDistribution{}}
		if v, ok := cellFloat(row, colIdx, "male_share"); ok {
			rec.Gender[demo.Male] = v
		}
		if v, ok := cellFloat(row, colIdx, "female_share"); ok {
			rec.Gender[demo.Female] = v
		}
		if len(rec.Gender) == 0 {
			rec.Gender = nil
		}

		if v, ok := cellFloat(row, colIdx, "median_age"); ok {
			rec.Age.Median = &v
		}
		byGender := map[demo.Gender]float64{}
		if v, ok := cellFloat(row, colIdx, "median_age_male"); ok {
			byGender[demo.Male] = v
		}
		if v, ok := cellFloat(row, colIdx, "median_age_female"); ok {
			byGender[demo.Female] = v
		}
		if len(byGender) > 0 {
			rec.Age.ByGender = byGender
		}

		// Rows with no median age would fail store validation; skip them
		// here so one gap year does not poison the whole dataset.
		if rec.Age.Median == nil {
			continue
		}
		records[year] = rec
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no usable rows in %s", filepath.Base(path))
	}
	return records, nil
}

func cellFloat(row []string, colIdx map[string]int, col string) (float64, bool) {
	idx, ok := colIdx[col]
	if !ok || idx >= len(row) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
