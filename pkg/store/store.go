// Package store persists and serves the year-indexed datasets the profile
// engine consumes: demographic records and name popularity, each a JSON
// document plus a provenance manifest under its own subdirectory of the
// data dir. The store validates structure at load time; the engine in
// pkg/demo then never has to deal with malformed records.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/hazyhaar/americana/pkg/demo"
)

// Dataset subdirectories under the data dir.
const (
	DemographicsDir = "demographics"
	NamesDir        = "names"
)

// ErrNoStore reports that the demographics dataset has never been
// populated. Errors wrapping it carry remediation guidance for the
// operator.
var ErrNoStore = errors.New("no demographic data available")

// MalformedRecordError reports a year record the profile engine cannot
// tolerate. Ordinary partial data (missing gender split, missing per-gender
// medians) is not malformed; a record with no usable age block is.
type MalformedRecordError struct {
	Year   int
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record for year %d: %s", e.Year, e.Reason)
}

// Store is an immutable snapshot of both datasets, reloadable from disk.
type Store struct {
	dir string

	mu      sync.RWMutex
	records map[int]demo.YearRecord
	names   demo.NameTable
	info    []DatasetInfo
}

// DatasetInfo is the public metadata for one loaded dataset.
type DatasetInfo struct {
	Manifest Manifest `json:"manifest"`
	Years    int      `json:"years"`
}

// Open loads both datasets from dir. A missing or empty demographics
// dataset yields an error wrapping ErrNoStore; a missing names dataset is
// fine and simply leaves the store without name data.
func Open(dir string) (*Store, error) {
	s := &Store{dir: dir}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads both datasets from disk, replacing the snapshot
// atomically. Used for hot reload in serve mode.
func (s *Store) Reload() error {
	records, demoInfo, err := loadRecords(filepath.Join(s.dir, DemographicsDir))
	if err != nil {
		return err
	}

	names, namesInfo, err := loadNames(filepath.Join(s.dir, NamesDir))
	if err != nil {
		return err
	}

	info := []DatasetInfo{}
	if demoInfo != nil {
		info = append(info, *demoInfo)
	}
	if namesInfo != nil {
		info = append(info, *namesInfo)
	}

	s.mu.Lock()
	s.records, s.names, s.info = records, names, info
	s.mu.Unlock()
	return nil
}

func loadRecords(dir string) (map[int]demo.YearRecord, *DatasetInfo, error) {
	path := filepath.Join(dir, "data.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w (run \"americana fetch --all\" to download the datasets)", ErrNoStore)
		}
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	var records map[int]demo.YearRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%w (demographics dataset is empty; run \"americana fetch --all\")", ErrNoStore)
	}

	for year, rec := range records {
		if err := validateRecord(year, rec); err != nil {
			return nil, nil, err
		}
	}

	info := &DatasetInfo{Years: len(records)}
	if m, err := LoadManifest(filepath.Join(dir, "manifest.yaml")); err == nil {
		info.Manifest = *m
	}
	return records, info, nil
}

func loadNames(dir string) (demo.NameTable, *DatasetInfo, error) {
	path := filepath.Join(dir, "data.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return demo.NameTable{}, nil, nil
		}
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	var names demo.NameTable
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}

	info := &DatasetInfo{Years: len(names)}
	if m, err := LoadManifest(filepath.Join(dir, "manifest.yaml")); err == nil {
		info.Manifest = *m
	}
	return names, info, nil
}

// validateRecord enforces the structural shape the profile engine relies
// on. Partial data stays legal: an empty gender distribution or a missing
// per-gender breakdown resolves to absent profile fields downstream.
func validateRecord(year int, rec demo.YearRecord) error {
	if rec.Age.Median == nil {
		return &MalformedRecordError{Year: year, Reason: "missing overall median age"}
	}
	if *rec.Age.Median < 0 {
		return &MalformedRecordError{Year: year, Reason: fmt.Sprintf("negative median age %v", *rec.Age.Median)}
	}
	for g, age := range rec.Age.ByGender {
		if age < 0 {
			return &MalformedRecordError{Year: year, Reason: fmt.Sprintf("negative median age %v for %s", age, g)}
		}
	}
	for g, pct := range rec.Gender {
		if pct < 0 || pct > 100 {
			return &MalformedRecordError{Year: year, Reason: fmt.Sprintf("gender share %v for %s outside 0-100", pct, g)}
		}
	}
	return nil
}

// Record returns the demographic record for year, or a
// demo.YearNotFoundError when the store has no record for it.
func (s *Store) Record(year int) (demo.YearRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[year]
	if !ok {
		return demo.YearRecord{}, &demo.YearNotFoundError{Year: year}
	}
	return rec, nil
}

// Records returns the full year-indexed record map. Callers treat it as
// read-only.
func (s *Store) Records() map[int]demo.YearRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Years returns all covered years in ascending order.
func (s *Store) Years() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	years := make([]int, 0, len(s.records))
	for y := range s.records {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// LatestYear returns the most recent covered year. Open guarantees at
// least one record, so the result is always valid.
func (s *Store) LatestYear() int {
	years := s.Years()
	return years[len(years)-1]
}

// Names returns the name popularity table, empty when the names dataset
// was never fetched. Callers treat it as read-only.
func (s *Store) Names() demo.NameTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.names
}

// Info returns metadata for the loaded datasets.
func (s *Store) Info() []DatasetInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info
}

// SaveRecords writes a demographics dataset as dir/data.json.
func SaveRecords(dir string, records map[int]demo.YearRecord) error {
	return saveJSON(dir, records)
}

// SaveNames writes a name popularity dataset as dir/data.json.
func SaveNames(dir string, names demo.NameTable) error {
	return saveJSON(dir, names)
}

func saveJSON(dir string, v any) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "data.json"), data, 0o644)
}
