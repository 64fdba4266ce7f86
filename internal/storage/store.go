package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/episim/internal/epidemic"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// RunDir is the directory holding the files of one run.
func (s *Store) RunDir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string             `json:"id"`
	Model        string             `json:"model"`
	Preset       string             `json:"preset,omitempty"`
	Timestamp    time.Time          `json:"timestamp"`
	Seed         int64              `json:"seed"`
	Dt           float64            `json:"dt"`
	MaxSteps     int                `json:"max_steps"`
	Distribution string             `json:"distribution"`
	Steps        int                `json:"steps"`
	Labels       []string           `json:"labels"`
	Params       map[string]float64 `json:"params,omitempty"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Save writes a run directory for rec. Run settings come from meta; the
// model, labels, steps and metrics are taken from the record.
func (s *Store) Save(meta RunMetadata, rec *epidemic.Record) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", rec.Model, now.UnixNano())
	runDir := s.RunDir(runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Model = rec.Model
	meta.Timestamp = now
	meta.Steps = rec.Steps
	meta.Labels = rec.Labels
	meta.Metrics = rec.Metrics

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := ExportCSV(csvFile, rec); err != nil {
		return "", err
	}
	return runID, nil
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse %s metadata: %w", runID, err)
	}
	return &meta, nil
}

// LoadTrajectory rebuilds the record of a saved run.
func (s *Store) LoadTrajectory(runID string) (*epidemic.Record, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s trajectory: %w", runID, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read %s trajectory: missing header", runID)
	}

	rec := &epidemic.Record{
		Model:   meta.Model,
		Labels:  rows[0][1:],
		Times:   make([]float64, 0, len(rows)-1),
		Counts:  make([][]int64, 0, len(rows)-1),
		Steps:   meta.Steps,
		Metrics: meta.Metrics,
	}

	for i, row := range rows[1:] {
		t, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		counts := make([]int64, len(row)-1)
		for j, field := range row[1:] {
			v, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d, %s: %w", i+1, rec.Labels[j], err)
			}
			counts[j] = v
		}
		rec.Times = append(rec.Times, t)
		rec.Counts = append(rec.Counts, counts)
	}

	return rec, nil
}
