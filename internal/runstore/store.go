// Package runstore persists spectrum scans under a data directory: one
// subdirectory per scan holding metadata.json and points.csv.
package runstore

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/nuphys/nusim/internal/spectrum"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type ScanMetadata struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	XSec       string    `json:"xsec"`
	Flux       string    `json:"flux"`
	Integrator string    `json:"integrator"`
	EMin       float64   `json:"emin"`
	EMax       float64   `json:"emax"`
	Points     int       `json:"points"`
	Total      float64   `json:"total_rate"`
}

// Save writes one scan to disk and returns its generated ID.
func (s *Store) Save(cfg spectrum.Config, result *spectrum.Result) (string, error) {
	scanID := fmt.Sprintf("scan_%d", time.Now().Unix())
	scanDir := filepath.Join(s.baseDir, scanID)

	if err := os.MkdirAll(scanDir, 0755); err != nil {
		return "", err
	}

	meta := ScanMetadata{
		ID:         scanID,
		Timestamp:  time.Now(),
		XSec:       cfg.XSec,
		Flux:       cfg.Flux,
		Integrator: cfg.Integrator,
		EMin:       cfg.EMin,
		EMax:       cfg.EMax,
		Points:     cfg.Points,
		Total:      result.Total,
	}

	metaFile, err := os.Create(filepath.Join(scanDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(scanDir, "points.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"energy", "xsec", "rate"}); err != nil {
		return "", err
	}
	for i := range result.Energies {
		row := []string{
			strconv.FormatFloat(result.Energies[i], 'g', 8, 64),
			strconv.FormatFloat(result.XSecs[i], 'g', 8, 64),
			strconv.FormatFloat(result.Rates[i], 'g', 8, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return scanID, nil
}

// List returns the metadata of every saved scan, newest first.
func (s *Store) List() ([]ScanMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var scans []ScanMetadata
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue // not a scan directory
		}
		var meta ScanMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		scans = append(scans, meta)
	}

	sort.Slice(scans, func(i, j int) bool { return scans[i].Timestamp.After(scans[j].Timestamp) })
	return scans, nil
}

// LoadPoints reads back the energy/xsec/rate grid of a saved scan.
func (s *Store) LoadPoints(scanID string) (*spectrum.Result, error) {
	f, err := os.Open(filepath.Join(s.baseDir, scanID, "points.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("runstore: scan %s has no points", scanID)
	}

	result := &spectrum.Result{}
	for _, row := range rows[1:] {
		if len(row) != 3 {
			return nil, fmt.Errorf("runstore: malformed row in scan %s", scanID)
		}
		e, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, err
		}
		x, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, err
		}
		r, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, err
		}
		result.Energies = append(result.Energies, e)
		result.XSecs = append(result.XSecs, x)
		result.Rates = append(result.Rates, r)
	}

	return result, nil
}
