// Package storage persists completed runs under a data directory: JSON
// metadata, the per-step history as CSV, and the final particle snapshot.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/arvela/binsim/internal/sim"
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

type RunMetadata struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Seed      int64     `json:"seed"`

	NStar1    int     `json:"nstar_1"`
	NStar2    int     `json:"nstar_2"`
	StopRatio float64 `json:"stop_ratio"`
	Dt        float64 `json:"dt"`
	Steps     int     `json:"steps"`

	MergerStep  int                `json:"merger_step"`
	MergerTime  float64            `json:"merger_time"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
}

// SnapshotPath returns where a run's final snapshot lives.
func (s *Store) SnapshotPath(runID string) string {
	return filepath.Join(s.baseDir, runID, "state.bin")
}

// ParamsPath returns where a run's parameter file lives.
func (s *Store) ParamsPath(runID string) string {
	return filepath.Join(s.baseDir, runID, "inspiral.par")
}

// Save writes a run's metadata and history and returns the run ID. The
// caller writes the snapshot separately via SnapshotPath.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.MergerStep = result.MergerStep
	meta.MergerTime = result.MergerTime
	meta.EnergyDrift = result.EnergyDrift
	meta.Metrics = result.Metrics

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writeHistory(filepath.Join(runDir, "history.csv"), result); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) writeHistory(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"time", "separation", "x1", "y1", "x2", "y2"}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'g', -1, 64),
			strconv.FormatFloat(result.Separations[i], 'g', -1, 64),
			strconv.FormatFloat(result.Orbit1[i][0], 'g', -1, 64),
			strconv.FormatFloat(result.Orbit1[i][1], 'g', -1, 64),
			strconv.FormatFloat(result.Orbit2[i][0], 'g', -1, 64),
			strconv.FormatFloat(result.Orbit2[i][1], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// List returns the metadata of every stored run.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
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
	return runs, nil
}

// Load returns one run's metadata.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// History reloads a run's per-step history.
type History struct {
	Times       []float64
	Separations []float64
	Orbit1      [][2]float64
	Orbit2      [][2]float64
}

func (s *Store) LoadHistory(runID string) (*History, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "history.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	h := &History{}
	for i := 1; i < len(records); i++ {
		row := records[i]
		if len(row) < 6 {
			continue
		}
		vals := make([]float64, 6)
		ok := true
		for j := 0; j < 6; j++ {
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		h.Times = append(h.Times, vals[0])
		h.Separations = append(h.Separations, vals[1])
		h.Orbit1 = append(h.Orbit1, [2]float64{vals[2], vals[3]})
		h.Orbit2 = append(h.Orbit2, [2]float64{vals[4], vals[5]})
	}
	return h, nil
}
