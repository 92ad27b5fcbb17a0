// Package storage keeps headless run traces on disk: one directory per run
// holding metadata.json and ticks.csv. Traces are diagnostic records of
// summary metrics; they are never loaded back into an engine.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/swarmform/internal/sim"
)

const (
	metadataFile = "metadata.json"
	traceFile    = "ticks.csv"
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
	ID             string             `json:"id"`
	Timestamp      time.Time          `json:"timestamp"`
	Seed           uint64             `json:"seed"`
	Particles      int                `json:"particles"`
	Stiffness      float64            `json:"stiffness"`
	Damping        float64            `json:"damping"`
	ExplosionForce float64            `json:"explosion_force"`
	Ticks          int                `json:"ticks"`
	ToggleEvery    int                `json:"toggle_every"`
	Toggles        []uint64           `json:"toggles"`
	ElapsedMs      float64            `json:"elapsed_ms"`
	Metrics        map[string]float64 `json:"metrics"`
}

// Save writes meta and the per-tick samples of result under a fresh run ID,
// which is returned.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	meta.Timestamp = time.Now()
	meta.ID = fmt.Sprintf("swarm_%d", meta.Timestamp.UnixNano())
	meta.Toggles = result.Toggles
	meta.Metrics = result.Metrics
	meta.ElapsedMs = float64(result.Elapsed.Microseconds()) / 1000

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()
	if err := ExportJSON(metaFile, &meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, traceFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()
	if err := WriteCSV(csvFile, result); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// WriteCSV writes one row per sample: tick, state, then each metric.
func WriteCSV(out io.Writer, result *sim.Result) error {
	w := csv.NewWriter(out)

	header := append([]string{"tick", "state"}, result.Names...)
	if err := w.Write(header); err != nil {
		return err
	}
	for i, row := range result.Samples {
		rec := make([]string, 0, len(row)+2)
		rec = append(rec, strconv.FormatUint(result.Ticks[i], 10), result.States[i].String())
		for _, val := range row {
			rec = append(rec, strconv.FormatFloat(val, 'g', 10, 64))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func ExportJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// List returns every readable run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Trace is the parsed content of ticks.csv.
type Trace struct {
	Names   []string
	Ticks   []uint64
	States  []string
	Samples [][]float64
}

// Column returns the samples of metric name, or nil if absent.
func (t *Trace) Column(name string) []float64 {
	for col, n := range t.Names {
		if n != name {
			continue
		}
		out := make([]float64, len(t.Samples))
		for i, row := range t.Samples {
			out[i] = row[col]
		}
		return out
	}
	return nil
}

func (s *Store) LoadTrace(runID string) (*Trace, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 || len(records[0]) < 2 {
		return nil, fmt.Errorf("trace %s: missing header", runID)
	}

	trace := &Trace{Names: records[0][2:]}
	for line, rec := range records[1:] {
		tick, err := strconv.ParseUint(rec[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("trace %s line %d: %w", runID, line+2, err)
		}
		row := make([]float64, len(rec)-2)
		for j, field := range rec[2:] {
			if row[j], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, fmt.Errorf("trace %s line %d: %w", runID, line+2, err)
			}
		}
		trace.Ticks = append(trace.Ticks, tick)
		trace.States = append(trace.States, rec[1])
		trace.Samples = append(trace.Samples, row)
	}
	return trace, nil
}
