package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/orbitlab/internal/orbit"
	"github.com/san-kum/orbitlab/internal/stability"
)

// Store persists runs and sweeps under a base directory, one
// subdirectory per result: metadata.json plus states.csv or grid.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type Metadata struct {
	ID        string             `json:"id"`
	Kind      string             `json:"kind"` // "run" or "sweep"
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	G         float64            `json:"g"`
	Softening float64            `json:"softening"`
	Step      float64            `json:"step"`
	Duration  float64            `json:"duration"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// SaveRun writes a trajectory: one csv row per sampled state, columns
// t then per-body position and velocity components.
func (s *Store) SaveRun(meta Metadata, times []float64, states []orbit.Bodies) (string, error) {
	meta.Kind = "run"
	runDir, err := s.newResultDir(&meta)
	if err != nil {
		return "", err
	}

	if err := s.writeMetadata(runDir, meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if len(states) > 0 {
		header := []string{"t"}
		for i := range states[0] {
			n := strconv.Itoa(i + 1)
			header = append(header,
				"pos_x_"+n, "pos_y_"+n, "pos_z_"+n,
				"vel_x_"+n, "vel_y_"+n, "vel_z_"+n)
		}
		if err := w.Write(header); err != nil {
			return "", err
		}
	}

	for i, bodies := range states {
		row := []string{formatFloat(times[i])}
		for _, b := range bodies {
			row = append(row,
				formatFloat(b.Position.X), formatFloat(b.Position.Y), formatFloat(b.Position.Z),
				formatFloat(b.Velocity.X), formatFloat(b.Velocity.Y), formatFloat(b.Velocity.Z))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return meta.ID, nil
}

// SaveSweep writes a stability grid: header row of x offsets, then one
// row per y offset with the y value in the first column.
func (s *Store) SaveSweep(meta Metadata, grid *stability.Grid) (string, error) {
	meta.Kind = "sweep"
	runDir, err := s.newResultDir(&meta)
	if err != nil {
		return "", err
	}

	if err := s.writeMetadata(runDir, meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, "grid.csv"))
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{grid.YParam + "\\" + grid.XParam}
	for _, x := range grid.XValues {
		header = append(header, formatFloat(x))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for j, row := range grid.Scores {
		record := []string{formatFloat(grid.YValues[j])}
		for _, score := range row {
			record = append(record, formatFloat(score))
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	return meta.ID, nil
}

// LoadRun reads a stored trajectory back into sampled states.
func (s *Store) LoadRun(id string) (times []float64, states []orbit.Bodies, err error) {
	f, err := os.Open(filepath.Join(s.baseDir, id, "states.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return nil, nil, nil
	}

	nBodies := (len(records[0]) - 1) / 6
	for _, rec := range records[1:] {
		if len(rec) != 1+6*nBodies {
			return nil, nil, fmt.Errorf("malformed states row: %d columns", len(rec))
		}
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, nil, err
		}
		bodies := make(orbit.Bodies, nBodies)
		for i := 0; i < nBodies; i++ {
			vals := make([]float64, 6)
			for k := 0; k < 6; k++ {
				vals[k], err = strconv.ParseFloat(rec[1+i*6+k], 64)
				if err != nil {
					return nil, nil, err
				}
			}
			bodies[i].Position.X, bodies[i].Position.Y, bodies[i].Position.Z = vals[0], vals[1], vals[2]
			bodies[i].Velocity.X, bodies[i].Velocity.Y, bodies[i].Velocity.Z = vals[3], vals[4], vals[5]
		}
		times = append(times, t)
		states = append(states, bodies)
	}
	return times, states, nil
}

// LoadSweep reads a stored stability grid. Param names come back from
// the corner header cell; masses are not stored, so the grid is for
// rendering only.
func (s *Store) LoadSweep(id string) (*stability.Grid, error) {
	f, err := os.Open(filepath.Join(s.baseDir, id, "grid.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("grid %s has no rows", id)
	}

	grid := &stability.Grid{}
	if yx := strings.SplitN(records[0][0], "\\", 2); len(yx) == 2 {
		grid.YParam, grid.XParam = yx[0], yx[1]
	}
	for _, cell := range records[0][1:] {
		x, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, err
		}
		grid.XValues = append(grid.XValues, x)
	}

	for _, rec := range records[1:] {
		if len(rec) != 1+len(grid.XValues) {
			return nil, fmt.Errorf("malformed grid row: %d columns", len(rec))
		}
		y, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, err
		}
		grid.YValues = append(grid.YValues, y)

		row := make([]float64, len(grid.XValues))
		for i, cell := range rec[1:] {
			if row[i], err = strconv.ParseFloat(cell, 64); err != nil {
				return nil, err
			}
		}
		grid.Scores = append(grid.Scores, row)
	}
	return grid, nil
}

// List returns the metadata of every stored result, newest first.
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var metas []Metadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.LoadMetadata(e.Name())
		if err != nil {
			continue // skip foreign directories
		}
		metas = append(metas, meta)
	}

	sort.Slice(metas, func(i, j int) bool {
		return metas[i].Timestamp.After(metas[j].Timestamp)
	})
	return metas, nil
}

func (s *Store) LoadMetadata(id string) (Metadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return Metadata{}, err
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return Metadata{}, err
	}
	return meta, nil
}

// ResultPath returns the directory a result was stored in.
func (s *Store) ResultPath(id string) string {
	return filepath.Join(s.baseDir, id)
}

func (s *Store) newResultDir(meta *Metadata) (string, error) {
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%s_%d", meta.Kind, meta.Preset, time.Now().Unix())
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	dir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

func (s *Store) writeMetadata(dir string, meta Metadata) error {
	f, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
