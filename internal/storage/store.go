package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/rs/xid"

	"github.com/san-kum/eulergrowth/internal/analysis"
	"github.com/san-kum/eulergrowth/internal/dynamo"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var trajectoryHeader = []string{"time", "euler", "analytical", "abs_error"}

type Store struct {
	baseDir string
	logger  *slog.Logger
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, logger: slog.Default()}
}

func (s *Store) WithLogger(l *slog.Logger) *Store {
	s.logger = l
	return s
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes a stored run. NaN and infinite floats are written
// as null and read back as NaN.
type RunMetadata struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Timestamp    time.Time          `json:"timestamp"`
	Params       dynamo.Params      `json:"params"`
	DoublingTime float64            `json:"doubling_time,omitempty"`
	Integrator   string             `json:"integrator"`
	Steps        int                `json:"steps"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Save writes a run directory holding the metadata and the trajectory next
// to its closed-form values. It returns the new run id.
func (s *Store) Save(meta RunMetadata, traj dynamo.Trajectory) (string, error) {
	if meta.Name == "" {
		meta.Name = "run"
	}
	meta.ID = fmt.Sprintf("%s_%s", meta.Name, xid.New().String())
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Steps = traj.Len()

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeRun(runDir, meta, traj); err != nil {
		if rmErr := os.RemoveAll(runDir); rmErr != nil {
			s.logger.Warn("partial run left behind", "dir", runDir, "err", rmErr)
		}
		return "", err
	}

	s.logger.Debug("run saved", "id", meta.ID, "steps", meta.Steps, "dir", runDir)
	return meta.ID, nil
}

func writeRun(runDir string, meta RunMetadata, traj dynamo.Trajectory) error {
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return err
	}
	cmp := analysis.Compare(traj, meta.Params.N0, meta.Params.Rate)
	return writeTrajectory(filepath.Join(runDir, trajectoryFile), cmp)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func writeTrajectory(path string, cmp *analysis.Comparison) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := WriteCSV(w, cmp); err != nil {
		return err
	}
	return f.Sync()
}

// WriteCSV writes the comparison with full float precision and flushes w.
func WriteCSV(w *csv.Writer, cmp *analysis.Comparison) error {
	if err := w.Write(trajectoryHeader); err != nil {
		return err
	}
	for _, s := range cmp.Samples {
		row := []string{
			formatFloat(s.Time),
			formatFloat(s.Euler),
			formatFloat(s.Exact),
			formatFloat(s.AbsError),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
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
			s.logger.Debug("skipping run", "dir", entry.Name(), "err", err)
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
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
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// ErrMalformedCSV indicates a trajectory file that does not match the
// layout written by Save.
var ErrMalformedCSV = errors.New("storage: malformed trajectory csv")

// LoadTrajectory reads back the Euler samples of a run.
func (s *Store) LoadTrajectory(runID string) (dynamo.Trajectory, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(trajectoryHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%w: missing header", ErrMalformedCSV)
	}

	traj := make(dynamo.Trajectory, 0, len(records)-1)
	for i, record := range records[1:] {
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedCSV, i+1, err)
		}
		v, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedCSV, i+1, err)
		}
		traj = append(traj, dynamo.Point{Time: t, Value: v})
	}
	return traj, nil
}
