package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/orbitsim/internal/physics"
)

// ErrMalformed indicates a trajectory file whose header does not describe
// (x, y) column pairs.
var ErrMalformed = errors.New("storage: malformed trajectory")

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
	ID          string             `json:"id"`
	Scenario    string             `json:"scenario"`
	Timestamp   time.Time          `json:"timestamp"`
	Dt          float64            `json:"dt"`
	G           float64            `json:"g"`
	Steps       int                `json:"steps"`
	SampleEvery int                `json:"sample_every"`
	Bodies      []string           `json:"bodies"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Recorder captures every body's position every SampleEvery ticks. It
// implements sim.Observer.
type Recorder struct {
	SampleEvery int
	Names       []string
	Times       []float64
	Frames      [][]float64
}

func NewRecorder(sampleEvery int) *Recorder {
	if sampleEvery < 1 {
		sampleEvery = 1
	}
	return &Recorder{SampleEvery: sampleEvery}
}

// Capture records the current state regardless of the sampling interval.
// Use it once before the first step to keep the initial positions.
func (r *Recorder) Capture(t float64, bodies []*physics.Body) {
	if r.Names == nil {
		r.Names = make([]string, len(bodies))
		for i, b := range bodies {
			r.Names[i] = b.Name
		}
	}
	frame := make([]float64, 0, 2*len(bodies))
	for _, b := range bodies {
		frame = append(frame, b.Pos.X, b.Pos.Y)
	}
	r.Times = append(r.Times, t)
	r.Frames = append(r.Frames, frame)
}

func (r *Recorder) OnStep(tick int, t float64, bodies []*physics.Body) {
	if tick%r.SampleEvery != 0 {
		return
	}
	r.Capture(t, bodies)
}

// Trajectory is a recorded run read back from disk.
type Trajectory struct {
	Names  []string
	Times  []float64
	Frames [][]float64
}

// Series returns the x and y samples of the named body.
func (t *Trajectory) Series(name string) (xs, ys []float64, ok bool) {
	idx := -1
	for i, n := range t.Names {
		if n == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil, false
	}
	xs = make([]float64, len(t.Frames))
	ys = make([]float64, len(t.Frames))
	for i, f := range t.Frames {
		xs[i] = f[2*idx]
		ys[i] = f[2*idx+1]
	}
	return xs, ys, true
}

func (s *Store) Save(meta RunMetadata, rec *Recorder) (string, error) {
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", meta.Scenario, time.Now().UnixNano())
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Bodies = rec.Names
	meta.SampleEvery = rec.SampleEvery

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

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

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)

	header := []string{"time"}
	for _, name := range rec.Names {
		header = append(header, name+"_x", name+"_y")
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, frame := range rec.Frames {
		row := []string{strconv.FormatFloat(rec.Times[i], 'f', 6, 64)}
		for _, val := range frame {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return meta.ID, nil
}

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

func (s *Store) LoadTrajectory(runID string) (*Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrMalformed)
	}

	header := records[0]
	if len(header) < 1 || (len(header)-1)%2 != 0 {
		return nil, fmt.Errorf("%w: %d columns", ErrMalformed, len(header))
	}

	traj := &Trajectory{
		Times:  make([]float64, 0, len(records)-1),
		Frames: make([][]float64, 0, len(records)-1),
	}
	for i := 1; i < len(header); i += 2 {
		name := header[i]
		if len(name) < 2 {
			return nil, fmt.Errorf("%w: column %q", ErrMalformed, name)
		}
		traj.Names = append(traj.Names, name[:len(name)-2])
	}

	for _, record := range records[1:] {
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("parse time %q: %w", record[0], err)
		}
		frame := make([]float64, len(record)-1)
		for j := 1; j < len(record); j++ {
			frame[j-1], err = strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", header[j], err)
			}
		}
		traj.Times = append(traj.Times, t)
		traj.Frames = append(traj.Frames, frame)
	}

	return traj, nil
}
