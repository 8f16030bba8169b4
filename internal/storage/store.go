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
	"strings"
	"time"

	"github.com/san-kum/mandelview/internal/analysis"
	"github.com/san-kum/mandelview/internal/fractal"
)

// Store keeps saved views on disk, one directory per view holding
// metadata.json and histogram.csv. Views are reproduced by re-rendering, so
// no pixels are stored.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type ViewMetadata struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Scheme    int       `json:"scheme"`
	OffsetX   float64   `json:"offset_x"`
	OffsetY   float64   `json:"offset_y"`
	Scale     float64   `json:"scale"`
	CenterRe  float64   `json:"center_re"`
	CenterIm  float64   `json:"center_im"`
	Backend   string    `json:"backend"`
	ElapsedMs float64   `json:"elapsed_ms"`
	InSet     float64   `json:"in_set"`
	MeanIter  float64   `json:"mean_iter"`
}

// Viewport rebuilds the saved viewport.
func (m *ViewMetadata) Viewport() fractal.Viewport {
	return fractal.Viewport{OffsetX: m.OffsetX, OffsetY: m.OffsetY, Scale: m.Scale}
}

// View describes one rendered frame worth keeping.
type View struct {
	Name          string
	Width, Height int
	Viewport      fractal.Viewport
	Scheme        fractal.Scheme
	Backend       string
	Elapsed       time.Duration
	Stats         *analysis.EscapeStats
}

func (s *Store) Save(v View) (string, error) {
	if v.Width <= 1 || v.Height <= 1 {
		return "", fractal.ErrNoFrame
	}
	if err := v.Viewport.Validate(); err != nil {
		return "", err
	}

	name := strings.TrimSpace(v.Name)
	if name == "" {
		name = "view"
	}
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' {
			return '-'
		}
		return r
	}, name)

	now := time.Now()
	viewID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	viewDir := filepath.Join(s.baseDir, viewID)

	if err := os.MkdirAll(viewDir, 0755); err != nil {
		return "", err
	}

	c := v.Viewport.Center(v.Width, v.Height)
	meta := ViewMetadata{
		ID:        viewID,
		Name:      name,
		Timestamp: now,
		Width:     v.Width,
		Height:    v.Height,
		Scheme:    int(v.Scheme),
		OffsetX:   v.Viewport.OffsetX,
		OffsetY:   v.Viewport.OffsetY,
		Scale:     v.Viewport.Scale,
		CenterRe:  real(c),
		CenterIm:  imag(c),
		Backend:   v.Backend,
		ElapsedMs: float64(v.Elapsed.Microseconds()) / 1000,
	}
	if v.Stats != nil {
		meta.InSet = v.Stats.InSetFraction()
		meta.MeanIter = v.Stats.Mean
	}

	metaFile, err := os.Create(filepath.Join(viewDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if v.Stats == nil {
		return viewID, nil
	}

	csvFile, err := os.Create(filepath.Join(viewDir, "histogram.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"iterations", "pixels"}); err != nil {
		return "", err
	}
	for n, count := range v.Stats.Histogram {
		if err := w.Write([]string{strconv.Itoa(n), strconv.Itoa(count)}); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return viewID, nil
}

// List returns saved views, oldest first.
func (s *Store) List() ([]ViewMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ViewMetadata{}, nil
		}
		return nil, err
	}

	views := make([]ViewMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		views = append(views, *meta)
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].Timestamp.Before(views[j].Timestamp)
	})
	return views, nil
}

func (s *Store) Load(viewID string) (*ViewMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, viewID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta ViewMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadHistogram reads the escape histogram saved with a view, indexed by
// iteration count.
func (s *Store) LoadHistogram(viewID string) ([]int, error) {
	file, err := os.Open(filepath.Join(s.baseDir, viewID, "histogram.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	hist := make([]int, fractal.MaxIter+1)
	for i := 1; i < len(records); i++ {
		if len(records[i]) != 2 {
			continue
		}
		n, err := strconv.Atoi(records[i][0])
		if err != nil || n < 0 || n >= len(hist) {
			continue
		}
		count, err := strconv.Atoi(records[i][1])
		if err != nil {
			continue
		}
		hist[n] = count
	}

	return hist, nil
}

// ExportJSON writes a view's metadata and histogram as one JSON document.
func (s *Store) ExportJSON(w io.Writer, viewID string) error {
	meta, err := s.Load(viewID)
	if err != nil {
		return err
	}

	hist, err := s.LoadHistogram(viewID)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	data := struct {
		*ViewMetadata
		Histogram []int `json:"histogram,omitempty"`
	}{meta, hist}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
