package mapgen

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// MapArtifact is the persisted form of a generated map: run metadata plus
// the grid as text rows, one rune per cell. It is what the CLI writes,
// the daemon responds with, and external tooling consumes.
type MapArtifact struct {
	Name        string    `yaml:"name" json:"name"`
	Profile     string    `yaml:"profile" json:"profile"`
	Seed        int64     `yaml:"seed" json:"seed"`
	Width       int       `yaml:"width" json:"width"`
	Height      int       `yaml:"height" json:"height"`
	Spawn       Position  `yaml:"spawn" json:"spawn"`
	Finished    bool      `yaml:"finished" json:"finished"`
	Steps       int       `yaml:"steps" json:"steps"`
	GeneratedAt time.Time `yaml:"generated_at" json:"generated_at"`
	Rows        []string  `yaml:"rows" json:"rows"`
}

// NewMapArtifact captures a generated map and its run metadata.
func NewMapArtifact(m *Map, name, profile string, seed int64, stats Stats) *MapArtifact {
	rows := make([]string, 0, m.Height)
	var row strings.Builder
	for y := 0; y < m.Height; y++ {
		row.Reset()
		for x := 0; x < m.Width; x++ {
			row.WriteRune(m.At(Position{X: x, Y: y}).Rune())
		}
		rows = append(rows, row.String())
	}

	return &MapArtifact{
		Name:        name,
		Profile:     profile,
		Seed:        seed,
		Width:       m.Width,
		Height:      m.Height,
		Spawn:       m.Spawn,
		Finished:    stats.Finished,
		Steps:       stats.Steps,
		GeneratedAt: time.Now().UTC(),
		Rows:        rows,
	}
}

// ToMap rebuilds the grid from the artifact rows. Row counts, row widths
// and cell runes are all validated; a corrupted artifact errors instead
// of producing a silently wrong map.
func (a *MapArtifact) ToMap() (*Map, error) {
	if len(a.Rows) != a.Height {
		return nil, fmt.Errorf("map artifact has %d rows, header says %d", len(a.Rows), a.Height)
	}

	m := NewMap(a.Width, a.Height, BlockHookable, a.Spawn)
	for y, row := range a.Rows {
		runes := []rune(row)
		if len(runes) != a.Width {
			return nil, fmt.Errorf("map artifact row %d has %d cells, header says %d", y, len(runes), a.Width)
		}
		for x, r := range runes {
			block, err := BlockFromRune(r)
			if err != nil {
				return nil, fmt.Errorf("map artifact row %d, cell %d: %w", y, x, err)
			}
			m.Set(Position{X: x, Y: y}, block)
		}
	}

	return m, nil
}

// EncodeYAML writes the artifact as YAML with a short header comment.
func (a *MapArtifact) EncodeYAML(w io.Writer) error {
	fmt.Fprintf(w, "# Generated map: %s\n", a.Name)
	fmt.Fprintf(w, "# Profile %s, seed %d, %dx%d grid\n\n", a.Profile, a.Seed, a.Width, a.Height)

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(a); err != nil {
		return fmt.Errorf("failed to encode map artifact: %w", err)
	}
	return encoder.Close()
}

// WriteFile writes the artifact to a YAML file.
func (a *MapArtifact) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create map artifact file: %w", err)
	}
	defer f.Close()

	return a.EncodeYAML(f)
}

// DecodeMapArtifact reads an artifact from YAML.
func DecodeMapArtifact(r io.Reader) (*MapArtifact, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read map artifact: %w", err)
	}

	var artifact MapArtifact
	if err := yaml.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse map artifact: %w", err)
	}
	return &artifact, nil
}

// ReadMapArtifact loads an artifact from a YAML file.
func ReadMapArtifact(path string) (*MapArtifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open map artifact: %w", err)
	}
	defer f.Close()

	return DecodeMapArtifact(f)
}
