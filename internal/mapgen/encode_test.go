package mapgen

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func artifactFixture() *MapArtifact {
	m := NewMap(4, 3, BlockHookable, Position{X: 1, Y: 1})
	m.Set(Position{X: 1, Y: 0}, BlockEmpty)
	m.Set(Position{X: 2, Y: 0}, BlockFreeze)
	m.Set(Position{X: 1, Y: 1}, BlockSpawn)
	m.Set(Position{X: 0, Y: 2}, BlockStart)
	m.Set(Position{X: 3, Y: 2}, BlockFinish)

	a := NewMapArtifact(m, "fixture", "default", 42, Stats{Steps: 7, Finished: true})
	a.GeneratedAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return a
}

func TestNewMapArtifactRows(t *testing.T) {
	a := artifactFixture()

	want := []string{
		"#.x#",
		"#S##",
		">##<",
	}
	if len(a.Rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(a.Rows), len(want))
	}
	for i, row := range want {
		if a.Rows[i] != row {
			t.Errorf("row %d = %q, want %q", i, a.Rows[i], row)
		}
	}

	if a.Width != 4 || a.Height != 3 {
		t.Errorf("dimensions = %dx%d, want 4x3", a.Width, a.Height)
	}
	if a.Spawn != (Position{X: 1, Y: 1}) {
		t.Errorf("spawn = %v, want (1,1)", a.Spawn)
	}
	if !a.Finished || a.Steps != 7 || a.Seed != 42 {
		t.Errorf("run metadata not carried over: %+v", a)
	}
}

func TestMapArtifactRoundTrip(t *testing.T) {
	a := artifactFixture()

	var buf bytes.Buffer
	if err := a.EncodeYAML(&buf); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "# Generated map: fixture\n") {
		t.Errorf("missing header comment, got %q", buf.String()[:40])
	}

	decoded, err := DecodeMapArtifact(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if decoded.Name != a.Name || decoded.Profile != a.Profile || decoded.Seed != a.Seed {
		t.Errorf("metadata mismatch: %+v", decoded)
	}
	if !decoded.GeneratedAt.Equal(a.GeneratedAt) {
		t.Errorf("GeneratedAt = %v, want %v", decoded.GeneratedAt, a.GeneratedAt)
	}
	if len(decoded.Rows) != len(a.Rows) {
		t.Fatalf("got %d rows, want %d", len(decoded.Rows), len(a.Rows))
	}
	for i := range a.Rows {
		if decoded.Rows[i] != a.Rows[i] {
			t.Errorf("row %d = %q, want %q", i, decoded.Rows[i], a.Rows[i])
		}
	}
}

func TestMapArtifactToMap(t *testing.T) {
	a := artifactFixture()

	m, err := a.ToMap()
	if err != nil {
		t.Fatalf("ToMap failed: %v", err)
	}

	if m.Width != 4 || m.Height != 3 {
		t.Fatalf("dimensions = %dx%d, want 4x3", m.Width, m.Height)
	}
	if m.Spawn != (Position{X: 1, Y: 1}) {
		t.Errorf("spawn = %v, want (1,1)", m.Spawn)
	}
	checks := []struct {
		pos  Position
		want BlockType
	}{
		{Position{X: 0, Y: 0}, BlockHookable},
		{Position{X: 1, Y: 0}, BlockEmpty},
		{Position{X: 2, Y: 0}, BlockFreeze},
		{Position{X: 1, Y: 1}, BlockSpawn},
		{Position{X: 0, Y: 2}, BlockStart},
		{Position{X: 3, Y: 2}, BlockFinish},
	}
	for _, tc := range checks {
		if got := m.At(tc.pos); got != tc.want {
			t.Errorf("cell %v = %v, want %v", tc.pos, got, tc.want)
		}
	}
}

func TestMapArtifactToMapRejectsCorrupt(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *MapArtifact)
	}{
		{"missing row", func(a *MapArtifact) { a.Rows = a.Rows[:2] }},
		{"short row", func(a *MapArtifact) { a.Rows[1] = "#S#" }},
		{"unknown rune", func(a *MapArtifact) { a.Rows[0] = "#q.#" }},
	}

	for _, tc := range tests {
		a := artifactFixture()
		tc.mutate(a)

		if _, err := a.ToMap(); err == nil {
			t.Errorf("%s: ToMap() = nil error, want failure", tc.name)
		}
	}
}

func TestMapArtifactFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.yaml")
	a := artifactFixture()

	if err := a.WriteFile(path); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	loaded, err := ReadMapArtifact(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	m, err := loaded.ToMap()
	if err != nil {
		t.Fatalf("ToMap on loaded artifact failed: %v", err)
	}
	original, err := a.ToMap()
	if err != nil {
		t.Fatalf("ToMap on original failed: %v", err)
	}
	if !bytes.Equal(m.Cells(), original.Cells()) {
		t.Error("grid changed across the file round trip")
	}
}

func TestReadMapArtifactMissing(t *testing.T) {
	if _, err := ReadMapArtifact(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("reading a missing artifact should fail")
	}
}
