package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/TylerStocks1/gores-mapgen/internal/mapgen"
)

// ErrMapNotFound is returned when a map lookup or delete misses.
var ErrMapNotFound = errors.New("store: map not found")

// MapRecord is one archived map: the run metadata and the grid encoded
// as one byte per cell, row-major.
type MapRecord struct {
	ID        int64
	Name      string
	Profile   string
	MapConfig string
	Seed      int64
	Width     int
	Height    int
	SpawnX    int
	SpawnY    int
	Steps     int
	Finished  bool
	Cells     []byte
	CreatedAt time.Time
}

// NewMapRecord captures a generated map and its run metadata for
// archiving. Profile and mapConfig are the preset names the run used.
func NewMapRecord(m *mapgen.Map, name, profile, mapConfig string, seed int64, stats mapgen.Stats) *MapRecord {
	return &MapRecord{
		Name:      name,
		Profile:   profile,
		MapConfig: mapConfig,
		Seed:      seed,
		Width:     m.Width,
		Height:    m.Height,
		SpawnX:    m.Spawn.X,
		SpawnY:    m.Spawn.Y,
		Steps:     stats.Steps,
		Finished:  stats.Finished,
		Cells:     m.Cells(),
	}
}

// Map rebuilds the grid from the record's cell blob.
func (r *MapRecord) Map() (*mapgen.Map, error) {
	return DecodeCells(r.Cells, r.Width, r.Height, mapgen.Position{X: r.SpawnX, Y: r.SpawnY})
}

// DecodeCells rebuilds a map from a one-byte-per-cell blob. Length and
// cell values are validated; a corrupted blob errors instead of producing
// a silently wrong map.
func DecodeCells(cells []byte, width, height int, spawn mapgen.Position) (*mapgen.Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("store: invalid map dimensions %dx%d", width, height)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("store: cell blob holds %d bytes, want %d for %dx%d",
			len(cells), width*height, width, height)
	}

	m := mapgen.NewMap(width, height, mapgen.BlockHookable, spawn)
	for i, b := range cells {
		if b > byte(mapgen.BlockFinish) {
			return nil, fmt.Errorf("store: invalid block value %d at cell %d", b, i)
		}
		m.Set(mapgen.Position{X: i % width, Y: i / width}, mapgen.BlockType(b))
	}
	return m, nil
}

const mapColumns = "id, name, profile, map_config, seed, width, height, spawn_x, spawn_y, steps, finished, cells, created_at"

// SaveMap inserts a record and returns its ID. A zero CreatedAt is
// stamped with the current time; the field is also written back to the
// record along with the ID.
func (s *Store) SaveMap(record *MapRecord) (int64, error) {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	query := s.qb.BuildWithReturning(`
		INSERT INTO maps (name, profile, map_config, seed, width, height, spawn_x, spawn_y, steps, finished, cells, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, "id")
	args := []any{
		record.Name, record.Profile, record.MapConfig, record.Seed,
		record.Width, record.Height, record.SpawnX, record.SpawnY,
		record.Steps, record.Finished, record.Cells, record.CreatedAt.Unix(),
	}

	var id int64
	if s.dialect.SupportsLastInsertID() {
		result, err := s.db.Exec(query, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert map: %w", err)
		}
		id, err = result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get map ID: %w", err)
		}
	} else {
		if err := s.db.QueryRow(query, args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to insert map: %w", err)
		}
	}

	record.ID = id
	return id, nil
}

// GetMap returns the record with the given ID.
func (s *Store) GetMap(id int64) (*MapRecord, error) {
	query := s.qb.Build(`SELECT ` + mapColumns + ` FROM maps WHERE id = ?`)
	return s.scanMap(s.db.QueryRow(query, id))
}

// GetMapByName returns the most recently archived record with the given
// name.
func (s *Store) GetMapByName(name string) (*MapRecord, error) {
	query := s.qb.Build(`SELECT ` + mapColumns + ` FROM maps
		WHERE name = ? ORDER BY created_at DESC, id DESC LIMIT 1`)
	return s.scanMap(s.db.QueryRow(query, name))
}

func (s *Store) scanMap(row *sql.Row) (*MapRecord, error) {
	var record MapRecord
	var createdAt int64

	err := row.Scan(&record.ID, &record.Name, &record.Profile, &record.MapConfig,
		&record.Seed, &record.Width, &record.Height, &record.SpawnX, &record.SpawnY,
		&record.Steps, &record.Finished, &record.Cells, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMapNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan map record: %w", err)
	}

	record.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &record, nil
}

// ListMaps returns the newest records first, without their cell blobs.
// A non-positive limit lists everything.
func (s *Store) ListMaps(limit int) ([]*MapRecord, error) {
	query := `SELECT id, name, profile, map_config, seed, width, height, spawn_x, spawn_y, steps, finished, created_at
		FROM maps ORDER BY created_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(s.qb.Build(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query maps: %w", err)
	}
	defer rows.Close()

	var records []*MapRecord
	for rows.Next() {
		var record MapRecord
		var createdAt int64
		err := rows.Scan(&record.ID, &record.Name, &record.Profile, &record.MapConfig,
			&record.Seed, &record.Width, &record.Height, &record.SpawnX, &record.SpawnY,
			&record.Steps, &record.Finished, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan map record: %w", err)
		}
		record.CreatedAt = time.Unix(createdAt, 0).UTC()
		records = append(records, &record)
	}

	return records, rows.Err()
}

// DeleteMap removes the record with the given ID.
func (s *Store) DeleteMap(id int64) error {
	result, err := s.db.Exec(s.qb.Build(`DELETE FROM maps WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete map: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrMapNotFound
	}
	return nil
}
