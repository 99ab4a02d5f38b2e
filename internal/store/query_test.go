package store

import (
	"testing"
)

func TestQueryBuilder_Build_SQLite(t *testing.T) {
	qb := NewQueryBuilder(&SQLiteDialect{})

	query := "SELECT id FROM maps WHERE name = ? AND seed = ?"
	if got := qb.Build(query); got != query {
		t.Errorf("Build() changed a SQLite query:\ngot  %q\nwant %q", got, query)
	}
}

func TestQueryBuilder_Build_Postgres(t *testing.T) {
	qb := NewQueryBuilder(&PostgresDialect{})

	tests := []struct {
		input string
		want  string
	}{
		{
			"SELECT id FROM maps WHERE name = ?",
			"SELECT id FROM maps WHERE name = $1",
		},
		{
			"INSERT INTO maps (name, seed) VALUES (?, ?)",
			"INSERT INTO maps (name, seed) VALUES ($1, $2)",
		},
		{
			"SELECT 1",
			"SELECT 1",
		},
		{
			"UPDATE maps SET name = ? WHERE id = ? AND seed = ?",
			"UPDATE maps SET name = $1 WHERE id = $2 AND seed = $3",
		},
	}

	for _, tt := range tests {
		if got := qb.Build(tt.input); got != tt.want {
			t.Errorf("Build(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestQueryBuilder_BuildWithReturning(t *testing.T) {
	query := "INSERT INTO maps (name) VALUES (?)"

	sqlite := NewQueryBuilder(&SQLiteDialect{})
	if got := sqlite.BuildWithReturning(query, "id"); got != query {
		t.Errorf("SQLite BuildWithReturning = %q, want unchanged %q", got, query)
	}

	postgres := NewQueryBuilder(&PostgresDialect{})
	want := "INSERT INTO maps (name) VALUES ($1) RETURNING id"
	if got := postgres.BuildWithReturning(query, "id"); got != want {
		t.Errorf("Postgres BuildWithReturning = %q, want %q", got, want)
	}
}
