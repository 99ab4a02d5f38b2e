// migrate-to-postgres copies an archived map collection from SQLite to
// PostgreSQL.
//
// Usage:
//
//	go run ./cmd/migrate-to-postgres \
//	    -sqlite data/mapgen.db \
//	    -pg-host localhost \
//	    -pg-port 5432 \
//	    -pg-user mapgen \
//	    -pg-password mapgen \
//	    -pg-database mapgen
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/TylerStocks1/gores-mapgen/internal/store"
)

func main() {
	sqlitePath := flag.String("sqlite", "data/mapgen.db", "Path to SQLite database")
	pgHost := flag.String("pg-host", "localhost", "PostgreSQL host")
	pgPort := flag.Int("pg-port", 5432, "PostgreSQL port")
	pgUser := flag.String("pg-user", "mapgen", "PostgreSQL user")
	pgPassword := flag.String("pg-password", "mapgen", "PostgreSQL password")
	pgDatabase := flag.String("pg-database", "mapgen", "PostgreSQL database name")
	pgSSLMode := flag.String("pg-sslmode", "disable", "PostgreSQL SSL mode")
	dryRun := flag.Bool("dry-run", false, "Show what would be migrated without making changes")
	flag.Parse()

	log.Println("SQLite to PostgreSQL Migration Tool")
	log.Println("====================================")

	// Open SQLite archive. The driver would happily create an empty
	// database here, so check the file first.
	if _, err := os.Stat(*sqlitePath); err != nil {
		log.Fatalf("SQLite archive not found: %s", *sqlitePath)
	}
	log.Printf("Opening SQLite archive: %s", *sqlitePath)
	src, err := store.Open("sqlite", *sqlitePath)
	if err != nil {
		log.Fatalf("Failed to open SQLite archive: %v", err)
	}
	defer src.Close()

	// Build PostgreSQL connection string
	pgConnStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		*pgHost, *pgPort, *pgUser, *pgPassword, *pgDatabase, *pgSSLMode,
	)

	// Opening the destination through the store runs its schema
	// migration, so the maps table is ready before any copy.
	log.Printf("Opening PostgreSQL database: %s@%s:%d/%s", *pgUser, *pgHost, *pgPort, *pgDatabase)
	dst, err := store.Open("postgres", pgConnStr)
	if err != nil {
		log.Fatalf("Failed to open PostgreSQL database: %v", err)
	}
	defer dst.Close()

	if *dryRun {
		log.Println("DRY RUN MODE - No changes will be made")
	}

	log.Println("Migrating table: maps")
	count, err := migrateMaps(src.DB(), dst.DB(), *dryRun)
	if err != nil {
		log.Fatalf("Failed to migrate maps: %v", err)
	}
	log.Printf("  Migrated %d rows", count)

	log.Println("====================================")
	log.Printf("Migration complete! Total rows migrated: %d", count)
	if *dryRun {
		log.Println("(DRY RUN - No actual changes were made)")
	}
}

// migrateMaps copies every archived map, preserving ids so external
// references to archive ids survive the move. Rows already present in
// the destination are skipped, making reruns safe.
func migrateMaps(sqlite, pg *sql.DB, dryRun bool) (int64, error) {
	rows, err := sqlite.Query(`
		SELECT id, name, profile, map_config, seed, width, height,
		       spawn_x, spawn_y, steps, finished, cells, created_at
		FROM maps ORDER BY id
	`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		var id, seed, createdAt int64
		var name, profile, mapConfig string
		var width, height, spawnX, spawnY, steps int
		var finished bool
		var cells []byte

		if err := rows.Scan(&id, &name, &profile, &mapConfig, &seed, &width, &height,
			&spawnX, &spawnY, &steps, &finished, &cells, &createdAt); err != nil {
			return count, err
		}

		if dryRun {
			count++
			continue
		}

		// Check if the map already exists
		var existingID int64
		err := pg.QueryRow(`SELECT id FROM maps WHERE id = $1`, id).Scan(&existingID)
		if err == nil {
			continue
		}

		// Insert with explicit ID to keep archive references stable
		_, err = pg.Exec(`
			INSERT INTO maps (id, name, profile, map_config, seed, width, height,
			                  spawn_x, spawn_y, steps, finished, cells, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		`, id, name, profile, mapConfig, seed, width, height,
			spawnX, spawnY, steps, finished, cells, createdAt)
		if err != nil {
			if !strings.Contains(err.Error(), "duplicate key") {
				return count, err
			}
		} else {
			count++
		}
	}

	// Reset the sequence to avoid ID conflicts for new records
	if !dryRun {
		_, _ = pg.Exec(`SELECT setval('maps_id_seq', COALESCE((SELECT MAX(id) FROM maps), 0) + 1, false)`)
	}

	return count, rows.Err()
}

func init() {
	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Migrates an archived map collection from SQLite to PostgreSQL.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s -sqlite data/mapgen.db -pg-host localhost -pg-user mapgen -pg-password mapgen -pg-database mapgen\n", os.Args[0])
	}
}
