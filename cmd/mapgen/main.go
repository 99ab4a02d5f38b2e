package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/TylerStocks1/gores-mapgen/internal/logger"
	"github.com/TylerStocks1/gores-mapgen/internal/mapgen"
	"github.com/TylerStocks1/gores-mapgen/internal/presets"
	"github.com/TylerStocks1/gores-mapgen/internal/store"
)

func main() {
	profileName := flag.String("profile", "default", "Generation profile preset name")
	mapName := flag.String("map", "small_s", "Map skeleton preset name")
	seed := flag.Int64("seed", 0, "Generation seed (default: random based on current time)")
	steps := flag.Int("steps", 200000, "Maximum walker steps before giving up")
	outFile := flag.String("out", "", "Output file (default: data/maps/<map>-<seed>.yaml)")
	profileDir := flag.String("profile-dir", "", "Directory with extra profile YAML files")
	mapDir := flag.String("map-dir", "", "Directory with extra map skeleton YAML files")
	archive := flag.Bool("store", false, "Archive the generated map to the database")
	dbDriver := flag.String("db-driver", "sqlite", "Archive database driver (sqlite or postgres)")
	dbDSN := flag.String("db", "data/mapgen.db", "Archive database path (sqlite) or DSN (postgres)")
	loggingConfig := flag.String("logging", "", "Path to logging config YAML file (empty: no log output)")
	list := flag.Bool("list", false, "List available profiles and map skeletons and exit")
	flag.Parse()

	provider := presets.Multi{
		presets.Builtin{},
		presets.Dir{ProfileDir: *profileDir, MapDir: *mapDir},
	}

	if *list {
		listPresets(provider)
		return
	}

	if *loggingConfig != "" {
		logConfig, _ := logger.LoadConfig(*loggingConfig)
		logger.Initialize(logConfig)
	}

	// Use provided seed or generate from time
	runSeed := *seed
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}

	profile, err := presets.Profile(provider, *profileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	skeleton, err := presets.Skeleton(provider, *mapName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gen, err := mapgen.NewGenerator(profile, skeleton, runSeed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generating %dx%d level %q (profile: %s, seed: %d)\n\n",
		skeleton.Width, skeleton.Height, *mapName, *profileName, runSeed)

	fmt.Print("Walking waypoints... ")
	for i := 0; i < *steps && !gen.Finished(); i++ {
		if err := gen.Step(); err != nil {
			fmt.Printf("FAILED: %v\n", err)
			os.Exit(1)
		}
	}
	stats := gen.Stats()
	if stats.Finished {
		fmt.Printf("OK (%d steps)\n", stats.Steps)
	} else {
		fmt.Printf("OUT OF BUDGET (%d steps)\n", stats.Steps)
	}

	fmt.Print("Post-processing... ")
	gen.PostProcess()
	fmt.Println("OK")

	name := fmt.Sprintf("%s-%d", *mapName, runSeed)
	artifact := mapgen.NewMapArtifact(gen.Map(), name, *profileName, runSeed, stats)

	outPath := *outFile
	if outPath == "" {
		outPath = filepath.Join("data", "maps", name+".yaml")
	}
	if dir := filepath.Dir(outPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create output directory: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Writing %s... ", outPath)
	if err := artifact.WriteFile(outPath); err != nil {
		fmt.Printf("FAILED: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("OK")

	var archiveID int64
	if *archive {
		fmt.Print("Archiving to database... ")
		archiveID, err = archiveMap(gen.Map(), name, *profileName, *mapName, runSeed, stats, *dbDriver, *dbDSN)
		if err != nil {
			fmt.Printf("FAILED: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("OK (id %d)\n", archiveID)
	}

	if stats.Finished {
		fmt.Printf("\nLevel generated successfully!\n")
	} else {
		fmt.Printf("\nLevel written, but the walker ran out of steps before the final waypoint.\n")
	}
	fmt.Printf("  - Steps taken: %d\n", stats.Steps)
	fmt.Printf("  - Skips: %d accepted, %d rejected\n", stats.SkipsAccepted, stats.SkipsRejected)
	fmt.Printf("  - Platforms placed: %d\n", stats.Platforms)
	fmt.Printf("  - Output: %s\n", outPath)
	if *archive {
		fmt.Printf("  - Archive id: %d\n", archiveID)
	}
}

// archiveMap stores the generated map and returns its database id.
func archiveMap(m *mapgen.Map, name, profile, mapConfig string, seed int64, stats mapgen.Stats, driver, dsn string) (int64, error) {
	st, err := store.Open(driver, dsn)
	if err != nil {
		return 0, err
	}
	defer st.Close()

	record := store.NewMapRecord(m, name, profile, mapConfig, seed, stats)
	return st.SaveMap(record)
}

// listPresets prints every profile and map skeleton the provider knows,
// builtin and directory-loaded alike.
func listPresets(provider presets.Provider) {
	profiles, err := provider.GenerationConfigs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	maps, err := provider.MapConfigs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Profiles:")
	for _, key := range sortedKeys(profiles) {
		p := profiles[key]
		if p.Description != "" {
			fmt.Printf("  %-12s %s\n", key, p.Description)
		} else {
			fmt.Printf("  %s\n", key)
		}
	}

	fmt.Println("\nMap skeletons:")
	for _, key := range sortedKeys(maps) {
		m := maps[key]
		fmt.Printf("  %-12s %dx%d, %d waypoints\n", key, m.Width, m.Height, len(m.Waypoints))
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
