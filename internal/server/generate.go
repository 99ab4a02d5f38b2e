package server

import (
	"fmt"
	"time"

	"github.com/TylerStocks1/gores-mapgen/internal/logger"
	"github.com/TylerStocks1/gores-mapgen/internal/mapgen"
	"github.com/TylerStocks1/gores-mapgen/internal/presets"
	"github.com/TylerStocks1/gores-mapgen/internal/store"
)

// GenerateRequest asks for one map. Empty preset names fall back to the
// service defaults, a zero seed draws a time-based one, and the step
// budget is clamped to the configured maximum.
type GenerateRequest struct {
	Profile  string `json:"profile,omitempty"`
	Map      string `json:"map,omitempty"`
	Seed     int64  `json:"seed,omitempty"`
	MaxSteps int    `json:"max_steps,omitempty"`
}

// GenerateResponse carries the generated artifact or an error message.
// ArchiveID is set when the daemon stored the map.
type GenerateResponse struct {
	OK        bool                `json:"ok"`
	Error     string              `json:"error,omitempty"`
	Map       *mapgen.MapArtifact `json:"map,omitempty"`
	ArchiveID int64               `json:"archive_id,omitempty"`
}

// runParams is a request after defaults, preset resolution and clamping.
type runParams struct {
	profile     *mapgen.GenerationConfig
	skeleton    *mapgen.MapConfig
	profileName string
	mapName     string
	seed        int64
	maxSteps    int
}

// resolve normalizes a request against the service configuration and the
// preset provider.
func (s *Server) resolve(req *GenerateRequest) (*runParams, error) {
	profileName := req.Profile
	if profileName == "" {
		profileName = s.cfg.Generation.DefaultProfile
	}
	mapName := req.Map
	if mapName == "" {
		mapName = s.cfg.Generation.DefaultMap
	}

	profile, err := presets.Profile(s.provider, profileName)
	if err != nil {
		return nil, err
	}
	skeleton, err := presets.Skeleton(s.provider, mapName)
	if err != nil {
		return nil, err
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	maxSteps := req.MaxSteps
	if maxSteps <= 0 || maxSteps > s.cfg.Generation.MaxSteps {
		maxSteps = s.cfg.Generation.MaxSteps
	}

	return &runParams{
		profile:     profile,
		skeleton:    skeleton,
		profileName: profileName,
		mapName:     mapName,
		seed:        seed,
		maxSteps:    maxSteps,
	}, nil
}

// Generate runs one generation request through to an artifact, archiving
// the map when a store is attached. An archive failure is logged but does
// not fail the request; the client still gets its map.
func (s *Server) Generate(req *GenerateRequest) *GenerateResponse {
	params, err := s.resolve(req)
	if err != nil {
		logger.Warning("Rejected generation request",
			"profile", req.Profile, "map", req.Map, "error", err)
		return &GenerateResponse{Error: err.Error()}
	}

	start := time.Now()
	m, stats, err := mapgen.GenerateMap(params.profile, params.skeleton, params.seed, params.maxSteps)
	if err != nil {
		logger.Error("Generation failed",
			"profile", params.profileName, "map", params.mapName,
			"seed", params.seed, "error", err)
		return &GenerateResponse{Error: err.Error()}
	}

	name := fmt.Sprintf("%s-%d", params.mapName, params.seed)
	resp := &GenerateResponse{
		OK:  true,
		Map: mapgen.NewMapArtifact(m, name, params.profileName, params.seed, stats),
	}

	if s.store != nil {
		record := store.NewMapRecord(m, name, params.profileName, params.mapName, params.seed, stats)
		if id, err := s.store.SaveMap(record); err != nil {
			logger.Error("Failed to archive map", "name", name, "error", err)
		} else {
			resp.ArchiveID = id
		}
	}

	logger.Info("Generated map",
		"name", name,
		"profile", params.profileName,
		"map", params.mapName,
		"seed", params.seed,
		"steps", stats.Steps,
		"finished", stats.Finished,
		"duration", time.Since(start).Round(time.Millisecond))
	return resp
}
