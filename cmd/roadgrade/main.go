// Command roadgrade builds a road mesh from a scene file and optionally
// grades a terrain heightfield to it.
//
// Usage:
//
//	roadgrade [flags] <scene.yaml>
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/strayfield/roadgrade/internal/collide"
	"github.com/strayfield/roadgrade/internal/config"
	"github.com/strayfield/roadgrade/internal/export"
	"github.com/strayfield/roadgrade/internal/logger"
	"github.com/strayfield/roadgrade/internal/road"
	"github.com/strayfield/roadgrade/internal/scene"
	"github.com/strayfield/roadgrade/internal/terrain"
)

var flagWatch = flag.Bool("watch", false, "Rebuild whenever the scene file changes")

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: roadgrade [flags] <scene.yaml>")
		os.Exit(2)
	}
	scenePath := flag.Arg(0)

	if err := run(cfg, scenePath); err != nil {
		logger.Error("build failed", zap.Error(err))
		if !*flagWatch {
			os.Exit(1)
		}
	}

	if *flagWatch {
		if err := watch(cfg, scenePath); err != nil {
			logger.Error("watch failed", zap.Error(err))
			os.Exit(1)
		}
	}
}

// run executes one full pipeline pass: scene -> mesh -> files.
func run(cfg *config.Config, scenePath string) error {
	start := time.Now()

	sc, err := scene.Load(scenePath)
	if err != nil {
		return err
	}

	defaults, err := cfg.Road.Params()
	if err != nil {
		return err
	}
	params, err := sc.BuilderParams(defaults)
	if err != nil {
		return err
	}

	name := sc.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(scenePath), filepath.Ext(scenePath))
	}
	objPath := filepath.Join(cfg.Output.Dir, name+".obj")
	sink := export.NewObjSink(objPath, name)

	builder := road.NewBuilder(params)
	builder.SetSink(sink)
	builder.SetPath(sc.PathPoints())
	mesh := builder.Generate()
	if err := sink.Err(); err != nil {
		return err
	}

	logger.Info("road mesh generated",
		zap.Int("points", len(sc.Points)),
		zap.Int("sections", len(builder.Centerline())),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", len(mesh.Indices)/3))
	logger.Debug("mesh written", zap.String("path", objPath))

	if params.Profile == road.ProfileExtended {
		hitPath := filepath.Join(cfg.Output.Dir, name+"_hitbox.obj")
		if err := export.SaveOBJ(hitPath, name+"_hitbox", builder.Hitbox()); err != nil {
			return err
		}
		logger.Debug("hitbox written", zap.String("path", hitPath))
	}

	if sc.Terrain != nil {
		if err := grade(cfg, sc, name, mesh); err != nil {
			return err
		}
	}

	logger.Info("done", zap.Duration("elapsed", time.Since(start)))
	return nil
}

// grade fits the scene's heightfield to the generated mesh and writes it
// out.
func grade(cfg *config.Config, sc *scene.Scene, name string, mesh *road.Mesh) error {
	hf, err := sc.Terrain.BuildHeightfield()
	if err != nil {
		return fmt.Errorf("terrain: %w", err)
	}

	surface := collide.NewMeshSurface(mesh.Positions(), mesh.Indices)
	rep := terrain.Fit(hf, surface, sc.Terrain.NeighborRadius)

	if rep.OutOfRange > 0 {
		logger.Warn("road extends past terrain vertical bounds",
			zap.Int("clamped_cells", rep.OutOfRange))
	}
	logger.Info("terrain graded",
		zap.Int("contacts", rep.Contacts),
		zap.Int("smoothed", rep.Smoothed))

	pgmPath := filepath.Join(cfg.Output.Dir, name+".pgm")
	if err := export.SavePGM(pgmPath, hf); err != nil {
		return err
	}
	logger.Debug("heightfield written", zap.String("path", pgmPath))
	return nil
}

// watch reruns the pipeline whenever the scene file changes. The parent
// directory is watched because most editors replace files on save.
func watch(cfg *config.Config, scenePath string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	abs, err := filepath.Abs(scenePath)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	logger.Info("watching scene", zap.String("path", scenePath))

	var lastRun time.Time
	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if time.Since(lastRun) < 100*time.Millisecond {
				continue
			}
			lastRun = time.Now()

			logger.Info("scene changed, rebuilding")
			if err := run(cfg, scenePath); err != nil {
				logger.Error("rebuild failed", zap.Error(err))
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", zap.Error(err))
		}
	}
}
