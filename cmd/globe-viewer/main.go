package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/mvarley/anomaly-globe/pkg/compute"
	"github.com/mvarley/anomaly-globe/pkg/config"
	"github.com/mvarley/anomaly-globe/pkg/dataset"
	"github.com/mvarley/anomaly-globe/pkg/globeengine"
	"github.com/mvarley/anomaly-globe/pkg/store"
)

var (
	configFlag  = flag.String("config", "", "Path to a YAML config file (optional)")
	datasetFlag = flag.String("dataset", "", "Dataset URL or local file (overrides config)")
	widthFlag   = flag.Int("width", 0, "Internal rendering width (overrides config)")
	heightFlag  = flag.Int("height", 0, "Internal rendering height (overrides config)")
)

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyFlagOverrides(cfg)

	data, err := loadDataset(cfg)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	log.Printf("Loaded %d decade series", len(data))

	engine := globeengine.NewEngine(cfg.Window.Width, cfg.Window.Height, cfg.Globe.PoolCap, data)
	engine.SetPlayDuration(cfg.Playback.Duration)

	if b, err := globeengine.LoadBackdrop(cfg.Globe.WorldGeoJSON, globeengine.SphereRadius); err != nil {
		log.Printf("No continent backdrop (%v), rendering bare globe", err)
	} else {
		engine.SetBackdrop(b)
	}

	mgr := compute.NewManager()
	defer mgr.Close()
	go precomputeStats(cfg, mgr, data, engine)

	if len(data) > 0 {
		engine.ActivateDecade(data[0].Label)
	}

	ebiten.SetTPS(cfg.Window.TPS)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Temperature Anomaly Globe")
	if err := ebiten.RunGame(engine); err != nil {
		log.Fatal(err)
	}
}

func applyFlagOverrides(cfg *config.Config) {
	if *datasetFlag != "" {
		if _, err := os.Stat(*datasetFlag); err == nil {
			cfg.Dataset.File, cfg.Dataset.URL = *datasetFlag, ""
		} else {
			cfg.Dataset.URL, cfg.Dataset.File = *datasetFlag, ""
		}
	}
	if *widthFlag > 0 {
		cfg.Window.Width = *widthFlag
	}
	if *heightFlag > 0 {
		cfg.Window.Height = *heightFlag
	}
}

func loadDataset(cfg *config.Config) (dataset.Collection, error) {
	if cfg.Dataset.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Dataset.Timeout)
		defer cancel()
		cachePath := ""
		if cfg.Cache.Enabled {
			cachePath = filepath.Join(cfg.Cache.Dir, "dataset.json")
		}
		return dataset.Fetch(ctx, cfg.Dataset.URL, cachePath)
	}
	return dataset.LoadFile(cfg.Dataset.File)
}

// precomputeStats fills the HUD statistics for every decade through the
// compute worker, consulting the on-disk cache first.
func precomputeStats(cfg *config.Config, mgr *compute.Manager, data dataset.Collection, engine *globeengine.Engine) {
	var cache *store.Cache
	if cfg.Cache.Enabled {
		c, err := store.Open(filepath.Join(cfg.Cache.Dir, "stats"))
		if err != nil {
			log.Printf("Stats cache unavailable: %v", err)
		} else {
			cache = c
			defer func() {
				if err := cache.Close(); err != nil {
					log.Printf("Error closing stats cache: %v", err)
				}
			}()
		}
	}

	for _, series := range data {
		if cache != nil {
			if st, ok, err := cache.GetStats(series.Label); err == nil && ok {
				engine.SetStats(series.Label, st)
				continue
			}
		}
		_, st, err := mgr.Process(context.Background(), series.Samples, series.Label)
		if err != nil {
			log.Printf("Stats for %s failed: %v", series.Label, err)
			continue
		}
		engine.SetStats(series.Label, st)
		if cache != nil {
			if err := cache.PutStats(series.Label, st); err != nil {
				log.Printf("Failed to cache stats for %s: %v", series.Label, err)
			}
		}
	}
}
