package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"vcombat/pkg/defs"
	"vcombat/pkg/items"
	"vcombat/pkg/logging"
	"vcombat/pkg/shared/config"
	"vcombat/pkg/shared/world"
	"vcombat/pkg/vertical"
)

// defcheck validates the builtin and pack definitions and prints what the
// validator changed, tool reaches and the cover heights of a scene.
func main() {
	configPath := flag.String("config", "", "YAML config file")
	defsPath := flag.String("defs", "", "Definition pack, overrides the config")
	scenePath := flag.String("scene", "", "Scene whose cover heights to list")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *defsPath != "" {
		cfg.Defs = *defsPath
	}

	log := logging.Must(cfg.LogLevel)
	defer log.Sync()

	reports, err := defs.NewLoader(log).Bootstrap(cfg.Defs)
	if err != nil {
		log.Fatal("definitions", zap.Error(err))
	}

	failed := false
	fmt.Println("Races")
	for _, rep := range reports {
		fmt.Printf("  %-16s %s -> %s\n", rep.Def, rep.Before, rep.After)
		for _, c := range rep.Changes {
			if c.EnsureUsable {
				fmt.Printf("    %s: always usable\n", c.Tool)
				continue
			}
			fmt.Printf("    %s: fallback %s -> %s\n", c.Tool, c.From, c.To)
		}
		for _, d := range rep.Diagnostics {
			fmt.Printf("    %s: %s\n", d.Level, d.Message)
		}
		failed = failed || rep.HasErrors()
	}

	fmt.Println("Weapons")
	for _, it := range items.All() {
		for _, t := range it.Tools {
			fmt.Printf("  %-16s %-8s reach %.2f\n", it.ID, t, t.Reach())
		}
	}

	if *scenePath != "" {
		scene, err := world.LoadScene(*scenePath)
		if err != nil {
			log.Fatal("scene", zap.Error(err))
		}
		fmt.Println("Cover")
		for _, s := range scene.Structures {
			fillage, err := vertical.ParseFillage(s.Fillage)
			if err != nil {
				log.Fatal("scene", zap.Error(err))
			}
			fmt.Printf("  %2d,%-2d %-8s %.2fm\n", s.X, s.Z, fillage, vertical.CoverHeightMeters(fillage, s.FillPercent))
		}
	}

	if failed {
		os.Exit(1)
	}
}
