package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"vcombat/pkg/defs"
	"vcombat/pkg/logging"
	"vcombat/pkg/server"
	"vcombat/pkg/server/systems"
	"vcombat/pkg/shared/components"
	"vcombat/pkg/shared/config"
	"vcombat/pkg/shared/ecs"
	"vcombat/pkg/shared/world"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	scenePath := flag.String("scene", "", "Scene file, overrides the config")
	ticks := flag.Int("ticks", 0, "Ticks to simulate, overrides the config")
	seed := flag.Uint64("seed", 0, "Random seed, overrides the config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *scenePath != "" {
		cfg.Sandbox.Scene = *scenePath
	}
	if *ticks > 0 {
		cfg.Sandbox.Ticks = *ticks
	}
	if *seed != 0 {
		cfg.Sandbox.Seed = *seed
	}

	log := logging.Must(cfg.LogLevel)
	defer log.Sync()

	if _, err := defs.NewLoader(log).Bootstrap(cfg.Defs); err != nil {
		log.Fatal("definitions", zap.Error(err))
	}

	scene := arena()
	if cfg.Sandbox.Scene != "" {
		if scene, err = world.LoadScene(cfg.Sandbox.Scene); err != nil {
			log.Fatal("scene", zap.Error(err))
		}
	}

	sim, err := server.NewBridgeServer(log, scene, cfg.Sandbox.Seed)
	if err != nil {
		log.Fatal("scene", zap.Error(err))
	}
	sim.MeleeSystem.OnEvent = func(ev systems.MeleeEvent) {
		fmt.Println(describe(sim.World, ev))
	}

	for i := 0; i < cfg.Sandbox.Ticks; i++ {
		sim.Update(config.TickSeconds)
	}
	fmt.Println()
	summary(sim.World)
}

// arena is the scene used when none is given: two fighters across a low wall.
func arena() *world.SceneDefinition {
	return &world.SceneDefinition{
		Width:  7,
		Height: 5,
		Ground: make([]int, 35),
		Structures: []world.StructureDef{
			{X: 3, Z: 0, Fillage: "full"},
			{X: 3, Z: 1, Fillage: "partial", FillPercent: 0.4},
			{X: 3, Z: 3, Fillage: "partial", FillPercent: 0.4},
			{X: 3, Z: 4, Fillage: "full"},
		},
		Creatures: []world.CreatureDef{
			{X: 1, Z: 2, RaceID: "human", Name: "Ada", Faction: 1, Aggressive: true, Weapon: "spear"},
			{X: 5, Z: 2, RaceID: "human", Name: "Bors", Faction: 2, Aggressive: true, Weapon: "club", Shield: "shield_wood"},
			{X: 6, Z: 4, RaceID: "wolf", Name: "Grey", Faction: 2, Aggressive: true},
		},
	}
}

func name(w *ecs.World, e ecs.Entity) string {
	if c, ok := ecs.GetComponent[components.CreatureComponent](w, e); ok {
		return fmt.Sprintf("%s#%d", c.Name, e)
	}
	return fmt.Sprintf("#%d", e)
}

func describe(w *ecs.World, ev systems.MeleeEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%6.2fs %s -> %s: %s %s",
		float64(ev.Tick)*config.TickSeconds, name(w, ev.Attacker), name(w, ev.Target), ev.Tool, ev.Outcome)
	if len(ev.Parts) > 0 {
		fmt.Fprintf(&b, " %s for %.1f", strings.Join(ev.Parts, ", "), ev.Damage)
	}
	switch {
	case ev.TargetDead:
		b.WriteString(" (dead)")
	case ev.TargetDown:
		b.WriteString(" (down)")
	}
	return b.String()
}

func summary(w *ecs.World) {
	for _, e := range ecs.Query[components.CreatureComponent](w) {
		state := "standing"
		if p, ok := ecs.GetComponent[components.PostureComponent](w, e); ok && p.Downed {
			state = "down"
		}
		if !systems.Alive(w, e) {
			state = "dead"
		}
		var lost int
		if h, ok := ecs.GetComponent[components.HealthComponent](w, e); ok {
			lost = h.Injuries.MissingCount()
		}
		fmt.Printf("%-12s %-8s %d parts lost\n", name(w, e), state, lost)
	}
}
