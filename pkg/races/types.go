package races

import (
	"sort"

	"vcombat/pkg/anatomy"
	"vcombat/pkg/tools"
	"vcombat/pkg/validate"
)

// RaceDefinition is the static configuration for a creature type.
// This acts as a Blueprint for spawning creatures into a scene.
type RaceDefinition struct {
	ID          string // Unique ID e.g. "human"
	Name        string
	Description string

	Body       *anatomy.Body
	BodyHeight float64 // Standing collision height in cell height units
	BodySize   float64

	Humanlike bool
	Animal    bool
	Predator  bool // Bites the neck of downed prey
	Flesh     bool

	Tools []*tools.Tool

	// Melee stats
	MeleeHitChance float64 // 0 uses the default hit chance
	DodgeChance    float64
	ParryChance    float64
	CritChance     float64
}

var Registry = make(map[string]RaceDefinition)

// Register adds a race and binds its tools to it.
func Register(race RaceDefinition) {
	if _, exists := Registry[race.ID]; exists {
		panic("Duplicate race ID: " + race.ID)
	}
	BindTools(race)
	Registry[race.ID] = race
}

// BindTools points every tool of the race at one owner record.
func BindTools(race RaceDefinition) {
	owner := &tools.Owner{DefName: race.ID, Body: race.Body, Bulk: race.BodySize}
	for _, t := range race.Tools {
		t.Bind(owner)
	}
}

func Get(id string) (RaceDefinition, bool) {
	r, ok := Registry[id]
	return r, ok
}

// All returns the registered races ordered by ID.
func All() []RaceDefinition {
	out := make([]RaceDefinition, 0, len(Registry))
	for _, r := range Registry {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ValidateAll runs the toolset validator over every registered race, assigning
// fallback policies in place. It must run once after all races are registered
// and before any combat.
func ValidateAll() []validate.Report {
	all := All()
	reports := make([]validate.Report, 0, len(all))
	for _, r := range all {
		reports = append(reports, validate.Toolset(r.ID, r.Body, r.Tools))
	}
	return reports
}
