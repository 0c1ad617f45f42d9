package world

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"vcombat/pkg/items"
	"vcombat/pkg/races"
	"vcombat/pkg/shared/components"
	"vcombat/pkg/shared/ecs"
	"vcombat/pkg/tools"
	"vcombat/pkg/vertical"
)

// SceneDefinition is the on-disk layout of a scene.
type SceneDefinition struct {
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	Ground     []int          `json:"ground"` // Row-major tile types
	Structures []StructureDef `json:"structures,omitempty"`
	Plants     []PlantDef     `json:"plants,omitempty"`
	Items      []ItemDef      `json:"items,omitempty"`
	Creatures  []CreatureDef  `json:"creatures,omitempty"`
	Spawners   []SpawnerDef   `json:"spawners,omitempty"`
}

type StructureDef struct {
	X           int     `json:"x"`
	Z           int     `json:"z"`
	Fillage     string  `json:"fillage"`
	FillPercent float64 `json:"fill_percent"`
	Door        bool    `json:"door,omitempty"`
	Open        bool    `json:"open,omitempty"`
}

type PlantDef struct {
	X      int     `json:"x"`
	Z      int     `json:"z"`
	Height float64 `json:"height"`
}

type ItemDef struct {
	X           int     `json:"x"`
	Z           int     `json:"z"`
	DefID       string  `json:"def"`
	FillPercent float64 `json:"fill_percent"`
}

type CreatureDef struct {
	X          int    `json:"x"`
	Z          int    `json:"z"`
	RaceID     string `json:"race"`
	Name       string `json:"name"`
	Gender     string `json:"gender,omitempty"`
	Faction    int    `json:"faction"`
	Aggressive bool   `json:"aggressive,omitempty"`
	Crouching  bool   `json:"crouching,omitempty"`
	Weapon     string `json:"weapon,omitempty"`
	Shield     string `json:"shield,omitempty"`
}

type SpawnerDef struct {
	X      int    `json:"x"`
	Z      int    `json:"z"`
	RaceID string `json:"race"`
}

var (
	ErrBadDimensions = errors.New("scene dimensions do not match ground layer")
	ErrOutOfBounds   = errors.New("thing placed outside the scene")
	ErrUnknownRace   = errors.New("unknown race")
)

// LoadScene reads and parses a scene file.
func LoadScene(path string) (*SceneDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read scene %s", path)
	}
	var def SceneDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, errors.Wrapf(err, "parse scene %s", path)
	}
	return &def, nil
}

// SaveScene writes def as indented JSON.
func SaveScene(path string, def *SceneDefinition) error {
	data, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode scene")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "write scene %s", path)
}

// Build creates the ground map and spawns every thing of def into w.
func (def *SceneDefinition) Build(w *ecs.World) (*Map, error) {
	if def.Width <= 0 || def.Height <= 0 || len(def.Ground) != def.Width*def.Height {
		return nil, errors.Wrapf(ErrBadDimensions, "%dx%d with %d tiles", def.Width, def.Height, len(def.Ground))
	}
	m := NewMap(def.Width, def.Height)
	m.Tiles = UnflattenTiles(def.Ground, def.Width, def.Height)

	place := func(what string, x, z int) (components.TransformComponent, error) {
		c := vertical.Cell{X: x, Z: z}
		if !m.InBounds(c) {
			return components.TransformComponent{}, errors.Wrapf(ErrOutOfBounds, "%s at %d,%d", what, x, z)
		}
		return components.TransformComponent{X: x, Z: z}, nil
	}

	for _, s := range def.Structures {
		tr, err := place("structure", s.X, s.Z)
		if err != nil {
			return nil, err
		}
		fillage, err := vertical.ParseFillage(s.Fillage)
		if err != nil {
			return nil, errors.Wrapf(err, "structure at %d,%d", s.X, s.Z)
		}
		e := w.NewEntity()
		w.AddComponent(e, tr)
		w.AddComponent(e, components.StructureComponent{Fillage: fillage, FillPercent: s.FillPercent, Door: s.Door, DoorOpen: s.Open})
	}

	for _, p := range def.Plants {
		tr, err := place("plant", p.X, p.Z)
		if err != nil {
			return nil, err
		}
		e := w.NewEntity()
		w.AddComponent(e, tr)
		w.AddComponent(e, components.PlantComponent{Height: p.Height})
	}

	for _, it := range def.Items {
		tr, err := place("item", it.X, it.Z)
		if err != nil {
			return nil, err
		}
		e := w.NewEntity()
		w.AddComponent(e, tr)
		w.AddComponent(e, components.ItemComponent{DefID: it.DefID, FillPercent: it.FillPercent})
	}

	for _, c := range def.Creatures {
		if _, err := SpawnCreature(w, m, c); err != nil {
			return nil, err
		}
	}

	for _, s := range def.Spawners {
		if _, err := place("spawner", s.X, s.Z); err != nil {
			return nil, err
		}
		m.Spawners = append(m.Spawners, Spawner{X: s.X, Z: s.Z, RaceID: s.RaceID})
	}
	return m, nil
}

// SpawnCreature adds a creature with its health, posture, equipment and melee
// state to w.
func SpawnCreature(w *ecs.World, m *Map, c CreatureDef) (ecs.Entity, error) {
	cell := vertical.Cell{X: c.X, Z: c.Z}
	if !m.InBounds(cell) {
		return 0, errors.Wrapf(ErrOutOfBounds, "creature %s at %d,%d", c.Name, c.X, c.Z)
	}
	def, ok := races.Get(c.RaceID)
	if !ok {
		return 0, errors.Wrapf(ErrUnknownRace, "%q", c.RaceID)
	}
	gender, err := tools.ParseGender(c.Gender)
	if err != nil {
		return 0, errors.Wrapf(err, "creature %s", c.Name)
	}

	var eq components.EquipmentComponent
	for _, id := range []string{c.Weapon, c.Shield} {
		if id == "" {
			continue
		}
		if _, err := items.Equip(&eq, id); err != nil {
			return 0, errors.Wrapf(err, "creature %s", c.Name)
		}
	}

	name := c.Name
	if name == "" {
		name = def.Name
	}

	e := w.NewEntity()
	w.AddComponent(e, components.TransformComponent{X: c.X, Z: c.Z})
	w.AddComponent(e, components.CreatureComponent{RaceID: def.ID, Name: name, Gender: gender})
	w.AddComponent(e, components.PostureComponent{Crouching: c.Crouching})
	w.AddComponent(e, components.NewHealth())
	w.AddComponent(e, eq)
	w.AddComponent(e, components.MeleeComponent{Faction: c.Faction, IsAggressive: c.Aggressive})
	return e, nil
}
