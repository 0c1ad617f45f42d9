package defs

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"vcombat/pkg/items"
	"vcombat/pkg/races"
	"vcombat/pkg/validate"
)

// Pack is a parsed definition pack, ready to register.
type Pack struct {
	Races []races.RaceDefinition
	Items []items.ItemDefinition
}

// Loader turns YAML definition packs into registered races and items.
type Loader struct {
	log *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	return &Loader{log: logger}
}

// LoadFile reads, parses and registers the pack at path, then validates the
// toolsets of its races.
func (l *Loader) LoadFile(path string) ([]validate.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read defs %s", path)
	}
	pack, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "defs %s", path)
	}
	reports, err := l.Register(pack)
	if err != nil {
		return nil, errors.Wrapf(err, "defs %s", path)
	}
	l.log.Info("definitions loaded",
		zap.String("path", path),
		zap.Int("races", len(pack.Races)),
		zap.Int("items", len(pack.Items)),
	)
	return reports, nil
}

// Parse decodes a pack and builds its definitions. Nothing is registered.
func Parse(data []byte) (*Pack, error) {
	var file PackFile
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return nil, errors.Wrap(err, "parse yaml")
	}

	bodies := make(map[string]BodyDef, len(file.Bodies))
	for _, b := range file.Bodies {
		if _, exists := bodies[b.Name]; exists {
			return nil, errors.Wrapf(ErrDuplicateID, "body %s", b.Name)
		}
		bodies[b.Name] = b
	}

	pack := &Pack{}
	for _, rd := range file.Races {
		race, err := rd.build(bodies)
		if err != nil {
			return nil, err
		}
		pack.Races = append(pack.Races, race)
	}
	for _, id := range file.Items {
		item, err := id.build()
		if err != nil {
			return nil, err
		}
		pack.Items = append(pack.Items, item)
	}
	return pack, nil
}

// build gives each race a fresh body so no two races share part state.
func (d RaceDef) build(bodies map[string]BodyDef) (races.RaceDefinition, error) {
	race := races.RaceDefinition{
		ID:             d.ID,
		Name:           d.Name,
		Description:    d.Description,
		BodyHeight:     d.BodyHeight,
		BodySize:       d.BodySize,
		Humanlike:      d.Humanlike,
		Animal:         d.Animal,
		Predator:       d.Predator,
		Flesh:          d.Flesh,
		MeleeHitChance: d.HitChance,
		DodgeChance:    d.Dodge,
		ParryChance:    d.Parry,
		CritChance:     d.Crit,
	}
	if bd, ok := bodies[d.Body]; ok {
		body, err := bd.build()
		if err != nil {
			return race, errors.Wrapf(err, "race %s", d.ID)
		}
		race.Body = body
	} else if builtin, ok := builtinBodies[d.Body]; ok {
		race.Body = builtin()
	} else {
		return race, errors.Wrapf(ErrUnknownBody, "race %s: %q", d.ID, d.Body)
	}

	ts, err := buildTools(d.Tools)
	if err != nil {
		return race, errors.Wrapf(err, "race %s", d.ID)
	}
	race.Tools = ts
	return race, nil
}

// Register adds the pack to the race and item registries and runs the toolset
// validator over the new races. IDs already registered are rejected before
// anything is added.
func (l *Loader) Register(p *Pack) ([]validate.Report, error) {
	seen := make(map[string]bool)
	for _, it := range p.Items {
		if _, exists := items.Get(it.ID); exists || seen["item/"+it.ID] {
			return nil, errors.Wrapf(ErrDuplicateID, "item %s", it.ID)
		}
		seen["item/"+it.ID] = true
	}
	for _, r := range p.Races {
		if _, exists := races.Get(r.ID); exists || seen["race/"+r.ID] {
			return nil, errors.Wrapf(ErrDuplicateID, "race %s", r.ID)
		}
		seen["race/"+r.ID] = true
	}

	for _, it := range p.Items {
		items.Register(it)
	}
	reports := make([]validate.Report, 0, len(p.Races))
	for _, r := range p.Races {
		races.Register(r)
		rep := validate.Toolset(r.ID, r.Body, r.Tools)
		for _, d := range rep.Diagnostics {
			if d.Level == validate.LevelError {
				l.log.Error("toolset", zap.String("race", r.ID), zap.String("diagnostic", d.Message))
			} else {
				l.log.Warn("toolset", zap.String("race", r.ID), zap.String("diagnostic", d.Message))
			}
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

// Bootstrap validates the builtin races and then loads the optional pack at
// path. It must run before any combat.
func (l *Loader) Bootstrap(path string) ([]validate.Report, error) {
	reports := races.ValidateAll()
	for _, rep := range reports {
		for _, line := range rep.Strings() {
			l.log.Warn("toolset", zap.String("diagnostic", line))
		}
	}
	if path == "" {
		return reports, nil
	}
	loaded, err := l.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return append(reports, loaded...), nil
}
