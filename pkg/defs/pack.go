package defs

import (
	"strings"

	"github.com/pkg/errors"

	"vcombat/pkg/anatomy"
	"vcombat/pkg/items"
	"vcombat/pkg/races"
	"vcombat/pkg/shared/components"
	"vcombat/pkg/tools"
	"vcombat/pkg/vertical"
)

// PackFile is the YAML layout of a definition pack.
type PackFile struct {
	Bodies []BodyDef `yaml:"bodies,omitempty"`
	Races  []RaceDef `yaml:"races,omitempty"`
	Items  []ItemDef `yaml:"items,omitempty"`
}

type BodyDef struct {
	Name  string    `yaml:"name"`
	Parts []PartDef `yaml:"parts"`
}

// PartDef is one body part. Parent names an earlier part; the part without a
// parent is the core and must come first.
type PartDef struct {
	Name      string             `yaml:"name"`
	Def       string             `yaml:"def,omitempty"`
	Parent    string             `yaml:"parent,omitempty"`
	Region    string             `yaml:"region,omitempty"`
	Depth     string             `yaml:"depth,omitempty"` // inside or outside, default outside
	Coverage  float64            `yaml:"coverage"`
	Groups    []string           `yaml:"groups,omitempty"`
	Tags      []TagDef           `yaml:"tags,omitempty"`
	HitChance map[string]float64 `yaml:"hit_chance,omitempty"`
}

type TagDef struct {
	Name  string `yaml:"name"`
	Vital bool   `yaml:"vital,omitempty"`
}

type RaceDef struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Body        string    `yaml:"body"`
	BodyHeight  float64   `yaml:"body_height"`
	BodySize    float64   `yaml:"body_size"`
	Humanlike   bool      `yaml:"humanlike,omitempty"`
	Animal      bool      `yaml:"animal,omitempty"`
	Predator    bool      `yaml:"predator,omitempty"`
	Flesh       bool      `yaml:"flesh,omitempty"`
	HitChance   float64   `yaml:"hit_chance,omitempty"`
	Dodge       float64   `yaml:"dodge,omitempty"`
	Parry       float64   `yaml:"parry,omitempty"`
	Crit        float64   `yaml:"crit,omitempty"`
	Tools       []ToolDef `yaml:"tools"`
}

type ItemDef struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Type        string    `yaml:"type"` // weapon or shield
	Description string    `yaml:"description,omitempty"`
	Bulk        float64   `yaml:"bulk,omitempty"`
	OneHanded   bool      `yaml:"one_handed,omitempty"`
	BlockChance float64   `yaml:"block_chance,omitempty"`
	Tools       []ToolDef `yaml:"tools,omitempty"`
}

type ToolDef struct {
	ID                 string           `yaml:"id"`
	Label              string           `yaml:"label,omitempty"`
	Capacities         []string         `yaml:"capacities"`
	Power              float64          `yaml:"power"`
	Cooldown           float64          `yaml:"cooldown"`
	ChanceFactor       float64          `yaml:"chance_factor,omitempty"`
	APSharp            float64          `yaml:"ap_sharp,omitempty"`
	APBlunt            float64          `yaml:"ap_blunt,omitempty"`
	LinkedGroup        string           `yaml:"linked_group,omitempty"`
	RestrictedGender   string           `yaml:"restricted_gender,omitempty"`
	Fallback           string           `yaml:"fallback,omitempty"`
	EnsureAlwaysUsable bool             `yaml:"ensure_always_usable,omitempty"`
	ExtraDamages       []ExtraDamageDef `yaml:"extra_damages,omitempty"`
}

type ExtraDamageDef struct {
	Def    string  `yaml:"def"`
	Amount float64 `yaml:"amount"`
	AP     float64 `yaml:"ap,omitempty"`
	Chance float64 `yaml:"chance,omitempty"`
}

var (
	ErrUnknownBody     = errors.New("unknown body")
	ErrUnknownParent   = errors.New("unknown parent part")
	ErrNoCore          = errors.New("body has no core part")
	ErrUnknownItemType = errors.New("unknown item type")
	ErrDuplicateID     = errors.New("duplicate definition id")
)

// Builtin bodies a race may name without defining them in its pack.
var builtinBodies = map[string]func() *anatomy.Body{
	"Human":                   races.HumanoidBody,
	"QuadrupedAnimalWithPaws": races.QuadrupedBody,
}

func parseDepth(s string) (anatomy.Depth, error) {
	switch strings.ToLower(s) {
	case "", "outside":
		return anatomy.DepthOutside, nil
	case "inside":
		return anatomy.DepthInside, nil
	}
	return anatomy.DepthUndefined, &vertical.ParseError{Kind: "depth", Value: s}
}

func (d BodyDef) build() (*anatomy.Body, error) {
	b := anatomy.NewBody(d.Name)
	index := make(map[string]int, len(d.Parts))
	for _, pd := range d.Parts {
		parent := -1
		if pd.Parent != "" {
			idx, ok := index[pd.Parent]
			if !ok {
				return nil, errors.Wrapf(ErrUnknownParent, "%s: %q under %q", d.Name, pd.Name, pd.Parent)
			}
			parent = idx
		}
		region, ok := vertical.ParseRegion(pd.Region)
		if !ok {
			return nil, errors.Wrapf(&vertical.ParseError{Kind: "region", Value: pd.Region}, "%s: part %q", d.Name, pd.Name)
		}
		depth, err := parseDepth(pd.Depth)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: part %q", d.Name, pd.Name)
		}

		part := anatomy.Part{
			Name:      pd.Name,
			Def:       pd.Def,
			Region:    region,
			Depth:     depth,
			Coverage:  pd.Coverage,
			Groups:    pd.Groups,
			HitChance: pd.HitChance,
		}
		if part.Def == "" {
			part.Def = pd.Name
		}
		for _, tag := range pd.Tags {
			part.Tags = append(part.Tags, anatomy.Tag{Name: tag.Name, Vital: tag.Vital})
		}

		idx := b.AddPart(parent, part)
		if idx < 0 {
			return nil, errors.Wrapf(ErrNoCore, "%s: second root %q", d.Name, pd.Name)
		}
		index[pd.Name] = idx
	}
	if b.Core < 0 {
		return nil, errors.Wrap(ErrNoCore, d.Name)
	}
	return b, nil
}

func (d ToolDef) build() (*tools.Tool, error) {
	gender, err := tools.ParseGender(d.RestrictedGender)
	if err != nil {
		return nil, errors.Wrapf(err, "tool %s", d.ID)
	}
	fallback, err := tools.ParseFallback(d.Fallback)
	if err != nil {
		return nil, errors.Wrapf(err, "tool %s", d.ID)
	}
	t := &tools.Tool{
		ID:                    d.ID,
		Label:                 d.Label,
		Capacities:            d.Capacities,
		Power:                 d.Power,
		Cooldown:              d.Cooldown,
		ChanceFactor:          d.ChanceFactor,
		ArmorPenetrationSharp: d.APSharp,
		ArmorPenetrationBlunt: d.APBlunt,
		LinkedGroup:           d.LinkedGroup,
		RestrictedGender:      gender,
		Fallback:              fallback,
		EnsureAlwaysUsable:    d.EnsureAlwaysUsable,
	}
	for _, e := range d.ExtraDamages {
		t.ExtraDamages = append(t.ExtraDamages, tools.ExtraDamage{Def: e.Def, Amount: e.Amount, ArmorPenetration: e.AP, Chance: e.Chance})
	}
	return t, nil
}

func buildTools(defs []ToolDef) ([]*tools.Tool, error) {
	out := make([]*tools.Tool, 0, len(defs))
	for _, d := range defs {
		t, err := d.build()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (d ItemDef) build() (items.ItemDefinition, error) {
	item := items.ItemDefinition{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Bulk:        d.Bulk,
		OneHanded:   d.OneHanded,
		BlockChance: d.BlockChance,
	}
	switch strings.ToLower(d.Type) {
	case "weapon":
		item.Type = items.ItemTypeWeapon
		item.EquipmentSlot = components.SlotWeapon
	case "shield":
		item.Type = items.ItemTypeShield
		item.EquipmentSlot = components.SlotShield
	default:
		return item, errors.Wrapf(ErrUnknownItemType, "item %s: %q", d.ID, d.Type)
	}
	ts, err := buildTools(d.Tools)
	if err != nil {
		return item, errors.Wrapf(err, "item %s", d.ID)
	}
	item.Tools = ts
	return item, nil
}
