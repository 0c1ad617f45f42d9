package tools

import (
	"vcombat/pkg/anatomy"
	"vcombat/pkg/shared/config"
	"vcombat/pkg/vertical"
)

// ExtraDamage is an additional damage roll applied on a successful hit.
type ExtraDamage struct {
	Def              string
	Amount           float64
	ArmorPenetration float64
	Chance           float64 // 0 means always
}

// Owner is the definition a tool belongs to: a race (with a body) or a weapon.
type Owner struct {
	DefName   string
	Body      *anatomy.Body // nil for weapons
	Bulk      float64
	OneHanded bool
}

func (o *Owner) IsWeapon() bool {
	return o != nil && o.Body == nil
}

// Tool is one melee attack a creature or weapon can make.
type Tool struct {
	ID                    string
	Label                 string
	Capacities            []string // Damage kinds, the first one is used for hit chances
	Power                 float64
	Cooldown              float64
	ChanceFactor          float64
	ArmorPenetrationSharp float64
	ArmorPenetrationBlunt float64
	LinkedGroup           string
	RestrictedGender      Gender
	Fallback              Fallback
	EnsureAlwaysUsable    bool
	ExtraDamages          []ExtraDamage

	owner    *Owner
	reach    float64
	reachSet bool
}

// Bind attaches the tool to its owning definition. It is called once when the
// definition is registered; a second bind replaces the owner and drops cached data.
func (t *Tool) Bind(o *Owner) {
	t.owner = o
	t.reachSet = false
}

func (t *Tool) Owner() *Owner {
	return t.owner
}

// Reach is how far beyond the owner's body the tool extends, in cell heights.
// Natural weapons add nothing; held weapons add a share of their bulk.
func (t *Tool) Reach() float64 {
	if t.reachSet {
		return t.reach
	}
	t.reach = 0
	if t.owner.IsWeapon() {
		mult := config.TwoHandedReachMult
		if t.owner.OneHanded {
			mult = config.OneHandedReachMult
		}
		t.reach = mult * t.owner.Bulk
	}
	t.reachSet = t.owner != nil
	return t.reach
}

// LinkedPart is the first body part of the owner's body in the tool's linked group.
func (t *Tool) LinkedPart() (int, bool) {
	if t.owner == nil || t.owner.Body == nil {
		return -1, false
	}
	return t.owner.Body.FirstInGroup(t.LinkedGroup)
}

// AttackRegion is the region the tool strikes from. Unbound tools are Undefined,
// weapons and tools without a linked group attack from Middle.
func (t *Tool) AttackRegion() vertical.Region {
	if t.owner == nil {
		return vertical.RegionUndefined
	}
	if t.owner.IsWeapon() || t.LinkedGroup == "" {
		return vertical.RegionMiddle
	}
	part, _ := t.LinkedPart()
	return t.owner.Body.InferRegion(part)
}

func (t *Tool) UpperFallback() bool {
	return t.Fallback.AllowsUpper()
}

func (t *Tool) LowerFallback() bool {
	return t.Fallback.AllowsLower()
}

// DamageKind is the primary damage kind, Blunt when none is declared.
func (t *Tool) DamageKind() string {
	if len(t.Capacities) == 0 {
		return "Blunt"
	}
	return t.Capacities[0]
}

func (t *Tool) String() string {
	if t.Label != "" {
		return t.Label
	}
	return t.ID
}
