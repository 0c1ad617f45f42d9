package systems

import (
	"vcombat/pkg/anatomy"
	"vcombat/pkg/items"
	"vcombat/pkg/melee"
	"vcombat/pkg/races"
	"vcombat/pkg/tools"
	"vcombat/pkg/vertical"
)

// NewCombatant describes a creature of race def standing in profile for the
// melee resolver. weapon and shield are item IDs and may be empty.
func NewCombatant(id uint64, def races.RaceDefinition, profile vertical.Profile, injuries *anatomy.State, weapon, shield string) *melee.Combatant {
	c := &melee.Combatant{
		ID:        id,
		Name:      def.Name,
		Profile:   profile,
		Body:      def.Body,
		Injuries:  injuries,
		Humanlike: def.Humanlike,
		Animal:    def.Animal,
		Predator:  def.Predator,
		Flesh:     def.Flesh,
		Skills: &melee.Skills{
			HitChance: def.MeleeHitChance,
			Dodge:     def.DodgeChance,
			Parry:     def.ParryChance,
			Crit:      def.CritChance,
		},
	}
	if c.Skills.HitChance == 0 {
		c.Skills.HitChance = melee.DefaultHitChance
	}
	if _, ok := items.Get(weapon); ok {
		c.Weapon = weapon
	}
	if shield, ok := items.Get(shield); ok {
		c.Shield = shield.ID
		c.ShieldBlock = shield.BlockChance
	}
	return c
}

// AvailableTools lists the tools c can swing: those of its held weapon, then
// the natural ones its injuries and sex still allow.
func AvailableTools(def races.RaceDefinition, c *melee.Combatant) []*tools.Tool {
	var out []*tools.Tool
	if item, ok := items.Get(c.Weapon); ok && item.Type == items.ItemTypeWeapon {
		out = append(out, item.Tools...)
	}
	for _, t := range def.Tools {
		if melee.Usable(c, t) {
			out = append(out, t)
		}
	}
	return out
}

// FindTool looks a tool up by its owning race or item.
func FindTool(owner, id string) (*tools.Tool, bool) {
	var ts []*tools.Tool
	if def, ok := races.Get(owner); ok {
		ts = def.Tools
	} else if item, ok := items.Get(owner); ok {
		ts = item.Tools
	}
	for _, t := range ts {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}
