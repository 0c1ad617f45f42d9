// Package melee resolves one melee attack between two scene things: the height
// band it can land in, the body part it strikes, whether it connects, and the
// damage it deals.
package melee

import (
	"math"
	"math/rand/v2"

	"vcombat/pkg/anatomy"
	"vcombat/pkg/reach"
	"vcombat/pkg/selection"
	"vcombat/pkg/tools"
	"vcombat/pkg/vertical"
)

// Skills are a combatant's melee stats. A nil *Skills means the combatant has
// no melee skill at all (turrets, animals without training).
type Skills struct {
	HitChance float64
	Dodge     float64
	Parry     float64
	Crit      float64
}

// Combatant is one side of a melee exchange as the host sees it this tick.
type Combatant struct {
	ID       uint64
	Name     string
	Profile  vertical.Profile // At the cell the combatant acts from
	Body     *anatomy.Body    // nil when the thing is not a creature
	Injuries *anatomy.State
	Gender   tools.Gender

	Humanlike bool
	Animal    bool
	Predator  bool
	Flesh     bool
	Downed    bool
	Stunned   bool
	Skills    *Skills

	Weapon      string  // Held weapon def, empty when unarmed
	Shield      string  // Worn shield def, empty when none
	ShieldBlock float64 // Chance a parry is taken on the shield
}

// Creature reports whether c has anatomy that can be struck part by part.
func (c *Combatant) Creature() bool {
	return c != nil && c.Body != nil
}

// Immobile things cannot dodge or parry and are always hit.
func (c *Combatant) Immobile() bool {
	return !c.Creature() || c.Downed || c.Stunned
}

// Attack is one swing of a tool.
type Attack struct {
	Attacker *Combatant // nil for attacks without a creature behind them
	Target   *Combatant
	Tool     *tools.Tool
	// SourcePart is the attacker's body part the attack comes from when the tool
	// is granted by an implant, -1 otherwise.
	SourcePart int
	Surprise   bool
	// CounterParryBonus is added to 1 and scales the attacker's parry skill when
	// the defender tries to parry.
	CounterParryBonus float64
}

// NewAttack builds an attack with no implant source.
func NewAttack(attacker, target *Combatant, tool *tools.Tool) Attack {
	return Attack{Attacker: attacker, Target: target, Tool: tool, SourcePart: -1}
}

// Region is the attacker's region the attack is made from.
func (a Attack) Region() vertical.Region {
	if a.SourcePart >= 0 && a.Attacker.Creature() {
		return a.Attacker.Body.InferRegion(a.SourcePart)
	}
	if a.Tool == nil {
		return vertical.RegionUndefined
	}
	return a.Tool.AttackRegion()
}

func (a Attack) toolReach() float64 {
	if a.Tool == nil {
		return 0
	}
	return a.Tool.Reach()
}

func (a Attack) policy() tools.Fallback {
	if a.Tool == nil {
		// Attacks without a tool may always fall back
		return tools.FallbackNearest
	}
	return a.Tool.Fallback
}

// ComputeAttackEnvelope is the height band the attack can land in on its
// target. Without an attacker the attack covers the whole target (or all
// heights when the target is not a creature), as does an attack from an
// Undefined region. False means the attack cannot reach the target.
func ComputeAttackEnvelope(a Attack) (reach.Envelope, bool) {
	var target *vertical.Interval
	if a.Target.Creature() {
		target = &a.Target.Profile.Interval
	}

	if !a.Attacker.Creature() {
		if target == nil {
			return reach.Envelope{Band: vertical.Interval{Min: 0, Max: math.MaxFloat64}}, true
		}
		return reach.Envelope{Band: *target}, true
	}

	region := a.Region()
	if target != nil && region == vertical.RegionUndefined {
		return reach.Envelope{Band: *target}, true
	}
	return reach.Resolve(a.Attacker.Profile.Interval, region, a.toolReach(), a.policy(), target)
}

// CanReach reports whether the attack has any band to land in.
func CanReach(a Attack) bool {
	_, ok := ComputeAttackEnvelope(a)
	return ok
}

// SelectStruckRegion draws the body part an attack with envelope env strikes
// and returns it with its region. It returns (-1, RegionUndefined), meaning
// "anywhere", when the target is not a creature, the attack has no creature
// behind it, a FullBody tool had to fall back, or nothing in band has coverage.
func SelectStruckRegion(rng *rand.Rand, a Attack, env reach.Envelope) (int, vertical.Region) {
	if !a.Target.Creature() || !a.Attacker.Creature() {
		return -1, vertical.RegionUndefined
	}
	if env.UsedFallback && a.Tool != nil && a.Tool.Fallback == tools.FallbackFullBody {
		return -1, vertical.RegionUndefined
	}

	part, ok := selection.SelectPart(rng, a.Target.Body, a.Target.Injuries, a.Target.Profile.Interval, env.Band, a.damageKind())
	if !ok {
		return -1, vertical.RegionUndefined
	}
	return part, a.Target.Body.Parts[part].Region
}

// StruckRegion computes the envelope and draws the struck part in one go.
func StruckRegion(rng *rand.Rand, a Attack) (int, vertical.Region) {
	env, ok := ComputeAttackEnvelope(a)
	if !ok {
		return -1, vertical.RegionUndefined
	}
	return SelectStruckRegion(rng, a, env)
}

func (a Attack) damageKind() string {
	if a.Tool == nil {
		return "Blunt"
	}
	return a.Tool.DamageKind()
}
