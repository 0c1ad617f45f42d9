package melee

import (
	"math/rand/v2"
)

const (
	DefaultHitChance  = 0.6
	ShieldBlockChance = 0.75 // Default share of parries taken on a shield

	// Baseline chances for combatants of equal skill
	BaseCritChance  = 0.1
	BaseDodgeChance = 0.1
	BaseParryChance = 0.2
)

// Outcome is how a swing resolved.
type Outcome int

const (
	OutcomeMiss Outcome = iota
	OutcomeDodge
	OutcomeParry
	OutcomeRiposte
	OutcomeHit
	OutcomeCrit
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMiss:
		return "miss"
	case OutcomeDodge:
		return "dodge"
	case OutcomeParry:
		return "parry"
	case OutcomeRiposte:
		return "riposte"
	case OutcomeHit:
		return "hit"
	case OutcomeCrit:
		return "crit"
	}
	return "outcome(?)"
}

// Connected reports whether the attack reached its target.
func (o Outcome) Connected() bool {
	return o == OutcomeHit || o == OutcomeCrit
}

// ParryWith names what took a parried blow.
type ParryWith int

const (
	ParryNone ParryWith = iota
	ParryShield
	ParryWeapon
	ParryBody
)

// Result is the resolution of one attack.
type Result struct {
	Outcome   Outcome
	ParryWith ParryWith
	// Damage lands on the target on a hit, or on the parrying item on a parry
	Damage []DamageInfo
	// Counter lands on the attacker after a riposte
	Counter []DamageInfo
}

func chance(rng *rand.Rand, p float64) bool {
	if p >= 1 {
		return true
	}
	if p <= 0 {
		return false
	}
	return rng.Float64() < p
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

// ComparativeChance pits off's skill against def's: base + off - def*defMult,
// clamped to [0,1]. Either side missing gives 0.
func ComparativeChance(off, def *Combatant, stat func(*Skills) float64, base, defMult float64) float64 {
	if off == nil || def == nil {
		return 0
	}
	var offSkill, defSkill float64
	if off.Skills != nil {
		offSkill = stat(off.Skills)
	}
	if def.Skills != nil {
		defSkill = stat(def.Skills) * defMult
	}
	return clamp01(base + offSkill - defSkill)
}

func critStat(s *Skills) float64  { return s.Crit }
func parryStat(s *Skills) float64 { return s.Parry }

// HitChance is the chance the swing is on target before dodges and parries.
func HitChance(a Attack) float64 {
	if a.Surprise || a.Target.Immobile() {
		return 1
	}
	if a.Attacker != nil && a.Attacker.Skills != nil {
		return a.Attacker.Skills.HitChance
	}
	return DefaultHitChance
}

// DodgeChance is the defender's own dodge stat, or the baseline when it has
// no skills.
func DodgeChance(defender *Combatant) float64 {
	if defender.Skills == nil {
		return BaseDodgeChance
	}
	return clamp01(defender.Skills.Dodge)
}

// CanParry reports whether the defender is in a state to parry. The parry
// tracker, when given, must also have a parry left for the defender.
func CanParry(defender *Combatant, tracker *ParryTracker) bool {
	if !defender.Creature() || !defender.Humanlike || defender.Immobile() {
		return false
	}
	return tracker == nil || tracker.CanParry(defender.ID)
}

// Strike resolves a swing: hit roll, dodge, parry (possibly a riposte with
// counterTool), then crit. Rolls are drawn from rng in that fixed order so a
// seeded generator replays the same fight. Only an actual parry uses up one
// of the defender's parries in tracker.
func Strike(rng *rand.Rand, a Attack, tracker *ParryTracker, counterTool *Attack) Result {
	if !chance(rng, HitChance(a)) {
		return Result{Outcome: OutcomeMiss}
	}

	defender := a.Target
	immobile := defender.Immobile()
	if !immobile && !a.Surprise && chance(rng, DodgeChance(defender)) {
		return Result{Outcome: OutcomeDodge}
	}

	parryChance := ComparativeChance(defender, a.Attacker, parryStat, BaseParryChance, 1+a.CounterParryBonus)
	if !a.Surprise && CanParry(defender, tracker) && chance(rng, parryChance) {
		if tracker != nil {
			tracker.Register(defender.ID)
		}
		return parry(rng, a, counterTool)
	}

	crit := a.Surprise || chance(rng, ComparativeChance(a.Attacker, defender, critStat, BaseCritChance, 1))
	res := Result{Outcome: OutcomeHit, Damage: DamageInfos(rng, a, crit)}
	if crit {
		res.Outcome = OutcomeCrit
	}
	return res
}

func parry(rng *rand.Rand, a Attack, counter *Attack) Result {
	defender := a.Target
	res := Result{Outcome: OutcomeParry, ParryWith: ParryBody}

	block := defender.ShieldBlock
	if block == 0 {
		block = ShieldBlockChance
	}
	switch {
	case defender.Shield != "" && chance(rng, block):
		res.ParryWith = ParryShield
	case defender.Weapon != "":
		res.ParryWith = ParryWeapon
	}

	// The blow is deflected onto whatever parried it
	res.Damage = DamageInfos(rng, a, false)
	for i := range res.Damage {
		res.Damage[i].Parried = true
	}

	if !chance(rng, ComparativeChance(defender, a.Attacker, critStat, BaseCritChance, 1)) {
		return res
	}

	res.Outcome = OutcomeRiposte
	if res.ParryWith == ParryShield {
		res.Counter = []DamageInfo{shieldBash(a)}
	} else if counter != nil {
		res.Counter = DamageInfos(rng, *counter, true)
	}
	return res
}
