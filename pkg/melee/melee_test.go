package melee

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcombat/pkg/anatomy"
	"vcombat/pkg/races"
	"vcombat/pkg/selection"
	"vcombat/pkg/tools"
	"vcombat/pkg/vertical"
)

func testRNG() *rand.Rand {
	return selection.NewRand(7)
}

func combatant(t *testing.T, id uint64, race string, interval vertical.Interval) *Combatant {
	t.Helper()
	def, ok := races.Get(race)
	require.True(t, ok, race)
	return &Combatant{
		ID:        id,
		Name:      def.Name,
		Profile:   vertical.Profile{Interval: interval},
		Body:      def.Body,
		Injuries:  anatomy.NewState(),
		Humanlike: def.Humanlike,
		Animal:    def.Animal,
		Predator:  def.Predator,
		Flesh:     def.Flesh,
	}
}

func raceTool(t *testing.T, race, id string) *tools.Tool {
	t.Helper()
	def, _ := races.Get(race)
	for _, tool := range def.Tools {
		if tool.ID == id {
			return tool
		}
	}
	t.Fatalf("no tool %s on %s", id, race)
	return nil
}

var (
	standing = vertical.Interval{Min: 0, Max: 1}
	hare     = vertical.Interval{Min: 0, Max: 0.25}
)

func TestComputeAttackEnvelope(t *testing.T) {
	human := combatant(t, 1, "human", standing)
	other := combatant(t, 2, "human", standing)
	rabbit := combatant(t, 3, "rabbit", hare)
	fist := raceTool(t, "human", "left_fist")

	t.Run("same height", func(t *testing.T) {
		env, ok := ComputeAttackEnvelope(NewAttack(human, other, fist))
		require.True(t, ok)
		assert.False(t, env.UsedFallback)
		assert.InDelta(t, 0.4, env.Band.Min, 1e-9)
		assert.InDelta(t, 1.0, env.Band.Max, 1e-9)
	})

	t.Run("no attacker", func(t *testing.T) {
		env, ok := ComputeAttackEnvelope(NewAttack(nil, rabbit, fist))
		require.True(t, ok)
		assert.Equal(t, hare, env.Band)

		env, ok = ComputeAttackEnvelope(NewAttack(nil, &Combatant{ID: 9}, fist))
		require.True(t, ok)
		assert.Equal(t, 0.0, env.Band.Min)
		assert.Equal(t, math.MaxFloat64, env.Band.Max)
	})

	t.Run("undefined region covers the target", func(t *testing.T) {
		loose := &tools.Tool{ID: "loose", Capacities: []string{"Blunt"}, Power: 1}
		env, ok := ComputeAttackEnvelope(NewAttack(human, rabbit, loose))
		require.True(t, ok)
		assert.Equal(t, hare, env.Band)
	})

	t.Run("fallback towards a small target", func(t *testing.T) {
		fixed := *fist
		fixed.Fallback = tools.FallbackNone
		assert.False(t, CanReach(NewAttack(human, rabbit, &fixed)))

		fixed.Fallback = tools.FallbackNearest
		env, ok := ComputeAttackEnvelope(NewAttack(human, rabbit, &fixed))
		require.True(t, ok)
		assert.True(t, env.UsedFallback)
		assert.InDelta(t, 0.2, env.Band.Min, 1e-9)
		assert.InDelta(t, 0.25, env.Band.Max, 1e-9)
	})

	t.Run("implant source part", func(t *testing.T) {
		a := NewAttack(human, other, fist)
		foot, ok := human.Body.FirstInGroup("Feet")
		require.True(t, ok)
		a.SourcePart = foot
		assert.Equal(t, vertical.RegionBottom, a.Region())
	})
}

func TestStruckRegion(t *testing.T) {
	rng := testRNG()
	human := combatant(t, 1, "human", standing)
	other := combatant(t, 2, "human", standing)
	rabbit := combatant(t, 3, "rabbit", hare)
	fist := raceTool(t, "human", "right_fist")

	t.Run("part matches region", func(t *testing.T) {
		for range 50 {
			part, region := StruckRegion(rng, NewAttack(human, other, fist))
			require.GreaterOrEqual(t, part, 0)
			assert.Equal(t, other.Body.Parts[part].Region, region)
			assert.Equal(t, anatomy.DepthOutside, other.Body.Parts[part].Depth)
		}
	})

	t.Run("fallback band hits the top of a small target", func(t *testing.T) {
		fixed := *fist
		fixed.Fallback = tools.FallbackNearest
		for range 50 {
			_, region := StruckRegion(rng, NewAttack(human, rabbit, &fixed))
			assert.Contains(t, []vertical.Region{vertical.RegionMiddle, vertical.RegionTop}, region)
		}
	})

	t.Run("full body fallback hits anywhere", func(t *testing.T) {
		fixed := *fist
		fixed.Fallback = tools.FallbackFullBody
		part, region := StruckRegion(rng, NewAttack(human, rabbit, &fixed))
		assert.Equal(t, -1, part)
		assert.Equal(t, vertical.RegionUndefined, region)
	})

	t.Run("not a creature", func(t *testing.T) {
		part, region := StruckRegion(rng, NewAttack(human, &Combatant{ID: 9}, fist))
		assert.Equal(t, -1, part)
		assert.Equal(t, vertical.RegionUndefined, region)
	})

	t.Run("unreachable", func(t *testing.T) {
		fixed := *fist
		fixed.Fallback = tools.FallbackNone
		part, region := StruckRegion(rng, NewAttack(human, rabbit, &fixed))
		assert.Equal(t, -1, part)
		assert.Equal(t, vertical.RegionUndefined, region)
	})
}

func TestStrike(t *testing.T) {
	fist := raceTool(t, "human", "left_fist")

	setup := func(t *testing.T) (*Combatant, *Combatant) {
		att := combatant(t, 1, "human", standing)
		def := combatant(t, 2, "human", standing)
		att.Skills = &Skills{HitChance: 1, Crit: 1}
		def.Skills = &Skills{}
		return att, def
	}

	t.Run("miss", func(t *testing.T) {
		att, def := setup(t)
		att.Skills.HitChance = 0
		res := Strike(testRNG(), NewAttack(att, def, fist), nil, nil)
		assert.Equal(t, OutcomeMiss, res.Outcome)
		assert.Empty(t, res.Damage)
	})

	t.Run("dodge", func(t *testing.T) {
		att, def := setup(t)
		def.Skills.Dodge = 1
		res := Strike(testRNG(), NewAttack(att, def, fist), nil, nil)
		assert.Equal(t, OutcomeDodge, res.Outcome)
	})

	t.Run("surprise always crits", func(t *testing.T) {
		att, def := setup(t)
		att.Skills.HitChance = 0
		def.Skills.Dodge = 1
		def.Skills.Parry = 1
		a := NewAttack(att, def, fist)
		a.Surprise = true

		res := Strike(testRNG(), a, nil, nil)
		assert.Equal(t, OutcomeCrit, res.Outcome)
		require.NotEmpty(t, res.Damage)
		assert.Same(t, fist, res.Damage[0].Tool)
		// Blunt crit on flesh stuns
		last := res.Damage[len(res.Damage)-1]
		assert.Equal(t, "Stun", last.Kind)
	})

	t.Run("downed targets are always hit", func(t *testing.T) {
		att, def := setup(t)
		att.Skills = nil
		def.Downed = true
		def.Skills.Dodge = 1
		for range 20 {
			res := Strike(testRNG(), NewAttack(att, def, fist), nil, nil)
			assert.True(t, res.Outcome.Connected(), res.Outcome.String())
		}
	})

	t.Run("shield parry", func(t *testing.T) {
		att, def := setup(t)
		def.Skills.Parry = 1
		def.Shield = "shield_wood"
		def.ShieldBlock = 1
		res := Strike(testRNG(), NewAttack(att, def, fist), nil, nil)
		assert.Equal(t, OutcomeParry, res.Outcome)
		assert.Equal(t, ParryShield, res.ParryWith)
		require.NotEmpty(t, res.Damage)
		assert.True(t, res.Damage[0].Parried)
		assert.Empty(t, res.Counter)
	})

	t.Run("shield riposte bashes", func(t *testing.T) {
		att, def := setup(t)
		att.Skills.Crit = 0
		def.Skills.Parry = 1
		def.Skills.Crit = 1
		def.Shield = "shield_wood"
		def.ShieldBlock = 1
		res := Strike(testRNG(), NewAttack(att, def, fist), nil, nil)
		assert.Equal(t, OutcomeRiposte, res.Outcome)
		require.Len(t, res.Counter, 1)
		assert.Equal(t, "Blunt", res.Counter[0].Kind)
		assert.Equal(t, 6.0, res.Counter[0].Amount)
		assert.Equal(t, def.ID, res.Counter[0].Instigator)
	})

	t.Run("weapon riposte counters", func(t *testing.T) {
		att, def := setup(t)
		att.Skills.Crit = 0
		def.Skills.Parry = 1
		def.Skills.Crit = 1
		def.Weapon = "knife"
		counter := NewAttack(def, att, raceTool(t, "human", "right_fist"))
		res := Strike(testRNG(), NewAttack(att, def, fist), nil, &counter)
		assert.Equal(t, OutcomeRiposte, res.Outcome)
		assert.Equal(t, ParryWeapon, res.ParryWith)
		require.NotEmpty(t, res.Counter)
		assert.Equal(t, def.ID, res.Counter[0].Instigator)
	})

	t.Run("animals cannot parry", func(t *testing.T) {
		att, _ := setup(t)
		wolf := combatant(t, 3, "wolf", vertical.Interval{Min: 0, Max: 0.6})
		wolf.Skills = &Skills{Parry: 1}
		res := Strike(testRNG(), NewAttack(att, wolf, fist), nil, nil)
		assert.True(t, res.Outcome.Connected())
	})

	t.Run("tracker limits parries", func(t *testing.T) {
		att, def := setup(t)
		def.Skills.Parry = 1
		tracker := NewParryTracker(1, 10)

		res := Strike(testRNG(), NewAttack(att, def, fist), tracker, nil)
		assert.Equal(t, OutcomeParry, res.Outcome)

		res = Strike(testRNG(), NewAttack(att, def, fist), tracker, nil)
		assert.Equal(t, OutcomeCrit, res.Outcome)

		tracker.Advance(10)
		res = Strike(testRNG(), NewAttack(att, def, fist), tracker, nil)
		assert.Equal(t, OutcomeParry, res.Outcome)
	})

	t.Run("only parries use up the tracker", func(t *testing.T) {
		att, def := setup(t)
		def.Skills.Parry = 1
		tracker := NewParryTracker(1, 10)

		att.Skills.HitChance = 0
		res := Strike(testRNG(), NewAttack(att, def, fist), tracker, nil)
		require.Equal(t, OutcomeMiss, res.Outcome)
		assert.True(t, tracker.CanParry(def.ID))

		att.Skills.HitChance = 1
		res = Strike(testRNG(), NewAttack(att, def, fist), tracker, nil)
		assert.Equal(t, OutcomeParry, res.Outcome)
		assert.False(t, tracker.CanParry(def.ID))
	})
}

func TestComparativeChance(t *testing.T) {
	a := &Combatant{Skills: &Skills{Crit: 0.3}}
	b := &Combatant{Skills: &Skills{Crit: 0.1}}
	assert.InDelta(t, 0.3, ComparativeChance(a, b, critStat, 0.1, 1), 1e-9)
	assert.InDelta(t, 0.2, ComparativeChance(a, b, critStat, 0.1, 2), 1e-9)
	assert.Equal(t, 0.0, ComparativeChance(b, &Combatant{Skills: &Skills{Crit: 5}}, critStat, 0.1, 1))
	assert.Equal(t, 0.0, ComparativeChance(nil, b, critStat, 0.1, 1))
	assert.InDelta(t, 0.1, ComparativeChance(&Combatant{}, &Combatant{}, critStat, 0.1, 1), 1e-9)
}

func TestDamageInfos(t *testing.T) {
	knife := &tools.Tool{ID: "blade", Capacities: []string{"Cut"}, Power: 10, ArmorPenetrationSharp: 0.3, ArmorPenetrationBlunt: 1}

	t.Run("no tool", func(t *testing.T) {
		infos := DamageInfos(testRNG(), Attack{Target: &Combatant{ID: 2}, SourcePart: -1}, false)
		require.Len(t, infos, 1)
		assert.Equal(t, "Blunt", infos[0].Kind)
		assert.Equal(t, 1.0, infos[0].Amount)
	})

	t.Run("weak blows become blunt", func(t *testing.T) {
		weak := &tools.Tool{ID: "poke", Capacities: []string{"Stab"}, Power: 0.5}
		infos := DamageInfos(testRNG(), NewAttack(nil, &Combatant{ID: 2}, weak), false)
		require.Len(t, infos, 1)
		assert.Equal(t, "Blunt", infos[0].Kind)
		assert.Equal(t, 1.0, infos[0].Amount)
	})

	t.Run("weak sharp crit keeps sharp rules", func(t *testing.T) {
		att := combatant(t, 1, "human", standing)
		def := combatant(t, 2, "human", standing)
		weak := &tools.Tool{ID: "poke", Capacities: []string{"Stab"}, Power: 0.5, ArmorPenetrationSharp: 0.2, ArmorPenetrationBlunt: 1}
		infos := DamageInfos(testRNG(), NewAttack(att, def, weak), true)
		require.Len(t, infos, 1, "no stun from a declared sharp tool")
		assert.Equal(t, "Blunt", infos[0].Kind)
		assert.Equal(t, 1.0, infos[0].Amount)
		assert.InDelta(t, 0.4, infos[0].ArmorPenetration, 1e-9)
	})

	t.Run("blunt crit stun carries the blow's region", func(t *testing.T) {
		att := combatant(t, 1, "human", standing)
		def := combatant(t, 2, "human", standing)
		club := &tools.Tool{ID: "head", Capacities: []string{"Blunt"}, Power: 12, ArmorPenetrationBlunt: 0.5}
		rng := testRNG()
		for range 20 {
			infos := DamageInfos(rng, NewAttack(att, def, club), true)
			require.Len(t, infos, 2)
			main, stun := infos[0], infos[1]
			assert.Equal(t, "Stun", stun.Kind)
			assert.Equal(t, main.Region, stun.Region)
			assert.Equal(t, anatomy.DepthOutside, stun.Depth)
			assert.InDelta(t, 0.5, stun.ArmorPenetration, 1e-9)
			assert.Equal(t, -1, stun.Part)
		}
	})

	t.Run("sharp crit doubles penetration", func(t *testing.T) {
		att := combatant(t, 1, "human", standing)
		def := combatant(t, 2, "human", standing)
		rng := testRNG()
		for range 20 {
			infos := DamageInfos(rng, NewAttack(att, def, knife), true)
			require.Len(t, infos, 1)
			main := infos[0]
			assert.Equal(t, "Cut", main.Kind)
			assert.GreaterOrEqual(t, main.Amount, 8.0)
			assert.LessOrEqual(t, main.Amount, 12.0)
			assert.InDelta(t, 0.6, main.ArmorPenetration, 1e-9)
			assert.Same(t, knife, main.Tool)
			assert.Equal(t, att.ID, main.Instigator)
		}
	})

	t.Run("animal crit knocks down", func(t *testing.T) {
		wolf := combatant(t, 1, "wolf", vertical.Interval{Min: 0, Max: 0.6})
		def := combatant(t, 2, "human", standing)
		infos := DamageInfos(testRNG(), NewAttack(wolf, def, knife), true)
		require.NotEmpty(t, infos)
		assert.True(t, infos[0].KnockDown)
		assert.LessOrEqual(t, infos[0].Amount, 12.0)
	})

	t.Run("predators go for the neck", func(t *testing.T) {
		wolf := combatant(t, 1, "wolf", vertical.Interval{Min: 0, Max: 0.6})
		def := combatant(t, 2, "human", standing)
		def.Downed = true
		teeth := raceTool(t, "wolf", "teeth")
		infos := DamageInfos(testRNG(), NewAttack(wolf, def, teeth), false)
		require.NotEmpty(t, infos)
		require.GreaterOrEqual(t, infos[0].Part, 0)
		assert.Equal(t, "Neck", def.Body.Parts[infos[0].Part].Def)
		assert.Equal(t, vertical.RegionTop, infos[0].Region)
	})

	t.Run("extra damages", func(t *testing.T) {
		club := &tools.Tool{ID: "club", Capacities: []string{"Blunt"}, Power: 8,
			ExtraDamages: []tools.ExtraDamage{{Def: "Stun", Amount: 10}}}
		infos := DamageInfos(testRNG(), NewAttack(nil, &Combatant{ID: 2}, club), false)
		require.Len(t, infos, 2)
		extra := infos[1]
		assert.Equal(t, "Stun", extra.Kind)
		assert.GreaterOrEqual(t, extra.Amount, 8.0)
		assert.LessOrEqual(t, extra.Amount, 12.0)
		assert.Equal(t, vertical.RegionUndefined, extra.Region)
		assert.Equal(t, anatomy.DepthOutside, extra.Depth)
		assert.Same(t, club, extra.Tool)
	})
}

type absorbOdd struct {
	seen []DamageInfo
}

func (a *absorbOdd) TakeDamage(d DamageInfo) bool {
	a.seen = append(a.seen, d)
	return len(a.seen)%2 == 1
}

func TestApply(t *testing.T) {
	taker := &absorbOdd{}
	landed := Apply(taker, []DamageInfo{{Amount: 1}, {Amount: 2}, {Amount: 3}})
	assert.Equal(t, 1, landed)
	assert.Len(t, taker.seen, 3)
	assert.Zero(t, Apply(nil, []DamageInfo{{Amount: 1}}))
}

func TestParryTracker(t *testing.T) {
	tr := NewParryTracker(2, 5)
	assert.True(t, tr.CanParry(1))
	tr.Register(1)
	assert.True(t, tr.CanParry(1))
	tr.Register(1)
	assert.False(t, tr.CanParry(1))
	assert.True(t, tr.CanParry(2))

	tr.Advance(4)
	assert.False(t, tr.CanParry(1))
	tr.Advance(5)
	assert.True(t, tr.CanParry(1))

	def := NewParryTracker(0, 0)
	assert.Equal(t, DefaultParriesPerWindow, def.limit)
	assert.Equal(t, uint64(DefaultParryWindowTicks), def.window)
}

func TestSelectionWeight(t *testing.T) {
	human := combatant(t, 1, "human", standing)
	other := combatant(t, 2, "human", standing)
	rabbit := combatant(t, 3, "rabbit", hare)

	fist := raceTool(t, "human", "left_fist")
	assert.InDelta(t, 1.0, SelectionWeight(NewAttack(human, other, fist)), 1e-9)

	limp := &tools.Tool{ID: "limp", Capacities: []string{"Blunt"}}
	assert.Equal(t, usableFloorWeight, SelectionWeight(NewAttack(human, other, limp)))

	fixed := *fist
	fixed.Fallback = tools.FallbackNone
	assert.Zero(t, SelectionWeight(NewAttack(human, rabbit, &fixed)))
}

func TestFinalWeights(t *testing.T) {
	human := combatant(t, 1, "human", standing)
	other := combatant(t, 2, "human", standing)
	mk := func(power float64) Attack {
		return NewAttack(human, other, &tools.Tool{ID: "t", Capacities: []string{"Blunt"}, Power: power, Cooldown: 1})
	}

	w := FinalWeights([]Attack{mk(10), mk(10), mk(5), mk(1)})
	assert.InDelta(t, 0.375, w[0], 1e-9)
	assert.InDelta(t, 0.375, w[1], 1e-9)
	assert.InDelta(t, 0.25, w[2], 1e-9)
	assert.InDelta(t, 0.00001, w[3], 1e-12)

	assert.Equal(t, CategoryBest, CategoryOf(9.6, 10))
	assert.Equal(t, CategoryMid, CategoryOf(2.5, 10))
	assert.Equal(t, CategoryWorst, CategoryOf(2.4, 10))
}

func TestChooseTool(t *testing.T) {
	human := combatant(t, 1, "human", standing)
	rabbit := combatant(t, 3, "rabbit", hare)
	rng := testRNG()

	fist := *raceTool(t, "human", "left_fist")
	fist.Fallback = tools.FallbackNone
	_, ok := ChooseTool(rng, human, rabbit, []*tools.Tool{&fist})
	assert.False(t, ok)

	kick := &tools.Tool{ID: "kick", Capacities: []string{"Blunt"}, Power: 3, Cooldown: 2, Fallback: tools.FallbackNearest}
	picked, ok := ChooseTool(rng, human, rabbit, []*tools.Tool{&fist, kick})
	require.True(t, ok)
	assert.Same(t, kick, picked)
}
