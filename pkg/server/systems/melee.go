package systems

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"vcombat/pkg/anatomy"
	"vcombat/pkg/melee"
	"vcombat/pkg/races"
	"vcombat/pkg/shared/components"
	"vcombat/pkg/shared/ecs"
	"vcombat/pkg/shared/world"
	"vcombat/pkg/vertical"
)

const (
	partHealthScale     = 30  // Part hit points per unit of coverage
	minPartHealth       = 5
	stunSecondsPerPoint = 0.1 // Stun damage to seconds
	downedDamage        = 40  // Total damage that knocks a creature down
)

// MeleeEvent describes one swing for observers of the simulation.
type MeleeEvent struct {
	Tick       uint64
	Attacker   ecs.Entity
	Target     ecs.Entity
	Tool       string
	Outcome    melee.Outcome
	Parts      []string
	Damage     float64
	TargetDown bool
	TargetDead bool
}

// MeleeSystem makes every creature standing next to its target swing at it
// when its cooldown allows, and applies the damage.
type MeleeSystem struct {
	World   *ecs.World
	Map     *world.Map
	OnEvent func(MeleeEvent)

	rng     *rand.Rand
	cache   *vertical.Cache
	tracker *melee.ParryTracker
	log     *zap.Logger
	tick    uint64
	elapsed float64
}

func NewMeleeSystem(w *ecs.World, m *world.Map, rng *rand.Rand, logger *zap.Logger) *MeleeSystem {
	return &MeleeSystem{
		World:   w,
		Map:     m,
		rng:     rng,
		cache:   vertical.NewCache(),
		tracker: melee.NewParryTracker(0, 0),
		log:     logger,
	}
}

func (s *MeleeSystem) Tick() uint64 {
	return s.tick
}

func (s *MeleeSystem) Update(dt float64) {
	s.tick++
	s.elapsed += dt
	s.tracker.Advance(s.tick)
	scene := world.NewScene(s.Map, s.World)

	attackers := ecs.Query[components.MeleeComponent](s.World)
	for _, id := range attackers {
		s.recover(id, dt)
	}
	for _, id := range attackers {
		s.updateAttacker(scene, id, dt)
	}
}

func (s *MeleeSystem) recover(id ecs.Entity, dt float64) {
	h, ok := ecs.GetComponent[components.HealthComponent](s.World, id)
	if !ok || h.Stunned <= 0 {
		return
	}
	h.Stunned = max(0, h.Stunned-dt)
	s.World.AddComponent(id, *h)
}

func (s *MeleeSystem) updateAttacker(scene *world.Scene, id ecs.Entity, dt float64) {
	mc, _ := ecs.GetComponent[components.MeleeComponent](s.World, id)
	if mc == nil || !Alive(s.World, id) {
		return
	}
	mc.Cooldown = max(0, mc.Cooldown-dt)
	defer func() { s.World.AddComponent(id, *mc) }()

	if mc.TargetID == 0 || mc.Cooldown > 0 || !Alive(s.World, mc.TargetID) || !s.canAct(id) {
		return
	}
	tr, _ := ecs.GetComponent[components.TransformComponent](s.World, id)
	ttr, _ := ecs.GetComponent[components.TransformComponent](s.World, mc.TargetID)
	if tr == nil || ttr == nil || !components.InMeleeRange(*tr, *ttr) {
		return
	}

	att, attRace, ok := s.combatant(scene, id)
	if !ok {
		return
	}
	tgt, tgtRace, ok := s.combatant(scene, mc.TargetID)
	if !ok {
		return
	}

	tool, ok := melee.ChooseTool(s.rng, att, tgt, AvailableTools(attRace, att))
	if !ok {
		s.log.Debug("no tool reaches", zap.Uint64("entity", uint64(id)), zap.Uint64("target", uint64(mc.TargetID)))
		return
	}
	var counter *melee.Attack
	if ct, ok := melee.ChooseTool(s.rng, tgt, att, AvailableTools(tgtRace, tgt)); ok && s.canAct(mc.TargetID) {
		c := melee.NewAttack(tgt, att, ct)
		counter = &c
	}

	res := melee.Strike(s.rng, melee.NewAttack(att, tgt, tool), s.tracker, counter)

	ev := MeleeEvent{Tick: s.tick, Attacker: id, Target: mc.TargetID, Tool: tool.ID, Outcome: res.Outcome}
	if res.Outcome.Connected() {
		ev.Parts, ev.Damage = s.apply(mc.TargetID, tgt.Body, res.Damage)
	}
	if len(res.Counter) > 0 {
		s.apply(id, att.Body, res.Counter)
	}
	s.retaliate(mc.TargetID, id)

	mc.Cooldown = tool.Cooldown
	mc.LastToolID = tool.ID
	mc.LastAttackTime = s.elapsed

	if p, ok := ecs.GetComponent[components.PostureComponent](s.World, mc.TargetID); ok {
		ev.TargetDown = p.Downed
	}
	ev.TargetDead = !Alive(s.World, mc.TargetID)

	s.log.Debug("melee",
		zap.Uint64("tick", s.tick),
		zap.Uint64("attacker", uint64(id)),
		zap.Uint64("target", uint64(ev.Target)),
		zap.String("tool", tool.ID),
		zap.Stringer("outcome", res.Outcome),
		zap.Strings("parts", ev.Parts),
		zap.Float64("damage", ev.Damage),
	)
	if s.OnEvent != nil {
		s.OnEvent(ev)
	}
}

// retaliate turns a passive creature on whoever hit it.
func (s *MeleeSystem) retaliate(victim, attacker ecs.Entity) {
	mc, ok := ecs.GetComponent[components.MeleeComponent](s.World, victim)
	if !ok || mc.TargetID != 0 || !Alive(s.World, victim) {
		return
	}
	mc.TargetID = attacker
	s.World.AddComponent(victim, *mc)
}

func (s *MeleeSystem) canAct(id ecs.Entity) bool {
	if p, ok := ecs.GetComponent[components.PostureComponent](s.World, id); ok && p.Downed {
		return false
	}
	h, ok := ecs.GetComponent[components.HealthComponent](s.World, id)
	return !ok || h.Stunned <= 0
}

func (s *MeleeSystem) combatant(scene *world.Scene, id ecs.Entity) (*melee.Combatant, races.RaceDefinition, bool) {
	cc, ok := ecs.GetComponent[components.CreatureComponent](s.World, id)
	if !ok {
		return nil, races.RaceDefinition{}, false
	}
	def, ok := races.Get(cc.RaceID)
	if !ok {
		return nil, races.RaceDefinition{}, false
	}
	thing, ok := world.ThingOf(s.World, id)
	if !ok {
		return nil, def, false
	}
	tr, ok := ecs.GetComponent[components.TransformComponent](s.World, id)
	if !ok {
		return nil, def, false
	}
	profile := s.cache.Profile(scene, thing, tr.Cell(), s.tick)

	var injuries *anatomy.State
	var stunned bool
	if h, ok := ecs.GetComponent[components.HealthComponent](s.World, id); ok {
		injuries = h.Injuries
		stunned = h.Stunned > 0
	}
	var weapon, shield string
	if eq, ok := ecs.GetComponent[components.EquipmentComponent](s.World, id); ok {
		weapon = eq.Slots[components.SlotWeapon].ItemID
		shield = eq.Slots[components.SlotShield].ItemID
	}

	c := NewCombatant(uint64(id), def, profile, injuries, weapon, shield)
	c.Name = cc.Name
	c.Gender = cc.Gender
	c.Stunned = stunned
	if p, ok := ecs.GetComponent[components.PostureComponent](s.World, id); ok {
		c.Downed = p.Downed
	}
	return c, def, true
}

// apply hands infos to id's health and writes the result back. It returns the
// names of the parts struck and the damage that landed.
func (s *MeleeSystem) apply(id ecs.Entity, body *anatomy.Body, infos []melee.DamageInfo) ([]string, float64) {
	h, ok := ecs.GetComponent[components.HealthComponent](s.World, id)
	if !ok || body == nil {
		return nil, 0
	}
	p, _ := ecs.GetComponent[components.PostureComponent](s.World, id)
	if p == nil {
		p = &components.PostureComponent{}
	}

	taker := &HealthTaker{Body: body, Health: h, Posture: p}
	melee.Apply(taker, infos)

	s.World.AddComponent(id, *taker.Health)
	s.World.AddComponent(id, *taker.Posture)
	return taker.Struck, taker.Landed
}

// HealthTaker applies damage infos to a creature's health component.
type HealthTaker struct {
	Body    *anatomy.Body
	Health  *components.HealthComponent
	Posture *components.PostureComponent

	Struck []string
	Landed float64
}

func PartHealth(p anatomy.Part) float64 {
	return max(minPartHealth, p.Coverage*partHealthScale)
}

func (t *HealthTaker) TakeDamage(d melee.DamageInfo) bool {
	if t.Health.Dead {
		return true
	}
	if d.KnockDown {
		t.Posture.Downed = true
	}
	if d.Kind == "Stun" {
		t.Health.Stunned += d.Amount * stunSecondsPerPoint
		return false
	}

	part := d.Part
	if part < 0 {
		part = t.Body.Core
	}
	if part < 0 || part >= len(t.Body.Parts) || t.Health.Injuries.IsMissing(t.Body, part) {
		return true
	}
	if t.Health.Damage == nil {
		t.Health.Damage = make(map[int]float64)
	}
	t.Health.Damage[part] += d.Amount
	t.Landed += d.Amount
	t.Struck = append(t.Struck, t.Body.Parts[part].Name)

	if t.Health.Damage[part] >= PartHealth(t.Body.Parts[part]) {
		t.destroy(part)
	}

	var total float64
	for _, v := range t.Health.Damage {
		total += v
	}
	if total >= downedDamage {
		t.Posture.Downed = true
	}
	return false
}

func (t *HealthTaker) destroy(part int) {
	if t.Health.Injuries == nil {
		t.Health.Injuries = anatomy.NewState()
	}
	t.Health.Injuries.SetMissing(part)
	if t.Body.IsCore(part) {
		t.Health.Dead = true
		return
	}
	for _, idx := range t.Body.Subtree(part) {
		if t.Body.Parts[idx].IsVital() {
			t.Health.Dead = true
			return
		}
	}
	if t.Body.Parts[part].HasTag("MovingLimbCore") {
		t.Posture.Downed = true
	}
}
