package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"vcombat/pkg/anatomy"
	"vcombat/pkg/items"
	"vcombat/pkg/melee"
	"vcombat/pkg/network"
	"vcombat/pkg/races"
	"vcombat/pkg/selection"
	"vcombat/pkg/server/systems"
	"vcombat/pkg/shared/config"
	"vcombat/pkg/shared/ecs"
	protocol "vcombat/pkg/shared/network"
	"vcombat/pkg/shared/world"
	"vcombat/pkg/tools"
	"vcombat/pkg/validate"
	"vcombat/pkg/vertical"
)

var (
	ErrUnknownEntity = errors.New("unknown entity")
	ErrUnknownTool   = errors.New("unknown tool")
	ErrToolUnusable  = errors.New("attacker cannot use tool")
	ErrNoScene       = errors.New("bridge hosts no scene")
)

// Session is one connected host.
type Session struct {
	ID       string
	Conn     *network.Conn
	Requests int
}

// BridgeServer answers vertical and melee queries for out-of-process hosts
// over websocket, and optionally runs a scene of its own that profile queries
// can refer to by entity.
type BridgeServer struct {
	World          *ecs.World
	Map            *world.Map
	Sessions       map[string]*Session
	Mutex          sync.RWMutex
	AISystem       *systems.AISystem
	MovementSystem *systems.MovementSystem
	MeleeSystem    *systems.MeleeSystem

	log *zap.Logger
}

// NewBridgeServer builds a server. scene may be nil, in which case only
// snapshot queries are served.
func NewBridgeServer(logger *zap.Logger, scene *world.SceneDefinition, seed uint64) (*BridgeServer, error) {
	s := &BridgeServer{
		World:    ecs.NewWorld(),
		Sessions: make(map[string]*Session),
		log:      logger,
	}
	if scene == nil {
		return s, nil
	}

	m, err := scene.Build(s.World)
	if err != nil {
		return nil, err
	}
	for _, sp := range m.Spawners {
		if _, err := world.SpawnCreature(s.World, m, world.CreatureDef{X: sp.X, Z: sp.Z, RaceID: sp.RaceID, Faction: 1, Aggressive: true}); err != nil {
			return nil, err
		}
	}
	s.Map = m
	s.AISystem = systems.NewAISystem(s.World, logger)
	s.MovementSystem = systems.NewMovementSystem(s.World, m)
	s.MeleeSystem = systems.NewMeleeSystem(s.World, m, selection.NewRand(seed), logger)
	s.World.AddSystem(s.AISystem)
	s.World.AddSystem(s.MovementSystem)
	s.World.AddSystem(s.MeleeSystem)
	return s, nil
}

// Run serves the bridge on addr/path and ticks the hosted scene until ctx is
// cancelled.
func (s *BridgeServer) Run(ctx context.Context, addr, path string) error {
	if s.Map != nil {
		go s.GameLoop(ctx)
	}
	s.log.Info("bridge listening", zap.String("addr", addr), zap.String("path", path))
	return network.ListenAndServe(ctx, addr, path, s.HandleConnection)
}

func (s *BridgeServer) GameLoop(ctx context.Context) {
	tick := config.TickSeconds
	ticker := time.NewTicker(time.Duration(tick * float64(time.Second)))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Update(config.TickSeconds)
		}
	}
}

func (s *BridgeServer) Update(dt float64) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	s.World.Update(dt)
}

// HandleConnection greets a host and answers its requests until it leaves.
func (s *BridgeServer) HandleConnection(ctx context.Context, conn *network.Conn) {
	sess := &Session{ID: uuid.NewString(), Conn: conn}
	log := s.log.With(zap.String("session", sess.ID))

	s.Mutex.Lock()
	s.Sessions[sess.ID] = sess
	s.Mutex.Unlock()
	defer func() {
		s.Mutex.Lock()
		delete(s.Sessions, sess.ID)
		s.Mutex.Unlock()
		log.Info("host disconnected", zap.Int("requests", sess.Requests))
	}()

	hello, err := protocol.NewPacket(protocol.PacketHello, "", protocol.HelloPacket{
		Session: sess.ID,
		Races:   raceIDs(),
		Items:   itemIDs(),
	})
	if err == nil {
		err = conn.WritePacket(ctx, hello)
	}
	if err != nil {
		log.Warn("hello failed", zap.Error(err))
		return
	}
	log.Info("host connected")

	for {
		req, err := conn.ReadPacket(ctx)
		if err != nil {
			log.Debug("read failed", zap.Error(err))
			return
		}
		sess.Requests++

		resp := s.Dispatch(req)
		if err := conn.WritePacket(ctx, resp); err != nil {
			log.Warn("write failed", zap.Error(err))
			return
		}
	}
}

// Dispatch answers one request packet. Failures become error packets.
func (s *BridgeServer) Dispatch(req protocol.Packet) protocol.Packet {
	payload, err := s.handle(req)
	var resp protocol.Packet
	if err == nil {
		resp, err = protocol.NewPacket(req.Type, req.RequestID, payload)
	}
	if err != nil {
		s.log.Debug("request failed", zap.Stringer("op", req.Type), zap.Error(err))
		resp, _ = protocol.NewPacket(protocol.PacketError, req.RequestID, protocol.ErrorPacket{Message: err.Error()})
	}
	return resp
}

func (s *BridgeServer) handle(req protocol.Packet) (any, error) {
	switch req.Type {
	case protocol.PacketProfile:
		var r protocol.ProfileRequest
		if err := req.Decode(&r); err != nil {
			return nil, err
		}
		return s.handleProfile(r)
	case protocol.PacketEnvelope, protocol.PacketStruck, protocol.PacketStrike:
		var r protocol.AttackRequest
		if err := req.Decode(&r); err != nil {
			return nil, err
		}
		// Tools cache their reach on first use
		s.Mutex.Lock()
		defer s.Mutex.Unlock()
		return handleAttack(req.Type, r)
	case protocol.PacketValidate:
		var r protocol.ValidateRequest
		if err := req.Decode(&r); err != nil {
			return nil, err
		}
		// The validator assigns fallbacks in place
		s.Mutex.Lock()
		defer s.Mutex.Unlock()
		return handleValidate(r)
	}
	return nil, errors.Wrapf(protocol.ErrUnknownOp, "%d", int(req.Type))
}

func (s *BridgeServer) handleProfile(r protocol.ProfileRequest) (protocol.ProfileResponse, error) {
	if r.Entity != 0 {
		s.Mutex.RLock()
		defer s.Mutex.RUnlock()
		if s.Map == nil {
			return protocol.ProfileResponse{}, ErrNoScene
		}
		p, ok := world.NewScene(s.Map, s.World).Profile(ecs.Entity(r.Entity))
		if !ok {
			return protocol.ProfileResponse{}, errors.Wrapf(ErrUnknownEntity, "%d", r.Entity)
		}
		return profileResponse(p), nil
	}

	thing, err := r.Thing.Thing()
	if err != nil {
		return protocol.ProfileResponse{}, err
	}
	scene, err := r.Scene.Scene()
	if err != nil {
		return protocol.ProfileResponse{}, err
	}
	return profileResponse(vertical.Compute(scene, thing, vertical.Cell{X: r.X, Z: r.Z})), nil
}

func profileResponse(p vertical.Profile) protocol.ProfileResponse {
	return protocol.ProfileResponse{Min: p.Min, Max: p.Max, ShotHeight: p.ShotHeight}
}

func handleAttack(op protocol.PacketType, r protocol.AttackRequest) (any, error) {
	a, err := buildAttack(r)
	if err != nil {
		return nil, err
	}
	rng := selection.NewRand(r.Seed)

	switch op {
	case protocol.PacketEnvelope:
		env, ok := melee.ComputeAttackEnvelope(a)
		if !ok {
			return protocol.EnvelopeResponse{}, nil
		}
		return protocol.EnvelopeResponse{OK: true, Min: env.Band.Min, Max: env.Band.Max, UsedFallback: env.UsedFallback}, nil
	case protocol.PacketStruck:
		part, region := melee.StruckRegion(rng, a)
		resp := protocol.StruckResponse{Part: part, Region: region.String()}
		if part >= 0 {
			resp.PartName = a.Target.Body.Parts[part].Name
		}
		return resp, nil
	default:
		res := melee.Strike(rng, a, nil, nil)
		return protocol.StrikeResponse{
			Outcome: res.Outcome.String(),
			Damage:  damageSnapshots(a.Target, res.Damage),
			Counter: damageSnapshots(a.Attacker, res.Counter),
		}, nil
	}
}

func damageSnapshots(c *melee.Combatant, infos []melee.DamageInfo) []protocol.DamageSnapshot {
	out := make([]protocol.DamageSnapshot, 0, len(infos))
	for _, d := range infos {
		snap := protocol.DamageSnapshot{
			Kind:             d.Kind,
			Amount:           d.Amount,
			ArmorPenetration: d.ArmorPenetration,
			Part:             d.Part,
			Region:           d.Region.String(),
			Parried:          d.Parried,
		}
		if d.Tool != nil {
			snap.Tool = d.Tool.ID
		}
		if d.Part >= 0 && c.Creature() && d.Part < len(c.Body.Parts) {
			snap.Region = c.Body.Parts[d.Part].Region.String()
		}
		out = append(out, snap)
	}
	return out
}

func buildAttack(r protocol.AttackRequest) (melee.Attack, error) {
	tool, ok := systems.FindTool(r.Tool.Owner, r.Tool.Tool)
	if !ok {
		return melee.Attack{}, errors.Wrapf(ErrUnknownTool, "%s/%s", r.Tool.Owner, r.Tool.Tool)
	}
	target, err := combatant(r.Target)
	if err != nil {
		return melee.Attack{}, errors.Wrap(err, "target")
	}
	var attacker *melee.Combatant
	if r.Attacker != nil {
		if attacker, err = combatant(*r.Attacker); err != nil {
			return melee.Attack{}, errors.Wrap(err, "attacker")
		}
	}
	if attacker.Creature() && !melee.Usable(attacker, tool) {
		return melee.Attack{}, errors.Wrapf(ErrToolUnusable, "%s/%s", r.Tool.Owner, r.Tool.Tool)
	}
	a := melee.NewAttack(attacker, target, tool)
	a.Surprise = r.Surprise
	return a, nil
}

func combatant(c protocol.CombatantSnapshot) (*melee.Combatant, error) {
	profile := vertical.Profile{Interval: vertical.NewInterval(c.Min, c.Max)}
	if c.Race == "" {
		return &melee.Combatant{ID: c.ID, Profile: profile}, nil
	}
	def, ok := races.Get(c.Race)
	if !ok {
		return nil, errors.Wrapf(world.ErrUnknownRace, "%q", c.Race)
	}
	injuries := anatomy.NewState()
	for _, idx := range c.Missing {
		injuries.SetMissing(idx)
	}
	gender, err := tools.ParseGender(c.Gender)
	if err != nil {
		return nil, err
	}
	out := systems.NewCombatant(c.ID, def, profile, injuries, c.Weapon, c.Shield)
	out.Gender = gender
	out.Downed = c.Downed
	out.Stunned = c.Stunned
	return out, nil
}

func handleValidate(r protocol.ValidateRequest) (protocol.ValidateResponse, error) {
	def, ok := races.Get(r.Race)
	if !ok {
		return protocol.ValidateResponse{}, errors.Wrapf(world.ErrUnknownRace, "%q", r.Race)
	}
	return ValidateResponse(validate.Toolset(def.ID, def.Body, def.Tools)), nil
}

// ValidateResponse converts a validator report for the wire.
func ValidateResponse(rep validate.Report) protocol.ValidateResponse {
	resp := protocol.ValidateResponse{
		Before:      rep.Before.String(),
		After:       rep.After.String(),
		HasUpper:    rep.HasUpper,
		HasLower:    rep.HasLower,
		Diagnostics: rep.Strings(),
	}
	for _, c := range rep.Changes {
		resp.Changes = append(resp.Changes, protocol.ToolChange{
			Tool:         c.Tool.ID,
			From:         c.From.String(),
			To:           c.To.String(),
			EnsureUsable: c.EnsureUsable,
		})
	}
	return resp
}

func raceIDs() []string {
	var ids []string
	for _, r := range races.All() {
		ids = append(ids, r.ID)
	}
	return ids
}

func itemIDs() []string {
	var ids []string
	for _, it := range items.All() {
		ids = append(ids, it.ID)
	}
	return ids
}
