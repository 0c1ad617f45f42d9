package network

import (
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"vcombat/pkg/vertical"
)

type PacketType int

const (
	PacketHello    PacketType = 1 // Server -> Client, first frame of a session
	PacketError    PacketType = 2
	PacketProfile  PacketType = 3
	PacketEnvelope PacketType = 4
	PacketStruck   PacketType = 5
	PacketValidate PacketType = 6
	PacketStrike   PacketType = 7
)

func (t PacketType) String() string {
	switch t {
	case PacketHello:
		return "hello"
	case PacketError:
		return "error"
	case PacketProfile:
		return "profile"
	case PacketEnvelope:
		return "envelope"
	case PacketStruck:
		return "struck"
	case PacketValidate:
		return "validate"
	case PacketStrike:
		return "strike"
	}
	return "packet(?)"
}

var ErrUnknownOp = errors.New("unknown op")

// Packet is one binary websocket frame. Every request gets exactly one
// response carrying the same RequestID, of the same Type or PacketError.
type Packet struct {
	Type      PacketType         `msgpack:"t"`
	RequestID string             `msgpack:"id,omitempty"`
	Data      msgpack.RawMessage `msgpack:"d,omitempty"`
}

// NewPacket encodes payload into a packet.
func NewPacket(t PacketType, requestID string, payload any) (Packet, error) {
	p := Packet{Type: t, RequestID: requestID}
	if payload == nil {
		return p, nil
	}
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return p, errors.Wrapf(err, "encode %s payload", t)
	}
	p.Data = data
	return p, nil
}

// Decode unpacks the packet's payload into v.
func (p Packet) Decode(v any) error {
	if len(p.Data) == 0 {
		return errors.Errorf("%s packet has no payload", p.Type)
	}
	return errors.Wrapf(msgpack.Unmarshal(p.Data, v), "decode %s payload", p.Type)
}

// Marshal encodes a whole frame.
func Marshal(p Packet) ([]byte, error) {
	data, err := msgpack.Marshal(&p)
	return data, errors.Wrap(err, "encode packet")
}

// Unmarshal decodes a whole frame.
func Unmarshal(data []byte) (Packet, error) {
	var p Packet
	err := msgpack.Unmarshal(data, &p)
	return p, errors.Wrap(err, "decode packet")
}

// HelloPacket (Server -> Client)
type HelloPacket struct {
	Session string   `msgpack:"session"`
	Races   []string `msgpack:"races"`
	Items   []string `msgpack:"items"`
}

// ErrorPacket (Server -> Client)
type ErrorPacket struct {
	Message string `msgpack:"message"`
}

// ThingSnapshot is the host's view of one thing, as vertical.Thing.
type ThingSnapshot struct {
	ID          uint64  `msgpack:"id"`
	Category    string  `msgpack:"category"`
	Fillage     string  `msgpack:"fillage,omitempty"`
	FillPercent float64 `msgpack:"fill_percent,omitempty"`
	PlantHeight float64 `msgpack:"plant_height,omitempty"`
	Door        bool    `msgpack:"door,omitempty"`
	DoorOpen    bool    `msgpack:"door_open,omitempty"`
	BodyHeight  float64 `msgpack:"body_height,omitempty"`
	Crouching   bool    `msgpack:"crouching,omitempty"`
}

// Thing converts the snapshot, rejecting unknown enum names.
func (s ThingSnapshot) Thing() (vertical.Thing, error) {
	category, err := vertical.ParseCategory(s.Category)
	if err != nil {
		return vertical.Thing{}, err
	}
	fillage, err := vertical.ParseFillage(s.Fillage)
	if err != nil {
		return vertical.Thing{}, err
	}
	return vertical.Thing{
		ID:          s.ID,
		Category:    category,
		Fillage:     fillage,
		FillPercent: s.FillPercent,
		PlantHeight: s.PlantHeight,
		Door:        s.Door,
		DoorOpen:    s.DoorOpen,
		BodyHeight:  s.BodyHeight,
		Crouching:   s.Crouching,
	}, nil
}

// CoverCell places an edifice in the host's scene.
type CoverCell struct {
	X     int           `msgpack:"x"`
	Z     int           `msgpack:"z"`
	Thing ThingSnapshot `msgpack:"thing"`
}

// SceneSnapshot is the part of the host's map a profile query needs: its
// bounds and the edifices around the queried cell.
type SceneSnapshot struct {
	Width  int         `msgpack:"width"`
	Height int         `msgpack:"height"`
	Cover  []CoverCell `msgpack:"cover,omitempty"`
}

// ProfileRequest (Client -> Server). With Entity set the thing is looked up
// in the server's own scene; otherwise Thing is placed at X,Z in Scene. A nil
// Scene means the thing is not spawned.
type ProfileRequest struct {
	Entity uint64         `msgpack:"entity,omitempty"`
	Thing  ThingSnapshot  `msgpack:"thing"`
	X      int            `msgpack:"x"`
	Z      int            `msgpack:"z"`
	Scene  *SceneSnapshot `msgpack:"scene,omitempty"`
}

// ProfileResponse (Server -> Client)
type ProfileResponse struct {
	Min        float64 `msgpack:"min"`
	Max        float64 `msgpack:"max"`
	ShotHeight float64 `msgpack:"shot_height"`
}

// CombatantSnapshot describes one side of a melee exchange.
type CombatantSnapshot struct {
	ID      uint64  `msgpack:"id"`
	Race    string  `msgpack:"race,omitempty"` // Empty for things without anatomy
	Min     float64 `msgpack:"min"`
	Max     float64 `msgpack:"max"`
	Missing []int   `msgpack:"missing,omitempty"` // Lost part indices
	Gender  string  `msgpack:"gender,omitempty"`  // Male, Female or empty
	Downed  bool    `msgpack:"downed,omitempty"`
	Stunned bool    `msgpack:"stunned,omitempty"`
	Weapon  string  `msgpack:"weapon,omitempty"`
	Shield  string  `msgpack:"shield,omitempty"`
}

// ToolRef names a tool by its owning definition, a race or an item.
type ToolRef struct {
	Owner string `msgpack:"owner"`
	Tool  string `msgpack:"tool"`
}

// AttackRequest (Client -> Server) for envelope, struck and strike queries.
type AttackRequest struct {
	Attacker *CombatantSnapshot `msgpack:"attacker,omitempty"`
	Target   CombatantSnapshot  `msgpack:"target"`
	Tool     ToolRef            `msgpack:"tool"`
	Surprise bool               `msgpack:"surprise,omitempty"`
	Seed     uint64             `msgpack:"seed,omitempty"`
}

// EnvelopeResponse (Server -> Client)
type EnvelopeResponse struct {
	OK           bool    `msgpack:"ok"`
	Min          float64 `msgpack:"min"`
	Max          float64 `msgpack:"max"`
	UsedFallback bool    `msgpack:"used_fallback,omitempty"`
}

// StruckResponse (Server -> Client). Part is -1 when the blow may land
// anywhere.
type StruckResponse struct {
	Part     int    `msgpack:"part"`
	PartName string `msgpack:"part_name,omitempty"`
	Region   string `msgpack:"region"`
}

// DamageSnapshot is one damage packet of a strike.
type DamageSnapshot struct {
	Kind             string  `msgpack:"kind"`
	Amount           float64 `msgpack:"amount"`
	ArmorPenetration float64 `msgpack:"ap,omitempty"`
	Part             int     `msgpack:"part"`
	Region           string  `msgpack:"region"`
	Tool             string  `msgpack:"tool,omitempty"`
	Parried          bool    `msgpack:"parried,omitempty"`
}

// StrikeResponse (Server -> Client)
type StrikeResponse struct {
	Outcome string           `msgpack:"outcome"`
	Damage  []DamageSnapshot `msgpack:"damage,omitempty"`
	Counter []DamageSnapshot `msgpack:"counter,omitempty"`
}

// ValidateRequest (Client -> Server)
type ValidateRequest struct {
	Race string `msgpack:"race"`
}

// ToolChange is one fallback policy the validator assigned.
type ToolChange struct {
	Tool         string `msgpack:"tool"`
	From         string `msgpack:"from"`
	To           string `msgpack:"to"`
	EnsureUsable bool   `msgpack:"ensure_usable,omitempty"`
}

// ValidateResponse (Server -> Client)
type ValidateResponse struct {
	Before      string       `msgpack:"before"`
	After       string       `msgpack:"after"`
	HasUpper    bool         `msgpack:"has_upper"`
	HasLower    bool         `msgpack:"has_lower"`
	Changes     []ToolChange `msgpack:"changes,omitempty"`
	Diagnostics []string     `msgpack:"diagnostics,omitempty"`
}

type snapshotScene struct {
	width, height int
	cover         map[vertical.Cell]vertical.Thing
}

func (s *snapshotScene) InBounds(c vertical.Cell) bool {
	return c.X >= 0 && c.Z >= 0 && c.X < s.width && c.Z < s.height
}

func (s *snapshotScene) CoverAt(c vertical.Cell) (vertical.Thing, bool) {
	t, ok := s.cover[c]
	return t, ok
}

// Scene turns the snapshot into a vertical.Scene. A nil snapshot gives a nil
// Scene.
func (s *SceneSnapshot) Scene() (vertical.Scene, error) {
	if s == nil {
		return nil, nil
	}
	scene := &snapshotScene{width: s.Width, height: s.Height, cover: make(map[vertical.Cell]vertical.Thing, len(s.Cover))}
	for _, c := range s.Cover {
		t, err := c.Thing.Thing()
		if err != nil {
			return nil, errors.Wrapf(err, "cover at %d,%d", c.X, c.Z)
		}
		scene.cover[vertical.Cell{X: c.X, Z: c.Z}] = t
	}
	return scene, nil
}
