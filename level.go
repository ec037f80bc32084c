package slump

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Entity handles. A handle is an index into the owning Level's arena and has
// no meaning outside that Level. Deleted entities stay in the arena as
// tombstones so handles never shift.
type (
	VertexID  int32
	LinedefID int32
	SidedefID int32
	SectorID  int32
	ThingID   int32
)

const (
	NoVertex  VertexID  = -1
	NoLinedef LinedefID = -1
	NoSidedef SidedefID = -1
	NoSector  SectorID  = -1
	NoThing   ThingID   = -1
)

type Vertex struct {
	X, Y   int
	Marked bool
	dead   bool
}

type LineFlags uint16

const (
	LineImpassable LineFlags = 1 << iota
	LineBlockMonsters
	LineTwoSided
	LineUpperUnpegged
	LineLowerUnpegged
	LineSecret
	LineBlockSound
	LineNotOnMap
	LineAlwaysOnMap
)

// Linedef is an oriented wall from one vertex to another. The right sidedef
// faces the sector on the right when looking from From to To. A linedef with
// a left sidedef is an interior (two-sided) line.
type Linedef struct {
	From, To    VertexID
	Right, Left SidedefID
	Flags       LineFlags
	Type        LineType
	Tag         int

	// Texture alignment chain along one run of wall
	GroupNext, GroupPrev LinedefID

	Marked bool
	dead   bool
}

type Sidedef struct {
	Sector               SectorID
	Upper, Lower, Middle *Texture
	XOffset, YOffset     int
	IsBoundary           bool // exterior wall the placement search may extend from
	dead                 bool
}

type SectorType int

const (
	TypeNormal          SectorType = iota
	TypeBlinkRandom                // 1  Light  Blink random
	TypeBlink05                    // 2  Light  Blink 0.5 second
	TypeBlink10                    // 3  Light  Blink 1.0 second
	TypeDamage20Blink05            // 4  Both   20% damage per second; light blink 0.5 second
	TypeDamage10                   // 5	 Damage 10% damage per second
	TypeUnused1                    // 6  Unused
	TypeDamage5                    // 7	 Damage 5% damage per second
	TypeOscillate                  // 8	 Light  Oscillates
	TypeSecret                     // 9	 Secret Player entering this sector gets credit for finding a secret
	TypeDoor30                     // 10 Door   30 seconds after level start, ceiling closes like a door
	TypeEnd                        // 11 End    20% damage ps. Level ends when player health drops below 11% & touching floor
	TypeBlink10Sync                // 12 Light  Blink 1.0 second, synchronized
	TypeBlink05Sync                // 13 Light  Blink 0.5 second, synchronized
	TypeDoor300                    // 14 Door   300 seconds after level start, ceiling opens like a door
	TypeUnused2                    // 15 Unused
	TypeDamage20                   // 16 Damage 20% damage per second
	TypeFlickerRandom              // 17 Light  Flickers randomly
)

// SectorKind records what the generator built a sector for.
type SectorKind int

const (
	KindRoom SectorKind = iota
	KindLink
	KindDoor
	KindStep
	KindLift
	KindCloset
	KindInner // pillar, pad or dais inside a room
	KindWindow
	KindOutdoor
	KindDecroom
	KindArena
	KindWatermark
	KindGate
)

// inner reports whether sectors of kind k are built inside another sector.
func (k SectorKind) inner() bool {
	return k == KindInner || k == KindGate || k == KindWatermark
}

type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// Overlaps reports whether the interiors of r and o intersect. Shared edges do
// not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.MinX < o.MaxX && o.MinX < r.MaxX && r.MinY < o.MaxY && o.MinY < r.MaxY
}

func (r Rect) Width() int  { return r.MaxX - r.MinX }
func (r Rect) Height() int { return r.MaxY - r.MinY }

type Sector struct {
	FloorHeight, CeilingHeight int
	FloorFlat, CeilingFlat     *Flat
	Light                      int
	Special                    SectorType
	Tag                        int
	Style                      *Style
	Kind                       SectorKind
	Room                       SectorID // room this sector belongs to; itself for rooms

	EntryX, EntryY int       // where the player first comes in
	entry          LinedefID // line crossed on the way in, rooms only
	HasKey, HasDM  bool
	HasDMWeapon    bool
	Gate           *Gate
	Arena          *Arena
	Marked         bool
	rec            Rect
	recValid       bool // findrec cache
	dead           bool
}

// ThingOptions are the appearance bits of a thing.
type ThingOptions uint16

const (
	ThingEasy ThingOptions = 1 << iota
	ThingMedium
	ThingHard
	ThingAmbush
	ThingMultiplayer // deathmatch and co-op only
)

type Thing struct {
	X, Y    int
	Angle   int
	Genus   *Genus
	Options ThingOptions
	dead    bool
}

// RoomLink records one connection made by the driver.
type RoomLink struct {
	From, To SectorID
	Link     *Link
	Lock     Goal // goal whose reward opens this link, GoalNull if none
}

// Level is the aggregate that owns every entity of one generated map. It is
// released as a whole when generation finishes or restarts.
type Level struct {
	Name string
	Seed int64

	vertices []*Vertex
	linedefs []*Linedef
	sidedefs []*Sidedef
	sectors  []*Sector
	things   []*Thing

	Rooms     []SectorID
	Links     []RoomLink
	FirstRoom SectorID
	GoalRoom  SectorID
	Watermark SectorID
	Arenas    []*Arena
	Gates     []*Gate

	// Warnings counts structural warnings by message.
	Warnings map[string]int

	params       levelParams
	lastTag      int
	barCount     int
	crusherCount int
	secretCount  int
	keysUsed     []*Genus
	dmStarts     int
	secretExit   secretExit
	seenSuits    bool
	seenMap      bool
	finalHAA     HAA
	maxQuest     int

	populated mapset.Set[SectorID]
	blocked   []Rect   // floor space taken by pillars, pads and other inner sectors
	surprises []*Quest // key quests whose ambush trigger is wired at the end
}

func newLevel(name string, seed int64) *Level {
	return &Level{
		Name:      name,
		Seed:      seed,
		FirstRoom: NoSector,
		GoalRoom:  NoSector,
		Watermark: NoSector,
		Warnings:  make(map[string]int),
		populated: mapset.New[SectorID](),
	}
}

// Vertex returns the vertex for id. It panics on a deleted or foreign handle.
func (l *Level) Vertex(id VertexID) *Vertex {
	v := l.vertices[id]
	if v.dead {
		panic(fmt.Sprintf("slump: dangling vertex %d", id))
	}
	return v
}

func (l *Level) Linedef(id LinedefID) *Linedef {
	ld := l.linedefs[id]
	if ld.dead {
		panic(fmt.Sprintf("slump: dangling linedef %d", id))
	}
	return ld
}

func (l *Level) Sidedef(id SidedefID) *Sidedef {
	sd := l.sidedefs[id]
	if sd.dead {
		panic(fmt.Sprintf("slump: dangling sidedef %d", id))
	}
	return sd
}

func (l *Level) Sector(id SectorID) *Sector {
	s := l.sectors[id]
	if s.dead {
		panic(fmt.Sprintf("slump: dangling sector %d", id))
	}
	return s
}

func (l *Level) Thing(id ThingID) *Thing {
	t := l.things[id]
	if t.dead {
		panic(fmt.Sprintf("slump: dangling thing %d", id))
	}
	return t
}

// Live entity handles, in creation order.

func (l *Level) Vertices() []VertexID {
	ids := make([]VertexID, 0, len(l.vertices))
	for i, v := range l.vertices {
		if !v.dead {
			ids = append(ids, VertexID(i))
		}
	}
	return ids
}

func (l *Level) Linedefs() []LinedefID {
	ids := make([]LinedefID, 0, len(l.linedefs))
	for i, ld := range l.linedefs {
		if !ld.dead {
			ids = append(ids, LinedefID(i))
		}
	}
	return ids
}

func (l *Level) Sidedefs() []SidedefID {
	ids := make([]SidedefID, 0, len(l.sidedefs))
	for i, sd := range l.sidedefs {
		if !sd.dead {
			ids = append(ids, SidedefID(i))
		}
	}
	return ids
}

func (l *Level) Sectors() []SectorID {
	ids := make([]SectorID, 0, len(l.sectors))
	for i, s := range l.sectors {
		if !s.dead {
			ids = append(ids, SectorID(i))
		}
	}
	return ids
}

func (l *Level) Things() []ThingID {
	ids := make([]ThingID, 0, len(l.things))
	for i, t := range l.things {
		if !t.dead {
			ids = append(ids, ThingID(i))
		}
	}
	return ids
}

func (l *Level) newVertex(x, y int) VertexID {
	l.vertices = append(l.vertices, &Vertex{X: x, Y: y})
	return VertexID(len(l.vertices) - 1)
}

func (l *Level) newSidedef(sector SectorID, boundary bool) SidedefID {
	l.sidedefs = append(l.sidedefs, &Sidedef{Sector: sector, IsBoundary: boundary})
	if sector != NoSector {
		l.sectors[sector].recValid = false
	}
	return SidedefID(len(l.sidedefs) - 1)
}

// newLinedef makes a linedef from a to b with an optional right sidedef facing
// sector right.
func (l *Level) newLinedef(a, b VertexID, right SectorID) LinedefID {
	ld := &Linedef{From: a, To: b, Right: NoSidedef, Left: NoSidedef, GroupNext: NoLinedef, GroupPrev: NoLinedef}
	if right != NoSector {
		ld.Right = l.newSidedef(right, true)
	}
	l.linedefs = append(l.linedefs, ld)
	return LinedefID(len(l.linedefs) - 1)
}

func (l *Level) newSector(s *Sector) SectorID {
	s.recValid = false
	l.sectors = append(l.sectors, s)
	return SectorID(len(l.sectors) - 1)
}

func (l *Level) newThing(x, y, angle int, gen *Genus, opts ThingOptions) ThingID {
	l.things = append(l.things, &Thing{X: x, Y: y, Angle: angle, Genus: gen, Options: opts})
	return ThingID(len(l.things) - 1)
}

// deleteLinedef removes a linedef, its sidedefs and any endpoint no other live
// linedef uses. Placement attempts call it when they unwind.
func (l *Level) deleteLinedef(id LinedefID) {
	ld := l.Linedef(id)
	for _, sd := range []SidedefID{ld.Right, ld.Left} {
		if sd != NoSidedef {
			l.invalidateSector(l.sidedefs[sd].Sector)
			l.sidedefs[sd].dead = true
		}
	}
	if ld.GroupPrev != NoLinedef {
		l.linedefs[ld.GroupPrev].GroupNext = ld.GroupNext
	}
	if ld.GroupNext != NoLinedef {
		l.linedefs[ld.GroupNext].GroupPrev = ld.GroupPrev
	}
	ld.dead = true
	for _, v := range []VertexID{ld.From, ld.To} {
		if !l.vertexInUse(v) {
			l.vertices[v].dead = true
		}
	}
}

func (l *Level) vertexInUse(v VertexID) bool {
	for _, ld := range l.linedefs {
		if !ld.dead && (ld.From == v || ld.To == v) {
			return true
		}
	}
	return false
}

func (l *Level) invalidateSector(s SectorID) {
	if s != NoSector {
		l.sectors[s].recValid = false
	}
}

// sideSector returns the sector faced by sidedef sd, or NoSector.
func (l *Level) sideSector(sd SidedefID) SectorID {
	if sd == NoSidedef {
		return NoSector
	}
	return l.Sidedef(sd).Sector
}

func (l *Level) rightSector(ld LinedefID) SectorID { return l.sideSector(l.Linedef(ld).Right) }

// newTag returns an unused sector/linedef tag.
func (l *Level) newTag() int {
	l.lastTag++
	return l.lastTag
}

func (l *Level) warn(kind string) {
	l.Warnings[kind]++
}
