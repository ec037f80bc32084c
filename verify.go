package slump

import (
	"github.com/pkg/errors"
	"github.com/zyedidia/generic/mapset"
)

// CheckOverlap reports the first two sectors whose bounding rectangles
// overlap. Only pads, bars, panels and other sectors built inside a room may
// lie within another sector.
func (l *Level) CheckOverlap() error {
	ids := l.Sectors()
	for i, a := range ids {
		ra := l.scanRec(a)
		for _, b := range ids[i+1:] {
			rb := l.scanRec(b)
			if !ra.Overlaps(rb) {
				continue
			}
			if contains(ra, rb) && l.sectors[b].Kind.inner() || contains(rb, ra) && l.sectors[a].Kind.inner() {
				continue
			}
			return errors.Errorf("sectors %d %v and %d %v overlap", a, ra, b, rb)
		}
	}
	return nil
}

func contains(outer, inner Rect) bool {
	return outer.MinX <= inner.MinX && inner.MaxX <= outer.MaxX &&
		outer.MinY <= inner.MinY && inner.MaxY <= outer.MaxY
}

// playerHeight is the smallest opening a player fits through.
const playerHeight = 56

// reachable returns the sectors the player can get to from the first room.
// A climb of more than maxStep or an opening lower than the player stops
// them, unless a sector on either side moves. Sectors that something opens
// count once the switch or walk-over line that opens them, or the key for
// their door, is reachable. Teleporters lead to the sectors they target.
func (l *Level) reachable() mapset.Set[SectorID] {
	seen := mapset.New[SectorID]()
	if l.FirstRoom == NoSector {
		return seen
	}
	byTag := make(map[int][]SectorID)
	for _, s := range l.Sectors() {
		if t := l.sectors[s].Tag; t != 0 {
			byTag[t] = append(byTag[t], s)
		}
	}
	// Where each tag can be set off from, and the door sectors only a key
	// opens
	triggers := make(map[int][]SectorID)
	keyDoors := make(map[SectorID]LineType)
	adj := make(map[SectorID][]SectorID)
	teleports := make(map[[2]SectorID]bool)
	for _, id := range l.Linedefs() {
		ld := l.linedefs[id]
		r, lt := l.sideSector(ld.Right), l.sideSector(ld.Left)
		if ld.Tag != 0 && ld.Type != LineNone && !ld.Type.isTeleport() {
			for _, s := range []SectorID{r, lt} {
				if s != NoSector {
					triggers[ld.Tag] = append(triggers[ld.Tag], s)
				}
			}
		}
		if ld.Type.isKeyDoor() {
			for _, s := range []SectorID{r, lt} {
				if s != NoSector && l.sectors[s].Kind == KindDoor {
					keyDoors[s] = ld.Type
				}
			}
		}
		if r != NoSector && lt != NoSector && ld.Flags&LineImpassable == 0 {
			adj[r] = append(adj[r], lt)
			adj[lt] = append(adj[lt], r)
		}
		if ld.Type.isTeleport() && r != NoSector {
			adj[r] = append(adj[r], byTag[ld.Tag]...)
			for _, t := range byTag[ld.Tag] {
				teleports[[2]SectorID{r, t}] = true
			}
		}
	}
	keys := make(map[LineType][]SectorID)
	for _, t := range l.Things() {
		th := l.things[t]
		if th.Genus.Is(GenusKey) {
			kt := keyDoorType(th.Genus)
			keys[kt] = append(keys[kt], l.sectorAt(th.X, th.Y))
		}
	}

	moves := func(s SectorID) bool {
		sec := l.sectors[s]
		if sec.Kind == KindDoor || sec.Kind == KindLift {
			return true
		}
		_, ok := triggers[sec.Tag]
		return sec.Tag != 0 && ok
	}
	anySeen := func(ss []SectorID) bool {
		for _, s := range ss {
			if seen.Has(s) {
				return true
			}
		}
		return false
	}
	open := func(s SectorID) bool {
		if t := l.sectors[s].Tag; t != 0 {
			ts, ok := triggers[t]
			// A tagged door nothing triggers stays shut
			if ok && !anySeen(ts) || !ok && l.sectors[s].Kind == KindDoor {
				return false
			}
		}
		if kt, ok := keyDoors[s]; ok && !anySeen(keys[kt]) {
			return false
		}
		return true
	}
	fits := func(from, to SectorID, teleport bool) bool {
		if teleport || moves(from) || moves(to) {
			return true
		}
		a, b := l.sectors[from], l.sectors[to]
		if b.FloorHeight-a.FloorHeight > maxStep {
			return false
		}
		return min(a.CeilingHeight, b.CeilingHeight)-max(a.FloorHeight, b.FloorHeight) >= playerHeight
	}

	order := []SectorID{l.FirstRoom}
	seen.Put(l.FirstRoom)
	// Reaching a trigger can open sectors next to ones already seen, so
	// sweep until nothing new turns up
	for grew := true; grew; {
		grew = false
		for i := 0; i < len(order); i++ {
			s := order[i]
			for _, n := range adj[s] {
				if seen.Has(n) || !fits(s, n, teleports[[2]SectorID{s, n}]) || !open(n) {
					continue
				}
				seen.Put(n)
				order = append(order, n)
				grew = true
			}
		}
	}
	return seen
}

// sectorAt returns the smallest sector whose bounding rectangle holds (x,y),
// or NoSector.
func (l *Level) sectorAt(x, y int) SectorID {
	best, area := NoSector, 0
	for _, s := range l.Sectors() {
		r := l.findRec(s)
		if x < r.MinX || x > r.MaxX || y < r.MinY || y > r.MaxY {
			continue
		}
		if a := r.Width() * r.Height(); best == NoSector || a < area {
			best, area = s, a
		}
	}
	return best
}

// CheckReachable reports an error if the level's exit cannot be reached from
// the first room.
func (l *Level) CheckReachable() error {
	seen := l.reachable()
	exits := 0
	for _, id := range l.Linedefs() {
		ld := l.linedefs[id]
		if !ld.Type.isExit() || ld.Type == LineS1SecretExit || ld.Type == LineW1SecretExit {
			continue
		}
		exits++
		s := l.sideSector(ld.Right)
		if !seen.Has(s) && !seen.Has(l.sideSector(ld.Left)) {
			return errors.Errorf("exit line %d in sector %d is unreachable", id, s)
		}
	}
	if exits == 0 {
		return errors.New("level has no exit")
	}
	if l.GoalRoom != NoSector && !seen.Has(l.GoalRoom) {
		return errors.Errorf("goal room %d is unreachable", l.GoalRoom)
	}
	return nil
}

// CheckBoundingRects reports the first sector whose cached bounding
// rectangle differs from one rebuilt from its linedefs.
func (l *Level) CheckBoundingRects() error {
	for _, s := range l.Sectors() {
		sec := l.sectors[s]
		if !sec.recValid {
			continue
		}
		if fresh := l.scanRec(s); fresh != sec.rec {
			return errors.Errorf("sector %d caches %v, has %v", s, sec.rec, fresh)
		}
	}
	return nil
}

// QuestDepth returns the number of quests still on the stack. It is zero
// after a successful generation.
func (g *Generator) QuestDepth() int {
	return g.quests.depth
}

// Stats summarises a generated level.
type Stats struct {
	Rooms, Sectors, Linedefs, Sidedefs, Vertices int
	Things, Monsters                             int
	Secrets, Bars, Crushers, Keys                int
	Gates, Arenas                                int
	MaxQuestDepth                                int
	Warnings                                     int
	HAA                                          HAA
}

func (l *Level) Stats() Stats {
	st := Stats{
		Rooms:         len(l.Rooms),
		Sectors:       len(l.Sectors()),
		Linedefs:      len(l.Linedefs()),
		Sidedefs:      len(l.Sidedefs()),
		Vertices:      len(l.Vertices()),
		Secrets:       l.secretCount,
		Bars:          l.barCount,
		Crushers:      l.crusherCount,
		Keys:          len(l.keysUsed),
		Gates:         len(l.Gates),
		Arenas:        len(l.Arenas),
		MaxQuestDepth: l.maxQuest,
		HAA:           l.finalHAA,
	}
	for _, t := range l.Things() {
		st.Things++
		if l.things[t].Genus.Is(GenusMonster) {
			st.Monsters++
		}
	}
	for _, n := range l.Warnings {
		st.Warnings += n
	}
	return st
}
