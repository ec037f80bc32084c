package slump

import "github.com/sirupsen/logrus"

// Gate is a pair of teleporter pads. Stepping onto either pad sends the
// player to the other: lines of From's pad carry InTag, which tags To's pad,
// and the other way round with OutTag.
type Gate struct {
	InTag, OutTag int
	From, To      SectorID
}

type secretExit struct {
	want, placed bool
}

// mustGenus returns the genus for id, which the hardwired table always
// provides.
func (g *Generator) mustGenus(id int) *Genus {
	gen, ok := g.cat.LookupGenus(id)
	if !ok {
		internalf("catalog has no thing %d; is hardwired1 missing?", id)
	}
	return gen
}

// closeQuest installs q's reward in the last room of its branch.
func (g *Generator) closeQuest(q *Quest) {
	l := g.l
	room := q.Current
	switch q.Goal {
	case GoalLevelEnd:
		l.GoalRoom = g.placeExit(room)
	case GoalArena:
		if arena := g.buildArena(q); arena != NoSector {
			l.GoalRoom = arena
			break
		}
		g.warn(warnNoArena, "room", room)
		l.GoalRoom = g.placeExit(room)
	case GoalKey:
		g.placeKey(q)
	case GoalSwitch:
		g.placeSwitch(room, q.Type, q.Tag)
	case GoalGate:
		pad := g.gatePad(room, q.Tag, q.Tag2)
		l.Gates = append(l.Gates, &Gate{InTag: q.Tag, OutTag: q.Tag2, From: pad, To: NoSector})
		if pad != NoSector {
			l.Sector(pad).Gate = l.Gates[len(l.Gates)-1]
		}
	case GoalNull:
		g.placeBonus(room)
	}
	g.log.WithFields(logrus.Fields{"goal": q.Goal.String(), "room": room, "rooms": q.Count}).Debug("Closed quest")
}

// placeExit ends the level in room: usually a switch in a closet, sometimes
// a hole in the floor or a pad dressed as a teleporter. It returns the room
// that holds the exit, which is a new one when room has no space left.
func (g *Generator) placeExit(room SectorID) SectorID {
	st := g.l.Sector(room).Style
	switch {
	case g.gatesEnabled() && g.rollpercent(g.cfg.PGateEndsLevel) && g.exitPad(room, padGate):
	case g.rollpercent(g.cfg.PHoleEndsLevel) && g.exitPad(room, padHole):
	case g.switchCloset(room, LineS1Exit, 0, st.ExitSwitch):
	default:
		g.warn(warnNoSwitchWall, "room", room)
		if !g.exitPad(room, padRaised) {
			return g.lastSwitch(room, LineS1Exit, 0, st.ExitSwitch)
		}
	}
	return room
}

type padKind int

const (
	padRaised padKind = iota
	padHole
	padGate
)

// exitPad builds a pad whose edges end the level: raised, sunk into the
// floor, or looking like a teleporter.
func (g *Generator) exitPad(room SectorID, kind padKind) bool {
	l := g.l
	size := 64
	if kind == padHole {
		size = g.pick32(64, 128)
	}
	r, ok := g.placeInner(room, size, size, 48)
	if !ok {
		return false
	}
	s := g.newSectorFrom(room, KindInner)
	sec := l.Sector(s)
	st := sec.Style
	lower := st.Support0
	switch kind {
	case padHole:
		sec.FloorHeight -= 128
		sec.FloorFlat = st.Nukage
		sec.Light = max(0, sec.Light-32)
	case padGate:
		sec.FloorHeight += 8
		sec.FloorFlat = st.GateFlat
		sec.Light = min(255, sec.Light+48)
		sec.Special = TypeBlink05
		lower = st.GateTex
	default:
		sec.FloorHeight += 8
		sec.FloorFlat = st.GateFlat
		sec.Light = min(255, sec.Light+32)
	}
	for _, ld := range g.innerBox(room, r, s) {
		line := l.Linedef(ld)
		line.Type = LineW1Exit
		l.Sidedef(line.Left).Lower = lower
	}
	l.blocked = append(l.blocked, r)
	if kind == padRaised {
		g.warn(warnNoExit, "room", room)
	}
	return true
}

// switchOnWall turns the middle of some wall of room at least minLen long
// into a switch.
func (g *Generator) switchOnWall(room SectorID, kind LineType, tag int, tex *Texture, minLen int) bool {
	l := g.l
	walls := g.boundaryWalls(room, minLen)
	if len(walls) == 0 {
		return false
	}
	ld := l.centerOf(walls[0], min(64, l.linelen(walls[0])))
	g.makeSwitch(ld, kind, tag, tex)
	return true
}

func (g *Generator) makeSwitch(ld LinedefID, kind LineType, tag int, tex *Texture) {
	l := g.l
	line := l.Linedef(ld)
	line.Type, line.Tag = kind, tag
	l.Sidedef(line.Right).Middle = tex
	l.Sidedef(line.Right).IsBoundary = false
}

// lastSwitch finds a place for a switch when neither a closet nor a long
// wall would take it: a short piece of wall, then any solid wall of room that
// has no job yet, then a small room built for the purpose off the newest room
// with space for one. It returns the room the switch went into.
func (g *Generator) lastSwitch(room SectorID, kind LineType, tag int, tex *Texture) SectorID {
	l := g.l
	if g.switchOnWall(room, kind, tag, tex, 64) || g.switchOnWall(room, kind, tag, tex, 16) {
		return room
	}
	for _, ld := range l.boundaryOf(room) {
		line := l.Linedef(ld)
		if line.Left == NoSidedef && line.Type == LineNone && l.sideSector(line.Right) == room {
			g.makeSwitch(ld, kind, tag, tex)
			return room
		}
	}
	for i := len(l.Rooms) - 1; i >= 0; i-- {
		spare := g.linkRoom(l.Rooms[i], nil, minRoom)
		if spare == NoSector {
			continue
		}
		if !g.switchCloset(spare, kind, tag, tex) && !g.switchOnWall(spare, kind, tag, tex, 16) {
			internalf("new room %d has no wall for a switch", spare)
		}
		g.log.WithFields(logrus.Fields{"room": room, "spare": spare}).Debug("Built a room for a switch")
		g.finishRoom(spare)
		return spare
	}
	internalf("no place for a switch of type %d in room %d", kind, room)
	return NoSector
}

// placeSwitch puts the switch that opens a switch quest's lock in room.
func (g *Generator) placeSwitch(room SectorID, kind LineType, tag int) {
	st := g.l.Sector(room).Style
	if g.switchCloset(room, kind, tag, st.Switch0) {
		return
	}
	g.warn(warnNoSwitchWall, "room", room)
	g.lastSwitch(room, kind, tag, st.Switch0)
}

// placeKey puts q's key on a pedestal in its last room, or at the bottom of
// a pit that rises once the player steps in. Taking it from a pedestal may
// open closets full of monsters; closeQuestFinal wires that trigger.
func (g *Generator) placeKey(q *Quest) {
	l := g.l
	room := q.Current
	st := l.Sector(room).Style
	l.Sector(room).HasKey = true
	r, ok := g.placeInner(room, 64, 64, 48)
	if !ok {
		if g.placeObject(room, q.Thing, allTiers, 0) == NoThing {
			x, y := l.centre(room)
			l.newThing(x, y, 0, q.Thing, allTiers)
		}
		return
	}
	s := g.newSectorFrom(room, KindInner)
	pit := !g.cfg.BoringRooms && g.rollpercent(g.cfg.PRisingRoom)
	lines := g.innerBox(room, r, s)
	if pit {
		g.keyPit(s, lines)
	} else {
		sec := l.Sector(s)
		sec.FloorHeight += 8 + 8*g.roll(3)
		sec.FloorFlat = st.GateFlat
		sec.Light = min(255, sec.Light+32)
		for _, ld := range lines {
			l.Sidedef(l.Linedef(ld).Left).Lower = st.Support0
		}
	}
	l.blocked = append(l.blocked, r)
	l.newThing((r.MinX+r.MaxX)/2, (r.MinY+r.MaxY)/2, 0, q.Thing, allTiers)

	if pit || g.cfg.BoringRooms || !g.rollpercent(40) {
		return
	}
	tag := l.newTag()
	n := 0
	for i := 0; i < 2; i++ {
		c, ok := g.ambushCloset(room, tag)
		if !ok {
			break
		}
		n += g.fillAmbush(c, room)
	}
	if n > 0 {
		q.AuxTag, q.Surprise = tag, lines[0]
		l.surprises = append(l.surprises, q)
	}
}

// keyPit sinks pad s, bounded by lines, too deep to climb out of. Crossing
// any edge raises the floor back to the room's.
func (g *Generator) keyPit(s SectorID, lines []LinedefID) {
	l := g.l
	sec := l.Sector(s)
	st := sec.Style
	sec.FloorHeight -= 64 + 32*g.roll(2)
	sec.Light = max(0, sec.Light-16)
	sec.Tag = l.newTag()
	for _, ld := range lines {
		line := l.Linedef(ld)
		line.Type, line.Tag = LineW1FloorNextUp, sec.Tag
		l.Sidedef(line.Right).Lower = st.Support0
	}
}

// placeBonus rewards the end of a dead-end branch.
func (g *Generator) placeBonus(room SectorID) {
	item, mask := g.timelyWeapon()
	if item == nil || g.rollpercent(50) {
		ids := []int{IDSoulsphere, IDBlueArmor, IDBackpack, IDBerserk, IDMegasphere, IDGreenArmor}
		item, mask = g.lookup(ids[g.roll(len(ids))]), allTiers
	}
	if item == nil {
		return
	}
	if g.placeObject(room, item, mask, 0) != NoThing {
		g.updateHAAForPickup(item, mask)
	}
}

// gatePad builds a teleporter pad in room. Stepping onto it from the room
// teleports to the pad tagged lineTag; landTag, if set, makes the pad itself
// a destination.
func (g *Generator) gatePad(room SectorID, lineTag, landTag int) SectorID {
	l := g.l
	r, ok := g.placeInner(room, 64, 64, 48)
	if !ok {
		return NoSector
	}
	s := g.newSectorFrom(room, KindGate)
	sec := l.Sector(s)
	st := sec.Style
	sec.FloorHeight += 8
	sec.FloorFlat = st.GateFlat
	sec.Light = min(255, sec.Light+48)
	sec.Special = TypeBlink05
	sec.Tag = landTag
	for _, ld := range g.innerBox(room, r, s) {
		// The room side must be the front for the teleport to fire
		l.flipLinedef(ld)
		line := l.Linedef(ld)
		line.Type, line.Tag = LineWRTeleport, lineTag
		l.Sidedef(line.Right).Lower = st.GateTex
	}
	l.blocked = append(l.blocked, r)
	if landTag != 0 {
		l.newThing((r.MinX+r.MaxX)/2, (r.MinY+r.MaxY)/2, 90, g.mustGenus(IDTeleportLanding), allTiers)
	}
	return s
}

// gateLanding gives room, reached only through lock's gate, its end of the
// pair.
func (g *Generator) gateLanding(room SectorID, lock *Quest) {
	l := g.l
	if lock == nil {
		return
	}
	pad := g.gatePad(room, lock.Tag2, lock.Tag)
	if pad == NoSector {
		l.Sector(room).Tag = lock.Tag
		x, y := l.centre(room)
		l.newThing(x, y, 90, g.mustGenus(IDTeleportLanding), allTiers)
	}
	for _, gate := range l.Gates {
		if gate.InTag == lock.Tag {
			gate.To = pad
			if pad != NoSector {
				l.Sector(pad).Gate = gate
			}
		}
	}
}

// closeQuestFinal runs once every room is stocked and wires what could not
// be placed earlier: the walk-over lines that spring key ambushes, and the
// secret exit if the level has one and no secret closet took it.
func (g *Generator) closeQuestFinal() {
	l := g.l
	g.wireSurprises()
	if !l.secretExit.want || l.secretExit.placed {
		return
	}
	for i := len(l.Rooms) - 1; i >= 0; i-- {
		if g.secretCloset(l.Rooms[i], true) {
			return
		}
	}
	g.warn(warnSecretUnreachable)
}

// wireSurprises makes every free edge of each ambushed key's pad open the
// closets tagged with the quest's AuxTag.
func (g *Generator) wireSurprises() {
	l := g.l
	for _, q := range l.surprises {
		pad := l.rightSector(q.Surprise)
		for _, ld := range l.boundaryOf(pad) {
			line := l.Linedef(ld)
			if line.Left != NoSidedef && line.Type == LineNone {
				line.Type, line.Tag = LineW1DoorOpen, q.AuxTag
			}
		}
	}
	l.surprises = nil
}

// secretCloset hides a closet behind a wall of room that opens when pushed.
// With exit set the closet holds the secret exit switch, otherwise a prize.
func (g *Generator) secretCloset(room SectorID, exit bool) bool {
	l := g.l
	st := l.Sector(room).Style
	c, ok := g.carveCloset(room, 64, g.pick32(64, 96), KindCloset)
	if !ok {
		return false
	}
	sec := l.Sector(c.sector)
	sec.CeilingHeight = sec.FloorHeight
	sec.Special = TypeSecret
	sec.Light = st.ClosetLight
	l.secretCount++
	entry := l.Linedef(c.entry)
	entry.Type = LineD1DoorOpen
	entry.Flags |= LineSecret
	face := st.Wall0
	if st.Plaque != nil && g.rollpercent(50) {
		face = st.Plaque
	}
	l.Sidedef(entry.Right).Upper = face
	if exit {
		back := l.Linedef(c.back)
		back.Type = LineS1SecretExit
		l.Sidedef(back.Right).Middle = st.ExitSwitch
		l.secretExit.placed = true
		return true
	}
	ids := []int{IDSoulsphere, IDBlueArmor, IDBerserk, IDMegasphere, IDBackpack, IDRocketLauncher}
	if item := g.lookup(ids[g.roll(len(ids))]); item != nil {
		r := l.findRec(c.sector)
		x, y := (r.MinX+r.MaxX)/2, (r.MinY+r.MaxY)/2
		l.newThing(x, y, 0, item, allTiers)
	}
	return true
}

// placeStarts puts the four player starts near the middle of room.
func (g *Generator) placeStarts(room SectorID) {
	l := g.l
	x, y := l.centre(room)
	offs := [4][2]int{{-24, -24}, {24, -24}, {-24, 24}, {24, 24}}
	for i, o := range offs {
		l.newThing(x+o[0], y+o[1], 90, g.mustGenus(IDPlayer1+i), allTiers)
	}
	l.blocked = append(l.blocked, Rect{x - 48, y - 48, x + 48, y + 48})
}

// deathmatchStarts spreads deathmatch starts, and a few weapons for them,
// over the rooms.
func (g *Generator) deathmatchStarts() {
	l := g.l
	start := g.mustGenus(IDDMStart)
	weapons := []int{IDShotgun, IDChaingun, IDSuperShotgun, IDRocketLauncher, IDPlasma}
	for _, room := range l.Rooms {
		if l.dmStarts >= 8 {
			break
		}
		sec := l.Sector(room)
		if g.placeObject(room, start, allTiers, g.between(0, 7)*45) != NoThing {
			sec.HasDM = true
			l.dmStarts++
		}
		if g.rollpercent(50) {
			if w := g.lookup(weapons[g.roll(len(weapons))]); w != nil {
				if g.placeObject(room, w, allTiers|ThingMultiplayer, 0) != NoThing {
					sec.HasDMWeapon = true
				}
			}
		}
	}
	if l.dmStarts < 4 {
		g.warn(warnFewDMStarts, "starts", l.dmStarts)
	}
}

// makeWatermark marks the first room with a small sector of its own.
func (g *Generator) makeWatermark(room SectorID) {
	l := g.l
	r, ok := g.placeInner(room, 32, 32, 24)
	if !ok {
		return
	}
	s := g.newSectorFrom(room, KindWatermark)
	sec := l.Sector(s)
	sec.Light = min(255, sec.Light+16)
	sec.FloorFlat = g.randomFlatOr(sec.Style.Theme, FlatLight, sec.FloorFlat)
	g.innerBox(room, r, s)
	l.Watermark = s
}
