package slump

type LinkType int

const (
	BasicLink LinkType = iota
	OpenLink           // one wide box, no doors
	GateLink           // no geometry, rooms joined by teleporters
)

type LinkBits uint32

const (
	LinkCore LinkBits = 1 << iota
	LinkAlcove
	LinkRecess
	LinkNearDoor
	LinkFarDoor
	LinkTwin
	LinkFarTwin
	LinkBars
	LinkLift
	LinkSteps
	LinkMaxCeiling
	LinkLitCore
	LinkNukage
	LinkCrusher
	LinkSlits
	LinkDecroom
	LinkLockCore // core floor raised to the ceiling until a switch lowers it
	LinkLightDoors
)

const (
	doorDepth    = 16
	minStepDepth = 24
	maxStep      = 24 // tallest step a player can climb
	linkMargin   = 16 // distance kept from the corners of the wall a link starts on
	nukageDrop   = 8  // how far a nukage core sits below the near floor
)

// Link is the recipe for one connection between two rooms. Depths run away
// from the starting wall: recess, door, core, door, recess.
type Link struct {
	Type       LinkType
	Bits       LinkBits
	Width      int // width of one passage
	Sep        int // distance between twin passages
	Alcove     int // extra core width on each side
	Recess     int // recess depth
	Core       int // core depth
	Height     int // passage height
	FloorDelta int // far floor minus near floor
	StepCount  int
}

func (k *Link) Has(b LinkBits) bool { return k.Bits&b != 0 }

// depth is the distance between the two rooms.
func (k *Link) depth() int {
	if k.Type == OpenLink {
		return k.Core
	}
	d := k.Core
	if k.Has(LinkRecess) {
		d += 2 * k.Recess
	}
	if k.Has(LinkNearDoor) {
		d += doorDepth
	}
	if k.Has(LinkFarDoor) {
		d += doorDepth
	}
	return d
}

// span is the length of wall the link occupies on each room.
func (k *Link) span() int {
	if k.Has(LinkTwin) {
		return 2*k.Width + k.Sep
	}
	return k.Width
}

// nearStage and farStage report whether anything lies between the core and
// each room.
func (k *Link) nearStage() bool { return k.Has(LinkRecess) || k.Has(LinkNearDoor) }
func (k *Link) farStage() bool  { return k.Has(LinkRecess) || k.Has(LinkFarDoor) }

// randomLink rolls a link recipe for wall ld. A non-nil lock is the quest
// whose reward must open the link.
func (g *Generator) randomLink(ld LinedefID, st *Style, lock *Quest) *Link {
	var k *Link
	switch {
	case lock != nil && lock.Goal == GoalGate:
		k = &Link{Type: GateLink}
	case lock == nil && g.rollpercent(g.l.params.pOpenLink):
		k = g.randomOpenLink(ld, st)
	default:
		k = g.randomBasicLink(ld, st)
	}
	g.adjustLink(k, ld, lock)
	return k
}

func (g *Generator) randomOpenLink(ld LinedefID, st *Style) *Link {
	k := &Link{Type: OpenLink}
	n := g.l.linelen(ld) - 2*linkMargin
	k.Width = max(64, min(n, g.pick32(128, 384)))
	k.Core = g.pick32(32, 128)
	k.Height = st.WallHeight
	if g.rollpercent(30) {
		k.FloorDelta = 8 * g.between(-3, 3)
	}
	return k
}

func (g *Generator) randomBasicLink(ld LinedefID, st *Style) *Link {
	p := &g.l.params
	k := &Link{Type: BasicLink}
	k.Width = g.pick32(64, 128)
	if g.rollpercent(20) {
		k.Width = g.pick32(128, 192)
	}
	k.Height = min(st.WallHeight, max(72, st.LinkHeight))
	k.Recess = 8 * g.between(2, 4)
	k.Core = g.pick32(32, 96)

	if g.rollpercent(p.pDoor) {
		k.Bits |= LinkNearDoor
		if g.rollpercent(25) {
			k.Bits |= LinkFarDoor
		}
	}
	if k.Has(LinkNearDoor) && g.rollpercent(p.pRecess) {
		k.Bits |= LinkRecess
	}
	if g.rollpercent(p.pTwin) {
		k.Bits |= LinkTwin
		k.Width = min(k.Width, 96)
		k.Sep = g.pick32(32, 128)
		if g.rollpercent(30) {
			k.Bits |= LinkFarTwin
			k.Sep = g.pick32(192, 384)
		}
		switch {
		case k.Sep <= 32 && g.rollpercent(60):
			k.Bits |= LinkSlits
		case k.Sep >= 96 && g.rollpercent(50):
			k.Bits |= LinkDecroom
		}
	} else if g.rollpercent(p.pAlcove) {
		k.Bits |= LinkAlcove
		k.Alcove = g.pick32(32, 64)
	}
	if g.rollpercent(30) {
		k.Bits |= LinkMaxCeiling
	}
	if g.rollpercent(20) {
		k.Bits |= LinkLitCore
	}
	if g.rollpercent(15) {
		k.Bits |= LinkLightDoors
	}

	// Height change across the link
	switch r := g.roll(100); {
	case r < 45:
	case r < 70:
		k.FloorDelta = 8 * g.between(-3, 3)
	default:
		k.FloorDelta = 8 * g.between(4, 24)
		if g.rollpercent(50) {
			k.FloorDelta = -k.FloorDelta
		}
	}
	if abs(k.FloorDelta) > maxStep {
		if abs(k.FloorDelta) > 128 || !g.rollpercent(p.pUseSteps) {
			k.Bits |= LinkLift
			k.Width = max(k.Width, 64)
			k.Core = max(k.Core, 64)
		} else {
			k.Bits |= LinkSteps
			k.StepCount = (abs(k.FloorDelta) + maxStep - 1) / maxStep
			k.Core = max(k.Core, k.StepCount*g.pick32(32, 64))
		}
	}
	if !k.Has(LinkSteps|LinkLift) && g.rollpercent(p.pNukage) {
		k.Bits |= LinkNukage
	}
	if !k.Has(LinkSteps|LinkLift|LinkNukage) && g.l.crusherCount < p.maxCrushers && g.rollpercent(3) {
		k.Bits |= LinkCrusher
	}
	return k
}

// adjustLink makes a freshly rolled link buildable from wall ld: it fits the
// lock, drops features that clash, and keeps every floor a player must cross
// within a step of the last. Nothing changes a link after this.
func (g *Generator) adjustLink(k *Link, ld LinedefID, lock *Quest) {
	if k.Type == GateLink {
		return
	}
	if lock != nil {
		g.lockLink(k, lock)
	}
	// Bars only span the passage, so the core cannot be wider
	if k.Has(LinkBars) {
		k.Bits &^= LinkAlcove
		k.Alcove = 0
	}
	// A wide core cannot touch either room's wall
	if k.Has(LinkAlcove) && !(k.nearStage() && k.farStage()) {
		if lock == nil && g.rollpercent(50) {
			k.Bits |= LinkRecess
			if !k.Has(LinkNearDoor) {
				k.Bits |= LinkNearDoor
			}
		} else {
			k.Bits &^= LinkAlcove
			k.Alcove = 0
		}
	}
	if from := g.l.rightSector(ld); from != NoSector {
		if f := g.l.Sector(from).FloorHeight + k.FloorDelta; abs(f) > floorLimit {
			k.FloorDelta = -k.FloorDelta
		}
	}
	// A nukage core sits below the near floor, so the far floor comes down
	// to keep the climb out of it a single step
	if k.Has(LinkNukage) && !k.Has(LinkSteps|LinkLift) {
		k.FloorDelta = min(k.FloorDelta, maxStep-nukageDrop)
	}
}

// lockLink adjusts k so that lock's reward opens it.
func (g *Generator) lockLink(k *Link, lock *Quest) {
	k.Bits &^= LinkTwin | LinkFarTwin | LinkSlits | LinkDecroom | LinkCrusher
	k.Sep = 0
	switch lock.Goal {
	case GoalKey:
		k.Bits |= LinkNearDoor
		if k.Has(LinkLift) {
			k.Bits &^= LinkLift
			k.Bits |= LinkSteps
			k.StepCount = (abs(k.FloorDelta) + maxStep - 1) / maxStep
			k.Core = max(k.Core, k.StepCount*32)
		}
	case GoalSwitch:
		if lock.Type == LineS1FloorLowest {
			k.Bits |= LinkLockCore
			k.Bits &^= LinkSteps | LinkLift | LinkNukage
			k.FloorDelta = clamp(k.FloorDelta, -maxStep, maxStep)
			k.Core = max(k.Core, 64)
			return
		}
		if !g.cfg.ModEnabled("nobars") && g.l.barCount < g.l.params.maxBars && !k.Has(LinkLift|LinkSteps) && g.rollpercent(35) {
			k.Bits |= LinkBars
			k.Core = max(k.Core, 32)
			return
		}
		k.Bits |= LinkNearDoor
	}
}

// linkFitsH reports whether k fits along a wall of length n.
func linkFitsH(k *Link, n int) bool {
	switch k.Type {
	case GateLink:
		return n >= 64
	case OpenLink:
		return n >= k.Width
	}
	return n >= k.span()+2*linkMargin
}

// linkFitsV reports whether the space to the left of the part of ld
// starting off units in is free for k.
func (g *Generator) linkFitsV(ld LinedefID, off int, k *Link) bool {
	if k.Type == GateLink {
		return true
	}
	l := g.l
	span, depth, ext := k.span(), k.depth(), k.Alcove
	x1, y1 := l.pointFrom(ld, off-ext, 0)
	x2, y2 := l.pointFrom(ld, off+span+ext, 0)
	x3, y3 := l.pointFrom(ld, off+span+ext, depth)
	x4, y4 := l.pointFrom(ld, off-ext, depth)
	return l.emptyRectangle(x1, y1, x2, y2, x3, y3, x4, y4)
}

// linkFitsQ reports whether k can serve as the lock for quest lock.
func linkFitsQ(k *Link, lock *Quest) bool {
	if lock == nil {
		return k.Type != GateLink
	}
	switch lock.Goal {
	case GoalGate:
		return k.Type == GateLink
	case GoalKey:
		return k.Type == BasicLink && k.Has(LinkNearDoor)
	case GoalSwitch:
		if k.Type != BasicLink {
			return false
		}
		if lock.Type == LineS1FloorLowest {
			return k.Has(LinkLockCore)
		}
		return k.Has(LinkNearDoor) || k.Has(LinkBars)
	}
	return k.Type != GateLink
}
