package slump

type stageKind int

const (
	stageRecess stageKind = iota
	stageDoor
	stageCore
	stageStep
	stageLift
)

type stage struct {
	kind  stageKind
	depth int
	floor int
	far   bool // beyond the core
}

// passage is what one run of link sectors leaves behind: the walls along each
// flank and the core sector.
type passage struct {
	fromSide []LinedefID
	toSide   []LinedefID
	core     SectorID
	coreIn   LinedefID // the line leading into the core

	// Flanks of a plain core, NoLinedef when it has an alcove
	coreFrom, coreTo LinedefID
}

// establishLink builds k between near, part of a wall of room from, and far,
// the antiparallel wall of room to at the link's depth. near and far have
// the same length.
func (g *Generator) establishLink(near, far LinedefID, k *Link, from, to SectorID, lock *Quest) {
	if k.Type == OpenLink {
		g.establishOpenLink(near, far, from, to)
		return
	}
	g.establishBasicLink(near, far, k, from, to, lock, false)
}

func (g *Generator) establishOpenLink(near, far LinedefID, from, to SectorID) {
	a, b := g.l.Sector(from), g.l.Sector(to)
	s := g.newSectorFrom(from, KindLink)
	sec := g.l.Sector(s)
	sec.FloorHeight = min(a.FloorHeight, b.FloorHeight)
	sec.CeilingHeight = max(a.CeilingHeight, b.CeilingHeight)
	sec.Light = (a.Light + b.Light) / 2
	g.boxBetween(near, far, s)
}

// linkStages lays out the sectors of one passage from near to far.
func (g *Generator) linkStages(k *Link, fA, fB int) []stage {
	var st []stage
	if k.Has(LinkRecess) {
		st = append(st, stage{kind: stageRecess, depth: k.Recess, floor: fA})
	}
	if k.Has(LinkNearDoor) {
		st = append(st, stage{kind: stageDoor, depth: doorDepth, floor: fA})
	}
	switch {
	case k.Has(LinkSteps):
		st = append(st, g.stairify(k, fA, fB)...)
	case k.Has(LinkLift):
		st = append(st, stage{kind: stageLift, depth: k.Core, floor: max(fA, fB)})
	default:
		st = append(st, stage{kind: stageCore, depth: k.Core, floor: fA})
	}
	if k.Has(LinkFarDoor) {
		st = append(st, stage{kind: stageDoor, depth: doorDepth, floor: fB, far: true})
	}
	if k.Has(LinkRecess) {
		st = append(st, stage{kind: stageRecess, depth: k.Recess, floor: fB, far: true})
	}
	return st
}

// stairify splits the core into steps no higher than a player can climb.
// There is one more rise than there are steps.
func (g *Generator) stairify(k *Link, fA, fB int) []stage {
	delta := fB - fA
	n := max(1, k.StepCount)
	for {
		ok := true
		prev := fA
		for i := 1; i <= n+1; i++ {
			h := fA + delta*i/(n+1)
			if abs(h-prev) > maxStep {
				ok = false
				break
			}
			prev = h
		}
		if ok {
			break
		}
		n++
	}
	depth := k.Core / n
	st := make([]stage, n)
	for i := range st {
		st[i] = stage{kind: stageStep, depth: depth, floor: fA + delta*(i+1)/(n+1)}
	}
	// The last step takes up the rounding
	st[n-1].depth = k.Core - depth*(n-1)
	return st
}

func (g *Generator) establishBasicLink(near, far LinedefID, k *Link, from, to SectorID, lock *Quest, twin bool) passage {
	l := g.l
	if k.Has(LinkTwin) && !twin {
		mid := l.splitLinedef(near, k.Width)
		near2 := l.splitLinedef(mid, k.Sep)
		fmid := l.splitLinedef(far, k.Width)
		far2 := l.splitLinedef(fmid, k.Sep)
		p1 := g.establishBasicLink(near, far2, k, from, to, lock, true)
		p2 := g.establishBasicLink(near2, far, k, from, to, lock, true)
		switch {
		case k.Has(LinkDecroom) && !g.cfg.ModEnabled("nowindows"):
			g.makeDecroom(mid, fmid, p1.toSide, p2.fromSide, from)
		case k.Has(LinkSlits) && !g.cfg.ModEnabled("nowindows"):
			g.slitify(p1, p2)
		}
		return passage{fromSide: p1.fromSide, toSide: p2.toSide, core: p1.core, coreIn: p1.coreIn,
			coreFrom: NoLinedef, coreTo: NoLinedef}
	}

	a, b := l.Sector(from), l.Sector(to)
	st := b.Style
	stages := g.linkStages(k, a.FloorHeight, b.FloorHeight)
	type flip struct {
		ld   LinedefID
		face *Texture
	}
	var (
		out   passage
		flips []flip
		cur   = near
	)
	out.core = NoSector
	out.coreFrom, out.coreTo = NoLinedef, NoLinedef
	for i, sg := range stages {
		last := i == len(stages)-1
		s := g.newSectorFrom(from, KindLink)
		sec := l.Sector(s)
		sec.Style = st
		sec.FloorHeight = sg.floor
		// One ceiling over the whole passage, clear of the higher floor
		sec.CeilingHeight = max(a.FloorHeight, b.FloorHeight) + k.Height
		if k.Has(LinkMaxCeiling) {
			sec.CeilingHeight = max(sec.CeilingHeight, a.CeilingHeight, b.CeilingHeight)
		}
		sec.FloorFlat, sec.CeilingFlat = st.Floor0, st.Ceiling0
		sec.Light = (a.Light + b.Light) / 2

		var box boxSides
		switch {
		case last:
			box = g.boxBetween(cur, far, s)
		case sg.kind == stageCore && k.Has(LinkAlcove):
			box = g.lefthandBoxExt(cur, sg.depth, k.Alcove, k.Alcove, s)
		default:
			box = g.lefthandBox(cur, sg.depth, s)
		}
		out.fromSide = append(out.fromSide, box.fromSide...)
		out.toSide = append(out.toSide, box.toSide...)
		next := box.far
		if !last && sg.kind == stageCore && k.Has(LinkAlcove) {
			next = l.splitLinedef(box.far, k.Alcove)
			rest := l.splitLinedef(next, k.Width)
			out.fromSide = append(out.fromSide, box.far)
			out.toSide = append(out.toSide, rest)
		}

		switch sg.kind {
		case stageRecess:
			g.dressRecess(s, box)
		case stageDoor:
			g.dressDoor(s, cur, next, box, k, lock, sg.far)
			if last {
				l.Sidedef(l.Linedef(next).Right).Upper = st.DoorFace
			} else {
				flips = append(flips, flip{next, st.DoorFace})
			}
		case stageCore:
			out.core, out.coreIn = s, cur
			if !k.Has(LinkAlcove) {
				out.coreFrom, out.coreTo = box.fromSide[0], box.toSide[0]
			}
			g.dressCore(s, cur, next, box, k, lock)
		case stageStep:
			sec.Kind = KindStep
			sec.FloorFlat = st.StepFloor
			g.setLower(cur, st.StepFront)
		case stageLift:
			out.core, out.coreIn = s, cur
			g.dressLift(s, cur, next, box, a.FloorHeight, b.FloorHeight)
			if !last {
				flips = append(flips, flip{next, nil})
			}
		}
		cur = next
	}
	// Doors and lifts only work from the front, so exits face the far room
	for _, f := range flips {
		l.flipLinedef(f.ld)
		if f.face != nil {
			l.Sidedef(l.Linedef(f.ld).Right).Upper = f.face
		}
	}
	return out
}

// setLower puts tex on whichever face of two-sided ld looks at the step.
func (g *Generator) setLower(ld LinedefID, tex *Texture) {
	l := g.l
	line := l.Linedef(ld)
	if line.Left == NoSidedef || tex == nil {
		return
	}
	right, left := l.Sidedef(line.Right), l.Sidedef(line.Left)
	rf, lf := l.Sector(right.Sector).FloorHeight, l.Sector(left.Sector).FloorHeight
	switch {
	case lf > rf:
		right.Lower = tex
	case rf > lf:
		left.Lower = tex
	}
}

func (g *Generator) dressRecess(s SectorID, box boxSides) {
	sec := g.l.Sector(s)
	if !sec.Style.LightRecesses {
		return
	}
	sec.Light = min(255, sec.Light+16)
	for _, ld := range append(box.fromSide, box.toSide...) {
		g.l.Sidedef(g.l.Linedef(ld).Right).Middle = sec.Style.LightTex
	}
}

// dressDoor turns s into a closed door between entry and exit.
func (g *Generator) dressDoor(s SectorID, entry, exit LinedefID, box boxSides, k *Link, lock *Quest, farSide bool) {
	l := g.l
	sec := l.Sector(s)
	st := sec.Style
	sec.Kind = KindDoor
	sec.CeilingHeight = sec.FloorHeight
	sec.FloorFlat, sec.CeilingFlat = st.DoorFloor, st.DoorCeiling
	sec.Light = st.DoorLight

	kind, face := st.DoorType, st.DoorFace
	switch {
	case farSide:
	case lock != nil && lock.Goal == GoalKey:
		kind, face = keyDoorType(lock.Thing), st.keyFace(lock.Thing)
	case lock != nil && lock.Goal == GoalSwitch:
		kind = LineNone
		sec.Tag = lock.Tag
	}
	for _, ld := range []LinedefID{entry, exit} {
		l.Linedef(ld).Type = kind
	}
	l.Sidedef(l.Linedef(entry).Right).Upper = face
	jamb := st.DoorJamb
	if k.Has(LinkLightDoors) {
		jamb = st.LightTex
	}
	for _, ld := range append(box.fromSide, box.toSide...) {
		line := l.Linedef(ld)
		line.Flags |= LineLowerUnpegged
		l.Sidedef(line.Right).Middle = jamb
	}
}

// dressCore applies the core's features: light, nukage, crusher, lock and
// bars. It may also put a monster in it.
func (g *Generator) dressCore(s SectorID, entry, exit LinedefID, box boxSides, k *Link, lock *Quest) {
	l := g.l
	sec := l.Sector(s)
	st := sec.Style
	if k.Has(LinkLitCore) {
		sec.Light = min(255, sec.Light+32)
		sec.CeilingFlat = st.CeilingLight
	}
	if k.Has(LinkNukage) {
		sec.FloorFlat = st.Nukage
		sec.Special = TypeDamage5
		if g.cfg.MajorNukage {
			sec.Special = TypeDamage10
		}
		// The core sinks and its ceiling rises by the same amount
		sec.FloorHeight -= nukageDrop
		sec.CeilingHeight += nukageDrop
	}
	if k.Has(LinkCrusher) {
		sec.Tag = l.newTag()
		for _, ld := range []LinedefID{entry, exit} {
			line := l.Linedef(ld)
			line.Type, line.Tag = LineWRCrusherSlow, sec.Tag
		}
		l.crusherCount++
	}
	if k.Has(LinkLockCore) && lock != nil {
		sec.FloorHeight = sec.CeilingHeight
		sec.Tag = lock.Tag
		for _, ld := range append(box.fromSide, box.toSide...) {
			l.Sidedef(l.Linedef(ld).Right).Middle = st.Support0
		}
	}
	if k.Has(LinkBars) && lock != nil {
		g.barify(s, entry, k, lock.Tag)
	}
	if lock == nil && k.Core >= 64 && k.Width >= 64 && !k.Has(LinkCrusher) &&
		(g.cfg.ImmediateMonsters || g.rollpercent(g.l.params.pCoreMonster)) {
		m, mask := g.timelyMonster(st.Theme, min(k.Width, k.Core)-8, false)
		if m != nil && mask != 0 {
			x, y := l.pointFrom(entry, k.Width/2, k.Core/2)
			l.newThing(x, y, l.facingAngle(entry), m, mask)
			g.updateHAAForMonster(m, mask)
		}
	}
}

// barify fills a row across core s with thin bars that open as doors when
// something triggers tag.
func (g *Generator) barify(s SectorID, entry LinedefID, k *Link, tag int) {
	l := g.l
	sec := l.Sector(s)
	width := l.linelen(entry)
	mid := k.Core/2 - 4
	for o := 12; o+8 <= width-4; o += 24 {
		x1, y1 := l.pointFrom(entry, o, mid)
		x2, y2 := l.pointFrom(entry, o+8, mid+8)
		bar := g.newSectorFrom(s, KindInner)
		bs := l.Sector(bar)
		bs.CeilingHeight = bs.FloorHeight
		bs.Tag = tag
		bs.CeilingFlat = sec.FloorFlat
		lines := g.innerBox(s, rectOf(point{x1, y1}, point{x2, y2}), bar)
		for _, ld := range lines {
			l.Sidedef(l.Linedef(ld).Left).Upper = sec.Style.Support0
		}
		l.barCount++
	}
}

// dressLift turns s into a lift resting at the higher floor. Each end gets
// the trigger that works from its side: a switch from below, a walk-over
// line from above.
func (g *Generator) dressLift(s SectorID, entry, exit LinedefID, box boxSides, fA, fB int) {
	l := g.l
	sec := l.Sector(s)
	st := sec.Style
	sec.Kind = KindLift
	sec.Tag = l.newTag()
	trigger := func(low bool) LineType {
		if low {
			return LineSRLift
		}
		return LineWRLiftMonsters
	}
	in, out := l.Linedef(entry), l.Linedef(exit)
	in.Type, in.Tag = trigger(fA < fB), sec.Tag
	out.Type, out.Tag = trigger(fB < fA), sec.Tag
	g.setLower(entry, st.LiftFace)
	g.setLower(exit, st.LiftFace)
	for _, ld := range append(box.fromSide, box.toSide...) {
		l.Sidedef(l.Linedef(ld).Right).Middle = st.Support0
	}
}
