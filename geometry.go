package slump

// The geometry kernel works on integer map units. Rooms, links and closets
// run along the axes; diagonal walls appear only where a room boundary is
// swollen, and the emptiness tests treat them exactly.

// mapLimit bounds every coordinate the generator will emit.
const mapLimit = 15000

type point struct {
	x, y int
}

// lengthOf returns the length of the vector (dx,dy) rounded to the nearest unit.
func lengthOf(dx, dy int) int {
	switch {
	case dx == 0:
		return abs(dy)
	case dy == 0:
		return abs(dx)
	}
	return int(isqrt(int64(dx)*int64(dx) + int64(dy)*int64(dy)))
}

func (l *Level) ends(ld LinedefID) (*Vertex, *Vertex) {
	line := l.Linedef(ld)
	return l.Vertex(line.From), l.Vertex(line.To)
}

func (l *Level) linelen(ld LinedefID) int {
	a, b := l.ends(ld)
	return lengthOf(b.X-a.X, b.Y-a.Y)
}

// isOrthogonal reports whether ld runs along an axis.
func (l *Level) isOrthogonal(ld LinedefID) bool {
	a, b := l.ends(ld)
	return a.X == b.X || a.Y == b.Y
}

// pointFrom returns the point along units from the start of ld and left units
// to its left. Negative values go backwards and to the right.
func (l *Level) pointFrom(ld LinedefID, along, left int) (int, int) {
	a, b := l.ends(ld)
	dx, dy := b.X-a.X, b.Y-a.Y
	if dx == 0 || dy == 0 {
		ux, uy := sign(dx), sign(dy)
		return a.X + along*ux - left*uy, a.Y + along*uy + left*ux
	}
	n := lengthOf(dx, dy)
	parity := along + left
	return a.X + scaleDiv(along*dx-left*dy, n, parity), a.Y + scaleDiv(along*dy+left*dx, n, parity)
}

// scaleDiv divides for pointFrom on diagonal lines. Even parity rounds half
// away from zero and odd parity truncates.
func scaleDiv(num, den, parity int) int {
	if parity%2 != 0 {
		return num / den
	}
	if num < 0 {
		return -((-num + den/2) / den)
	}
	return (num + den/2) / den
}

func (l *Level) cloneSidedef(id SidedefID) SidedefID {
	if id == NoSidedef {
		return NoSidedef
	}
	sd := *l.Sidedef(id)
	l.sidedefs = append(l.sidedefs, &sd)
	return SidedefID(len(l.sidedefs) - 1)
}

// splitLinedef cuts ld dist units from its start. ld keeps the first part and
// the returned linedef is the second; it inherits sidedefs, flags, type and
// tag, and follows ld in its alignment group.
func (l *Level) splitLinedef(id LinedefID, dist int) LinedefID {
	total := l.linelen(id)
	x, y := l.pointFrom(id, dist, 0)
	v := l.newVertex(x, y)
	ld := l.Linedef(id)
	nl := &Linedef{
		From:      v,
		To:        ld.To,
		Right:     l.cloneSidedef(ld.Right),
		Left:      l.cloneSidedef(ld.Left),
		Flags:     ld.Flags,
		Type:      ld.Type,
		Tag:       ld.Tag,
		GroupPrev: id,
		GroupNext: ld.GroupNext,
	}
	l.linedefs = append(l.linedefs, nl)
	nid := LinedefID(len(l.linedefs) - 1)
	if ld.GroupNext != NoLinedef {
		l.linedefs[ld.GroupNext].GroupPrev = nid
	}
	ld.GroupNext = nid
	ld.To = v

	// Keep textures continuous across the cut
	if nl.Right != NoSidedef {
		l.sidedefs[nl.Right].XOffset += dist
	}
	if ld.Left != NoSidedef {
		l.sidedefs[ld.Left].XOffset += total - dist
	}
	l.invalidateSector(l.sideSector(ld.Right))
	l.invalidateSector(l.sideSector(ld.Left))
	return nid
}

// splitOut isolates the width units of ld that start offset units in and
// returns that piece. Pieces before and after stay as separate linedefs.
func (l *Level) splitOut(ld LinedefID, offset, width int) LinedefID {
	if offset > 0 {
		ld = l.splitLinedef(ld, offset)
	}
	if l.linelen(ld) > width {
		l.splitLinedef(ld, width)
	}
	return ld
}

// centerOf isolates a piece of ld width units long in its middle.
func (l *Level) centerOf(ld LinedefID, width int) LinedefID {
	return l.splitOut(ld, (l.linelen(ld)-width)/2, width)
}

// flipLinedef reverses ld, swapping its ends and its sides.
func (l *Level) flipLinedef(id LinedefID) {
	ld := l.Linedef(id)
	ld.From, ld.To = ld.To, ld.From
	ld.Right, ld.Left = ld.Left, ld.Right
}

// makeParallel returns a new linedef, without sidedefs, running antiparallel
// to ld at distance depth on its left (side > 0) or right (side < 0).
func (l *Level) makeParallel(ld LinedefID, depth, side int) LinedefID {
	n := l.linelen(ld)
	off := depth
	if side < 0 {
		off = -depth
	}
	x1, y1 := l.pointFrom(ld, n, off)
	x2, y2 := l.pointFrom(ld, 0, off)
	return l.newLinedef(l.newVertex(x1, y1), l.newVertex(x2, y2), NoSector)
}

// segmentsCross reports whether two segments cross at a point interior to both.
func segmentsCross(a1, a2, b1, b2 point) bool {
	o1 := orient(a1, a2, b1)
	o2 := orient(a1, a2, b2)
	o3 := orient(b1, b2, a1)
	o4 := orient(b1, b2, a2)
	return o1*o2 < 0 && o3*o4 < 0
}

func orient(a, b, c point) int64 {
	return sign(int64(b.x-a.x)*int64(c.y-a.y) - int64(b.y-a.y)*int64(c.x-a.x))
}

// segmentInRect reports whether any part of segment ab lies in the interior
// of r.
func segmentInRect(a, b point, r Rect) bool {
	loX, hiX := min(a.x, b.x), max(a.x, b.x)
	loY, hiY := min(a.y, b.y), max(a.y, b.y)
	switch {
	case a.y == b.y:
		return r.MinY < a.y && a.y < r.MaxY && loX < r.MaxX && hiX > r.MinX
	case a.x == b.x:
		return r.MinX < a.x && a.x < r.MaxX && loY < r.MaxY && hiY > r.MinY
	}
	if loX >= r.MaxX || hiX <= r.MinX || loY >= r.MaxY || hiY <= r.MinY {
		return false
	}
	inside := func(p point) bool {
		return r.MinX < p.x && p.x < r.MaxX && r.MinY < p.y && p.y < r.MaxY
	}
	if inside(a) || inside(b) {
		return true
	}
	corners := []point{{r.MinX, r.MinY}, {r.MaxX, r.MinY}, {r.MaxX, r.MaxY}, {r.MinX, r.MaxY}}
	for i, c := range corners {
		if segmentsCross(a, b, c, corners[(i+1)%4]) {
			return true
		}
	}
	// Left to cover: a segment that enters and leaves through opposite
	// corners, and so runs through the middle
	mid := point{r.MinX + r.MaxX, r.MinY + r.MaxY}
	return orient(point{2 * a.x, 2 * a.y}, point{2 * b.x, 2 * b.y}, mid) == 0
}

func rectOf(pts ...point) Rect {
	r := Rect{pts[0].x, pts[0].y, pts[0].x, pts[0].y}
	for _, p := range pts[1:] {
		r.MinX, r.MaxX = min(r.MinX, p.x), max(r.MaxX, p.x)
		r.MinY, r.MaxY = min(r.MinY, p.y), max(r.MaxY, p.y)
	}
	return r
}

// emptyRectangle reports whether the quadrilateral with the given corners is
// free of unmarked vertices, linedefs and sector bounding rectangles. Contact
// along the boundary is allowed. This is the oracle behind every placement.
func (l *Level) emptyRectangle(x1, y1, x2, y2, x3, y3, x4, y4 int) bool {
	return l.emptyRect(rectOf(point{x1, y1}, point{x2, y2}, point{x3, y3}, point{x4, y4}), NoSector)
}

// emptyRect is emptyRectangle for an axis-aligned rectangle, ignoring the
// bounding rectangle (but not the walls) of sector ignore.
func (l *Level) emptyRect(r Rect, ignore SectorID) bool {
	if r.MinX < -mapLimit || r.MaxX > mapLimit || r.MinY < -mapLimit || r.MaxY > mapLimit {
		return false
	}
	if r.Width() <= 0 || r.Height() <= 0 {
		return false
	}
	for _, v := range l.vertices {
		if v.dead || v.Marked {
			continue
		}
		if r.MinX < v.X && v.X < r.MaxX && r.MinY < v.Y && v.Y < r.MaxY {
			return false
		}
	}
	for _, ld := range l.linedefs {
		if ld.dead {
			continue
		}
		a, b := l.vertices[ld.From], l.vertices[ld.To]
		if segmentInRect(point{a.X, a.Y}, point{b.X, b.Y}, r) {
			return false
		}
	}
	for i, s := range l.sectors {
		if s.dead || SectorID(i) == ignore {
			continue
		}
		// A sector with no walls yet has an empty rectangle
		if sr := l.findRec(SectorID(i)); sr != (Rect{}) && sr.Overlaps(r) {
			return false
		}
	}
	return true
}

// leftRect returns the rectangle between ld and its parallel depth units to
// the left, widened by before and after along the line.
func (l *Level) leftRect(ld LinedefID, depth, before, after int) Rect {
	n := l.linelen(ld)
	x1, y1 := l.pointFrom(ld, -before, 0)
	x2, y2 := l.pointFrom(ld, n+after, 0)
	x3, y3 := l.pointFrom(ld, n+after, depth)
	x4, y4 := l.pointFrom(ld, -before, depth)
	return rectOf(point{x1, y1}, point{x2, y2}, point{x3, y3}, point{x4, y4})
}

// leftRectAt is the rectangle depth units to the left of the width units of
// ld that start off units in, widened by ext at both ends.
func (l *Level) leftRectAt(ld LinedefID, off, width, depth, ext int) Rect {
	x1, y1 := l.pointFrom(ld, off-ext, 0)
	x2, y2 := l.pointFrom(ld, off+width+ext, depth)
	return rectOf(point{x1, y1}, point{x2, y2})
}

// emptyLeftSide reports whether the area depth units to the left of ld is free.
func (l *Level) emptyLeftSide(ld LinedefID, depth int) bool {
	line := l.Linedef(ld)
	from, to := l.Vertex(line.From), l.Vertex(line.To)
	from.Marked, to.Marked = true, true
	ok := l.emptyRect(l.leftRect(ld, depth, 0, 0), NoSector)
	from.Marked, to.Marked = false, false
	return ok
}

// findRec returns the bounding rectangle of sector s, recomputing it from the
// linedefs that face s when the cache has been invalidated.
func (l *Level) findRec(s SectorID) Rect {
	sec := l.sectors[s]
	if sec.recValid {
		return sec.rec
	}
	sec.rec = l.scanRec(s)
	sec.recValid = true
	return sec.rec
}

func (l *Level) scanRec(s SectorID) Rect {
	var pts []point
	for _, ld := range l.linedefs {
		if ld.dead {
			continue
		}
		if l.sideSector(ld.Right) != s && l.sideSector(ld.Left) != s {
			continue
		}
		a, b := l.vertices[ld.From], l.vertices[ld.To]
		pts = append(pts, point{a.X, a.Y}, point{b.X, b.Y})
	}
	if len(pts) == 0 {
		return Rect{}
	}
	return rectOf(pts...)
}

// Bounds returns the cached bounding rectangle of sector s.
func (l *Level) Bounds(s SectorID) Rect {
	return l.findRec(s)
}

// boundaryOf returns the linedefs facing s, in creation order.
func (l *Level) boundaryOf(s SectorID) []LinedefID {
	var lines []LinedefID
	for i, ld := range l.linedefs {
		if ld.dead {
			continue
		}
		if l.sideSector(ld.Right) == s || l.sideSector(ld.Left) == s {
			lines = append(lines, LinedefID(i))
		}
	}
	return lines
}

// centre returns the middle of sector s's bounding rectangle.
func (l *Level) centre(s SectorID) (int, int) {
	r := l.findRec(s)
	return (r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2
}

// facingAngle returns the angle, in degrees, of the normal pointing to the
// right of ld.
func (l *Level) facingAngle(ld LinedefID) int {
	a, b := l.ends(ld)
	dx, dy := sign(b.X-a.X), sign(b.Y-a.Y)
	switch {
	case dx > 0:
		return 270
	case dx < 0:
		return 90
	case dy > 0:
		return 0
	}
	return 180
}
