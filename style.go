package slump

// Style is the bundle of look-and-size choices shared by the sectors of one
// part of a level. Rooms derive their style from the room they were entered
// from, so the look drifts gradually across the map.
type Style struct {
	Theme int

	Wall0      *Texture
	Switch0    *Texture
	Support0   *Texture
	DoorFace   *Texture
	DoorJamb   *Texture
	StepFront  *Texture
	LiftFace   *Texture
	Grating    *Texture
	Plaque     *Texture
	HalfPlaque *Texture
	LightTex   *Texture
	Outside    *Texture
	ExitSwitch *Texture
	Kickplate  *Texture
	RedFace    *Texture
	BlueFace   *Texture
	YellowFace *Texture
	GateTex    *Texture

	Floor0       *Flat
	Ceiling0     *Flat
	DoorFloor    *Flat
	DoorCeiling  *Flat
	CeilingLight *Flat
	Nukage       *Flat
	GateFlat     *Flat
	StepFloor    *Flat

	RoomLight    int
	DoorLight    int
	WallHeight   int // room ceiling height above the floor
	LinkHeight   int
	ClosetWidth  int
	ClosetDepth  int
	ClosetLight  int
	WindowHeight int
	SillHeight   int
	StepHeight   int

	ConstructFamily int
	DoorType        LineType // LineDRDoor or LineDRDoorFast
	Grated          bool     // windows get gratings
	LightRecesses   bool     // door recesses are lit
	LightBoxes      bool
	Peg             bool // doors lower-unpegged
	CenterPillars   bool
	Lamp            *Genus
}

// copyStyle derives a style for theme from parent. Each field keeps the
// parent's value with probability vary percent and is rerolled otherwise.
// A nil parent or a change of theme rerolls everything. Fields are visited
// in a fixed order.
func (g *Generator) copyStyle(parent *Style, theme, vary int) *Style {
	if parent == nil || parent.Theme != theme {
		vary = 0
		parent = &Style{}
	}
	s := &Style{Theme: theme}
	keep := func() bool { return g.rollpercent(vary) }
	tex := func(dst **Texture, old *Texture, pick func() *Texture) {
		if old != nil && keep() {
			*dst = old
			return
		}
		*dst = pick()
	}
	flat := func(dst **Flat, old *Flat, pick func() *Flat) {
		if old != nil && keep() {
			*dst = old
			return
		}
		*dst = pick()
	}
	num := func(dst *int, old int, pick func() int) {
		if old != 0 && keep() {
			*dst = old
			return
		}
		*dst = pick()
	}
	boolean := func(dst *bool, old bool, p int) {
		if keep() {
			*dst = old
			return
		}
		*dst = g.rollpercent(p)
	}

	tex(&s.Wall0, parent.Wall0, func() *Texture { return g.randomWall0(theme) })
	tex(&s.Switch0, parent.Switch0, func() *Texture { return g.randomTextureOr(theme, TexSwitch, s.Wall0) })
	tex(&s.Support0, parent.Support0, func() *Texture { return g.randomTextureOr(theme, TexSupport, s.Wall0) })
	tex(&s.DoorFace, parent.DoorFace, func() *Texture { return g.randomTextureOr(theme, TexDoor, s.Wall0) })
	tex(&s.DoorJamb, parent.DoorJamb, func() *Texture { return g.randomTextureOr(theme, TexJamb, s.Support0) })
	tex(&s.StepFront, parent.StepFront, func() *Texture { return g.randomTextureOr(theme, TexStep, s.Support0) })
	tex(&s.LiftFace, parent.LiftFace, func() *Texture { return g.randomTextureOr(theme, TexLift, s.Support0) })
	tex(&s.Grating, parent.Grating, func() *Texture { return g.randomTexture(theme, TexGrating, false) })
	tex(&s.Plaque, parent.Plaque, func() *Texture { return g.randomTextureOr(theme, TexPlaque, s.Wall0) })
	tex(&s.HalfPlaque, parent.HalfPlaque, func() *Texture { return g.randomTextureOr(theme, TexHalfPlaque, s.Plaque) })
	tex(&s.LightTex, parent.LightTex, func() *Texture { return g.randomTextureOr(theme, TexLight, s.Wall0) })
	tex(&s.Outside, parent.Outside, func() *Texture { return g.randomTextureOr(theme, TexOutside, s.Wall0) })
	tex(&s.ExitSwitch, parent.ExitSwitch, func() *Texture { return g.randomTextureOr(theme, TexExitSwitch, s.Switch0) })
	tex(&s.Kickplate, parent.Kickplate, func() *Texture { return g.randomTextureOr(theme, TexSupport, s.Wall0) })
	tex(&s.RedFace, parent.RedFace, func() *Texture { return g.randomTextureOr(theme, TexLocked|TexRed, s.DoorFace) })
	tex(&s.BlueFace, parent.BlueFace, func() *Texture { return g.randomTextureOr(theme, TexLocked|TexBlue, s.DoorFace) })
	tex(&s.YellowFace, parent.YellowFace, func() *Texture { return g.randomTextureOr(theme, TexLocked|TexYellow, s.DoorFace) })
	tex(&s.GateTex, parent.GateTex, func() *Texture { return g.randomTextureOr(theme, TexGate, s.Support0) })

	flat(&s.Floor0, parent.Floor0, func() *Flat { return g.randomFlat0(theme, FlatFloor) })
	flat(&s.Ceiling0, parent.Ceiling0, func() *Flat { return g.randomFlat0(theme, FlatCeiling) })
	flat(&s.DoorFloor, parent.DoorFloor, func() *Flat { return g.randomFlatOr(theme, FlatDoor, s.Floor0) })
	flat(&s.DoorCeiling, parent.DoorCeiling, func() *Flat { return g.randomFlatOr(theme, FlatDoor|FlatCeiling, s.Ceiling0) })
	flat(&s.CeilingLight, parent.CeilingLight, func() *Flat { return g.randomFlatOr(theme, FlatLight|FlatCeiling, s.Ceiling0) })
	flat(&s.Nukage, parent.Nukage, func() *Flat { return g.randomFlatOr(theme, FlatNukage, s.Floor0) })
	flat(&s.GateFlat, parent.GateFlat, func() *Flat { return g.randomFlatOr(theme, FlatGate, s.Floor0) })
	flat(&s.StepFloor, parent.StepFloor, func() *Flat { return g.randomFlatOr(theme, FlatFloor, s.Floor0) })

	num(&s.RoomLight, parent.RoomLight, func() int { return 112 + 16*g.roll(8) })
	num(&s.DoorLight, parent.DoorLight, func() int { return s.RoomLight + 16*g.between(-2, 2) })
	num(&s.WallHeight, parent.WallHeight, func() int { return g.pick32(96, 192) })
	num(&s.LinkHeight, parent.LinkHeight, func() int { return min(s.WallHeight, g.pick32(72, 128)) })
	num(&s.ClosetWidth, parent.ClosetWidth, func() int { return g.pick32(64, 128) })
	num(&s.ClosetDepth, parent.ClosetDepth, func() int { return g.pick32(64, 96) })
	num(&s.ClosetLight, parent.ClosetLight, func() int { return 96 + 16*g.roll(8) })
	num(&s.WindowHeight, parent.WindowHeight, func() int { return 32 + 16*g.roll(4) })
	num(&s.SillHeight, parent.SillHeight, func() int { return 32 + 8*g.roll(4) })
	num(&s.StepHeight, parent.StepHeight, func() int { return 8 + 4*g.roll(5) })
	num(&s.ConstructFamily, parent.ConstructFamily, func() int { return 1 + g.roll(3) })

	if parent.DoorType != 0 && keep() {
		s.DoorType = parent.DoorType
	} else if g.rollpercent(30) {
		s.DoorType = LineDRDoorFast
	} else {
		s.DoorType = LineDRDoor
	}
	boolean(&s.Grated, parent.Grated, 40)
	boolean(&s.LightRecesses, parent.LightRecesses, 30)
	boolean(&s.LightBoxes, parent.LightBoxes, 20)
	boolean(&s.Peg, parent.Peg, 50)
	boolean(&s.CenterPillars, parent.CenterPillars, 25)
	if parent.Lamp != nil && keep() {
		s.Lamp = parent.Lamp
	} else {
		s.Lamp = g.randomThing0(GenusLight|GenusObstacle, theme, nil)
	}
	s.RoomLight = clamp(s.RoomLight, 96, 240)
	s.DoorLight = clamp(s.DoorLight, 80, 240)
	return s
}

// newStyle returns the style for a room entered from a room styled parent.
// Radical transitions (across a locked link) change theme more readily.
func (g *Generator) newStyle(parent *Style, radical bool) *Style {
	pTheme, vary := g.cfg.NormNewTheme, g.cfg.NormVary
	if radical {
		pTheme, vary = g.cfg.RadNewTheme, g.cfg.RadVary
	}
	if g.l.params.secretTheme >= 0 {
		return g.copyStyle(parent, g.l.params.secretTheme, vary)
	}
	if g.rollpercent(pTheme) {
		return g.copyStyle(parent, g.randomTheme(), 0)
	}
	return g.copyStyle(parent, parent.Theme, vary)
}

// keyFace returns the locked-door texture for key.
func (s *Style) keyFace(key *Genus) *Texture {
	switch key.ID {
	case IDRedCard, IDRedSkull:
		return s.RedFace
	case IDBlueCard, IDBlueSkull:
		return s.BlueFace
	}
	return s.YellowFace
}
