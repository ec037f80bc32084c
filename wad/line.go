package wad

type binLine struct {
	VertexStart, VertexEnd int16
	Flags                  int16
	Type                   int16
	SectorTag              int16
	SideR, SideL           int16
}

// Linedef flags
const (
	LineImpassable   = 0x01
	LineBlockMonster = 0x02
	LineTwoSided     = 0x04
	LineUpperUnpeg   = 0x08
	LineLowerUnpeg   = 0x10
	LineSecret       = 0x20
	LineBlockSound   = 0x40
	LineNeverMap     = 0x80
	LineAlwaysMap    = 0x100
)

type Line struct {
	V1Num                  int
	V2Num                  int
	Flags                  int
	BlockPlayerAndMonsters bool
	BlockMonsters          bool
	TwoSided               bool
	UpperTextureUnpegged   bool
	LowerTextureUnpegged   bool
	Secret                 bool
	BlocksSound            bool
	NeverMap               bool
	AlwaysMap              bool
	Type                   int
	SectorTagNum           int
	SideRNum, SideLNum     int

	// References
	V1, V2                  Vertex
	DX, DY                  int
	TaggedSectors           []*Sector
	SideR, SideL            *Side // SideL is nil if one-sided
	BoundingBox             BoundBox
	FrontSector, BackSector *Sector
}

func newLine(b binLine) Line {
	flags := int(uint16(b.Flags))
	return Line{
		V1Num:                  int(b.VertexStart),
		V2Num:                  int(b.VertexEnd),
		Flags:                  flags,
		BlockPlayerAndMonsters: flags&LineImpassable != 0,
		BlockMonsters:          flags&LineBlockMonster != 0,
		TwoSided:               flags&LineTwoSided != 0,
		UpperTextureUnpegged:   flags&LineUpperUnpeg != 0,
		LowerTextureUnpegged:   flags&LineLowerUnpeg != 0,
		Secret:                 flags&LineSecret != 0,
		BlocksSound:            flags&LineBlockSound != 0,
		NeverMap:               flags&LineNeverMap != 0,
		AlwaysMap:              flags&LineAlwaysMap != 0,
		Type:                   int(b.Type),
		SectorTagNum:           int(b.SectorTag),
		SideRNum:               int(b.SideR),
		SideLNum:               int(b.SideL),
	}
}
