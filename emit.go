package slump

import "github.com/pkg/errors"

// EmitSector and friends are the entity records handed to a Sink. Indexes
// refer to the order in which the sink received the entities; NoIndex marks
// an absent sidedef.
type EmitSector struct {
	FloorHeight, CeilingHeight int
	FloorFlat, CeilingFlat     string
	Light                      int
	Special                    int
	Tag                        int
}

type EmitSidedef struct {
	XOffset, YOffset     int
	Upper, Lower, Middle string
	Sector               int
}

type EmitLinedef struct {
	From, To    int
	Flags       int
	Type        int
	Tag         int
	Right, Left int
}

type EmitThing struct {
	X, Y    int
	Angle   int
	Type    int
	Options int
}

const NoIndex = -1

// Sink receives a finished level. Emit calls BeginLevel, then every vertex,
// sector, sidedef, linedef and thing in that order, then EndLevel.
type Sink interface {
	BeginLevel(name string) error
	Vertex(x, y int) error
	Sector(s EmitSector) error
	Sidedef(s EmitSidedef) error
	Linedef(l EmitLinedef) error
	Thing(t EmitThing) error
	EndLevel() error
}

func textureName(t *Texture) string {
	if t == nil {
		return "-"
	}
	return t.Name
}

func flatName(f *Flat) string {
	if f == nil {
		return "-"
	}
	return f.Name
}

// Emit sends the live entities of l to sink, numbered in creation order.
func (l *Level) Emit(sink Sink) error {
	if err := sink.BeginLevel(l.Name); err != nil {
		return errors.Wrapf(err, "level %s", l.Name)
	}
	vIndex := make([]int, len(l.vertices))
	n := 0
	for i, v := range l.vertices {
		vIndex[i] = NoIndex
		if v.dead {
			continue
		}
		if err := sink.Vertex(v.X, v.Y); err != nil {
			return errors.Wrap(err, "vertex")
		}
		vIndex[i] = n
		n++
	}
	sIndex := make([]int, len(l.sectors))
	n = 0
	for i, s := range l.sectors {
		sIndex[i] = NoIndex
		if s.dead {
			continue
		}
		err := sink.Sector(EmitSector{
			FloorHeight:   s.FloorHeight,
			CeilingHeight: s.CeilingHeight,
			FloorFlat:     flatName(s.FloorFlat),
			CeilingFlat:   flatName(s.CeilingFlat),
			Light:         s.Light,
			Special:       int(s.Special),
			Tag:           s.Tag,
		})
		if err != nil {
			return errors.Wrap(err, "sector")
		}
		sIndex[i] = n
		n++
	}
	sdIndex := make([]int, len(l.sidedefs))
	n = 0
	for i, sd := range l.sidedefs {
		sdIndex[i] = NoIndex
		if sd.dead {
			continue
		}
		err := sink.Sidedef(EmitSidedef{
			XOffset: sd.XOffset,
			YOffset: sd.YOffset,
			Upper:   textureName(sd.Upper),
			Lower:   textureName(sd.Lower),
			Middle:  textureName(sd.Middle),
			Sector:  sIndex[sd.Sector],
		})
		if err != nil {
			return errors.Wrap(err, "sidedef")
		}
		sdIndex[i] = n
		n++
	}
	side := func(id SidedefID) int {
		if id == NoSidedef {
			return NoIndex
		}
		return sdIndex[id]
	}
	for _, ld := range l.linedefs {
		if ld.dead {
			continue
		}
		err := sink.Linedef(EmitLinedef{
			From:  vIndex[ld.From],
			To:    vIndex[ld.To],
			Flags: int(ld.Flags),
			Type:  int(ld.Type),
			Tag:   ld.Tag,
			Right: side(ld.Right),
			Left:  side(ld.Left),
		})
		if err != nil {
			return errors.Wrap(err, "linedef")
		}
	}
	for _, t := range l.things {
		if t.dead {
			continue
		}
		err := sink.Thing(EmitThing{X: t.X, Y: t.Y, Angle: t.Angle, Type: t.Genus.ID, Options: int(t.Options)})
		if err != nil {
			return errors.Wrap(err, "thing")
		}
	}
	return errors.Wrapf(sink.EndLevel(), "level %s", l.Name)
}
