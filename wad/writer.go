package wad

import (
	"bytes"
	"encoding/binary"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"

	"github.com/stuarthighley/slump"
)

var _ slump.Sink = (*Writer)(nil)

// Writer builds a PWAD holding one or more levels. Lumps are kept in memory
// and the archive is written to the underlying io.Writer by Close.
type Writer struct {
	out    io.Writer
	lumps  []lump
	level  *levelLumps
	closed bool
}

type lump struct {
	name string
	data []byte
}

type levelLumps struct {
	name        string
	things      bytes.Buffer
	lines       bytes.Buffer
	sides       bytes.Buffer
	vertexes    bytes.Buffer
	sectors     bytes.Buffer
	numThings   int
	numLines    int
	numSides    int
	numSectors  int
	numVertexes int
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) BeginLevel(name string) error {
	if w.closed {
		return errors.New("writer closed")
	}
	if w.level != nil {
		return errors.Errorf("level %s still open", w.level.name)
	}
	if _, err := toString8(name); err != nil {
		return err
	}
	w.level = &levelLumps{name: strings.ToUpper(name)}
	return nil
}

func (w *Writer) current() (*levelLumps, error) {
	if w.level == nil {
		return nil, errors.New("no level open")
	}
	return w.level, nil
}

func (w *Writer) Vertex(x, y int) error {
	l, err := w.current()
	if err != nil {
		return err
	}
	var v binVertex
	if v.X, err = toInt16(x); err != nil {
		return errors.Wrapf(err, "vertex %d", l.numVertexes)
	}
	if v.Y, err = toInt16(y); err != nil {
		return errors.Wrapf(err, "vertex %d", l.numVertexes)
	}
	l.numVertexes++
	return binary.Write(&l.vertexes, binary.LittleEndian, v)
}

func (w *Writer) Sector(s slump.EmitSector) error {
	l, err := w.current()
	if err != nil {
		return err
	}
	b := binSector{}
	fields := []struct {
		dst *int16
		n   int
	}{
		{&b.FloorHeight, s.FloorHeight},
		{&b.CeilingHeight, s.CeilingHeight},
		{&b.LightLevel, s.Light},
		{&b.Type, s.Special},
		{&b.TagNum, s.Tag},
	}
	for _, f := range fields {
		if *f.dst, err = toInt16(f.n); err != nil {
			return errors.Wrapf(err, "sector %d", l.numSectors)
		}
	}
	if b.FloorTexture, err = toString8(s.FloorFlat); err != nil {
		return errors.Wrapf(err, "sector %d", l.numSectors)
	}
	if b.CeilingTexture, err = toString8(s.CeilingFlat); err != nil {
		return errors.Wrapf(err, "sector %d", l.numSectors)
	}
	l.numSectors++
	return binary.Write(&l.sectors, binary.LittleEndian, b)
}

func (w *Writer) Sidedef(s slump.EmitSidedef) error {
	l, err := w.current()
	if err != nil {
		return err
	}
	if s.Sector < 0 || s.Sector >= l.numSectors {
		return errors.Errorf("sidedef %d: bad sector %d", l.numSides, s.Sector)
	}
	b := binSide{SectorNum: int16(s.Sector)}
	if b.XOffset, err = toInt16(s.XOffset); err != nil {
		return errors.Wrapf(err, "sidedef %d", l.numSides)
	}
	if b.YOffset, err = toInt16(s.YOffset); err != nil {
		return errors.Wrapf(err, "sidedef %d", l.numSides)
	}
	for _, t := range []struct {
		dst  *String8
		name string
	}{{&b.UpperTexture, s.Upper}, {&b.LowerTexture, s.Lower}, {&b.MiddleTexture, s.Middle}} {
		if *t.dst, err = toString8(t.name); err != nil {
			return errors.Wrapf(err, "sidedef %d", l.numSides)
		}
	}
	l.numSides++
	return binary.Write(&l.sides, binary.LittleEndian, b)
}

func (w *Writer) Linedef(ld slump.EmitLinedef) error {
	l, err := w.current()
	if err != nil {
		return err
	}
	if ld.From < 0 || ld.From >= l.numVertexes || ld.To < 0 || ld.To >= l.numVertexes {
		return errors.Errorf("linedef %d: bad vertex", l.numLines)
	}
	if ld.Right < 0 || ld.Right >= l.numSides || ld.Left >= l.numSides {
		return errors.Errorf("linedef %d: bad sidedef", l.numLines)
	}
	b := binLine{
		VertexStart: int16(ld.From),
		VertexEnd:   int16(ld.To),
		Flags:       int16(uint16(ld.Flags)),
		SideR:       int16(ld.Right),
		SideL:       -1,
	}
	if ld.Left != slump.NoIndex {
		b.SideL = int16(ld.Left)
	}
	if b.Type, err = toInt16(ld.Type); err != nil {
		return errors.Wrapf(err, "linedef %d", l.numLines)
	}
	if b.SectorTag, err = toInt16(ld.Tag); err != nil {
		return errors.Wrapf(err, "linedef %d", l.numLines)
	}
	l.numLines++
	return binary.Write(&l.lines, binary.LittleEndian, b)
}

func (w *Writer) Thing(t slump.EmitThing) error {
	l, err := w.current()
	if err != nil {
		return err
	}
	b := binThing{}
	for _, f := range []struct {
		dst *int16
		n   int
	}{{&b.X, t.X}, {&b.Y, t.Y}, {&b.Angle, t.Angle}, {&b.Type, t.Type}, {&b.Options, t.Options}} {
		if *f.dst, err = toInt16(f.n); err != nil {
			return errors.Wrapf(err, "thing %d", l.numThings)
		}
	}
	l.numThings++
	return binary.Write(&l.things, binary.LittleEndian, b)
}

// EndLevel queues the map marker and the five geometry lumps. Node building
// is left to an external tool.
func (w *Writer) EndLevel() error {
	l, err := w.current()
	if err != nil {
		return err
	}
	w.lumps = append(w.lumps,
		lump{name: l.name},
		lump{"THINGS", l.things.Bytes()},
		lump{"LINEDEFS", l.lines.Bytes()},
		lump{"SIDEDEFS", l.sides.Bytes()},
		lump{"VERTEXES", l.vertexes.Bytes()},
		lump{"SECTORS", l.sectors.Bytes()},
	)
	logger.WithFields(logrus.Fields{
		"level":    l.name,
		"things":   l.numThings,
		"linedefs": l.numLines,
		"sidedefs": l.numSides,
		"vertexes": l.numVertexes,
		"sectors":  l.numSectors,
	}).Debug("Queued level")
	w.level = nil
	return nil
}

// AddLump queues an arbitrary lump, such as a MAPINFO or a text note.
func (w *Writer) AddLump(name string, data []byte) error {
	if w.level != nil {
		return errors.Errorf("level %s still open", w.level.name)
	}
	if _, err := toString8(name); err != nil {
		return err
	}
	w.lumps = append(w.lumps, lump{strings.ToUpper(name), data})
	return nil
}

// Close writes the header, the lump data and the directory.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	if w.level != nil {
		return errors.Errorf("level %s still open", w.level.name)
	}
	w.closed = true

	headerSize := binary.Size(binHeader{})
	size := 0
	for _, l := range w.lumps {
		size += len(l.data)
	}
	header := binHeader{
		NumLumps:     int32(len(w.lumps)),
		InfoTableOfs: int32(headerSize + size),
	}
	copy(header.Magic[:], "PWAD")
	if err := binary.Write(w.out, binary.LittleEndian, header); err != nil {
		return errors.Wrap(err, "write header")
	}

	infos := make([]binLumpInfo, len(w.lumps))
	pos := headerSize
	for i, l := range w.lumps {
		if _, err := w.out.Write(l.data); err != nil {
			return errors.Wrapf(err, "write lump %s", l.name)
		}
		name, _ := toString8(l.name)
		infos[i] = binLumpInfo{Filepos: int32(pos), Size: int32(len(l.data)), Name: name}
		pos += len(l.data)
	}
	if err := binary.Write(w.out, binary.LittleEndian, infos); err != nil {
		return errors.Wrap(err, "write directory")
	}
	logger.WithField("lumps", len(w.lumps)).Debug("Wrote PWAD")
	return nil
}

// toString8 pads name with zeros. "-" is the conventional empty texture.
func toString8(name string) (String8, error) {
	var s String8
	if len(name) > len(s) {
		return s, errors.Errorf("name %q longer than %d characters", name, len(s))
	}
	copy(s[:], strings.ToUpper(name))
	return s, nil
}

func toInt16[T constraints.Integer](n T) (int16, error) {
	if int64(n) < minCoord || int64(n) > maxCoord {
		return 0, errors.Errorf("%d out of range", n)
	}
	return int16(n), nil
}
