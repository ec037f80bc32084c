// Package wad reads and writes Doom's data archives also known as WAD files.
// The file format is documented in The Unofficial DOOM Specs:
// http://www.gamers.org/dhs/helpdocs/dmsp1666.html
//
// Only the parts a level generator needs are decoded: the lump directory,
// texture and flat names, and the five map lumps that describe geometry.
package wad

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// WAD is a struct that represents Doom's data archive. The data is organized
// as named lumps.
type WAD struct {
	header       *Header
	file         io.ReadSeeker
	closer       io.Closer
	lumpInfos    []LumpInfo
	lumpNums     map[string]int
	Textures     map[string]*Texture
	TexturesList []*Texture
	Flats        map[string]*Flat
	FlatsList    []*Flat
	levels       map[string]int
}

type binHeader struct {
	Magic        [4]byte
	NumLumps     int32
	InfoTableOfs int32
}

type Header struct {
	Magic        string
	NumLumps     int
	InfoTableOfs int
}

type binLumpInfo struct {
	Filepos int32
	Size    int32
	Name    String8
}

type LumpInfo struct {
	Name    string
	Filepos int
	Size    int
}

type binSide struct {
	XOffset       int16
	YOffset       int16
	UpperTexture  String8
	LowerTexture  String8
	MiddleTexture String8
	SectorNum     int16
}

type Side struct {
	XOffset           int
	YOffset           int
	UpperTextureName  string
	LowerTextureName  string
	MiddleTextureName string
	SectorNum         int
	UpperTexture      *Texture
	LowerTexture      *Texture
	MiddleTexture     *Texture
	Sector            *Sector
}

type binVertex struct {
	X, Y int16
}

type Vertex struct {
	X, Y int
}

type BoundBox struct {
	Top, Bottom, Left, Right int
}

type binSector struct {
	FloorHeight    int16
	CeilingHeight  int16
	FloorTexture   String8
	CeilingTexture String8
	LightLevel     int16
	Type           int16
	TagNum         int16
}

type Sector struct {
	Index              int
	FloorHeight        int
	CeilingHeight      int
	FloorTextureName   string
	CeilingTextureName string
	LightLevel         int
	Type               int
	TagNum             int

	FloorTexture   *Flat
	CeilingTexture *Flat
	Lines          []*Line
	BoundBox       BoundBox // extent of the sector's lines
}

type binTextureHeader struct {
	TextureName String8
	Masked      int32
	Width       int16
	Height      int16
	Unused      int32 // ColumnDirectory
	NumPatches  int16
}

// Texture is a wall texture's directory entry. Patch graphics are not read.
type Texture struct {
	Name          string // Texture name and index into textures map
	Index         int    // Index into TexturesList
	IsMasked      bool
	Width, Height int
	NumPatches    int
}

type Flat struct {
	Name  string
	Index int
}

type binThing struct {
	X       int16
	Y       int16
	Angle   int16
	Type    int16
	Options int16
}

// Thing option flags
const (
	ThingEasy        = 0x01
	ThingMedium      = 0x02
	ThingHard        = 0x04
	ThingAmbush      = 0x08
	ThingMultiplayer = 0x10
)

type Thing struct {
	X, Y            int
	Angle           int // degrees
	Type            int
	Options         int
	Skill1and2      bool
	Skill3          bool
	Skill4and5      bool
	Ambush          bool
	MultiplayerOnly bool
}

// Level is the geometry of one map, with cross references resolved.
type Level struct {
	Name     string
	Things   []Thing
	Lines    []Line
	Sides    []Side
	Vertexes []Vertex
	Sectors  []Sector
}

type String8 [8]byte

// String converts String8 to string
func (s String8) String() string {
	i := bytes.IndexByte(s[:], 0)
	if i == -1 {
		i = len(s)
	}
	return string(s[0:i])
}

// Special lump names
const SkyFlatName = "F_SKY1"

// Map lumps in the order Doom expects them after the map marker.
var mapLumps = []string{"THINGS", "LINEDEFS", "SIDEDEFS", "VERTEXES", "SEGS",
	"SSECTORS", "NODES", "SECTORS", "REJECT", "BLOCKMAP"}

// /////////////////////////////////////
// NewWAD reads WAD metadata to memory. It returns a WAD object that
// can be used to read individual levels. The file stays open until Close.
// /////////////////////////////////////
func NewWAD(filename string) (*WAD, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "open wad")
	}
	wad, err := NewWADReader(file)
	if err != nil {
		file.Close()
		return nil, errors.Wrap(err, filename)
	}
	wad.closer = file
	return wad, nil
}

// NewWADReader reads WAD metadata from r. Both IWADs and PWADs are accepted.
func NewWADReader(r io.ReadSeeker) (*WAD, error) {
	logger.Debug("Start reading WAD")
	wad := &WAD{file: r}

	// Read header
	var binHeader binHeader
	if err := binary.Read(r, binary.LittleEndian, &binHeader); err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	magic := string(binHeader.Magic[:])
	if magic != "IWAD" && magic != "PWAD" {
		return nil, errors.Errorf("bad magic: %q", magic)
	}
	if binHeader.NumLumps < 0 || binHeader.InfoTableOfs < 0 {
		return nil, errors.Errorf("bad header: %d lumps at %d", binHeader.NumLumps, binHeader.InfoTableOfs)
	}
	wad.header = &Header{magic, int(binHeader.NumLumps), int(binHeader.InfoTableOfs)}

	// Read info tables
	if err := wad.readInfoTables(); err != nil {
		return nil, err
	}

	// Read map textures
	textures, texturesList, err := wad.readTextures()
	if err != nil {
		return nil, err
	}
	wad.Textures = textures
	wad.TexturesList = texturesList

	// Read flat names
	flats, flatsList, err := wad.readFlats()
	if err != nil {
		return nil, err
	}
	wad.Flats = flats
	wad.FlatsList = flatsList

	logger.WithFields(logrus.Fields{
		"magic":    magic,
		"lumps":    len(wad.lumpInfos),
		"levels":   len(wad.levels),
		"textures": len(textures),
		"flats":    len(flats),
	}).Debug("Read WAD")
	return wad, nil
}

// Close closes the underlying file if NewWAD opened it.
func (w *WAD) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

// IsIWAD reports whether the archive is a complete game rather than a patch.
func (w *WAD) IsIWAD() bool {
	return w.header.Magic == "IWAD"
}

// TextureSize returns the size of the named wall texture.
func (w *WAD) TextureSize(name string) (width, height int, ok bool) {
	t, ok := w.Textures[strings.ToUpper(name)]
	if !ok {
		return 0, 0, false
	}
	return t.Width, t.Height, true
}

// HasFlat reports whether the named flat exists.
func (w *WAD) HasFlat(name string) bool {
	_, ok := w.Flats[strings.ToUpper(name)]
	return ok
}

func (w *WAD) readInfoTables() error {
	if err := w.seek(int64(w.header.InfoTableOfs)); err != nil {
		return err
	}
	lumpNums := map[string]int{}
	levels := map[string]int{}
	lumpInfos := make([]LumpInfo, w.header.NumLumps)
	for i := 0; i < w.header.NumLumps; i++ {
		var binInfo binLumpInfo
		if err := binary.Read(w.file, binary.LittleEndian, &binInfo); err != nil {
			return errors.Wrapf(err, "read lump info %d", i)
		}
		lumpInfo := LumpInfo{strings.ToUpper(binInfo.Name.String()), int(binInfo.Filepos), int(binInfo.Size)}
		if lumpInfo.Name == "THINGS" && i > 0 {
			lumpNum := i - 1
			info := lumpInfos[lumpNum]
			levels[info.Name] = lumpNum
		}
		if _, seen := lumpNums[lumpInfo.Name]; !seen {
			lumpNums[lumpInfo.Name] = i
		}
		lumpInfos[i] = lumpInfo
	}
	w.levels = levels
	w.lumpNums = lumpNums
	w.lumpInfos = lumpInfos
	return nil
}

func (w *WAD) readTextures() (map[string]*Texture, []*Texture, error) {
	textures := make(map[string]*Texture)
	texturesList := make([]*Texture, 0)
	for i := 1; i < 10; i++ {

		name := fmt.Sprintf("TEXTURE%v", i)

		lumpNum, ok := w.lumpNums[name]
		if !ok {
			continue
		}
		lumpInfo := w.lumpInfos[lumpNum]
		if err := w.seek(int64(lumpInfo.Filepos)); err != nil {
			return nil, nil, err
		}
		logger.WithField("lump", name).Debug("Loading textures")

		// Read header
		var count uint32
		if err := binary.Read(w.file, binary.LittleEndian, &count); err != nil {
			return nil, nil, errors.Wrap(err, name)
		}
		if int(count)*4 > lumpInfo.Size {
			return nil, nil, errors.Errorf("%s: %d textures do not fit in %d bytes", name, count, lumpInfo.Size)
		}
		offsets := make([]int32, count)

		// Read offsets
		if err := binary.Read(w.file, binary.LittleEndian, offsets); err != nil {
			return nil, nil, errors.Wrap(err, name)
		}

		// For each offset...
		for _, offset := range offsets {
			if err := w.seek(int64(lumpInfo.Filepos) + int64(offset)); err != nil {
				return nil, nil, err
			}

			// Read header
			var binHeader binTextureHeader
			if err := binary.Read(w.file, binary.LittleEndian, &binHeader); err != nil {
				return nil, nil, errors.Wrap(err, name)
			}

			texture := &Texture{
				Name:       strings.ToUpper(binHeader.TextureName.String()),
				IsMasked:   binHeader.Masked != 0,
				Width:      int(binHeader.Width),
				Height:     int(binHeader.Height),
				NumPatches: int(binHeader.NumPatches),
			}

			// Earlier lumps win, as in the game
			if _, ok := textures[texture.Name]; ok {
				continue
			}
			texture.Index = len(texturesList)
			textures[texture.Name] = texture
			texturesList = append(texturesList, texture)
		}
	}
	logger.Debugf("Loaded %v textures", len(textures))

	return textures, texturesList, nil
}

// readFlats collects the flat names between the F_START and F_END markers.
// PWADs often use FF_START and FF_END instead, or carry no flats at all.
func (w *WAD) readFlats() (map[string]*Flat, []*Flat, error) {
	flats := make(map[string]*Flat)
	flatsList := make([]*Flat, 0)
	startLump, ok := w.lumpNums["F_START"]
	if !ok {
		startLump, ok = w.lumpNums["FF_START"]
	}
	if !ok {
		if w.IsIWAD() {
			return nil, nil, errors.New("F_START not found")
		}
		return flats, flatsList, nil
	}
	endLump := -1
	for i := startLump + 1; i < len(w.lumpInfos); i++ {
		if n := w.lumpInfos[i].Name; n == "F_END" || n == "FF_END" {
			endLump = i
			break
		}
	}
	if endLump < 0 {
		return nil, nil, errors.New("F_END not found")
	}

	// For each flat lump
	for i := startLump; i < endLump; i++ {
		lumpInfo := w.lumpInfos[i]

		// Skip marker lumps
		if lumpInfo.Size == 0 {
			continue
		}
		if _, ok := flats[lumpInfo.Name]; ok {
			continue
		}
		flat := &Flat{Name: lumpInfo.Name, Index: len(flatsList)}
		flats[lumpInfo.Name] = flat
		flatsList = append(flatsList, flat)
	}
	logger.Debugf("Loaded %v flats", len(flats))
	return flats, flatsList, nil
}

func (w *WAD) LevelNames() []string {
	result := make([]string, 0, len(w.levels))
	for name := range w.levels {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// ReadLevel reads level data from WAD archive and returns a Level struct.
// Node builder output is skipped; a missing geometry lump is an error.
func (w *WAD) ReadLevel(name string) (*Level, error) {
	levelIdx, ok := w.levels[name]
	if !ok {
		return nil, errors.Errorf("level %s not found", name)
	}
	log := logger.WithField("level", name)
	log.Debug("Reading level")

	level := Level{Name: name}
	seen := map[string]bool{}
	for i := levelIdx + 1; i < len(w.lumpInfos) && i <= levelIdx+len(mapLumps); i++ {
		lumpInfo := w.lumpInfos[i]
		if !isMapLump(lumpInfo.Name) {
			break
		}
		if err := w.seek(int64(lumpInfo.Filepos)); err != nil {
			return nil, err
		}
		var err error
		switch lumpInfo.Name {
		case "THINGS":
			level.Things, err = w.readThings(&lumpInfo)
		case "SIDEDEFS":
			level.Sides, err = w.readSides(&lumpInfo)
		case "LINEDEFS":
			level.Lines, err = w.readLines(&lumpInfo)
		case "VERTEXES":
			level.Vertexes, err = w.readVertexes(&lumpInfo)
		case "SECTORS":
			level.Sectors, err = w.readSectors(&lumpInfo)
		default:
			log.WithField("lump", lumpInfo.Name).Debug("Skipping lump")
		}
		if err != nil {
			return nil, errors.Wrapf(err, "%s %s", name, lumpInfo.Name)
		}
		seen[lumpInfo.Name] = true
	}
	for _, l := range []string{"THINGS", "LINEDEFS", "SIDEDEFS", "VERTEXES", "SECTORS"} {
		if !seen[l] {
			return nil, errors.Errorf("%s: missing %s lump", name, l)
		}
	}

	// Set references
	if err := w.setReferences(&level); err != nil {
		return nil, errors.Wrap(err, name)
	}

	return &level, nil
}

func isMapLump(name string) bool {
	for _, l := range mapLumps {
		if l == name {
			return true
		}
	}
	return false
}

// setReferences adds pointers to all level assets and checks every index
func (w *WAD) setReferences(l *Level) error {
	// Sides
	for i := range l.Sides {
		s := &l.Sides[i]
		if s.SectorNum < 0 || s.SectorNum >= len(l.Sectors) {
			return errors.Errorf("sidedef %d: bad sector %d", i, s.SectorNum)
		}
		s.Sector = &l.Sectors[s.SectorNum]
	}

	for i := range l.Sectors {
		l.Sectors[i].BoundBox = newBBox()
	}

	// Lines - dependent on Sides
	for i := range l.Lines {
		li := &l.Lines[i] // Point to element
		if li.V1Num < 0 || li.V1Num >= len(l.Vertexes) || li.V2Num < 0 || li.V2Num >= len(l.Vertexes) {
			return errors.Errorf("linedef %d: bad vertex", i)
		}
		li.V1 = l.Vertexes[li.V1Num]
		li.V2 = l.Vertexes[li.V2Num]
		li.DX = li.V2.X - li.V1.X
		li.DY = li.V2.Y - li.V1.Y
		if li.SideRNum < 0 || li.SideRNum >= len(l.Sides) {
			return errors.Errorf("linedef %d: bad right sidedef %d", i, li.SideRNum)
		}
		li.SideR = &l.Sides[li.SideRNum]
		li.FrontSector = li.SideR.Sector
		if li.SideLNum >= len(l.Sides) {
			return errors.Errorf("linedef %d: bad left sidedef %d", i, li.SideLNum)
		}
		if li.SideLNum >= 0 { // -1 means no Side
			li.SideL = &l.Sides[li.SideLNum]
			li.BackSector = li.SideL.Sector
		}

		// Point to tagged sectors
		if li.SectorTagNum != 0 {
			for j := range l.Sectors {
				if l.Sectors[j].TagNum == li.SectorTagNum {
					li.TaggedSectors = append(li.TaggedSectors, &l.Sectors[j])
				}
			}
		}

		// Set bounding box
		li.BoundingBox = newBBox()
		li.BoundingBox.add(li.V1)
		li.BoundingBox.add(li.V2)

		for _, s := range []*Sector{li.FrontSector, li.BackSector} {
			if s == nil {
				continue
			}
			s.Lines = append(s.Lines, li)
			s.BoundBox.add(li.V1)
			s.BoundBox.add(li.V2)
		}
	}

	return nil
}

func newBBox() BoundBox {
	return BoundBox{
		Left:   maxCoord,
		Right:  minCoord,
		Bottom: maxCoord,
		Top:    minCoord,
	}
}

const (
	minCoord = -1 << 15
	maxCoord = 1<<15 - 1
)

func (b *BoundBox) add(v Vertex) {
	b.Left = min(b.Left, v.X)
	b.Right = max(b.Right, v.X)
	b.Bottom = min(b.Bottom, v.Y)
	b.Top = max(b.Top, v.Y)
}

// Empty reports whether nothing has been added to b.
func (b BoundBox) Empty() bool {
	return b.Left > b.Right
}

func (w *WAD) readThings(lumpInfo *LumpInfo) ([]Thing, error) {
	// Read things lump
	count := lumpInfo.Size / binary.Size(binThing{})
	binThings := make([]binThing, count)
	things := make([]Thing, count)
	if err := binary.Read(w.file, binary.LittleEndian, binThings); err != nil {
		return nil, err
	}

	// Translate to canonical
	for i, t := range binThings {
		things[i] = Thing{
			X:               int(t.X),
			Y:               int(t.Y),
			Angle:           int(t.Angle),
			Type:            int(t.Type),
			Options:         int(t.Options),
			Skill1and2:      t.Options&ThingEasy != 0,
			Skill3:          t.Options&ThingMedium != 0,
			Skill4and5:      t.Options&ThingHard != 0,
			Ambush:          t.Options&ThingAmbush != 0,
			MultiplayerOnly: t.Options&ThingMultiplayer != 0,
		}
	}
	logger.Debugf("Read %v things", len(things))
	return things, nil
}

func (w *WAD) readLines(lumpInfo *LumpInfo) ([]Line, error) {
	// Read lump
	count := lumpInfo.Size / binary.Size(binLine{})
	binLines := make([]binLine, count)
	lines := make([]Line, count)
	if err := binary.Read(w.file, binary.LittleEndian, binLines); err != nil {
		return nil, err
	}

	// Translate to canonical
	for i, line := range binLines {
		lines[i] = newLine(line)
	}

	logger.Debugf("Read %v lines", len(lines))

	return lines, nil
}

func (w *WAD) readSides(lumpInfo *LumpInfo) ([]Side, error) {
	// Read lump
	count := lumpInfo.Size / binary.Size(binSide{})
	binSides := make([]binSide, count)
	sides := make([]Side, count)
	if err := binary.Read(w.file, binary.LittleEndian, binSides); err != nil {
		return nil, err
	}

	// Translate to canonical
	for i, s := range binSides {
		sides[i] = Side{
			XOffset:           int(s.XOffset),
			YOffset:           int(s.YOffset),
			UpperTextureName:  s.UpperTexture.String(),
			MiddleTextureName: s.MiddleTexture.String(),
			LowerTextureName:  s.LowerTexture.String(),
			SectorNum:         int(s.SectorNum),
		}
		sides[i].UpperTexture = w.Textures[strings.ToUpper(sides[i].UpperTextureName)]
		sides[i].MiddleTexture = w.Textures[strings.ToUpper(sides[i].MiddleTextureName)]
		sides[i].LowerTexture = w.Textures[strings.ToUpper(sides[i].LowerTextureName)]
	}

	logger.Debugf("Read %v sides", len(sides))
	return sides, nil
}

func (w *WAD) readVertexes(lumpInfo *LumpInfo) ([]Vertex, error) {
	// Read lump
	count := lumpInfo.Size / binary.Size(binVertex{})
	binVertexes := make([]binVertex, count)
	vertexes := make([]Vertex, count)
	if err := binary.Read(w.file, binary.LittleEndian, binVertexes); err != nil {
		return nil, err
	}

	// Translate to canonical
	for i, v := range binVertexes {
		vertexes[i] = Vertex{int(v.X), int(v.Y)}
	}
	logger.Debugf("Read %v vertexes", len(vertexes))
	return vertexes, nil
}

func (w *WAD) readSectors(lumpInfo *LumpInfo) ([]Sector, error) {
	// Read lump
	count := lumpInfo.Size / binary.Size(binSector{})
	binSectors := make([]binSector, count)
	sectors := make([]Sector, count)
	if err := binary.Read(w.file, binary.LittleEndian, binSectors); err != nil {
		return nil, err
	}

	// Translate to canonical
	for i, s := range binSectors {
		sectors[i] = Sector{
			Index:              i,
			FloorHeight:        int(s.FloorHeight),
			CeilingHeight:      int(s.CeilingHeight),
			FloorTextureName:   s.FloorTexture.String(),
			CeilingTextureName: s.CeilingTexture.String(),
			LightLevel:         int(s.LightLevel),
			Type:               int(s.Type),
			TagNum:             int(s.TagNum),
		}
		sectors[i].FloorTexture = w.Flats[strings.ToUpper(sectors[i].FloorTextureName)]
		sectors[i].CeilingTexture = w.Flats[strings.ToUpper(sectors[i].CeilingTextureName)]
	}
	logger.Debugf("Read %v sectors", len(sectors))

	return sectors, nil
}

// seek
func (w *WAD) seek(offset int64) error {
	off, err := w.file.Seek(offset, io.SeekStart)
	if err != nil {
		return errors.Wrap(err, "seek")
	}
	if off != offset {
		return errors.Errorf("seek to %d landed at %d", offset, off)
	}
	return nil
}

// ReadLump returns the raw contents of the first lump called name.
func (w *WAD) ReadLump(name string) ([]byte, error) {
	lumpNum, ok := w.lumpNums[strings.ToUpper(name)]
	if !ok {
		return nil, errors.Errorf("lump %s not found", name)
	}
	lumpInfo := w.lumpInfos[lumpNum]
	if err := w.seek(int64(lumpInfo.Filepos)); err != nil {
		return nil, err
	}
	lump := make([]byte, lumpInfo.Size)
	if _, err := io.ReadFull(w.file, lump); err != nil {
		return nil, errors.Wrapf(err, "truncated lump %s", name)
	}
	return lump, nil
}
