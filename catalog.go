package slump

// GameMask selects the game variants (IWADs) a catalog entry may be used with.
// A zero mask means every variant.
type GameMask uint8

const (
	Doom0 GameMask = 1 << iota // shareware
	Doom1                      // registered / Ultimate
	Doom2
	DoomC // Final Doom: Plutonia
	DoomI // Final Doom: TNT
)

func (m GameMask) allows(game GameMask) bool {
	return m == 0 || m&game != 0
}

// Theme is a named visual grouping. Its position in the catalog is its bit in
// the compatibility masks.
type Theme struct {
	Name   string
	Secret bool // only used on secret levels
	bit    uint32
}

type TextureProps uint32

const (
	TexWall TextureProps = 1 << iota
	TexSwitch
	TexLift
	TexSupport
	TexJamb
	TexStep
	TexGrating
	TexPlaque
	TexVTiles // tiles vertically, safe for tall walls
	TexHalfPlaque
	TexLight
	TexExitSwitch
	TexDoor
	TexLocked
	TexOutside
	TexRed
	TexBlue
	TexYellow
	TexGate
)

type Texture struct {
	Name          string
	Props         TextureProps
	Width, Height int
	YBias         int
	Core          uint32 // themes this texture is a core wall of
	Compatible    uint32
	Games         GameMask
	Switch        *Texture // the "on" state of a switch texture
	Known         bool     // present in the host's texture directory
}

func (t *Texture) Is(p TextureProps) bool { return t.Props&p == p }

type FlatProps uint16

const (
	FlatFloor FlatProps = 1 << iota
	FlatCeiling
	FlatLight
	FlatNukage
	FlatSky
	FlatGate
	FlatDoor
	FlatRed
	FlatBlue
	FlatYellow
)

type Flat struct {
	Name       string
	Props      FlatProps
	Core       uint32
	Compatible uint32
	Games      GameMask
	Known      bool
}

func (f *Flat) Is(p FlatProps) bool { return f.Props&p == p }

// Construct is a free-standing decoration: a box with one primary face texture,
// a choice of secondary textures for the other faces, and a top flat.
type Construct struct {
	Family        int
	Height        int
	Width, Depth  int
	Top           *Flat
	Primary       *Texture
	PrimaryOffset int
	Secondary     []*Texture
	Compatible    uint32
	Games         GameMask
}

type GenusProps uint32

const (
	GenusMonster GenusProps = 1 << iota
	GenusPickable
	GenusExplodes
	GenusFlies
	GenusShoots
	GenusBig
	GenusBoss
	GenusSpecial
	GenusLight
	GenusAmmo
	GenusHealth
	GenusArmor
	GenusWeapon
	GenusKey
	GenusObstacle
	GenusStart
	GenusPowerup
)

// Genus is one species of thing: a monster, a pickup, a decoration or a
// marker.
type Genus struct {
	ID            int
	Name          string
	Props         GenusProps
	Width, Height int
	Core          uint32
	Compatible    uint32
	Games         GameMask

	// Per tier (easy, medium, hard) estimates used by the economy model
	AmmoToKill [3]float64
	Damage     [3]float64

	AmmoProvides float64 // dropped by a monster or given by a pickup
	Health       float64
	Armor        float64
	Gives        Weapons // weapons granted on pickup or drop
	MinMap       int     // earliest level number the genus is proper for
}

func (g *Genus) Is(p GenusProps) bool { return g.Props&p == p }

// Catalog holds the content configuration. It is read-only once loaded and
// may be shared by any number of generations. Entries keep their insertion
// order; random selection depends on it.
type Catalog struct {
	Themes     []*Theme
	Constructs []*Construct

	textures   []*Texture
	flats      []*Flat
	genera     []*Genus
	texByName  map[string]*Texture
	flatByName map[string]*Flat
	genusByID  map[int]*Genus
}

func NewCatalog() *Catalog {
	return &Catalog{
		texByName:  make(map[string]*Texture),
		flatByName: make(map[string]*Flat),
		genusByID:  make(map[int]*Genus),
	}
}

func (c *Catalog) Textures() []*Texture { return c.textures }
func (c *Catalog) Flats() []*Flat       { return c.flats }
func (c *Catalog) Genera() []*Genus     { return c.genera }

// FindTexture returns the texture called name, creating it if absent.
func (c *Catalog) FindTexture(name string) *Texture {
	if t, ok := c.texByName[name]; ok {
		return t
	}
	t := &Texture{Name: name, Width: 64, Height: 128}
	c.textures = append(c.textures, t)
	c.texByName[name] = t
	return t
}

// LookupTexture is FindTexture without the implicit creation.
func (c *Catalog) LookupTexture(name string) (*Texture, bool) {
	t, ok := c.texByName[name]
	return t, ok
}

func (c *Catalog) FindFlat(name string) *Flat {
	if f, ok := c.flatByName[name]; ok {
		return f
	}
	f := &Flat{Name: name}
	c.flats = append(c.flats, f)
	c.flatByName[name] = f
	return f
}

func (c *Catalog) LookupFlat(name string) (*Flat, bool) {
	f, ok := c.flatByName[name]
	return f, ok
}

func (c *Catalog) FindGenus(id int) *Genus {
	if g, ok := c.genusByID[id]; ok {
		return g
	}
	g := &Genus{ID: id, Width: 20, Height: 16}
	c.genera = append(c.genera, g)
	c.genusByID[id] = g
	return g
}

func (c *Catalog) LookupGenus(id int) (*Genus, bool) {
	g, ok := c.genusByID[id]
	return g, ok
}

// FindTheme returns the theme with the given name.
func (c *Catalog) FindTheme(name string) (int, bool) {
	for i, t := range c.Themes {
		if t.Name == name {
			return i, true
		}
	}
	return -1, false
}

func (c *Catalog) addTheme(name string) *Theme {
	t := &Theme{Name: name, bit: 1 << uint(len(c.Themes))}
	c.Themes = append(c.Themes, t)
	return t
}

// TextureDirectory is what the catalog needs to know about the host's game
// data: which textures and flats really exist, and how big the textures are.
type TextureDirectory interface {
	TextureSize(name string) (width, height int, ok bool)
	HasFlat(name string) bool
}

// ApplyWAD updates texture sizes from dir and marks which entries it knows.
// It returns the names of catalog entries dir lacks.
func (c *Catalog) ApplyWAD(dir TextureDirectory) []string {
	var missing []string
	for _, t := range c.textures {
		w, h, ok := dir.TextureSize(t.Name)
		if !ok {
			missing = append(missing, t.Name)
			continue
		}
		t.Width, t.Height, t.Known = w, h, true
	}
	for _, f := range c.flats {
		if f.Known = dir.HasFlat(f.Name); !f.Known {
			missing = append(missing, f.Name)
		}
	}
	for _, name := range missing {
		logger.WithField("name", name).Warn("Catalog entry not in texture directory")
	}
	return missing
}
