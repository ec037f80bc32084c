package slump

import (
	"bytes"
	_ "embed"
	"fmt"
	"math/rand"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

//go:embed default.cfg
var defaultConfig []byte

// DefaultCatalog parses the built-in content configuration.
func DefaultCatalog() (*Catalog, error) {
	return ParseConfig(bytes.NewReader(defaultConfig))
}

// Structural warnings. They are logged and counted in Level.Warnings; the
// level is still usable.
const (
	warnNegativeAmmo      = "ammo went negative"
	warnPlayerDies        = "player dies"
	warnNoSwitchWall      = "no applicable linedef to place a switch on"
	warnSecretUnreachable = "secret level may be unreachable"
	warnFewDMStarts       = "not enough deathmatch starts"
	warnLockFailed        = "could not lock quest"
	warnShortQuest        = "quest closed with too few rooms"
	warnNoArena           = "could not build arena"
	warnNoExit            = "exit placed on the floor"
)

// levelParams are the per-level probabilities and limits rolled when a level
// starts.
type levelParams struct {
	slot        levelSlot
	secretTheme int // forced theme on secret levels, or -1

	pOpenLink    int
	pDoor        int
	pRecess      int
	pTwin        int
	pAlcove      int
	pUseSteps    int
	pNukage      int
	pCoreMonster int

	pWindow     int
	pPatio      int
	pPillar     int
	pConstruct  int
	pLightPanel int
	pAmbush     int
	pPlaque     int
	pSecret     int
	pLightstrip int
	pLamp       int
	pBarrel     int

	maxBars     int
	maxCrushers int
}

// Generator builds levels from a Config and a Catalog. One Generator holds
// the state of one generation at a time and is not safe for concurrent use;
// run separate Generators to build levels in parallel. The Catalog may be
// shared.
type Generator struct {
	cfg *Config
	cat *Catalog

	rng    *rand.Rand
	l      *Level
	haa    *HAA
	quests questStack
	log    logrus.FieldLogger

	errorTexture *Texture
	errorFlat    *Flat
	sky          *Flat
}

func NewGenerator(cfg *Config, cat *Catalog) *Generator {
	g := &Generator{
		cfg: cfg,
		cat: cat,
		log: logger,
	}
	// The catalog may be shared, so unknown error names are not added to it.
	if t, ok := cat.LookupTexture(cfg.ErrorTexture); ok {
		g.errorTexture = t
	} else {
		g.errorTexture = &Texture{Name: cfg.ErrorTexture, Width: 64, Height: 128}
	}
	if f, ok := cat.LookupFlat(cfg.ErrorFlat); ok {
		g.errorFlat = f
	} else {
		g.errorFlat = &Flat{Name: cfg.ErrorFlat}
	}
	for _, f := range cat.flats {
		if f.Is(FlatSky) && f.Games.allows(cfg.Game) {
			g.sky = f
			break
		}
	}
	return g
}

// Generate builds level n of the run, counting from the configured first
// level. The same Config, Catalog and n always give the same level.
func (g *Generator) Generate(n int) (lev *Level, err error) {
	slot := g.start(n)

	defer func() {
		if r := recover(); r != nil {
			fe, ok := r.(*FatalError)
			if !ok {
				panic(r)
			}
			lev, err = nil, errors.Wrapf(fe, "generating %s", slot.name())
		}
	}()

	g.rollParams(slot)
	g.makeLevel()
	g.log.WithFields(logrus.Fields{
		"rooms":    len(g.l.Rooms),
		"sectors":  len(g.l.Sectors()),
		"linedefs": len(g.l.Linedefs()),
		"things":   len(g.l.Things()),
	}).Info("Made level")
	return g.l, nil
}

// start resets the per-level state for level n of the run.
func (g *Generator) start(n int) levelSlot {
	slot := g.cfg.slot(n)
	seed := deriveSeed(g.cfg.Seed, n)
	g.rng = newStream(seed)
	g.l = newLevel(slot.name(), seed)
	g.haa = newHAA()
	g.quests = questStack{}
	g.log = logger.WithFields(logrus.Fields{"level": slot.name(), "seed": seed})
	return slot
}

// GenerateAll builds every level of the run in order.
func (g *Generator) GenerateAll() ([]*Level, error) {
	levels := make([]*Level, 0, g.cfg.Levels)
	for n := 0; n < g.cfg.Levels; n++ {
		lev, err := g.Generate(n)
		if err != nil {
			return nil, err
		}
		levels = append(levels, lev)
	}
	return levels, nil
}

func (g *Generator) rollParams(slot levelSlot) {
	p := &g.l.params
	p.slot = slot
	p.secretTheme = -1
	if slot.isSecret() {
		if t, ok := g.secretTheme(); ok {
			p.secretTheme = t
		}
	}
	p.pOpenLink = 10 + g.roll(30)
	p.pDoor = 40 + g.roll(50)
	p.pRecess = 20 + g.roll(60)
	p.pTwin = 5 + g.roll(20)
	p.pAlcove = 5 + g.roll(25)
	p.pUseSteps = g.cfg.PUseSteps
	p.pNukage = 2 + g.roll(12)
	p.pCoreMonster = 10 + g.roll(30)

	p.pWindow = 10 + g.roll(30)
	p.pPatio = 10 + g.roll(20)
	p.pPillar = 10 + g.roll(30)
	p.pConstruct = 10 + g.roll(30)
	p.pLightPanel = 10 + g.roll(40)
	p.pAmbush = 10 + g.roll(25)
	p.pPlaque = 5 + g.roll(20)
	p.pSecret = 30 + g.roll(40)
	p.pLightstrip = 5 + g.roll(20)
	p.pLamp = 20 + g.roll(40)
	p.pBarrel = 5 + g.roll(20)

	p.maxBars = 6 + g.roll(6)
	p.maxCrushers = 2
	if g.cfg.BoringRooms {
		p.pWindow, p.pPatio, p.pPillar, p.pConstruct = 0, 0, 0, 0
		p.pLightPanel, p.pPlaque, p.pLightstrip = 0, 0, 0
	}
	g.l.secretExit.want = (slot.hasSecretExit() || g.cfg.ForceSecret) && !g.cfg.ModEnabled("nosecret")
}

// warn records a structural warning with optional key/value context.
func (g *Generator) warn(kind string, kv ...any) {
	g.l.warn(kind)
	f := logrus.Fields{"rooms": len(g.l.Rooms)}
	for i := 0; i+1 < len(kv); i += 2 {
		f[fmt.Sprint(kv[i])] = kv[i+1]
	}
	g.log.WithFields(f).Warn(kind)
}
