package slump

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	maxConfigLine = 200
	maxThemes     = 32
)

// tokenize splits a content configuration into its flat token stream. A ';'
// starts a comment that runs to the end of the line.
func tokenize(r io.Reader) ([]string, error) {
	var tokens []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for n := 1; sc.Scan(); n++ {
		line := sc.Bytes()
		if len(line) > maxConfigLine {
			return nil, fatalf(ExitLineTooLong, "config line %d longer than %d bytes", n, maxConfigLine)
		}
		if i := bytes.IndexByte(line, ';'); i >= 0 {
			line = line[:i]
		}
		for _, f := range strings.Fields(string(line)) {
			tokens = append(tokens, f)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	return tokens, nil
}

// ParseConfig reads a content configuration and returns the catalog it
// describes.
func ParseConfig(r io.Reader) (*Catalog, error) {
	tokens, err := tokenize(r)
	if err != nil {
		return nil, err
	}
	start := -1
	for i, t := range tokens {
		if strings.EqualFold(t, "[THEMES]") {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil, fatalf(ExitMissingSection, "no [THEMES] section in config")
	}
	p := &configParser{cat: NewCatalog(), toks: tokens, pos: start}
	if err := p.parse(); err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"themes":   len(p.cat.Themes),
		"textures": len(p.cat.textures),
		"flats":    len(p.cat.flats),
		"genera":   len(p.cat.genera),
	}).Debug("Loaded config")
	return p.cat, nil
}

type configParser struct {
	cat  *Catalog
	toks []string
	pos  int
}

func (p *configParser) done() bool {
	return p.pos >= len(p.toks) || strings.HasPrefix(p.toks[p.pos], "[")
}

func (p *configParser) next() (string, bool) {
	if p.done() {
		return "", false
	}
	t := p.toks[p.pos]
	p.pos++
	return t, true
}

func (p *configParser) peek() string {
	if p.done() {
		return ""
	}
	return p.toks[p.pos]
}

func (p *configParser) arg(prop string) (string, error) {
	t, ok := p.next()
	if !ok {
		return "", fatalf(ExitBadArgument, "missing argument to %q", prop)
	}
	return t, nil
}

func (p *configParser) num(prop string) (int, error) {
	t, err := p.arg(prop)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(t)
	if err != nil {
		return 0, fatalf(ExitBadArgument, "argument to %q is not a number: %q", prop, t)
	}
	return n, nil
}

func (p *configParser) theme(prop string) (uint32, error) {
	t, err := p.arg(prop)
	if err != nil {
		return 0, err
	}
	i, ok := p.cat.FindTheme(t)
	if !ok {
		return 0, fatalf(ExitUnknownTheme, "unknown theme %q", t)
	}
	return p.cat.Themes[i].bit, nil
}

// isRecord reports whether t starts a new record.
func isRecord(t string) bool {
	switch t {
	case "theme", "T", "texture", "t", "flat", "f", "construct", "x", "thing", ".", "hardwired1", "#":
		return true
	}
	return false
}

func (p *configParser) parse() error {
	for !p.done() {
		t, _ := p.next()
		var err error
		switch t {
		case "theme", "T":
			err = p.parseTheme()
		case "texture", "t":
			err = p.parseTexture()
		case "flat", "f":
			err = p.parseFlat()
		case "construct", "x":
			err = p.parseConstruct()
		case "thing", ".":
			err = p.parseThing()
		case "hardwired1", "#":
			addHardwired(p.cat)
		default:
			err = fatalf(ExitUnknownToken, "unknown token %q", t)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *configParser) parseTheme() error {
	name, err := p.arg("theme")
	if err != nil {
		return err
	}
	if len(p.cat.Themes) >= maxThemes {
		return fatalf(ExitBadArgument, "too many themes at %q", name)
	}
	th := p.cat.addTheme(name)
	for !p.done() && !isRecord(p.peek()) {
		t, _ := p.next()
		switch t {
		case "secret", "S":
			th.Secret = true
		default:
			return fatalf(ExitUnknownToken, "unknown theme property %q", t)
		}
	}
	return nil
}

var textureFlags = map[string]TextureProps{
	"wall": TexWall, "w": TexWall,
	"isswitch": TexSwitch, "i": TexSwitch,
	"lift": TexLift, "l": TexLift,
	"support": TexSupport, "u": TexSupport,
	"jamb": TexJamb, "j": TexJamb,
	"step": TexStep, "e": TexStep,
	"grating": TexGrating, "g": TexGrating,
	"plaque": TexPlaque, "p": TexPlaque,
	"vtiles": TexVTiles, "v": TexVTiles,
	"halfplaque": TexHalfPlaque, "h": TexHalfPlaque,
	"light": TexLight, "L": TexLight,
	"exitswitch": TexExitSwitch, "E": TexExitSwitch,
	"door": TexDoor, "d": TexDoor,
	"locked": TexLocked, "k": TexLocked,
	"outside": TexOutside, "o": TexOutside,
	"red": TexRed, "r": TexRed,
	"blue": TexBlue, "b": TexBlue,
	"yellow": TexYellow, "y": TexYellow,
	"gate": TexGate, "a": TexGate,
}

func (p *configParser) parseTexture() error {
	name, err := p.arg("texture")
	if err != nil {
		return err
	}
	tx := p.cat.FindTexture(name)
	for !p.done() && !isRecord(p.peek()) {
		t, _ := p.next()
		if f, ok := textureFlags[t]; ok {
			tx.Props |= f
			continue
		}
		switch t {
		case "size", "z":
			if tx.Width, err = p.num(t); err != nil {
				return err
			}
			if tx.Height, err = p.num(t); err != nil {
				return err
			}
		case "ybias", "Y":
			if tx.YBias, err = p.num(t); err != nil {
				return err
			}
		case "core", "c":
			bit, err := p.theme(t)
			if err != nil {
				return err
			}
			tx.Core |= bit
			tx.Compatible |= bit
		case "comp", "m":
			bit, err := p.theme(t)
			if err != nil {
				return err
			}
			tx.Compatible |= bit
		case "switch", "s":
			on, err := p.arg(t)
			if err != nil {
				return err
			}
			tx.Switch = p.cat.FindTexture(on)
		case "gamemask", "G":
			n, err := p.num(t)
			if err != nil {
				return err
			}
			tx.Games = GameMask(n)
		default:
			return fatalf(ExitUnknownToken, "unknown texture property %q for %s", t, name)
		}
	}
	return nil
}

var flatFlags = map[string]FlatProps{
	"floor": FlatFloor, "F": FlatFloor,
	"ceiling": FlatCeiling, "C": FlatCeiling,
	"light": FlatLight, "L": FlatLight,
	"nukage": FlatNukage, "n": FlatNukage,
	"sky": FlatSky, "K": FlatSky,
	"gate": FlatGate, "a": FlatGate,
	"door": FlatDoor, "d": FlatDoor,
	"red": FlatRed, "r": FlatRed,
	"blue": FlatBlue, "b": FlatBlue,
	"yellow": FlatYellow, "y": FlatYellow,
}

func (p *configParser) parseFlat() error {
	name, err := p.arg("flat")
	if err != nil {
		return err
	}
	fl := p.cat.FindFlat(name)
	for !p.done() && !isRecord(p.peek()) {
		t, _ := p.next()
		if f, ok := flatFlags[t]; ok {
			fl.Props |= f
			continue
		}
		switch t {
		case "core", "c":
			bit, err := p.theme(t)
			if err != nil {
				return err
			}
			fl.Core |= bit
			fl.Compatible |= bit
		case "comp", "m":
			bit, err := p.theme(t)
			if err != nil {
				return err
			}
			fl.Compatible |= bit
		case "gamemask", "G":
			n, err := p.num(t)
			if err != nil {
				return err
			}
			fl.Games = GameMask(n)
		default:
			return fatalf(ExitUnknownToken, "unknown flat property %q for %s", t, name)
		}
	}
	return nil
}

func (p *configParser) parseConstruct() error {
	c := &Construct{Height: 64, Width: 64, Depth: 64}
	var err error
	for !p.done() && !isRecord(p.peek()) {
		t, _ := p.next()
		switch t {
		case "family", "y":
			c.Family, err = p.num(t)
		case "height", "H":
			c.Height, err = p.num(t)
		case "size", "z":
			if c.Width, err = p.num(t); err == nil {
				c.Depth, err = p.num(t)
			}
		case "top", "O":
			var name string
			if name, err = p.arg(t); err == nil {
				c.Top = p.cat.FindFlat(name)
			}
		case "primary", "P":
			var name string
			if name, err = p.arg(t); err == nil {
				c.Primary = p.cat.FindTexture(name)
				// An optional numeric y offset may follow
				if n, nerr := strconv.Atoi(p.peek()); nerr == nil {
					c.PrimaryOffset = n
					p.pos++
				}
			}
		case "secondary", "S":
			var name string
			if name, err = p.arg(t); err == nil {
				c.Secondary = append(c.Secondary, p.cat.FindTexture(name))
			}
		case "comp", "m":
			var bit uint32
			if bit, err = p.theme(t); err == nil {
				c.Compatible |= bit
			}
		case "gamemask", "G":
			var n int
			if n, err = p.num(t); err == nil {
				c.Games = GameMask(n)
			}
		default:
			return fatalf(ExitUnknownToken, "unknown construct property %q", t)
		}
		if err != nil {
			return err
		}
	}
	if c.Primary == nil {
		return fatalf(ExitBadArgument, "construct without a primary texture")
	}
	p.cat.Constructs = append(p.cat.Constructs, c)
	return nil
}

func (p *configParser) parseThing() error {
	id, err := p.num("thing")
	if err != nil {
		return err
	}
	g := p.cat.FindGenus(id)
	for !p.done() && !isRecord(p.peek()) {
		t, _ := p.next()
		switch t {
		case "core", "c":
			bit, err := p.theme(t)
			if err != nil {
				return err
			}
			g.Core |= bit
			g.Compatible |= bit
		case "comp", "m":
			bit, err := p.theme(t)
			if err != nil {
				return err
			}
			g.Compatible |= bit
		case "gamemask", "G":
			n, err := p.num(t)
			if err != nil {
				return err
			}
			g.Games = GameMask(n)
		default:
			return fatalf(ExitUnknownToken, "unknown thing property %q for %d", t, id)
		}
	}
	return nil
}
