package slump

// Catalog selection. Each picker counts the entries that match and then
// rescans for the chosen one, so results depend only on insertion order and
// the random stream.

func pickNth[T any](g *Generator, items []T, ok func(T) bool) (T, bool) {
	n := 0
	for _, it := range items {
		if ok(it) {
			n++
		}
	}
	var zero T
	if n == 0 {
		return zero, false
	}
	k := g.roll(n)
	for _, it := range items {
		if ok(it) {
			if k == 0 {
				return it, true
			}
			k--
		}
	}
	return zero, false
}

func (g *Generator) themeBit(theme int) uint32 {
	return g.cat.Themes[theme].bit
}

// randomTexture picks a texture with all of props for theme. Core textures
// are preferred when core is set.
func (g *Generator) randomTexture(theme int, props TextureProps, core bool) *Texture {
	bit := g.themeBit(theme)
	usable := func(t *Texture) bool {
		return t.Props&props == props && t.Games.allows(g.cfg.Game)
	}
	if core {
		if t, ok := pickNth(g, g.cat.textures, func(t *Texture) bool { return usable(t) && t.Core&bit != 0 }); ok {
			return t
		}
	}
	if t, ok := pickNth(g, g.cat.textures, func(t *Texture) bool { return usable(t) && t.Compatible&bit != 0 }); ok {
		return t
	}
	return nil
}

// randomTextureOr is randomTexture with a fallback.
func (g *Generator) randomTextureOr(theme int, props TextureProps, fallback *Texture) *Texture {
	if t := g.randomTexture(theme, props, false); t != nil {
		return t
	}
	return fallback
}

// randomWall0 picks a wall texture for theme, or the error texture when the
// theme has none.
func (g *Generator) randomWall0(theme int) *Texture {
	if t := g.randomTexture(theme, TexWall, true); t != nil {
		return t
	}
	return g.errorTexture
}

func (g *Generator) randomFlat(theme int, props FlatProps, core bool) *Flat {
	bit := g.themeBit(theme)
	usable := func(f *Flat) bool {
		return f.Props&props == props && f.Games.allows(g.cfg.Game)
	}
	if core {
		if f, ok := pickNth(g, g.cat.flats, func(f *Flat) bool { return usable(f) && f.Core&bit != 0 }); ok {
			return f
		}
	}
	if f, ok := pickNth(g, g.cat.flats, func(f *Flat) bool { return usable(f) && f.Compatible&bit != 0 }); ok {
		return f
	}
	return nil
}

func (g *Generator) randomFlat0(theme int, props FlatProps) *Flat {
	if f := g.randomFlat(theme, props, true); f != nil {
		return f
	}
	return g.errorFlat
}

// randomFlatOr picks any flat with props, themed or not, before falling back.
func (g *Generator) randomFlatOr(theme int, props FlatProps, fallback *Flat) *Flat {
	if f := g.randomFlat(theme, props, false); f != nil {
		return f
	}
	if f, ok := pickNth(g, g.cat.flats, func(f *Flat) bool {
		return f.Props&props == props && f.Games.allows(g.cfg.Game)
	}); ok {
		return f
	}
	return fallback
}

// genusFits reports whether gen may appear in theme in this game. Genera with
// no theme compatibility fit everywhere.
func (g *Generator) genusFits(gen *Genus, theme int) bool {
	if !gen.Games.allows(g.cfg.Game) {
		return false
	}
	return gen.Compatible == 0 || gen.Compatible&g.themeBit(theme) != 0
}

// randomThing0 picks a genus with all of props that fits theme and passes ok.
func (g *Generator) randomThing0(props GenusProps, theme int, ok func(*Genus) bool) *Genus {
	gen, found := pickNth(g, g.cat.genera, func(x *Genus) bool {
		return x.Props&props == props && g.genusFits(x, theme) && (ok == nil || ok(x))
	})
	if !found {
		return nil
	}
	return gen
}

func (g *Generator) randomConstruct(theme int, family int) *Construct {
	bit := g.themeBit(theme)
	c, ok := pickNth(g, g.cat.Constructs, func(c *Construct) bool {
		return c.Compatible&bit != 0 && c.Games.allows(g.cfg.Game) && (family == 0 || c.Family == family)
	})
	if !ok {
		return nil
	}
	return c
}

// randomTheme picks a theme. Secret themes are only used for secret levels.
func (g *Generator) randomTheme() int {
	var themes []int
	for i, t := range g.cat.Themes {
		if !t.Secret {
			themes = append(themes, i)
		}
	}
	if len(themes) == 0 {
		return 0
	}
	return themes[g.roll(len(themes))]
}

// secretTheme returns a secret theme usable in this game, if any.
func (g *Generator) secretTheme() (int, bool) {
	for i, th := range g.cat.Themes {
		if !th.Secret {
			continue
		}
		for _, t := range g.cat.textures {
			if t.Is(TexWall) && t.Core&th.bit != 0 && t.Games.allows(g.cfg.Game) {
				return i, true
			}
		}
	}
	return -1, false
}
