package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/stuarthighley/slump"
	"github.com/stuarthighley/slump/wad"
)

type options struct {
	configPath string
	paramsPath string
	iwadPath   string
	outPath    string
	seed       string
	levels     string
	game       string
	mods       string
	verify     bool
	verbose    bool
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "content config file (default: built in)")
	flag.StringVar(&o.paramsPath, "params", "", "YAML parameter file")
	flag.StringVar(&o.iwadPath, "iwad", "", "IWAD to check textures and flats against")
	flag.StringVar(&o.outPath, "o", "slump.wad", "output PWAD")
	flag.StringVar(&o.seed, "seed", "", "random seed")
	flag.StringVar(&o.levels, "levels", "", "number of levels")
	flag.StringVar(&o.game, "game", "", "doom0, doom1, doom2, doomc or doomi")
	flag.StringVar(&o.mods, "mods", "", "comma separated mods, e.g. nogates,nosecret")
	flag.BoolVar(&o.verify, "verify", false, "check overlap, reachability and bounding boxes")
	flag.BoolVar(&o.verbose, "v", false, "verbose logging")
	flag.Parse()

	if o.verbose {
		log.SetLevel(log.DebugLevel)
	}
	slump.SetLogger(log.StandardLogger())
	wad.SetLogger(log.StandardLogger())

	if err := run(o); err != nil {
		log.Errorln(err)
		var fe *slump.FatalError
		if errors.As(errors.Cause(err), &fe) {
			os.Exit(int(fe.Code))
		}
		os.Exit(1)
	}
}

func run(o options) error {
	params := slump.NewParamMap()
	if o.paramsPath != "" {
		p, err := slump.LoadParams(o.paramsPath)
		if err != nil {
			return err
		}
		params = p
	}
	for name, v := range map[string]string{"seed": o.seed, "levels": o.levels, "game": o.game, "config": o.configPath} {
		if v != "" {
			params.Set(name, v)
		}
	}
	for _, m := range strings.Split(o.mods, ",") {
		if m = strings.TrimSpace(m); m != "" {
			params.Enable(m)
		}
	}

	cfg, err := slump.NewConfig(params)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(params.Get("config"))
	if err != nil {
		return err
	}
	if o.iwadPath != "" {
		if err := applyIWAD(cat, o.iwadPath); err != nil {
			return err
		}
	}

	levels, err := slump.NewGenerator(cfg, cat).GenerateAll()
	if err != nil {
		return err
	}

	f, err := os.Create(o.outPath)
	if err != nil {
		return errors.Wrap(err, "creating output")
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	w := wad.NewWriter(bw)
	for _, l := range levels {
		if o.verify {
			if err := verify(l); err != nil {
				return errors.Wrapf(err, "level %s", l.Name)
			}
		}
		if err := l.Emit(w); err != nil {
			return err
		}
		report(l)
	}
	if err := w.AddLump("SLUMPSD", []byte(strconv.FormatInt(cfg.Seed, 10))); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "writing output")
	}
	log.WithFields(log.Fields{"file": o.outPath, "levels": len(levels)}).Info("Wrote PWAD")
	return nil
}

func loadCatalog(path string) (*slump.Catalog, error) {
	if path == "" {
		return slump.DefaultCatalog()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening content config")
	}
	defer f.Close()
	cat, err := slump.ParseConfig(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return cat, nil
}

func applyIWAD(cat *slump.Catalog, path string) error {
	iwad, err := wad.NewWAD(path)
	if err != nil {
		return err
	}
	defer iwad.Close()
	missing := cat.ApplyWAD(iwad)
	for _, name := range missing {
		log.WithField("name", name).Warn("Not in IWAD")
	}
	return nil
}

func verify(l *slump.Level) error {
	for _, check := range []func() error{l.CheckOverlap, l.CheckReachable, l.CheckBoundingRects} {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func report(l *slump.Level) {
	s := l.Stats()
	fields := log.Fields{
		"level":    l.Name,
		"rooms":    s.Rooms,
		"sectors":  s.Sectors,
		"linedefs": s.Linedefs,
		"things":   s.Things,
		"monsters": s.Monsters,
	}
	for kind, n := range l.Warnings {
		fields[fmt.Sprintf("warn %s", kind)] = n
	}
	log.WithFields(fields).Info("Level done")
}
