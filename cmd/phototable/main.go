// Command phototable shows an ambient photo table in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/phototable"
	"github.com/gogpu/phototable/internal/config"
	"github.com/gogpu/phototable/internal/logging"
	"github.com/gogpu/phototable/internal/source"
	"github.com/gogpu/phototable/internal/termhost"
)

func main() {
	var (
		dirs     = flag.String("dir", "", "image directories, comma separated (default: generated patterns)")
		envFile  = flag.String("env", "", "environment file (default: .env if present)")
		snapshot = flag.String("snapshot", "", "write the last frame to this PNG file on exit")
		seed     = flag.Int64("seed", 0, "placement seed (0: random)")
	)
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "phototable: %v\n", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dir":
			cfg.Dirs = splitList(*dirs)
		case "snapshot":
			cfg.Snapshot = *snapshot
		case "seed":
			cfg.Seed = *seed
		}
	})

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "phototable: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logger, closer, err := logging.Open(cfg.LogFile, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() {
		_ = closer.Close()
	}()
	phototable.SetLogger(logger)

	placeRand, sourceRand := newRands(cfg.Seed)
	src, err := newSource(cfg.Dirs, sourceRand)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseButtonEvents)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	term := termhost.New(screen)
	term.Canvas().OnFinish(cancel)

	table, err := phototable.New(cfg.Table(), src, term.Canvas(), phototable.WithRand(placeRand))
	if err != nil {
		return err
	}

	a := &app{table: table, term: term, screen: screen, quit: cancel}
	table.Post(a.layout)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			table.Post(func() { a.handle(ev) })
		}
	}()

	logger.Info("phototable: running", "dirs", cfg.Dirs, "seed", cfg.Seed)
	if err := table.Run(ctx, func() { term.Draw() }); err != nil {
		return err
	}

	if cfg.Snapshot != "" {
		if err := term.Canvas().SavePNG(cfg.Snapshot); err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
		logger.Info("phototable: snapshot saved", "path", cfg.Snapshot)
	}
	return nil
}

// newRands returns independent generators for placement and the source.
// A zero seed picks a random one.
func newRands(seed int64) (placement, src *rand.Rand) {
	s := uint64(seed)
	if seed == 0 {
		s = rand.Uint64()
	}
	return rand.New(rand.NewPCG(s, 1)), rand.New(rand.NewPCG(s, 2))
}

// newSource builds one directory source per directory, taking turns between
// them. Without directories, or when none has images, it generates patterns.
func newSource(dirs []string, rng *rand.Rand) (phototable.Source, error) {
	var sources []phototable.Source
	for _, dir := range dirs {
		d, err := source.NewDir(rng, dir)
		if errors.Is(err, source.ErrNoImages) {
			phototable.Logger().Warn("phototable: skipping directory", "err", err)
			continue
		}
		if err != nil {
			return nil, err
		}
		sources = append(sources, d)
	}

	switch len(sources) {
	case 0:
		phototable.Logger().Info("phototable: no photos, showing patterns")
		return source.NewPattern(rng), nil
	case 1:
		return sources[0], nil
	default:
		return source.NewMulti(sources...), nil
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
