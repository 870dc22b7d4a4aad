package main

import (
	"cascade/client"
	"cascade/terminal"
	"cascade/tetris"
	"context"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	configPath := flag.String("config", "", "YAML file overriding the default game config")
	ui := flag.String("ui", "ansi", "front end: ansi or tcell")
	noGhost := flag.Bool("noghost", false, "don't draw the landing preview")
	logPath := flag.String("log", "", "write JSON logs to this file")
	debug := flag.Bool("debug", false, "log state changes")
	fps := flag.Int("fps", 0, "ticks per second, overrides the config")
	seed := flag.Uint64("seed", 0, "piece seed, overrides the config")
	flag.Parse()

	cfg := tetris.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = tetris.ReadConfig(*configPath); err != nil {
			log.Fatalf("unable to read config: %v", err)
		}
	}
	if *fps > 0 {
		cfg.FramesPerSecond = *fps
	}
	if *seed > 0 {
		cfg.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger, closeLog := newLogger(*logPath, *debug)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *ui {
	case "ansi":
		c, err := client.New(cfg, logger, &client.Options{NoGhost: *noGhost})
		if err != nil {
			log.Fatalf("unable to start client: %v", err)
		}
		defer c.Close() //nolint: errcheck
		c.Start(ctx)
	case "tcell":
		t, err := terminal.New(cfg, &terminal.Options{Logger: logger, NoGhost: *noGhost})
		if err != nil {
			log.Fatalf("unable to start terminal: %v", err)
		}
		defer t.Close()
		t.Start(ctx)
	default:
		log.Fatalf("unknown ui %q, want ansi or tcell", *ui)
	}
}

// newLogger logs to path, or nowhere since the terminal belongs to the game.
func newLogger(path string, debug bool) (*slog.Logger, func()) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	var w io.Writer = io.Discard
	closeFn := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			log.Fatalf("unable to open log file: %v", err)
		}
		w = f
		closeFn = func() { f.Close() } //nolint: errcheck
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), closeFn
}
