package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/sysdeck/internal/app"
	"github.com/rook-computer/sysdeck/internal/config"
	"github.com/rook-computer/sysdeck/internal/logging"
	"github.com/rook-computer/sysdeck/internal/render"
	"github.com/rook-computer/sysdeck/internal/system"
)

const envLogPath = "SYSDECK_LOG"

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "YAML config file; also configurable via "+config.EnvConfigPath)
	debug := flag.Bool("debug", false, "enable debug logging")
	logFile := flag.String("log", "", "append log lines to this file instead of stderr; also configurable via "+envLogPath)
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file")
	flag.Parse()

	// Best-effort: keep panic traces when the console is in graphics mode.
	if *stdioLog != "" {
		if err := redirectStdIO(*stdioLog); err != nil {
			fmt.Fprintln(os.Stderr, "stdio log redirect error:", err)
		}
	}

	path := *configPath
	if path == "" {
		path = os.Getenv(config.EnvConfigPath)
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		return 2
	}

	logger, closeLog, err := openLogger(cfg.Logging, *logFile, *debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "log open error:", err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	face, err := render.LoadFace(cfg.Font.Path, cfg.Font.Size)
	if err != nil {
		logger.Errorf("main", "font: %v", err)
		return 1
	}

	panel, err := app.OpenPanel(cfg.Display)
	if err != nil {
		logger.Errorf("main", "display %s: %v", cfg.Display.Backend, err)
		return 1
	}
	if c, ok := panel.(io.Closer); ok {
		defer c.Close()
	}
	logger.Infof("main", "display %s open, bounds=%v", cfg.Display.Backend, panel.Bounds())

	if cfg.Display.Backend == "fb" {
		console := system.Console{Logger: logger}
		_ = console.EnterGraphics()
		defer func() { _ = console.Restore() }()
	}

	a, err := app.Assemble(cfg, render.NewPanelDisplay(panel, face), face, logger)
	if err != nil {
		logger.Errorf("main", "assemble: %v", err)
		return 1
	}
	if bl, ok := panel.(render.Backlighter); ok {
		a.Backlight = bl
	}

	btns, closer, err := app.OpenButtons(cfg.Input, logger)
	if err != nil {
		logger.Errorf("main", "input %s: %v", cfg.Input.Backend, err)
		return 1
	}
	if closer != nil {
		defer closer.Close()
	}
	a.Buttons = btns

	if err := a.Run(ctx); err != nil {
		logger.Errorf("main", "run: %v", err)
		return 1
	}
	return 0
}

func openLogger(cfg config.LoggingConfig, path string, debug bool) (logging.Logger, func(), error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	if debug {
		level = logging.LevelDebug
	}
	if path == "" {
		path = os.Getenv(envLogPath)
	}
	if path == "" {
		path = cfg.Path
	}
	if path == "" {
		return logging.NewWriterLogger(os.Stderr, level), func() {}, nil
	}
	f, err := logging.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	return logging.NewWriterLogger(f, level), func() { _ = f.Close() }, nil
}
