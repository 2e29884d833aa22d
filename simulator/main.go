package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rook-computer/sysdeck/internal/app"
	"github.com/rook-computer/sysdeck/internal/config"
	"github.com/rook-computer/sysdeck/internal/logging"
	"github.com/rook-computer/sysdeck/internal/render"
)

func main() {
	configPath := flag.String("config", os.Getenv(config.EnvConfigPath), "YAML config file; also configurable via "+config.EnvConfigPath)
	logPath := flag.String("log", "", "write log lines to this file (the terminal is owned by the UI)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	var logger logging.Logger = logging.NoopLogger{}
	if *logPath != "" {
		f, err := logging.OpenFile(*logPath)
		if err != nil {
			fmt.Println("log open error:", err)
			os.Exit(1)
		}
		defer f.Close()
		level := logging.LevelInfo
		if *debug {
			level = logging.LevelDebug
		}
		logger = logging.NewWriterLogger(f, level)
	}

	face, err := render.LoadFace(cfg.Font.Path, cfg.Font.Size)
	if err != nil {
		fmt.Println("font error:", err)
		os.Exit(1)
	}
	glyphW, glyphH := render.CellSize(face)
	display := render.NewTextDisplay(
		image.Rect(0, 0, cfg.Display.Width, cfg.Display.Height),
		glyphW, glyphH,
	)

	a, err := app.Assemble(cfg, display, face, logger)
	if err != nil {
		fmt.Println("assemble error:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	program := tea.NewProgram(newModel(a, display, cancel, cfg.Colors.Text), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Println("simulator error:", err)
	}
	cancel()
	if err := <-done; err != nil {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
}
