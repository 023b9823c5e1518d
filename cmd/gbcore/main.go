// Command gbcore runs the emulator core against a ROM file: headless for a
// fixed number of frames, or live in a terminal window.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli"

	"github.com/arlohale/gbcore"
	"github.com/arlohale/gbcore/gbcore/render"
)

func main() {
	app := cli.NewApp()
	app.Name = "gbcore"
	app.Usage = "gbcore --rom <file> [options]"
	app.Description = "Sharp LR35902 emulator core: CPU, memory bus, and PPU"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "rom", Usage: "path to the cartridge ROM image"},
		cli.IntFlag{Name: "frames", Value: 0, Usage: "run this many frames then exit (0 = unbounded, requires --term to stop)"},
		cli.BoolFlag{Name: "headless", Usage: "run without a terminal viewer"},
		cli.BoolFlag{Name: "debug-trace", Usage: "emit a slog.Debug line per executed instruction"},
		cli.StringFlag{Name: "snapshot-dir", Usage: "write a PNG of the final frame to this directory"},
		cli.BoolFlag{Name: "term", Usage: "show a live tcell terminal viewer"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("gbcore exited with an error", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		cli.ShowAppHelp(c)
		return errors.New("no ROM path provided, use --rom")
	}

	m, err := gbcore.NewWithFile(romPath, gbcore.Config{DebugTrace: c.Bool("debug-trace")})
	if err != nil {
		return err
	}

	var term *render.TerminalBackend
	if c.Bool("term") && !c.Bool("headless") {
		term, err = render.NewTerminalBackend()
		if err != nil {
			return fmt.Errorf("starting terminal viewer: %w", err)
		}
		defer term.Close()
	}

	frameLimit := c.Int("frames")
	frameTime := time.Second / 60

	var frame []byte
	for n := 0; frameLimit == 0 || n < frameLimit; n++ {
		start := time.Now()
		frame = m.RunFrame()

		if fatal := m.Fatal(); fatal != nil {
			return fmt.Errorf("emulation aborted: %w", fatal)
		}

		if term != nil {
			term.Present(frame, 160, 144)
			if !term.Running() {
				break
			}
			if elapsed := time.Since(start); elapsed < frameTime {
				time.Sleep(frameTime - elapsed)
			}
		}
	}

	if dir := c.String("snapshot-dir"); dir != "" && frame != nil {
		if err := writeSnapshot(dir, frame); err != nil {
			return err
		}
	}

	return nil
}

func writeSnapshot(dir string, frame []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating snapshot dir: %w", err)
	}

	path := filepath.Join(dir, "frame.png")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	defer f.Close()

	if err := render.WritePNG(f, frame, 160, 144); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	slog.Info("wrote snapshot", "path", path)
	return nil
}
