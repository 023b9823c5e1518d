package render

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
)

// TerminalBackend is a minimal live viewer: it draws one frame via half-block
// runes each time Present is called. Grounded on the teacher's tcell-based
// terminal renderer, trimmed down to the raster view and quit handling only
// (no in-terminal disassembler, register panel, or input forwarding).
type TerminalBackend struct {
	screen  tcell.Screen
	running bool
	quit    chan os.Signal

	events     chan tcell.Event
	eventsDone chan struct{}
}

// NewTerminalBackend initializes and clears a tcell screen.
func NewTerminalBackend() (*TerminalBackend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal backend: init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal backend: init screen: %w", err)
	}

	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// ChannelEvents feeds a buffered channel from a background goroutine, so
	// Running can drain whatever arrived since the last frame without
	// blocking on tcell's normally-blocking PollEvent.
	events := make(chan tcell.Event, 16)
	eventsDone := make(chan struct{})
	go screen.ChannelEvents(events, eventsDone)

	return &TerminalBackend{screen: screen, running: true, quit: quit, events: events, eventsDone: eventsDone}, nil
}

// Running reports whether the backend is still accepting frames, i.e. the
// user hasn't pressed Esc/Ctrl+C and no termination signal has arrived.
func (t *TerminalBackend) Running() bool {
	if !t.running {
		return false
	}

	select {
	case <-t.quit:
		t.running = false
	default:
	}

drain:
	for {
		select {
		case ev, ok := <-t.events:
			if !ok {
				break drain
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					t.running = false
				}
			case *tcell.EventResize:
				t.screen.Sync()
			}
		default:
			break drain
		}
	}

	return t.running
}

// Present draws one RGBA frame as half-block text and flushes the screen.
func (t *TerminalBackend) Present(frame []byte, width, height int) {
	lines := RGBAToHalfBlocks(frame, width, height)
	style := tcell.StyleDefault

	t.screen.Clear()
	for row, line := range lines {
		for col, r := range line {
			t.screen.SetContent(col, row, r, nil, style)
		}
	}
	t.screen.Show()
}

// Close tears down the terminal screen.
func (t *TerminalBackend) Close() {
	close(t.eventsDone)
	t.screen.Fini()
}
