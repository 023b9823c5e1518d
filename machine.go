// Package gbcore wires the CPU, memory bus, and pixel processing unit into a
// frame-stepped driver: load a ROM, run frames, receive a finished raster
// buffer once per 17,556-machine-cycle budget.
package gbcore

import (
	"fmt"
	"os"

	"github.com/arlohale/gbcore/gbcore/cpu"
	"github.com/arlohale/gbcore/gbcore/debug"
	"github.com/arlohale/gbcore/gbcore/memory"
)

// frameCycleBudget is the fixed per-frame machine-cycle budget corresponding
// to the standard ~59.7Hz refresh.
const frameCycleBudget = 17556

// Config controls optional Machine behavior.
type Config struct {
	// DebugTrace enables one slog.Debug line per executed instruction.
	DebugTrace bool
	// OnPresent, if set, is called once per RunFrame with the raster buffer,
	// after the frame's cycle budget is spent. The call is not tied to the
	// PPU's V-blank entry.
	OnPresent func(frame []byte)
	// OnFatal, if set, is called once when the frame loop aborts on an
	// unknown opcode or STOP.
	OnFatal func(err cpu.MachineError)
}

// Machine is the root emulator: a bus, a CPU stepping against it, and the
// per-frame driver loop.
type Machine struct {
	bus    *memory.Bus
	cpu    *cpu.CPU
	tracer debug.Tracer

	onPresent func(frame []byte)
	onFatalCb func(cpu.MachineError)
	fatal     *cpu.MachineError
}

// New constructs a Machine with the boot ROM overlay active and no cartridge
// loaded yet.
func New(cfg Config) *Machine {
	m := &Machine{bus: memory.New(), onPresent: cfg.OnPresent, onFatalCb: cfg.OnFatal}
	m.tracer.Enabled = cfg.DebugTrace
	m.cpu = cpu.New(m.bus, m.onFatal)
	return m
}

// NewWithFile constructs a Machine and loads the cartridge image at path.
func NewWithFile(path string, cfg Config) (*Machine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gbcore: load ROM: %w", err)
	}

	m := New(cfg)
	m.LoadROM(data)
	return m, nil
}

func (m *Machine) onFatal(err cpu.MachineError) {
	m.fatal = &err
	if m.onFatalCb != nil {
		m.onFatalCb(err)
	}
}

// LoadROM copies a cartridge image into the fixed ROM address space.
func (m *Machine) LoadROM(data []byte) {
	m.bus.LoadROM(data)
}

// Fatal reports the error that halted the frame loop, if any.
func (m *Machine) Fatal() *cpu.MachineError {
	return m.fatal
}

// Step advances the CPU by one slot (interrupt dispatch, one cycle of
// halted idling, or one fetched-decoded-executed instruction) and then
// advances the PPU and timer by that same machine-cycle delta, exactly as
// spec'd for the per-frame loop. This is the only way PPU/timer state ever
// advances — stepping the CPU alone (bypassing Step) leaves LY and DIV/TIMA
// frozen, which hangs boot-ROM code that busy-waits on LY. Returns the
// machine-cycle cost of whatever the CPU did; 0 once a fatal error has
// aborted the machine.
func (m *Machine) Step() int {
	if m.fatal != nil {
		return 0
	}

	if m.tracer.Enabled {
		m.tracer.Trace(m.cpu.PC, m.bus.Read8(m.cpu.PC), m.cpu.SP,
			m.cpu.Regs.AF.GetHigh(), m.cpu.Regs.AF.GetLow(),
			m.cpu.Regs.BC.GetHigh(), m.cpu.Regs.BC.GetLow(),
			m.cpu.Regs.DE.GetHigh(), m.cpu.Regs.DE.GetLow(),
			m.cpu.Regs.HL.GetHigh(), m.cpu.Regs.HL.GetLow())
	}

	delta := m.cpu.Step()
	if delta == 0 {
		return 0
	}

	m.bus.PPU().Tick(delta)
	m.bus.Timer().Tick(delta)
	return delta
}

// RunFrame executes exactly one frame's worth of machine cycles via Step,
// repeating until the budget is spent or a fatal error aborts the loop.
// Returns the finished RGBA frame buffer.
func (m *Machine) RunFrame() []byte {
	cycles := 0
	for cycles < frameCycleBudget {
		delta := m.Step()
		if delta == 0 {
			break
		}
		cycles += delta
	}

	frame := m.bus.PPU().Frame().Pixels
	if m.onPresent != nil {
		m.onPresent(frame)
	}
	return frame
}

// InBootOverlay reports whether the boot ROM is still mapped over the
// cartridge's first 256 bytes.
func (m *Machine) InBootOverlay() bool {
	return m.bus.InBootOverlay()
}
