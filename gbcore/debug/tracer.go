// Package debug provides an optional per-instruction trace line, enabled via
// Config.DebugTrace.
package debug

import "log/slog"

// Tracer emits one slog.Debug line per instruction when enabled.
type Tracer struct {
	Enabled bool
}

// Trace logs the CPU state before an instruction executes.
func (t *Tracer) Trace(pc uint16, opcode uint8, sp uint16, a, f, b, c, d, e, h, l uint8) {
	if !t.Enabled {
		return
	}
	slog.Debug("step",
		"pc", pc, "opcode", opcode, "sp", sp,
		"a", a, "f", f, "bc", uint16(b)<<8|uint16(c), "de", uint16(d)<<8|uint16(e), "hl", uint16(h)<<8|uint16(l),
	)
}
