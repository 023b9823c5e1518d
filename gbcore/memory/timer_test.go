package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimerOverflowScenario(t *testing.T) {
	requested := false
	timer := NewTimer(func(bit uint8) {
		if bit == timerInterruptBit {
			requested = true
		}
	})
	timer.SetTAC(0x05) // enabled, divider-select 1 (threshold 1)
	timer.SetTIMA(0xFF)
	timer.SetTMA(0xAB)

	timer.Tick(1)

	assert.Equal(t, byte(0xAB), timer.TIMA())
	assert.True(t, requested)
}

func TestDIVIncrementsAfterEnoughCycles(t *testing.T) {
	timer := NewTimer(func(uint8) {})
	assert.Equal(t, byte(0), timer.DIV())
	for i := 0; i < 64; i++ {
		timer.Tick(1)
	}
	assert.Equal(t, byte(1), timer.DIV())
}

func TestResetDIVZeroesRegardlessOfValue(t *testing.T) {
	timer := NewTimer(func(uint8) {})
	for i := 0; i < 64; i++ {
		timer.Tick(1)
	}
	assert.NotZero(t, timer.DIV())
	timer.ResetDIV()
	assert.Equal(t, byte(0), timer.DIV())
}
