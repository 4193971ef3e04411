package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGaugeCells(t *testing.T) {
	tests := []struct {
		level int
		want  [3]bool
	}{
		{100, [3]bool{true, true, true}},
		{85, [3]bool{true, true, true}},
		{81, [3]bool{true, true, true}},
		{80, [3]bool{true, true, false}},
		{50, [3]bool{true, true, false}},
		{31, [3]bool{true, true, false}},
		{30, [3]bool{true, false, false}},
		{10, [3]bool{true, false, false}},
		{6, [3]bool{true, false, false}},
		{5, [3]bool{false, false, false}},
		{3, [3]bool{false, false, false}},
		{-1, [3]bool{false, false, false}},
	}

	for _, tc := range tests {
		assert.Equalf(t, tc.want, GaugeCells(tc.level), "level %d", tc.level)
	}
}

func TestLitCells(t *testing.T) {
	assert.Equal(t, 3, LitCells(90))
	assert.Equal(t, 2, LitCells(80))
	assert.Equal(t, 1, LitCells(30))
	assert.Equal(t, 0, LitCells(5))
}

func TestRenderBatteryGauge(t *testing.T) {
	c, drv, _ := newTestController(0)
	drv.Rows[CBI][4] = 0xFF

	c.RenderBatteryGauge(50)

	assert.Equal(t, 3, drv.Count("SetLed", CBI))
	assert.Equal(t, byte(0xFB), drv.Rows[CBI][4], "row 4 gauge cell should be cleared, other bits untouched")
	assert.Equal(t, byte(0x04), drv.Rows[CBI][5])
	assert.Equal(t, byte(0x04), drv.Rows[CBI][6])
	for _, call := range drv.Calls {
		assert.Equal(t, gaugeColumn, call.Column)
	}
}
