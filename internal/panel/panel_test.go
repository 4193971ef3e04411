package panel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatsimonsguy/r2fx-body/internal/panel/paneltest"
)

var _ Driver = (*paneltest.Driver)(nil)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestController(fill byte) (*Controller, *paneltest.Driver, *fakeClock) {
	drv := &paneltest.Driver{}
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := New(drv)
	c.now = clock.Now
	c.randByte = func() byte { return fill }
	return c, drv, clock
}

func TestInitialize(t *testing.T) {
	c, drv, _ := newTestController(0)

	c.Initialize()

	want := []string{
		"Shutdown(0, false)",
		"ClearDisplay(0)",
		"Shutdown(1, false)",
		"ClearDisplay(1)",
		"SetIntensity(0, 5)",
		"SetIntensity(1, 5)",
	}
	got := make([]string, 0, len(drv.Calls))
	for _, call := range drv.Calls {
		got = append(got, call.String())
	}
	assert.Equal(t, want, got)
	assert.False(t, c.CBIEnabled())
	assert.False(t, c.DPLEnabled())
}

func TestSetBatteryLevel(t *testing.T) {
	tests := []struct {
		name  string
		input int
		want  int
	}{
		{"zero", 0, 0},
		{"mid", 57, 57},
		{"full", 100, 100},
		{"just over", 101, 100},
		{"way over", 255, 100},
		{"negative kept", -4, -4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, drv, _ := newTestController(0)
			c.SetBatteryLevel(tc.input)
			assert.Equal(t, tc.want, c.BatteryLevel())
			assert.Empty(t, drv.Calls, "battery level must not touch hardware")
		})
	}
}

func TestSetCBIEnabled_Idempotent(t *testing.T) {
	c, drv, _ := newTestController(0)

	c.SetCBIEnabled(true)
	c.SetCBIEnabled(true)

	assert.True(t, c.CBIEnabled())
	assert.Equal(t, 1, drv.Count("Shutdown", CBI))
	assert.Equal(t, Rows, drv.Count("SetRow", CBI))
	assert.Zero(t, drv.Count("Shutdown", DPL))
	assert.False(t, drv.Asleep[CBI])
}

func TestSetEnabled_ClearsBeforeShutdown(t *testing.T) {
	c, drv, _ := newTestController(0)
	c.SetDPLEnabled(true)
	drv.Reset()

	c.SetDPLEnabled(false)

	require.Len(t, drv.Calls, Rows+1)
	for row := 0; row < Rows; row++ {
		assert.Equal(t, paneltest.Call{Op: "SetRow", Device: DPL, Row: row, Value: 0x00}, drv.Calls[row])
	}
	assert.Equal(t, paneltest.Call{Op: "Shutdown", Device: DPL, On: true}, drv.Calls[Rows])
	assert.False(t, c.DPLEnabled())
}

func TestSetEnabled_DisableWhenAlreadyDisabled(t *testing.T) {
	c, drv, _ := newTestController(0)

	c.SetCBIEnabled(false)
	c.SetDPLEnabled(false)

	assert.Empty(t, drv.Calls)
}

func TestTick_DisabledPanelsNeverRender(t *testing.T) {
	c, drv, clock := newTestController(0xAA)

	for i := 0; i < 10; i++ {
		c.Tick()
		clock.Advance(time.Second)
	}

	assert.Empty(t, drv.Calls)
}

func TestTick_DisabledAfterEnableStopsRendering(t *testing.T) {
	c, drv, clock := newTestController(0xAA)
	c.SetCBIEnabled(true)
	c.Tick()
	c.SetCBIEnabled(false)
	drv.Reset()

	for i := 0; i < 5; i++ {
		clock.Advance(time.Second)
		c.Tick()
	}

	assert.Empty(t, drv.Calls)
}

func TestTick_RateLimitedPerPanel(t *testing.T) {
	c, drv, clock := newTestController(0x01)
	c.SetCBIEnabled(true)
	c.SetDPLEnabled(true)
	drv.Reset()

	c.Tick()
	assert.Equal(t, Rows, drv.Count("SetRow", CBI))
	assert.Equal(t, Rows, drv.Count("SetRow", DPL))

	// Inside both windows.
	clock.Advance(DPLDisplayDelay - time.Millisecond)
	c.Tick()
	assert.Equal(t, Rows, drv.Count("SetRow", CBI))
	assert.Equal(t, Rows, drv.Count("SetRow", DPL))

	// DPL window elapsed, CBI still waiting.
	clock.Advance(time.Millisecond)
	c.Tick()
	assert.Equal(t, Rows, drv.Count("SetRow", CBI))
	assert.Equal(t, 2*Rows, drv.Count("SetRow", DPL))

	// CBI window elapsed.
	clock.Advance(CBIDisplayDelay - DPLDisplayDelay)
	c.Tick()
	assert.Equal(t, 2*Rows, drv.Count("SetRow", CBI))
	assert.Equal(t, 2*Rows, drv.Count("SetRow", DPL))
}

func TestTick_CBIGaugeBitsForcedIntoChatter(t *testing.T) {
	tests := []struct {
		name  string
		fill  byte
		level int
		want  [Rows]byte
	}{
		{
			name:  "all random bits set, level 50",
			fill:  0xFF,
			level: 50,
			want:  [Rows]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFB, 0xFF, 0xFF},
		},
		{
			name:  "no random bits set, level 85",
			fill:  0x00,
			level: 85,
			want:  [Rows]byte{0x00, 0x00, 0x00, 0x00, 0x04, 0x04, 0x04},
		},
		{
			name:  "all random bits set, level 5",
			fill:  0xFF,
			level: 5,
			want:  [Rows]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFB, 0xFB, 0xFB},
		},
		{
			name:  "no random bits set, level 10",
			fill:  0x00,
			level: 10,
			want:  [Rows]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x04},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, drv, _ := newTestController(tc.fill)
			c.SetCBIEnabled(true)
			c.SetBatteryLevel(tc.level)

			c.Tick()

			for row := 0; row < Rows; row++ {
				assert.Equalf(t, tc.want[row], drv.Rows[CBI][row], "row %d", row)
			}
		})
	}
}

func TestTick_DPLChatterUnconstrained(t *testing.T) {
	c, drv, _ := newTestController(0xFF)
	c.SetDPLEnabled(true)
	c.SetBatteryLevel(0)

	c.Tick()

	for row := 0; row < Rows; row++ {
		assert.Equal(t, byte(0xFF), drv.Rows[DPL][row])
	}
}

func TestSetAllPanels(t *testing.T) {
	c, drv, _ := newTestController(0)
	c.SetCBIEnabled(true)

	c.SetAllPanels(false)
	for _, dev := range []int{CBI, DPL} {
		for row := 0; row < Rows; row++ {
			assert.Equal(t, byte(0x00), drv.Rows[dev][row])
		}
	}

	c.SetAllPanels(true)
	for _, dev := range []int{CBI, DPL} {
		for row := 0; row < Rows; row++ {
			assert.Equal(t, byte(0xFF), drv.Rows[dev][row])
		}
	}

	assert.True(t, c.CBIEnabled())
	assert.False(t, c.DPLEnabled())
}
