package panel

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	CBIDisplayDelay = 200 * time.Millisecond
	DPLDisplayDelay = 150 * time.Millisecond

	CBIIntensity = 5
	DPLIntensity = 5
)

const (
	rowsOff byte = 0x00
	rowsOn  byte = 0xFF
)

// Controller owns the state of the CBI and DPL panels. It is not safe for
// concurrent use; one control loop drives it.
type Controller struct {
	driver Driver

	cbiEnabled bool
	dplEnabled bool

	lastCBIUpdate time.Time
	lastDPLUpdate time.Time

	batteryPercent int

	heart heartSequence

	now      func() time.Time
	randByte func() byte
}

func New(driver Driver) *Controller {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Controller{
		driver:   driver,
		now:      time.Now,
		randByte: func() byte { return byte(rng.Intn(256)) },
	}
}

// Initialize wakes both panels, blanks them and sets their brightness.
func (c *Controller) Initialize() {
	for _, dev := range []int{CBI, DPL} {
		c.driver.Shutdown(dev, false)
		c.driver.ClearDisplay(dev)
	}
	c.driver.SetIntensity(CBI, CBIIntensity)
	c.driver.SetIntensity(DPL, DPLIntensity)

	log.Debug().
		Int("cbi_intensity", CBIIntensity).
		Int("dpl_intensity", DPLIntensity).
		Msg("Panels initialized")
}

// SetBatteryLevel stores the battery level, clamped to at most 100.
// Negative values are kept as given.
func (c *Controller) SetBatteryLevel(percent int) {
	if percent > 100 {
		percent = 100
	}
	c.batteryPercent = percent
}

func (c *Controller) BatteryLevel() int {
	return c.batteryPercent
}

func (c *Controller) SetCBIEnabled(enable bool) {
	if enable == c.cbiEnabled {
		return
	}
	c.setEnabled(CBI, enable)
	c.cbiEnabled = enable
}

func (c *Controller) SetDPLEnabled(enable bool) {
	if enable == c.dplEnabled {
		return
	}
	c.setEnabled(DPL, enable)
	c.dplEnabled = enable
}

// setEnabled blanks the rows before toggling hardware shutdown so a stale
// pattern is never latched on wake.
func (c *Controller) setEnabled(dev int, enable bool) {
	for row := 0; row < Rows; row++ {
		c.driver.SetRow(dev, row, rowsOff)
	}
	c.driver.Shutdown(dev, !enable)

	log.Info().
		Str("panel", deviceName(dev)).
		Bool("enabled", enable).
		Msg("Panel toggled")
}

func (c *Controller) CBIEnabled() bool {
	return c.cbiEnabled
}

func (c *Controller) DPLEnabled() bool {
	return c.dplEnabled
}

// Tick advances every animation by at most one frame. It never blocks and is
// safe to call at any rate.
func (c *Controller) Tick() {
	now := c.now()

	c.advanceHeart(now)

	if c.cbiEnabled && !c.heart.active {
		c.randomCBISequence(now)
	}
	if c.dplEnabled {
		c.randomDPLSequence(now)
	}
}

// SetAllPanels lights or blanks every row on both panels regardless of the
// enabled flags.
func (c *Controller) SetAllPanels(on bool) {
	val := rowsOff
	if on {
		val = rowsOn
	}
	for _, dev := range []int{CBI, DPL} {
		for row := 0; row < Rows; row++ {
			c.driver.SetRow(dev, row, val)
		}
	}
}

func (c *Controller) randomCBISequence(now time.Time) {
	if now.Sub(c.lastCBIUpdate) < CBIDisplayDelay {
		return
	}

	for row := 0; row < Rows; row++ {
		b := c.randByte()
		if row >= gaugeFirstRow {
			b &^= gaugeBit
			if tierLit(row, c.batteryPercent) {
				b |= gaugeBit
			}
		}
		c.driver.SetRow(CBI, row, b)
	}
	c.lastCBIUpdate = now
}

func (c *Controller) randomDPLSequence(now time.Time) {
	if now.Sub(c.lastDPLUpdate) < DPLDisplayDelay {
		return
	}

	for row := 0; row < Rows; row++ {
		c.driver.SetRow(DPL, row, c.randByte())
	}
	c.lastDPLUpdate = now
}

func deviceName(dev int) string {
	switch dev {
	case CBI:
		return "cbi"
	case DPL:
		return "dpl"
	default:
		return "unknown"
	}
}
