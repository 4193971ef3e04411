package panel

import (
	"time"

	"github.com/rs/zerolog/log"
)

// HeartFrameDwell is how long each heart frame stays on the CBI panel.
const HeartFrameDwell = time.Second

var heartFrames = [][4]byte{
	{0x70, 0x20, 0x20, 0x70},
	{0x51, 0xF8, 0x70, 0x20},
	{0x51, 0x51, 0x51, 0x70},
}

type heartSequence struct {
	active   bool
	frame    int
	resumeAt time.Time
}

// PlayHeartSequence starts the heart animation on the CBI panel. The first
// frame is drawn immediately; Tick draws the rest. Calling it while the
// animation is playing restarts it.
func (c *Controller) PlayHeartSequence() {
	now := c.now()
	c.heart = heartSequence{active: true}
	c.drawHeartFrame(0)
	c.heart.resumeAt = now.Add(HeartFrameDwell)

	log.Debug().Msg("Heart sequence started")
}

// HeartPlaying reports whether the heart animation still owns the CBI panel.
func (c *Controller) HeartPlaying() bool {
	return c.heart.active
}

func (c *Controller) advanceHeart(now time.Time) {
	if !c.heart.active || now.Before(c.heart.resumeAt) {
		return
	}

	next := c.heart.frame + 1
	if next >= len(heartFrames) {
		c.heart = heartSequence{}
		log.Debug().Msg("Heart sequence finished")
		return
	}

	c.drawHeartFrame(next)
	c.heart.resumeAt = now.Add(HeartFrameDwell)
}

func (c *Controller) drawHeartFrame(frame int) {
	for row, b := range heartFrames[frame] {
		c.driver.SetRow(CBI, row, b)
	}
	c.heart.frame = frame
}
