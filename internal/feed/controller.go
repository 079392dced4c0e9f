// Package feed holds the navigation logic of the swipeable game feed: a
// single bounded cursor over the card list, fed by touch, wheel and keyboard
// intents. The browser-side script mirrors this behavior; keeping the rules
// here makes them testable and pins down the thresholds.
package feed

import (
	"sync"
	"time"
)

// Config tunes the input thresholds. Zero values take the defaults below.
type Config struct {
	// TransitionWindow is how long a card transition animation is considered
	// in flight; navigation intents inside the window are ignored, not queued.
	TransitionWindow time.Duration // default 350ms
	// TouchThreshold is the minimum vertical drag, in px, that counts as a
	// swipe.
	TouchThreshold float64 // default 50
	// WheelThreshold is the minimum wheel delta that counts as a step.
	WheelThreshold float64 // default 30
	// WheelCooldown limits wheel navigation to one step per window,
	// regardless of how many wheel events arrive.
	WheelCooldown time.Duration // default 400ms
}

func (c Config) withDefaults() Config {
	if c.TransitionWindow <= 0 {
		c.TransitionWindow = 350 * time.Millisecond
	}
	if c.TouchThreshold <= 0 {
		c.TouchThreshold = 50
	}
	if c.WheelThreshold <= 0 {
		c.WheelThreshold = 30
	}
	if c.WheelCooldown <= 0 {
		c.WheelCooldown = 400 * time.Millisecond
	}
	return c
}

// Option customizes a Controller.
type Option func(*Controller)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithViewCallback is invoked with the new index after every accepted
// navigation. Used to record game_card_viewed. The callback runs under the
// controller lock and must not call back into the controller.
func WithViewCallback(fn func(index int)) Option {
	return func(c *Controller) { c.onView = fn }
}

// Controller maintains the feed cursor, bounded to [0, length-1]. No
// wraparound. While a game is playing, all navigation input is ignored.
type Controller struct {
	mu     sync.Mutex
	cfg    Config
	now    func() time.Time
	onView func(int)

	length int
	index  int

	animatingUntil time.Time
	wheelReadyAt   time.Time

	touching    bool
	touchStartY float64
	touchDelta  float64

	playing bool
}

func New(length int, cfg Config, opts ...Option) *Controller {
	c := &Controller{
		cfg:    cfg.withDefaults(),
		now:    time.Now,
		length: length,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Index returns the current cursor position.
func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// SetLength resizes the list, clamping the cursor if needed.
func (c *Controller) SetLength(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.length = n
	if c.index >= n && n > 0 {
		c.index = n - 1
	}
	if n == 0 {
		c.index = 0
	}
}

// Next advances the cursor. Returns false when ignored.
func (c *Controller) Next() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.goToLocked(c.index + 1)
}

// Prev moves the cursor back. Returns false when ignored.
func (c *Controller) Prev() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.goToLocked(c.index - 1)
}

// GoTo jumps to index i. Out-of-range requests are ignored, never clamped
// into a wraparound.
func (c *Controller) GoTo(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.goToLocked(i)
}

// TouchStart begins accumulating a vertical drag.
func (c *Controller) TouchStart(y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.playing {
		return
	}
	c.touching = true
	c.touchStartY = y
	c.touchDelta = 0
}

// TouchMove updates the accumulated drag delta.
func (c *Controller) TouchMove(y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.playing || !c.touching {
		return
	}
	c.touchDelta = c.touchStartY - y
}

// TouchEnd resolves the drag: past the threshold it steps next (drag up) or
// prev (drag down), otherwise it is a no-op.
func (c *Controller) TouchEnd() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	delta := c.touchDelta
	c.touching = false
	c.touchDelta = 0

	if c.playing {
		return false
	}
	switch {
	case delta > c.cfg.TouchThreshold:
		return c.goToLocked(c.index + 1)
	case delta < -c.cfg.TouchThreshold:
		return c.goToLocked(c.index - 1)
	}
	return false
}

// Wheel maps a wheel delta to at most one step per cooldown window. The
// window is consumed by every wheel event, even one below the threshold.
func (c *Controller) Wheel(deltaY float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.playing {
		return false
	}
	now := c.now()
	if now.Before(c.wheelReadyAt) {
		return false
	}
	c.wheelReadyAt = now.Add(c.cfg.WheelCooldown)

	switch {
	case deltaY > c.cfg.WheelThreshold:
		return c.goToLocked(c.index + 1)
	case deltaY < -c.cfg.WheelThreshold:
		return c.goToLocked(c.index - 1)
	}
	return false
}

// Key handles the discrete bindings. Keyboard navigation is disabled
// entirely while a game is playing; input belongs to the game then.
func (c *Controller) Key(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.playing {
		return false
	}
	switch key {
	case "ArrowDown", "j":
		return c.goToLocked(c.index + 1)
	case "ArrowUp", "k":
		return c.goToLocked(c.index - 1)
	}
	return false
}

// EnterPlay pauses navigation input handling.
func (c *Controller) EnterPlay() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.playing = true
	c.touching = false
	c.touchDelta = 0
}

// LeavePlay restores navigation input handling.
func (c *Controller) LeavePlay() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = false
}

// Playing reports whether navigation is currently paused for play mode.
func (c *Controller) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

func (c *Controller) goToLocked(i int) bool {
	if c.playing {
		return false
	}
	now := c.now()
	if now.Before(c.animatingUntil) {
		return false
	}
	if i < 0 || i >= c.length {
		return false
	}

	c.index = i
	c.animatingUntil = now.Add(c.cfg.TransitionWindow)
	if c.onView != nil {
		c.onView(i)
	}
	return true
}
