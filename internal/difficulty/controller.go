// Package difficulty implements the adaptive tier state machine and the
// mastery rule. Everything here is pure: the controller takes a progression,
// returns the next one, and touches nothing else.
package difficulty

// Config holds the tier transition thresholds. These are configuration,
// not constants; the config package exposes them to operators.
type Config struct {
	AdvanceThreshold         int `yaml:"advance_threshold"`
	DecreaseThreshold        int `yaml:"decrease_threshold"`
	MinAttemptsBeforeAdvance int `yaml:"min_attempts_before_advance"`
	MaxTier                  int `yaml:"max_tier"`
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		AdvanceThreshold:         5,
		DecreaseThreshold:        3,
		MinAttemptsBeforeAdvance: 8,
		MaxTier:                  3,
	}
}

// Progression is the per-session adaptive state. It is created at session
// start and discarded at session end, never persisted.
//
// Invariant: at most one of CorrectStreak/IncorrectStreak is non-zero.
type Progression struct {
	CurrentTier     int
	AttemptsInTier  int
	CorrectStreak   int
	IncorrectStreak int
}

// NewProgression starts a session at the easiest tier.
func NewProgression() Progression {
	return Progression{CurrentTier: 1}
}

// Controller evaluates tier transitions from answer outcomes.
type Controller struct {
	cfg Config
}

// NewController creates a controller, falling back to defaults for any
// threshold left at zero.
func NewController(cfg Config) *Controller {
	def := DefaultConfig()
	if cfg.AdvanceThreshold <= 0 {
		cfg.AdvanceThreshold = def.AdvanceThreshold
	}
	if cfg.DecreaseThreshold <= 0 {
		cfg.DecreaseThreshold = def.DecreaseThreshold
	}
	if cfg.MinAttemptsBeforeAdvance <= 0 {
		cfg.MinAttemptsBeforeAdvance = def.MinAttemptsBeforeAdvance
	}
	if cfg.MaxTier <= 0 {
		cfg.MaxTier = def.MaxTier
	}
	return &Controller{cfg: cfg}
}

// Config returns the thresholds in effect.
func (c *Controller) Config() Config {
	return c.cfg
}

// Update applies one answer outcome and returns the next progression.
// An advance resets all counters; a decrease (only evaluated when no
// advance fired) does the same. The tier never leaves [1, MaxTier].
func (c *Controller) Update(p Progression, wasCorrect bool) Progression {
	if p.CurrentTier < 1 {
		p.CurrentTier = 1
	}

	p.AttemptsInTier++
	if wasCorrect {
		p.CorrectStreak++
		p.IncorrectStreak = 0
	} else {
		p.IncorrectStreak++
		p.CorrectStreak = 0
	}

	if p.CurrentTier < c.cfg.MaxTier &&
		p.CorrectStreak >= c.cfg.AdvanceThreshold &&
		p.AttemptsInTier >= c.cfg.MinAttemptsBeforeAdvance {
		return Progression{CurrentTier: p.CurrentTier + 1}
	}

	if p.CurrentTier > 1 && p.IncorrectStreak >= c.cfg.DecreaseThreshold {
		return Progression{CurrentTier: p.CurrentTier - 1}
	}

	return p
}
