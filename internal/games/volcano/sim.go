package volcano

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/vovakirdan/volcano-flap/internal/config"
	"github.com/vovakirdan/volcano-flap/internal/core"
)

// referenceFrame is the frame length the per-frame constants are tuned for.
const referenceFrame = time.Second / 60

// maxFrameGap caps the elapsed time applied in a single step so a stalled
// terminal does not teleport the bird through a column.
const maxFrameGap = 100 * time.Millisecond

// Status is the session state machine: intro -> playing -> gameover -> playing.
type Status int

const (
	StatusIntro Status = iota
	StatusPlaying
	StatusGameOver
)

// String returns the lower-case status name.
func (s Status) String() string {
	switch s {
	case StatusIntro:
		return "intro"
	case StatusPlaying:
		return "playing"
	case StatusGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Bird is the player: a square sprite at a fixed horizontal position.
type Bird struct {
	Y        float64 // Top of the sprite
	Velocity float64 // Units per reference frame, positive is down
	IsHit    bool    // Set on a life-costing hit, cleared after the flash duration
}

// Simulation owns all gameplay state and advances it once per frame.
// It is not safe for concurrent use; the presentation layer drives it from
// a single goroutine and reads Snapshot values.
type Simulation struct {
	cfg        config.VolcanoConfig
	difficulty *config.DifficultyManager
	pipes      *PipeManager
	timestep   config.Timestep

	width, height float64

	status      Status
	bird        Bird
	score       int
	lives       int
	cleared     int
	pendingJump bool

	hasHit      bool
	lastHitTime time.Duration
	lastFrame   time.Duration
	startedAt   time.Duration
	now         time.Duration

	tick    int    // frames stepped this session
	version uint64 // bumped on every mutation visible in a Snapshot
}

// Option customizes a Simulation.
type Option func(*simOptions)

type simOptions struct {
	rng      *rand.Rand
	timestep config.Timestep
}

// WithSeed seeds the column placement RNG.
func WithSeed(seed int64) Option {
	return func(o *simOptions) {
		o.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand uses the given RNG for column placement.
func WithRand(rng *rand.Rand) Option {
	return func(o *simOptions) {
		o.rng = rng
	}
}

// WithTimestep overrides the configured timestep mode.
func WithTimestep(ts config.Timestep) Option {
	return func(o *simOptions) {
		o.timestep = ts
	}
}

// NewSimulation validates cfg against the playfield and returns a
// simulation in the intro state.
func NewSimulation(cfg config.VolcanoConfig, width, height float64, opts ...Option) (*Simulation, error) {
	o := simOptions{timestep: cfg.Physics.Timestep}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	cfg.Physics.Timestep = o.timestep
	cfg.Endings.Bands = slices.Clone(cfg.Endings.Bands)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.ValidatePlayfield(width, height); err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		timestep:   o.timestep,
		width:      width,
		height:     height,
	}
	s.pipes = NewPipeManager(o.rng, &s.cfg.Obstacles, s.difficulty)
	s.reinit(0)
	s.status = StatusIntro
	return s, nil
}

// reinit restores every session and entity field to its initial value.
func (s *Simulation) reinit(now time.Duration) {
	s.bird = Bird{Y: s.maxY() / 2}
	s.pipes.Reset()
	s.score = 0
	s.lives = s.cfg.Session.MaxLives
	s.cleared = 0
	s.pendingJump = false
	s.hasHit = false
	s.lastHitTime = 0
	s.lastFrame = now
	s.startedAt = now
	s.now = now
	s.tick = 0
	s.version++
}

// Start begins a session at timestamp now. It is the same as Reset.
func (s *Simulation) Start(now time.Duration) {
	s.Reset(now)
}

// Reset reinitializes all state and enters the playing state.
func (s *Simulation) Reset(now time.Duration) {
	s.reinit(now)
	s.status = StatusPlaying
}

// Jump queues a jump for the next step. Repeated calls before a step have
// the same effect as one. Ignored unless playing.
func (s *Simulation) Jump() {
	if s.status != StatusPlaying {
		return
	}
	s.pendingJump = true
}

// Step advances the simulation to frame timestamp now and returns the new
// snapshot. Nothing changes unless the status is playing.
func (s *Simulation) Step(now time.Duration) Snapshot {
	if s.status != StatusPlaying {
		return s.Snapshot()
	}

	k := s.frameScale(now)
	s.lastFrame = now
	s.now = now
	s.tick++
	s.version++

	if s.bird.IsHit && now-s.lastHitTime > s.cfg.Session.FlashDuration() {
		s.bird.IsHit = false
	}

	s.updateBird(k)
	s.pipes.Update(k, s.width, s.height, s.score, s.tick)
	s.cleared += s.pipes.MarkPassed(s.birdX())
	s.scoreAndCollide(now)

	return s.Snapshot()
}

// frameScale returns how many reference frames this step covers.
func (s *Simulation) frameScale(now time.Duration) float64 {
	if s.timestep != config.TimestepElapsed {
		return 1
	}
	dt := max(min(now-s.lastFrame, maxFrameGap), 0)
	return float64(dt) / float64(referenceFrame)
}

// updateBird applies gravity, the queued jump, integration and clamping.
func (s *Simulation) updateBird(k float64) {
	s.bird.Velocity += s.cfg.Physics.Gravity * k
	if s.pendingJump {
		s.bird.Velocity = s.cfg.Physics.JumpStrength
		s.pendingJump = false
	}
	s.bird.Y += s.bird.Velocity * k

	if s.bird.Y < 0 {
		s.bird.Y = 0
		s.bird.Velocity = 0
	}
	if floor := s.maxY(); s.bird.Y > floor {
		s.bird.Y = floor
		s.bird.Velocity = 0
	}
}

// scoreAndCollide awards one point per active column and deducts a life on
// the first qualifying overlap. Reaching zero lives ends the session
// immediately, skipping the remaining columns.
func (s *Simulation) scoreAndCollide(now time.Duration) {
	hb := Hitbox(s.cfg.Player, s.birdX(), s.bird.Y)
	for _, p := range s.pipes.Pipes() {
		s.score++

		if !Collides(hb, p, s.cfg.Obstacles) || !s.cooldownElapsed(now) {
			continue
		}

		s.hasHit = true
		s.lastHitTime = now
		s.lives--
		s.bird.IsHit = true

		if s.lives <= 0 {
			s.lives = 0
			s.status = StatusGameOver
			return
		}
	}
}

func (s *Simulation) cooldownElapsed(now time.Duration) bool {
	return !s.hasHit || now-s.lastHitTime > s.cfg.Session.CollisionCooldown()
}

// Resize changes the playfield. A size that cannot host the configured
// gaps is rejected and leaves the simulation untouched. The bird is
// clamped back into the new bounds; columns keep their positions.
func (s *Simulation) Resize(width, height float64) error {
	if err := s.cfg.ValidatePlayfield(width, height); err != nil {
		return fmt.Errorf("volcano: resize to %vx%v: %w", width, height, err)
	}
	s.width = width
	s.height = height
	s.bird.Y = core.ClampF(s.bird.Y, 0, s.maxY())
	s.version++
	return nil
}

// Status returns the current state machine state.
func (s *Simulation) Status() Status {
	return s.status
}

// Score returns the current score.
func (s *Simulation) Score() int {
	return s.score
}

// Lives returns the remaining lives.
func (s *Simulation) Lives() int {
	return s.lives
}

// Config returns the validated configuration in use.
func (s *Simulation) Config() config.VolcanoConfig {
	return s.cfg
}

// Ending returns the end-of-game card for the current score.
func (s *Simulation) Ending() config.Ending {
	return EndingFor(s.score, s.cfg.Endings)
}

// Elapsed returns how long the current session has been running.
func (s *Simulation) Elapsed() time.Duration {
	return s.now - s.startedAt
}

func (s *Simulation) birdX() float64 {
	return s.width * s.cfg.Player.XRatio
}

func (s *Simulation) maxY() float64 {
	return s.height - s.cfg.Player.Size
}
