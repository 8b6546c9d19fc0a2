package volcano

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/volcano-flap/internal/config"
)

const frame = time.Second / 60

const (
	testWidth  = 800
	testHeight = 600
)

func newSim(t *testing.T, cfg config.VolcanoConfig, opts ...Option) *Simulation {
	t.Helper()
	opts = append([]Option{WithSeed(1)}, opts...)
	s, err := NewSimulation(cfg, testWidth, testHeight, opts...)
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	return s
}

// wideColumnConfig makes every column span the whole playfield so the bird
// overlaps one on every frame.
func wideColumnConfig() config.VolcanoConfig {
	cfg := config.DefaultVolcanoConfig()
	cfg.Obstacles.Width = 10000
	return cfg
}

// run steps the simulation for frames 1..n and calls fn after each one.
func run(s *Simulation, from, n int, fn func(i int, snap Snapshot)) {
	for i := from; i < from+n; i++ {
		snap := s.Step(time.Duration(i) * frame)
		if fn != nil {
			fn(i, snap)
		}
	}
}

func TestNewSimulationStartsInIntro(t *testing.T) {
	s := newSim(t, config.DefaultVolcanoConfig())

	if s.Status() != StatusIntro {
		t.Fatalf("expected intro, got %s", s.Status())
	}

	before := s.Snapshot()
	s.Jump()
	if s.pendingJump {
		t.Error("Jump should be ignored outside of play")
	}
	after := s.Step(frame)
	if !reflect.DeepEqual(before, after) {
		t.Error("Step should not change state during intro")
	}
	if s.Lives() != 2 {
		t.Errorf("expected 2 lives, got %d", s.Lives())
	}
}

func TestNewSimulationRejectsBadConfig(t *testing.T) {
	cfg := config.DefaultVolcanoConfig()

	if _, err := NewSimulation(cfg, testWidth, 330); !errors.Is(err, config.ErrPlayfieldTooSmall) {
		t.Errorf("height 330: expected ErrPlayfieldTooSmall, got %v", err)
	}
	if _, err := NewSimulation(cfg, testWidth, 331); err != nil {
		t.Errorf("height 331 should be valid: %v", err)
	}

	cfg.Obstacles.GapSize = 0
	if _, err := NewSimulation(cfg, testWidth, testHeight); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		s    Status
		want string
	}{
		{StatusIntro, "intro"},
		{StatusPlaying, "playing"},
		{StatusGameOver, "gameover"},
		{Status(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestStepAppliesGravity(t *testing.T) {
	s := newSim(t, config.DefaultVolcanoConfig())
	s.Start(0)

	startY := s.bird.Y
	if startY != (testHeight-80)/2 {
		t.Fatalf("bird should start centered, got %v", startY)
	}

	snap := s.Step(frame)
	if snap.Bird.Velocity != 0.75 {
		t.Errorf("velocity after one frame = %v, want 0.75", snap.Bird.Velocity)
	}
	if snap.Bird.Y != startY+0.75 {
		t.Errorf("y after one frame = %v, want %v", snap.Bird.Y, startY+0.75)
	}

	snap = s.Step(2 * frame)
	if snap.Bird.Velocity != 1.5 {
		t.Errorf("velocity after two frames = %v, want 1.5", snap.Bird.Velocity)
	}
	if snap.Bird.Y != startY+2.25 {
		t.Errorf("y after two frames = %v, want %v", snap.Bird.Y, startY+2.25)
	}
}

func TestJumpOverridesVelocity(t *testing.T) {
	cfg := config.DefaultVolcanoConfig()

	once := newSim(t, cfg)
	many := newSim(t, cfg)
	longFall := newSim(t, cfg)
	for _, s := range []*Simulation{once, many, longFall} {
		s.Start(0)
	}

	run(once, 1, 10, nil)
	run(many, 1, 10, nil)
	run(longFall, 1, 20, nil)

	once.Jump()
	many.Jump()
	many.Jump()
	many.Jump()
	longFall.Jump()

	a := once.Step(11 * frame)
	b := many.Step(11 * frame)
	c := longFall.Step(21 * frame)

	if a.Bird != b.Bird {
		t.Errorf("repeated jumps differ from a single jump: %+v vs %+v", b.Bird, a.Bird)
	}
	for name, snap := range map[string]Snapshot{"once": a, "many": b, "long fall": c} {
		if snap.Bird.Velocity != cfg.Physics.JumpStrength {
			t.Errorf("%s: velocity = %v, want %v", name, snap.Bird.Velocity, cfg.Physics.JumpStrength)
		}
	}

	next := once.Step(12 * frame)
	if want := cfg.Physics.JumpStrength + cfg.Physics.Gravity; next.Bird.Velocity != want {
		t.Errorf("jump should be consumed, velocity = %v, want %v", next.Bird.Velocity, want)
	}
}

func TestBirdStaysInBounds(t *testing.T) {
	s := newSim(t, config.DefaultVolcanoConfig())
	s.Start(0)
	maxY := float64(testHeight - 80)

	check := func(i int, snap Snapshot) {
		if snap.Bird.Y < 0 || snap.Bird.Y > maxY {
			t.Fatalf("frame %d: y = %v out of [0, %v]", i, snap.Bird.Y, maxY)
		}
	}

	// Hold jump until the ceiling stops the bird.
	for i := 1; i <= 40; i++ {
		s.Jump()
		snap := s.Step(time.Duration(i) * frame)
		check(i, snap)
	}
	if s.bird.Y != 0 {
		t.Errorf("bird should rest at the ceiling, y = %v", s.bird.Y)
	}

	// Free fall to the floor.
	run(s, 41, 60, check)
	if s.bird.Y != maxY || s.bird.Velocity != 0 {
		t.Errorf("bird should rest on the floor, y = %v velocity = %v", s.bird.Y, s.bird.Velocity)
	}
}

func TestCeilingClampZeroesVelocity(t *testing.T) {
	s := newSim(t, config.DefaultVolcanoConfig())
	s.Start(0)
	s.bird.Y = 5

	s.Jump()
	snap := s.Step(frame)
	if snap.Bird.Y != 0 || snap.Bird.Velocity != 0 {
		t.Errorf("expected y=0 velocity=0, got y=%v velocity=%v", snap.Bird.Y, snap.Bird.Velocity)
	}
}

func TestSpawnAndScorePerColumnPerFrame(t *testing.T) {
	s := newSim(t, config.DefaultVolcanoConfig())
	s.Start(0)

	run(s, 1, 90, nil)
	if s.pipes.Len() != 0 {
		t.Fatalf("no column should spawn within 90 frames, got %d", s.pipes.Len())
	}
	if s.Score() != 0 {
		t.Errorf("score without columns = %d, want 0", s.Score())
	}

	snap := s.Step(91 * frame)
	if len(snap.Pipes) != 1 {
		t.Fatalf("expected one column on frame 91, got %d", len(snap.Pipes))
	}
	if snap.Pipes[0].X != testWidth-6.5 {
		t.Errorf("new column x = %v, want %v", snap.Pipes[0].X, testWidth-6.5)
	}
	if snap.Score != 1 {
		t.Errorf("score = %d, want 1", snap.Score)
	}

	run(s, 92, 10, nil)
	if s.Score() != 11 {
		t.Errorf("score after 11 frames with one column = %d, want 11", s.Score())
	}
}

func TestRemovedColumnsStopScoring(t *testing.T) {
	s := newSim(t, config.DefaultVolcanoConfig())
	s.Start(0)

	// After one step: -143.5 lands exactly on the threshold and is kept,
	// -144 goes past it and is dropped.
	s.pipes.pipes = append(s.pipes.pipes,
		Pipe{ID: 100, X: -143.5, GapTop: 100},
		Pipe{ID: 101, X: -144, GapTop: 100},
	)

	snap := s.Step(frame)
	if len(snap.Pipes) != 1 || snap.Pipes[0].ID != 100 {
		t.Fatalf("expected only column 100 to survive, got %+v", snap.Pipes)
	}
	if snap.Score != 1 {
		t.Errorf("score = %d, want 1", snap.Score)
	}

	snap = s.Step(2 * frame)
	if len(snap.Pipes) != 0 {
		t.Fatalf("column 100 should be dropped, got %+v", snap.Pipes)
	}
	if snap.Score != 1 {
		t.Errorf("dropped columns must not score, got %d", snap.Score)
	}

	run(s, 3, 200, func(i int, snap Snapshot) {
		for _, p := range snap.Pipes {
			if p.ID == 100 || p.ID == 101 {
				t.Fatalf("frame %d: removed column %d reappeared", i, p.ID)
			}
		}
	})
}

func TestCollisionCooldown(t *testing.T) {
	cfg := wideColumnConfig()
	cfg.Session.MaxLives = 5
	s := newSim(t, cfg)
	s.Start(0)
	s.pipes.pipes = append(s.pipes.pipes, Pipe{ID: 100, X: 80, GapTop: 50})

	var hits []int
	lives := s.Lives()
	run(s, 1, 200, func(i int, snap Snapshot) {
		switch {
		case snap.Lives == lives-1:
			hits = append(hits, i)
		case snap.Lives != lives:
			t.Fatalf("frame %d: lives went from %d to %d", i, lives, snap.Lives)
		}
		lives = snap.Lives
	})

	want := []int{1, 62, 123, 184}
	if !reflect.DeepEqual(hits, want) {
		t.Fatalf("hits on frames %v, want %v", hits, want)
	}
	for i := 1; i < len(hits); i++ {
		gap := time.Duration(hits[i]-hits[i-1]) * frame
		if gap <= cfg.Session.CollisionCooldown() {
			t.Errorf("hits %d and %d only %v apart", hits[i-1], hits[i], gap)
		}
	}
	if s.Lives() != 1 || s.Status() != StatusPlaying {
		t.Errorf("expected 1 life and still playing, got %d %s", s.Lives(), s.Status())
	}
}

func TestHitFlashClearsByTimestamp(t *testing.T) {
	s := newSim(t, wideColumnConfig())
	s.Start(0)
	s.pipes.pipes = append(s.pipes.pipes, Pipe{ID: 100, X: 80, GapTop: 50})

	snap := s.Step(frame)
	if !snap.Bird.IsHit {
		t.Fatal("bird should flash after a hit")
	}

	run(s, 2, 12, nil)
	if !s.bird.IsHit {
		t.Error("flash should last while less than 200ms have passed")
	}
	s.Step(14 * frame)
	if s.bird.IsHit {
		t.Error("flash should clear once 200ms have passed")
	}
}

func TestGameOverFreezesState(t *testing.T) {
	s := newSim(t, wideColumnConfig())
	s.Start(0)
	s.pipes.pipes = append(s.pipes.pipes, Pipe{ID: 100, X: 80, GapTop: 50})

	var overAt int
	run(s, 1, 100, func(i int, snap Snapshot) {
		if snap.Status == StatusGameOver && overAt == 0 {
			overAt = i
			if snap.Lives != 0 {
				t.Errorf("gameover with %d lives", snap.Lives)
			}
		}
		if snap.Status == StatusPlaying && snap.Lives == 0 {
			t.Fatalf("frame %d: still playing with zero lives", i)
		}
	})
	if overAt != 62 {
		t.Fatalf("expected gameover on the second hit at frame 62, got %d", overAt)
	}

	frozen := s.Snapshot()
	s.Jump()
	run(s, 101, 50, func(i int, snap Snapshot) {
		if !reflect.DeepEqual(snap, frozen) {
			t.Fatalf("frame %d: state changed after gameover", i)
		}
	})
	if s.Lives() < 0 {
		t.Errorf("lives below zero: %d", s.Lives())
	}
}

func TestGameOverSkipsRemainingColumns(t *testing.T) {
	cfg := config.DefaultVolcanoConfig()
	cfg.Session.MaxLives = 1
	s := newSim(t, cfg)
	s.Start(0)

	// The bird sits at y=260; the first column's gap is far above it.
	s.pipes.pipes = append(s.pipes.pipes,
		Pipe{ID: 100, X: 90, GapTop: 0},
		Pipe{ID: 101, X: 400, GapTop: 100},
	)

	snap := s.Step(frame)
	if snap.Status != StatusGameOver {
		t.Fatalf("expected gameover, got %s", snap.Status)
	}
	if snap.Score != 1 {
		t.Errorf("columns after the fatal hit must not score, score = %d", snap.Score)
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	s := newSim(t, wideColumnConfig())
	s.Start(0)
	s.pipes.pipes = append(s.pipes.pipes, Pipe{ID: 100, X: 80, GapTop: 50})
	run(s, 1, 100, nil)
	if s.Status() != StatusGameOver {
		t.Fatalf("setup: expected gameover, got %s", s.Status())
	}

	s.Jump()
	s.Reset(200 * frame)

	if s.Status() != StatusPlaying {
		t.Errorf("status = %s, want playing", s.Status())
	}
	if s.Lives() != s.cfg.Session.MaxLives {
		t.Errorf("lives = %d, want %d", s.Lives(), s.cfg.Session.MaxLives)
	}
	if s.Score() != 0 {
		t.Errorf("score = %d, want 0", s.Score())
	}
	if s.pipes.Len() != 0 || s.pipes.spawnTimer != 0 {
		t.Errorf("columns not cleared: %d columns, timer %v", s.pipes.Len(), s.pipes.spawnTimer)
	}
	if s.bird != (Bird{Y: (testHeight - 80) / 2}) {
		t.Errorf("bird not reset: %+v", s.bird)
	}
	if s.hasHit || s.pendingJump || s.tick != 0 {
		t.Errorf("session flags not cleared: hasHit=%v pendingJump=%v tick=%d", s.hasHit, s.pendingJump, s.tick)
	}

	// The first hit of the new session is not blocked by the old one.
	s.pipes.pipes = append(s.pipes.pipes, Pipe{ID: 200, X: 80, GapTop: 50})
	s.Step(201 * frame)
	if s.Lives() != s.cfg.Session.MaxLives-1 {
		t.Errorf("first hit after reset should count, lives = %d", s.Lives())
	}
}

func TestResize(t *testing.T) {
	s := newSim(t, config.DefaultVolcanoConfig())
	s.Start(0)
	run(s, 1, 60, nil)
	if s.bird.Y != testHeight-80 {
		t.Fatalf("setup: bird should be on the floor, y = %v", s.bird.Y)
	}

	err := s.Resize(testWidth, 300)
	if !errors.Is(err, config.ErrPlayfieldTooSmall) {
		t.Fatalf("expected ErrPlayfieldTooSmall, got %v", err)
	}
	if s.height != testHeight || s.bird.Y != testHeight-80 {
		t.Error("failed resize must leave state unchanged")
	}

	if err := s.Resize(testWidth, 400); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if s.bird.Y != 320 {
		t.Errorf("bird should be clamped to the new floor, y = %v", s.bird.Y)
	}
	snap := s.Snapshot()
	if snap.Height != 400 {
		t.Errorf("snapshot height = %v, want 400", snap.Height)
	}
}

func TestElapsedTimestep(t *testing.T) {
	cfg := config.DefaultVolcanoConfig()
	s := newSim(t, cfg, WithTimestep(config.TimestepElapsed))
	s.Start(0)
	startY := s.bird.Y

	snap := s.Step(2 * frame)
	if snap.Bird.Velocity != 1.5 {
		t.Errorf("velocity after two frames of time = %v, want 1.5", snap.Bird.Velocity)
	}
	if snap.Bird.Y != startY+3 {
		t.Errorf("y = %v, want %v", snap.Bird.Y, startY+3)
	}

	// A timestamp going backwards moves nothing.
	before := s.bird
	s.Step(frame)
	if s.bird != before {
		t.Errorf("negative dt should not move the bird: %+v -> %+v", before, s.bird)
	}

	// Long stalls are capped.
	s.Step(time.Second)
	k := float64(maxFrameGap) / float64(referenceFrame)
	if want := before.Velocity + cfg.Physics.Gravity*k; s.bird.Velocity != want {
		t.Errorf("velocity after stall = %v, want %v", s.bird.Velocity, want)
	}
}

func TestSimulationDeterminism(t *testing.T) {
	cfg := config.DefaultVolcanoConfig()
	play := func() Snapshot {
		s := newSim(t, cfg, WithSeed(12345))
		s.Start(0)
		var last Snapshot
		for i := 1; i <= 600; i++ {
			if i%15 == 0 {
				s.Jump()
			}
			last = s.Step(time.Duration(i) * frame)
			if last.Status == StatusGameOver {
				break
			}
		}
		return last
	}

	a, b := play(), play()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed and input produced different runs:\n%+v\n%+v", a, b)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newSim(t, config.DefaultVolcanoConfig())
	s.Start(0)
	run(s, 1, 91, nil)

	snap := s.Snapshot()
	snap.Pipes[0].X = -1000
	if s.pipes.Pipes()[0].X == -1000 {
		t.Error("mutating a snapshot must not affect the simulation")
	}

	v := snap.Version
	next := s.Step(92 * frame)
	if next.Version <= v {
		t.Errorf("version should increase on step: %d -> %d", v, next.Version)
	}
}

// fixedSource replays a fixed cycle of Int63 values.
type fixedSource struct {
	vals []int64
	i    int
}

func (f *fixedSource) Int63() int64 {
	v := f.vals[f.i%len(f.vals)]
	f.i++
	return v
}

func (f *fixedSource) Seed(int64) {}

func TestWithRandPinsGapPlacement(t *testing.T) {
	// 0 maps to the lowest gap, 1<<62 to the middle of the range.
	rng := rand.New(&fixedSource{vals: []int64{0, 1 << 62}})
	s := newSim(t, config.DefaultVolcanoConfig(), WithRand(rng))
	s.Start(0)

	run(s, 1, 185, nil)

	pipes := s.Snapshot().Pipes
	if len(pipes) != 2 {
		t.Fatalf("expected 2 columns after 185 frames, got %d", len(pipes))
	}
	// avail = 600 - 230 - 2*50 = 270
	want := []float64{50, 50 + 135}
	for i, p := range pipes {
		if p.GapTop != want[i] {
			t.Errorf("column %d gapTop = %v, want %v", p.ID, p.GapTop, want[i])
		}
	}
}
