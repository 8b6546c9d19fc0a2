package config

import "testing"

func TestDifficultyDisabled(t *testing.T) {
	d := NewDifficultyManager(DefaultVolcanoConfig().Difficulty)

	if d.IsEnabled() {
		t.Fatal("default difficulty should be disabled")
	}
	if got := d.Speed(6.5, 100000, 100000); got != 6.5 {
		t.Errorf("Speed() = %v, expected base speed when disabled", got)
	}
	if got := d.SpawnRate(90, 100000, 100000); got != 90 {
		t.Errorf("SpawnRate() = %d, expected base rate when disabled", got)
	}
}

func TestDifficultyScoreProgression(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 1000},
		Scaling:     ScalingConfig{SpeedMultiplier: 1.0, SpawnReduction: 30},
	}
	d := NewDifficultyManager(cfg)

	tests := []struct {
		score     int
		wantLevel float64
		wantSpeed float64
		wantRate  int
	}{
		{0, 0, 5, 90},
		{500, 0.5, 7.5, 75},
		{1000, 1, 10, 60},
		{5000, 1, 10, 60},
	}
	for _, tc := range tests {
		if got := d.Level(tc.score, 0); got != tc.wantLevel {
			t.Errorf("Level(%d) = %v, expected %v", tc.score, got, tc.wantLevel)
		}
		if got := d.Speed(5, tc.score, 0); got != tc.wantSpeed {
			t.Errorf("Speed(%d) = %v, expected %v", tc.score, got, tc.wantSpeed)
		}
		if got := d.SpawnRate(90, tc.score, 0); got != tc.wantRate {
			t.Errorf("SpawnRate(%d) = %d, expected %d", tc.score, got, tc.wantRate)
		}
	}
}

func TestDifficultyTimeProgressionWithInitialLevel(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 100},
	}
	d := NewDifficultyManager(cfg)

	if got := d.Level(0, 0); got != 0.5 {
		t.Errorf("Level at start = %v, expected 0.5", got)
	}
	if got := d.Level(0, 50); got != 0.75 {
		t.Errorf("Level halfway = %v, expected 0.75", got)
	}
}

func TestDifficultySpawnRateFloor(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 1},
		Scaling:     ScalingConfig{SpawnReduction: 1000},
	}
	d := NewDifficultyManager(cfg)

	if got := d.SpawnRate(90, 10, 0); got != 30 {
		t.Errorf("SpawnRate() = %d, expected floor of 30", got)
	}
	if got := d.SpawnRate(1, 10, 0); got != 1 {
		t.Errorf("SpawnRate() = %d, expected at least 1", got)
	}
}
