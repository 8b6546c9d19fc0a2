// Package audio plays the background battle theme. Playback is
// best-effort: callers log errors and keep the game running.
package audio

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// DefaultTrack is the looping battle theme.
const DefaultTrack = "https://ia800504.us.archive.org/11/items/Pocket_Monsters_Green_GB_music/10%20-%20Battle%20%28Vs.%20Wild%20Pok%C3%A9mon%29.mp3"

// TrackPlaceholder in a player command is replaced by the track location.
const TrackPlaceholder = "{track}"

// ErrNoPlayer is returned when a command soundtrack has an empty command.
var ErrNoPlayer = errors.New("audio: no player command")

// Soundtrack starts and stops background music.
type Soundtrack interface {
	// Play starts the track from the beginning, replacing any current
	// playback. It returns once playback has been started.
	Play(ctx context.Context) error
	// Stop ends playback. Stopping a silent soundtrack is not an error.
	Stop() error
}

// Nop is a silent Soundtrack.
type Nop struct{}

// Play does nothing.
func (Nop) Play(context.Context) error { return nil }

// Stop does nothing.
func (Nop) Stop() error { return nil }

// CommandSoundtrack plays the track through an external player process,
// e.g. "mpv --no-video --loop=inf --volume=40 {track}".
type CommandSoundtrack struct {
	name string
	args []string

	mu     sync.Mutex
	cmd    *exec.Cmd
	cancel context.CancelFunc
	done   chan struct{}
}

// NewCommand parses a player command line. The track replaces every
// TrackPlaceholder argument, or is appended when there is none.
func NewCommand(command, track string) (*CommandSoundtrack, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, ErrNoPlayer
	}

	args := make([]string, 0, len(fields))
	replaced := false
	for _, f := range fields[1:] {
		if strings.Contains(f, TrackPlaceholder) {
			f = strings.ReplaceAll(f, TrackPlaceholder, track)
			replaced = true
		}
		args = append(args, f)
	}
	if !replaced && track != "" {
		args = append(args, track)
	}

	return &CommandSoundtrack{name: fields[0], args: args}, nil
}

// Command returns the program and arguments that Play runs.
func (s *CommandSoundtrack) Command() (string, []string) {
	return s.name, append([]string(nil), s.args...)
}

// Play restarts the player process.
func (s *CommandSoundtrack) Play(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, s.name, s.args...)
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("audio: start %s: %w", s.name, err)
	}

	done := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(done)
	}()

	s.cmd = cmd
	s.cancel = cancel
	s.done = done
	return nil
}

// Stop kills the player process and waits for it to exit.
func (s *CommandSoundtrack) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	return nil
}

// Playing reports whether a player process is still running.
func (s *CommandSoundtrack) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == nil {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

func (s *CommandSoundtrack) stopLocked() {
	if s.cmd == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cmd = nil
	s.cancel = nil
	s.done = nil
}
