package alarm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
)

var ErrSoundLocked = errors.New("alarm: sound locked")

type Player interface {
	Play(ctx context.Context) error
}

// Sound is the single reusable alarm handle. Playback stays locked until the
// first user interaction unlocks it.
type Sound struct {
	mu       sync.Mutex
	player   Player
	unlocked bool
}

func NewSound(p Player) *Sound {
	if p == nil {
		p = BellPlayer{W: os.Stderr}
	}
	return &Sound{player: p}
}

func (s *Sound) Unlock() {
	s.mu.Lock()
	s.unlocked = true
	s.mu.Unlock()
}

func (s *Sound) Unlocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unlocked
}

func (s *Sound) Play(ctx context.Context) error {
	s.mu.Lock()
	unlocked := s.unlocked
	s.mu.Unlock()
	if !unlocked {
		return ErrSoundLocked
	}
	return s.player.Play(ctx)
}

// BellPlayer rings the terminal bell.
type BellPlayer struct {
	W io.Writer
}

func (b BellPlayer) Play(context.Context) error {
	_, err := io.WriteString(b.W, "\a")
	return err
}

// ExecPlayer plays File with an external audio command. Play returns once
// the command has started.
type ExecPlayer struct {
	Command string
	File    string
}

func (p ExecPlayer) Play(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, p.Command, p.File)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("alarm: start %s: %w", p.Command, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

var playerCommands = []string{"paplay", "aplay", "afplay"}

// DetectPlayer picks the first installed audio command for file, falling
// back to the terminal bell when there is no file or no player.
func DetectPlayer(file string, lookPath func(string) (string, error), bell io.Writer) Player {
	if file != "" && lookPath != nil {
		if _, err := os.Stat(file); err == nil {
			for _, name := range playerCommands {
				if path, err := lookPath(name); err == nil {
					return ExecPlayer{Command: path, File: file}
				}
			}
		}
	}
	return BellPlayer{W: bell}
}
