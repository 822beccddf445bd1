package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"cardempire/internal/game"
	"cardempire/internal/store"
)

var ErrNoStore = errors.New("no save store configured")

// Session owns one game. Every read and command runs under the same mutex
// so a tick never interleaves with a player action.
type Session struct {
	mu       sync.Mutex
	game     *game.Game
	store    store.Store
	slot     string
	autosave bool
	paused   bool
	log      *log.Logger
}

type SessionOptions struct {
	Game     *game.Game
	Store    store.Store
	Slot     string
	Autosave bool
	Logger   *log.Logger
}

func NewSession(opts SessionOptions) (*Session, error) {
	if opts.Game == nil {
		return nil, errors.New("game is required")
	}
	if strings.TrimSpace(opts.Slot) == "" {
		opts.Slot = "default"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Session{
		game:     opts.Game,
		store:    opts.Store,
		slot:     opts.Slot,
		autosave: opts.Autosave,
		log:      opts.Logger,
	}, nil
}

// Do runs fn with exclusive access to the game.
func (s *Session) Do(fn func(g *game.Game)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.game)
}

// Advance moves the clock and autosaves when a day ends.
func (s *Session) Advance(ctx context.Context, minutes int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advanceLocked(ctx, minutes)
}

// Step advances one real-time step unless the session is paused.
func (s *Session) Step(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused {
		return false, nil
	}
	return s.advanceLocked(ctx, s.game.Balance().MinutesPerStep)
}

func (s *Session) advanceLocked(ctx context.Context, minutes int) (bool, error) {
	if !s.game.Advance(minutes) {
		return false, nil
	}
	if !s.autosave || s.store == nil {
		return true, nil
	}
	data, err := s.game.Serialize()
	if err != nil {
		return true, fmt.Errorf("autosave: %w", err)
	}
	if err := s.store.Save(ctx, s.slot, data); err != nil {
		return true, fmt.Errorf("autosave: %w", err)
	}
	s.log.Printf("autosaved slot=%s day=%d", s.slot, s.game.Day())
	return true, nil
}

func (s *Session) Save(ctx context.Context) error {
	if s.store == nil {
		return ErrNoStore
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.SaveTo(ctx, s.store, s.slot)
}

func (s *Session) Load(ctx context.Context) error {
	if s.store == nil {
		return ErrNoStore
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.LoadFrom(ctx, s.store, s.slot)
}

// Resume restores the slot if it exists. A missing slot is not an error.
func (s *Session) Resume(ctx context.Context) (bool, error) {
	if s.store == nil {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.store.Load(ctx, s.slot)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := s.game.Restore(data); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Session) SetPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = paused
}

func (s *Session) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

func (s *Session) Slot() string { return s.slot }
