package server

import (
	"context"
	"errors"
	"log"
	"time"
)

// Runner advances a session on a fixed real-time interval.
type Runner struct {
	Session  *Session
	Interval time.Duration
	Logger   *log.Logger
}

// Run blocks until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	if r.Session == nil {
		return errors.New("runner needs a session")
	}
	if r.Interval <= 0 {
		return errors.New("runner interval must be positive")
	}
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}

	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.Session.Step(ctx); err != nil {
				logger.Printf("runner step: %v", err)
			}
		}
	}
}
