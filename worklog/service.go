// Package worklog handles creation of worklog entries. Aggregation into
// worked time lives in the flextime engine; this service validates and
// persists new entries.
package worklog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/warp/flextime-engine/flextime"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyTaskDesc rejects entries without a task description.
	ErrEmptyTaskDesc = errors.New("worklog task description is empty")

	// ErrFutureLogTime rejects entries logged for a future instant.
	ErrFutureLogTime = errors.New("worklog time lies in the future")
)

// =============================================================================
// CREATION
// =============================================================================

// Store persists new worklog entries.
type Store interface {
	CreateWorklog(ctx context.Context, entry flextime.Worklog) error
}

// Service validates and records worklog entries.
type Service struct {
	Store Store

	// Now is the time source for future-entry validation; defaults to
	// time.Now when nil.
	Now func() time.Time
}

func NewService(store Store) *Service {
	return &Service{Store: store}
}

// Create validates the entry and persists it.
func (s *Service) Create(ctx context.Context, entry flextime.Worklog) error {
	if err := Validate(entry, s.now()); err != nil {
		return err
	}
	if err := s.Store.CreateWorklog(ctx, entry); err != nil {
		return fmt.Errorf("persist worklog: %w", err)
	}
	return nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Validate applies the creation rules: a non-empty description and a log
// time that is not in the future.
func Validate(entry flextime.Worklog, now time.Time) error {
	if strings.TrimSpace(entry.TaskDesc) == "" {
		return ErrEmptyTaskDesc
	}
	if entry.LogTime.After(now) {
		return ErrFutureLogTime
	}
	return nil
}
