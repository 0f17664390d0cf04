package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/messmate/backend/internal/models"
)

var (
	ErrValidation          = errors.New("validation")           // 400
	ErrNotFound            = errors.New("not found")            // 404
	ErrInsufficientCredits = errors.New("insufficient credits") // 402
	ErrPlanAlreadyActive   = errors.New("plan already active")  // 409
	ErrInvalidTransition   = errors.New("invalid transition")   // 409
	ErrConflict            = errors.New("conflict")             // 409
)

// Actor is the authenticated identity behind a request. Handlers build
// it from verified token claims; services never read ambient session
// state.
type Actor struct {
	UserID uint
	Role   models.Role
}

const maxRetries = 3

// withRetry re-runs fn on transient lock/serialization failures and
// surfaces ErrConflict once the attempts are exhausted. Business errors
// pass through on the first occurrence.
func withRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err = fn()
		if err == nil || !isRetryable(err) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrConflict, err)
}

func isRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// serialization_failure, lock_not_available
		return pqErr.Code == "40001" || pqErr.Code == "55P03"
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
