// Package workflow implements the reimbursement request state machine.
//
// Every transition is a single conditional update whose predicate includes
// the expected prior status and the caller's ownership or role constraint.
// Zero affected rows means the transition did not happen; the caller is
// told "invalid transition" without learning whether the status or the
// authorization half of the predicate failed. Concurrent conflicting
// transitions race on the same predicate and exactly one wins.
package workflow

import (
	"context"
	"errors"
	"strings"
	"time"

	"ishan/rms-api/internal/model"
	"ishan/rms-api/internal/store"
)

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrCommentRequired   = errors.New("rejection comment is required")
)

type Engine struct {
	Requests *store.RequestStore
}

func NewEngine(requests *store.RequestStore) *Engine {
	return &Engine{Requests: requests}
}

// EditDraft overwrites the editable fields of the owner's DRAFT.
func (e *Engine) EditDraft(ctx context.Context, id uint, ownerID string, f store.DraftFields) error {
	n, err := e.Requests.UpdateDraft(ctx, id, ownerID, f)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInvalidTransition
	}
	return nil
}

// Submit moves the owner's DRAFT to SUBMITTED.
func (e *Engine) Submit(ctx context.Context, id uint, ownerID string) error {
	return e.ownerTransition(ctx, id, ownerID, model.StatusDraft, model.StatusSubmitted)
}

// FinalApprove moves the owner's MANAGER_APPROVED request to FINAL_APPROVED.
func (e *Engine) FinalApprove(ctx context.Context, id uint, ownerID string) error {
	return e.ownerTransition(ctx, id, ownerID, model.StatusManagerApproved, model.StatusFinalApproved)
}

func (e *Engine) ownerTransition(ctx context.Context, id uint, ownerID string, from, to model.Status) error {
	n, err := e.Requests.TransitionOwner(ctx, id, ownerID, from, to)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInvalidTransition
	}
	return nil
}

// Approve moves a SUBMITTED request to MANAGER_APPROVED, recording the
// reviewer and review time and clearing any previous comment.
func (e *Engine) Approve(ctx context.Context, id uint, managerID string) (time.Time, error) {
	now := time.Now()

	n, err := e.Requests.Review(ctx, id, managerID, model.StatusManagerApproved, nil, now)
	if err != nil {
		return time.Time{}, err
	}
	if n == 0 {
		return time.Time{}, ErrInvalidTransition
	}

	return now, nil
}

// Reject moves a SUBMITTED request to REJECTED. The comment is mandatory
// and must be at least 3 characters after trimming; it is validated before
// any store call so an invalid comment never touches the row.
func (e *Engine) Reject(ctx context.Context, id uint, managerID, comment string) (time.Time, error) {
	comment = strings.TrimSpace(comment)
	if len(comment) < 3 {
		return time.Time{}, ErrCommentRequired
	}

	now := time.Now()

	n, err := e.Requests.Review(ctx, id, managerID, model.StatusRejected, &comment, now)
	if err != nil {
		return time.Time{}, err
	}
	if n == 0 {
		return time.Time{}, ErrInvalidTransition
	}

	return now, nil
}
