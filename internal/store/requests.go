package store

import (
	"context"
	"errors"
	"time"

	"ishan/rms-api/internal/model"

	"gorm.io/gorm"
)

type RequestStore struct {
	db *gorm.DB
}

func NewRequestStore(db *gorm.DB) *RequestStore {
	return &RequestStore{db: db}
}

func (s *RequestStore) Create(ctx context.Context, r *model.Request) error {
	return s.db.WithContext(ctx).Create(r).Error
}

// DraftFields are the attributes an owner may rewrite while a request is
// still a draft.
type DraftFields struct {
	Title    string
	Amount   float64
	Date     string
	Category model.Category
}

// UpdateDraft overwrites the editable fields, but only while the row is
// still the caller's DRAFT. Returns the number of rows changed.
func (s *RequestStore) UpdateDraft(ctx context.Context, id uint, ownerID string, f DraftFields) (int64, error) {
	r := s.db.WithContext(ctx).
		Model(model.Request{}).
		Where("id = ? AND created_by = ? AND status = ?", id, ownerID, model.StatusDraft).
		Updates(map[string]any{
			"title":    f.Title,
			"amount":   f.Amount,
			"date":     f.Date,
			"category": f.Category,
		})

	return r.RowsAffected, r.Error
}

// SetAttachment records the receipt reference on the caller's DRAFT.
func (s *RequestStore) SetAttachment(ctx context.Context, id uint, ownerID, ref string) (int64, error) {
	r := s.db.WithContext(ctx).
		Model(model.Request{}).
		Where("id = ? AND created_by = ? AND status = ?", id, ownerID, model.StatusDraft).
		Update("attachment", ref)

	return r.RowsAffected, r.Error
}

// TransitionOwner moves the caller's own request from one status to another.
// The predicate carries the expected prior status and the ownership check,
// so the guard and the mutation are a single atomic statement.
func (s *RequestStore) TransitionOwner(ctx context.Context, id uint, ownerID string, from, to model.Status) (int64, error) {
	r := s.db.WithContext(ctx).
		Model(model.Request{}).
		Where("id = ? AND created_by = ? AND status = ?", id, ownerID, from).
		Update("status", to)

	return r.RowsAffected, r.Error
}

// Review applies a manager decision on a SUBMITTED request: the new status,
// the reviewer, the review time and the comment (nil for approvals) land in
// one conditional update. Two concurrent reviews race on the same predicate
// and at most one changes the row.
func (s *RequestStore) Review(ctx context.Context, id uint, reviewerID string, to model.Status, comment *string, now time.Time) (int64, error) {
	r := s.db.WithContext(ctx).
		Model(model.Request{}).
		Where("id = ? AND status = ?", id, model.StatusSubmitted).
		Updates(map[string]any{
			"status":          to,
			"reviewed_by":     reviewerID,
			"reviewed_at":     now,
			"manager_comment": comment,
		})

	return r.RowsAffected, r.Error
}

const joinOwner = "JOIN users u ON u.id = requests.created_by"

// ListByOwner returns the owner's requests, newest first, with the owner's
// username joined in.
func (s *RequestStore) ListByOwner(ctx context.Context, ownerID string) ([]model.RequestWithOwner, error) {
	var out []model.RequestWithOwner

	err := s.db.WithContext(ctx).
		Model(model.Request{}).
		Select("requests.*, u.username").
		Joins(joinOwner).
		Where("requests.created_by = ?", ownerID).
		Order("requests.created_at DESC").
		Find(&out).Error

	return out, err
}

// ListByStatus returns all requests currently in the given status, newest
// first. Used by managers to list pending work.
func (s *RequestStore) ListByStatus(ctx context.Context, status model.Status) ([]model.RequestWithOwner, error) {
	var out []model.RequestWithOwner

	err := s.db.WithContext(ctx).
		Model(model.Request{}).
		Select("requests.*, u.username").
		Joins(joinOwner).
		Where("requests.status = ?", status).
		Order("requests.created_at DESC").
		Find(&out).Error

	return out, err
}

func (s *RequestStore) ByID(ctx context.Context, id uint) (*model.RequestWithOwner, error) {
	var out model.RequestWithOwner

	err := s.db.WithContext(ctx).
		Model(model.Request{}).
		Select("requests.*, u.username").
		Joins(joinOwner).
		Where("requests.id = ?", id).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// SummaryByOwner counts the owner's requests per status.
func (s *RequestStore) SummaryByOwner(ctx context.Context, ownerID string) (map[model.Status]int64, error) {
	var rows []struct {
		Status model.Status
		Count  int64
	}

	err := s.db.WithContext(ctx).
		Model(model.Request{}).
		Select("status, count(*) as count").
		Where("created_by = ?", ownerID).
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[model.Status]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Count
	}

	return out, nil
}
