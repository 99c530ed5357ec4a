package collection

import (
	"context"
	"time"

	"github.com/pkg/errors"

	apperrors "github.com/jrsteele09/go-boardgame-service/internal/errors"
)

// Reconciler idempotently maps a set of requested label names for one owner
// to persisted Label rows, creating only the names that do not exist yet.
// Names are compared case-sensitively by exact string equality.
type Reconciler struct {
	labels  LabelRepo
	nowTime func() time.Time
}

// ReconcilerOption defines a function type to modify the Reconciler instance.
type ReconcilerOption func(*Reconciler)

// WithReconcilerNowTime sets the now time function (primarily for testing)
func WithReconcilerNowTime(nowFunc func() time.Time) ReconcilerOption {
	return func(r *Reconciler) {
		r.nowTime = nowFunc
	}
}

// NewReconciler creates a Reconciler over the given label repo.
func NewReconciler(labels LabelRepo, options ...ReconcilerOption) (*Reconciler, error) {
	if labels == nil {
		return nil, errors.New("[NewReconciler] Labels repo is required")
	}

	r := &Reconciler{labels: labels, nowTime: time.Now}
	for _, opt := range options {
		opt(r)
	}
	return r, nil
}

// Reconcile returns the owner's label rows for the requested names, creating
// the missing ones. Repeated calls with the same names return the same rows.
// An empty request short-circuits without querying.
//
// Two concurrent calls creating the same new name race on the insert; the
// store's (user id, name) uniqueness constraint turns the loser's insert
// into a conflict, which is resolved by fetching the winner's row.
func (r *Reconciler) Reconcile(ctx context.Context, ownerID int64, names []string) ([]Label, error) {
	requested := dedupe(names)
	if len(requested) == 0 {
		return nil, nil
	}

	existing, err := r.labels.ListByUserIDAndNames(ctx, ownerID, requested)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[Reconciler.Reconcile] list labels for user %d", ownerID)
	}

	byName := make(map[string]Label, len(existing))
	for _, label := range existing {
		byName[label.Name] = label
	}

	result := make([]Label, 0, len(requested))
	for _, name := range requested {
		if label, ok := byName[name]; ok {
			result = append(result, label)
			continue
		}

		label, err := r.create(ctx, ownerID, name)
		if err != nil {
			return nil, err
		}
		result = append(result, *label)
	}
	return result, nil
}

func (r *Reconciler) create(ctx context.Context, ownerID int64, name string) (*Label, error) {
	label, err := r.labels.Create(ctx, &Label{
		UserID:    ownerID,
		Name:      name,
		CreatedAt: r.nowTime(),
	})
	if err == nil {
		return label, nil
	}
	if !apperrors.Is(err, apperrors.ErrConflict) {
		return nil, apperrors.Wrapf(err, "[Reconciler.create] label %q for user %d", name, ownerID)
	}

	// Lost the race: a concurrent reconcile inserted the row first.
	// Use the winner's row.
	winners, err := r.labels.ListByUserIDAndNames(ctx, ownerID, []string{name})
	if err != nil {
		return nil, apperrors.Wrapf(err, "[Reconciler.create] refetch label %q for user %d", name, ownerID)
	}
	if len(winners) == 0 {
		return nil, errors.Errorf("[Reconciler.create] label %q vanished after conflict for user %d", name, ownerID)
	}
	return &winners[0], nil
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	return result
}
