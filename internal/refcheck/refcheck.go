// Package refcheck pre-flights foreign keys before a mutation reaches the
// store, so callers get a structured not-found instead of a constraint
// violation.
package refcheck

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Ref names one foreign key to verify. ID is skipped when nil.
type Ref struct {
	Kind  string
	Model interface{}
	ID    *int64
}

// NotFoundError reports the first missing reference encountered.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d does not exist", e.Kind, e.ID)
}

// Required adapts a mandatory id to the optional form Ensure expects.
func Required(kind string, model interface{}, id int64) Ref {
	return Ref{Kind: kind, Model: model, ID: &id}
}

// Optional skips the check when id is nil.
func Optional(kind string, model interface{}, id *int64) Ref {
	return Ref{Kind: kind, Model: model, ID: id}
}

// Ensure confirms every non-nil reference exists, in declaration order.
// Read-only; fails fast with *NotFoundError on the first miss.
func Ensure(ctx context.Context, db *gorm.DB, refs ...Ref) error {
	for _, ref := range refs {
		if ref.ID == nil {
			continue
		}
		var count int64
		if err := db.WithContext(ctx).
			Model(ref.Model).
			Where("id = ?", *ref.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return &NotFoundError{Kind: ref.Kind, ID: *ref.ID}
		}
	}
	return nil
}
