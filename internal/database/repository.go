package database

import (
	"context"

	"user-management/internal/apperr"
	"user-management/internal/models"
)

// UserFilter narrows Find. Nil fields are left out of the WHERE clause;
// present fields are combined with AND and compared for exact equality.
type UserFilter struct {
	ID       *int64
	FullName *string
	Username *string
}

// UpdateSelector picks the rows Update rewrites. With both fields set the rows
// matching either the id or the old full name are updated.
type UpdateSelector struct {
	ID      *int64
	OldName *string
}

func (s UpdateSelector) IsEmpty() bool {
	return s.ID == nil && s.OldName == nil
}

// DeleteSelector picks the row Delete removes. ID wins when both are set.
type DeleteSelector struct {
	ID       *int64
	Username *string
}

func (s DeleteSelector) IsEmpty() bool {
	return s.ID == nil && s.Username == nil
}

// UserRepository is implemented once per backend. Every method acquires its own
// connection and releases it before returning.
type UserRepository interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, fullName, username string) (*models.User, error)
	Find(ctx context.Context, filter UserFilter) ([]models.User, error)
	Update(ctx context.Context, sel UpdateSelector, fullName, username string) (int64, error)
	Delete(ctx context.Context, sel DeleteSelector) (int64, error)
	Ping(ctx context.Context) error
	Backend() string
	Close()
}

func checkUserFields(fullName, username string) error {
	if fullName == "" || username == "" {
		return apperr.Validation("Both full name and username are required")
	}
	return nil
}

func checkUpdate(sel UpdateSelector, fullName, username string) error {
	if sel.IsEmpty() {
		return apperr.Validation("ID or old name is required")
	}
	return checkUserFields(fullName, username)
}

func checkDelete(sel DeleteSelector) error {
	if sel.IsEmpty() {
		return apperr.Validation("ID or username is required")
	}
	return nil
}
