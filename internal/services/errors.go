// Package services implements the social graph, content store, feed and notification
// operations. Every operation takes the acting user explicitly.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/nano-social/backend/internal/repositories"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied is returned when the actor does not own the entity being mutated.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrConflict is returned when a uniqueness invariant would be violated.
	ErrConflict = errors.New("conflict")
	// ErrInvalid is returned for malformed arguments.
	ErrInvalid = errors.New("invalid argument")
	// ErrInvalidCredentials is returned by sign-in for an unknown login or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// notFound wraps a repository miss as ErrNotFound naming the entity, and passes other errors through.
func notFound(err error, entity string, id any) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: %s %v", ErrNotFound, entity, id)
	}
	return err
}

// requireUser fails with ErrNotFound when id names no account. Mutations check their actor
// with it, since a token can outlive the account it was issued for.
func requireUser(ctx context.Context, users repositories.UserRepository, id uint) error {
	if _, err := users.GetUserByID(ctx, id); err != nil {
		return notFound(err, "user", id)
	}
	return nil
}

// lostReference reports an insert that raced with the deletion of its user or post as ErrNotFound.
func lostReference(err error) error {
	if errors.Is(err, repositories.ErrMissingReference) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
