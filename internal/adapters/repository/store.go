// Package repository defines the session store interface and errors.
package repository

import (
	"context"

	"github.com/okian/premia/internal/domain/model"
)

// Store provides read/write access to the current session state.
type Store interface {
	// Snapshot returns a copy of the current session. The copy is safe
	// to read and serialize without further locking.
	Snapshot(ctx context.Context) model.Session

	// Update applies fn to the session under the store's write lock.
	// fn receives the live session and mutates it in place.
	Update(ctx context.Context, fn func(*model.Session)) error

	// Reset replaces the session with the seed defaults.
	Reset(ctx context.Context)
}
