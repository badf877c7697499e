package model

import (
	"github.com/google/uuid"
)

// Actor is the authenticated identity a request acts as, resolved by the
// auth middleware and threaded explicitly into every operation. The role
// used for authorization comes from the workspace membership row, not from
// the token.
type Actor struct {
	UserID      uuid.UUID
	WorkspaceID uuid.UUID
	Email       string
}
