package cronwheel

import "github.com/google/uuid"

// NewTaskID returns a fresh opaque task identifier, for callers that don't
// want to manage their own id namespace. Grounded in
// jkilzi-assisted-migration-agent/pkg/console/client.go's use of
// uuid.UUID as an opaque entity identifier.
func NewTaskID() string {
	return uuid.NewString()
}
