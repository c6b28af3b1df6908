package globals

import "context"

// Context keys
type ContextKey string

const UserKey ContextKey = "user"

var Ctx = context.Background()
