package precondition

import (
	"sync"

	"github.com/google/uuid"
)

// Handler is the injectable interception target for the failure path.
//
// The handler receives the guarded condition and the failure message as
// thunks so that interception stays lazy: the message is only formatted if
// the handler decides to evaluate it.
type Handler func(condition func() bool, message func() string, loc Location)

// Token is the handle returned by Install. It carries the identity of one
// installation and the right to remove it.
type Token struct {
	id  uuid.UUID
	reg *registry
}

// ID returns the unique identity of this installation.
//
// Uses UUIDv7 so tokens sort by installation time, which is helpful when
// correlating harness logs.
func (t *Token) ID() string {
	return t.id.String()
}

// Label derives an isolation-boundary name for workers launched under this
// installation. Harness logs tag worker goroutines with it.
func (t *Token) Label() string {
	return "fataltest-worker-" + t.id.String()
}

// Remove clears the active handler if, and only if, this token's
// installation is still the active one. A token that has been superseded by
// a later Install is a no-op, so a stale token can never clear a newer
// handler.
//
// Remove is safe to call more than once.
func (t *Token) Remove() {
	t.reg.remove(t)
}

// registry is the process-wide, single-slot registration point for the
// active interception handler.
//
// The slot is deliberately a single value rather than a stack: intended
// usage is one harness invocation at a time, serialized by the caller.
type registry struct {
	mu      sync.Mutex
	handler Handler
	tokenID uuid.UUID
}

// defaultRegistry is the slot consulted by Precondition and
// PreconditionFailure. It is the only ambient state in this package.
var defaultRegistry = &registry{}

// Install publishes h as the active, process-wide interception target and
// returns a token identifying the installation.
//
// Install always succeeds. Installing while another handler is active
// overwrites it (last-install-wins); the earlier token becomes inert.
func Install(h Handler) *Token {
	return defaultRegistry.install(h)
}

func (r *registry) install(h Handler) *Token {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.Must(uuid.NewV7())
	r.handler = h
	r.tokenID = id

	return &Token{id: id, reg: r}
}

func (r *registry) remove(t *Token) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Only the active installation may clear the slot.
	if r.tokenID != t.id {
		return
	}

	r.handler = nil
	r.tokenID = uuid.Nil
}

// current returns the active handler, or nil if none is installed.
func (r *registry) current() Handler {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handler
}
