package topup

import (
	"sync"

	"github.com/google/uuid"
)

// State of a top-up flow
type State int

const (
	StateClosed State = iota
	StateModeSelect
	StateSubmitting
)

// Mode of a top-up
type Mode string

const (
	ModeManual Mode = "manual"
	ModeQR     Mode = "qr"
)

// Input is what the admin entered for the current attempt. It survives a
// failed submission so a retry does not start from scratch.
type Input struct {
	Mode   Mode
	Points int64
	Amount float64
}

// Flow is the per admin/user top-up state machine. While a submission is in
// flight it refuses re-entry, so at most one credit call can result from any
// number of concurrent submit requests.
type Flow struct {
	mu    sync.Mutex
	state State
	input Input
}

// BeginSubmission moves the flow into Submitting, recording the input. It
// fails with ErrSubmissionInFlight when a submission is already running.
func (f *Flow) BeginSubmission(in Input) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateSubmitting {
		return ErrSubmissionInFlight
	}
	f.state = StateSubmitting
	f.input = in
	return nil
}

// Finish resolves the in-flight submission. Success closes the flow and
// clears the input; failure returns to mode selection with the input intact.
func (f *Flow) Finish(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err == nil {
		f.state = StateClosed
		f.input = Input{}
		return
	}
	f.state = StateModeSelect
}

// Snapshot returns the current state and preserved input
func (f *Flow) Snapshot() (State, Input) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state, f.input
}

// Registry holds one Flow per admin/user pair. Submissions transition flows
// only through Begin and Finish, both under the registry lock, so a closed
// flow can be evicted without racing a concurrent submission for the same
// pair: the next Begin simply creates a fresh closed flow.
type Registry struct {
	mu    sync.Mutex
	flows map[string]*Flow
}

// NewRegistry creates an empty flow registry
func NewRegistry() *Registry {
	return &Registry{flows: make(map[string]*Flow)}
}

func flowKey(adminID, userID uuid.UUID) string {
	return adminID.String() + ":" + userID.String()
}

// Get returns the flow for an admin/user pair, creating it on first use
func (r *Registry) Get(adminID, userID uuid.UUID) *Flow {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(flowKey(adminID, userID))
}

func (r *Registry) get(key string) *Flow {
	f, ok := r.flows[key]
	if !ok {
		f = &Flow{}
		r.flows[key] = f
	}
	return f
}

// Begin enters the submission state for an admin/user pair. It fails with
// ErrSubmissionInFlight when that pair already has a submission running.
func (r *Registry) Begin(adminID, userID uuid.UUID, in Input) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(flowKey(adminID, userID)).BeginSubmission(in)
}

// Finish resolves the pair's in-flight submission. Flows that close on
// success are evicted, keeping the registry bounded over a long-lived
// process; failed flows stay so the preserved input survives for a retry.
func (r *Registry) Finish(adminID, userID uuid.UUID, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := flowKey(adminID, userID)
	f, ok := r.flows[key]
	if !ok {
		return
	}
	f.Finish(err)
	if state, _ := f.Snapshot(); state == StateClosed {
		delete(r.flows, key)
	}
}
