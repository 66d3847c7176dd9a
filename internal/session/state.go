// Package session owns the dashboard's fetch lifecycle: one request for the
// latest simulation result per mount, settled into a phase-typed state.
package session

import "github.com/san-kum/ksdash/internal/client"

type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// Cause records why a fetch failed. It is diagnostic only; the user sees
// the same message for both.
type Cause int

const (
	CauseNone Cause = iota
	CauseAbsent
	CauseTransport
)

// State is the session view state. The zero value is the loading state.
// Fields are unexported so only Loading, Failed and Reduce can build one,
// which keeps error and data mutually exclusive.
type State struct {
	phase Phase
	data  *client.Result
	err   string
	cause Cause
}

func Loading() State { return State{phase: PhaseLoading} }

func Failed(msg string, cause Cause) State {
	return State{phase: PhaseFailed, err: msg, cause: cause}
}

func ready(r *client.Result) State { return State{phase: PhaseReady, data: r} }

func (s State) Phase() Phase         { return s.phase }
func (s State) IsLoading() bool      { return s.phase == PhaseLoading }
func (s State) Err() string          { return s.err }
func (s State) Data() *client.Result { return s.data }
func (s State) Cause() Cause         { return s.cause }
func (s State) HasError() bool       { return s.phase == PhaseFailed }
func (s State) Settled() bool        { return s.phase != PhaseLoading }

// Event is the outcome of one client call.
type Event struct {
	Result *client.Result
	Err    error
}

// Reduce applies ev to s. Only a loading state moves; a settled state is
// returned unchanged so a late outcome never overwrites an earlier one.
func Reduce(s State, ev Event, message string) State {
	if s.phase != PhaseLoading {
		return s
	}
	switch {
	case ev.Err != nil:
		return Failed(message, CauseTransport)
	case ev.Result == nil:
		return Failed(message, CauseAbsent)
	default:
		return ready(ev.Result)
	}
}
