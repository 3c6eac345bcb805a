package service

import (
	"sync"
	"time"

	domainerrors "github.com/arohamusic/encore-server/internal/errors"
)

// Submission flow timings. Success flashes briefly and returns to the
// form; rejections linger a little longer so the fan can read why.
const (
	DefaultSuccessReset   = 3 * time.Second
	DefaultRejectionClear = 5 * time.Second
)

// FlowState is a phase of the fan submission flow.
type FlowState string

const (
	// FlowIdle means the form is ready for input.
	FlowIdle FlowState = "idle"
	// FlowSubmitting means a submission is in flight.
	FlowSubmitting FlowState = "submitting"
	// FlowSuccess means the last submission landed; resets to idle automatically.
	FlowSuccess FlowState = "success"
	// FlowRejected means the last submission was refused; clears to idle automatically.
	FlowRejected FlowState = "rejected"
	// FlowFailed means the last submission hit a server error. Unlike
	// rejection this does not auto-clear: the message stays up until the
	// fan retries.
	FlowFailed FlowState = "failed"
)

// SubmissionFlow tracks one fan form through the submit lifecycle.
// Success and rejection are transient: both decay back to idle on their
// own so the form never wedges in a terminal state. Failure is sticky
// and clears only on the next Begin.
type SubmissionFlow struct {
	mu      sync.Mutex
	timer   *time.Timer
	state   FlowState
	message string

	successReset   time.Duration
	rejectionClear time.Duration

	// onChange, when set, is called after every state change with the
	// new state. Called without the lock held.
	onChange func(FlowState)
}

// NewSubmissionFlow creates a flow in the idle state. Non-positive
// durations fall back to the defaults.
func NewSubmissionFlow(successReset, rejectionClear time.Duration, onChange func(FlowState)) *SubmissionFlow {
	if successReset <= 0 {
		successReset = DefaultSuccessReset
	}
	if rejectionClear <= 0 {
		rejectionClear = DefaultRejectionClear
	}
	return &SubmissionFlow{
		state:          FlowIdle,
		successReset:   successReset,
		rejectionClear: rejectionClear,
		onChange:       onChange,
	}
}

// State returns the current phase.
func (f *SubmissionFlow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Message returns the rejection message, if any.
func (f *SubmissionFlow) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Begin marks a submission as in flight. Starting from success,
// rejected, or failed is allowed (the fan resubmitted or retried), but
// a second submit while one is still in flight is refused.
func (f *SubmissionFlow) Begin() error {
	f.mu.Lock()
	if f.state == FlowSubmitting {
		f.mu.Unlock()
		return domainerrors.Conflict("a submission is already in progress")
	}
	f.stopTimerLocked()
	f.state = FlowSubmitting
	f.message = ""
	f.mu.Unlock()

	f.notify(FlowSubmitting)
	return nil
}

// Succeed records a landed submission and schedules the reset to idle.
func (f *SubmissionFlow) Succeed() {
	f.transitionFrom(FlowSubmitting, FlowSuccess, "", f.successReset)
}

// Reject records a refused submission with the reason shown to the fan,
// and schedules the clear back to idle.
func (f *SubmissionFlow) Reject(message string) {
	f.transitionFrom(FlowSubmitting, FlowRejected, message, f.rejectionClear)
}

// Fail records a submission that hit a server error. No decay timer is
// armed: the failure stays visible and the fan retries with Begin.
func (f *SubmissionFlow) Fail(message string) {
	f.mu.Lock()
	if f.state != FlowSubmitting {
		f.mu.Unlock()
		return
	}
	f.stopTimerLocked()
	f.state = FlowFailed
	f.message = message
	f.mu.Unlock()

	f.notify(FlowFailed)
}

// transitionFrom moves from the expected state into a transient state
// that decays to idle after the given duration. Calls from stale states
// are dropped, which keeps late callbacks from reviving a cleared form.
func (f *SubmissionFlow) transitionFrom(expected, next FlowState, message string, decay time.Duration) {
	f.mu.Lock()
	if f.state != expected {
		f.mu.Unlock()
		return
	}
	f.stopTimerLocked()
	f.state = next
	f.message = message
	f.timer = time.AfterFunc(decay, func() {
		f.reset(next)
	})
	f.mu.Unlock()

	f.notify(next)
}

// reset returns to idle, but only if the flow is still in the transient
// state the timer was armed for.
func (f *SubmissionFlow) reset(from FlowState) {
	f.mu.Lock()
	if f.state != from {
		f.mu.Unlock()
		return
	}
	f.state = FlowIdle
	f.message = ""
	f.timer = nil
	f.mu.Unlock()

	f.notify(FlowIdle)
}

func (f *SubmissionFlow) stopTimerLocked() {
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

func (f *SubmissionFlow) notify(state FlowState) {
	if f.onChange != nil {
		f.onChange(state)
	}
}
