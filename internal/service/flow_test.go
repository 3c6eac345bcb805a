package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionFlow_SuccessResetsToIdle(t *testing.T) {
	flow := NewSubmissionFlow(30*time.Millisecond, 30*time.Millisecond, nil)
	require.Equal(t, FlowIdle, flow.State())

	require.NoError(t, flow.Begin())
	assert.Equal(t, FlowSubmitting, flow.State())

	flow.Succeed()
	assert.Equal(t, FlowSuccess, flow.State())

	assert.Eventually(t, func() bool {
		return flow.State() == FlowIdle
	}, time.Second, 5*time.Millisecond)
}

func TestSubmissionFlow_RejectionShowsMessageThenClears(t *testing.T) {
	flow := NewSubmissionFlow(30*time.Millisecond, 30*time.Millisecond, nil)

	require.NoError(t, flow.Begin())
	flow.Reject("the band is not taking requests right now")

	assert.Equal(t, FlowRejected, flow.State())
	assert.Equal(t, "the band is not taking requests right now", flow.Message())

	assert.Eventually(t, func() bool {
		return flow.State() == FlowIdle && flow.Message() == ""
	}, time.Second, 5*time.Millisecond)
}

func TestSubmissionFlow_FailureSticksUntilRetry(t *testing.T) {
	flow := NewSubmissionFlow(20*time.Millisecond, 20*time.Millisecond, nil)

	require.NoError(t, flow.Begin())
	flow.Fail("could not save your request")

	assert.Equal(t, FlowFailed, flow.State())
	assert.Equal(t, "could not save your request", flow.Message())

	// Unlike a rejection, a failure never decays back to idle on its own.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, FlowFailed, flow.State())
	assert.Equal(t, "could not save your request", flow.Message())

	// The fan can retry straight from the failure.
	require.NoError(t, flow.Begin())
	assert.Equal(t, FlowSubmitting, flow.State())
	assert.Empty(t, flow.Message())
}

func TestSubmissionFlow_StaleFailureDropped(t *testing.T) {
	flow := NewSubmissionFlow(time.Minute, time.Minute, nil)

	require.NoError(t, flow.Begin())
	flow.Succeed()

	// A late failure callback from the finished attempt changes nothing.
	flow.Fail("write timed out")
	assert.Equal(t, FlowSuccess, flow.State())
	assert.Empty(t, flow.Message())
}

func TestSubmissionFlow_DoubleSubmitRefused(t *testing.T) {
	flow := NewSubmissionFlow(time.Minute, time.Minute, nil)

	require.NoError(t, flow.Begin())
	assert.Error(t, flow.Begin())
}

func TestSubmissionFlow_ResubmitBeforeAutoClear(t *testing.T) {
	flow := NewSubmissionFlow(time.Minute, time.Minute, nil)

	require.NoError(t, flow.Begin())
	flow.Succeed()

	// The fan fires another request while the success banner is up. The
	// pending reset must not later knock the new submission back to idle.
	require.NoError(t, flow.Begin())
	assert.Equal(t, FlowSubmitting, flow.State())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, FlowSubmitting, flow.State())
}

func TestSubmissionFlow_StaleOutcomeDropped(t *testing.T) {
	flow := NewSubmissionFlow(time.Minute, time.Minute, nil)

	require.NoError(t, flow.Begin())
	flow.Succeed()

	// A late rejection callback from the replaced attempt changes nothing.
	flow.Reject("too late")
	assert.Equal(t, FlowSuccess, flow.State())
	assert.Empty(t, flow.Message())
}

func TestSubmissionFlow_NotifiesOnChange(t *testing.T) {
	var mu sync.Mutex
	var states []FlowState

	flow := NewSubmissionFlow(20*time.Millisecond, 20*time.Millisecond, func(state FlowState) {
		mu.Lock()
		states = append(states, state)
		mu.Unlock()
	})

	require.NoError(t, flow.Begin())
	flow.Succeed()

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(states) == 3 && states[2] == FlowIdle
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []FlowState{FlowSubmitting, FlowSuccess, FlowIdle}, states)
}
