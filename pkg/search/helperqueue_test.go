package search_test

import (
	"testing"
	"time"

	"github.com/corvid-chess/corvid/pkg/eval"
	"github.com/corvid-chess/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelperQueuePublishAcquireRoundTrip(t *testing.T) {
	q := search.NewHelperQueue()
	job := search.NewJob(1, 4, 0, eval.Score(-100), eval.Score(100))

	acquired := make(chan *search.Job, 1)
	go func() {
		j, ok := q.Acquire(nil)
		require.True(t, ok)
		acquired <- j
	}()

	q.Publish(job)

	select {
	case got := <-acquired:
		assert.Same(t, job, got)
	case <-time.After(time.Second):
		t.Fatal("helper never acquired the published job")
	}
}

func TestHelperQueueReleaseAllUnblocksWaitingHelpers(t *testing.T) {
	q := search.NewHelperQueue()
	done := make(chan bool, 1)

	go func() {
		_, ok := q.Acquire(nil)
		done <- ok
	}()

	time.Sleep(20 * time.Millisecond) // let the helper start waiting
	q.ReleaseAll()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("ReleaseAll did not unblock the waiting helper")
	}
}

func TestHelperQueueOnAcquireRunsBeforeSlotClears(t *testing.T) {
	q := search.NewHelperQueue()
	job := search.NewJob(1, 4, 0, eval.Score(-100), eval.Score(100))

	var sawJob *search.Job
	go func() {
		q.Acquire(func(j *search.Job) { sawJob = j })
	}()

	q.Publish(job)
	assert.Same(t, job, sawJob)
}
