package search

import "sync"

// HelperQueue is a single-slot rendezvous point between a client worker publishing a Job and the
// idle helpers waiting to join it (spec §4.7). At most one helper may consume a given publish.
type HelperQueue struct {
	mu           sync.Mutex
	helperCond   sync.Cond
	clientCond   sync.Cond
	slot         *Job
	root         bool
	noMoreHelp   bool
	helperCount  int
}

// NewHelperQueue creates an empty queue.
func NewHelperQueue() *HelperQueue {
	q := &HelperQueue{}
	q.helperCond.L = &q.mu
	q.clientCond.L = &q.mu
	return q
}

// Publish sets the slot to job and waits until a helper has copied its state ("ready"), or until
// no-more-help has been signalled (e.g. the search was stopped).
func (q *HelperQueue) Publish(job *Job) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.noMoreHelp {
		return
	}
	q.slot = job
	q.helperCond.Signal()
	for q.slot != nil && !q.noMoreHelp {
		q.clientCond.Wait()
	}
}

// PublishRoot is like Publish, but marks the slot so the first helper to arrive serves the root
// job immediately, even if it arrived before the publish.
func (q *HelperQueue) PublishRoot(job *Job) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.noMoreHelp {
		return
	}
	q.slot = job
	q.root = true
	q.helperCond.Signal()
	for q.slot != nil && !q.noMoreHelp {
		q.clientCond.Wait()
	}
}

// Acquire blocks until a job is published, copies it out under the queue's lock via onAcquire (so
// the caller can fork its own board/null-search state before the slot is cleared), and returns
// it. Returns (nil, false) once no-more-help has been signalled.
func (q *HelperQueue) Acquire(onAcquire func(job *Job)) (*Job, bool) {
	q.mu.Lock()
	q.helperCount++
	defer func() {
		q.mu.Lock()
		q.helperCount--
		if q.helperCount == 0 {
			q.clientCond.Broadcast()
		}
		q.mu.Unlock()
	}()

	for q.slot == nil && !q.noMoreHelp {
		q.helperCond.Wait()
	}
	if q.noMoreHelp {
		q.mu.Unlock()
		return nil, false
	}

	job := q.slot
	if onAcquire != nil {
		onAcquire(job)
	}
	q.slot = nil
	q.root = false
	q.clientCond.Signal()
	q.mu.Unlock()
	return job, true
}

// ReleaseAll signals every waiting helper to stop looking for work and blocks until they've all
// drained, i.e. are no longer counted as active.
func (q *HelperQueue) ReleaseAll() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.noMoreHelp = true
	q.helperCond.Broadcast()
	q.clientCond.Broadcast()
	for q.helperCount > 0 {
		q.clientCond.Wait()
	}
	q.noMoreHelp = false
}
