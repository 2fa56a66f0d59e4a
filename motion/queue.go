// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package motion

import (
	"cncio.dev/x/motioncore/axis"
	"cncio.dev/x/motioncore/cncerr"
)

// Queue is spec.md §3's MoveQueue: a bounded ring of segments with O(1)
// per-axis remaining-step sums, maintained incrementally on push/pop rather
// than recomputed by scanning the ring.
type Queue struct {
	buf      []Segment
	head     int
	tail     int
	count    int
	remSteps [axis.Count]uint32
}

// NewQueue returns an empty Queue with the given capacity.
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{buf: make([]Segment, capacity)}
}

// Push appends seg, failing with cncerr.RangeError if the queue is full.
func (q *Queue) Push(seg Segment) error {
	if q.count == len(q.buf) {
		return cncerr.New(cncerr.RangeError, "move queue full")
	}
	q.buf[q.tail] = seg
	q.tail = (q.tail + 1) % len(q.buf)
	q.count++
	for a := 0; a < axis.Count; a++ {
		q.remSteps[a] += seg.S[a]
	}
	return nil
}

// PopFront removes and returns the oldest segment.
func (q *Queue) PopFront() (Segment, bool) {
	if q.count == 0 {
		return Segment{}, false
	}
	seg := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	for a := 0; a < axis.Count; a++ {
		q.remSteps[a] -= seg.S[a]
	}
	return seg, true
}

// Clear empties the queue and zeroes the remaining-steps sums, used by the
// E-STOP path.
func (q *Queue) Clear() {
	q.head, q.tail, q.count = 0, 0, 0
	for a := range q.remSteps {
		q.remSteps[a] = 0
	}
}

// Len reports the number of queued segments.
func (q *Queue) Len() int { return q.count }

// Full reports whether the queue has no room for another segment.
func (q *Queue) Full() bool { return q.count == len(q.buf) }

// Cap reports the queue's configured capacity.
func (q *Queue) Cap() int { return len(q.buf) }

// RemSteps reports queue_rem_steps[a]: the sum, over segments still
// waiting in the queue, of seg.S[a].
func (q *Queue) RemSteps(a axis.Index) uint32 {
	return q.remSteps[a]
}
