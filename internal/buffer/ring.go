// SPDX-License-Identifier: MIT
/*
Package buffer implements the bounded sample store that sits between the
capture callback and every downstream consumer.

Ring is a drop-oldest circular buffer of float64 samples: when the producer
outruns the consumers the earliest samples are discarded rather than blocking
the capture path. All operations are short, pure memory operations under a
single mutex, so the audio callback is never starved behind consumer work.
*/
package buffer

import "sync"

// Ring is a fixed-capacity FIFO of unit-normalized samples shared between one
// producer (the capture callback) and any number of consumers. Sample rate and
// channel count are fixed for the lifetime of the buffer.
type Ring struct {
	mu         sync.Mutex
	data       []float64
	writePos   int // next write index
	size       int // occupied count, 0 <= size <= cap(data)
	sampleRate int
	channels   int
}

// New creates a ring buffer holding at most capacity samples.
// sampleRate, channels and capacity must all be positive.
func New(sampleRate, channels, capacity int) *Ring {
	if sampleRate <= 0 || channels <= 0 || capacity <= 0 {
		return nil
	}
	return &Ring{
		data:       make([]float64, capacity),
		sampleRate: sampleRate,
		channels:   channels,
	}
}

// AddSamples appends batch in order, evicting the oldest samples once the
// buffer is full. It never fails; a batch longer than the capacity keeps only
// the newest capacity values.
func (r *Ring) AddSamples(batch []float64) {
	if len(batch) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	capacity := len(r.data)
	if len(batch) >= capacity {
		copy(r.data, batch[len(batch)-capacity:])
		r.writePos = 0
		r.size = capacity
		return
	}

	tail := capacity - r.writePos
	if len(batch) <= tail {
		copy(r.data[r.writePos:], batch)
		r.writePos += len(batch)
		if r.writePos == capacity {
			r.writePos = 0
		}
	} else {
		copy(r.data[r.writePos:], batch[:tail])
		copy(r.data, batch[tail:])
		r.writePos = len(batch) - tail
	}

	r.size += len(batch)
	if r.size > capacity {
		r.size = capacity
	}
}

// ReadSamples returns up to min(count, Len()) samples oldest-first without
// removing them. The result is a fresh slice; callers may hand it to the
// analyzer or a filter without holding the buffer lock.
func (r *Ring) ReadSamples(count int) []float64 {
	if count <= 0 {
		return []float64{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n := count
	if n > r.size {
		n = r.size
	}
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	start := r.writePos - r.size
	if start < 0 {
		start += len(r.data)
	}

	tail := len(r.data) - start
	if n <= tail {
		copy(out, r.data[start:start+n])
	} else {
		copy(out, r.data[start:])
		copy(out[tail:], r.data[:n-tail])
	}
	return out
}

// Clear empties the buffer. Callers that bind filter state to this buffer's
// session must reset that state as well; see session.Session.Clear.
func (r *Ring) Clear() {
	r.mu.Lock()
	r.writePos = 0
	r.size = 0
	r.mu.Unlock()
}

// Len returns the current occupied sample count.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Cap returns the fixed capacity in samples.
func (r *Ring) Cap() int {
	return len(r.data)
}

// SampleRate returns the sample rate fixed at creation, in Hz.
func (r *Ring) SampleRate() int {
	return r.sampleRate
}

// Channels returns the channel count fixed at creation.
func (r *Ring) Channels() int {
	return r.channels
}
