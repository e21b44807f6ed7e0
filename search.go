package shavanity

import (
	"context"
	"errors"
	"fmt"
	"hash"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file contains the parallel search: every worker owns a private copy of the prepared commit
// and walks its own residue class of the 64-bit counter space, so the only shared state is the
// flag that tells everyone to stop.

var threads = runtime.NumCPU()

var errStopped = errors.New("search stopped without a match")

// Searcher runs counter searches. The zero value hashes with SHA1 on every CPU.
type Searcher struct {
	Algorithm Algorithm
	Workers   int /* <= 0 means runtime.NumCPU() */
	Logger    logrus.FieldLogger
}

// Result is the winning commit of a search. Buffer is owned by the caller.
type Result struct {
	Buffer   []byte
	Digest   string
	Counter  uint64
	Attempts uint64 /* digests computed by all workers, the winner's included */
	Elapsed  time.Duration
}

// Search hashes p with successive counter values until a digest matches t and returns the first
// match any worker reports. Worker k of W tries the counters congruent to k mod W. There is no
// bound on the search: if no counter in the 64-bit space matches, Search returns only when ctx
// is done, in which case it reports ctx.Err() with a Result holding only Attempts and Elapsed. A
// match found before cancellation is observed wins over the cancellation.
func (s *Searcher) Search(ctx context.Context, p Prepared, t Target) (Result, error) {
	alg := s.Algorithm
	if !alg.valid() {
		alg = SHA1
	}
	if len(t.Prefix) > alg.Size() {
		return Result{}, fmt.Errorf("%w: %d bytes exceeds %s digest size %d",
			ErrInvalidPrefix, len(t.Prefix), alg, alg.Size())
	}
	if t.Half && len(t.Prefix) == 0 {
		return Result{}, fmt.Errorf("%w: half-byte target without a prefix", ErrInvalidPrefix)
	}
	if p.Offset < 0 || p.Offset+CounterDigits > len(p.Buffer) {
		return Result{}, fmt.Errorf("%w: counter field at %d outside %d-byte buffer",
			ErrMalformedObject, p.Offset, len(p.Buffer))
	}

	workers := s.Workers
	if workers <= 0 {
		workers = threads
	}
	log := s.logger().WithFields(logrus.Fields{
		"algorithm": alg.String(), "prefix": t.String(), "workers": workers})
	log.Debug("search started")

	var (
		found    atomic.Bool
		attempts atomic.Uint64
		summing  sync.WaitGroup
		wins     = make(chan Result, workers)
	)
	stop := context.AfterFunc(ctx, func() { found.Store(true) })
	defer stop()

	start := time.Now()
	summing.Add(workers)
	for k := 0; k < workers; k++ {
		w := &worker{
			h: alg.New(), buf: p.Clone().Buffer, sum: make([]byte, 0, alg.Size()),
			offset: p.Offset, counter: uint64(k), stride: uint64(workers),
		}
		go func() {
			defer summing.Done()
			r, n, ok := w.run(&found, t)
			attempts.Add(n)
			if ok {
				wins <- r
			}
		}()
	}
	summing.Wait() /* Every worker has observed the flag. */
	close(wins)

	r, ok := <-wins
	r.Attempts, r.Elapsed = attempts.Load(), time.Since(start)
	if !ok {
		if err := ctx.Err(); err != nil {
			log.WithField("attempts", r.Attempts).Debug("search cancelled")
			return r, err
		}
		return r, errStopped
	}
	log.WithFields(logrus.Fields{
		"counter": r.Counter, "attempts": r.Attempts, "digest": r.Digest,
	}).Debug("search matched")
	return r, nil
}

func (s *Searcher) logger() logrus.FieldLogger {
	if s.Logger != nil {
		return s.Logger
	}
	l := logrus.New()
	l.Out = io.Discard
	return l
}

type worker struct {
	h               hash.Hash
	buf, sum        []byte
	offset          int
	counter, stride uint64
}

// try hashes the buffer with the current counter written into it.
func (w *worker) try(t Target) bool {
	WriteCounter(w.buf, w.offset, w.counter)
	w.h.Reset()
	w.h.Write(w.buf)
	w.sum = w.h.Sum(w.sum[:0])
	return t.Match(w.sum)
}

// run returns the winning result, if any, and the number of digests it computed.
func (w *worker) run(found *atomic.Bool, t Target) (Result, uint64, bool) {
	for n := uint64(0); ; n++ {
		if found.Load() {
			return Result{}, n, false
		}
		if w.try(t) {
			found.Store(true)
			return Result{Buffer: w.buf, Digest: EncodeHex(w.sum), Counter: w.counter}, n + 1, true
		}
		w.counter += w.stride /* Wraps after 2^64, revisiting the same residue class. */
	}
}
