package queue

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/rs/zerolog"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// ErrStopped is returned by Do once the serializer's context has ended.
var ErrStopped = errors.New("queue: serializer stopped")

type job struct {
	ctx  context.Context
	key  string
	fn   func(ctx context.Context) error
	done chan error
}

// Serializer runs submitted work on a fixed set of workers using consistent
// hashing on a key, so work for the same key never overlaps and runs in
// submission order. Work for different keys may run concurrently.
//
// fn must not call Do for the same key; the worker would wait on itself.
type Serializer struct {
	workers []chan job
	stopped chan struct{}
	log     zerolog.Logger
}

// NewSerializer creates a Serializer with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewSerializer(numWorkers int, log zerolog.Logger) *Serializer {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	s := &Serializer{
		workers: make([]chan job, numWorkers),
		stopped: make(chan struct{}),
		log:     log,
	}
	for i := range s.workers {
		s.workers[i] = make(chan job, channelBuffer)
	}
	return s
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (s *Serializer) Start(ctx context.Context) {
	for i, ch := range s.workers {
		go s.runWorker(ctx, i, ch)
	}
	go func() {
		<-ctx.Done()
		close(s.stopped)
	}()
}

// Do queues fn behind every earlier submission for key and waits for its
// result. If ctx ends before fn starts, fn is skipped and ctx's error is
// returned; once started, fn runs to completion.
func (s *Serializer) Do(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	j := job{ctx: ctx, key: key, fn: fn, done: make(chan error, 1)}

	select {
	case s.workers[s.shardIndex(key)] <- j:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.stopped:
		return ErrStopped
	}

	select {
	case err := <-j.done:
		return err
	case <-s.stopped:
		return ErrStopped
	}
}

// Depth is the number of jobs waiting, not yet started, on the worker that
// owns key. Other keys sharing that worker are counted too.
func (s *Serializer) Depth(key string) int {
	return len(s.workers[s.shardIndex(key)])
}

// shardIndex maps a key deterministically to a worker index.
func (s *Serializer) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(s.workers)))
}

func (s *Serializer) runWorker(ctx context.Context, id int, ch <-chan job) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-ch:
			j.done <- s.run(id, j)
		}
	}
}

func (s *Serializer) run(id int, j job) (err error) {
	if err := j.ctx.Err(); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("queue: job for %q panicked: %v", j.key, r)
			s.log.Error().Str("key", j.key).Int("worker_id", id).Interface("panic", r).Msg("job panicked")
		}
	}()
	return j.fn(j.ctx)
}
