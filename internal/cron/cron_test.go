package cron

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/luispallares/forgequote-backend/pkg/logger"
)

type stubLockStore struct {
	values map[string]string
	setErr error
}

func newStubLockStore() *stubLockStore {
	return &stubLockStore{values: map[string]string{}}
}

func (s *stubLockStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if s.setErr != nil {
		return false, s.setErr
	}
	if _, exists := s.values[key]; exists {
		return false, nil
	}
	s.values[key] = value.(string)
	return true, nil
}

func (s *stubLockStore) Get(ctx context.Context, key string) (string, error) {
	return s.values[key], nil
}

func (s *stubLockStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

type stubExpirer struct {
	count int
	err   error
	seen  time.Time
}

func (s *stubExpirer) ExpireLapsed(ctx context.Context, now time.Time) (int, error) {
	s.seen = now
	return s.count, s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestRedisLockAcquireAndRelease(t *testing.T) {
	store := newStubLockStore()
	lock, err := NewRedisLock(store, "test:lock:cron", time.Hour)
	if err != nil {
		t.Fatalf("NewRedisLock: %v", err)
	}

	ok, err := lock.Acquire(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected lock acquired, got %v %v", ok, err)
	}

	second, err := NewRedisLock(store, "test:lock:cron", time.Hour)
	if err != nil {
		t.Fatalf("NewRedisLock: %v", err)
	}
	ok, err = second.Acquire(context.Background())
	if err != nil || ok {
		t.Fatalf("expected second acquire to fail, got %v %v", ok, err)
	}

	if err := lock.Release(context.Background()); err != nil {
		t.Fatalf("Release: %v", err)
	}
	ok, err = second.Acquire(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected acquire after release, got %v %v", ok, err)
	}
}

func TestRegistryPreservesOrder(t *testing.T) {
	first := &namedJob{name: "first"}
	second := &namedJob{name: "second"}
	registry := NewRegistry(first, nil, second)

	jobs := registry.Jobs()
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].Name() != "first" || jobs[1].Name() != "second" {
		t.Fatalf("registry order changed: %s, %s", jobs[0].Name(), jobs[1].Name())
	}
}

type namedJob struct {
	name string
	runs int
	err  error
}

func (j *namedJob) Name() string { return j.name }

func (j *namedJob) Run(ctx context.Context) error {
	j.runs++
	return j.err
}

func TestQuoteExpiryJobRun(t *testing.T) {
	expirer := &stubExpirer{count: 3}
	job, err := NewQuoteExpiryJob(QuoteExpiryJobParams{Logger: testLogger(), Quotations: expirer})
	if err != nil {
		t.Fatalf("NewQuoteExpiryJob: %v", err)
	}

	fixed := time.Date(2026, 8, 30, 2, 0, 0, 0, time.UTC)
	job.(*quoteExpiryJob).now = func() time.Time { return fixed }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !expirer.seen.Equal(fixed) {
		t.Fatalf("expected sweep at %v, got %v", fixed, expirer.seen)
	}
}

func TestQuoteExpiryJobPropagatesError(t *testing.T) {
	expirer := &stubExpirer{err: errors.New("db down")}
	job, err := NewQuoteExpiryJob(QuoteExpiryJobParams{Logger: testLogger(), Quotations: expirer})
	if err != nil {
		t.Fatalf("NewQuoteExpiryJob: %v", err)
	}

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error to propagate")
	}
}

func TestRunCycleSkipsWhenLockHeld(t *testing.T) {
	store := newStubLockStore()
	store.values["test:lock:cron"] = "other-owner"
	lock, err := NewRedisLock(store, "test:lock:cron", time.Hour)
	if err != nil {
		t.Fatalf("NewRedisLock: %v", err)
	}

	job := &namedJob{name: "noop"}
	svc, err := NewService(ServiceParams{
		Logger:   testLogger(),
		Registry: NewRegistry(job),
		Lock:     lock,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if err := svc.runCycle(context.Background()); err != nil {
		t.Fatalf("runCycle: %v", err)
	}
	if job.runs != 0 {
		t.Fatalf("job must not run while lock is held elsewhere")
	}
}
