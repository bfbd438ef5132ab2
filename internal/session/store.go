// Package session keeps each visitor's dataset in memory. A dataset is loaded
// once per session and only replaced by an explicit upload or reset.
package session

import (
	"context"
	"sync"
	"time"

	"heartbi/domain/core"
	"heartbi/domain/heart"
	"heartbi/internal"
	"heartbi/internal/dataset"
	"heartbi/internal/metrics"

	"golang.org/x/sync/singleflight"
)

// Loader produces a dataset; *dataset.Loader satisfies it.
type Loader interface {
	Load(ctx context.Context, upload *dataset.Upload, defaultURL string) *dataset.Result
}

// Snapshot is what a request sees of its session
type Snapshot struct {
	ID       core.SessionID
	Dataset  *heart.Dataset
	Warning  string
	Filename string
}

type entry struct {
	snapshot *Snapshot
	lastSeen time.Time
}

// Store maps session IDs to their datasets
type Store struct {
	loader     Loader
	defaultURL string
	ttl        time.Duration
	metrics    *metrics.Metrics
	logger     *internal.Logger
	now        func() time.Time

	mu       sync.RWMutex
	sessions map[core.SessionID]*entry
	group    singleflight.Group
}

// Options configures a Store
type Options struct {
	DefaultURL string
	TTL        time.Duration
	Metrics    *metrics.Metrics
	Logger     *internal.Logger
}

// NewStore creates an empty store
func NewStore(loader Loader, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Store{
		loader:     loader,
		defaultURL: opts.DefaultURL,
		ttl:        opts.TTL,
		metrics:    opts.Metrics,
		logger:     logger.With("Session"),
		now:        time.Now,
		sessions:   make(map[core.SessionID]*entry),
	}
}

// Get returns the session's dataset, loading the default one on first use.
// Concurrent first requests of one session share a single load. The load is
// detached from ctx cancellation since its result is kept for the session;
// the HTTP client timeout still bounds it.
func (s *Store) Get(ctx context.Context, id core.SessionID) *Snapshot {
	if snap := s.lookup(id); snap != nil {
		return snap
	}

	loadCtx := context.WithoutCancel(ctx)
	v, _, shared := s.group.Do(id.String(), func() (interface{}, error) {
		// a racing Get may have finished while we queued
		if snap := s.lookup(id); snap != nil {
			return snap, nil
		}
		return s.load(loadCtx, id, nil, false), nil
	})
	if shared {
		s.logger.Debug("session %s shared an in-flight load", id)
	}
	return v.(*Snapshot)
}

// Replace loads upload into the session, discarding the previous dataset.
// A broken upload yields the fallback dataset and its warning.
func (s *Store) Replace(ctx context.Context, id core.SessionID, upload *dataset.Upload) *Snapshot {
	return s.load(ctx, id, upload, true)
}

// Reset drops any upload and reloads the default dataset
func (s *Store) Reset(ctx context.Context, id core.SessionID) *Snapshot {
	return s.load(ctx, id, nil, true)
}

// Len returns the number of sessions held
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) lookup(id core.SessionID) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil
	}
	e.lastSeen = s.now()
	return e.snapshot
}

// load runs the loader and stores the result. With overwrite false an entry
// that appeared meanwhile (e.g. from a concurrent upload) wins.
func (s *Store) load(ctx context.Context, id core.SessionID, upload *dataset.Upload, overwrite bool) *Snapshot {
	res := s.loader.Load(ctx, upload, s.defaultURL)
	s.metrics.DatasetLoaded(string(res.Dataset.Source))

	snap := &Snapshot{ID: id, Dataset: res.Dataset, Warning: res.Warning}
	if upload != nil {
		snap.Filename = upload.Filename
	}

	s.mu.Lock()
	if e, ok := s.sessions[id]; ok && !overwrite {
		e.lastSeen = s.now()
		s.mu.Unlock()
		return e.snapshot
	}
	s.pruneLocked()
	s.sessions[id] = &entry{snapshot: snap, lastSeen: s.now()}
	n := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetSessions(n)
	return snap
}

// pruneLocked drops sessions idle for longer than the TTL
func (s *Store) pruneLocked() {
	if s.ttl <= 0 {
		return
	}
	cutoff := s.now().Add(-s.ttl)
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			s.logger.Debug("pruned idle session %s", id)
		}
	}
}
