package filter

import (
	"context"
	"sync"

	"github.com/sail-dex/pokedex/pkg/roster"
)

// Sequencer hands out increasing tickets and lets only the holder of the
// newest ticket commit, so under rapid input the last request wins.
type Sequencer struct {
	mu     sync.Mutex
	latest uint64
}

// Begin issues a ticket newer than every ticket issued so far.
func (s *Sequencer) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	return s.latest
}

// Latest returns the newest ticket issued.
func (s *Sequencer) Latest() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Commit runs apply if ticket is still the newest and reports whether it did.
// apply runs under the sequencer's lock.
func (s *Sequencer) Commit(ticket uint64, apply func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket != s.latest {
		return false
	}
	if apply != nil {
		apply()
	}
	return true
}

// Snapshot is what a list view shows: the criteria of the newest committed
// resolution and its outcome.
type Snapshot struct {
	Seq      uint64
	Criteria Criteria
	Results  []roster.SpeciesRef
	Err      error
	Loading  bool
}

// View keeps the latest resolution for one viewer.
type View struct {
	seq  Sequencer
	mu   sync.Mutex
	snap Snapshot
}

// Update resolves c and stores the outcome unless a newer Update began in the
// meantime. It returns the resolution's own result and whether it was kept.
func (v *View) Update(ctx context.Context, dir *roster.Directory, c Criteria, src MembershipSource) ([]roster.SpeciesRef, bool, error) {
	ticket := v.seq.Begin()
	results, err := Resolve(ctx, dir, c, src)

	committed := v.seq.Commit(ticket, func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		v.snap = Snapshot{Seq: ticket, Criteria: c, Results: results, Err: err}
	})
	return results, committed, err
}

// Snapshot returns the newest committed state. Loading is true while a
// resolution newer than the snapshot is in flight.
func (v *View) Snapshot() Snapshot {
	latest := v.seq.Latest()
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.snap
	s.Results = append([]roster.SpeciesRef(nil), v.snap.Results...)
	s.Loading = v.snap.Seq != latest
	return s
}
