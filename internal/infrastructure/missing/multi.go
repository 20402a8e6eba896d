package missing

import (
	"context"
	"sync"

	"marktrans/internal/domain/entities"
	"marktrans/internal/ports/output"
)

// Multi fans a miss out to every sink in order. Nil sinks are skipped.
type Multi []output.MissingSink

func (m Multi) OnMissing(ctx context.Context, t entities.Translatable, scope entities.Scope) {
	for _, s := range m {
		if s != nil {
			s.OnMissing(ctx, t, scope)
		}
	}
}

// Recorder keeps every reported miss in memory, in report order.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) OnMissing(_ context.Context, t entities.Translatable, scope entities.Scope) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Scope: scope, Translatable: t})
}

func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Keys returns the reported keys in report order.
func (r *Recorder) Keys() []string {
	entries := r.Entries()
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Translatable.Key
	}
	return keys
}
