package builder

import (
	"go.uber.org/zap"

	skema "github.com/reoring/skema"
)

// registry maps node ids to their built validators for one build. Entries
// are write-once: the first node built under an id keeps it, which matches
// ir's depth-first lookup order when ids collide.
//
// Writes happen only while the build runs; afterwards lazy thunks read it
// from any goroutine.
type registry struct {
	m   map[string]skema.Schema[any]
	log *zap.SugaredLogger
}

func newRegistry(log *zap.SugaredLogger) *registry {
	return &registry{m: map[string]skema.Schema[any]{}, log: log}
}

func (r *registry) set(id string, s skema.Schema[any]) {
	if id == "" {
		return
	}
	if _, ok := r.m[id]; ok {
		r.log.Debugw("duplicate node id, keeping first", "id", id)
		return
	}
	r.m[id] = s
}

func (r *registry) get(id string) (skema.Schema[any], bool) {
	s, ok := r.m[id]
	return s, ok
}

func (r *registry) len() int { return len(r.m) }
