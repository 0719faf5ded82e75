// Package tracker owns the in-memory habit, task and sector collections and
// their synchronization with the persistence backend. Mutations apply
// locally first, then enqueue a best-effort background write: a failed write
// is logged and counted but never rolled back or retried. Local state is
// the source of truth for the session, the backend an eventually consistent
// mirror with last-writer-wins semantics.
package tracker

import (
	"context"
	"sync"

	"github.com/adarshh247/ListIT-doIT/store"
	"github.com/adarshh247/ListIT-doIT/utils"
	"go.uber.org/zap"
)

// persister runs fire-and-forget persistence writes and lets callers drain
// them (tests, graceful shutdown).
type persister struct {
	p   store.Persistence
	log *zap.Logger
	wg  sync.WaitGroup
}

func (w *persister) async(op string, kind store.Kind, fn func(ctx context.Context) error) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		if err := fn(context.Background()); err != nil {
			utils.PersistWrites.WithLabelValues(string(kind), op, "error").Inc()
			w.log.Warn("persist_write_failed",
				zap.String("kind", string(kind)),
				zap.String("op", op),
				zap.Error(err),
			)
			return
		}
		utils.PersistWrites.WithLabelValues(string(kind), op, "ok").Inc()
	}()
}

// Flush waits for every in-flight background write.
func (w *persister) Flush() {
	w.wg.Wait()
}
