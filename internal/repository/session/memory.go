package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/chronicler/internal/cache"
	"github.com/debemdeboas/chronicler/internal/wizard"
)

var sessionLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	sessionLogger = l
}

// MemoryRepository holds sessions in process memory. They are lost on restart.
type MemoryRepository struct {
	sessions   *cache.Cache[ID, *Session]
	newMachine func() *wizard.Machine
}

func NewMemoryRepository(newMachine func() *wizard.Machine) *MemoryRepository {
	return &MemoryRepository{
		sessions:   cache.NewCache[ID, *Session](),
		newMachine: newMachine,
	}
}

func NewMemoryRepositoryWithClock(newMachine func() *wizard.Machine, now func() time.Time) *MemoryRepository {
	return &MemoryRepository{
		sessions:   cache.NewCacheWithClock[ID, *Session](now),
		newMachine: newMachine,
	}
}

func (r *MemoryRepository) Create() (*Session, error) {
	s := &Session{
		ID:      ID(uuid.New().String()),
		Machine: r.newMachine(),
	}
	r.sessions.Set(s.ID, s)
	return s, nil
}

func (r *MemoryRepository) Get(id ID) (*Session, error) {
	if s, ok := r.sessions.Get(id); ok {
		return s, nil
	}
	return nil, ErrSessionNotFound
}

func (r *MemoryRepository) Delete(id ID) error {
	r.sessions.Delete(id)
	return nil
}

func (r *MemoryRepository) Len() int {
	return r.sessions.Len()
}

// Prune drops sessions idle for longer than maxIdle. Sessions with an archive
// write in flight are kept.
func (r *MemoryRepository) Prune(maxIdle time.Duration) int {
	return r.sessions.PruneFunc(maxIdle, func(s *Session) bool {
		return !s.Machine.Pending()
	})
}

// Expire prunes idle sessions every interval until ctx is done. A
// non-positive interval means one second.
func (r *MemoryRepository) Expire(ctx context.Context, maxIdle, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Prune(maxIdle); n > 0 {
				sessionLogger.Info().Int("expired", n).Int("active", r.Len()).Msg("Expired idle sessions")
			}
		}
	}
}
