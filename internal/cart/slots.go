package cart

import (
	"path/filepath"
	"time"
)

// Slots hands out the storage slot for a cart session.
type Slots interface {
	For(sessionID string) Storage
}

func slotName(sessionID string) string { return "cart:" + sessionID }

type MemorySlots struct{ root *MemoryStorage }

func NewMemorySlots() *MemorySlots { return &MemorySlots{root: NewMemoryStorage()} }

func (m *MemorySlots) For(sessionID string) Storage { return m.root.Slot(slotName(sessionID)) }

type FileSlots struct{ dir string }

func NewFileSlots(dir string) *FileSlots { return &FileSlots{dir: dir} }

// For maps a session onto <dir>/<session>.json. Session ids are server-minted
// uuids, but Base still strips any path components.
func (f *FileSlots) For(sessionID string) Storage {
	return NewFileStorage(filepath.Join(f.dir, filepath.Base(sessionID)+".json"))
}

type RedisSlots struct {
	rdb RedisKV
	ttl time.Duration
}

func NewRedisSlots(rdb RedisKV, ttl time.Duration) *RedisSlots {
	return &RedisSlots{rdb: rdb, ttl: ttl}
}

func (r *RedisSlots) For(sessionID string) Storage {
	return NewRedisStorage(r.rdb, slotName(sessionID), r.ttl)
}

type PostgresSlots struct{ pool DBPool }

func NewPostgresSlots(pool DBPool) *PostgresSlots { return &PostgresSlots{pool: pool} }

func (p *PostgresSlots) For(sessionID string) Storage {
	return NewPostgresStorage(p.pool, slotName(sessionID))
}
