package storage

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Prefs exposes the Store as the key/value settings the game persists.
// Write failures are logged and swallowed so a broken disk never stalls a frame.
type Prefs struct {
	store  *Store
	logger *log.Logger
	prefix string
}

// NewPrefs wraps store. A nil logger discards messages.
func NewPrefs(store *Store, logger *log.Logger) *Prefs {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Prefs{store: store, logger: logger}
}

// ForUser returns prefs whose keys are scoped to user, so players sharing
// one database keep separate progress. An empty user shares the global keys.
func (p *Prefs) ForUser(user string) *Prefs {
	if user == "" {
		return p
	}
	return &Prefs{
		store:  p.store,
		logger: p.logger.With("user", user),
		prefix: "user/" + user + "/",
	}
}

// GetInt returns the stored value for key, or def.
func (p *Prefs) GetInt(key string, def int) int {
	v, err := p.store.Int(p.prefix+key, def)
	if err != nil {
		p.logger.Warn("read setting", "key", key, "err", err)
		return def
	}
	return v
}

// SetInt stores key = value.
func (p *Prefs) SetInt(key string, value int) {
	if err := p.store.SetInt(p.prefix+key, value); err != nil {
		p.logger.Error("write setting", "key", key, "value", value, "err", err)
	}
}

// Flush checkpoints the write-ahead log.
func (p *Prefs) Flush() {
	if err := p.store.Checkpoint(); err != nil {
		p.logger.Warn("flush settings", "err", err)
	}
}

// RecordRun appends a finished run to the history.
func (p *Prefs) RecordRun(score, coins int, duration time.Duration, character string) {
	_, err := p.store.SaveRun(RunRecord{
		Score:     score,
		Coins:     coins,
		Duration:  duration,
		Character: character,
	})
	if err != nil {
		p.logger.Error("record run", "score", score, "err", err)
	}
}

// MemoryPrefs keeps settings in memory. Used when no database is available and in tests.
type MemoryPrefs struct {
	mu      sync.Mutex
	values  map[string]int
	runs    []RunRecord
	flushes int
}

// NewMemoryPrefs creates empty in-memory settings.
func NewMemoryPrefs() *MemoryPrefs {
	return &MemoryPrefs{values: make(map[string]int)}
}

func (m *MemoryPrefs) GetInt(key string, def int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[key]; ok {
		return v
	}
	return def
}

func (m *MemoryPrefs) SetInt(key string, value int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *MemoryPrefs) Flush() {
	m.mu.Lock()
	m.flushes++
	m.mu.Unlock()
}

func (m *MemoryPrefs) RecordRun(score, coins int, duration time.Duration, character string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, RunRecord{
		ID:        int64(len(m.runs) + 1),
		Score:     score,
		Coins:     coins,
		Duration:  duration,
		Character: character,
		CreatedAt: time.Now(),
	})
}

// Runs returns a copy of the recorded runs in insertion order.
func (m *MemoryPrefs) Runs() []RunRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RunRecord(nil), m.runs...)
}

// Flushes returns how many times Flush was called.
func (m *MemoryPrefs) Flushes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushes
}
