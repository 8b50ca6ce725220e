package dialog

import "sync"

// Store — keyed-хранилище сессий: Get/Set/Clear без TTL.
// Записи живут до явной очистки.
type Store interface {
	Get(chatID int64) (*Session, bool)
	Set(chatID int64, s *Session)
	Clear(chatID int64)
}

// MemoryStore держит сессии в памяти процесса. Ключи изолированы
// RWMutex-ом, внутри одной сессии доступ однопоточный (обработчик
// на один chat_id в каждый момент один).
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]*Session)}
}

func (m *MemoryStore) Get(chatID int64) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[chatID]
	return s, ok
}

func (m *MemoryStore) Set(chatID int64, s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[chatID] = s
}

func (m *MemoryStore) Clear(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
}
