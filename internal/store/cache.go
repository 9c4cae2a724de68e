package store

import (
	"time"

	"go.uber.org/zap"
)

// Cache is the local persistence surface the rest of the console sees:
// a media blob cache keyed by remote URL plus ephemeral per-conversation
// order drafts. A cache miss never blocks anything; callers treat nil /
// false as "not cached" and carry on.
type Cache interface {
	// GetMedia returns the cached blob for a URL, or nil.
	GetMedia(url string) []byte
	// PutMedia stores a blob. Reports whether the write stuck.
	PutMedia(url string, data []byte) bool
	// GetDraft returns the draft payload for a conversation, or nil if
	// absent or older than the draft time box.
	GetDraft(userID string) []byte
	// PutDraft stores a draft payload. Reports whether the write stuck.
	PutDraft(userID string, payload []byte) bool
	// DeleteDraft removes a draft.
	DeleteDraft(userID string)
	Close() error
}

// DraftTTL is the time box after which a stored order draft is ignored.
const DraftTTL = 24 * time.Hour

// Store is the SQLite-backed Cache.
type Store struct {
	db     *DB
	logger *zap.Logger
	now    func() time.Time
}

// NewStore opens (and migrates) the cache database at path.
func NewStore(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, logger: logger, now: time.Now}, nil
}

// GetMedia implements Cache. Errors degrade to a miss.
func (s *Store) GetMedia(url string) []byte {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM media WHERE url = ?`, url).Scan(&data)
	if err != nil {
		return nil
	}
	return data
}

// PutMedia implements Cache. Errors degrade to false.
func (s *Store) PutMedia(url string, data []byte) bool {
	_, err := s.db.Exec(`
		INSERT INTO media (url, data, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			data = excluded.data,
			fetched_at = excluded.fetched_at`,
		url, data, s.now().UnixMilli())
	if err != nil {
		s.logger.Warn("media cache write failed", zap.Error(err), zap.String("url", url))
		return false
	}
	return true
}

// GetDraft implements Cache. Expired drafts read as absent.
func (s *Store) GetDraft(userID string) []byte {
	var payload []byte
	var updatedAt int64
	err := s.db.QueryRow(`SELECT payload, updated_at FROM drafts WHERE user_id = ?`, userID).
		Scan(&payload, &updatedAt)
	if err != nil {
		return nil
	}
	if s.now().UnixMilli()-updatedAt > DraftTTL.Milliseconds() {
		s.DeleteDraft(userID)
		return nil
	}
	return payload
}

// PutDraft implements Cache.
func (s *Store) PutDraft(userID string, payload []byte) bool {
	_, err := s.db.Exec(`
		INSERT INTO drafts (user_id, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		userID, payload, s.now().UnixMilli())
	if err != nil {
		s.logger.Warn("draft write failed", zap.Error(err), zap.String("user_id", userID))
		return false
	}
	return true
}

// DeleteDraft implements Cache.
func (s *Store) DeleteDraft(userID string) {
	_, _ = s.db.Exec(`DELETE FROM drafts WHERE user_id = ?`, userID)
}

// Close implements Cache.
func (s *Store) Close() error {
	return s.db.Close()
}

// Noop is the degraded Cache used when the store cannot be opened or
// the media cache is disabled: every get misses, every put reports
// false, nothing errors.
type Noop struct{}

func (Noop) GetMedia(string) []byte { return nil }

func (Noop) PutMedia(string, []byte) bool { return false }

func (Noop) GetDraft(string) []byte { return nil }

func (Noop) PutDraft(string, []byte) bool { return false }

func (Noop) DeleteDraft(string) {}

func (Noop) Close() error { return nil }
