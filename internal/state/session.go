// Package state holds the in-process claim session: the most recently
// extracted claim record and the most recently uploaded verification image.
// The service is single-claim-at-a-time; each submission overwrites the slot.
// Unlike the ambient globals this replaces, access is mutex-guarded, so
// concurrent submissions keep last-writer-wins semantics without a data race.
package state

import (
	"errors"
	"sync"

	"claimcheck/internal/models"
)

var (
	// ErrNoClaim is returned when no claim document has been submitted yet.
	ErrNoClaim = errors.New("no claim on record")
	// ErrNoImage is returned when no verification image has been uploaded yet.
	ErrNoImage = errors.New("no verification image on record")
)

type Session struct {
	mu        sync.RWMutex
	claim     *models.ClaimRecord
	image     []byte
	imageMime string
}

func NewSession() *Session {
	return &Session{}
}

// SetClaim replaces the stored claim record.
func (s *Session) SetClaim(rec *models.ClaimRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.claim = rec
}

// Claim returns the stored claim record, or ErrNoClaim.
func (s *Session) Claim() (*models.ClaimRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.claim == nil {
		return nil, ErrNoClaim
	}
	return s.claim, nil
}

// SetImage caches the latest verification image for deferred scoring. The
// bytes are copied so callers may reuse their buffer.
func (s *Session) SetImage(data []byte, mimeType string) {
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.image = buf
	s.imageMime = mimeType
}

// Image returns the cached verification image, or ErrNoImage.
func (s *Session) Image() ([]byte, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.image == nil {
		return nil, "", ErrNoImage
	}
	return s.image, s.imageMime, nil
}
