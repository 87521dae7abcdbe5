package port

import (
	"github.com/google/uuid"

	"docufill/internal/domain"
)

// SessionRepository abstracts the in-memory session store. Sessions expire
// with the store's TTL; there is no durable persistence.
type SessionRepository interface {
	Save(session *domain.Session)
	Get(id uuid.UUID) (*domain.Session, bool)
	Delete(id uuid.UUID)
}
