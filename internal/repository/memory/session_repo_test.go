package memory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docufill/internal/domain"
)

func TestSessionRepo_SaveGetDelete(t *testing.T) {
	repo := NewSessionRepo(time.Hour, time.Minute)
	session := &domain.Session{ID: uuid.New(), DocumentName: "contract.docx"}

	repo.Save(session)

	got, ok := repo.Get(session.ID)
	require.True(t, ok)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, "contract.docx", got.DocumentName)

	repo.Delete(session.ID)

	_, ok = repo.Get(session.ID)
	assert.False(t, ok)
}

func TestSessionRepo_GetUnknown(t *testing.T) {
	repo := NewSessionRepo(time.Hour, time.Minute)

	_, ok := repo.Get(uuid.New())
	assert.False(t, ok)
}

func TestSessionRepo_SaveOverwrites(t *testing.T) {
	repo := NewSessionRepo(time.Hour, time.Minute)
	id := uuid.New()

	repo.Save(&domain.Session{ID: id, DocumentName: "v1.docx"})
	repo.Save(&domain.Session{ID: id, DocumentName: "v2.docx"})

	got, ok := repo.Get(id)
	require.True(t, ok)
	assert.Equal(t, "v2.docx", got.DocumentName)
}

func TestSessionRepo_CopiesOnSaveAndGet(t *testing.T) {
	repo := NewSessionRepo(time.Hour, time.Minute)
	session := &domain.Session{
		ID:           uuid.New(),
		Placeholders: []domain.Placeholder{{Token: "[Name]"}},
	}
	repo.Save(session)

	// Mutating the caller's session after Save does not leak into the store
	session.Placeholders[0].Value = "dirty"
	session.AppendMessage(domain.RoleUser, "dirty")

	got, ok := repo.Get(session.ID)
	require.True(t, ok)
	assert.Empty(t, got.Placeholders[0].Value)
	assert.Empty(t, got.Messages)

	// Mutating a Get result does not leak back either
	got.Placeholders[0].Value = "local"
	again, ok := repo.Get(session.ID)
	require.True(t, ok)
	assert.Empty(t, again.Placeholders[0].Value)
	assert.NotSame(t, got, again)
}

func TestSessionRepo_TTLExpiry(t *testing.T) {
	repo := NewSessionRepo(20*time.Millisecond, time.Minute)
	session := &domain.Session{ID: uuid.New()}

	repo.Save(session)

	_, ok := repo.Get(session.ID)
	require.True(t, ok)

	time.Sleep(40 * time.Millisecond)

	_, ok = repo.Get(session.ID)
	assert.False(t, ok)
}
