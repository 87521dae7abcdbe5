package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docufill/internal/service"
	"docufill/mocks"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func performAuthed(tokens service.TokenService, authHeader string) (*httptest.ResponseRecorder, uuid.UUID, bool) {
	var gotID uuid.UUID
	var gotOK bool

	r := gin.New()
	r.GET("/protected", SessionAuth(tokens), func(c *gin.Context) {
		gotID, gotOK = GetSessionID(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w, gotID, gotOK
}

func TestSessionAuth_ValidToken(t *testing.T) {
	sessionID := uuid.New()
	tokens := new(mocks.MockTokenService)
	tokens.On("Validate", "good-token").Return(&service.SessionClaims{SessionID: sessionID}, nil)

	w, gotID, gotOK := performAuthed(tokens, "Bearer good-token")

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, gotOK)
	assert.Equal(t, sessionID, gotID)
}

func TestSessionAuth_MissingHeader(t *testing.T) {
	tokens := new(mocks.MockTokenService)

	w, _, gotOK := performAuthed(tokens, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, gotOK)
	tokens.AssertNotCalled(t, "Validate", "")
}

func TestSessionAuth_WrongScheme(t *testing.T) {
	tokens := new(mocks.MockTokenService)

	w, _, _ := performAuthed(tokens, "Basic dXNlcjpwYXNz")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuth_InvalidToken(t *testing.T) {
	tokens := new(mocks.MockTokenService)
	tokens.On("Validate", "bad-token").Return(nil, assert.AnError)

	w, _, gotOK := performAuthed(tokens, "Bearer bad-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, gotOK)
	assert.Contains(t, w.Body.String(), "invalid or expired session token")
}

func TestGetSessionID_Absent(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetSessionID(c)
	assert.False(t, ok)
}
