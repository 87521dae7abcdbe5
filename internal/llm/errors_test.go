package llm

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRateLimitError(t *testing.T) {
	cause := errors.New("429 from upstream")

	err := NewRateLimitError("groq", cause, 30)
	assert.Equal(t, 30*time.Second, err.RetryAfter)
	assert.Equal(t, "groq", err.Provider)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "groq rate limited")
}

func TestNewRateLimitError_DefaultRetryAfter(t *testing.T) {
	err := NewRateLimitError("openai", errors.New("x"), 0)
	assert.Equal(t, 60*time.Second, err.RetryAfter)

	err = NewRateLimitError("openai", errors.New("x"), -5)
	assert.Equal(t, 60*time.Second, err.RetryAfter)
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 17, ParseRetryAfterHeader("17"))
	assert.Equal(t, 0, ParseRetryAfterHeader(""))
	assert.Equal(t, 0, ParseRetryAfterHeader("Wed, 21 Oct 2026 07:28:00 GMT"))
}
