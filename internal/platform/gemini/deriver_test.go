package gemini

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"text/template"
	"time"

	"github.com/nkhandel/taskpilot-api/internal/derivation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreatePrompt(t *testing.T) {
	t.Parallel()

	tmpl, err := template.New("task").Parse(defaultPromptTemplate)
	require.NoError(t, err)

	deriver := &GeminiDeriver{
		logger:         testLogger(),
		promptTemplate: tmpl,
	}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("embeds text and current time", func(t *testing.T) {
		prompt, err := deriver.createPrompt(context.Background(), "buy milk in one hour", now)
		require.NoError(t, err)
		assert.Contains(t, prompt, "buy milk in one hour")
		assert.Contains(t, prompt, "2025-06-01T12:00:00Z")
	})

	t.Run("rejects empty text", func(t *testing.T) {
		_, err := deriver.createPrompt(context.Background(), "", now)
		assert.ErrorIs(t, err, derivation.ErrEmptyText)
	})
}

func TestParseResponse(t *testing.T) {
	t.Parallel()

	t.Run("valid JSON object", func(t *testing.T) {
		raw, err := parseResponse(`{
			"title": "Buy milk",
			"description": null,
			"start_time": "2025-06-01T12:00:00Z",
			"deadline": "2025-06-01T13:00:00Z"
		}`)
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", raw.Title)
		assert.Nil(t, raw.Description)
		assert.Equal(t, "2025-06-01T12:00:00Z", raw.StartTime)
		assert.Equal(t, "2025-06-01T13:00:00Z", raw.Deadline)
	})

	t.Run("empty body", func(t *testing.T) {
		_, err := parseResponse("")
		assert.ErrorIs(t, err, derivation.ErrInvalidResponse)
		assert.True(t, errors.Is(err, derivation.ErrDerivationFailed))
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := parseResponse(`{"title": "Buy milk"`)
		assert.ErrorIs(t, err, derivation.ErrInvalidResponse)
	})

	t.Run("non-object JSON", func(t *testing.T) {
		_, err := parseResponse(`"just a string"`)
		assert.ErrorIs(t, err, derivation.ErrInvalidResponse)
	})
}
