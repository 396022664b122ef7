package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/vegandiet/backend/internal/service"
	"github.com/pageza/vegandiet/backend/internal/testhelpers"
)

func newClient(url string, timeout time.Duration) *service.LLMClient {
	return service.NewLLMClient(service.LLMConfig{
		APIURL:  url,
		APIKey:  "test-key",
		Model:   "test-model",
		Timeout: timeout,
	}, nil, nil)
}

var testPrompt = service.Prompt{System: "sys", User: "usr"}

func TestLLMClientComplete(t *testing.T) {
	srv := testhelpers.NewCompletionServer(t, func(req service.Request) (int, string) {
		return http.StatusOK, "  {\"name\":\"Soup\"}  "
	})

	content, err := newClient(srv.URL, time.Second).Complete(context.Background(), testPrompt)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Soup"}`, content)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "test-model", reqs[0].Model)
	assert.Equal(t, 0.7, reqs[0].Temperature)
	assert.Equal(t, 2000, reqs[0].MaxTokens)
	assert.False(t, reqs[0].Stream)
	require.Len(t, reqs[0].Messages, 2)
	assert.Equal(t, service.Message{Role: "system", Content: "sys"}, reqs[0].Messages[0])
	assert.Equal(t, service.Message{Role: "user", Content: "usr"}, reqs[0].Messages[1])
	assert.Equal(t, "Bearer test-key", srv.LastHeader().Get("Authorization"))
}

func TestLLMClientFailureKinds(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		srv := testhelpers.NewCompletionServer(t, func(service.Request) (int, string) {
			return http.StatusTooManyRequests, "slow down"
		})
		_, err := newClient(srv.URL, time.Second).Complete(context.Background(), testPrompt)
		require.Error(t, err)

		var ce *service.CompletionError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, service.FailureStatus, ce.Kind)
		assert.Equal(t, http.StatusTooManyRequests, ce.StatusCode)
	})

	t.Run("empty", func(t *testing.T) {
		srv := testhelpers.NewCompletionServer(t, func(service.Request) (int, string) {
			return http.StatusOK, "   "
		})
		_, err := newClient(srv.URL, time.Second).Complete(context.Background(), testPrompt)
		assert.Equal(t, service.FailureEmpty, service.FailureKindOf(err))
	})

	t.Run("timeout", func(t *testing.T) {
		srv := testhelpers.NewCompletionServer(t, func(service.Request) (int, string) {
			time.Sleep(300 * time.Millisecond)
			return http.StatusOK, "late"
		})
		start := time.Now()
		_, err := newClient(srv.URL, 50*time.Millisecond).Complete(context.Background(), testPrompt)
		assert.Equal(t, service.FailureTimeout, service.FailureKindOf(err))
		assert.Less(t, time.Since(start), 250*time.Millisecond)
	})

	t.Run("transport", func(t *testing.T) {
		_, err := newClient("http://127.0.0.1:1", time.Second).Complete(context.Background(), testPrompt)
		assert.Equal(t, service.FailureTransport, service.FailureKindOf(err))
	})
}

func TestFailureKindOf(t *testing.T) {
	_, err := service.ParseRecipe("nope", "lunch")
	assert.Equal(t, service.FailureMalformed, service.FailureKindOf(err))
	assert.Equal(t, service.FailureTimeout, service.FailureKindOf(context.DeadlineExceeded))
	assert.Equal(t, service.FailureUnknown, service.FailureKindOf(errors.New("boom")))
}
