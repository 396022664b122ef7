package testhelpers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pageza/vegandiet/backend/internal/service"
)

// CompleterFunc adapts a function to service.Completer
type CompleterFunc func(ctx context.Context, p service.Prompt) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, p service.Prompt) (string, error) {
	return f(ctx, p)
}

// StaticCompleter always returns the same reply and counts calls
type StaticCompleter struct {
	Reply string
	Err   error
	calls atomic.Int64
}

func (c *StaticCompleter) Complete(_ context.Context, _ service.Prompt) (string, error) {
	c.calls.Add(1)
	return c.Reply, c.Err
}

func (c *StaticCompleter) Calls() int {
	return int(c.calls.Load())
}

// CompletionHandler decides the fake API's reply to one request
type CompletionHandler func(req service.Request) (status int, content string)

// CompletionServer is an httptest server speaking the chat completion protocol
type CompletionServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []service.Request
	headers  []http.Header
}

func NewCompletionServer(t *testing.T, handler CompletionHandler) *CompletionServer {
	t.Helper()
	s := &CompletionServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req service.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		s.requests = append(s.requests, req)
		s.headers = append(s.headers, r.Header.Clone())
		s.mu.Unlock()

		status, content := handler(req)
		if status != http.StatusOK {
			http.Error(w, content, status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(ChatResponse(content))
	}))
	t.Cleanup(s.Close)
	return s
}

// Requests returns the decoded request bodies received so far
func (s *CompletionServer) Requests() []service.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]service.Request(nil), s.requests...)
}

// LastHeader returns the headers of the most recent request
func (s *CompletionServer) LastHeader() http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.headers) == 0 {
		return nil
	}
	return s.headers[len(s.headers)-1]
}

// ChatResponse encodes a completion response with one choice
func ChatResponse(content string) []byte {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	return b
}

// RecipeJSON returns a complete, well-typed recipe object as a completion would
func RecipeJSON(name string, calories int) string {
	return fmt.Sprintf(`{
  "name": %q,
  "description": "A bright bowl",
  "prepTime": 10,
  "cookTime": 25,
  "servings": 3,
  "difficulty": "Medium",
  "calories": %d,
  "protein": 22,
  "carbs": 61,
  "fat": 14,
  "fiber": 11,
  "ingredients": [
    {"name": "Chickpeas", "quantity": "1 can", "category": "Proteins"},
    {"name": "Spinach", "quantity": "2 cups", "category": "Produce"}
  ],
  "instructions": ["Rinse chickpeas", "Wilt spinach", "Combine"],
  "tags": ["vegan", "high-protein"],
  "cuisine": "Mediterranean"
}`, name, calories)
}
