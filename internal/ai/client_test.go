package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func fakeServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want bearer test-key", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if len(req.Messages) != 2 {
			t.Errorf("got %d messages, want system+user", len(req.Messages))
		}
		json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{{Message: chatMessage{Role: "assistant", Content: reply}}},
		})
	}))
}

func TestCheckRelevance(t *testing.T) {
	tests := []struct {
		reply string
		want  bool
	}{
		{"YES", true},
		{"yes, it matches", true},
		{"NO", false},
		{"unsure", false},
	}
	for _, tt := range tests {
		srv := fakeServer(t, tt.reply)
		c := NewClient(WithAPIKey("test-key"), WithBaseURL(srv.URL))
		got, err := c.CheckRelevance(context.Background(), "（张三，2020）", "张三（2020）《甲》。")
		srv.Close()
		if err != nil {
			t.Fatalf("CheckRelevance: %v", err)
		}
		if got != tt.want {
			t.Errorf("reply %q: got %v, want %v", tt.reply, got, tt.want)
		}
	}
}

func TestRewriteCitation(t *testing.T) {
	srv := fakeServer(t, "张三（2018）")
	defer srv.Close()

	c := NewClient(WithAPIKey("test-key"), WithBaseURL(srv.URL))
	got, err := c.RewriteCitation(context.Background(), "张三（2020）", "张三（2018）《甲》。")
	if err != nil {
		t.Fatalf("RewriteCitation: %v", err)
	}
	if got != "张三（2018）" {
		t.Errorf("got %q, want rewritten citation", got)
	}
}

func TestNoAPIKey(t *testing.T) {
	t.Setenv("CITELINT_AI_API_KEY", "")
	c := NewClient()
	if _, err := c.CheckRelevance(context.Background(), "a", "b"); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("error = %v, want ErrNoAPIKey", err)
	}
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"message": "rate limited"}})
	}))
	defer srv.Close()

	c := NewClient(WithAPIKey("test-key"), WithBaseURL(srv.URL))
	if _, err := c.CheckRelevance(context.Background(), "a", "b"); err == nil {
		t.Error("want error on API failure")
	}
}
