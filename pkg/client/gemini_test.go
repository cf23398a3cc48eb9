package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func geminiStub(t *testing.T, status int, body string, gotPath *string, gotReq *generateContentRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotPath != nil {
			*gotPath = r.URL.String()
		}
		if gotReq != nil {
			if err := json.NewDecoder(r.Body).Decode(gotReq); err != nil {
				t.Errorf("stub could not decode request: %v", err)
			}
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestGenerateContent(t *testing.T) {
	var gotPath string
	var gotReq generateContentRequest
	body := `{"candidates":[{"content":{"parts":[{"text":"Mass is at 8 AM."}]}}]}`
	srv := geminiStub(t, http.StatusOK, body, &gotPath, &gotReq)
	defer srv.Close()

	c := NewGeminiClient(srv.URL, "secret-key", "gemini-2.0-flash")
	reply, err := c.GenerateContent(context.Background(), []GeminiContent{
		{Role: "user", Parts: []GeminiPart{{Text: "What time is mass?"}}},
	})
	if err != nil {
		t.Fatalf("GenerateContent returned error: %v", err)
	}
	if reply != "Mass is at 8 AM." {
		t.Errorf("reply = %q", reply)
	}

	if !strings.HasPrefix(gotPath, "/v1beta/models/gemini-2.0-flash:generateContent") {
		t.Errorf("path = %q", gotPath)
	}
	if !strings.Contains(gotPath, "key=secret-key") {
		t.Errorf("path should carry the API key, got %q", gotPath)
	}
	if len(gotReq.Contents) != 1 || gotReq.Contents[0].Parts[0].Text != "What time is mass?" {
		t.Errorf("request contents = %+v", gotReq.Contents)
	}
}

func TestGenerateContentEmptyCandidates(t *testing.T) {
	srv := geminiStub(t, http.StatusOK, `{"candidates":[]}`, nil, nil)
	defer srv.Close()

	c := NewGeminiClient(srv.URL, "k", "m")
	reply, err := c.GenerateContent(context.Background(), nil)
	if err != nil {
		t.Fatalf("GenerateContent returned error: %v", err)
	}
	if reply != "" {
		t.Errorf("reply = %q, want empty for callers to substitute their fallback", reply)
	}
}

func TestGenerateContentNon200(t *testing.T) {
	srv := geminiStub(t, http.StatusTooManyRequests, `{"error":{"message":"quota"}}`, nil, nil)
	defer srv.Close()

	c := NewGeminiClient(srv.URL, "k", "m")
	if _, err := c.GenerateContent(context.Background(), nil); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}
