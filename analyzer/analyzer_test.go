package analyzer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDescribe(t *testing.T) {
	var gotModel string
	var gotImage bool

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Content []struct {
					Type     string `json:"type"`
					ImageURL *struct {
						URL string `json:"url"`
					} `json:"image_url"`
				} `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		gotModel = req.Model
		for _, m := range req.Messages {
			for _, part := range m.Content {
				if part.ImageURL != nil && strings.HasPrefix(part.ImageURL.URL, "data:image/png;base64,") {
					gotImage = true
				}
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "  A home screen.  "}}]
		}`))
	}))
	defer ts.Close()

	a := New(&Config{BaseURL: ts.URL, Model: "test-vision", APIKey: "test"})

	description, err := a.Describe(context.Background(), []byte{0x89, 'P', 'N', 'G'})
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if description != "A home screen." {
		t.Errorf("description = %q", description)
	}
	if gotModel != "test-vision" {
		t.Errorf("model = %q", gotModel)
	}
	if !gotImage {
		t.Error("request carried no data-URL image part")
	}
}

func TestDescribeEmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer ts.Close()

	a := New(&Config{BaseURL: ts.URL, Model: "test-vision", APIKey: "test"})

	if _, err := a.Describe(context.Background(), []byte("png")); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
