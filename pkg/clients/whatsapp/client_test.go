package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ndiayefarms/broodplan/internal/config"
)

type capturedPayload struct {
	To   string `json:"to"`
	Text struct {
		Body       string `json:"body"`
		PreviewURL bool   `json:"preview_url"`
	} `json:"text"`
}

func testClient(t *testing.T, got *capturedPayload) *APIClient {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(got); err != nil {
			t.Errorf("failed to decode request payload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.test"}]}`))
	}))
	t.Cleanup(srv.Close)

	return NewClient(config.WhatsAppConfig{
		AccessToken:   "token",
		PhoneNumberID: "12345",
		BaseURL:       srv.URL,
		APIVersion:    "v20.0",
	})
}

func TestSendDigest(t *testing.T) {
	var got capturedPayload
	client := testClient(t, &got)

	if err := client.SendDigest(context.Background(), "224000000000", "Plan day 3: 2 task(s) today."); err != nil {
		t.Fatalf("SendDigest failed: %v", err)
	}

	if got.To != "224000000000" {
		t.Errorf("to = %q, want the recipient", got.To)
	}
	if got.Text.Body != "Plan day 3: 2 task(s) today." {
		t.Errorf("body = %q, short digests must pass through unchanged", got.Text.Body)
	}
	if got.Text.PreviewURL {
		t.Errorf("digests must not request link previews")
	}
}

func TestSendDigestTruncatesOverlongBody(t *testing.T) {
	var got capturedPayload
	client := testClient(t, &got)

	long := strings.Repeat("a", maxDigestRunes+200)
	if err := client.SendDigest(context.Background(), "224000000000", long); err != nil {
		t.Fatalf("SendDigest failed: %v", err)
	}

	if n := len([]rune(got.Text.Body)); n > maxDigestRunes {
		t.Errorf("body is %d runes, must not exceed %d", n, maxDigestRunes)
	}
	if !strings.HasSuffix(got.Text.Body, "…") {
		t.Errorf("truncated body must end with an ellipsis")
	}
}
