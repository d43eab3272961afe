//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"testing"
)

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// doJSON sends payload (if non-nil) as JSON and decodes the JSON response.
func doJSON(t *testing.T, method, url string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && err != io.EOF {
		t.Fatalf("decode response from %s %s: %v", method, url, err)
	}
	return resp.StatusCode, out
}

func createQuestion(t *testing.T, baseURL, text string, category int) int {
	t.Helper()

	status, out := doJSON(t, http.MethodPost, baseURL+"/questions", map[string]interface{}{
		"question":   text,
		"answer":     "integration",
		"category":   category,
		"difficulty": 1,
	})
	if status != http.StatusOK {
		t.Fatalf("create question: unexpected status %d: %v", status, out)
	}
	id, ok := out["created"].(float64)
	if !ok {
		t.Fatalf("create question: missing created id in %v", out)
	}
	return int(id)
}
