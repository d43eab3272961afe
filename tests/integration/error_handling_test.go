//go:build integration
// +build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestErrorEnvelope(t *testing.T) {
	baseURL := envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")

	testCases := []struct {
		name    string
		method  string
		path    string
		payload interface{}
		status  int
	}{
		{name: "page out of range", method: http.MethodGet, path: "/questions?page=100000", status: http.StatusNotFound},
		{name: "unknown route", method: http.MethodGet, path: "/nope", status: http.StatusNotFound},
		{name: "wrong method", method: http.MethodPatch, path: "/categories", status: http.StatusMethodNotAllowed},
		{name: "delete missing question", method: http.MethodDelete, path: "/questions/999999999", status: http.StatusUnprocessableEntity},
		{
			name:    "incomplete question",
			method:  http.MethodPost,
			path:    "/questions",
			payload: map[string]interface{}{"question": "no answer"},
			status:  http.StatusUnprocessableEntity,
		},
		{
			name:    "quiz without category",
			method:  http.MethodPost,
			path:    "/quizzes",
			payload: map[string]interface{}{"previous_questions": []int{}},
			status:  http.StatusUnprocessableEntity,
		},
		{
			name:    "blank search term",
			method:  http.MethodPost,
			path:    "/search",
			payload: map[string]interface{}{"searchTerm": ""},
			status:  http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, out := doJSON(t, tc.method, fmt.Sprintf("%s%s", baseURL, tc.path), tc.payload)
			if status != tc.status {
				t.Fatalf("expected %d, got %d, body: %v", tc.status, status, out)
			}
			if out["success"] != false {
				t.Fatalf("expected success=false, got %v", out["success"])
			}
			if out["error"] != float64(tc.status) {
				t.Fatalf("expected error=%d, got %v", tc.status, out["error"])
			}
			if out["message"] == nil {
				t.Fatal("message field is missing")
			}
		})
	}
}
