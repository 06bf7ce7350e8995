package telegram

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// withTestServer points the package at a local server for one test.
func withTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	originalURL := apiBaseURL
	apiBaseURL = server.URL + "/"
	t.Cleanup(func() { apiBaseURL = originalURL })

	return &Client{
		botToken:   "test-token",
		chatID:     "12345",
		httpClient: &http.Client{},
	}
}

func okResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ok":     true,
		"result": map[string]interface{}{"message_id": 123},
	})
}

func TestSendMessage_Success(t *testing.T) {
	client := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type application/json, got %s", r.Header.Get("Content-Type"))
		}
		if !strings.HasSuffix(r.URL.Path, "/sendMessage") {
			t.Errorf("Expected /sendMessage path, got %s", r.URL.Path)
		}

		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		if payload["chat_id"] != "12345" {
			t.Errorf("chat_id = %v, want 12345", payload["chat_id"])
		}
		if payload["parse_mode"] != "HTML" {
			t.Errorf("parse_mode = %v, want HTML", payload["parse_mode"])
		}

		okResponse(w)
	})

	if err := client.SendMessage("Test message"); err != nil {
		t.Errorf("SendMessage() unexpected error: %v", err)
	}
}

func TestSendMessage_APIError(t *testing.T) {
	client := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ok":          false,
			"description": "Bad Request: chat not found",
		})
	})

	err := client.SendMessage("Test message")
	if err == nil {
		t.Error("SendMessage() expected error for API failure, got nil")
	}
	if err != nil && !strings.Contains(err.Error(), "Bad Request") {
		t.Errorf("SendMessage() error = %v, want error containing 'Bad Request'", err)
	}
}

func TestSendMessage_HTTPError(t *testing.T) {
	client := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	})

	err := client.SendMessage("Test message")
	if err == nil {
		t.Error("SendMessage() expected error for HTTP error, got nil")
	}
	if err != nil && !strings.Contains(err.Error(), "status 500") {
		t.Errorf("SendMessage() error = %v, want error containing 'status 500'", err)
	}
}

func TestSendDocument_Success(t *testing.T) {
	icsData := "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"

	client := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/sendDocument") {
			t.Errorf("Expected /sendDocument path, got %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing multipart form: %v", err)
		}
		if got := r.FormValue("chat_id"); got != "12345" {
			t.Errorf("chat_id = %q, want 12345", got)
		}
		if got := r.FormValue("caption"); got != "This week's deadlines" {
			t.Errorf("caption = %q, want digest caption", got)
		}

		file, header, err := r.FormFile("document")
		if err != nil {
			t.Fatalf("reading document part: %v", err)
		}
		defer file.Close()
		if header.Filename != "ilearning.ics" {
			t.Errorf("filename = %q, want ilearning.ics", header.Filename)
		}

		okResponse(w)
	})

	err := client.SendDocument("ilearning.ics", []byte(icsData), "This week's deadlines")
	if err != nil {
		t.Errorf("SendDocument() unexpected error: %v", err)
	}
}

func TestSendDocument_APIError(t *testing.T) {
	client := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ok":          false,
			"description": "Request Entity Too Large",
		})
	})

	err := client.SendDocument("ilearning.ics", []byte("data"), "")
	if err == nil {
		t.Error("SendDocument() expected error for API failure, got nil")
	}
}
