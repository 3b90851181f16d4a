package telegram

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestTelebotAdapter_SendMessage(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ok":true,"result":{"message_id":7,"date":1700000000,"chat":{"id":4242,"type":"private"},"text":"hello"}}`)
	}))
	defer srv.Close()

	bot, err := NewBot("123:abc", srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewBot() err=%v", err)
	}

	if err := NewTelebotAdapter(bot).SendMessage("4242", "hello", nil); err != nil {
		t.Fatalf("SendMessage() err=%v", err)
	}
	if gotPath != "/bot123:abc/sendMessage" {
		t.Fatalf("unexpected request path %q", gotPath)
	}
	if gotBody["chat_id"] != "4242" || gotBody["text"] != "hello" {
		t.Fatalf("unexpected request body %v", gotBody)
	}
}

func TestTelebotAdapter_SendMessageToChannelUsername(t *testing.T) {
	var gotChat any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		gotChat = body["chat_id"]
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ok":true,"result":{"message_id":8,"date":1700000000,"chat":{"id":-1001,"type":"channel","username":"homework_news"},"text":"hi"}}`)
	}))
	defer srv.Close()

	bot, err := NewBot("123:abc", srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewBot() err=%v", err)
	}

	if err := NewTelebotAdapter(bot).SendMessage("@homework_news", "hi", nil); err != nil {
		t.Fatalf("SendMessage() err=%v", err)
	}
	if gotChat != "@homework_news" {
		t.Fatalf("chat_id = %v, want @homework_news", gotChat)
	}
}

func TestTelebotAdapter_SendMessageAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`)
	}))
	defer srv.Close()

	bot, err := NewBot("123:abc", srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewBot() err=%v", err)
	}

	err = NewTelebotAdapter(bot).SendMessage("1", "hello", nil)
	if err == nil {
		t.Fatal("expected error from API")
	}
	if !strings.Contains(err.Error(), "chat not found") {
		t.Fatalf("error does not carry the API description: %v", err)
	}
}
