package homework

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestRemoteServiceError_ShortensBodyInMessage(t *testing.T) {
	body := strings.Repeat("Сервис недоступен. ", 400)
	err := &RemoteServiceError{Endpoint: "https://example.test", StatusCode: 503, Body: body}

	msg := err.Error()
	if !utf8.ValidString(msg) {
		t.Fatal("error text is not valid UTF-8")
	}
	if !strings.Contains(msg, "status 503") {
		t.Fatalf("status code missing: %q", msg)
	}
	if !strings.HasSuffix(msg, "…") {
		t.Fatalf("shortened body must end with an ellipsis: %q", msg)
	}
	if utf8.RuneCountInString(msg) > maxBodyInError+100 {
		t.Fatalf("error text too long: %d runes", utf8.RuneCountInString(msg))
	}
	if err.Body != body {
		t.Fatal("full body must be kept on the error")
	}
}

func TestRemoteServiceError_ShortBodyUnchanged(t *testing.T) {
	err := &RemoteServiceError{Endpoint: "https://example.test", StatusCode: 500, Body: "oops"}
	if got, want := err.Error(), "endpoint https://example.test returned status 500: oops"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
