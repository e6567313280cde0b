package gmailclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gopait/erxes-integrations/internal/common"
)

// TestStopPushNotification kiểm tra dừng push notification thành công
func TestStopPushNotification(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewWatchClientWithBaseURL(server.URL)
	if err := client.StopPushNotification(context.Background(), "token-123", "user@gmail.com"); err != nil {
		t.Fatalf("Không mong đợi lỗi, nhận được %v", err)
	}
	if gotAuth != "Bearer token-123" {
		t.Errorf("Thiếu bearer token, nhận được %q", gotAuth)
	}
	if gotPath != "/users/user@gmail.com/stop" {
		t.Errorf("Path không đúng: %q", gotPath)
	}
}

// TestStopPushNotificationNoWatch kiểm tra mailbox không còn watch (404)
// được coi là thành công
func TestStopPushNotificationNoWatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewWatchClientWithBaseURL(server.URL)
	if err := client.StopPushNotification(context.Background(), "token-123", "user@gmail.com"); err != nil {
		t.Errorf("Mailbox không còn watch phải được coi là thành công, nhận được %v", err)
	}
}

// TestStopPushNotificationFailure kiểm tra lỗi khác phải nổi lên
func TestStopPushNotificationFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"insufficient scopes"}}`))
	}))
	defer server.Close()

	client := NewWatchClientWithBaseURL(server.URL)
	err := client.StopPushNotification(context.Background(), "token-123", "user@gmail.com")
	var customErr *common.Error
	if !errors.As(err, &customErr) || customErr.Code.Code != common.ErrCodeProviderUpstream.Code {
		t.Errorf("Mong đợi lỗi provider upstream, nhận được %v", err)
	}
}
