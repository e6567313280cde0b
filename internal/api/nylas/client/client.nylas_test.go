package nylasclient

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gopait/erxes-integrations/internal/common"
)

// TestDefaultUnconfigured kiểm tra client mặc định chưa Setup
func TestDefaultUnconfigured(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, err := Default(); !errors.Is(err, common.ErrProviderUnconfigured) {
		t.Errorf("Mong đợi ErrProviderUnconfigured, nhận được %v", err)
	}
}

// TestSetupAndDefault kiểm tra Setup với credentials hợp lệ và không hợp lệ
func TestSetupAndDefault(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	// Credentials rỗng phải bị từ chối
	if err := Setup("", "secret"); err == nil {
		t.Error("Setup với client ID rỗng phải trả về lỗi")
	}
	if _, err := Default(); !errors.Is(err, common.ErrProviderUnconfigured) {
		t.Error("Setup thất bại không được thay đổi trạng thái")
	}

	if err := Setup("client-id", "client-secret"); err != nil {
		t.Fatalf("Không mong đợi lỗi, nhận được %v", err)
	}
	client, err := Default()
	if err != nil {
		t.Fatalf("Không mong đợi lỗi, nhận được %v", err)
	}
	if client.clientID != "client-id" {
		t.Errorf("Client ID không đúng: %q", client.clientID)
	}
}

// TestVerifyWebhookSignature kiểm tra xác thực chữ ký HMAC-SHA256
func TestVerifyWebhookSignature(t *testing.T) {
	body := []byte(`{"deltas":[]}`)
	secret := "my-secret"

	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	mac := hex.EncodeToString(h.Sum(nil))

	if !VerifyWebhookSignature(body, mac, secret) {
		t.Error("Chữ ký đúng phải được chấp nhận")
	}
	if VerifyWebhookSignature(body, "deadbeef", secret) {
		t.Error("Chữ ký sai phải bị từ chối")
	}
	if VerifyWebhookSignature([]byte("tampered"), mac, secret) {
		t.Error("Body bị sửa phải bị từ chối")
	}
}

// TestEnableOrDisableAccount kiểm tra upgrade/downgrade account
func TestEnableOrDisableAccount(t *testing.T) {
	var gotPaths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.URL.Path)
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client, err := NewClientWithBaseURL("cid", "csecret", server.URL)
	if err != nil {
		t.Fatalf("Không mong đợi lỗi, nhận được %v", err)
	}

	if err := client.EnableOrDisableAccount(context.Background(), "acc1", false); err != nil {
		t.Fatalf("Không mong đợi lỗi, nhận được %v", err)
	}
	if err := client.EnableOrDisableAccount(context.Background(), "acc1", true); err != nil {
		t.Fatalf("Không mong đợi lỗi, nhận được %v", err)
	}

	if len(gotPaths) != 2 ||
		gotPaths[0] != "/a/cid/accounts/acc1/downgrade" ||
		gotPaths[1] != "/a/cid/accounts/acc1/upgrade" {
		t.Errorf("Đường dẫn upgrade/downgrade không đúng: %+v", gotPaths)
	}
}
