package nylashdl

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
)

const testSecret = "test-secret"

// signBody ký body giống cách Nylas ký webhook
func signBody(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// syncRecorder ghi lại các lần sync theo thứ tự, trả lỗi cho message cấu hình sẵn
type syncRecorder struct {
	calls   []string
	failFor string
}

func (r *syncRecorder) sync(ctx context.Context, accountId, messageId string) error {
	r.calls = append(r.calls, accountId+"/"+messageId)
	if messageId == r.failFor {
		return fmt.Errorf("sync failed for %s", messageId)
	}
	return nil
}

func newWebhookApp(recorder *syncRecorder) *fiber.App {
	handler := NewNylasWebhookHandler(testSecret, recorder.sync)
	app := fiber.New()
	app.Get("/nylas/webhook", handler.HandleVerify)
	app.Post("/nylas/webhook", handler.HandleWebhook)
	return app
}

// TestHandleVerify kiểm tra bước verify: echo nguyên văn challenge
func TestHandleVerify(t *testing.T) {
	app := newWebhookApp(&syncRecorder{})

	req := httptest.NewRequest("GET", "/nylas/webhook?challenge=abc123", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Không mong đợi lỗi, nhận được %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 || string(body) != "abc123" {
		t.Errorf("Mong đợi 200 với body 'abc123', nhận được %d %q", resp.StatusCode, string(body))
	}
}

// TestHandleWebhookBadSignature kiểm tra chữ ký sai: từ chối và không sync gì
func TestHandleWebhookBadSignature(t *testing.T) {
	recorder := &syncRecorder{}
	app := newWebhookApp(recorder)

	payload := []byte(`{"deltas":[{"type":"message.created","object_data":{"account_id":"a1","id":"m1"}}]}`)
	req := httptest.NewRequest("POST", "/nylas/webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Nylas-Signature", "deadbeef")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Không mong đợi lỗi, nhận được %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 401 {
		t.Errorf("Mong đợi 401, nhận được %d", resp.StatusCode)
	}
	if len(recorder.calls) != 0 {
		t.Error("Không được sync delta nào khi chữ ký sai")
	}
}

// TestHandleWebhookDispatch kiểm tra dispatch deltas: đúng thứ tự, bỏ qua
// các loại delta khác, luôn trả về "success"
func TestHandleWebhookDispatch(t *testing.T) {
	recorder := &syncRecorder{}
	app := newWebhookApp(recorder)

	payload := []byte(`{"deltas":[` +
		`{"type":"message.created","object_data":{"account_id":"a1","id":"m1"}},` +
		`{"type":"thread.replied","object_data":{"account_id":"a1","id":"t1"}},` +
		`{"type":"message.created","object_data":{"account_id":"a2","id":"m2"}}]}`)

	req := httptest.NewRequest("POST", "/nylas/webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Nylas-Signature", signBody(payload))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Không mong đợi lỗi, nhận được %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 || string(body) != "success" {
		t.Errorf("Mong đợi 200 'success', nhận được %d %q", resp.StatusCode, string(body))
	}

	if len(recorder.calls) != 2 {
		t.Fatalf("Mong đợi 2 lần sync, nhận được %d", len(recorder.calls))
	}
	if recorder.calls[0] != "a1/m1" || recorder.calls[1] != "a2/m2" {
		t.Errorf("Deltas phải được xử lý theo thứ tự: %+v", recorder.calls)
	}
}

// TestHandleWebhookErrorIsolation kiểm tra một delta lỗi không chặn các delta
// phía sau và không đổi response
func TestHandleWebhookErrorIsolation(t *testing.T) {
	recorder := &syncRecorder{failFor: "m1"}
	app := newWebhookApp(recorder)

	payload := []byte(`{"deltas":[` +
		`{"type":"message.created","object_data":{"account_id":"a1","id":"m1"}},` +
		`{"type":"message.created","object_data":{"account_id":"a1","id":"m2"}}]}`)

	req := httptest.NewRequest("POST", "/nylas/webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Nylas-Signature", signBody(payload))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Không mong đợi lỗi, nhận được %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 || string(body) != "success" {
		t.Errorf("Delta lỗi không được đổi response: %d %q", resp.StatusCode, string(body))
	}
	if len(recorder.calls) != 2 {
		t.Errorf("Delta lỗi không được chặn delta phía sau: %+v", recorder.calls)
	}
}
