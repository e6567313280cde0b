// Package nylasclient chứa client gọi Nylas API.
//
// Client mặc định của package là state tường minh: phải gọi Setup với cặp
// client ID/secret hợp lệ trước khi dùng; chưa Setup thì mọi lời gọi trả về
// common.ErrProviderUnconfigured thay vì âm thầm gọi với credentials rỗng.
package nylasclient

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sync"
	"time"

	"github.com/gopait/erxes-integrations/internal/common"
)

// nylasAPIBaseURL là base URL của Nylas API
const nylasAPIBaseURL = "https://api.nylas.com"

// ====================================
// CLIENT VÀ STATE MẶC ĐỊNH
// ====================================

// Client là client gọi Nylas API với một cặp application credentials
type Client struct {
	httpClient   *http.Client // HTTP client với timeout
	baseURL      string       // Base URL (thay được trong test)
	clientID     string       // Nylas client ID
	clientSecret string       // Nylas client secret
}

var (
	defaultMu     sync.RWMutex
	defaultClient *Client // nil nghĩa là chưa Setup
)

// NewClient tạo Client mới với timeout mặc định 10 giây
func NewClient(clientID, clientSecret string) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, common.NewError(common.ErrCodeProviderConfig,
			"Thiếu NYLAS_CLIENT_ID hoặc NYLAS_CLIENT_SECRET",
			common.StatusServiceUnavailable, nil)
	}
	return &Client{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		baseURL:      nylasAPIBaseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
	}, nil
}

// NewClientWithBaseURL tạo Client trỏ đến base URL khác (dùng trong test)
func NewClientWithBaseURL(clientID, clientSecret, baseURL string) (*Client, error) {
	client, err := NewClient(clientID, clientSecret)
	if err != nil {
		return nil, err
	}
	client.baseURL = baseURL
	return client, nil
}

// Setup khởi tạo client mặc định của package. Gọi một lần lúc boot.
func Setup(clientID, clientSecret string) error {
	client, err := NewClient(clientID, clientSecret)
	if err != nil {
		return err
	}
	defaultMu.Lock()
	defaultClient = client
	defaultMu.Unlock()
	return nil
}

// Reset đưa client mặc định về trạng thái chưa cấu hình (dùng trong test)
func Reset() {
	defaultMu.Lock()
	defaultClient = nil
	defaultMu.Unlock()
}

// Default trả về client mặc định; chưa Setup thì trả về ErrProviderUnconfigured
func Default() (*Client, error) {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	if defaultClient == nil {
		return nil, common.ErrProviderUnconfigured
	}
	return defaultClient, nil
}

// ====================================
// WEBHOOK SIGNATURE
// ====================================

// VerifyWebhookSignature kiểm tra chữ ký X-Nylas-Signature của webhook:
// HMAC-SHA256 hex của raw body với key là client secret.
// So sánh bằng hmac.Equal để chống timing attack.
func VerifyWebhookSignature(body []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ====================================
// HELPER GỌI API
// ====================================

// doJSON gửi request và decode JSON response vào out (nếu out != nil)
func (c *Client) doJSON(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return common.NewError(common.ErrCodeProviderUpstream,
			fmt.Sprintf("Không gọi được Nylas API: %v", err),
			common.StatusBadGateway, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return common.NewError(common.ErrCodeProviderUpstream,
			fmt.Sprintf("Nylas trả về %d: %s", resp.StatusCode, string(body)),
			common.StatusBadGateway, nil)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to parse nylas response: %w", err)
		}
	}
	return nil
}

// ====================================
// ACCOUNT MANAGEMENT
// ====================================

// ConnectedAccount là kết quả connect account vào Nylas
type ConnectedAccount struct {
	AccessToken  string `json:"access_token"`  // Token thao tác mailbox qua Nylas
	AccountId    string `json:"account_id"`    // Account ID phía Nylas
	BillingState string `json:"billing_state"` // Trạng thái billing (paid/cancelled)
}

// ConnectProvider connect một mailbox vào Nylas qua native authentication:
// bước authorize đổi settings lấy code, bước token đổi code lấy access token.
func (c *Client) ConnectProvider(ctx context.Context, name, email, providerKind, scopes string, settings map[string]interface{}) (*ConnectedAccount, error) {
	authorizePayload := map[string]interface{}{
		"client_id":     c.clientID,
		"name":          name,
		"email_address": email,
		"provider":      providerKind,
		"settings":      settings,
		"scopes":        scopes,
	}
	raw, err := json.Marshal(authorizePayload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal authorize payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/connect/authorize", bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var authorizeResult struct {
		Code string `json:"code"`
	}
	if err := c.doJSON(req, &authorizeResult); err != nil {
		return nil, err
	}

	tokenPayload := map[string]interface{}{
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
		"code":          authorizeResult.Code,
	}
	raw, err = json.Marshal(tokenPayload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal token payload: %w", err)
	}

	req, err = http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/connect/token", bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var account ConnectedAccount
	if err := c.doJSON(req, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// EnableOrDisableAccount bật (upgrade) hoặc tắt (downgrade) sync của một
// account phía Nylas. Gỡ integration phải downgrade account trước khi xóa
// dữ liệu local để Nylas ngừng tính phí và ngừng bắn webhook.
func (c *Client) EnableOrDisableAccount(ctx context.Context, accountId string, enable bool) error {
	action := "downgrade"
	if enable {
		action = "upgrade"
	}

	endpoint := fmt.Sprintf("%s/a/%s/accounts/%s/%s", c.baseURL, c.clientID, accountId, action)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	// Account management endpoints xác thực bằng client secret qua basic auth
	req.SetBasicAuth(c.clientSecret, "")

	return c.doJSON(req, nil)
}

// ====================================
// MESSAGES
// ====================================

// Message là bức thư trả về từ Nylas API
type Message struct {
	Id        string                   `json:"id"`         // Message ID phía Nylas
	AccountId string                   `json:"account_id"` // Account ID phía Nylas
	ThreadId  string                   `json:"thread_id"`  // Thread ID
	Subject   string                   `json:"subject"`    // Tiêu đề
	Body      string                   `json:"body"`       // Nội dung (HTML)
	From      []map[string]interface{} `json:"from"`       // Người gửi
	To        []map[string]interface{} `json:"to"`         // Người nhận
	Cc        []map[string]interface{} `json:"cc"`         // Cc
	Bcc       []map[string]interface{} `json:"bcc"`        // Bcc
	Date      int64                    `json:"date"`       // Thời điểm gửi (Unix giây)
}

// GetMessage lấy một bức thư theo message ID với access token của account
func (c *Client) GetMessage(ctx context.Context, accessToken, messageId string) (*Message, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/messages/"+messageId, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(accessToken, "")

	var message Message
	if err := c.doJSON(req, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

// SendMessageRequest là payload gửi thư qua Nylas
type SendMessageRequest struct {
	Subject          string              `json:"subject"`                       // Tiêu đề
	Body             string              `json:"body"`                          // Nội dung (HTML)
	To               []map[string]string `json:"to"`                            // Người nhận
	Cc               []map[string]string `json:"cc,omitempty"`                  // Cc
	Bcc              []map[string]string `json:"bcc,omitempty"`                 // Bcc
	ReplyToMessageId string              `json:"reply_to_message_id,omitempty"` // Message ID đang trả lời
	FileIds          []string            `json:"file_ids,omitempty"`            // Danh sách file đính kèm đã upload
}

// SendMessage gửi thư qua account đã connect
func (c *Client) SendMessage(ctx context.Context, accessToken string, message *SendMessageRequest) (*Message, error) {
	raw, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/send", bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(accessToken, "")

	var sent Message
	if err := c.doJSON(req, &sent); err != nil {
		return nil, err
	}
	return &sent, nil
}

// ====================================
// FILES
// ====================================

// File là metadata file đính kèm phía Nylas
type File struct {
	Id          string `json:"id"`           // File ID
	Filename    string `json:"filename"`     // Tên file
	ContentType string `json:"content_type"` // MIME type
	Size        int64  `json:"size"`         // Kích thước (bytes)
}

// UploadFile upload file đính kèm lên Nylas, trả về metadata để gắn vào thư
func (c *Client) UploadFile(ctx context.Context, accessToken, filename, contentType string, data []byte) (*File, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/files", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.SetBasicAuth(accessToken, "")

	// Nylas trả về mảng một phần tử cho mỗi file upload
	var files []File
	if err := c.doJSON(req, &files); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, common.NewError(common.ErrCodeProviderUpstream,
			"Nylas không trả về metadata của file vừa upload",
			common.StatusBadGateway, nil)
	}
	return &files[0], nil
}

// GetAttachment tải nội dung file đính kèm theo file ID
func (c *Client) GetAttachment(ctx context.Context, accessToken, fileId string) ([]byte, *File, error) {
	// Lấy metadata trước để biết tên file và content type
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/files/"+fileId, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(accessToken, "")

	var meta File
	if err := c.doJSON(req, &meta); err != nil {
		return nil, nil, err
	}

	req, err = http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/files/"+fileId+"/download", nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(accessToken, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, common.NewError(common.ErrCodeProviderUpstream,
			fmt.Sprintf("Không gọi được Nylas API: %v", err),
			common.StatusBadGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, nil, common.NewError(common.ErrCodeProviderUpstream,
			fmt.Sprintf("Nylas trả về %d khi tải file %s: %s", resp.StatusCode, fileId, string(body)),
			common.StatusBadGateway, nil)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read attachment body: %w", err)
	}
	return data, &meta, nil
}
