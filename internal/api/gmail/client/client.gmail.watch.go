// Package gmailclient chứa client gọi Gmail API cho việc quản lý push notification
package gmailclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gopait/erxes-integrations/internal/common"
)

// gmailAPIBaseURL là base URL của Gmail API
const gmailAPIBaseURL = "https://gmail.googleapis.com/gmail/v1"

// WatchClient là client quản lý push notification (watch/stop) của Gmail API
type WatchClient struct {
	httpClient *http.Client // HTTP client với timeout
	baseURL    string       // Base URL (thay được trong test)
}

// NewWatchClient tạo mới WatchClient với timeout mặc định 10 giây
func NewWatchClient() *WatchClient {
	return &WatchClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    gmailAPIBaseURL,
	}
}

// NewWatchClientWithBaseURL tạo WatchClient trỏ đến base URL khác (dùng trong test)
func NewWatchClientWithBaseURL(baseURL string) *WatchClient {
	client := NewWatchClient()
	client.baseURL = baseURL
	return client
}

// StopPushNotification dừng kênh push notification của một mailbox.
// Mailbox không còn watch (404) được coi là thành công để thao tác
// gỡ integration có thể chạy lại an toàn.
func (c *WatchClient) StopPushNotification(ctx context.Context, accessToken, email string) error {
	endpoint := fmt.Sprintf("%s/users/%s/stop", c.baseURL, url.PathEscape(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return common.NewError(common.ErrCodeProviderUpstream,
			fmt.Sprintf("Không gọi được Gmail API: %v", err),
			common.StatusBadGateway, err)
	}
	defer resp.Body.Close()

	// Gmail trả về 204 khi dừng thành công
	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusOK {
		return nil
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	return common.NewError(common.ErrCodeProviderUpstream,
		fmt.Sprintf("Gmail từ chối dừng push notification của %s: %s", email, string(body)),
		common.StatusBadGateway, nil)
}
