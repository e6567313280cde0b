// Package fbclient chứa client gọi Facebook Graph API
package fbclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gopait/erxes-integrations/internal/common"
)

const (
	// graphAPIBaseURL là base URL của Facebook Graph API
	graphAPIBaseURL = "https://graph.facebook.com/v7.0"

	// graphErrCodeNotExist là mã lỗi Graph khi object không tồn tại hoặc
	// app đã không còn subscription trên page
	graphErrCodeNotExist = 100
)

// GraphClient là client gọi Facebook Graph API
type GraphClient struct {
	httpClient *http.Client // HTTP client với timeout
	baseURL    string       // Base URL (thay được trong test)
}

// NewGraphClient tạo mới GraphClient với timeout mặc định 10 giây
func NewGraphClient() *GraphClient {
	return &GraphClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    graphAPIBaseURL,
	}
}

// NewGraphClientWithBaseURL tạo GraphClient trỏ đến base URL khác (dùng trong test)
func NewGraphClientWithBaseURL(baseURL string) *GraphClient {
	client := NewGraphClient()
	client.baseURL = baseURL
	return client
}

// graphError là cấu trúc lỗi chuẩn của Graph API
type graphError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// GetPageAccessToken lấy page access token từ user access token.
// Page token là token cần dùng cho các thao tác trên page (unsubscribe webhook).
func (c *GraphClient) GetPageAccessToken(ctx context.Context, userToken, pageId string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s?fields=access_token&access_token=%s",
		c.baseURL, url.PathEscape(pageId), url.QueryEscape(userToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", common.NewError(common.ErrCodeProviderUpstream,
			fmt.Sprintf("Không gọi được Facebook Graph API: %v", err),
			common.StatusBadGateway, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var gErr graphError
		_ = json.Unmarshal(body, &gErr)
		return "", common.NewError(common.ErrCodeProviderUpstream,
			fmt.Sprintf("Facebook từ chối lấy page token của page %s: %s", pageId, gErr.Error.Message),
			common.StatusBadGateway, nil)
	}

	var result struct {
		AccessToken string `json:"access_token"`
		Id          string `json:"id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse page token response: %w", err)
	}
	if result.AccessToken == "" {
		return "", common.NewError(common.ErrCodeProviderUpstream,
			fmt.Sprintf("Facebook không trả về access_token cho page %s", pageId),
			common.StatusBadGateway, nil)
	}

	return result.AccessToken, nil
}

// UnsubscribePage gỡ app khỏi webhook subscription của page.
// Page đã không còn subscription (mã lỗi 100) được coi là thành công
// để thao tác gỡ integration có thể chạy lại an toàn.
func (c *GraphClient) UnsubscribePage(ctx context.Context, pageToken, pageId string) error {
	endpoint := fmt.Sprintf("%s/%s/subscribed_apps?access_token=%s",
		c.baseURL, url.PathEscape(pageId), url.QueryEscape(pageToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return common.NewError(common.ErrCodeProviderUpstream,
			fmt.Sprintf("Không gọi được Facebook Graph API: %v", err),
			common.StatusBadGateway, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var gErr graphError
		_ = json.Unmarshal(body, &gErr)
		if gErr.Error.Code == graphErrCodeNotExist {
			return nil
		}
		return common.NewError(common.ErrCodeProviderUpstream,
			fmt.Sprintf("Facebook từ chối unsubscribe page %s: %s", pageId, gErr.Error.Message),
			common.StatusBadGateway, nil)
	}

	return nil
}
