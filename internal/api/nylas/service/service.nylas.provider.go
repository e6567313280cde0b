package nylassvc

import (
	"fmt"
	"strings"

	"github.com/gopait/erxes-integrations/config"
	"github.com/gopait/erxes-integrations/internal/common"
)

// ====================================
// HẰNG SỐ OAUTH THEO PROVIDER
// ====================================

const (
	// Google OAuth
	googleOAuthAuthURL  = "https://accounts.google.com/o/oauth2/auth"
	googleOAuthTokenURL = "https://oauth2.googleapis.com/token"
	googleScopes        = "https://mail.google.com/ " +
		"https://www.googleapis.com/auth/userinfo.email " +
		"https://www.googleapis.com/auth/userinfo.profile"

	// Microsoft OAuth (Office 365)
	microsoftOAuthAuthURL  = "https://login.microsoftonline.com/common/oauth2/v2.0/authorize"
	microsoftOAuthTokenURL = "https://login.microsoftonline.com/common/oauth2/v2.0/token"
	microsoftScopes        = "offline_access openid profile email " +
		"https://outlook.office.com/Mail.ReadWrite https://outlook.office.com/Mail.Send"
)

// ProviderConfig chứa cấu hình OAuth của một provider Nylas hosted-auth
type ProviderConfig struct {
	Params   map[string]string // Tham số thêm vào authorize URL (access_type, prompt, ...)
	AuthURL  string            // OAuth authorize URL
	TokenURL string            // OAuth token URL
	Scope    string            // OAuth scopes cần xin
}

// NylasProviderService phân giải kind thành cấu hình OAuth tương ứng.
// Kind dạng "nylas-<provider>" hoặc "gmail" (hosted auth) đều được chấp nhận.
type NylasProviderService struct {
	cfg *config.Configuration // Cấu hình server chứa các cặp client ID/secret
}

// NewNylasProviderService tạo mới NylasProviderService
func NewNylasProviderService(cfg *config.Configuration) *NylasProviderService {
	return &NylasProviderService{cfg: cfg}
}

// ProviderName tách tên provider từ kind ("nylas-gmail" -> "gmail", "gmail" -> "gmail")
func ProviderName(kind string) string {
	if after, found := strings.CutPrefix(kind, "nylas-"); found {
		return after
	}
	return kind
}

// GetClientConfig trả về cặp (clientId, clientSecret) OAuth của provider
func (s *NylasProviderService) GetClientConfig(kind string) (string, string, error) {
	switch ProviderName(kind) {
	case "gmail":
		return s.cfg.GoogleClientID, s.cfg.GoogleClientSecret, nil
	case "office365":
		return s.cfg.MicrosoftClientID, s.cfg.MicrosoftClientSecret, nil
	default:
		return "", "", fmt.Errorf("no oauth client for kind %s: %w", kind, common.ErrUnsupportedProvider)
	}
}

// GetProviderSettings dựng settings gửi cho Nylas khi connect account qua
// native authentication (refresh token đã lấy được từ bước OAuth).
func (s *NylasProviderService) GetProviderSettings(kind, refreshToken string) (map[string]interface{}, error) {
	clientID, clientSecret, err := s.GetClientConfig(kind)
	if err != nil {
		return nil, err
	}

	switch ProviderName(kind) {
	case "gmail":
		return map[string]interface{}{
			"google_client_id":     clientID,
			"google_client_secret": clientSecret,
			"google_refresh_token": refreshToken,
		}, nil
	case "office365":
		return map[string]interface{}{
			"microsoft_client_id":     clientID,
			"microsoft_client_secret": clientSecret,
			"microsoft_refresh_token": refreshToken,
			"redirect_uri":            s.cfg.DomainURL + "/nylas/oauth2/callback",
		}, nil
	default:
		return nil, common.ErrUnsupportedProvider
	}
}

// GetProviderConfig trả về cấu hình OAuth đầy đủ của provider
func (s *NylasProviderService) GetProviderConfig(kind string) (*ProviderConfig, error) {
	switch ProviderName(kind) {
	case "gmail":
		return &ProviderConfig{
			Params: map[string]string{
				"access_type": "offline",
				"prompt":      "consent",
			},
			AuthURL:  googleOAuthAuthURL,
			TokenURL: googleOAuthTokenURL,
			Scope:    googleScopes,
		}, nil
	case "office365":
		return &ProviderConfig{
			Params:   map[string]string{},
			AuthURL:  microsoftOAuthAuthURL,
			TokenURL: microsoftOAuthTokenURL,
			Scope:    microsoftScopes,
		}, nil
	default:
		return nil, common.ErrUnsupportedProvider
	}
}
