package nylassvc

import (
	"errors"
	"testing"

	"github.com/gopait/erxes-integrations/config"
	"github.com/gopait/erxes-integrations/internal/common"
)

func testConfig() *config.Configuration {
	return &config.Configuration{
		DomainURL:             "http://localhost:3400",
		GoogleClientID:        "google-id",
		GoogleClientSecret:    "google-secret",
		MicrosoftClientID:     "ms-id",
		MicrosoftClientSecret: "ms-secret",
	}
}

// TestGetClientConfig kiểm tra phân giải cặp OAuth credentials theo kind
func TestGetClientConfig(t *testing.T) {
	service := NewNylasProviderService(testConfig())

	// Kind có tiền tố nylas- và kind trần đều phải hoạt động
	for _, kind := range []string{"gmail", "nylas-gmail"} {
		id, secret, err := service.GetClientConfig(kind)
		if err != nil {
			t.Fatalf("GetClientConfig(%q): không mong đợi lỗi, nhận được %v", kind, err)
		}
		if id != "google-id" || secret != "google-secret" {
			t.Errorf("GetClientConfig(%q): nhận được cặp credentials sai: %s/%s", kind, id, secret)
		}
	}

	id, _, err := service.GetClientConfig("nylas-office365")
	if err != nil || id != "ms-id" {
		t.Errorf("GetClientConfig(nylas-office365): mong đợi ms-id, nhận được %s (err=%v)", id, err)
	}

	if _, _, err := service.GetClientConfig("nylas-imap"); !errors.Is(err, common.ErrUnsupportedProvider) {
		t.Errorf("GetClientConfig(nylas-imap): mong đợi ErrUnsupportedProvider, nhận được %v", err)
	}
}

// TestGetProviderSettings kiểm tra settings connect account theo provider
func TestGetProviderSettings(t *testing.T) {
	service := NewNylasProviderService(testConfig())

	settings, err := service.GetProviderSettings("nylas-gmail", "refresh-123")
	if err != nil {
		t.Fatalf("Không mong đợi lỗi, nhận được %v", err)
	}
	if settings["google_refresh_token"] != "refresh-123" {
		t.Errorf("Thiếu refresh token trong settings: %+v", settings)
	}
	if settings["google_client_id"] != "google-id" {
		t.Errorf("Thiếu client id trong settings: %+v", settings)
	}
}

// TestGetProviderConfig kiểm tra cấu hình OAuth đầy đủ
func TestGetProviderConfig(t *testing.T) {
	service := NewNylasProviderService(testConfig())

	cfg, err := service.GetProviderConfig("gmail")
	if err != nil {
		t.Fatalf("Không mong đợi lỗi, nhận được %v", err)
	}
	if cfg.Params["access_type"] != "offline" || cfg.Params["prompt"] != "consent" {
		t.Errorf("Params của gmail không đúng: %+v", cfg.Params)
	}
	if cfg.AuthURL == "" || cfg.TokenURL == "" || cfg.Scope == "" {
		t.Error("AuthURL/TokenURL/Scope không được để trống")
	}

	if _, err := service.GetProviderConfig("callpro"); !errors.Is(err, common.ErrUnsupportedProvider) {
		t.Errorf("GetProviderConfig(callpro): mong đợi ErrUnsupportedProvider, nhận được %v", err)
	}
}
