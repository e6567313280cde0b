package provider

import (
	"errors"
	"testing"

	"github.com/gopait/erxes-integrations/internal/common"
)

// TestParseKind kiểm tra phân giải kind thành Family
func TestParseKind(t *testing.T) {
	cases := []struct {
		kind    string
		family  Family
		wantErr bool
	}{
		{"facebook", FamilyFacebook, false},
		{"gmail", FamilyGmail, false},
		{"callpro", FamilyCallPro, false},
		{"nylas-gmail", FamilyNylas, false},
		{"nylas-imap", FamilyNylas, false},
		{"nylas-office365", FamilyNylas, false},
		{"twitter", "", true},
		{"", "", true},
		{"nylas", "", true}, // thiếu provider phía sau
	}

	for _, tc := range cases {
		family, err := ParseKind(tc.kind)
		if tc.wantErr {
			if !errors.Is(err, common.ErrUnsupportedProvider) {
				t.Errorf("ParseKind(%q): mong đợi ErrUnsupportedProvider, nhận được %v", tc.kind, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseKind(%q): không mong đợi lỗi, nhận được %v", tc.kind, err)
			continue
		}
		if family != tc.family {
			t.Errorf("ParseKind(%q): mong đợi %s, nhận được %s", tc.kind, tc.family, family)
		}
	}
}

// TestRegistryResolve kiểm tra phân giải adapter, bao gồm trường hợp đặc biệt
// gmail đã connect qua Nylas
func TestRegistryResolve(t *testing.T) {
	registry := NewRegistry()
	gmailAdapter := &Adapter{Family: FamilyGmail}
	nylasAdapter := &Adapter{Family: FamilyNylas}
	registry.Register(gmailAdapter)
	registry.Register(nylasAdapter)

	// Gmail native
	adapter, err := registry.Resolve("gmail", false)
	if err != nil {
		t.Fatalf("Resolve(gmail, false): không mong đợi lỗi, nhận được %v", err)
	}
	if adapter != gmailAdapter {
		t.Error("Resolve(gmail, false): mong đợi adapter gmail native")
	}

	// Gmail đã connect qua Nylas phải dùng adapter nylas
	adapter, err = registry.Resolve("gmail", true)
	if err != nil {
		t.Fatalf("Resolve(gmail, true): không mong đợi lỗi, nhận được %v", err)
	}
	if adapter != nylasAdapter {
		t.Error("Resolve(gmail, true): mong đợi adapter nylas")
	}

	// Kind không hỗ trợ
	if _, err := registry.Resolve("twitter", false); !errors.Is(err, common.ErrUnsupportedProvider) {
		t.Errorf("Resolve(twitter): mong đợi ErrUnsupportedProvider, nhận được %v", err)
	}

	// Họ hợp lệ nhưng chưa đăng ký adapter
	if _, err := registry.Resolve("facebook", false); !errors.Is(err, common.ErrUnsupportedProvider) {
		t.Errorf("Resolve(facebook) khi chưa đăng ký: mong đợi ErrUnsupportedProvider, nhận được %v", err)
	}
}
