// Package provider định nghĩa các họ provider được hỗ trợ và adapter
// cho việc dọn dẹp dữ liệu mirror + thu hồi tài nguyên phía upstream.
package provider

import (
	"strings"

	"github.com/gopait/erxes-integrations/internal/common"
)

// Family là họ provider - xác định bộ collection mirror và cách thu hồi tài nguyên.
// Đây là enum đóng: kind không thuộc họ nào sẽ bị từ chối ngay với
// common.ErrUnsupportedProvider thay vì rơi vào nhánh mặc định.
type Family string

const (
	FamilyFacebook Family = "facebook" // Facebook Messenger / Posts
	FamilyGmail    Family = "gmail"    // Gmail native (push notification qua Pub/Sub)
	FamilyNylas    Family = "nylas"    // Các kênh email qua Nylas (nylas-gmail, nylas-imap, ...)
	FamilyCallPro  Family = "callpro"  // Tổng đài CallPro
)

// ParseKind phân giải kind của integration thành Family.
// Kind dạng "nylas-<provider>" (nylas-gmail, nylas-imap, ...) thuộc họ nylas;
// các kind còn lại phải khớp chính xác.
func ParseKind(kind string) (Family, error) {
	switch kind {
	case "facebook":
		return FamilyFacebook, nil
	case "gmail":
		return FamilyGmail, nil
	case "callpro":
		return FamilyCallPro, nil
	}
	if prefix, _, found := strings.Cut(kind, "-"); found && prefix == "nylas" {
		return FamilyNylas, nil
	}
	return "", common.ErrUnsupportedProvider
}
