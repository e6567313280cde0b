package provider

import (
	"context"

	"github.com/gopait/erxes-integrations/internal/api/integration/models"
	"github.com/gopait/erxes-integrations/internal/common"
)

// ====================================
// INTERFACE VÀ STRUCT
// ====================================

// MirrorCollection là tập thao tác tối thiểu mà engine dọn dẹp cần trên một
// collection mirror. BaseServiceMongoImpl thỏa mãn interface này; test có thể
// dùng fake in-memory.
type MirrorCollection interface {
	// DeleteMany xóa các documents khớp filter, trả về số document đã xóa
	DeleteMany(ctx context.Context, filter interface{}) (int64, error)
	// Distinct trả về các giá trị distinct của một field theo filter
	Distinct(ctx context.Context, fieldName string, filter interface{}) ([]interface{}, error)
}

// MirrorSet là bộ collection mirror của một họ provider.
// Posts và Comments chỉ có ở họ facebook, các họ khác để nil.
type MirrorSet struct {
	Customers     MirrorCollection // Khách hàng mirror
	Conversations MirrorCollection // Cuộc trò chuyện mirror
	Messages      MirrorCollection // Tin nhắn mirror
	Posts         MirrorCollection // Bài viết (chỉ facebook)
	Comments      MirrorCollection // Bình luận (chỉ facebook)
}

// RevokeFunc thu hồi tài nguyên phía upstream trước khi xóa dữ liệu local
// (unsubscribe webhook page, dừng push notification, disable account Nylas).
// Trả về lỗi nghĩa là KHÔNG được xóa dữ liệu local - caller phải dừng lại.
type RevokeFunc func(ctx context.Context, account models.Account, integration models.Integration) error

// Adapter gói bộ collection mirror và bước thu hồi của một họ provider
type Adapter struct {
	Family  Family     // Họ provider
	Mirrors MirrorSet  // Bộ collection mirror cần dọn
	Revoke  RevokeFunc // Bước thu hồi upstream (nil nếu họ không có gì để thu hồi)
}

// ====================================
// REGISTRY
// ====================================

// Registry ánh xạ Family -> Adapter. Được khởi tạo một lần lúc boot
// với đầy đủ các họ được hỗ trợ.
type Registry struct {
	adapters map[Family]*Adapter
}

// NewRegistry tạo registry adapter mới
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[Family]*Adapter),
	}
}

// Register đăng ký adapter cho một họ provider
func (r *Registry) Register(adapter *Adapter) {
	r.adapters[adapter.Family] = adapter
}

// Resolve phân giải kind của integration thành adapter tương ứng.
//
// Trường hợp đặc biệt: integration kind "gmail" nhưng account đã connect qua
// Nylas (hostedAuth=true) thì dữ liệu mirror và bước thu hồi thuộc họ nylas,
// không phải gmail native.
func (r *Registry) Resolve(kind string, hostedAuth bool) (*Adapter, error) {
	family, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}

	if family == FamilyGmail && hostedAuth {
		family = FamilyNylas
	}

	adapter, exist := r.adapters[family]
	if !exist {
		return nil, common.ErrUnsupportedProvider
	}
	return adapter, nil
}
