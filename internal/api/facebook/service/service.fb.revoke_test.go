package fbsvc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gopait/erxes-integrations/internal/api/integration/models"
	"github.com/gopait/erxes-integrations/internal/common"
)

// fakeGraph giả lập Graph API, ghi lại các page đã unsubscribe
type fakeGraph struct {
	tokens         map[string]string // pageId -> page token trả về
	tokenCalls     []string
	unsubscribed   []string
	failForPageIds map[string]bool // các page unsubscribe thất bại
}

func (g *fakeGraph) GetPageAccessToken(ctx context.Context, userToken, pageId string) (string, error) {
	g.tokenCalls = append(g.tokenCalls, pageId)
	token, ok := g.tokens[pageId]
	if !ok {
		return "", common.ErrUpstreamProvider
	}
	return token, nil
}

func (g *fakeGraph) UnsubscribePage(ctx context.Context, pageToken, pageId string) error {
	if g.failForPageIds[pageId] {
		return fmt.Errorf("unsubscribe failed for %s", pageId)
	}
	g.unsubscribed = append(g.unsubscribed, pageId)
	return nil
}

// TestFbRevokeUsesCachedTokens kiểm tra page token đã cache được dùng trước,
// không gọi Graph lấy lại
func TestFbRevokeUsesCachedTokens(t *testing.T) {
	graph := &fakeGraph{tokens: map[string]string{}}
	service := NewFbRevokeService(graph)

	integration := models.Integration{
		ErxesApiId:            "erxes-fb",
		FacebookPageIds:       []string{"pg1", "pg2"},
		FacebookPageTokensMap: map[string]string{"pg1": "tok1", "pg2": "tok2"},
	}

	if err := service.Revoke(context.Background(), models.Account{Token: "user-token"}, integration); err != nil {
		t.Fatalf("Không mong đợi lỗi, nhận được %v", err)
	}
	if len(graph.tokenCalls) != 0 {
		t.Errorf("Không được gọi Graph lấy token khi đã có cache: %+v", graph.tokenCalls)
	}
	if len(graph.unsubscribed) != 2 {
		t.Errorf("Phải unsubscribe cả 2 page, nhận được %+v", graph.unsubscribed)
	}
}

// TestFbRevokeFallbackToGraph kiểm tra page thiếu token cache thì lấy qua Graph
func TestFbRevokeFallbackToGraph(t *testing.T) {
	graph := &fakeGraph{tokens: map[string]string{"pg1": "tok1"}}
	service := NewFbRevokeService(graph)

	integration := models.Integration{
		ErxesApiId:      "erxes-fb",
		FacebookPageIds: []string{"pg1"},
	}

	if err := service.Revoke(context.Background(), models.Account{Token: "user-token"}, integration); err != nil {
		t.Fatalf("Không mong đợi lỗi, nhận được %v", err)
	}
	if len(graph.tokenCalls) != 1 || graph.tokenCalls[0] != "pg1" {
		t.Errorf("Phải gọi Graph lấy token cho pg1: %+v", graph.tokenCalls)
	}
}

// TestFbRevokePartialFailure kiểm tra một page lỗi: các page còn lại vẫn được
// unsubscribe nhưng tổng thể phải trả về lỗi
func TestFbRevokePartialFailure(t *testing.T) {
	graph := &fakeGraph{
		tokens:         map[string]string{},
		failForPageIds: map[string]bool{"pg1": true},
	}
	service := NewFbRevokeService(graph)

	integration := models.Integration{
		ErxesApiId:            "erxes-fb",
		FacebookPageIds:       []string{"pg1", "pg2"},
		FacebookPageTokensMap: map[string]string{"pg1": "tok1", "pg2": "tok2"},
	}

	err := service.Revoke(context.Background(), models.Account{}, integration)
	var customErr *common.Error
	if !errors.As(err, &customErr) || customErr.Code.Code != common.ErrCodeProviderUpstream.Code {
		t.Fatalf("Mong đợi lỗi provider upstream, nhận được %v", err)
	}

	// pg2 vẫn phải được unsubscribe dù pg1 lỗi
	if len(graph.unsubscribed) != 1 || graph.unsubscribed[0] != "pg2" {
		t.Errorf("Page không lỗi vẫn phải được unsubscribe: %+v", graph.unsubscribed)
	}
}
