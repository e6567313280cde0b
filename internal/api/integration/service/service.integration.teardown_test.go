package integrationsvc

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/gopait/erxes-integrations/internal/api/integration/models"
	"github.com/gopait/erxes-integrations/internal/api/provider"
	"github.com/gopait/erxes-integrations/internal/common"
)

// ====================================
// FAKES
// ====================================

// fakeMirror là MirrorCollection in-memory, hỗ trợ các filter engine dùng:
// khớp bằng theo field và $in
type fakeMirror struct {
	docs []bson.M
}

func matchesFilter(doc bson.M, filter bson.M) bool {
	for key, want := range filter {
		if inner, ok := want.(bson.M); ok {
			in, ok := inner["$in"]
			if !ok {
				return false
			}
			values, ok := in.([]interface{})
			if !ok {
				return false
			}
			found := false
			for _, v := range values {
				if doc[key] == v {
					found = true
					break
				}
			}
			if !found {
				return false
			}
			continue
		}
		if doc[key] != want {
			return false
		}
	}
	return true
}

func (m *fakeMirror) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	f := filter.(bson.M)
	var kept []bson.M
	var deleted int64
	for _, doc := range m.docs {
		if matchesFilter(doc, f) {
			deleted++
			continue
		}
		kept = append(kept, doc)
	}
	m.docs = kept
	return deleted, nil
}

func (m *fakeMirror) Distinct(ctx context.Context, fieldName string, filter interface{}) ([]interface{}, error) {
	f := filter.(bson.M)
	seen := map[interface{}]bool{}
	var values []interface{}
	for _, doc := range m.docs {
		if !matchesFilter(doc, f) {
			continue
		}
		value, ok := doc[fieldName]
		if !ok || seen[value] {
			continue
		}
		seen[value] = true
		values = append(values, value)
	}
	return values, nil
}

// fakeIntegrationStore lưu integrations trong memory
type fakeIntegrationStore struct {
	integrations []models.Integration
	deleted      []string
}

func (s *fakeIntegrationStore) FindByIdentifier(ctx context.Context, identifier string) (models.Integration, error) {
	for _, integration := range s.integrations {
		if integration.ErxesApiId == identifier || integration.AccountId == identifier {
			return integration, nil
		}
	}
	return models.Integration{}, common.ErrNotFound
}

func (s *fakeIntegrationStore) DeleteOne(ctx context.Context, filter interface{}) error {
	erxesApiId := filter.(bson.M)["erxesApiId"].(string)
	for i, integration := range s.integrations {
		if integration.ErxesApiId == erxesApiId {
			s.integrations = append(s.integrations[:i], s.integrations[i+1:]...)
			s.deleted = append(s.deleted, erxesApiId)
			return nil
		}
	}
	return common.ErrNotFound
}

// fakeAccountStore lưu accounts theo ID
type fakeAccountStore struct {
	accounts map[string]models.Account
}

func (s *fakeAccountStore) FindByIdHex(ctx context.Context, idHex string) (models.Account, error) {
	account, ok := s.accounts[idHex]
	if !ok {
		return models.Account{}, common.ErrNotFound
	}
	return account, nil
}

// fakeRevoker ghi lại các lần được gọi và trả về lỗi cấu hình sẵn
type fakeRevoker struct {
	calls []string
	err   error
}

func (r *fakeRevoker) revoke(ctx context.Context, account models.Account, integration models.Integration) error {
	r.calls = append(r.calls, integration.ErxesApiId)
	return r.err
}

// ====================================
// HELPERS
// ====================================

type teardownFixture struct {
	integrations *fakeIntegrationStore
	accounts     *fakeAccountStore
	service      *TeardownService

	fbMirrors      map[string]*fakeMirror
	gmailMirrors   map[string]*fakeMirror
	nylasMirrors   map[string]*fakeMirror
	callproMirrors map[string]*fakeMirror

	fbRevoke    *fakeRevoker
	gmailRevoke *fakeRevoker
	nylasRevoke *fakeRevoker
}

func newTeardownFixture() *teardownFixture {
	f := &teardownFixture{
		integrations: &fakeIntegrationStore{},
		accounts:     &fakeAccountStore{accounts: map[string]models.Account{}},
		fbRevoke:     &fakeRevoker{},
		gmailRevoke:  &fakeRevoker{},
		nylasRevoke:  &fakeRevoker{},
	}

	newMirrorSet := func(withPosts bool) (map[string]*fakeMirror, provider.MirrorSet) {
		mirrors := map[string]*fakeMirror{
			"customers":     {},
			"conversations": {},
			"messages":      {},
		}
		set := provider.MirrorSet{
			Customers:     mirrors["customers"],
			Conversations: mirrors["conversations"],
			Messages:      mirrors["messages"],
		}
		if withPosts {
			mirrors["posts"] = &fakeMirror{}
			mirrors["comments"] = &fakeMirror{}
			set.Posts = mirrors["posts"]
			set.Comments = mirrors["comments"]
		}
		return mirrors, set
	}

	registry := provider.NewRegistry()

	var fbSet, gmailSet, nylasSet, callproSet provider.MirrorSet
	f.fbMirrors, fbSet = newMirrorSet(true)
	f.gmailMirrors, gmailSet = newMirrorSet(false)
	f.nylasMirrors, nylasSet = newMirrorSet(false)
	f.callproMirrors, callproSet = newMirrorSet(false)

	registry.Register(&provider.Adapter{Family: provider.FamilyFacebook, Mirrors: fbSet, Revoke: f.fbRevoke.revoke})
	registry.Register(&provider.Adapter{Family: provider.FamilyGmail, Mirrors: gmailSet, Revoke: f.gmailRevoke.revoke})
	registry.Register(&provider.Adapter{Family: provider.FamilyNylas, Mirrors: nylasSet, Revoke: f.nylasRevoke.revoke})
	registry.Register(&provider.Adapter{Family: provider.FamilyCallPro, Mirrors: callproSet})

	f.service = NewTeardownService(f.integrations, f.accounts, registry)
	return f
}

func totalDocs(mirrors map[string]*fakeMirror) int {
	total := 0
	for _, m := range mirrors {
		total += len(m.docs)
	}
	return total
}

// ====================================
// TESTS
// ====================================

// TestRemoveIntegrationByErxesApiId kiểm tra gỡ integration theo erxesApiId:
// chỉ dữ liệu của integration đó bị xóa, dữ liệu integration khác giữ nguyên
func TestRemoveIntegrationByErxesApiId(t *testing.T) {
	f := newTeardownFixture()
	f.integrations.integrations = []models.Integration{
		{Kind: "callpro", ErxesApiId: "erxes-1", AccountId: "acc-1"},
		{Kind: "callpro", ErxesApiId: "erxes-2", AccountId: "acc-2"},
	}
	f.accounts.accounts["acc-1"] = models.Account{Kind: "callpro"}

	f.callproMirrors["customers"].docs = []bson.M{
		{"integrationId": "erxes-1", "phoneNumber": "999"},
		{"integrationId": "erxes-2", "phoneNumber": "888"},
	}
	f.callproMirrors["conversations"].docs = []bson.M{
		{"_id": "c1", "integrationId": "erxes-1"},
		{"_id": "c2", "integrationId": "erxes-1"},
		{"_id": "c3", "integrationId": "erxes-2"},
	}
	f.callproMirrors["messages"].docs = []bson.M{
		{"conversationId": "c1"},
		{"conversationId": "c2"},
		{"conversationId": "c2"},
		{"conversationId": "c3"},
	}

	summary, err := f.service.RemoveIntegration(context.Background(), "erxes-1")
	if err != nil {
		t.Fatalf("Không mong đợi lỗi, nhận được %v", err)
	}

	if summary.Customers != 1 || summary.Conversations != 2 || summary.Messages != 3 {
		t.Errorf("Số bản ghi đã xóa không đúng: %+v", summary)
	}
	if summary.Integrations != 1 {
		t.Errorf("Mong đợi 1 bản ghi integration đã xóa, nhận được %d", summary.Integrations)
	}
	if len(f.callproMirrors["messages"].docs) != 1 {
		t.Errorf("Mong đợi còn 1 message của integration khác, còn %d", len(f.callproMirrors["messages"].docs))
	}
	if len(f.integrations.integrations) != 1 || f.integrations.integrations[0].ErxesApiId != "erxes-2" {
		t.Error("Bản ghi integration erxes-1 phải bị xóa, erxes-2 phải còn")
	}

	// Chạy lại với cùng identifier phải trả về ErrNotFound
	if _, err := f.service.RemoveIntegration(context.Background(), "erxes-1"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Gỡ lần hai: mong đợi ErrNotFound, nhận được %v", err)
	}
}

// TestRemoveIntegrationByAccountId kiểm tra identifier cũng khớp được accountId
func TestRemoveIntegrationByAccountId(t *testing.T) {
	f := newTeardownFixture()
	f.integrations.integrations = []models.Integration{
		{Kind: "callpro", ErxesApiId: "erxes-1", AccountId: "acc-1"},
	}
	f.accounts.accounts["acc-1"] = models.Account{Kind: "callpro"}

	summary, err := f.service.RemoveIntegration(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("Không mong đợi lỗi, nhận được %v", err)
	}
	if summary.ErxesApiId != "erxes-1" {
		t.Errorf("Mong đợi gỡ erxes-1, nhận được %s", summary.ErxesApiId)
	}
}

// TestRemoveIntegrationNotFound kiểm tra identifier không tồn tại:
// trả về ErrNotFound và không có side effect nào
func TestRemoveIntegrationNotFound(t *testing.T) {
	f := newTeardownFixture()
	f.callproMirrors["customers"].docs = []bson.M{{"integrationId": "erxes-1"}}

	_, err := f.service.RemoveIntegration(context.Background(), "unknown")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("Mong đợi ErrNotFound, nhận được %v", err)
	}
	if totalDocs(f.callproMirrors) != 1 {
		t.Error("Không được xóa dữ liệu nào khi integration không tồn tại")
	}
	if len(f.fbRevoke.calls)+len(f.gmailRevoke.calls)+len(f.nylasRevoke.calls) != 0 {
		t.Error("Không được gọi revoke nào khi integration không tồn tại")
	}
}

// TestRemoveIntegrationFacebook kiểm tra họ facebook: posts/comments bị xóa
// theo từng page, messages xóa theo snapshot conversation IDs
func TestRemoveIntegrationFacebook(t *testing.T) {
	f := newTeardownFixture()
	f.integrations.integrations = []models.Integration{
		{
			Kind:            "facebook",
			ErxesApiId:      "erxes-fb",
			AccountId:       "acc-fb",
			FacebookPageIds: []string{"pg1", "pg2"},
		},
	}
	f.accounts.accounts["acc-fb"] = models.Account{Kind: "facebook", Token: "user-token"}

	f.fbMirrors["posts"].docs = []bson.M{
		{"recipientId": "pg1"},
		{"recipientId": "pg2"},
		{"recipientId": "pg-other"},
	}
	f.fbMirrors["comments"].docs = []bson.M{
		{"recipientId": "pg1"},
		{"recipientId": "pg1"},
	}
	f.fbMirrors["conversations"].docs = []bson.M{
		{"_id": "c1", "integrationId": "erxes-fb"},
	}
	f.fbMirrors["messages"].docs = []bson.M{
		{"conversationId": "c1"},
		{"conversationId": "c-other"},
	}

	summary, err := f.service.RemoveIntegration(context.Background(), "erxes-fb")
	if err != nil {
		t.Fatalf("Không mong đợi lỗi, nhận được %v", err)
	}

	if len(f.fbRevoke.calls) != 1 {
		t.Errorf("Mong đợi revoke được gọi 1 lần, nhận được %d", len(f.fbRevoke.calls))
	}
	if summary.Posts != 2 || summary.Comments != 2 {
		t.Errorf("Posts/Comments đã xóa không đúng: %+v", summary)
	}
	if summary.Messages != 1 {
		t.Errorf("Messages phải xóa theo snapshot conversation, nhận được %d", summary.Messages)
	}
	if len(f.fbMirrors["posts"].docs) != 1 {
		t.Error("Post của page không thuộc integration phải được giữ nguyên")
	}
}

// TestRemoveIntegrationRevokeFailure kiểm tra thu hồi thất bại:
// không được xóa bất kỳ dữ liệu local nào
func TestRemoveIntegrationRevokeFailure(t *testing.T) {
	f := newTeardownFixture()
	f.fbRevoke.err = common.ErrUpstreamProvider
	f.integrations.integrations = []models.Integration{
		{Kind: "facebook", ErxesApiId: "erxes-fb", AccountId: "acc-fb", FacebookPageIds: []string{"pg1"}},
	}
	f.accounts.accounts["acc-fb"] = models.Account{Kind: "facebook"}
	f.fbMirrors["posts"].docs = []bson.M{{"recipientId": "pg1"}}
	f.fbMirrors["customers"].docs = []bson.M{{"integrationId": "erxes-fb"}}

	_, err := f.service.RemoveIntegration(context.Background(), "erxes-fb")
	if !errors.Is(err, common.ErrUpstreamProvider) {
		t.Fatalf("Mong đợi ErrUpstreamProvider, nhận được %v", err)
	}

	if totalDocs(f.fbMirrors) != 2 {
		t.Error("Dữ liệu local phải được giữ nguyên khi revoke thất bại")
	}
	if len(f.integrations.integrations) != 1 {
		t.Error("Bản ghi integration phải được giữ nguyên khi revoke thất bại")
	}
}

// TestRemoveIntegrationGmailHostedAuth kiểm tra gmail đã connect qua Nylas:
// dùng adapter nylas (revoke nylas + mirror nylas), không đụng mirror gmail
func TestRemoveIntegrationGmailHostedAuth(t *testing.T) {
	f := newTeardownFixture()
	f.integrations.integrations = []models.Integration{
		{Kind: "gmail", ErxesApiId: "erxes-g", AccountId: "acc-g", NylasToken: "nylas-token"},
	}
	f.accounts.accounts["acc-g"] = models.Account{Kind: "gmail", NylasAccountId: "nylas-acc"}

	f.nylasMirrors["customers"].docs = []bson.M{{"integrationId": "erxes-g"}}
	f.gmailMirrors["customers"].docs = []bson.M{{"integrationId": "erxes-g"}}

	summary, err := f.service.RemoveIntegration(context.Background(), "erxes-g")
	if err != nil {
		t.Fatalf("Không mong đợi lỗi, nhận được %v", err)
	}

	if len(f.nylasRevoke.calls) != 1 || len(f.gmailRevoke.calls) != 0 {
		t.Error("Gmail hosted-auth phải dùng bước thu hồi của nylas")
	}
	if summary.Customers != 1 {
		t.Errorf("Mong đợi xóa 1 customer nylas, nhận được %d", summary.Customers)
	}
	if len(f.gmailMirrors["customers"].docs) != 1 {
		t.Error("Mirror gmail native không được đụng đến")
	}
}

// TestRemoveIntegrationMissingAccount kiểm tra account đã bị xóa trước:
// phải trả về ErrNotFound và KHÔNG đụng đến dữ liệu local nào - thiếu
// credentials thì không thu hồi được phía provider, xóa local lúc này sẽ
// để lại webhook mồ côi upstream
func TestRemoveIntegrationMissingAccount(t *testing.T) {
	f := newTeardownFixture()
	f.integrations.integrations = []models.Integration{
		{Kind: "gmail", ErxesApiId: "erxes-g", AccountId: "acc-gone"},
	}
	f.gmailMirrors["customers"].docs = []bson.M{{"integrationId": "erxes-g"}}

	_, err := f.service.RemoveIntegration(context.Background(), "erxes-g")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("Mong đợi ErrNotFound, nhận được %v", err)
	}
	if len(f.gmailRevoke.calls) != 0 {
		t.Error("Không được gọi revoke khi account không còn")
	}
	if totalDocs(f.gmailMirrors) != 1 {
		t.Error("Dữ liệu mirror phải được giữ nguyên khi account không còn")
	}
	if len(f.integrations.integrations) != 1 {
		t.Error("Bản ghi integration phải được giữ nguyên khi account không còn")
	}
}

// TestRemoveIntegrationEmptyAccountId kiểm tra integration không có accountId:
// cũng là dữ liệu hỏng, trả về ErrNotFound trước mọi bước xóa
func TestRemoveIntegrationEmptyAccountId(t *testing.T) {
	f := newTeardownFixture()
	f.integrations.integrations = []models.Integration{
		{Kind: "callpro", ErxesApiId: "erxes-1"},
	}
	f.callproMirrors["customers"].docs = []bson.M{{"integrationId": "erxes-1"}}

	_, err := f.service.RemoveIntegration(context.Background(), "erxes-1")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("Mong đợi ErrNotFound, nhận được %v", err)
	}
	if totalDocs(f.callproMirrors) != 1 {
		t.Error("Dữ liệu mirror phải được giữ nguyên khi integration thiếu accountId")
	}
}
