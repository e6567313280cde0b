package dto

import (
	"encoding/json"
	"testing"
)

// TestCreateIntegrationRequestBinding kiểm tra body từ CRM dùng khóa
// integrationId (không phải erxesApiId)
func TestCreateIntegrationRequestBinding(t *testing.T) {
	body := []byte(`{"accountId":"acc-1","integrationId":"erxes-1","kind":"gmail"}`)

	var req CreateIntegrationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		t.Fatalf("Không mong đợi lỗi, nhận được %v", err)
	}
	if req.IntegrationId != "erxes-1" || req.AccountId != "acc-1" || req.Kind != "gmail" {
		t.Errorf("Body không bind đúng: %+v", req)
	}
}

// TestSendMessageRequestDataEnvelope kiểm tra nội dung thư nằm trong
// trường data dưới dạng chuỗi JSON, người nhận phân cách dấu phẩy
func TestSendMessageRequestDataEnvelope(t *testing.T) {
	body := []byte(`{"erxesApiId":"erxes-1","data":"{\"to\":\"a@x.com, b@y.com\",\"subject\":\"Chào\",\"body\":\"<p>nội dung</p>\",\"replyToMessageId\":\"msg-9\",\"attachments\":[\"file-1\"]}"}`)

	var req SendMessageRequest
	if err := json.Unmarshal(body, &req); err != nil {
		t.Fatalf("Không mong đợi lỗi, nhận được %v", err)
	}
	if req.ErxesApiId != "erxes-1" {
		t.Errorf("Mong đợi erxesApiId erxes-1, nhận được %s", req.ErxesApiId)
	}

	var params SendMessageParams
	if err := json.Unmarshal([]byte(req.Data), &params); err != nil {
		t.Fatalf("Trường data phải là chuỗi JSON hợp lệ, nhận được %v", err)
	}
	if params.To != "a@x.com, b@y.com" || params.Subject != "Chào" || params.ReplyToMessageId != "msg-9" {
		t.Errorf("Nội dung thư không parse đúng: %+v", params)
	}
	if len(params.Attachments) != 1 || params.Attachments[0] != "file-1" {
		t.Errorf("Attachments không parse đúng: %+v", params.Attachments)
	}
}
