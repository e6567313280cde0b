package nylassvc

import (
	"strings"

	nylasmodels "github.com/gopait/erxes-integrations/internal/api/nylas/models"
)

// BuildEmailAddress chuyển chuỗi địa chỉ phân cách bởi dấu phẩy
// ("user1@mail.com, user2@mail.com") thành danh sách participant.
// Các phần tử rỗng bị bỏ qua; trả về nil nếu không còn địa chỉ nào.
func BuildEmailAddress(emailStr string) []nylasmodels.EmailParticipant {
	var participants []nylasmodels.EmailParticipant

	for _, email := range strings.Split(emailStr, ",") {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}
		participants = append(participants, nylasmodels.EmailParticipant{Email: email})
	}

	return participants
}

// BuildReplySubject dựng subject cho thư trả lời: thêm tiền tố "Re: " nếu
// subject gốc chưa chứa "Re:" ở bất kỳ đâu - "Fwd: Re: x" cũng được giữ
// nguyên, không tạo chuỗi "Re: Re: ...".
func BuildReplySubject(subject string) string {
	if strings.Contains(subject, "Re:") {
		return subject
	}
	return "Re: " + subject
}
