package nylassvc

import "testing"

// TestBuildEmailAddress kiểm tra tách chuỗi địa chỉ email phân cách dấu phẩy
func TestBuildEmailAddress(t *testing.T) {
	participants := BuildEmailAddress("a@x.com,b@x.com, c@y.com")
	if len(participants) != 3 {
		t.Fatalf("Mong đợi 3 participants, nhận được %d", len(participants))
	}
	if participants[0].Email != "a@x.com" || participants[1].Email != "b@x.com" || participants[2].Email != "c@y.com" {
		t.Errorf("Thứ tự địa chỉ không đúng: %+v", participants)
	}

	// Phần tử rỗng (dấu phẩy thừa) và khoảng trắng thừa bị bỏ qua
	participants = BuildEmailAddress(" a@x.com , ,")
	if len(participants) != 1 || participants[0].Email != "a@x.com" {
		t.Errorf("Mong đợi chỉ còn a@x.com, nhận được %+v", participants)
	}

	// Chuỗi rỗng thì trả về nil
	if participants := BuildEmailAddress(""); participants != nil {
		t.Errorf("Mong đợi nil, nhận được %+v", participants)
	}
}

// TestBuildReplySubject kiểm tra quy tắc tiền tố "Re: "
func TestBuildReplySubject(t *testing.T) {
	if got := BuildReplySubject("Hello"); got != "Re: Hello" {
		t.Errorf("Mong đợi 'Re: Hello', nhận được %q", got)
	}
	// Không được tạo chuỗi "Re: Re: ..."
	if got := BuildReplySubject("Re: Hello"); got != "Re: Hello" {
		t.Errorf("Mong đợi giữ nguyên 'Re: Hello', nhận được %q", got)
	}
	// "Re:" nằm giữa subject (thư forward của một thư trả lời) cũng giữ nguyên
	if got := BuildReplySubject("Fwd: Re: Hello"); got != "Fwd: Re: Hello" {
		t.Errorf("Mong đợi giữ nguyên 'Fwd: Re: Hello', nhận được %q", got)
	}
}
