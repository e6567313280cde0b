package global

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// InitValidator khởi tạo validator toàn cục và đăng ký các custom validation.
func InitValidator() {
	Validate = validator.New()

	// provider_kind: kind phải thuộc tập đóng các kind được hỗ trợ.
	// Kind composite dạng "<transport>-<provider>" (ví dụ "nylas-gmail")
	// được chấp nhận khi transport là "nylas".
	_ = Validate.RegisterValidation("provider_kind", func(fl validator.FieldLevel) bool {
		kind := fl.Field().String()
		switch kind {
		case "facebook", "gmail", "callpro":
			return true
		}
		if transport, _, found := strings.Cut(kind, "-"); found && transport == "nylas" {
			return true
		}
		return false
	})
}
