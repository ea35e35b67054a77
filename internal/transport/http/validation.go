package rest

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/Gunvolt24/rapid_express/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	msgInvalidBody = "Invalid request body"

	passwordMinLen = 6
	passwordMaxLen = 32
)

// validationError: ошибки полей тела запроса; для клиента это InvalidInput.
type validationError struct {
	problems []string
}

func (e *validationError) Error() string { return strings.Join(e.problems, ", ") }

func (e *validationError) Unwrap() error {
	return domain.InvalidInput(e.Error())
}

// checks: накопитель нарушений: проверяются все поля, а не первое упавшее.
type checks []string

func (c *checks) require(ok bool, msg string) {
	if !ok {
		*c = append(*c, msg)
	}
}

func (c checks) err() error {
	if len(c) == 0 {
		return nil
	}
	return &validationError{problems: c}
}

func notBlank(s string) bool { return strings.TrimSpace(s) != "" }

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == strings.TrimSpace(s)
}

func passwordLenOK(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= passwordMinLen && n <= passwordMaxLen
}

// bindJSON: тело запроса в dst; любая ошибка разбора: 400.
func (h *Handler) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.respondError(c, domain.InvalidInput(msgInvalidBody))
		return false
	}
	return true
}
