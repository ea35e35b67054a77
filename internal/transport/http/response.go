package rest

import (
	"errors"
	"net/http"

	"github.com/Gunvolt24/rapid_express/internal/domain"
	"github.com/gin-gonic/gin"
)

// envelope: единый формат ответа: errors и meta опускаются, если пусты.
type envelope struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Data    any      `json:"data"`
	Errors  []string `json:"errors,omitempty"`
	Meta    any      `json:"meta,omitempty"`
}

func respond(c *gin.Context, status int, msg string, data, meta any) {
	c.JSON(status, envelope{Status: status, Message: msg, Data: data, Meta: meta})
}

func respondOK(c *gin.Context, msg string, data any) {
	respond(c, http.StatusOK, msg, data, nil)
}

func respondCreated(c *gin.Context, msg string, data any) {
	respond(c, http.StatusCreated, msg, data, nil)
}

// statusOf: категория ошибки → HTTP-статус.
func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError: ответ с ошибкой и прерывание цепочки.
// Причина внутренней ошибки пишется в лог, клиент видит только сообщение.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusOf(err)
	body := envelope{Status: status, Message: domain.MessageOf(err, http.StatusText(status))}

	var ve *validationError
	if errors.As(err, &ve) {
		body.Errors = ve.problems
	}
	if status == http.StatusInternalServerError {
		h.log.Errorf(c.Request.Context(), "request failed method=%s path=%s err=%v",
			c.Request.Method, c.FullPath(), err)
		if domain.MessageOf(err, "") == "" {
			body.Message = "Internal server error"
		}
	}
	c.AbortWithStatusJSON(status, body)
}
