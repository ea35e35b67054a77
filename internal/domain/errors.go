package domain

import "errors"

// Категории ошибок прикладного слоя. Транспорт сопоставляет их со статусами ответа.
var (
	ErrInvalidInput = errors.New("invalid input") // некорректные входные данные
	ErrNotFound     = errors.New("not found")     // сущность не найдена
	ErrConflict     = errors.New("conflict")      // нарушение уникальности
	ErrUnauthorized = errors.New("unauthorized")  // нет или неверные учётные данные
	ErrForbidden    = errors.New("forbidden")     // действие запрещено
	ErrInternal     = errors.New("internal failure")
)

// Error: ошибка с категорией и сообщением для клиента.
// Cause хранит исходную причину (для логов), клиенту не отдаётся.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap: errors.Is/As видят и категорию, и причину.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func InvalidInput(msg string) error { return &Error{Kind: ErrInvalidInput, Message: msg} }
func NotFound(msg string) error     { return &Error{Kind: ErrNotFound, Message: msg} }
func Conflict(msg string) error     { return &Error{Kind: ErrConflict, Message: msg} }
func Unauthorized(msg string) error { return &Error{Kind: ErrUnauthorized, Message: msg} }
func Forbidden(msg string) error    { return &Error{Kind: ErrForbidden, Message: msg} }

// Internal: сбой хранилища/инфраструктуры с сохранением причины.
func Internal(msg string, cause error) error {
	return &Error{Kind: ErrInternal, Message: msg, Cause: cause}
}

// MessageOf: клиентское сообщение ошибки; для "чужих" ошибок возвращает fallback.
func MessageOf(err error, fallback string) string {
	var de *Error
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return fallback
}

// IsClientError: ошибка вызвана входными данными, повтор не поможет.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) || errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}
