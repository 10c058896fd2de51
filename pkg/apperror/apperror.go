package apperror

import (
	"errors"
	"net/http"
)

// Kind는 에러의 분류입니다
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindPrecondition
	KindAuthentication
	KindForbidden
	KindNotFound
	KindConflict
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindPrecondition:
		return "precondition"
	case KindAuthentication:
		return "authentication"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// StatusCode는 Kind에 대응하는 HTTP 상태 코드입니다
func (k Kind) StatusCode() int {
	switch k {
	case KindValidation, KindPrecondition:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error는 클라이언트에 그대로 노출 가능한 메시지를 가진 도메인 에러입니다
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is는 같은 Kind와 Message를 가진 에러를 동일하게 취급합니다
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error     { return New(KindValidation, message) }
func Precondition(message string) *Error   { return New(KindPrecondition, message) }
func Authentication(message string) *Error { return New(KindAuthentication, message) }
func Forbidden(message string) *Error      { return New(KindForbidden, message) }
func NotFound(message string) *Error       { return New(KindNotFound, message) }
func Conflict(message string) *Error       { return New(KindConflict, message) }

func Unavailable(message string, err error) *Error {
	return Wrap(KindUnavailable, message, err)
}

func Internal(err error) *Error {
	return Wrap(KindInternal, "Internal server error", err)
}

// KindOf는 에러 체인에서 첫 번째 도메인 에러의 Kind를 반환합니다
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind는 에러 체인에 해당 Kind의 도메인 에러가 있는지 확인합니다
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

func StatusCode(err error) int {
	return KindOf(err).StatusCode()
}

// PublicMessage는 응답 본문에 실을 메시지를 반환합니다. 5xx는 내부 정보를 숨깁니다
func PublicMessage(err error) string {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return "Internal server error"
	}
	if appErr.Kind == KindInternal {
		return "Internal server error"
	}
	return appErr.Message
}
