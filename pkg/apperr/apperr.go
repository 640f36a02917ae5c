package apperr

import "errors"

// Kind classifies an engine failure. The HTTP layer maps kinds to status
// codes; the engines themselves never deal in transport concepts.
type Kind string

const (
	KindActorNotFound    Kind = "actor_not_found"
	KindPermissionDenied Kind = "permission_denied"
	KindNotFound         Kind = "not_found"
	KindInvalidRequest   Kind = "invalid_request"
	KindConflict         Kind = "conflict"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// ActorNotFound reports that the acting user id did not resolve. The message
// is deliberately the same as a plain denial so callers cannot probe for
// which user ids exist.
func ActorNotFound() *Error {
	return &Error{Kind: KindActorNotFound, Message: "access denied"}
}

func PermissionDenied(message string) *Error {
	return &Error{Kind: KindPermissionDenied, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func InvalidRequest(message string) *Error {
	return &Error{Kind: KindInvalidRequest, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// KindOf returns the kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
