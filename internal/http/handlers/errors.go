package handlers

// Stable error codes carried in ErrorResponse.Code. Clients branch on these,
// not on message text. Generic codes mirror HTTP status semantics; the rest
// name the operation that failed when the status alone is not enough.
const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	ErrCodeSendFailed       = "send_failed"
	ErrCodeMarkReadFailed   = "mark_read_failed"
	ErrCodeListFailed       = "list_failed"
	ErrCodeDeleteFailed     = "delete_failed"
	ErrCodeUpdateFailed     = "update_failed"
	ErrCodeRegisterFailed   = "register_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
