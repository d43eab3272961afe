package errors

// Fixed messages carried by every error body. Clients match on the numeric
// code; the message never includes internal detail.
const (
	MsgBadRequest       = "Bad Request"
	MsgNotFound         = "resource not found"
	MsgMethodNotAllowed = "method not allowed"
	MsgUnprocessable    = "unprocessable"
	MsgInternalError    = "Internal Server Error"
	MsgUpstreamError    = "upstream error"
)

// messages maps the statuses the API emits to their fixed message.
var messages = map[int]string{
	400: MsgBadRequest,
	404: MsgNotFound,
	405: MsgMethodNotAllowed,
	422: MsgUnprocessable,
	500: MsgInternalError,
	502: MsgUpstreamError,
}

// Message returns the fixed message for status, falling back to the
// internal error message for statuses the API does not define.
func Message(status int) string {
	if msg, ok := messages[status]; ok {
		return msg
	}
	return MsgInternalError
}
