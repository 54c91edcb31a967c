package serializer

// Response is the envelope of every API reply.
type Response struct {
	Code          int         `json:"code"`
	Data          interface{} `json:"data,omitempty"`
	Msg           string      `json:"msg"`
	Error         string      `json:"error,omitempty"`
	CorrelationID string      `json:"correlation_id,omitempty"`
	Retryable     bool        `json:"retryable,omitempty"`
}

// CheckLogin is returned when no user is attached to the request.
func CheckLogin() Response {
	return NewResponseWithErrMsg(CodeCheckLogin, "Login required")
}

// NewResponseWithErrMsg builds an error response without a raw cause.
func NewResponseWithErrMsg(code int, msg string) Response {
	return Response{
		Code: code,
		Msg:  msg,
	}
}
