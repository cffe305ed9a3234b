package utils

import "praxis-cashier-api/internal/constant"

// Response is the envelope of every JSON answer; ok is always present.
type Response struct {
	OK          bool   `json:"ok"`
	RedirectURL string `json:"redirect_url,omitempty"`
	Error       string `json:"error,omitempty"`
	Raw         any    `json:"raw,omitempty"`
	TraceID     string `json:"trace_id,omitempty"`
}

// Ack is the bare success acknowledgment.
func Ack() Response {
	return Response{OK: true}
}

// Redirect 成功响应
func Redirect(url string, raw any) Response {
	return Response{OK: true, RedirectURL: url, Raw: raw}
}

// Fail converts err into the HTTP status and body shown to the caller.
func Fail(err error) (int, Response) {
	if e, ok := constant.AsError(err); ok {
		return e.HTTPStatus(), Response{OK: false, Error: e.Message(), Raw: e.Raw()}
	}
	info, _ := constant.GetErrorInfo(constant.CodeInternalError)
	return info.HTTPStatus, Response{OK: false, Error: err.Error()}
}
