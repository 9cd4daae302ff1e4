package utils

import "iso-settlement-api/internal/constant"

// Response is the envelope returned by every handler.
type Response struct {
	Code    int         `json:"code"`
	Msg     string      `json:"msg"`
	MsgPT   string      `json:"msg_pt,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
}

func Success(data interface{}) Response {
	return Response{
		Code:  constant.CodeSuccess,
		Msg:   "Success",
		MsgPT: "Sucesso",
		Data:  data,
	}
}

func Error(code int) Response {
	if info, exists := constant.GetErrorInfo(code); exists {
		return Response{
			Code:  code,
			Msg:   info.EN,
			MsgPT: info.PT,
		}
	}
	return Response{
		Code: code,
		Msg:  "Unknown error",
	}
}

func ErrorWithData(code int, data interface{}) Response {
	r := Error(code)
	r.Data = data
	return r
}

// CustomError is for one-off messages with no table entry.
func CustomError(code int, message string) Response {
	return Response{
		Code: code,
		Msg:  message,
	}
}
