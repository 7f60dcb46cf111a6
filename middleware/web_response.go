package middleware

//Opaque client-facing rejection codes. The HTTP status carries the error
//class; the code itself must not reveal which gate was failed.
const (
	ErrOriginMissing    = "XJ4Q8A12"
	ErrOriginDenied     = "FOB-002"
	ErrMethodNotAllowed = "M7DL-403"
	ErrRateLimited      = "RAT-LMT9"
	ErrInvalidJSON      = "J5N-ERR9"
	ErrInvalidData      = "DTX-22B3"
	ErrStorageError     = "STR-505E"
	ErrIPMissing        = "IP-403"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func ErrResponse(code string) ErrorResponse {
	return ErrorResponse{Error: "Forbidden", Code: code}
}
