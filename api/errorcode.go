package api

var (
	errorMessageMap = map[int64]string{
		999:  "internal server error",
		1001: "invalid authorization format",
		1003: "invalid token",

		1010: "invalid parameters",
		1011: "cannot parse request",

		1100: "this account has been registered or has been taken",
		1101: "account not found",

		1200: "analysis service error",
		1201: "chat is busy with another submission",
		1202: "doctor lookup error",
	}

	errorInternalServer             = errorJSON(999)
	errorInvalidAuthorizationFormat = errorJSON(1001)
	errorInvalidToken               = errorJSON(1003)

	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)

	errorAccountTaken    = errorJSON(1100)
	errorAccountNotFound = errorJSON(1101)

	errorAnalysisService = errorJSON(1200)
	errorChatBusy        = errorJSON(1201)
	errorDoctorLookup    = errorJSON(1202)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}
