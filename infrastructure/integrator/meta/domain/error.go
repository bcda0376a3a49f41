package metadomain

import "fmt"

// ErrorResponse is the error envelope returned by the Graph API.
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

type ErrorDetails struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode,omitempty"`
	FBTraceID    string `json:"fbtrace_id"`
}

// IsTokenExpired reports code 190 or an OAuthException with a session subcode.
func (e *ErrorResponse) IsTokenExpired() bool {
	return e.Error.Code == 190 ||
		(e.Error.Type == "OAuthException" && (e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467))
}

// IsRateLimited reports the throttling codes of the ads insights API.
func (e *ErrorResponse) IsRateLimited() bool {
	switch e.Error.Code {
	case 4, 17, 32, 613, 80000, 80004:
		return true
	}
	return false
}

func (e *ErrorResponse) String() string {
	return fmt.Sprintf("%s (code %d, type %s, trace %s)", e.Error.Message, e.Error.Code, e.Error.Type, e.Error.FBTraceID)
}
