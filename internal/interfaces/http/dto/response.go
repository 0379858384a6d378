package dto

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// TrendRequest represents the query parameters of a trend report request.
// Out-of-range days are not rejected; the service clamps them to the
// supported forecast horizon.
type TrendRequest struct {
	Location string `form:"location" binding:"omitempty,max=120,printable"`
	Days     int    `form:"days"`
	Refresh  bool   `form:"refresh"`
}
