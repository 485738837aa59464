package dto

// Res is the response envelope used by the admin API endpoints.
type Res struct {
	ResponseCode    string      `json:"response_code"`
	ResponseMessage string      `json:"response_message"`
	Data            interface{} `json:"data,omitempty"`
}
