package dto

// LeadRequest is the public contact-form payload.
type LeadRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Message string `json:"message"`
	Source  string `json:"source"`
}

// LeadUpdateRequest carries the admin-editable lead fields; nil means unchanged.
type LeadUpdateRequest struct {
	Status  *string `json:"status,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `json:"company,omitempty"`
}

// LeadListRequest holds list filters from query parameters.
type LeadListRequest struct {
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}
