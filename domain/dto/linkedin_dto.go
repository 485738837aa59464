package dto

import "creedava-api/domain/model"

// ConnectResponse carries the provider authorization URL the browser should follow.
type ConnectResponse struct {
	AuthURL string `json:"authUrl"`
}

// PostsResponse is returned by GET /linkedin-posts.
type PostsResponse struct {
	Posts  []model.LinkedInPost `json:"posts"`
	Cached bool                 `json:"cached"`
}

// ErrorResponse is the structured error body for the LinkedIn endpoints.
// Code is machine-readable; Description carries provider detail when present.
type ErrorResponse struct {
	Error       string `json:"error"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
}
