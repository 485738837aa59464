package dto

// ChatRequest is a visitor message to the website chatbot.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse is the keyword-matched reply.
type ChatResponse struct {
	Reply   string `json:"reply"`
	Matched bool   `json:"matched"`
}
