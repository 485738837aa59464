package usecase

import (
	"strings"

	"creedava-api/domain/dto"
)

// chatAnswers maps keywords found in a visitor's message to canned replies.
// Longest keyword wins when several match.
var chatAnswers = map[string]string{
	"pricing":   "Our virtual assistant plans start at $400/month for 20 hours. Book a free consult and we'll match you with the right plan.",
	"price":     "Our virtual assistant plans start at $400/month for 20 hours. Book a free consult and we'll match you with the right plan.",
	"services":  "We provide executive assistance, inbox and calendar management, social media support, and bookkeeping.",
	"hours":     "Our assistants cover US business hours, with flexible scheduling available on request.",
	"contact":   "You can reach us through the contact form below, or email hello@creedava.com.",
	"linkedin":  "Follow our LinkedIn page for client stories and hiring updates. The latest posts are right on this site.",
	"hire":      "Great! Fill in the contact form and our team will reach out within one business day.",
	"book":      "You can book a free consultation through the contact form. We respond within one business day.",
	"thank":     "You're welcome! Anything else I can help with?",
}

const chatFallback = "I'm not sure about that one. Leave your details in the contact form and a team member will get back to you."

type IChatUsecase interface {
	// Reply answers a visitor message by keyword lookup.
	Reply(req dto.ChatRequest) dto.ChatResponse
}

type ChatUsecase struct{}

func NewChatUsecase() IChatUsecase { return &ChatUsecase{} }

func (u *ChatUsecase) Reply(req dto.ChatRequest) dto.ChatResponse {
	message := strings.ToLower(req.Message)

	best := ""
	for keyword := range chatAnswers {
		if strings.Contains(message, keyword) && len(keyword) > len(best) {
			best = keyword
		}
	}
	if best == "" {
		return dto.ChatResponse{Reply: chatFallback}
	}
	return dto.ChatResponse{Reply: chatAnswers[best], Matched: true}
}
