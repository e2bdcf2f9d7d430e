package services

import (
	"context"
	"fmt"
	"log"
)

type FeedbackService interface {
	GenerateFeedback(ctx context.Context, resume, jobDescription string) string
}

type feedbackService struct {
	chat          ChatCompletionService
	promptBuilder *PromptBuilder
}

func NewFeedbackService(chat ChatCompletionService) FeedbackService {
	return &feedbackService{
		chat:          chat,
		promptBuilder: NewPromptBuilder(),
	}
}

// GenerateFeedback issues exactly one completion request and returns the
// model text unmodified. Failures come back as a display string, never as an
// error, and nothing is cached between calls.
func (f *feedbackService) GenerateFeedback(ctx context.Context, resume, jobDescription string) string {
	prompt := f.promptBuilder.BuildFeedbackPrompt(resume, jobDescription)
	log.Printf("📝 Feedback prompt length: %d characters", len(prompt))

	response, err := f.chat.Complete(ctx, prompt)
	if err != nil {
		log.Printf("❌ Feedback generation failed: %v", err)
		return fmt.Sprintf("An error occurred: %v", err)
	}

	log.Printf("✅ Feedback received: %d characters", len(response))
	return response
}
