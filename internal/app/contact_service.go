package app

import (
	"context"
	"fmt"
	"strings"

	"userhub/internal/model"
)

// ContactPublisher queues a submission for the persist worker.
type ContactPublisher interface {
	Publish(ctx context.Context, submission model.ContactSubmission) error
}

type ContactService struct {
	publisher ContactPublisher
}

type ContactInput struct {
	Email   string
	Subject string
	Message string
}

func NewContactService(publisher ContactPublisher) *ContactService {
	return &ContactService{publisher: publisher}
}

// Submit accepts a validated contact form and queues it for persistence.
// The returned snapshot is what the client gets back; the row is written
// asynchronously by the worker.
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (*model.ContactSubmission, error) {
	submission := model.ContactSubmission{
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
	}

	if err := s.publisher.Publish(ctx, submission); err != nil {
		return nil, fmt.Errorf("queue contact submission failed: %w", err)
	}
	return &submission, nil
}
