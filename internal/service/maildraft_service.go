package service

import (
	"context"
	"strings"
	"time"

	"ai-receptionist-be/internal/dto"
	"ai-receptionist-be/internal/pkg/logger"
	"ai-receptionist-be/internal/pkg/mailer"
	"ai-receptionist-be/pkg/maildraft"
)

type IMailDraftService interface {
	DraftEmail(ctx context.Context, req *dto.DraftRequest) (*dto.DraftResponse, error)
}

type mailDraftService struct {
	pipeline     *maildraft.Pipeline
	emailService mailer.IEmailService
	llmTimeout   time.Duration
	logger       logger.ILogger
}

func NewMailDraftService(
	pipeline *maildraft.Pipeline,
	emailService mailer.IEmailService,
	llmTimeout time.Duration,
	logger logger.ILogger,
) IMailDraftService {
	if llmTimeout <= 0 {
		llmTimeout = 60 * time.Second
	}
	return &mailDraftService{
		pipeline:     pipeline,
		emailService: emailService,
		llmTimeout:   llmTimeout,
		logger:       logger,
	}
}

func (s *mailDraftService) DraftEmail(ctx context.Context, req *dto.DraftRequest) (*dto.DraftResponse, error) {
	conversation := strings.Join(req.Messages, "\n")

	callCtx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()

	draft, err := s.pipeline.Run(callCtx, conversation, req.UserName, req.UserContact)
	if err != nil {
		// Only summarization is fatal here; the pipeline swallowed
		// everything else already.
		s.logger.Error("maildraft", "draft pipeline failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	sent := false
	if req.Send && s.emailService != nil {
		if err := s.emailService.SendDraft(draft.Recipients, draft.Subject, draft.Body); err != nil {
			s.logger.Warn("maildraft", "draft delivery failed", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			sent = true
		}
	}

	return &dto.DraftResponse{
		Email:      draft.Body,
		Summary:    draft.Summary,
		Recipients: draft.Recipients,
		Topics:     draft.Topics,
		Subject:    draft.Subject,
		Body:       draft.Body,
		Sent:       sent,
	}, nil
}
