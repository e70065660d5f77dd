package service

import (
	"context"
	"strings"
	"time"

	"ai-receptionist-be/internal/dto"
	"ai-receptionist-be/internal/pkg/logger"
	"ai-receptionist-be/pkg/events"
	"ai-receptionist-be/pkg/reception/ack"
	"ai-receptionist-be/pkg/reception/facts"
	"ai-receptionist-be/pkg/reception/intent"
	"ai-receptionist-be/pkg/reception/persona"
	"ai-receptionist-be/pkg/reception/relevance"
	"ai-receptionist-be/pkg/reception/responder"
	"ai-receptionist-be/pkg/reception/session"

	pktNats "ai-receptionist-be/pkg/nats"
)

// Agent tags reported in responses so the client knows which branch answered.
const (
	AgentGreeting            = "greeting"
	AgentAcknowledgment      = "acknowledgment"
	AgentRag                 = "rag"
	AgentOutOfScopeRelated   = "out_of_scope_related"
	AgentOutOfScopeUnrelated = "out_of_scope_unrelated"
	AgentLeadCapture         = "lead_capture"
)

const (
	leadCapturedAnswer = "Got it! Please click **Draft** when you're ready to send."

	outOfScopeRelatedAnswer = "I don't have specific information about that in my current knowledge base. " +
		"However, this is something our team can definitely help you with! " +
		"Please share your name and contact number, and click **Draft** to get in touch with someone who can assist."

	outOfScopeUnrelatedAnswer = "I can only answer questions related to our company's services and offerings. How else can I assist you?"
)

type IAssistantService interface {
	Ask(ctx context.Context, req *dto.AskRequest, clientIP string) (*dto.AskResponse, error)
	ListPersonas() []dto.PersonaDTO
}

type assistantService struct {
	sessions       *session.Manager
	factExtractor  *facts.Extractor
	intents        *intent.Classifier
	ackDetector    *ack.Detector
	relevance      *relevance.Classifier
	responder      *responder.Generator
	personas       *persona.Registry
	transformer    *persona.Transformer
	eventPublisher *pktNats.Publisher
	llmTimeout     time.Duration
	logger         logger.ILogger
}

func NewAssistantService(
	sessions *session.Manager,
	factExtractor *facts.Extractor,
	intents *intent.Classifier,
	ackDetector *ack.Detector,
	relevanceClassifier *relevance.Classifier,
	ragResponder *responder.Generator,
	personas *persona.Registry,
	transformer *persona.Transformer,
	eventPublisher *pktNats.Publisher,
	llmTimeout time.Duration,
	logger logger.ILogger,
) IAssistantService {
	if llmTimeout <= 0 {
		llmTimeout = 60 * time.Second
	}
	return &assistantService{
		sessions:       sessions,
		factExtractor:  factExtractor,
		intents:        intents,
		ackDetector:    ackDetector,
		relevance:      relevanceClassifier,
		responder:      ragResponder,
		personas:       personas,
		transformer:    transformer,
		eventPublisher: eventPublisher,
		llmTimeout:     llmTimeout,
		logger:         logger,
	}
}

func (s *assistantService) Ask(ctx context.Context, req *dto.AskRequest, clientIP string) (*dto.AskResponse, error) {
	userInput := strings.TrimSpace(req.Query)
	clientKey := req.SessionId
	if clientKey == "" {
		clientKey = clientIP
	}
	mode := req.PersonalityMode

	// Visitor facts first. A captured contact ends this turn immediately.
	extracted := s.extractFacts(ctx, userInput)
	if extracted.Name != "" {
		s.sessions.Update(clientKey, func(sess *session.Session) {
			sess.Name = extracted.Name
		})
	}
	if extracted.Contact != "" {
		sess := s.sessions.Update(clientKey, func(sess *session.Session) {
			sess.Contact = extracted.Contact
		})
		s.publishLeadCaptured(clientKey, sess.Name, extracted.Contact)
		s.logger.Info("assistant", "lead captured", map[string]interface{}{
			"client_key": clientKey,
		})
		return &dto.AskResponse{
			Answer:    leadCapturedAnswer,
			AgentType: AgentLeadCapture,
			WordCount: len(strings.Fields(leadCapturedAnswer)),
		}, nil
	}

	storedName := ""
	if sess, ok := s.sessions.Get(clientKey); ok {
		storedName = sess.Name
	}

	intentResult := s.classifyIntent(ctx, userInput, storedName)
	if intentResult.Intent == intent.GreetingOnly {
		answer := s.transform(ctx, intentResult.ResponseText, userInput, mode)
		return &dto.AskResponse{
			Answer:    answer,
			AgentType: AgentGreeting,
			WordCount: len(strings.Fields(intentResult.ResponseText)),
		}, nil
	}

	if s.isAcknowledgment(ctx, userInput) {
		answer := "Great! I'm here to help you. What would you like to know about Argano's services?"
		if storedName != "" {
			answer = "Great! I'm here to help you, " + storedName + ". What would you like to know about Argano's services?"
		}
		return &dto.AskResponse{
			Answer:    s.transform(ctx, answer, userInput, mode),
			AgentType: AgentAcknowledgment,
			WordCount: len(strings.Fields(answer)),
		}, nil
	}

	tier, topScore := s.classifyRelevance(ctx, userInput)
	switch tier {
	case relevance.TierHighlyRelevant:
		return s.answerFromCorpus(ctx, userInput, storedName, mode, topScore), nil

	case relevance.TierSomewhatRelevant:
		return &dto.AskResponse{
			Answer:    s.transform(ctx, outOfScopeRelatedAnswer, userInput, mode),
			AgentType: AgentOutOfScopeRelated,
			TopScore:  topScore,
			WordCount: len(strings.Fields(outOfScopeRelatedAnswer)),
		}, nil

	default:
		// Unrelated queries get the plain refusal, no persona styling.
		return &dto.AskResponse{
			Answer:    outOfScopeUnrelatedAnswer,
			AgentType: AgentOutOfScopeUnrelated,
			TopScore:  topScore,
			WordCount: len(strings.Fields(outOfScopeUnrelatedAnswer)),
		}, nil
	}
}

func (s *assistantService) answerFromCorpus(ctx context.Context, userInput, storedName, mode string, topScore *float64) *dto.AskResponse {
	callCtx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()

	res := s.responder.Respond(callCtx, userInput, storedName)

	usedChunks := make([]dto.UsedChunkDTO, 0, len(res.UsedChunks))
	for _, c := range res.UsedChunks {
		usedChunks = append(usedChunks, dto.UsedChunkDTO{
			ChunkID: c.ChunkID,
			Score:   c.Score,
			Source:  c.Source,
			Preview: c.Preview,
		})
	}

	resp := &dto.AskResponse{
		Answer:           s.transform(ctx, res.Answer, userInput, mode),
		AgentType:        AgentRag,
		Tokens:           res.Tokens,
		PromptTokens:     res.PromptTokens,
		CompletionTokens: res.CompletionTokens,
		UsedChunks:       usedChunks,
		TopScore:         topScore,
		WordCount:        len(strings.Fields(res.Answer)),
	}
	resp.LLMError = res.LLMError
	return resp
}

func (s *assistantService) ListPersonas() []dto.PersonaDTO {
	keys := s.personas.Keys()
	out := make([]dto.PersonaDTO, 0, len(keys)+1)
	out = append(out, dto.PersonaDTO{Key: persona.ModeNormal, Description: "No stylistic rewrite"})
	for _, key := range keys {
		p, _ := s.personas.Get(key)
		out = append(out, dto.PersonaDTO{Key: key, Description: p.Role})
	}
	return out
}

func (s *assistantService) extractFacts(ctx context.Context, userInput string) facts.Facts {
	callCtx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()
	return s.factExtractor.Extract(callCtx, userInput)
}

func (s *assistantService) classifyIntent(ctx context.Context, userInput, storedName string) *intent.Result {
	callCtx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()
	return s.intents.Classify(callCtx, userInput, storedName)
}

func (s *assistantService) isAcknowledgment(ctx context.Context, userInput string) bool {
	callCtx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()
	return s.ackDetector.IsAcknowledgment(callCtx, userInput)
}

func (s *assistantService) classifyRelevance(ctx context.Context, userInput string) (relevance.Tier, *float64) {
	callCtx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()
	return s.relevance.Classify(callCtx, userInput)
}

func (s *assistantService) transform(ctx context.Context, answer, userInput, mode string) string {
	callCtx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()
	return s.transformer.Transform(callCtx, answer, userInput, mode)
}

func (s *assistantService) publishLeadCaptured(clientKey, name, contact string) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.LeadCaptured(clientKey, name, contact)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("assistant", "lead event publish failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()
}
