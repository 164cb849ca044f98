// api/service/ai_service.go
package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sagelms/sage/api/audit"
	"github.com/sagelms/sage/api/authz"
	"github.com/sagelms/sage/api/dao"
	"github.com/sagelms/sage/api/errors"
	"github.com/sagelms/sage/api/llm"
	logger "github.com/sagelms/sage/api/logging"
	"github.com/sagelms/sage/api/model"
)

const (
	chatMaxTokens     = 1024
	quizMaxTokens     = 1024
	conceptsMaxTokens = 512
	feedbackMaxTokens = 1024

	defaultQuizQuestions = 5
	maxQuizQuestions     = 20

	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// CourseFacts supplies the enrollment/ownership facts and course material
// the gateway consumes. Facts are always fetched here, never by the gate.
type CourseFacts interface {
	IsEnrolled(ctx context.Context, userID, courseID string) (bool, error)
	PublishedLectures(ctx context.Context, courseID string) ([]model.Lecture, error)
	GetLectureDetail(ctx context.Context, lectureID string) (*dao.LectureDetail, error)
	GetSubmissionDetail(ctx context.Context, submissionID string) (*dao.SubmissionDetail, error)
}

// ChatHistoryStore persists assistant interactions.
type ChatHistoryStore interface {
	SaveInteraction(ctx context.Context, interaction *model.ChatInteraction) error
	GetHistory(ctx context.Context, userID string, limit, offset int) ([]model.ChatInteraction, error)
}

type IAIService interface {
	Chat(ctx context.Context, principal model.Principal, query, courseID string) (string, error)
	GenerateQuiz(ctx context.Context, principal model.Principal, lectureID string, numQuestions int) ([]model.QuizQuestion, error)
	ExtractConcepts(ctx context.Context, principal model.Principal, lectureID string) ([]string, error)
	GenerateFeedback(ctx context.Context, principal model.Principal, submissionID string) (string, error)
	ChatHistory(ctx context.Context, principal model.Principal, limit, offset int) ([]model.ChatInteraction, error)
}

// AIService orchestrates the assistant operations: authorization, bounded
// context assembly, the provider call, and interaction persistence.
type AIService struct {
	gate            *authz.Gate
	completer       llm.Completer
	courses         CourseFacts
	history         ChatHistoryStore
	auditSvc        audit.Service
	maxContextChars int
}

func NewAIService(gate *authz.Gate, completer llm.Completer, courses CourseFacts, history ChatHistoryStore, auditSvc audit.Service, maxContextChars int) *AIService {
	if maxContextChars <= 0 {
		maxContextChars = 12000
	}
	return &AIService{
		gate:            gate,
		completer:       completer,
		courses:         courses,
		history:         history,
		auditSvc:        auditSvc,
		maxContextChars: maxContextChars,
	}
}

// decide runs the gate, records the outcome, and converts a denial into a
// Forbidden error.
func (s *AIService) decide(ctx context.Context, principal model.Principal, action authz.Action, facts authz.ResourceFacts, resourceID string) error {
	decision := s.gate.Decide(principal, action, facts)
	s.auditSvc.Record(ctx, audit.Entry{
		UserID:        principal.UserID,
		Action:        audit.ActionAIDecision,
		Operation:     string(action),
		ResourceID:    resourceID,
		AccessGranted: decision.Allowed,
		Reason:        decision.Reason,
	})
	if !decision.Allowed {
		return errors.Forbidden(decision.Reason)
	}
	return nil
}

// Chat answers a free-form question, optionally grounded in the published
// material of a course the principal may access.
func (s *AIService) Chat(ctx context.Context, principal model.Principal, query, courseID string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", errors.ErrInvalidInput
	}

	var snippets []string
	if courseID != "" {
		enrolled, err := s.courses.IsEnrolled(ctx, principal.UserID, courseID)
		if err != nil {
			logger.Error("Failed to fetch enrollment fact", zap.Error(err), zap.String("courseID", courseID))
			return "", errors.ErrDatabaseOp
		}

		facts := authz.ResourceFacts{Enrolled: enrolled}
		if err := s.decide(ctx, principal, authz.ActionChatWithCourseContext, facts, courseID); err != nil {
			return "", err
		}

		lectures, err := s.courses.PublishedLectures(ctx, courseID)
		if err != nil {
			logger.Error("Failed to fetch course material", zap.Error(err), zap.String("courseID", courseID))
			return "", errors.ErrDatabaseOp
		}
		for _, lecture := range lectures {
			snippets = append(snippets, fmt.Sprintf("Lecture: %s\nDescription: %s", lecture.Title, lecture.Description))
		}
		snippets = boundContext(snippets, s.maxContextChars)
	}

	response, err := s.completer.Complete(ctx, llm.CompletionRequest{
		System:      llm.ChatPrompt(snippets),
		User:        query,
		MaxTokens:   chatMaxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	// The user-visible response is already computed; a failed history write
	// is logged, not surfaced. The write runs detached from request
	// cancellation so it is never left half-done.
	interaction := &model.ChatInteraction{
		ID:        uuid.NewString(),
		UserID:    principal.UserID,
		Query:     query,
		Response:  response,
		CreatedAt: time.Now(),
	}
	if err := s.history.SaveInteraction(context.WithoutCancel(ctx), interaction); err != nil {
		logger.Error("Failed to persist chat interaction", zap.Error(err), zap.String("userID", principal.UserID))
	}

	return response, nil
}

// GenerateQuiz produces multiple-choice questions from a lecture.
func (s *AIService) GenerateQuiz(ctx context.Context, principal model.Principal, lectureID string, numQuestions int) ([]model.QuizQuestion, error) {
	if strings.TrimSpace(lectureID) == "" {
		return nil, errors.ErrInvalidInput
	}
	if numQuestions <= 0 {
		numQuestions = defaultQuizQuestions
	}
	if numQuestions > maxQuizQuestions {
		numQuestions = maxQuizQuestions
	}

	detail, facts, err := s.lectureFacts(ctx, principal, lectureID)
	if err != nil {
		return nil, err
	}
	if err := s.decide(ctx, principal, authz.ActionGenerateQuiz, facts, lectureID); err != nil {
		return nil, err
	}

	response, err := s.completer.Complete(ctx, llm.CompletionRequest{
		System:       llm.QuizPrompt(numQuestions),
		User:         lectureContent(detail),
		MaxTokens:    quizMaxTokens,
		Temperature:  0.7,
		JSONResponse: true,
	})
	if err != nil {
		return nil, err
	}

	return llm.ParseQuizQuestions(response), nil
}

// ExtractConcepts lists the key concepts of a lecture.
func (s *AIService) ExtractConcepts(ctx context.Context, principal model.Principal, lectureID string) ([]string, error) {
	if strings.TrimSpace(lectureID) == "" {
		return nil, errors.ErrInvalidInput
	}

	detail, facts, err := s.lectureFacts(ctx, principal, lectureID)
	if err != nil {
		return nil, err
	}
	if err := s.decide(ctx, principal, authz.ActionExtractConcepts, facts, lectureID); err != nil {
		return nil, err
	}

	response, err := s.completer.Complete(ctx, llm.CompletionRequest{
		System:       llm.ConceptsPrompt(),
		User:         lectureContent(detail),
		MaxTokens:    conceptsMaxTokens,
		Temperature:  0.3,
		JSONResponse: true,
	})
	if err != nil {
		return nil, err
	}

	return llm.ParseConcepts(response), nil
}

// GenerateFeedback drafts feedback on an assignment submission for its
// course's teacher.
func (s *AIService) GenerateFeedback(ctx context.Context, principal model.Principal, submissionID string) (string, error) {
	if strings.TrimSpace(submissionID) == "" {
		return "", errors.ErrInvalidInput
	}

	detail, err := s.courses.GetSubmissionDetail(ctx, submissionID)
	if err != nil {
		if stderrors.Is(err, errors.ErrSubmissionNotFound) {
			return "", errors.ErrSubmissionNotFound
		}
		logger.Error("Failed to fetch submission", zap.Error(err), zap.String("submissionID", submissionID))
		return "", errors.ErrDatabaseOp
	}
	if strings.TrimSpace(detail.SubmissionText) == "" {
		return "", errors.ErrInvalidInput
	}

	facts := authz.ResourceFacts{OwnerID: detail.TeacherID}
	if err := s.decide(ctx, principal, authz.ActionGenerateFeedback, facts, submissionID); err != nil {
		return "", err
	}

	response, err := s.completer.Complete(ctx, llm.CompletionRequest{
		System:      llm.FeedbackPrompt(),
		User:        llm.FeedbackUserText(detail.AssignmentDescription, detail.SubmissionText),
		MaxTokens:   feedbackMaxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}
	return response, nil
}

// ChatHistory returns the principal's own interactions, newest first.
func (s *AIService) ChatHistory(ctx context.Context, principal model.Principal, limit, offset int) ([]model.ChatInteraction, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	history, err := s.history.GetHistory(ctx, principal.UserID, limit, offset)
	if err != nil {
		logger.Error("Failed to fetch chat history", zap.Error(err), zap.String("userID", principal.UserID))
		return nil, errors.ErrDatabaseOp
	}
	return history, nil
}

// lectureFacts loads a lecture with its ownership fact, plus the enrollment
// fact when the principal is a student.
func (s *AIService) lectureFacts(ctx context.Context, principal model.Principal, lectureID string) (*dao.LectureDetail, authz.ResourceFacts, error) {
	detail, err := s.courses.GetLectureDetail(ctx, lectureID)
	if err != nil {
		if stderrors.Is(err, errors.ErrLectureNotFound) {
			return nil, authz.ResourceFacts{}, errors.ErrLectureNotFound
		}
		logger.Error("Failed to fetch lecture", zap.Error(err), zap.String("lectureID", lectureID))
		return nil, authz.ResourceFacts{}, errors.ErrDatabaseOp
	}

	facts := authz.ResourceFacts{OwnerID: detail.TeacherID}
	if principal.Role == model.RoleStudent {
		enrolled, err := s.courses.IsEnrolled(ctx, principal.UserID, detail.CourseID)
		if err != nil {
			logger.Error("Failed to fetch enrollment fact", zap.Error(err), zap.String("courseID", detail.CourseID))
			return nil, authz.ResourceFacts{}, errors.ErrDatabaseOp
		}
		facts.Enrolled = enrolled
	}
	return detail, facts, nil
}

func lectureContent(detail *dao.LectureDetail) string {
	return fmt.Sprintf("Lecture Title: %s\nDescription: %s", detail.Title, detail.Description)
}

// boundContext keeps snippets, in order, while their combined size fits the
// provider input budget; the tail is dropped whole.
func boundContext(snippets []string, maxChars int) []string {
	total := 0
	for i, snippet := range snippets {
		total += len(snippet)
		if i > 0 {
			total += 2 // separator
		}
		if total > maxChars {
			return snippets[:i]
		}
	}
	return snippets
}
