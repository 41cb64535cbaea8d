package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/hitalent/qanda/models"
	"github.com/hitalent/qanda/store"
	"github.com/hitalent/qanda/utils"
)

// ValidationError reports a rejected input field. It is always a client error
// and is never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// QAService validates input and orchestrates question/answer operations against
// the entity store. It is the only layer enforcing business rules; the store
// enforces storage mechanics.
type QAService struct {
	store store.Store
}

// NewQAService creates a QAService backed by the given store.
func NewQAService(s store.Store) *QAService {
	return &QAService{store: s}
}

// CreateQuestion trims and sanitizes the text and persists a new question.
func (s *QAService) CreateQuestion(ctx context.Context, text string) (*models.Question, error) {
	text, err := cleanText(text)
	if err != nil {
		return nil, err
	}
	q := &models.Question{Text: text}
	if err := s.store.CreateQuestion(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// GetQuestion returns one question without its answers.
func (s *QAService) GetQuestion(ctx context.Context, id uint) (*models.Question, error) {
	return s.store.GetQuestion(ctx, id)
}

// GetQuestionWithAnswers returns one question with its answers in id order.
func (s *QAService) GetQuestionWithAnswers(ctx context.Context, id uint) (*models.Question, error) {
	return s.store.GetQuestionWithAnswers(ctx, id)
}

// DeleteQuestion removes a question and, by cascade, all of its answers.
func (s *QAService) DeleteQuestion(ctx context.Context, id uint) error {
	return s.store.DeleteQuestion(ctx, id)
}

// ListQuestions returns a page of questions plus the total matching the filter.
func (s *QAService) ListQuestions(ctx context.Context, p store.QuestionListParams) ([]models.Question, int64, error) {
	if err := p.Normalize(); err != nil {
		return nil, 0, err
	}
	return s.store.ListQuestions(ctx, p)
}

// CreateAnswer validates the payload, verifies the question exists, and persists
// a new answer. The existence check goes through a store read so a missing
// question surfaces as ErrNotFound rather than a constraint failure.
func (s *QAService) CreateAnswer(ctx context.Context, questionID uint, userID, text string) (*models.Answer, error) {
	text, err := cleanText(text)
	if err != nil {
		return nil, err
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ValidationError{Field: "user_id", Reason: "must be a valid UUID"}
	}
	if _, err := s.store.GetQuestion(ctx, questionID); err != nil {
		return nil, err
	}
	a := &models.Answer{
		QuestionID: questionID,
		UserID:     uid.String(),
		Text:       text,
	}
	if err := s.store.CreateAnswer(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// GetAnswer returns one answer.
func (s *QAService) GetAnswer(ctx context.Context, id uint) (*models.Answer, error) {
	return s.store.GetAnswer(ctx, id)
}

// DeleteAnswer removes one answer only.
func (s *QAService) DeleteAnswer(ctx context.Context, id uint) error {
	return s.store.DeleteAnswer(ctx, id)
}

// ListAnswers returns a page of answers plus the total matching the filter.
func (s *QAService) ListAnswers(ctx context.Context, p store.AnswerListParams) ([]models.Answer, int64, error) {
	if err := p.Normalize(); err != nil {
		return nil, 0, err
	}
	return s.store.ListAnswers(ctx, p)
}

func cleanText(text string) (string, error) {
	text = utils.Sanitize(strings.TrimSpace(text))
	if text == "" {
		return "", &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	return text, nil
}
