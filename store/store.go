package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/hitalent/qanda/models"
)

// Sentinel errors surfaced by Store implementations. Callers match them with
// errors.Is and decide the transport-level mapping themselves.
var (
	ErrNotFound        = errors.New("record not found")
	ErrConstraint      = errors.New("constraint violation")
	ErrInvalidArgument = errors.New("invalid argument")
)

const (
	// DefaultLimit is applied when a list request does not specify a window size.
	DefaultLimit = 20
	// MaxLimit caps the window size of a single list request.
	MaxLimit = 100
)

// SortKey names a sortable Question column.
type SortKey string

const (
	SortByID        SortKey = "id"
	SortByCreatedAt SortKey = "created_at"
)

// QuestionListParams describes a filtered, sorted, windowed read over questions.
// The zero value lists everything with the default window, sorted by id ascending.
type QuestionListParams struct {
	// Text filters by substring containment when non-empty.
	Text       string
	SortBy     SortKey
	Descending bool
	Limit      int
	Offset     int
}

// AnswerListParams describes a windowed read over answers, ordered by id
// ascending, optionally restricted to a single question.
type AnswerListParams struct {
	// QuestionID restricts the listing to one question when non-zero.
	QuestionID uint
	Limit      int
	Offset     int
}

// Normalize fills defaults and rejects out-of-range values. It must be called
// before the params reach a Store so that invalid input never produces a query.
func (p *QuestionListParams) Normalize() error {
	if p.SortBy == "" {
		p.SortBy = SortByID
	}
	if p.SortBy != SortByID && p.SortBy != SortByCreatedAt {
		return fmt.Errorf("%w: sort_by must be one of id, created_at", ErrInvalidArgument)
	}
	return normalizeWindow(&p.Limit, &p.Offset)
}

// Normalize fills defaults and rejects out-of-range values.
func (p *AnswerListParams) Normalize() error {
	return normalizeWindow(&p.Limit, &p.Offset)
}

func normalizeWindow(limit, offset *int) error {
	if *limit == 0 {
		*limit = DefaultLimit
	}
	if *limit < 1 || *limit > MaxLimit {
		return fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidArgument, MaxLimit)
	}
	if *offset < 0 {
		return fmt.Errorf("%w: offset must not be negative", ErrInvalidArgument)
	}
	return nil
}

// Store is the durable entity store for questions and answers. Implementations
// must make every mutation atomic with respect to concurrent calls; listing
// returns the page plus the total count of rows matching the filter alone.
type Store interface {
	CreateQuestion(ctx context.Context, q *models.Question) error
	GetQuestion(ctx context.Context, id uint) (*models.Question, error)
	// GetQuestionWithAnswers loads the question and its answers ordered by
	// answer id ascending.
	GetQuestionWithAnswers(ctx context.Context, id uint) (*models.Question, error)
	// DeleteQuestion removes the question and all its answers in one
	// transaction.
	DeleteQuestion(ctx context.Context, id uint) error
	ListQuestions(ctx context.Context, p QuestionListParams) ([]models.Question, int64, error)

	CreateAnswer(ctx context.Context, a *models.Answer) error
	GetAnswer(ctx context.Context, id uint) (*models.Answer, error)
	DeleteAnswer(ctx context.Context, id uint) error
	ListAnswers(ctx context.Context, p AnswerListParams) ([]models.Answer, int64, error)
}
