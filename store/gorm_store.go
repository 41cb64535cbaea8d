package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hitalent/qanda/models"
)

// GormStore implements Store on top of a gorm connection.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a GormStore instance.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ Store = (*GormStore)(nil)

// CreateQuestion persists a new question; id and created_at are assigned by the
// database.
func (s *GormStore) CreateQuestion(ctx context.Context, q *models.Question) error {
	return translate(s.db.WithContext(ctx).Create(q).Error)
}

// GetQuestion returns a single question without its answers.
func (s *GormStore) GetQuestion(ctx context.Context, id uint) (*models.Question, error) {
	var q models.Question
	if err := s.db.WithContext(ctx).First(&q, id).Error; err != nil {
		return nil, translate(err)
	}
	return &q, nil
}

// GetQuestionWithAnswers returns the question with answers preloaded in id order.
func (s *GormStore) GetQuestionWithAnswers(ctx context.Context, id uint) (*models.Question, error) {
	var q models.Question
	err := s.db.WithContext(ctx).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.id ASC")
		}).
		First(&q, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &q, nil
}

// DeleteQuestion removes the question and its answers in a single transaction,
// so a concurrent reader never observes the question gone with answers left.
func (s *GormStore) DeleteQuestion(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
			return translate(err)
		}
		res := tx.Delete(&models.Question{}, id)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ListQuestions returns one page of questions plus the total count matching the
// filter alone. Equal sort keys are tie-broken by id ascending so repeated calls
// paginate stably.
func (s *GormStore) ListQuestions(ctx context.Context, p QuestionListParams) ([]models.Question, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Question{})
	if p.Text != "" {
		query = query.Where("text LIKE ?", "%"+p.Text+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	order := string(p.SortBy)
	if p.Descending {
		order += " DESC"
	} else {
		order += " ASC"
	}
	if p.SortBy != SortByID {
		order += ", id ASC"
	}

	questions := []models.Question{}
	if err := query.Order(order).Limit(p.Limit).Offset(p.Offset).Find(&questions).Error; err != nil {
		return nil, 0, translate(err)
	}
	return questions, total, nil
}

// CreateAnswer persists a new answer. A dangling question_id surfaces as
// ErrConstraint when the schema enforces the foreign key.
func (s *GormStore) CreateAnswer(ctx context.Context, a *models.Answer) error {
	return translate(s.db.WithContext(ctx).Create(a).Error)
}

// GetAnswer returns a single answer.
func (s *GormStore) GetAnswer(ctx context.Context, id uint) (*models.Answer, error) {
	var a models.Answer
	if err := s.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

// DeleteAnswer removes one answer; its question and siblings are untouched.
func (s *GormStore) DeleteAnswer(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Answer{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAnswers returns one page of answers in id order plus the total count
// matching the filter alone.
func (s *GormStore) ListAnswers(ctx context.Context, p AnswerListParams) ([]models.Answer, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Answer{})
	if p.QuestionID != 0 {
		query = query.Where("question_id = ?", p.QuestionID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	answers := []models.Answer{}
	if err := query.Order("id ASC").Limit(p.Limit).Offset(p.Offset).Find(&answers).Error; err != nil {
		return nil, 0, translate(err)
	}
	return answers, total, nil
}

// translate maps gorm errors onto the store sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrConstraint
	default:
		return err
	}
}
