package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hitalent/qanda/models"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.sqlite3") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Question{}, &models.Answer{}))
	return NewGormStore(db)
}

func mustCreateQuestion(t *testing.T, s *GormStore, text string) *models.Question {
	t.Helper()
	q := &models.Question{Text: text}
	require.NoError(t, s.CreateQuestion(context.Background(), q))
	return q
}

func mustCreateAnswer(t *testing.T, s *GormStore, questionID uint, text string) *models.Answer {
	t.Helper()
	a := &models.Answer{
		QuestionID: questionID,
		UserID:     "00000000-0000-0000-0000-000000000000",
		Text:       text,
	}
	require.NoError(t, s.CreateAnswer(context.Background(), a))
	return a
}

func TestCreateQuestionAssignsIDAndTimestamp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := mustCreateQuestion(t, s, "first")
	second := mustCreateQuestion(t, s, "second")

	assert.Greater(t, first.ID, uint(0))
	assert.Greater(t, second.ID, first.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.False(t, second.CreatedAt.Before(first.CreatedAt))

	got, err := s.GetQuestion(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "first", got.Text)
	assert.True(t, got.CreatedAt.Equal(first.CreatedAt))
}

func TestGetQuestionNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetQuestion(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetQuestionWithAnswersOrdersByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	q := mustCreateQuestion(t, s, "with answers")
	a1 := mustCreateAnswer(t, s, q.ID, "a1")
	a2 := mustCreateAnswer(t, s, q.ID, "a2")
	a3 := mustCreateAnswer(t, s, q.ID, "a3")

	got, err := s.GetQuestionWithAnswers(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, got.Answers, 3)
	assert.Equal(t, []uint{a1.ID, a2.ID, a3.ID},
		[]uint{got.Answers[0].ID, got.Answers[1].ID, got.Answers[2].ID})
}

func TestDeleteQuestionCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	doomed := mustCreateQuestion(t, s, "doomed")
	d1 := mustCreateAnswer(t, s, doomed.ID, "d1")
	d2 := mustCreateAnswer(t, s, doomed.ID, "d2")

	survivor := mustCreateQuestion(t, s, "survivor")
	kept := mustCreateAnswer(t, s, survivor.ID, "kept")

	require.NoError(t, s.DeleteQuestion(ctx, doomed.ID))

	_, err := s.GetQuestion(ctx, doomed.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetAnswer(ctx, d1.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetAnswer(ctx, d2.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// the other question and its answer are untouched
	_, err = s.GetQuestion(ctx, survivor.ID)
	require.NoError(t, err)
	_, err = s.GetAnswer(ctx, kept.ID)
	require.NoError(t, err)
}

func TestDeleteQuestionMissing(t *testing.T) {
	s := newTestStore(t)

	err := s.DeleteQuestion(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAnswerLeavesSiblings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	q := mustCreateQuestion(t, s, "q")
	gone := mustCreateAnswer(t, s, q.ID, "gone")
	stays := mustCreateAnswer(t, s, q.ID, "stays")

	require.NoError(t, s.DeleteAnswer(ctx, gone.ID))

	_, err := s.GetAnswer(ctx, gone.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetAnswer(ctx, stays.ID)
	require.NoError(t, err)
	_, err = s.GetQuestion(ctx, q.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteAnswer(ctx, gone.ID), ErrNotFound)
}

func TestCreateAnswerForeignKeyViolation(t *testing.T) {
	s := newTestStore(t)

	a := &models.Answer{
		QuestionID: 777,
		UserID:     "00000000-0000-0000-0000-000000000000",
		Text:       "orphan",
	}
	err := s.CreateAnswer(context.Background(), a)
	assert.ErrorIs(t, err, ErrConstraint)
}

func TestListQuestionsWindowAndTotal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var ids []uint
	for _, text := range []string{"q1", "q2", "q3", "q4", "q5"} {
		ids = append(ids, mustCreateQuestion(t, s, text).ID)
	}

	items, total, err := s.ListQuestions(ctx, QuestionListParams{SortBy: SortByID, Limit: 3, Offset: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, items, 3)
	assert.Equal(t, []uint{ids[1], ids[2], ids[3]},
		[]uint{items[0].ID, items[1].ID, items[2].ID})
}

func TestListQuestionsPagesConcatenate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, text := range []string{"q1", "q2", "q3", "q4", "q5"} {
		mustCreateQuestion(t, s, text)
	}

	var seen []uint
	for offset := 0; ; offset += 2 {
		items, total, err := s.ListQuestions(ctx, QuestionListParams{SortBy: SortByID, Limit: 2, Offset: offset})
		require.NoError(t, err)
		assert.EqualValues(t, 5, total)
		for _, it := range items {
			seen = append(seen, it.ID)
		}
		if len(items) < 2 {
			break
		}
	}

	require.Len(t, seen, 5)
	for i := 1; i < len(seen); i++ {
		assert.Greater(t, seen[i], seen[i-1], "pages must not overlap and must stay ordered")
	}
}

func TestListQuestionsSubstringFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateQuestion(t, s, "how to deploy go services")
	mustCreateQuestion(t, s, "go generics explained")
	mustCreateQuestion(t, s, "sql pagination patterns")

	items, total, err := s.ListQuestions(ctx, QuestionListParams{Text: "go", SortBy: SortByID, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	for _, it := range items {
		assert.Contains(t, it.Text, "go")
	}

	// total reflects the filter even when the window is smaller
	items, total, err = s.ListQuestions(ctx, QuestionListParams{Text: "go", SortBy: SortByID, Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 1)
}

func TestListQuestionsSortDescending(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	q1 := mustCreateQuestion(t, s, "q1")
	q2 := mustCreateQuestion(t, s, "q2")
	q3 := mustCreateQuestion(t, s, "q3")

	items, _, err := s.ListQuestions(ctx, QuestionListParams{SortBy: SortByID, Descending: true, Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []uint{q3.ID, q2.ID, q1.ID},
		[]uint{items[0].ID, items[1].ID, items[2].ID})
}

func TestListQuestionsCreatedAtTieBreaksByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// identical timestamps force the secondary id ordering to decide
	same := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for _, text := range []string{"a", "b", "c"} {
		require.NoError(t, s.CreateQuestion(ctx, &models.Question{Text: text, CreatedAt: same}))
	}

	first, _, err := s.ListQuestions(ctx, QuestionListParams{SortBy: SortByCreatedAt, Limit: 10})
	require.NoError(t, err)
	require.Len(t, first, 3)
	for i := 1; i < len(first); i++ {
		assert.Greater(t, first[i].ID, first[i-1].ID)
	}

	// repeated identical reads return the identical order
	second, _, err := s.ListQuestions(ctx, QuestionListParams{SortBy: SortByCreatedAt, Limit: 10})
	require.NoError(t, err)
	require.Len(t, second, 3)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestListAnswersFilterByQuestion(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	q1 := mustCreateQuestion(t, s, "q1")
	q2 := mustCreateQuestion(t, s, "q2")
	a1 := mustCreateAnswer(t, s, q1.ID, "a1")
	mustCreateAnswer(t, s, q2.ID, "other")
	a3 := mustCreateAnswer(t, s, q1.ID, "a3")

	items, total, err := s.ListAnswers(ctx, AnswerListParams{QuestionID: q1.ID, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, []uint{a1.ID, a3.ID}, []uint{items[0].ID, items[1].ID})

	// no filter lists everything
	_, total, err = s.ListAnswers(ctx, AnswerListParams{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestQuestionListParamsNormalize(t *testing.T) {
	p := QuestionListParams{}
	require.NoError(t, p.Normalize())
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)
	assert.Equal(t, SortByID, p.SortBy)

	cases := []QuestionListParams{
		{Limit: -1},
		{Limit: MaxLimit + 1},
		{Offset: -1},
		{SortBy: "text"},
	}
	for _, c := range cases {
		assert.ErrorIs(t, c.Normalize(), ErrInvalidArgument)
	}
}

func TestAnswerListParamsNormalize(t *testing.T) {
	p := AnswerListParams{}
	require.NoError(t, p.Normalize())
	assert.Equal(t, DefaultLimit, p.Limit)

	bad := AnswerListParams{Limit: 101}
	assert.ErrorIs(t, bad.Normalize(), ErrInvalidArgument)
}
