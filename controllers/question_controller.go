package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hitalent/qanda/services"
	"github.com/hitalent/qanda/store"
	"github.com/hitalent/qanda/utils"
)

// TotalCountHeader carries the total number of rows matching a list filter,
// independent of the requested limit/offset window.
const TotalCountHeader = "X-Total-Count"

// QuestionController maps question operations onto HTTP.
type QuestionController struct {
	svc *services.QAService
}

// NewQuestionController creates a new QuestionController instance.
func NewQuestionController(svc *services.QAService) *QuestionController {
	return &QuestionController{svc: svc}
}

// CreateQuestion handles POST /questions/.
func (q *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusUnprocessableEntity, 42210, "invalid request payload")
		return
	}

	question, err := q.svc.CreateQuestion(ctx.Request.Context(), req.Text)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			utils.Error(ctx, http.StatusUnprocessableEntity, 42211, verr.Error())
			return
		}
		utils.Sugar.Errorf("create question failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to create question")
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// ListQuestions handles GET /questions/ with limit, offset, sort_by, order and
// q query parameters. The total matching count goes into X-Total-Count.
func (q *QuestionController) ListQuestions(ctx *gin.Context) {
	limit, offset, ok := parseListWindow(ctx)
	if !ok {
		return
	}

	params := store.QuestionListParams{
		Text:   ctx.Query("q"),
		SortBy: store.SortKey(ctx.DefaultQuery("sort_by", string(store.SortByID))),
		Limit:  limit,
		Offset: offset,
	}
	switch ctx.DefaultQuery("order", "asc") {
	case "asc":
	case "desc":
		params.Descending = true
	default:
		utils.Error(ctx, http.StatusUnprocessableEntity, 42212, "order must be one of asc, desc")
		return
	}

	questions, total, err := q.svc.ListQuestions(ctx.Request.Context(), params)
	if err != nil {
		if errors.Is(err, store.ErrInvalidArgument) {
			utils.Error(ctx, http.StatusUnprocessableEntity, 42213, err.Error())
			return
		}
		utils.Sugar.Errorf("list questions failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to list questions")
		return
	}

	ctx.Header(TotalCountHeader, strconv.FormatInt(total, 10))
	ctx.JSON(http.StatusOK, questions)
}

// GetQuestion handles GET /questions/:id and includes the answers in id order.
func (q *QuestionController) GetQuestion(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	question, err := q.svc.GetQuestionWithAnswers(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, "question not found")
			return
		}
		utils.Sugar.Errorf("load question failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to load question")
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// DeleteQuestion handles DELETE /questions/:id; the answers go with it.
func (q *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := q.svc.DeleteQuestion(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40411, "question not found")
			return
		}
		utils.Sugar.Errorf("delete question failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50013, "failed to delete question")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateAnswer handles POST /questions/:id/answers/.
func (q *QuestionController) CreateAnswer(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req struct {
		UserID string `json:"user_id"`
		Text   string `json:"text"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusUnprocessableEntity, 42214, "invalid request payload")
		return
	}

	answer, err := q.svc.CreateAnswer(ctx.Request.Context(), id, req.UserID, req.Text)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			utils.Error(ctx, http.StatusUnprocessableEntity, 42215, verr.Error())
		case errors.Is(err, store.ErrNotFound):
			utils.Error(ctx, http.StatusNotFound, 40412, "question not found")
		case errors.Is(err, store.ErrConstraint):
			utils.Error(ctx, http.StatusConflict, 40910, "question was deleted concurrently")
		default:
			utils.Sugar.Errorf("create answer failed: %v", err)
			utils.Error(ctx, http.StatusInternalServerError, 50014, "failed to create answer")
		}
		return
	}
	ctx.JSON(http.StatusCreated, answer)
}

func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.Error(ctx, http.StatusUnprocessableEntity, 42216, "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// parseListWindow reads limit/offset query parameters, writing a 422 response
// and returning ok=false when they are not integers. Range checks happen in the
// store params so they hold for every caller of the service.
func parseListWindow(ctx *gin.Context) (limit, offset int, ok bool) {
	if s := ctx.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			utils.Error(ctx, http.StatusUnprocessableEntity, 42217, "limit must be an integer")
			return 0, 0, false
		}
		if v == 0 {
			// zero means "unset" further down, so an explicit zero is rejected here
			utils.Error(ctx, http.StatusUnprocessableEntity, 42217, "limit must be between 1 and 100")
			return 0, 0, false
		}
		limit = v
	}
	if s := ctx.Query("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			utils.Error(ctx, http.StatusUnprocessableEntity, 42218, "offset must be an integer")
			return 0, 0, false
		}
		offset = v
	}
	return limit, offset, true
}
