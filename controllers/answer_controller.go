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

// AnswerController maps answer operations onto HTTP.
type AnswerController struct {
	svc *services.QAService
}

// NewAnswerController creates a new AnswerController instance.
func NewAnswerController(svc *services.QAService) *AnswerController {
	return &AnswerController{svc: svc}
}

// ListAnswers handles GET /answers/ with question_id, limit and offset query
// parameters. Answers are always ordered by id ascending.
func (a *AnswerController) ListAnswers(ctx *gin.Context) {
	limit, offset, ok := parseListWindow(ctx)
	if !ok {
		return
	}

	params := store.AnswerListParams{Limit: limit, Offset: offset}
	if s := ctx.Query("question_id"); s != "" {
		qid, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			utils.Error(ctx, http.StatusUnprocessableEntity, 42220, "question_id must be a positive integer")
			return
		}
		params.QuestionID = uint(qid)
	}

	answers, total, err := a.svc.ListAnswers(ctx.Request.Context(), params)
	if err != nil {
		if errors.Is(err, store.ErrInvalidArgument) {
			utils.Error(ctx, http.StatusUnprocessableEntity, 42221, err.Error())
			return
		}
		utils.Sugar.Errorf("list answers failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to list answers")
		return
	}

	ctx.Header(TotalCountHeader, strconv.FormatInt(total, 10))
	ctx.JSON(http.StatusOK, answers)
}

// GetAnswer handles GET /answers/:id.
func (a *AnswerController) GetAnswer(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	answer, err := a.svc.GetAnswer(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "answer not found")
			return
		}
		utils.Sugar.Errorf("load answer failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to load answer")
		return
	}
	ctx.JSON(http.StatusOK, answer)
}

// DeleteAnswer handles DELETE /answers/:id; the question and sibling answers
// stay in place.
func (a *AnswerController) DeleteAnswer(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := a.svc.DeleteAnswer(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40421, "answer not found")
			return
		}
		utils.Sugar.Errorf("delete answer failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to delete answer")
		return
	}
	ctx.Status(http.StatusNoContent)
}
