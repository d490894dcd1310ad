package controller

import (
	"errors"
	"strconv"
	"time"

	"esg_assessment_backend/internal/service"
	"esg_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// GetQuestionBank godoc
// @Summary Question bank for a year
// @Description Returns the normalized bank grouped by ESG category, in the order the wizard walks them
// @Tags assessment
// @Produce  json
// @Security ApiKeyAuth
// @Param   year query int false "Assessment year, defaults to the current year"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 404 {object} util.Response "No questions for the year"
// @Router /api/assessment/questions [get]
func (c *QuestionController) GetQuestionBank(ctx *gin.Context) {
	year := queryYear(ctx)

	grouped, err := c.QuestionService.GroupedBank(ctx.Request.Context(), year)
	if err != nil {
		if errors.Is(err, util.ErrEmptyQuestionBank) {
			util.Error(ctx, 404, "No questions configured for this assessment year")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"assessmentYear": year, "categories": grouped})
}

// ListYears godoc
// @Summary Assessment years with questions
// @Tags assessment
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "Success"
// @Router /api/assessment/years [get]
func (c *QuestionController) ListYears(ctx *gin.Context) {
	years, err := c.QuestionService.ListYears()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"years": years})
}

// ListQuestions godoc
// @Summary List questions (admin)
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Param   year query int false "Assessment year"
// @Param   category query string false "Category filter"
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse} "Success"
// @Router /api/admin/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	year, _ := strconv.Atoi(ctx.Query("year"))
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	questions, total, err := c.QuestionService.ListQuestions(year, ctx.Query("category"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: questions, Total: total, Page: page, Limit: limit})
}

// CreateQuestion godoc
// @Summary Create a question
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.QuestionRequest true "Question definition"
// @Success 201 {object} util.Response{data=model.AssessmentQuestion} "Created"
// @Failure 400 {object} util.Response "Invalid question data"
// @Router /api/admin/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.CreateQuestion(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, util.ErrInvalidQuestionData) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, question)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Question ID"
// @Param   body body service.QuestionRequest true "Question definition"
// @Success 200 {object} util.Response{data=model.AssessmentQuestion} "Success"
// @Failure 400 {object} util.Response "Invalid question data"
// @Failure 404 {object} util.Response "Question not found"
// @Router /api/admin/questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.UpdateQuestion(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidQuestionData):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, question)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Description Removes the question from the bank. Saved drafts that reference it are reconciled on resume.
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Question ID"
// @Success 200 {object} util.Response "Success"
// @Failure 404 {object} util.Response "Question not found"
// @Router /api/admin/questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	if err := c.QuestionService.DeleteQuestion(ctx.Request.Context(), ctx.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

func queryYear(ctx *gin.Context) int {
	year, err := strconv.Atoi(ctx.Query("year"))
	if err != nil || year <= 0 {
		return time.Now().Year()
	}
	return year
}
