package controller

import (
	"errors"
	"strconv"

	"esg_assessment_backend/internal/assessment"
	"esg_assessment_backend/internal/service"
	"esg_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

type StartWizardRequest struct {
	AssessmentYear int `json:"assessmentYear" binding:"required"`
}

// StartWizard godoc
// @Summary Start or resume the assessment wizard
// @Description Opens a wizard session for the year. A saved draft is validated against the live question bank and resumed; entries the validator drops are reported, not repaired.
// @Tags assessment
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body StartWizardRequest true "Assessment year"
// @Success 200 {object} util.Response{data=service.WizardState} "Success"
// @Failure 404 {object} util.Response "No questions for the year"
// @Failure 409 {object} util.Response "Already submitted for the year"
// @Router /api/assessment/wizard/start [post]
func (c *AssessmentController) StartWizard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartWizardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	state, err := c.AssessmentService.StartWizard(ctx.Request.Context(), claims.UserID, req.AssessmentYear)
	if err != nil {
		c.respondWizardError(ctx, err)
		return
	}

	util.Success(ctx, state)
}

// GetState godoc
// @Summary Current wizard state
// @Tags assessment
// @Produce  json
// @Security ApiKeyAuth
// @Param   year query int true "Assessment year"
// @Success 200 {object} util.Response{data=service.WizardState} "Success"
// @Failure 404 {object} util.Response "Wizard not started"
// @Router /api/assessment/wizard [get]
func (c *AssessmentController) GetState(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	year, err := strconv.Atoi(ctx.Query("year"))
	if err != nil || year <= 0 {
		util.BadRequest(ctx, "year is required")
		return
	}

	state, err := c.AssessmentService.GetState(ctx.Request.Context(), claims.UserID, year)
	if err != nil {
		c.respondWizardError(ctx, err)
		return
	}

	util.Success(ctx, state)
}

type SetAnswerRequest struct {
	AssessmentYear int                    `json:"assessmentYear" binding:"required"`
	Category       string                 `json:"category" binding:"required"`
	QuestionID     string                 `json:"questionId" binding:"required"`
	Value          assessment.AnswerValue `json:"value"`
}

// SetAnswer godoc
// @Summary Set one answer directly
// @Description Overwrites the stored answer of one question. Used for the free-form numeric Prerequisites entries; choice questions go through the toggle endpoint.
// @Tags assessment
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SetAnswerRequest true "Answer"
// @Success 200 {object} util.Response{data=service.WizardState} "Success"
// @Failure 404 {object} util.Response "Question or wizard not found"
// @Failure 409 {object} util.Response "Already submitted"
// @Router /api/assessment/wizard/answer [put]
func (c *AssessmentController) SetAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SetAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	state, err := c.AssessmentService.SetAnswer(ctx.Request.Context(), claims.UserID, req.AssessmentYear, req.Category, req.QuestionID, req.Value)
	if err != nil {
		c.respondWizardError(ctx, err)
		return
	}

	util.Success(ctx, state)
}

type ToggleOptionRequest struct {
	AssessmentYear int    `json:"assessmentYear" binding:"required"`
	Category       string `json:"category" binding:"required"`
	QuestionID     string `json:"questionId" binding:"required"`
	OptionIndex    *int   `json:"optionIndex" binding:"required"`
}

// ToggleOption godoc
// @Summary Toggle a question option
// @Description Applies one option click: single-select questions replace the selection, multi-select questions toggle it, and the opt-out option is mutually exclusive with all others.
// @Tags assessment
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ToggleOptionRequest true "Option click"
// @Success 200 {object} util.Response{data=service.WizardState} "Success"
// @Failure 404 {object} util.Response "Question or wizard not found"
// @Failure 409 {object} util.Response "Already submitted"
// @Router /api/assessment/wizard/toggle [put]
func (c *AssessmentController) ToggleOption(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ToggleOptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	state, err := c.AssessmentService.ToggleOption(ctx.Request.Context(), claims.UserID, req.AssessmentYear, req.Category, req.QuestionID, *req.OptionIndex)
	if err != nil {
		c.respondWizardError(ctx, err)
		return
	}

	util.Success(ctx, state)
}

type NavigateRequest struct {
	AssessmentYear int    `json:"assessmentYear" binding:"required"`
	Action         string `json:"action" binding:"required,oneof=next prev jump"`
	Target         string `json:"target"`
}

// Navigate godoc
// @Summary Move through the wizard
// @Description Advances, goes back, or jumps to a stage. A blocked forward move returns 409 with the first unanswered question so the client can highlight it; the stage does not change.
// @Tags assessment
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body NavigateRequest true "Navigation action"
// @Success 200 {object} util.Response{data=service.WizardState} "Success"
// @Failure 409 {object} util.Response{data=object} "Stage incomplete or locked"
// @Router /api/assessment/wizard/navigate [post]
func (c *AssessmentController) Navigate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req NavigateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	state, err := c.AssessmentService.Navigate(ctx.Request.Context(), claims.UserID, req.AssessmentYear, req.Action, req.Target)
	if err != nil {
		c.respondWizardError(ctx, err)
		return
	}

	util.Success(ctx, state)
}

type SaveDraftRequest struct {
	AssessmentYear int `json:"assessmentYear" binding:"required"`
}

// SaveDraft godoc
// @Summary Save the wizard session as a draft
// @Tags assessment
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SaveDraftRequest true "Assessment year"
// @Success 200 {object} util.Response{data=model.AssessmentDraft} "Success"
// @Failure 404 {object} util.Response "Wizard not started"
// @Router /api/assessment/drafts [post]
func (c *AssessmentController) SaveDraft(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SaveDraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	draft, err := c.AssessmentService.SaveDraft(ctx.Request.Context(), claims.UserID, req.AssessmentYear)
	if err != nil {
		c.respondWizardError(ctx, err)
		return
	}

	util.Success(ctx, draft)
}

// ListDrafts godoc
// @Summary List own drafts
// @Tags assessment
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "Success"
// @Router /api/assessment/drafts [get]
func (c *AssessmentController) ListDrafts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	drafts, err := c.AssessmentService.ListDrafts(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"drafts": drafts})
}

// DeleteDraft godoc
// @Summary Delete a draft
// @Tags assessment
// @Produce  json
// @Security ApiKeyAuth
// @Param   year path int true "Assessment year"
// @Success 200 {object} util.Response "Success"
// @Router /api/assessment/drafts/{year} [delete]
func (c *AssessmentController) DeleteDraft(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil || year <= 0 {
		util.BadRequest(ctx, "invalid year")
		return
	}

	if err := c.AssessmentService.DeleteDraft(claims.UserID, year); err != nil {
		if errors.Is(err, util.ErrDraftNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

type SubmitRequest struct {
	AssessmentYear int `json:"assessmentYear" binding:"required"`
}

// Submit godoc
// @Summary Finalize the assessment
// @Description Scores every answer, persists the submission, and locks the wizard. All four category stages must be complete.
// @Tags assessment
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SubmitRequest true "Assessment year"
// @Success 200 {object} util.Response{data=model.AssessmentSubmission} "Success"
// @Failure 409 {object} util.Response "Not ready to submit, or already submitted"
// @Router /api/assessment/wizard/submit [post]
func (c *AssessmentController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.AssessmentService.Submit(ctx.Request.Context(), claims.UserID, req.AssessmentYear)
	if err != nil {
		c.respondWizardError(ctx, err)
		return
	}

	util.Success(ctx, submission)
}

// ListResults godoc
// @Summary List own submissions
// @Tags assessment
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "Success"
// @Router /api/assessment/results [get]
func (c *AssessmentController) ListResults(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	results, err := c.AssessmentService.ListResults(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"results": results})
}

// GetResult godoc
// @Summary Own submission for a year
// @Tags assessment
// @Produce  json
// @Security ApiKeyAuth
// @Param   year path int true "Assessment year"
// @Success 200 {object} util.Response{data=model.AssessmentSubmission} "Success"
// @Failure 404 {object} util.Response "No submission for the year"
// @Router /api/assessment/results/{year} [get]
func (c *AssessmentController) GetResult(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil || year <= 0 {
		util.BadRequest(ctx, "invalid year")
		return
	}

	result, err := c.AssessmentService.Result(claims.UserID, year)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if result == nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, result)
}

// respondWizardError maps engine and service errors onto HTTP statuses.
func (c *AssessmentController) respondWizardError(ctx *gin.Context, err error) {
	var incomplete *assessment.IncompleteStageError
	switch {
	case errors.As(err, &incomplete):
		ctx.JSON(409, util.Response{
			Code:    409,
			Message: incomplete.Error(),
			Data: gin.H{
				"category":   incomplete.Category,
				"questionId": incomplete.QuestionID,
				"position":   incomplete.Position,
			},
		})
	case errors.Is(err, util.ErrAlreadySubmitted),
		errors.Is(err, assessment.ErrAlreadySubmitted),
		errors.Is(err, assessment.ErrNotAtFinalStage),
		errors.Is(err, assessment.ErrStageLocked),
		errors.Is(err, assessment.ErrYearRequired):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrWizardNotStarted),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrEmptyQuestionBank):
		util.Error(ctx, 404, err.Error())
	case errors.Is(err, util.ErrInvalidQuestionData):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
