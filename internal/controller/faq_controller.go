package controller

import (
	"errors"
	"strconv"

	"esg_assessment_backend/internal/model"
	"esg_assessment_backend/internal/service"
	"esg_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FAQController struct {
	FAQService *service.FAQService
}

func NewFAQController(faqService *service.FAQService) *FAQController {
	return &FAQController{FAQService: faqService}
}

// ListFAQs godoc
// @Summary List FAQs
// @Description Published FAQs in display order; admins see unpublished ones too
// @Tags faqs
// @Produce  json
// @Success 200 {object} util.Response{data=object} "Success"
// @Router /api/faqs [get]
func (c *FAQController) ListFAQs(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	publishedOnly := claims == nil || claims.Role != model.RoleAdmin

	faqs, err := c.FAQService.List(publishedOnly)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"faqs": faqs})
}

// CreateFAQ godoc
// @Summary Create an FAQ
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.FAQRequest true "FAQ with bilingual question and answer"
// @Success 201 {object} util.Response{data=model.FAQ} "Created"
// @Failure 400 {object} util.Response "Invalid FAQ data"
// @Router /api/admin/faqs [post]
func (c *FAQController) CreateFAQ(ctx *gin.Context) {
	var req service.FAQRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	faq, err := c.FAQService.Create(req)
	if err != nil {
		if errors.Is(err, util.ErrInvalidQuestionData) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, faq)
}

// UpdateFAQ godoc
// @Summary Update an FAQ
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "FAQ ID"
// @Param   body body service.FAQRequest true "FAQ with bilingual question and answer"
// @Success 200 {object} util.Response{data=model.FAQ} "Success"
// @Failure 404 {object} util.Response "FAQ not found"
// @Router /api/admin/faqs/{id} [put]
func (c *FAQController) UpdateFAQ(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid faq id")
		return
	}

	var req service.FAQRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	faq, err := c.FAQService.Update(uint(id), req)
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

	util.Success(ctx, faq)
}

// DeleteFAQ godoc
// @Summary Delete an FAQ
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "FAQ ID"
// @Success 200 {object} util.Response "Success"
// @Router /api/admin/faqs/{id} [delete]
func (c *FAQController) DeleteFAQ(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid faq id")
		return
	}

	if err := c.FAQService.Delete(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
