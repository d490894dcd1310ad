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

type MaterialController struct {
	MaterialService *service.MaterialService
}

func NewMaterialController(materialService *service.MaterialService) *MaterialController {
	return &MaterialController{MaterialService: materialService}
}

// ListMaterials godoc
// @Summary List learning materials
// @Description Published materials for users; admins see unpublished ones too
// @Tags materials
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(20)
// @Param   type query string false "Material type (pdf, video, link)"
// @Success 200 {object} util.Response{data=util.PageResponse} "Success"
// @Router /api/materials [get]
func (c *MaterialController) ListMaterials(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	claims := util.GetUserFromContext(ctx)
	publishedOnly := claims == nil || claims.Role != model.RoleAdmin

	materials, total, err := c.MaterialService.List(page, limit, ctx.Query("type"), publishedOnly)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: materials, Total: total, Page: page, Limit: limit})
}

// GetMaterial godoc
// @Summary Material details
// @Tags materials
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Material ID"
// @Success 200 {object} util.Response{data=model.LearningMaterial} "Success"
// @Failure 404 {object} util.Response "Material not found"
// @Router /api/materials/{id} [get]
func (c *MaterialController) GetMaterial(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid material id")
		return
	}

	material, err := c.MaterialService.Get(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, material)
}

// CreateMaterial godoc
// @Summary Create a learning material
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.MaterialRequest true "Material definition"
// @Success 201 {object} util.Response{data=model.LearningMaterial} "Created"
// @Router /api/admin/materials [post]
func (c *MaterialController) CreateMaterial(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.MaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	material, err := c.MaterialService.Create(req, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, material)
}

// UpdateMaterial godoc
// @Summary Update a learning material
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Material ID"
// @Param   body body service.MaterialRequest true "Material definition"
// @Success 200 {object} util.Response{data=model.LearningMaterial} "Success"
// @Failure 404 {object} util.Response "Material not found"
// @Router /api/admin/materials/{id} [put]
func (c *MaterialController) UpdateMaterial(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid material id")
		return
	}

	var req service.MaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	material, err := c.MaterialService.Update(uint(id), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, material)
}

// DeleteMaterial godoc
// @Summary Delete a learning material
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Material ID"
// @Success 200 {object} util.Response "Success"
// @Router /api/admin/materials/{id} [delete]
func (c *MaterialController) DeleteMaterial(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid material id")
		return
	}

	if err := c.MaterialService.Delete(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// UploadMaterialFile godoc
// @Summary Upload a material file
// @Tags admin
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Material ID"
// @Param   file formData file true "Material file"
// @Success 200 {object} util.Response{data=model.LearningMaterial} "Success"
// @Failure 404 {object} util.Response "Material not found"
// @Router /api/admin/materials/{id}/file [post]
func (c *MaterialController) UploadMaterialFile(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid material id")
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	material, err := c.MaterialService.UploadFile(ctx.Request.Context(), uint(id), header)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, material)
}
