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

type EventController struct {
	EventService *service.EventService
}

func NewEventController(eventService *service.EventService) *EventController {
	return &EventController{EventService: eventService}
}

// ListEvents godoc
// @Summary List events
// @Description Published events for users; admins see unpublished ones too
// @Tags events
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse} "Success"
// @Router /api/events [get]
func (c *EventController) ListEvents(ctx *gin.Context) {
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

	events, total, err := c.EventService.List(page, limit, publishedOnly)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: events, Total: total, Page: page, Limit: limit})
}

// GetEvent godoc
// @Summary Event details
// @Tags events
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Event ID"
// @Success 200 {object} util.Response{data=model.Event} "Success"
// @Failure 404 {object} util.Response "Event not found"
// @Router /api/events/{id} [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid event id")
		return
	}

	event, err := c.EventService.Get(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, event)
}

// CreateEvent godoc
// @Summary Create an event
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.EventRequest true "Event definition"
// @Success 201 {object} util.Response{data=model.Event} "Created"
// @Router /api/admin/events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	var req service.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	event, err := c.EventService.Create(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Event ID"
// @Param   body body service.EventRequest true "Event definition"
// @Success 200 {object} util.Response{data=model.Event} "Success"
// @Failure 404 {object} util.Response "Event not found"
// @Router /api/admin/events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid event id")
		return
	}

	var req service.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	event, err := c.EventService.Update(uint(id), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Event ID"
// @Success 200 {object} util.Response "Success"
// @Router /api/admin/events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid event id")
		return
	}

	if err := c.EventService.Delete(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// UploadBanner godoc
// @Summary Upload an event banner
// @Tags admin
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Event ID"
// @Param   file formData file true "Banner image"
// @Success 200 {object} util.Response{data=model.Event} "Success"
// @Failure 404 {object} util.Response "Event not found"
// @Router /api/admin/events/{id}/banner [post]
func (c *EventController) UploadBanner(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid event id")
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	event, err := c.EventService.UploadBanner(ctx.Request.Context(), uint(id), header)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, event)
}
