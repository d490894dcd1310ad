package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"esg_assessment_backend/internal/service"
	"esg_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// ListSubmissions godoc
// @Summary List submissions
// @Description Admin view over finalized submissions, filterable by year and company name
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(20)
// @Param   year query int false "Assessment year"
// @Param   companyName query string false "Company name search"
// @Success 200 {object} util.Response{data=util.PageResponse} "Success"
// @Router /api/admin/submissions [get]
func (c *ReportController) ListSubmissions(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	year, _ := strconv.Atoi(ctx.Query("year"))

	submissions, total, err := c.ReportService.ListSubmissions(page, limit, year, ctx.Query("companyName"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: submissions, Total: total, Page: page, Limit: limit})
}

// GetSubmission godoc
// @Summary Submission details
// @Description One submission with decoded response records and per-category score subtotals
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Submission ID"
// @Success 200 {object} util.Response{data=service.SubmissionDetail} "Success"
// @Failure 404 {object} util.Response "Submission not found"
// @Router /api/admin/submissions/{id} [get]
func (c *ReportController) GetSubmission(ctx *gin.Context) {
	detail, err := c.ReportService.SubmissionDetail(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrSubmissionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, detail)
}

// ExportSubmissions godoc
// @Summary Export submissions as Excel
// @Tags admin
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Param   year query int false "Assessment year"
// @Param   companyName query string false "Company name search"
// @Success 200 {file} binary "Workbook"
// @Router /api/admin/reports/export [get]
func (c *ReportController) ExportSubmissions(ctx *gin.Context) {
	year, _ := strconv.Atoi(ctx.Query("year"))

	buf, err := c.ReportService.ExportSubmissions(year, ctx.Query("companyName"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := fmt.Sprintf("esg-submissions-%s.xlsx", time.Now().Format(util.DateFormat))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
