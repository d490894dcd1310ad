package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"esg_assessment_backend/internal/assessment"
	"esg_assessment_backend/internal/model"
	"esg_assessment_backend/internal/repository"
	"esg_assessment_backend/internal/util"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ReportService gives admins a view over finalized submissions, including
// an Excel export.
type ReportService struct {
	Submissions *repository.SubmissionRepository
}

func NewReportService(submissions *repository.SubmissionRepository) *ReportService {
	return &ReportService{Submissions: submissions}
}

func (s *ReportService) ListSubmissions(page, limit, year int, companyName string) ([]model.AssessmentSubmission, int64, error) {
	return s.Submissions.List(page, limit, year, companyName)
}

// SubmissionDetail is one submission with its response records decoded and
// per-category subtotals attached.
type SubmissionDetail struct {
	Submission *model.AssessmentSubmission   `json:"submission"`
	Records    []assessment.ResponseRecord   `json:"records"`
	Categories map[string]CategoryScoreTotal `json:"categories"`
}

type CategoryScoreTotal struct {
	Score    float64 `json:"score"`
	MaxScore float64 `json:"maxScore"`
}

func (s *ReportService) SubmissionDetail(id string) (*SubmissionDetail, error) {
	submission, err := s.Submissions.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}

	var records []assessment.ResponseRecord
	if len(submission.Responses) > 0 {
		if err := json.Unmarshal(submission.Responses, &records); err != nil {
			return nil, fmt.Errorf("decode submission responses: %w", err)
		}
	}

	categories := make(map[string]CategoryScoreTotal, 4)
	for _, record := range records {
		if !record.Category.Scored() {
			continue
		}
		totals := categories[string(record.Category)]
		totals.Score += record.Score
		totals.MaxScore += record.MaxScore
		categories[string(record.Category)] = totals
	}

	return &SubmissionDetail{
		Submission: submission,
		Records:    records,
		Categories: categories,
	}, nil
}

// ExportSubmissions renders the filtered submission list as a .xlsx
// workbook. The list is unpaginated on purpose, the export should cover
// everything the filter matches.
func (s *ReportService) ExportSubmissions(year int, companyName string) (*bytes.Buffer, error) {
	submissions, _, err := s.Submissions.List(1, 10000, year, companyName)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Submissions"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Company", "Registration No", "Sector", "Email", "Year", "Total Score", "Max Score", "Percentage", "Submitted At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, sub := range submissions {
		values := make([]interface{}, len(headers))
		if sub.User != nil {
			values[0] = sub.User.CompanyName
			values[1] = sub.User.CompanyRegistrationNo
			values[2] = sub.User.Sector
			values[3] = sub.User.Email
		}
		values[4] = sub.AssessmentYear
		values[5] = sub.TotalScore
		values[6] = sub.MaxScore
		if sub.MaxScore > 0 {
			values[7] = fmt.Sprintf("%.1f%%", sub.TotalScore/sub.MaxScore*100)
		} else {
			values[7] = "0.0%"
		}
		values[8] = sub.SubmittedAt.Format(util.TimeFormat)

		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf, nil
}
