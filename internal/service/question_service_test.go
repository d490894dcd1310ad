package service

import (
	"encoding/json"
	"testing"

	"esg_assessment_backend/internal/assessment"
	"esg_assessment_backend/internal/model"
)

func TestToEngineQuestion(t *testing.T) {
	record := model.AssessmentQuestion{
		AssessmentYear: 2025,
		Category:       "environment",
		SubCategory:    "Energy",
		Text:           json.RawMessage(`{"en":"Do you track energy usage?","ms":"Adakah anda menjejaki penggunaan tenaga?"}`),
		Weight:         10,
		AllowMultiple:  true,
		Options:        json.RawMessage(`[{"text":"Monthly meter readings","subMark":5},{"text":"None of the above","subMark":0}]`),
	}
	record.ID = "q-energy-1"

	q, err := toEngineQuestion(record)
	if err != nil {
		t.Fatalf("toEngineQuestion: %v", err)
	}

	if q.ID != "q-energy-1" {
		t.Errorf("ID = %q", q.ID)
	}
	if q.Category != assessment.CategoryEnvironment {
		t.Errorf("Category = %q", q.Category)
	}
	if q.Text.EN != "Do you track energy usage?" {
		t.Errorf("Text.EN = %q", q.Text.EN)
	}
	if len(q.Options) != 2 {
		t.Fatalf("len(Options) = %d", len(q.Options))
	}
	if q.Options[0].SubMark != 5 {
		t.Errorf("Options[0].SubMark = %v", q.Options[0].SubMark)
	}
	if !q.Options[1].IsOptOut() {
		t.Error("Options[1] should be the opt-out option")
	}
}

func TestToEngineQuestionPlainStringText(t *testing.T) {
	record := model.AssessmentQuestion{
		Category: "social",
		Text:     json.RawMessage(`"Do you provide employee training?"`),
		Options:  json.RawMessage(`[{"text":"Yes","subMark":1}]`),
	}

	q, err := toEngineQuestion(record)
	if err != nil {
		t.Fatalf("toEngineQuestion: %v", err)
	}
	if q.Text.EN != "Do you provide employee training?" {
		t.Errorf("Text.EN = %q", q.Text.EN)
	}
	if q.Text.MS != "Do you provide employee training?" {
		t.Errorf("Text.MS should fall back to EN, got %q", q.Text.MS)
	}
}

func TestToEngineQuestionMalformedOptions(t *testing.T) {
	record := model.AssessmentQuestion{
		Category: "governance",
		Text:     json.RawMessage(`"Board diversity policy?"`),
		Options:  json.RawMessage(`{"broken":`),
	}

	if _, err := toEngineQuestion(record); err == nil {
		t.Fatal("expected an error for malformed options")
	}
}

func TestQuestionRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     QuestionRequest
		wantErr bool
	}{
		{
			name: "valid scored question",
			req: QuestionRequest{
				AssessmentYear: 2025,
				Category:       "environment",
				Text:           json.RawMessage(`{"en":"Q","ms":"S"}`),
				Options:        json.RawMessage(`[{"text":"A","subMark":1}]`),
			},
		},
		{
			name: "valid prerequisite without options",
			req: QuestionRequest{
				AssessmentYear: 2025,
				Category:       "prerequisites",
				Text:           json.RawMessage(`"Annual revenue (RM)?"`),
			},
		},
		{
			name: "unknown category",
			req: QuestionRequest{
				Category: "finance",
				Text:     json.RawMessage(`"Q"`),
			},
			wantErr: true,
		},
		{
			name: "scored question without options",
			req: QuestionRequest{
				Category: "social",
				Text:     json.RawMessage(`"Q"`),
			},
			wantErr: true,
		},
		{
			name: "empty text",
			req: QuestionRequest{
				Category: "environment",
				Text:     json.RawMessage(`""`),
				Options:  json.RawMessage(`[{"text":"A","subMark":1}]`),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
