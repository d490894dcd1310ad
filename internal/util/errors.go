package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountDisabled     = errors.New("account disabled")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrEmptyQuestionBank   = errors.New("question bank is empty for the requested year")
	ErrDraftNotFound       = errors.New("draft not found")
	ErrAlreadySubmitted    = errors.New("assessment already submitted for this year")
	ErrWizardNotStarted    = errors.New("wizard session not started")
	ErrInvalidQuestionData = errors.New("invalid question data")
)
