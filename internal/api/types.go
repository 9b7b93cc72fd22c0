// Package api is the HTTP client for the Vuka Coach session backend.
package api

// Session is the payload returned by a successful init-session call.
type Session struct {
	ID           string
	Questions    []string
	CurrentIndex int
	StarStories  []StarStory
	// PromptAudio is the decoded spoken intro + first question.
	PromptAudio []byte
}

// StarStory is a pre-generated behavioral-interview narrative shown as
// reference material, independent of the live question flow.
type StarStory struct {
	Title     string `json:"title"`
	Situation string `json:"situation"`
	Task      string `json:"task"`
	Action    string `json:"action"`
	Result    string `json:"result"`
}

// Feedback is the assessment of one recorded answer.
type Feedback struct {
	Transcription  string
	FeedbackText   string
	ImprovementTip string
	// Audio is the decoded spoken feedback.
	Audio []byte
}

// QuestionPrompt is the resolved result of an index-addressed question jump.
type QuestionPrompt struct {
	Index    int
	Question string
	Audio    []byte
	// Finished is set when the requested index is one past the last question.
	Finished bool
}

// Report is the aggregate assessment across all answered questions.
type Report struct {
	OverallScore        float64            `json:"overall_score"`
	Metrics             map[string]float64 `json:"metrics"`
	Summary             string             `json:"summary"`
	Strengths           []string           `json:"strengths"`
	AreasForImprovement []string           `json:"areas_for_improvement"`
}

// InitRequest carries onboarding input for a new session. Exactly one of
// CVPath and CVText must be set; JobDescription is required.
type InitRequest struct {
	JobDescription string
	CVPath         string
	CVText         string
}
