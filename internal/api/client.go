package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	// ErrNoAnswers indicates a report was requested before any answer was
	// recorded. The user can answer more questions and retry.
	ErrNoAnswers = errors.New("no answers recorded yet; answer at least one question before requesting a report")
)

// Client wraps the four remote session operations over multipart HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient constructs a session client for one backend base URL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{},
		logger:  logger,
	}
}

// InitSession starts a practice session from a CV and a job description.
func (c *Client) InitSession(ctx context.Context, req InitRequest) (*Session, error) {
	if strings.TrimSpace(req.JobDescription) == "" {
		return nil, errors.New("job description must not be empty")
	}
	hasFile := strings.TrimSpace(req.CVPath) != ""
	hasText := strings.TrimSpace(req.CVText) != ""
	if hasFile == hasText {
		return nil, errors.New("exactly one of cv file and cv text must be provided")
	}

	var out struct {
		SessionID          string      `json:"session_id"`
		Questions          []string    `json:"questions"`
		StarStories        []StarStory `json:"star_stories"`
		CurrentIndex       int         `json:"current_index"`
		CurrentAudioBase64 string      `json:"current_audio_base64"`
		AudioBase64        string      `json:"audio_base64"`
		FirstQuestion      string      `json:"first_question"`
	}

	err := c.postForm(ctx, "/init-session", func(w *multipart.Writer) error {
		if err := w.WriteField("job_description", req.JobDescription); err != nil {
			return err
		}
		if hasText {
			return w.WriteField("cv_text", req.CVText)
		}
		return attachFile(w, "cv_file", req.CVPath)
	}, &out)
	if err != nil {
		return nil, err
	}

	questions := out.Questions
	if len(questions) == 0 && strings.TrimSpace(out.FirstQuestion) != "" {
		questions = []string{out.FirstQuestion}
	}
	if out.SessionID == "" || len(questions) == 0 {
		return nil, errors.New("init-session response missing session id or questions")
	}

	encoded := out.CurrentAudioBase64
	if encoded == "" {
		encoded = out.AudioBase64
	}
	audio, err := decodeAudio(encoded)
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:           out.SessionID,
		Questions:    questions,
		CurrentIndex: out.CurrentIndex,
		StarStories:  out.StarStories,
		PromptAudio:  audio,
	}, nil
}

// SubmitAnswer uploads one recorded answer and returns the coach feedback.
func (c *Client) SubmitAnswer(ctx context.Context, sessionID string, wav []byte) (*Feedback, error) {
	var out struct {
		Transcription string `json:"transcription"`
		Feedback      struct {
			FeedbackText   string `json:"feedback_text"`
			ImprovementTip string `json:"improvement_tip"`
		} `json:"feedback"`
		AudioBase64 string `json:"audio_base64"`
	}

	err := c.postForm(ctx, "/process-answer", func(w *multipart.Writer) error {
		if err := w.WriteField("session_id", sessionID); err != nil {
			return err
		}
		part, err := w.CreateFormFile("audio_file", "answer.wav")
		if err != nil {
			return err
		}
		_, err = part.Write(wav)
		return err
	}, &out)
	if err != nil {
		return nil, err
	}

	audio, err := decodeAudio(out.AudioBase64)
	if err != nil {
		return nil, err
	}

	return &Feedback{
		Transcription:  out.Transcription,
		FeedbackText:   out.Feedback.FeedbackText,
		ImprovementTip: out.Feedback.ImprovementTip,
		Audio:          audio,
	}, nil
}

// SetQuestion jumps the session to a question index and returns its prompt.
// Requesting the index one past the last question reports completion via
// QuestionPrompt.Finished instead of audio.
func (c *Client) SetQuestion(ctx context.Context, sessionID string, index int) (*QuestionPrompt, error) {
	var out struct {
		Index        int    `json:"index"`
		Question     string `json:"question"`
		NextQuestion string `json:"next_question"`
		AudioBase64  string `json:"audio_base64"`
		IsFinished   bool   `json:"is_finished"`
	}

	err := c.postForm(ctx, "/set-question", func(w *multipart.Writer) error {
		if err := w.WriteField("session_id", sessionID); err != nil {
			return err
		}
		return w.WriteField("index", strconv.Itoa(index))
	}, &out)
	if err != nil {
		return nil, err
	}

	if out.IsFinished {
		return &QuestionPrompt{Index: index, Finished: true}, nil
	}

	question := out.Question
	if question == "" {
		question = out.NextQuestion
	}
	audio, err := decodeAudio(out.AudioBase64)
	if err != nil {
		return nil, err
	}

	return &QuestionPrompt{Index: out.Index, Question: question, Audio: audio}, nil
}

// GenerateReport produces the aggregate performance report for a session.
func (c *Client) GenerateReport(ctx context.Context, sessionID string) (*Report, error) {
	var out struct {
		Report
		Error string `json:"error"`
	}

	err := c.postForm(ctx, "/generate-report", func(w *multipart.Writer) error {
		return w.WriteField("session_id", sessionID)
	}, &out)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(out.Error) != "" {
		return nil, fmt.Errorf("%w: %s", ErrNoAnswers, out.Error)
	}

	report := out.Report
	return &report, nil
}

// postForm sends one multipart POST and decodes the JSON response into out.
func (c *Client) postForm(ctx context.Context, path string, build func(*multipart.Writer) error, out any) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := build(writer); err != nil {
		return fmt.Errorf("build %s form: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize %s form: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logFailure(path, resp.StatusCode, payload)
		return fmt.Errorf("request %s failed: HTTP %d", path, resp.StatusCode)
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// attachFile streams a local file into one multipart form part.
func attachFile(w *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	part, err := w.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copy %s: %w", path, err)
	}
	return nil
}

// decodeAudio converts a base64 payload into raw encoded-audio bytes.
func decodeAudio(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, nil
	}
	audio, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode audio payload: %w", err)
	}
	return audio, nil
}

// logFailure records a failed request body snippet for diagnostics.
func (c *Client) logFailure(path string, status int, body []byte) {
	if c.logger == nil {
		return
	}
	snippet := string(body)
	if len(snippet) > 256 {
		snippet = snippet[:256]
	}
	c.logger.Error("backend request failed", "path", path, "status", status, "body", snippet)
}
