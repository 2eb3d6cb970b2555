package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hireflow/hireflow-backend/internal/domain"
	"github.com/hireflow/hireflow-backend/pkg/logger"
)

// AIService calls the external text-generation collaborator. It is treated
// as fallible and slow: every failure degrades to an empty result so manual
// messaging is never blocked.
type AIService interface {
	InterviewInvitation(ctx context.Context, candidate *domain.Candidate, job *domain.Job) (string, error)
	SuggestedReplies(ctx context.Context, transcript []*domain.Message, candidate *domain.Candidate, job *domain.Job) ([]string, error)
}

type aiService struct {
	proxyURL   string // OpenAI-compatible base URL
	proxyKey   string
	model      string
	httpClient *http.Client
}

// NewAIService creates a new AIService
func NewAIService(proxyURL, proxyKey, model string) AIService {
	return &aiService{
		proxyURL: proxyURL,
		proxyKey: proxyKey,
		model:    model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// InterviewInvitation generates a short invitation message for an approved
// candidate. An empty string with nil error means "no suggestion available".
func (s *aiService) InterviewInvitation(ctx context.Context, candidate *domain.Candidate, job *domain.Job) (string, error) {
	jobTitle := "the position"
	if job != nil {
		jobTitle = job.Title
	}
	prompt := fmt.Sprintf(
		"Write a short, friendly message inviting the candidate %s to schedule an interview for %s. "+
			"Two sentences at most, no subject line, no signature.",
		candidate.Name, jobTitle)

	text, err := s.complete(ctx, prompt)
	if err != nil {
		logger.GetLogger().Warn().Err(err).Msg("ai invitation generation failed")
		return "", nil
	}
	return strings.TrimSpace(text), nil
}

// SuggestedReplies proposes up to three short replies for the recruiter
// based on the conversation so far. Failures return an empty list.
func (s *aiService) SuggestedReplies(ctx context.Context, transcript []*domain.Message, candidate *domain.Candidate, job *domain.Job) ([]string, error) {
	var sb strings.Builder
	sb.WriteString("You are assisting a recruiter chatting with a job candidate")
	if candidate != nil {
		fmt.Fprintf(&sb, " named %s", candidate.Name)
	}
	if job != nil {
		fmt.Fprintf(&sb, " applying for %s", job.Title)
	}
	sb.WriteString(".\nConversation so far:\n")
	for _, m := range transcript {
		if m.IsDeleted {
			continue
		}
		fmt.Fprintf(&sb, "[%s] %s\n", m.SenderID, m.Text)
	}
	sb.WriteString("\nSuggest up to 3 short replies the recruiter could send next, one per line, no numbering.")

	text, err := s.complete(ctx, sb.String())
	if err != nil {
		logger.GetLogger().Warn().Err(err).Msg("ai reply suggestion failed")
		return nil, nil
	}

	var replies []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			replies = append(replies, line)
		}
		if len(replies) == 3 {
			break
		}
	}
	return replies, nil
}

func (s *aiService) complete(ctx context.Context, prompt string) (string, error) {
	if s.proxyURL == "" {
		return "", fmt.Errorf("ai proxy not configured")
	}

	body, err := json.Marshal(chatRequest{
		Model:    s.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(s.proxyURL, "/")+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.proxyKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.proxyKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("ai proxy status %d: %s", resp.StatusCode, string(data))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("ai proxy returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
