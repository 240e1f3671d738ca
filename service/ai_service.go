package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"student-loan-calc/domain"
	"student-loan-calc/format"
)

const (
	defaultLLMURL   = "https://api.openai.com/v1/chat/completions"
	defaultLLMModel = "gpt-4o-mini"
)

// ExplanationService writes a short plain-English summary of an estimate.
// Without an API key it always uses the built-in template.
type ExplanationService struct {
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	httpClient *http.Client
	log        logrus.FieldLogger
}

type OpenAIRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func NewExplanationService(apiKey, apiURL string, logger logrus.FieldLogger) *ExplanationService {
	if apiURL == "" {
		apiURL = defaultLLMURL
	}
	return &ExplanationService{
		apiKey:  apiKey,
		apiURL:  apiURL,
		model:   defaultLLMModel,
		enabled: apiKey != "",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: logger.WithField("component", "explanation"),
	}
}

func (s *ExplanationService) ExplainEstimate(ctx context.Context, summary domain.ProjectionSummary) string {
	if !s.enabled {
		return fallbackExplanation(summary)
	}

	outcome := fmt.Sprintf("The loan is never fully repaid; %s is written off after %d months.",
		format.GBP(summary.WrittenOff), summary.Months)
	if summary.State == domain.StatePaidOff {
		outcome = fmt.Sprintf("The loan is fully repaid after %d months (%.1f years).",
			summary.PaidOffAtMonth, summary.PaidOffYears)
	}

	prompt := fmt.Sprintf(`Explain this UK student loan projection to a graduate in 3-4 plain sentences.

PLAN: %s
ASSUMED INTEREST RATE: %s
FIRST MONTHLY REPAYMENT: %s
TOTAL REPAID: %s
TOTAL INTEREST ADDED: %s
OUTCOME: %s

Explain that repayments depend on income above the threshold, not on the balance,
and say whether the balance or the salary matters more in this case. Do not give
personal financial advice.`,
		summary.PlanName, summary.Display.InterestRate, summary.Display.FirstMonthlyRepayment,
		summary.Display.TotalRepaid, summary.Display.TotalInterest, outcome)

	explanation, err := s.callLLM(ctx, prompt)
	if err != nil {
		s.log.WithError(err).Warn("explanation request failed, using template")
		return fallbackExplanation(summary)
	}
	return explanation
}

func (s *ExplanationService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := OpenAIRequest{
		Model: s.model,
		Messages: []Message{
			{
				Role:    "system",
				Content: "You explain UK student loan repayments clearly and accurately. You use pounds sterling and never recommend specific financial products.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 250,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var openAIResp OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return "", err
	}

	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("no response from AI")
	}

	return openAIResp.Choices[0].Message.Content, nil
}

func fallbackExplanation(summary domain.ProjectionSummary) string {
	lead := fmt.Sprintf("On %s you would start repaying %s a month, based on your income above the repayment threshold.",
		summary.PlanName, summary.Display.FirstMonthlyRepayment)

	switch summary.State {
	case domain.StatePaidOff:
		return fmt.Sprintf("%s At an assumed interest rate of %s you clear the loan after %.1f years, repaying %s in total.",
			lead, summary.Display.InterestRate, summary.PaidOffYears, summary.Display.TotalRepaid)
	default:
		return fmt.Sprintf("%s At an assumed interest rate of %s you repay %s before the remaining %s is written off, so the amount you pay depends more on your salary than on the balance.",
			lead, summary.Display.InterestRate, summary.Display.TotalRepaid, summary.Display.WrittenOff)
	}
}
