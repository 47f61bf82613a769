package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"slotbook/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const guessPrompt = `You extract scheduling intent from short free-form text.
The reference moment is %s (local time, week starts on Monday).
Reply with exactly one JSON object and nothing else, using these fields:
{"date":"YYYY-MM-DD","startTime":"HH:mm","durationMinutes":30,"title":"..."}
Omit any field you cannot infer from the text. Do not invent a date or time.
Text: %q`

// GeminiOracle asks a Gemini model for a structured slot guess.
type GeminiOracle struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiOracle(ctx context.Context, apiKey string) (*GeminiOracle, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel("models/gemini-1.5-pro")
	return &GeminiOracle{client: client, model: model}, nil
}

func (g *GeminiOracle) Close() error {
	return g.client.Close()
}

func (g *GeminiOracle) Propose(ctx context.Context, freeText string, now time.Time) (*models.SlotGuess, error) {
	prompt := fmt.Sprintf(guessPrompt, now.Format("Monday 2006-01-02 15:04"), freeText)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, models.ErrOracleUnparseable
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return parseGuess(sb.String())
}

// parseGuess pulls the first JSON object out of a model reply. Replies are
// untrusted: fenced code blocks, prose around the object, or no object at all
// are expected inputs.
func parseGuess(reply string) (*models.SlotGuess, error) {
	open := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if open < 0 || end <= open {
		return nil, models.ErrOracleUnparseable
	}
	var guess models.SlotGuess
	if err := json.Unmarshal([]byte(reply[open:end+1]), &guess); err != nil {
		return nil, models.ErrOracleUnparseable
	}
	return &guess, nil
}
