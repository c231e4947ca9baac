// Package genai provides OpenAI-backed feedback generation and
// structured text analysis. Everything here is optional: callers fall
// back to local composition whenever a call fails, times out, or the
// client is not configured.
package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/reflectlab/JournalPipe/internal/models"
	"github.com/reflectlab/JournalPipe/internal/personality"
)

const (
	defaultModel   = openai.ChatModelGPT4oMini
	defaultTimeout = 10 * time.Second

	// conditionRefLimit caps how much condition reference text goes
	// into the feedback prompt.
	conditionRefLimit = 1000
)

// ErrNoAPIKey is returned by NewClientFromEnv when OPENAI_API_KEY is unset.
var ErrNoAPIKey = errors.New("OPENAI_API_KEY not set")

// caller abstracts the single OpenAI round trip so tests can stub it.
type caller interface {
	call(ctx context.Context, params responses.ResponseNewParams) (string, error)
}

type apiCaller struct {
	client *openai.Client
}

func (a apiCaller) call(ctx context.Context, params responses.ResponseNewParams) (string, error) {
	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return "", err
	}
	return resp.OutputText(), nil
}

// Client generates personality-styled feedback and structured text
// analysis through the OpenAI responses API.
type Client struct {
	caller  caller
	model   string
	timeout time.Duration
	guides  *personality.GuideStore
}

// Option configures a Client.
type Option func(*Client)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTimeout bounds each OpenAI call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithGuides supplies the style-guide store used in feedback prompts.
func WithGuides(gs *personality.GuideStore) Option {
	return func(c *Client) {
		if gs != nil {
			c.guides = gs
		}
	}
}

// NewClient creates a Client with the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	api := openai.NewClient(option.WithAPIKey(apiKey))
	c := &Client{
		caller:  apiCaller{client: &api},
		model:   defaultModel,
		timeout: defaultTimeout,
		guides:  personality.NewGuideStore(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientFromEnv creates a Client from the OPENAI_API_KEY environment
// variable.
func NewClientFromEnv(opts ...Option) (*Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	return NewClient(apiKey, opts...), nil
}

// GenerateFeedback produces personality-styled feedback for an accepted
// answer. The style guide for the personality and the condition
// reference excerpt are embedded in the prompt when available. An empty
// result or an error tells the caller to compose feedback locally.
func (c *Client) GenerateFeedback(ctx context.Context, p models.Personality, condition models.Condition, question, answer string, stepIndex int) (string, error) {
	slog.Debug("Client.GenerateFeedback: requesting feedback", "personality", p, "condition", condition, "step", stepIndex)

	styleGuide, ok := c.guides.StyleGuide(p)
	if !ok {
		slog.Warn("Client.GenerateFeedback: no style guide for personality", "personality", p)
	}

	systemPrompt := "You are a compassionate CBT journaling assistant. Your primary goal is to help the user through a structured CBT session. " +
		"You MUST adopt the following personality style when crafting your response. This style guide is your highest priority. " +
		"Follow all lexical, syntactic, and behavioral patterns described.\n\n" +
		"--- PERSONALITY STYLE GUIDE ---\n" + styleGuide + "\n--- END STYLE GUIDE ---\n\n" +
		"Acknowledge the user's input, provide a brief reflective statement, and encourage them to answer the next question. " +
		"Your response should seamlessly transition to the next step of the CBT flow."

	conditionRef, _ := c.guides.ConditionReference(condition)
	if len(conditionRef) > conditionRefLimit {
		conditionRef = conditionRef[:conditionRefLimit]
	}

	userMsg := fmt.Sprintf("Current CBT Session Context:\n%s\n\n"+
		"The user is on step %d. The current question was: '%s'\n"+
		"The user's answer is: '%s'\n\n"+
		"Now, generate a response that helps the user and perfectly matches the personality style guide.",
		conditionRef, stepIndex+1, question, answer)

	params := responses.ResponseNewParams{
		Model:           c.model,
		MaxOutputTokens: openai.Int(200),
		Instructions:    openai.String(systemPrompt),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(userMsg, responses.EasyInputMessageRoleUser),
			},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := c.caller.call(ctx, params)
	if err != nil {
		slog.Warn("Client.GenerateFeedback: request failed", "error", err)
		return "", fmt.Errorf("failed to generate feedback: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// TextAnalysis is the structured extraction result.
type TextAnalysis struct {
	Sentiment string   `json:"sentiment" jsonschema:"enum=positive,enum=neutral,enum=negative"`
	Keywords  []string `json:"keywords" jsonschema_description:"Up to three main keywords from the text"`
}

var textAnalysisSchema = GenerateSchema[TextAnalysis]()

// AnalyzeText extracts sentiment and up to three keywords from user
// text via a strict JSON schema response. Errors leave the caller on
// the local analysis path.
func (c *Client) AnalyzeText(ctx context.Context, text string) (models.Sentiment, []string, error) {
	slog.Debug("Client.AnalyzeText: requesting analysis", "chars", len(text))

	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "TextAnalysis",
			Schema:      textAnalysisSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Sentiment and keyword extraction JSON"),
			Type:        "json_schema",
		},
	}

	params := responses.ResponseNewParams{
		Model:           c.model,
		MaxOutputTokens: openai.Int(100),
		Instructions: openai.String("You are a helpful assistant that extracts sentiment (positive, neutral, negative) " +
			"and 3 main keywords from user text."),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(text, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.caller.call(ctx, params)
	if err != nil {
		slog.Warn("Client.AnalyzeText: request failed", "error", err)
		return "", nil, fmt.Errorf("failed to analyze text: %w", err)
	}

	var out TextAnalysis
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return "", nil, fmt.Errorf("failed to decode analysis response: %w", err)
	}

	sentiment := models.Sentiment(out.Sentiment)
	switch sentiment {
	case models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative:
	default:
		sentiment = models.SentimentNeutral
	}
	if len(out.Keywords) > 3 {
		out.Keywords = out.Keywords[:3]
	}
	return sentiment, out.Keywords, nil
}
