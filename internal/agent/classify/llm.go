package classify

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/shopassist-poc/server/internal/agent/model"
	logx "github.com/shopassist-poc/server/pkg/logger"
)

//go:embed template/intent_prompt.txt
var intentSystemPrompt string

// LLMConfig holds everything needed to construct the Gemini-backed classifier.
type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   model.ClassifierModelConfig
}

// LLMClassifier classifies intents with a chat model constrained to emit a
// single label. Requests run at the configured temperature (zero by default)
// and are bounded by a per-call timeout; callers wrap it in WithFallback.
type LLMClassifier struct {
	cm        einomodel.BaseChatModel
	modelName string
	timeout   time.Duration
}

// NewLLMClassifier builds the Gemini chat model and returns a classifier over it.
func NewLLMClassifier(ctx context.Context, cfg LLMConfig) (*LLMClassifier, error) {
	timeout, err := time.ParseDuration(cfg.Model.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid classifier timeout %q: %w", cfg.Model.Timeout, err)
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	cm, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Model.Model,
		Temperature: &cfg.Model.Temperature,
		MaxTokens:   &cfg.Model.MaxTokens,
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: false,
			ThinkingBudget:  genai.Ptr(int32(0)),
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating classifier model")
		return nil, fmt.Errorf("error creating classifier model: %w", err)
	}

	return &LLMClassifier{cm: cm, modelName: cfg.Model.Model, timeout: timeout}, nil
}

// NewLLMClassifierWithModel wires an already-built chat model, mainly for tests.
func NewLLMClassifierWithModel(cm einomodel.BaseChatModel, modelName string, timeout time.Duration) *LLMClassifier {
	return &LLMClassifier{cm: cm, modelName: modelName, timeout: timeout}
}

// Classify runs the constrained classification call. Any transport failure,
// timeout or off-vocabulary label is returned as an error for the fallback
// wrapper to absorb.
func (c *LLMClassifier) Classify(ctx context.Context, query string) (model.Intent, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	messages := []*schema.Message{
		schema.SystemMessage(renderIntentPrompt()),
		schema.UserMessage(fmt.Sprintf("Classify this user query: %q", query)),
	}

	out, err := c.cm.Generate(ctx, messages)
	if err != nil {
		return model.IntentOther, fmt.Errorf("classifier generate: %w", err)
	}
	if out == nil {
		return model.IntentOther, fmt.Errorf("classifier returned nil message")
	}

	c.logUsage(out)

	return parseIntentLabel(out.Content)
}

func renderIntentPrompt() string {
	return strings.NewReplacer(
		"{intent_labels}", strings.Join([]string{
			model.IntentProductAssist.String(),
			model.IntentOrderHelp.String(),
			model.IntentOther.String(),
		}, ", "),
	).Replace(intentSystemPrompt)
}

// maxLabelLen guards against models that ignore the no-other-text instruction.
const maxLabelLen = 64

func parseIntentLabel(content string) (model.Intent, error) {
	label := strings.TrimSpace(content)
	if label == "" || len(label) > maxLabelLen {
		return model.IntentOther, fmt.Errorf("classifier label malformed: %q", truncate(content, maxLabelLen))
	}
	label = strings.ToLower(strings.TrimRight(label, "."))

	intent, ok := model.ParseIntent(label)
	if !ok {
		return model.IntentOther, fmt.Errorf("classifier label unknown: %q", label)
	}
	return intent, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func (c *LLMClassifier) logUsage(out *schema.Message) {
	if out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
		return
	}
	usage := out.ResponseMeta.Usage
	pricing := model.ResolvePricing(c.modelName)
	inC, outC, totalC := model.ComputeCost(usage, pricing)
	logx.Debug().
		Str("model", c.modelName).
		Int("prompt_tokens", usage.PromptTokens).
		Int("completion_tokens", usage.CompletionTokens).
		Int("total_tokens", usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", totalC).
		Msg("LLM usage")
}
