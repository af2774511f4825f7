package classify

import (
	"context"
	"errors"
	"testing"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopassist-poc/server/internal/agent/model"
)

func TestHeuristicIntent(t *testing.T) {
	tests := []struct {
		query string
		want  model.Intent
	}{
		{"Cancel order A1001 (email: rehan@example.com)", model.IntentOrderHelp},
		{"where is my ORDER", model.IntentOrderHelp},
		{"tracking update please", model.IntentOrderHelp},
		// order keywords win over product keywords
		{"cancel the wedding dress order", model.IntentOrderHelp},
		{"Wedding guest dress under $100, size M", model.IntentProductAssist},
		{"what size should I get", model.IntentProductAssist},
		{"show me a product", model.IntentProductAssist},
		{"Can you give me a discount code?", model.IntentOther},
		{"", model.IntentOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HeuristicIntent(tt.query), "query %q", tt.query)
	}
}

type stubClassifier struct {
	intent model.Intent
	err    error
}

func (s *stubClassifier) Classify(ctx context.Context, query string) (model.Intent, error) {
	return s.intent, s.err
}

func TestWithFallback(t *testing.T) {
	ctx := context.Background()

	// service result passes through untouched
	c := WithFallback(&stubClassifier{intent: model.IntentOrderHelp})
	intent, err := c.Classify(ctx, "a dress for a wedding")
	require.NoError(t, err)
	assert.Equal(t, model.IntentOrderHelp, intent)

	// service failure falls through to the heuristic, without surfacing the error
	c = WithFallback(&stubClassifier{err: errors.New("transport down")})
	intent, err = c.Classify(ctx, "a dress for a wedding")
	require.NoError(t, err)
	assert.Equal(t, model.IntentProductAssist, intent)

	// nil service means heuristic-only operation
	c = WithFallback(nil)
	intent, err = c.Classify(ctx, "cancel order A1001")
	require.NoError(t, err)
	assert.Equal(t, model.IntentOrderHelp, intent)
}

func TestParseIntentLabel(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    model.Intent
		wantErr bool
	}{
		{"exact label", "product_assist", model.IntentProductAssist, false},
		{"whitespace and case", "  Order_Help \n", model.IntentOrderHelp, false},
		{"trailing period", "other.", model.IntentOther, false},
		{"unknown label", "greeting", model.IntentOther, true},
		{"empty", "", model.IntentOther, true},
		{"rambling output", "Sure! Based on the query, I would classify this as product_assist because the user is asking about dresses.", model.IntentOther, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIntentLabel(tt.content)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

type stubChatModel struct {
	content  string
	err      error
	messages []*schema.Message
}

func (s *stubChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	s.messages = input
	if s.err != nil {
		return nil, s.err
	}
	return schema.AssistantMessage(s.content, nil), nil
}

func (s *stubChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

func TestLLMClassifier(t *testing.T) {
	ctx := context.Background()

	cm := &stubChatModel{content: "order_help"}
	c := NewLLMClassifierWithModel(cm, "gemini-2.5-flash-lite", time.Second)

	intent, err := c.Classify(ctx, "cancel my order")
	require.NoError(t, err)
	assert.Equal(t, model.IntentOrderHelp, intent)

	// the prompt carries the full label vocabulary and the raw query
	require.Len(t, cm.messages, 2)
	assert.Equal(t, schema.System, cm.messages[0].Role)
	assert.Contains(t, cm.messages[0].Content, "product_assist, order_help, other")
	assert.Contains(t, cm.messages[1].Content, `"cancel my order"`)

	// transport failures surface as errors for the fallback wrapper
	c = NewLLMClassifierWithModel(&stubChatModel{err: errors.New("boom")}, "gemini-2.5-flash-lite", time.Second)
	_, err = c.Classify(ctx, "cancel my order")
	require.Error(t, err)

	// off-vocabulary labels are errors, not silently mapped
	c = NewLLMClassifierWithModel(&stubChatModel{content: "complaint"}, "gemini-2.5-flash-lite", time.Second)
	_, err = c.Classify(ctx, "cancel my order")
	require.Error(t, err)
}
