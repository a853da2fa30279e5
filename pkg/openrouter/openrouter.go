package openrouter

import (
	"context"
	"fmt"
	"strings"
	"time"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
)

type Config struct {
	BaseURL  string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey   string        `envconfig:"API_KEY" split_words:"true"`
	Model    string        `envconfig:"MODEL" split_words:"true" default:"meta-llama/llama-3.3-70b-instruct:free"`
	Timeout  time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL  string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName string        `envconfig:"SITE_NAME" split_words:"true"`
}

// Client is the OpenRouter-backed transport. A client built without an API
// key is valid but unconfigured: Configured() reports false and the caller
// short-circuits to its offline reply instead of attempting a request.
type Client struct {
	api   *openaisdk.Client
	model string
}

var _ contractx.Transport = (*Client)(nil)

// NewClient creates an OpenAI SDK client pointed at OpenRouter. The API
// key is deliberately not required; a missing key yields an unconfigured
// client rather than an error.
func NewClient(cfg Config, extra ...option.RequestOption) *Client {
	c := &Client{model: strings.TrimSpace(cfg.Model)}

	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return c
	}

	opts := []option.RequestOption{
		option.WithAPIKey(key),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if trimmed := strings.TrimRight(cfg.BaseURL, "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}

	// OpenRouter attribution headers
	if cfg.SiteURL != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", cfg.SiteURL))
	}
	if cfg.SiteName != "" {
		opts = append(opts, option.WithHeader("X-Title", cfg.SiteName))
	}
	opts = append(opts, extra...)

	api := openaisdk.NewClient(opts...)
	c.api = &api
	return c
}

func (c *Client) Configured() bool {
	return c.api != nil
}

// Complete sends one chat completion round trip and returns the raw text
// of the first choice. Message order matters to the model: system
// instruction, condensed history, the user turn (with an optional inline
// image), then the JSON nudge.
func (c *Client) Complete(ctx context.Context, req contractx.TransportRequest) (string, error) {
	if c.api == nil {
		return "", fmt.Errorf("%w: client is not configured", contractx.ErrModelInvoke)
	}

	messages := []openaisdk.ChatCompletionMessageParamUnion{
		openaisdk.SystemMessage(req.SystemInstruction),
	}
	if len(req.History) > 0 {
		messages = append(messages, openaisdk.UserMessage("Previous Context:\n"+strings.Join(req.History, "\n")))
	}

	if req.ImageBase64 != "" {
		parts := []openaisdk.ChatCompletionContentPartUnionParam{
			openaisdk.TextContentPart(req.UserMessage),
			openaisdk.ImageContentPart(openaisdk.ChatCompletionContentPartImageImageURLParam{
				URL: req.ImageBase64,
			}),
		}
		messages = append(messages, openaisdk.UserMessage(parts))
	} else {
		messages = append(messages, openaisdk.UserMessage(req.UserMessage))
	}

	messages = append(messages, openaisdk.UserMessage("Respond in valid JSON."))

	completion, err := c.api.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model:    openaisdk.ChatModel(c.model),
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty completion", contractx.ErrModelInvoke)
	}

	return completion.Choices[0].Message.Content, nil
}
