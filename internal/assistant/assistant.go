// Package assistant asks a generative text model for task suggestions and
// note clean-ups.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	log "github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// ErrMissingAPIKey is returned by every call when no credential is configured.
var ErrMissingAPIKey = errors.New("API key missing")

// Enhancement is a rewritten note.
type Enhancement struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// generator is the subset of *genai.Models used here.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var (
	suggestionsSchema = jsonschema.MustCompileString("suggestions.json", `{
		"type": "array",
		"items": {"type": "string"}
	}`)
	enhancementSchema = jsonschema.MustCompileString("enhancement.json", `{
		"type": "object",
		"required": ["title", "content"],
		"properties": {
			"title": {"type": "string"},
			"content": {"type": "string"}
		}
	}`)
)

// Client is a stateless request/response wrapper. A Client without an API
// key is valid and fails every call with ErrMissingAPIKey.
type Client struct {
	models generator
	model  string
}

// New builds a Client for the Gemini API.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if model == "" {
		model = DefaultModel
	}
	if apiKey == "" {
		log.Warn("API key is missing, assistant features will not work")
		return &Client{model: model}, nil
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{models: c.Models, model: model}, nil
}

func newWithGenerator(g generator, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{models: g, model: model}
}

// SuggestTasks returns concise to-do items for a category name.
func (c *Client) SuggestTasks(ctx context.Context, categoryName string) ([]string, error) {
	prompt := fmt.Sprintf("Suggest 5 concise, actionable to-do items for a category named %q. Return only the tasks.", categoryName)
	text, err := c.generate(ctx, prompt, &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	})
	if err != nil {
		return nil, err
	}
	if text == "" {
		return []string{}, nil
	}
	if err := validate(suggestionsSchema, text); err != nil {
		return nil, err
	}

	var raw []string
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w", err)
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// EnhanceNote fixes grammar, tightens the content and may propose a better
// title. An empty model answer leaves the note as it was.
func (c *Client) EnhanceNote(ctx context.Context, title, content string) (Enhancement, error) {
	prompt := fmt.Sprintf(`Improve the following note. Fix grammar, make it more concise, and suggest a better title if necessary.

Current Title: %s
Current Content: %s`, title, content)
	text, err := c.generate(ctx, prompt, &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":   {Type: genai.TypeString},
			"content": {Type: genai.TypeString},
		},
		Required: []string{"title", "content"},
	})
	if err != nil {
		return Enhancement{}, err
	}
	if text == "" {
		return Enhancement{Title: title, Content: content}, nil
	}
	if err := validate(enhancementSchema, text); err != nil {
		return Enhancement{}, err
	}

	var e Enhancement
	if err := json.Unmarshal([]byte(text), &e); err != nil {
		return Enhancement{}, fmt.Errorf("decode enhancement: %w", err)
	}
	return e, nil
}

func (c *Client) generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	if c.models == nil {
		return "", ErrMissingAPIKey
	}
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		log.WithError(err).WithField("model", c.model).Error("Generate content failed")
		return "", fmt.Errorf("generate content: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

func validate(schema *jsonschema.Schema, text string) error {
	var v interface{}
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return fmt.Errorf("model returned invalid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("model response does not match schema: %w", err)
	}
	return nil
}
