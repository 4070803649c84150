// internal/pkg/gemini/generator.go
package gemini

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

type genaiGenerator struct {
	client *genai.Client
	model  string
}

func (g *genaiGenerator) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return "", err
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("empty model response")
	}
	return text, nil
}
