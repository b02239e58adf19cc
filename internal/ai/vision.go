package ai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"
)

// VisionQuerier implements bot.Vision using Ollama's generate endpoint. The
// call is single-shot: no history is replayed, the prompt and base64-encoded
// image travel in the same request.
type VisionQuerier struct {
	client *api.Client
	model  string
}

// NewVisionQuerier creates an image model client for the given server and
// model.
func NewVisionQuerier(host, model string) (*VisionQuerier, error) {
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}

	return &VisionQuerier{
		client: api.NewClient(base, http.DefaultClient),
		model:  model,
	}, nil
}

// Describe implements bot.Vision.
func (q *VisionQuerier) Describe(
	ctx context.Context, prompt string, image []byte,
) (string, error) {
	streamFalse := false
	req := &api.GenerateRequest{
		Model:  q.model,
		Prompt: prompt,
		Images: []api.ImageData{image},
		Stream: &streamFalse,
	}

	var result string
	resFn := func(resp api.GenerateResponse) error {
		result = resp.Response
		return nil
	}

	if err := q.client.Generate(ctx, req, resFn); err != nil {
		return "", fmt.Errorf("vision generate error: %w", err)
	}

	return result, nil
}
