package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Client wraps the Gemini API behind the narrow surface the app needs:
// plain text, search-grounded text, vision, and image generation. Callers
// never see SDK types.
type Client struct {
	c *genai.Client
}

func New(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{c: c}, nil
}

// Citation is one grounding source returned by a search-capable call.
type Citation struct {
	Title string
	URI   string
}

// SearchResult is the payload of a search-grounded generation.
type SearchResult struct {
	Text      string
	Citations []Citation
	// Queries are the web searches the model executed, for diagnostics.
	Queries []string
}

// GenerateText runs a plain text generation.
func (cl *Client) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	resp, err := cl.c.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", Classify(err)
	}
	return resp.Text(), nil
}

// GenerateWithSearch runs a generation with the Google Search tool enabled
// and collects grounding citations from the response.
func (cl *Client) GenerateWithSearch(ctx context.Context, model, prompt string) (SearchResult, error) {
	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}
	resp, err := cl.c.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	if err != nil {
		return SearchResult{}, Classify(err)
	}

	out := SearchResult{Text: resp.Text()}
	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		md := resp.Candidates[0].GroundingMetadata
		out.Queries = md.WebSearchQueries
		for _, chunk := range md.GroundingChunks {
			if chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			title := chunk.Web.Title
			if title == "" {
				title = "Source"
			}
			out.Citations = append(out.Citations, Citation{Title: title, URI: chunk.Web.URI})
		}
	}
	return out, nil
}

// GenerateVision runs a generation over an inline image plus a prompt.
func (cl *Client) GenerateVision(ctx context.Context, model, prompt string, image []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "image/png"
	}
	parts := []*genai.Part{
		genai.NewPartFromBytes(image, mimeType),
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	resp, err := cl.c.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", Classify(err)
	}
	return resp.Text(), nil
}

// GenerateImage asks the image model for a picture. A response without an
// image part returns nil bytes and no error; the caller decides how to
// surface that.
func (cl *Client) GenerateImage(ctx context.Context, model, prompt, aspectRatio string) ([]byte, string, error) {
	cfg := &genai.GenerateContentConfig{}
	if aspectRatio != "" {
		cfg.ImageConfig = &genai.ImageConfig{AspectRatio: aspectRatio}
	}
	resp, err := cl.c.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	if err != nil {
		return nil, "", Classify(err)
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, part.InlineData.MIMEType, nil
			}
		}
	}
	return nil, "", nil
}
