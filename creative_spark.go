package maestro

import (
	"context"
	"io"
	"net/url"
)

// CreativeSparkService maps the /creative-spark content generation endpoints.
type CreativeSparkService struct {
	api *Client
}

func NewCreativeSparkService(api *Client) *CreativeSparkService {
	return &CreativeSparkService{api: api}
}

// GenerateAdCopy produces ad copy variants for campaign data. contentType
// defaults to "ad_copy" server-side when empty.
func (s *CreativeSparkService) GenerateAdCopy(ctx context.Context, campaignData map[string]any, contentType string) ([]map[string]any, error) {
	q := url.Values{}
	if contentType != "" {
		q.Set("content_type", contentType)
	}

	var out []map[string]any
	if err := s.api.PostQuery(ctx, "/creative-spark/generate-ad-copy", q, campaignData, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GenerateVisualSuggestions produces visual direction suggestions.
func (s *CreativeSparkService) GenerateVisualSuggestions(ctx context.Context, campaignData map[string]any) ([]map[string]any, error) {
	var out []map[string]any
	if err := s.api.Post(ctx, "/creative-spark/generate-visual-suggestions", campaignData, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AnalyzeImage uploads an image for creative analysis.
func (s *CreativeSparkService) AnalyzeImage(ctx context.Context, fileName string, image io.Reader) (map[string]any, error) {
	out := map[string]any{}
	if err := s.api.PostMultipart(ctx, "/creative-spark/analyze-image", nil, "file", fileName, image, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AnalyzeTrends reports trend signals relevant to campaign data.
func (s *CreativeSparkService) AnalyzeTrends(ctx context.Context, campaignData map[string]any) (map[string]any, error) {
	out := map[string]any{}
	if err := s.api.Post(ctx, "/creative-spark/analyze-trends", campaignData, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ContentTemplateOptions narrows the template listing.
type ContentTemplateOptions struct {
	ContentType string
	Channel     string
}

// ContentTemplates lists reusable content templates.
func (s *CreativeSparkService) ContentTemplates(ctx context.Context, opts ContentTemplateOptions) ([]map[string]any, error) {
	q := url.Values{}
	if opts.ContentType != "" {
		q.Set("content_type", opts.ContentType)
	}
	if opts.Channel != "" {
		q.Set("channel", opts.Channel)
	}

	var out []map[string]any
	if err := s.api.Get(ctx, "/creative-spark/content-templates", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
