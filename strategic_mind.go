package maestro

import (
	"context"
	"net/url"
	"strconv"
)

// StrategicMindService maps the /strategic-mind prediction and recommendation
// endpoints. Inputs and outputs are loosely shaped maps; the analytics engine
// behind them is opaque to the client.
type StrategicMindService struct {
	api *Client
}

func NewStrategicMindService(api *Client) *StrategicMindService {
	return &StrategicMindService{api: api}
}

// PredictCTR predicts the click-through rate for campaign data. Include a
// campaign_id key to score an existing campaign.
func (s *StrategicMindService) PredictCTR(ctx context.Context, campaignData map[string]any) (map[string]any, error) {
	out := map[string]any{}
	if err := s.api.Post(ctx, "/strategic-mind/predict-ctr", campaignData, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PredictROI predicts the return on investment for campaign data.
func (s *StrategicMindService) PredictROI(ctx context.Context, campaignData map[string]any) (map[string]any, error) {
	out := map[string]any{}
	if err := s.api.Post(ctx, "/strategic-mind/predict-roi", campaignData, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RecommendChannels suggests marketing channels for campaign data.
func (s *StrategicMindService) RecommendChannels(ctx context.Context, campaignData map[string]any) ([]map[string]any, error) {
	var out []map[string]any
	if err := s.api.Post(ctx, "/strategic-mind/recommend-channels", campaignData, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// KnowledgeRuleOptions narrows the rule listing.
type KnowledgeRuleOptions struct {
	RuleType string
	Skip     int
	Limit    int
}

// KnowledgeRules lists the rules in the inference knowledge base.
func (s *StrategicMindService) KnowledgeRules(ctx context.Context, opts KnowledgeRuleOptions) ([]map[string]any, error) {
	q := url.Values{}
	if opts.RuleType != "" {
		q.Set("rule_type", opts.RuleType)
	}
	if opts.Skip > 0 {
		q.Set("skip", strconv.Itoa(opts.Skip))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}

	var out []map[string]any
	if err := s.api.Get(ctx, "/strategic-mind/knowledge-rules", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EvaluateRules runs the knowledge base against a context.
func (s *StrategicMindService) EvaluateRules(ctx context.Context, ruleContext map[string]any, ruleType string) ([]map[string]any, error) {
	body := map[string]any{
		"context":   ruleContext,
		"rule_type": ruleType,
	}

	var out []map[string]any
	if err := s.api.Post(ctx, "/strategic-mind/evaluate-rules", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}
