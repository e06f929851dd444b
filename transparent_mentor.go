package maestro

import (
	"context"
	"net/url"
	"strconv"
)

// TransparentMentorService maps the /transparent-mentor explainability
// endpoints.
type TransparentMentorService struct {
	api *Client
}

func NewTransparentMentorService(api *Client) *TransparentMentorService {
	return &TransparentMentorService{api: api}
}

// ExplainPrediction explains a prediction produced by the named model type.
func (s *TransparentMentorService) ExplainPrediction(ctx context.Context, predictionData map[string]any, modelType string) ([]map[string]any, error) {
	q := url.Values{}
	q.Set("model_type", modelType)

	var out []map[string]any
	if err := s.api.PostQuery(ctx, "/transparent-mentor/explain-prediction", q, predictionData, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExplainRecommendation explains a recommendation of the named type.
func (s *TransparentMentorService) ExplainRecommendation(ctx context.Context, recommendationData map[string]any, recommendationType string) (map[string]any, error) {
	q := url.Values{}
	q.Set("recommendation_type", recommendationType)

	out := map[string]any{}
	if err := s.api.PostQuery(ctx, "/transparent-mentor/explain-recommendation", q, recommendationData, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AlternativeScenarios generates what-if scenarios around a base input.
// numScenarios defaults to 3 when zero.
func (s *TransparentMentorService) AlternativeScenarios(ctx context.Context, baseData map[string]any, scenarioType string, numScenarios int) ([]map[string]any, error) {
	q := url.Values{}
	q.Set("scenario_type", scenarioType)
	if numScenarios > 0 {
		q.Set("num_scenarios", strconv.Itoa(numScenarios))
	}

	var out []map[string]any
	if err := s.api.PostQuery(ctx, "/transparent-mentor/generate-alternative-scenarios", q, baseData, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// VisualizationConfig produces a chart configuration for the given data.
func (s *TransparentMentorService) VisualizationConfig(ctx context.Context, data map[string]any, visualizationType string) (map[string]any, error) {
	q := url.Values{}
	q.Set("visualization_type", visualizationType)

	out := map[string]any{}
	if err := s.api.PostQuery(ctx, "/transparent-mentor/generate-visualization-config", q, data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecisionPathVisualization renders the decision path behind an inference.
func (s *TransparentMentorService) DecisionPathVisualization(ctx context.Context, decisionPath []map[string]any) (map[string]any, error) {
	out := map[string]any{}
	if err := s.api.Post(ctx, "/transparent-mentor/generate-decision-path-visualization", decisionPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ComparisonVisualization renders a scenario comparison across metrics.
func (s *TransparentMentorService) ComparisonVisualization(ctx context.Context, scenarios []map[string]any, metrics []string) (map[string]any, error) {
	body := map[string]any{
		"scenarios": scenarios,
		"metrics":   metrics,
	}

	out := map[string]any{}
	if err := s.api.Post(ctx, "/transparent-mentor/generate-comparison-visualization", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}
