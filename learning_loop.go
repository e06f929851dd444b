package maestro

import (
	"context"
	"net/url"
	"strconv"
)

// LearningLoopService maps the /learning-loop feedback endpoints.
type LearningLoopService struct {
	api *Client
}

func NewLearningLoopService(api *Client) *LearningLoopService {
	return &LearningLoopService{api: api}
}

// SaveRecommendationFeedback records user feedback on a recommendation.
func (s *LearningLoopService) SaveRecommendationFeedback(ctx context.Context, recommendationID int64, feedback map[string]any) (bool, error) {
	q := url.Values{}
	q.Set("recommendation_id", strconv.FormatInt(recommendationID, 10))

	out := map[string]bool{}
	if err := s.api.PostQuery(ctx, "/learning-loop/save-recommendation-feedback", q, feedback, &out); err != nil {
		return false, err
	}
	return out["success"], nil
}

// RecommendationFeedbackStats aggregates feedback, optionally scoped to one
// campaign (campaignID <= 0 means all campaigns).
func (s *LearningLoopService) RecommendationFeedbackStats(ctx context.Context, campaignID int64) (map[string]any, error) {
	q := url.Values{}
	if campaignID > 0 {
		q.Set("campaign_id", strconv.FormatInt(campaignID, 10))
	}

	out := map[string]any{}
	if err := s.api.Get(ctx, "/learning-loop/recommendation-feedback-stats", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CollectUserInteractions ships interaction telemetry to the learning loop.
func (s *LearningLoopService) CollectUserInteractions(ctx context.Context, interaction map[string]any) (bool, error) {
	out := map[string]bool{}
	if err := s.api.Post(ctx, "/learning-loop/collect-user-interactions", interaction, &out); err != nil {
		return false, err
	}
	return out["success"], nil
}

// FeedbackTrends analyzes feedback over the trailing window; days defaults to
// 30 when zero.
func (s *LearningLoopService) FeedbackTrends(ctx context.Context, days int) (map[string]any, error) {
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}

	out := map[string]any{}
	if err := s.api.Get(ctx, "/learning-loop/analyze-feedback-trends", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
