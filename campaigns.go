package maestro

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// CampaignsService maps the /campaigns endpoints (campaigns plus their nested
// contents and recommendations) onto typed calls.
type CampaignsService struct {
	api *Client
}

func NewCampaignsService(api *Client) *CampaignsService {
	return &CampaignsService{api: api}
}

// CampaignListOptions narrows the campaign listing.
type CampaignListOptions struct {
	Skip   int
	Limit  int
	Status CampaignStatus
}

func (o CampaignListOptions) query() url.Values {
	q := url.Values{}
	if o.Skip > 0 {
		q.Set("skip", strconv.Itoa(o.Skip))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	return q
}

// List returns the current user's campaigns.
func (s *CampaignsService) List(ctx context.Context, opts CampaignListOptions) ([]Campaign, error) {
	var campaigns []Campaign
	if err := s.api.Get(ctx, "/campaigns", opts.query(), &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

// Get returns a campaign with its contents and recommendations.
func (s *CampaignsService) Get(ctx context.Context, id int64) (*Campaign, error) {
	campaign := &Campaign{}
	if err := s.api.Get(ctx, fmt.Sprintf("/campaigns/%d", id), nil, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// CampaignPayload creates or replaces campaign attributes.
type CampaignPayload struct {
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	Status         CampaignStatus `json:"status,omitempty"`
	Budget         float64        `json:"budget,omitempty"`
	StartDate      *time.Time     `json:"start_date,omitempty"`
	EndDate        *time.Time     `json:"end_date,omitempty"`
	TargetAudience map[string]any `json:"target_audience,omitempty"`
	Channels       []string       `json:"channels,omitempty"`
}

// Validate will validate the payload
func (p CampaignPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Budget, validation.Min(0.0)),
		validation.Field(&p.Status, validation.In(
			CampaignDraft, CampaignActive, CampaignPaused, CampaignCompleted,
		)),
	)
}

// Create creates a campaign owned by the current user.
func (s *CampaignsService) Create(ctx context.Context, payload CampaignPayload) (*Campaign, error) {
	campaign := &Campaign{}
	if err := s.api.Post(ctx, "/campaigns", payload, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// Update applies a partial campaign update.
func (s *CampaignsService) Update(ctx context.Context, id int64, payload CampaignPayload) (*Campaign, error) {
	campaign := &Campaign{}
	if err := s.api.Put(ctx, fmt.Sprintf("/campaigns/%d", id), payload, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// Delete removes a campaign.
func (s *CampaignsService) Delete(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, fmt.Sprintf("/campaigns/%d", id), nil)
}

// ContentPayload creates or updates a content record under a campaign.
type ContentPayload struct {
	Title       string         `json:"title"`
	ContentType string         `json:"content_type"`
	ContentData string         `json:"content_data"`
	Channel     string         `json:"channel"`
	Status      string         `json:"status,omitempty"`
	Performance map[string]any `json:"performance,omitempty"`
	CampaignID  int64          `json:"campaign_id,omitempty"`
}

// Contents lists a campaign's creative assets.
func (s *CampaignsService) Contents(ctx context.Context, campaignID int64) ([]Content, error) {
	var contents []Content
	if err := s.api.Get(ctx, fmt.Sprintf("/campaigns/%d/contents", campaignID), nil, &contents); err != nil {
		return nil, err
	}
	return contents, nil
}

// CreateContent attaches a creative asset to a campaign.
func (s *CampaignsService) CreateContent(ctx context.Context, campaignID int64, payload ContentPayload) (*Content, error) {
	payload.CampaignID = campaignID
	content := &Content{}
	if err := s.api.Post(ctx, fmt.Sprintf("/campaigns/%d/contents", campaignID), payload, content); err != nil {
		return nil, err
	}
	return content, nil
}

// UpdateContent applies a partial content update.
func (s *CampaignsService) UpdateContent(ctx context.Context, campaignID, contentID int64, payload ContentPayload) (*Content, error) {
	content := &Content{}
	path := fmt.Sprintf("/campaigns/%d/contents/%d", campaignID, contentID)
	if err := s.api.Put(ctx, path, payload, content); err != nil {
		return nil, err
	}
	return content, nil
}

// DeleteContent removes a creative asset.
func (s *CampaignsService) DeleteContent(ctx context.Context, campaignID, contentID int64) error {
	return s.api.Delete(ctx, fmt.Sprintf("/campaigns/%d/contents/%d", campaignID, contentID), nil)
}

// RecommendationPayload creates or updates a recommendation under a campaign.
type RecommendationPayload struct {
	RecommendationType string         `json:"recommendation_type,omitempty"`
	RecommendationData map[string]any `json:"recommendation_data,omitempty"`
	Explanation        string         `json:"explanation,omitempty"`
	IsApplied          *bool          `json:"is_applied,omitempty"`
	Feedback           *int           `json:"feedback,omitempty"`
	CampaignID         int64          `json:"campaign_id,omitempty"`
}

// Recommendations lists a campaign's analytical suggestions.
func (s *CampaignsService) Recommendations(ctx context.Context, campaignID int64) ([]Recommendation, error) {
	var recs []Recommendation
	if err := s.api.Get(ctx, fmt.Sprintf("/campaigns/%d/recommendations", campaignID), nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// CreateRecommendation stores a recommendation for a campaign.
func (s *CampaignsService) CreateRecommendation(ctx context.Context, campaignID int64, payload RecommendationPayload) (*Recommendation, error) {
	payload.CampaignID = campaignID
	rec := &Recommendation{}
	if err := s.api.Post(ctx, fmt.Sprintf("/campaigns/%d/recommendations", campaignID), payload, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// UpdateRecommendation marks a recommendation applied or records its 1-5
// feedback score.
func (s *CampaignsService) UpdateRecommendation(ctx context.Context, campaignID, recommendationID int64, payload RecommendationPayload) (*Recommendation, error) {
	rec := &Recommendation{}
	path := fmt.Sprintf("/campaigns/%d/recommendations/%d", campaignID, recommendationID)
	if err := s.api.Put(ctx, path, payload, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
