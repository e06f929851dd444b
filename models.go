package maestro

import "time"

// User is the profile record the backend returns for the current identity.
type User struct {
	ID          int64      `json:"id,omitempty"`
	Email       string     `json:"email,omitempty"`
	Username    string     `json:"username,omitempty"`
	FullName    string     `json:"full_name,omitempty"`
	IsActive    bool       `json:"is_active,omitempty"`
	IsSuperuser bool       `json:"is_superuser,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Token is the login response. The access token is treated as opaque; the
// client never judges expiry itself, only the server's 401 does.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// CampaignStatus values the backend recognizes.
type CampaignStatus = string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignActive    CampaignStatus = "active"
	CampaignPaused    CampaignStatus = "paused"
	CampaignCompleted CampaignStatus = "completed"
)

// Campaign is a marketing campaign record.
type Campaign struct {
	ID             int64            `json:"id,omitempty"`
	UserID         int64            `json:"user_id,omitempty"`
	Name           string           `json:"name"`
	Description    string           `json:"description,omitempty"`
	Status         CampaignStatus   `json:"status,omitempty"`
	Budget         float64          `json:"budget,omitempty"`
	StartDate      *time.Time       `json:"start_date,omitempty"`
	EndDate        *time.Time       `json:"end_date,omitempty"`
	TargetAudience map[string]any   `json:"target_audience,omitempty"`
	Channels       []string         `json:"channels,omitempty"`
	Metrics        map[string]any   `json:"metrics,omitempty"`
	Contents       []Content        `json:"contents,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	CreatedAt      *time.Time       `json:"created_at,omitempty"`
	UpdatedAt      *time.Time       `json:"updated_at,omitempty"`
}

// Content is a creative asset attached to a campaign.
type Content struct {
	ID          int64          `json:"id,omitempty"`
	CampaignID  int64          `json:"campaign_id,omitempty"`
	Title       string         `json:"title"`
	ContentType string         `json:"content_type"`
	ContentData string         `json:"content_data"`
	Channel     string         `json:"channel"`
	Status      string         `json:"status,omitempty"`
	Performance map[string]any `json:"performance,omitempty"`
	CreatedAt   *time.Time     `json:"created_at,omitempty"`
	UpdatedAt   *time.Time     `json:"updated_at,omitempty"`
}

// Recommendation is an analytical suggestion produced for a campaign.
type Recommendation struct {
	ID                 int64          `json:"id,omitempty"`
	CampaignID         int64          `json:"campaign_id,omitempty"`
	RecommendationType string         `json:"recommendation_type"`
	RecommendationData map[string]any `json:"recommendation_data"`
	Explanation        string         `json:"explanation,omitempty"`
	IsApplied          bool           `json:"is_applied,omitempty"`
	Feedback           *int           `json:"feedback,omitempty"`
	CreatedAt          *time.Time     `json:"created_at,omitempty"`
}
