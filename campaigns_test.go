package maestro_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	maestro "github.com/maestro-marketing/go-maestro"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Method string
	Path   string
	Query  map[string]string
	Body   map[string]any
}

// newCapturingService records each request and replies with canned JSON.
func newCapturingService(t *testing.T, responses map[string]string) (*maestro.Client, *[]capturedRequest) {
	t.Helper()

	var captured []capturedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := capturedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  map[string]string{},
		}
		for key, vals := range r.URL.Query() {
			rec.Query[key] = vals[0]
		}
		if r.Header.Get("Content-Type") == "application/json" {
			json.NewDecoder(r.Body).Decode(&rec.Body)
		}
		captured = append(captured, rec)

		w.Header().Set("Content-Type", "application/json")
		if body, ok := responses[r.Method+" "+r.URL.Path]; ok {
			w.Write([]byte(body))
			return
		}
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	client, _, _ := newTestClient(t, srv.URL)
	return client, &captured
}

func TestCampaignsListBuildsQuery(t *testing.T) {
	client, captured := newCapturingService(t, map[string]string{
		"GET /campaigns": `[{"id": 1, "name": "Spring Launch", "status": "active", "budget": 1500}]`,
	})
	svc := maestro.NewCampaignsService(client)

	campaigns, err := svc.List(context.Background(), maestro.CampaignListOptions{
		Skip:   20,
		Limit:  10,
		Status: maestro.CampaignActive,
	})
	require.NoError(t, err)

	require.Len(t, campaigns, 1)
	assert.Equal(t, int64(1), campaigns[0].ID)
	assert.Equal(t, "Spring Launch", campaigns[0].Name)

	req := (*captured)[0]
	assert.Equal(t, "20", req.Query["skip"])
	assert.Equal(t, "10", req.Query["limit"])
	assert.Equal(t, "active", req.Query["status"])
}

func TestCampaignsListOmitsZeroOptions(t *testing.T) {
	client, captured := newCapturingService(t, map[string]string{
		"GET /campaigns": `[]`,
	})
	svc := maestro.NewCampaignsService(client)

	_, err := svc.List(context.Background(), maestro.CampaignListOptions{})
	require.NoError(t, err)

	assert.Empty(t, (*captured)[0].Query)
}

func TestCampaignsCreateSendsPayload(t *testing.T) {
	client, captured := newCapturingService(t, map[string]string{
		"POST /campaigns": `{"id": 9, "name": "Spring Launch", "status": "draft"}`,
	})
	svc := maestro.NewCampaignsService(client)

	campaign, err := svc.Create(context.Background(), maestro.CampaignPayload{
		Name:   "Spring Launch",
		Budget: 1500,
		Status: maestro.CampaignDraft,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), campaign.ID)

	req := (*captured)[0]
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "Spring Launch", req.Body["name"])
	assert.Equal(t, float64(1500), req.Body["budget"])
}

func TestCampaignsDeleteTargetsPath(t *testing.T) {
	client, captured := newCapturingService(t, nil)
	svc := maestro.NewCampaignsService(client)

	require.NoError(t, svc.Delete(context.Background(), 42))

	req := (*captured)[0]
	assert.Equal(t, "DELETE", req.Method)
	assert.Equal(t, "/campaigns/42", req.Path)
}

func TestCampaignsNestedContentRoutes(t *testing.T) {
	client, captured := newCapturingService(t, map[string]string{
		"GET /campaigns/5/contents":  `[{"id": 3, "title": "Hero banner"}]`,
		"POST /campaigns/5/contents": `{"id": 4, "title": "Promo copy"}`,
	})
	svc := maestro.NewCampaignsService(client)

	contents, err := svc.Contents(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, "Hero banner", contents[0].Title)

	content, err := svc.CreateContent(context.Background(), 5, maestro.ContentPayload{
		Title:       "Promo copy",
		ContentType: "ad_copy",
		ContentData: "Buy now",
		Channel:     "social",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), content.ID)

	assert.Equal(t, "/campaigns/5/contents", (*captured)[0].Path)
	assert.Equal(t, "/campaigns/5/contents", (*captured)[1].Path)
}

func TestCampaignPayloadValidation(t *testing.T) {
	valid := maestro.CampaignPayload{Name: "Spring Launch", Budget: 100, Status: maestro.CampaignDraft}
	require.NoError(t, valid.Validate())

	assert.Error(t, maestro.CampaignPayload{}.Validate(), "name is required")
	assert.Error(t, maestro.CampaignPayload{Name: "x", Budget: -5}.Validate(), "budget cannot be negative")
	assert.Error(t, maestro.CampaignPayload{Name: "x", Status: "archived"}.Validate(), "unknown status is rejected")
}

func TestLearningLoopFeedbackRoundTrip(t *testing.T) {
	client, captured := newCapturingService(t, map[string]string{
		"POST /learning-loop/save-recommendation-feedback": `{"success": true}`,
	})
	svc := maestro.NewLearningLoopService(client)

	ok, err := svc.SaveRecommendationFeedback(context.Background(), 12, map[string]any{
		"rating": 4,
	})
	require.NoError(t, err)
	assert.True(t, ok)

	req := (*captured)[0]
	assert.Equal(t, "12", req.Query["recommendation_id"])
	assert.Equal(t, float64(4), req.Body["rating"])
}

func TestStrategicMindPredictionRoutes(t *testing.T) {
	client, captured := newCapturingService(t, map[string]string{
		"POST /strategic-mind/predict-ctr": `{"predicted_ctr": 0.042}`,
	})
	svc := maestro.NewStrategicMindService(client)

	result, err := svc.PredictCTR(context.Background(), map[string]any{"budget": 1500})
	require.NoError(t, err)
	assert.Equal(t, 0.042, result["predicted_ctr"])

	assert.Equal(t, "/strategic-mind/predict-ctr", (*captured)[0].Path)
}

func TestCreativeSparkAdCopyContentTypeQuery(t *testing.T) {
	client, captured := newCapturingService(t, map[string]string{
		"POST /creative-spark/generate-ad-copy": `[{"headline": "Buy now"}]`,
	})
	svc := maestro.NewCreativeSparkService(client)

	variants, err := svc.GenerateAdCopy(context.Background(), map[string]any{"name": "Spring"}, "social")
	require.NoError(t, err)
	require.Len(t, variants, 1)

	assert.Equal(t, "social", (*captured)[0].Query["content_type"])
}
