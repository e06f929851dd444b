// Package telemetry converts session activity events into the interaction
// records the learning loop collects, so client-side auth behavior can feed
// the platform's recommendation models.
package telemetry

import (
	"strconv"
	"strings"
	"time"

	maestro "github.com/maestro-marketing/go-maestro"
)

const (
	// MetadataKeyFromStatus stores the source session status for lifecycle transitions.
	MetadataKeyFromStatus = "from_status"
	// MetadataKeyToStatus stores the target session status for lifecycle transitions.
	MetadataKeyToStatus = "to_status"
)

const (
	defaultChannel    = "session"
	defaultObjectType = "user"
	defaultActorID    = "anonymous"
)

// Normalized is a transport-agnostic interaction shape for downstream systems.
type Normalized struct {
	ActorID    string         `json:"actor_id"`
	Verb       string         `json:"verb"`
	ObjectType string         `json:"object_type,omitempty"`
	ObjectID   string         `json:"object_id,omitempty"`
	Channel    string         `json:"channel,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Interaction flattens the normalized record into the map shape the learning
// loop's interaction collector accepts.
func (n Normalized) Interaction() map[string]any {
	out := map[string]any{
		"actor_id":    n.ActorID,
		"verb":        n.Verb,
		"occurred_at": n.OccurredAt.Format(time.RFC3339),
	}
	if n.ObjectType != "" {
		out["object_type"] = n.ObjectType
	}
	if n.ObjectID != "" {
		out["object_id"] = n.ObjectID
	}
	if n.Channel != "" {
		out["channel"] = n.Channel
	}
	if len(n.Metadata) > 0 {
		out["metadata"] = n.Metadata
	}
	return out
}

// Option customizes normalization behavior.
type Option func(*normalizeOptions)

type normalizeOptions struct {
	channel       string
	objectType    string
	actorFallback string
}

// Normalize converts a maestro.ActivityEvent into a generic normalized shape.
func Normalize(event maestro.ActivityEvent, opts ...Option) Normalized {
	options := defaultNormalizeOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	actorID := options.actorFallback
	if event.UserID != 0 {
		actorID = strconv.FormatInt(event.UserID, 10)
	} else if username := strings.TrimSpace(event.Username); username != "" {
		actorID = username
	}

	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	objectID := ""
	if event.UserID != 0 {
		objectID = strconv.FormatInt(event.UserID, 10)
	}

	return Normalized{
		ActorID:    actorID,
		Verb:       string(event.EventType),
		ObjectType: strings.TrimSpace(options.objectType),
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(options.channel),
		Metadata:   normalizeMetadata(event),
		OccurredAt: occurredAt,
	}
}

// WithChannel sets the channel for normalized records.
func WithChannel(channel string) Option {
	return func(opts *normalizeOptions) {
		if opts == nil {
			return
		}
		opts.channel = strings.TrimSpace(channel)
	}
}

// WithObjectType sets the object type for normalized records.
func WithObjectType(objectType string) Option {
	return func(opts *normalizeOptions) {
		if opts == nil {
			return
		}
		opts.objectType = strings.TrimSpace(objectType)
	}
}

// WithActorFallback sets the actor id used when the event carries no identity.
func WithActorFallback(actorID string) Option {
	return func(opts *normalizeOptions) {
		if opts == nil {
			return
		}
		opts.actorFallback = strings.TrimSpace(actorID)
	}
}

func defaultNormalizeOptions() normalizeOptions {
	return normalizeOptions{
		channel:       defaultChannel,
		objectType:    defaultObjectType,
		actorFallback: defaultActorID,
	}
}

func normalizeMetadata(event maestro.ActivityEvent) map[string]any {
	metadata := cloneMap(event.Metadata)

	if event.FromStatus != "" {
		if metadata == nil {
			metadata = map[string]any{}
		}
		metadata[MetadataKeyFromStatus] = string(event.FromStatus)
	}

	if event.ToStatus != "" {
		if metadata == nil {
			metadata = map[string]any{}
		}
		metadata[MetadataKeyToStatus] = string(event.ToStatus)
	}

	return metadata
}

func cloneMap(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
