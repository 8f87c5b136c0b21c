// Package service holds the business operations both portals call. Every
// state change goes through the repository; services add validation, side
// effects (events, metrics, search index) and error context.
package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/cellar_society/internal/repo"
	"github.com/Skotchmaster/cellar_society/pkg/events"
	"github.com/Skotchmaster/cellar_society/pkg/logging"
	"github.com/Skotchmaster/cellar_society/pkg/metrics"
)

// Deps are shared by every service. Events and Metrics may be left empty.
type Deps struct {
	Repo    *repo.GormRepo
	Events  events.Publisher
	Metrics *metrics.Metrics
	Now     func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now().UTC()
	}
	return time.Now().UTC()
}

// publish never fails the caller: the database change has already committed.
func (d Deps) publish(ctx context.Context, topic, key string, event any) {
	if d.Events == nil {
		return
	}
	if err := d.Events.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "topic", topic, "key", key, "error", err)
		d.Metrics.EventPublishFailed(topic)
	}
}
