package services

import (
	"context"
	"time"

	"ridemarket/internal/mq"
	"ridemarket/internal/store"
	"ridemarket/internal/utils"
)

// Runtime carries what every engine service needs: the store handle and
// the injectable clock, id generator and event publisher.
type Runtime struct {
	Store     *store.Store
	Publisher mq.Publisher
	Clock     func() time.Time
	IDGen     func(prefix string) string
	RequestID string
}

func (r Runtime) now() time.Time {
	if r.Clock != nil {
		return r.Clock().UTC()
	}
	return utils.NowUTC()
}

func (r Runtime) newID(prefix string) string {
	if r.IDGen != nil {
		return r.IDGen(prefix)
	}
	return utils.NewID(prefix)
}

// publish is best effort: the mutation has already committed.
func (r Runtime) publish(ctx context.Context, key string, v any) {
	if r.Publisher == nil {
		return
	}
	if err := r.Publisher.PublishJSON(ctx, key, v); err != nil {
		utils.Logger().Warnw("publish event failed", "routing_key", key, "request_id", r.RequestID, "error", err)
	}
}

// WithRequestID returns a copy bound to a request for log correlation.
func (r Runtime) WithRequestID(id string) Runtime {
	r.RequestID = id
	return r
}
