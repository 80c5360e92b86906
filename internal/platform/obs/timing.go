package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

// RequestIDKey carries the per-request ID set by the HTTP middleware so
// operation timings can be correlated with the access log.
const RequestIDKey ctxKey = "req_id"

// Time logs the duration and outcome of a named operation when the returned
// func runs. Intended for deferred use:
//
//	defer obs.Time(ctx, "geocode.lookup")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start).Milliseconds()

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, name, dur, *errp)
			return
		}
		log.Printf("req_id=%s op=%s dur=%dms", reqID, name, dur)
	}
}
