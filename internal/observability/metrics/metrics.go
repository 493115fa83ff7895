package metrics

import (
	"strconv"
	"time"

	obserrors "github.com/plugashop/storefront/internal/observability/errors"
	"github.com/plugashop/storefront/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultNoop    = "noop"
)

// HTTPRequestMetric captures details about a handled request for metric
// emission.
type HTTPRequestMetric struct {
	Method   string
	Route    string
	Status   int
	Duration time.Duration
	Err      error
}

// EmitHTTPRequest emits standardised request metrics. Route should be the
// registered pattern, not the raw path, to keep tag cardinality bounded.
func EmitHTTPRequest(sink statsd.Sink, in HTTPRequestMetric) {
	if sink == nil {
		return
	}

	result := ResultSuccess
	if in.Status >= 500 {
		result = ResultError
	}

	tags := map[string]string{
		"method": in.Method,
		"route":  in.Route,
		"status": strconv.Itoa(in.Status),
		"result": result,
	}

	if in.Err != nil && result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("http.request", 1, tags)

	if in.Duration > 0 {
		sink.Timing("http.request_duration", in.Duration, CloneTags(tags))
	}
}

// CloneTags creates a shallow copy of a tag map, filtering out empty keys.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
