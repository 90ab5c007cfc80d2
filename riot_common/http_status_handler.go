package riot_common

import (
	"github.com/reithediver/lol-smurfguard-sub000/metrics"
)

// IHttpStatusHandler is an interface for handling upstream request statuses
type IHttpStatusHandler interface {
	// OnRequest handles a finished attempt with its status: "success" or an ErrorKind name
	OnRequest(status string)
	// OnRetry handles retry events
	OnRetry()
}

// NewHttpRequestMetricsWriter returns a status handler that writes Prometheus metrics for serviceName
func NewHttpRequestMetricsWriter(serviceName string) IHttpStatusHandler {
	return metrics.NewMetricsWriter(serviceName)
}
