package weather

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "weather_upstream_requests_total",
	Help: "Calls to the weather provider by outcome.",
}, []string{"outcome"})
