package jobs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	jobRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pushresume_job_runs_total",
		Help: "Number of background job runs by outcome.",
	}, []string{"job", "status"})

	jobItems = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pushresume_job_items_total",
		Help: "Number of items processed by background jobs.",
	}, []string{"job", "outcome"})
)

func observe(job string, result Result, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	jobRuns.WithLabelValues(job, status).Inc()

	jobItems.WithLabelValues(job, "success").Add(float64(result.Success))
	jobItems.WithLabelValues(job, "failed").Add(float64(result.Failed))
	if result.Skipped > 0 {
		jobItems.WithLabelValues(job, "skipped").Add(float64(result.Skipped))
	}
}
