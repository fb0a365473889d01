package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	roastRequestsTotal         atomic.Uint64
	roastCreatedTotal          atomic.Uint64
	roastRejectedTotal         atomic.Uint64
	roastGenerationFailedTotal atomic.Uint64
	roastUpvotesTotal          atomic.Uint64
	memeLookupMissTotal        atomic.Uint64

	generationDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncRoastRequests counts a submission or regeneration entering the pipeline.
func IncRoastRequests() {
	roastRequestsTotal.Add(1)
}

// IncRoastCreated counts a persisted roast.
func IncRoastCreated() {
	roastCreatedTotal.Add(1)
}

// IncRoastRejected counts a submission refused during resolve or validate.
func IncRoastRejected() {
	roastRejectedTotal.Add(1)
}

// IncGenerationFailed counts a failed backend call.
func IncGenerationFailed() {
	roastGenerationFailedTotal.Add(1)
}

// IncUpvotes counts an applied upvote.
func IncUpvotes() {
	roastUpvotesTotal.Add(1)
}

// IncMemeMiss counts a meme lookup that produced no URL.
func IncMemeMiss() {
	memeLookupMissTotal.Add(1)
}

// ObserveGenerationDurationMs records a backend call duration in milliseconds.
func ObserveGenerationDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	generationDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "roast_requests_total", "Roast pipeline runs started", roastRequestsTotal.Load())
	writeCounter(&buf, "roast_created_total", "Roasts persisted", roastCreatedTotal.Load())
	writeCounter(&buf, "roast_rejected_total", "Submissions rejected before generation", roastRejectedTotal.Load())
	writeCounter(&buf, "roast_generation_failed_total", "Backend generation failures", roastGenerationFailedTotal.Load())
	writeCounter(&buf, "roast_upvotes_total", "Upvotes applied", roastUpvotesTotal.Load())
	writeCounter(&buf, "meme_lookup_miss_total", "Meme lookups without a URL", memeLookupMissTotal.Load())
	writeHistogram(&buf, "roast_generation_duration_ms", "Backend generation duration in milliseconds", generationDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
