// Package metrics exposes ring occupancy to Prometheus and operation
// counts through OpenTelemetry.
//
// Instrumentation never touches the ring hot path by default: the
// Prometheus collector samples occupancy only when scraped, and the OTel
// wrapper is opt-in for callers that accept counter updates per operation.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Sampler is the read-only view the collector needs from a ring. Both
// *ring.Ring[T] and *shmring.Ring satisfy it.
type Sampler interface {
	Capacity() int
	ReadAvailable() int
	WriteAvailable() int
}

// Collector samples registered rings at scrape time. Occupancy read from
// the scrape goroutine is approximate while producer and consumer are
// active, which is the usual monitoring trade-off.
type Collector struct {
	mu    sync.Mutex
	rings map[string]Sampler

	capacityDesc *prometheus.Desc
	lengthDesc   *prometheus.Desc
	freeDesc     *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns an empty Collector ready for registration.
func NewCollector() *Collector {
	return &Collector{
		rings: make(map[string]Sampler),
		capacityDesc: prometheus.NewDesc(
			"shmring_capacity_elements",
			"Fixed element capacity of the ring.",
			[]string{"ring"}, nil,
		),
		lengthDesc: prometheus.NewDesc(
			"shmring_length_elements",
			"Elements currently readable in the ring.",
			[]string{"ring"}, nil,
		),
		freeDesc: prometheus.NewDesc(
			"shmring_free_elements",
			"Elements currently writable in the ring.",
			[]string{"ring"}, nil,
		),
	}
}

// Register adds or replaces a ring under the given name.
func (c *Collector) Register(name string, r Sampler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rings[name] = r
}

// Unregister removes a ring.
func (c *Collector) Unregister(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rings, name)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.capacityDesc
	ch <- c.lengthDesc
	ch <- c.freeDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for name, r := range c.rings {
		ch <- prometheus.MustNewConstMetric(c.capacityDesc,
			prometheus.GaugeValue, float64(r.Capacity()), name)
		ch <- prometheus.MustNewConstMetric(c.lengthDesc,
			prometheus.GaugeValue, float64(r.ReadAvailable()), name)
		ch <- prometheus.MustNewConstMetric(c.freeDesc,
			prometheus.GaugeValue, float64(r.WriteAvailable()), name)
	}
}
