package report

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/inference-sim/queue-sim/sim/scenario"
)

// Collector bundles the Prometheus gauges describing a scenario outcome.
// Every gauge is labelled by provider name.
type Collector struct {
	gatherer prometheus.Gatherer

	RequestsServed *prometheus.GaugeVec
	TotalQueueTime *prometheus.GaugeVec
	AvgQueueTime   *prometheus.GaugeVec
	LastDeparture  *prometheus.GaugeVec
	ServerBusy     *prometheus.GaugeVec
	MinServers     *prometheus.GaugeVec
}

// NewCollector registers the gauges against reg, defaulting to the global
// Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{gatherer: gatherer}
	gauges := []struct {
		dst    **prometheus.GaugeVec
		name   string
		help   string
		labels []string
	}{
		{&c.RequestsServed, "queue_sim_requests_served", "Arrivals served within the simulated horizon.", []string{"provider"}},
		{&c.TotalQueueTime, "queue_sim_total_queue_time_seconds", "Sum of queueing delay over all arrivals.", []string{"provider"}},
		{&c.AvgQueueTime, "queue_sim_avg_queue_time_seconds", "Mean queueing delay per arrival.", []string{"provider"}},
		{&c.LastDeparture, "queue_sim_last_departure_seconds", "Simulated time of the last departure.", []string{"provider"}},
		{&c.ServerBusy, "queue_sim_server_busy_seconds", "Cumulative service time per server.", []string{"provider", "server"}},
		{&c.MinServers, "queue_sim_min_servers", "Smallest server count observed with zero queueing.", []string{"provider"}},
	}
	for _, g := range gauges {
		vec, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: g.name,
			Help: g.help,
		}, g.labels), g.name)
		if err != nil {
			return nil, err
		}
		*g.dst = vec
	}
	return c, nil
}

// Observe sets every gauge from the outcome.
func (c *Collector) Observe(out *scenario.Outcome) {
	for _, po := range out.Providers {
		name := po.Provider.Name
		c.RequestsServed.WithLabelValues(name).Set(float64(po.Result.RequestsServed))
		c.TotalQueueTime.WithLabelValues(name).Set(po.Result.TotalQueueTime)
		c.AvgQueueTime.WithLabelValues(name).Set(po.Result.AvgQueueTime)
		c.LastDeparture.WithLabelValues(name).Set(po.Result.LastDeparture)
		for i, busy := range po.Result.BusyTime {
			c.ServerBusy.WithLabelValues(name, strconv.Itoa(i)).Set(busy)
		}
		if po.Search != nil {
			c.MinServers.WithLabelValues(name).Set(float64(po.Search.Servers))
		}
	}
}

// WriteTextfile writes the gathered metrics in the text exposition format,
// suitable for the node exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.gatherer); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
