package sim

// Model names the queueing discipline that produced a Result.
type Model string

const (
	// ModelSingleServer is one server, first come first served.
	ModelSingleServer Model = "single-server"
	// ModelMultiServer is a fixed pool with least-loaded assignment.
	ModelMultiServer Model = "multi-server"
)

// IsValidModel reports whether name is a known model.
func IsValidModel(name string) bool {
	return name == string(ModelSingleServer) || name == string(ModelMultiServer)
}

// Metric keys reported by Result.Metrics.
const (
	MetricRequestsServed    = "requests_served"
	MetricBusyTime          = "busy_time"
	MetricBusyTimePerServer = "busy_time_per_server"
	MetricIdleTime          = "idle_time"
	MetricIdleTimePerServer = "idle_time_per_server"
	MetricTotalQueueTime    = "total_queue_time"
	MetricAvgQueueTime      = "avg_queue_time"
	MetricAvgQueueLength    = "avg_queue_length"
	MetricLastDeparture     = "last_departure"
)

// Metric is one named value of a Result. Value is an int, a float64 or,
// for per-server metrics, a []float64.
type Metric struct {
	Key   string
	Value any
}

// Result holds the statistics of one simulated trajectory.
// It is built once by a simulator and not mutated afterwards.
type Result struct {
	Model   Model
	Servers int
	Horizon float64

	RequestsServed int
	BusyTime       []float64 // per server; length 1 for single-server
	IdleTime       []float64 // Horizon - BusyTime; negative when service overruns the horizon
	TotalQueueTime float64
	AvgQueueTime   float64 // TotalQueueTime / RequestsServed
	AvgQueueLength float64 // mean of per-arrival queue-length samples
	LastDeparture  float64

	Departures  []float64 // departure time per arrival
	Assignments []int     // server index per arrival; nil for single-server
}

// Metrics returns the named metrics in report order. Single-server results
// report scalar busy and idle time, multi-server results report them per server.
func (r *Result) Metrics() []Metric {
	metrics := []Metric{{Key: MetricRequestsServed, Value: r.RequestsServed}}
	if r.Model == ModelSingleServer {
		metrics = append(metrics,
			Metric{Key: MetricBusyTime, Value: r.BusyTime[0]},
			Metric{Key: MetricIdleTime, Value: r.IdleTime[0]},
		)
	} else {
		metrics = append(metrics,
			Metric{Key: MetricBusyTimePerServer, Value: r.BusyTime},
			Metric{Key: MetricIdleTimePerServer, Value: r.IdleTime},
		)
	}
	return append(metrics,
		Metric{Key: MetricTotalQueueTime, Value: r.TotalQueueTime},
		Metric{Key: MetricAvgQueueTime, Value: r.AvgQueueTime},
		Metric{Key: MetricAvgQueueLength, Value: r.AvgQueueLength},
		Metric{Key: MetricLastDeparture, Value: r.LastDeparture},
	)
}

// MetricsMap returns Metrics keyed by name.
func (r *Result) MetricsMap() map[string]any {
	metrics := r.Metrics()
	out := make(map[string]any, len(metrics))
	for _, m := range metrics {
		out[m.Key] = m.Value
	}
	return out
}

// Utilization returns busy time over horizon per server.
func (r *Result) Utilization() []float64 {
	util := make([]float64, len(r.BusyTime))
	for i, busy := range r.BusyTime {
		util[i] = busy / r.Horizon
	}
	return util
}

// HasBacklog reports whether any server's busy time exceeds the horizon.
func (r *Result) HasBacklog() bool {
	for _, idle := range r.IdleTime {
		if idle < 0 {
			return true
		}
	}
	return false
}

func idleTimes(horizon float64, busy []float64) []float64 {
	idle := make([]float64, len(busy))
	for i, b := range busy {
		idle[i] = horizon - b
	}
	return idle
}
