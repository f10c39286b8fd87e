package axon

import (
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// TeardownStats describes one scope teardown: the scope's identity, how
// many instances sat in its resolved cache and how many disposables it had
// captured.
type TeardownStats struct {
	ScopeID     uuid.UUID
	Root        bool
	Resolved    int
	Disposables int
}

// TeardownObserver receives a report every time a scope is torn down. It is
// a pure reporting side effect and cannot influence teardown; it runs after
// the disposed flag flips and before any entry is released.
type TeardownObserver interface {
	ObserveTeardown(TeardownStats)
}

type nopObserver struct{}

func (nopObserver) ObserveTeardown(TeardownStats) {}

// zapObserver logs teardown reports through a zap logger.
type zapObserver struct {
	log *zap.Logger
}

// NewZapObserver returns an observer logging each teardown at debug level.
func NewZapObserver(log *zap.Logger) TeardownObserver {
	return &zapObserver{log: log}
}

func (o *zapObserver) ObserveTeardown(stats TeardownStats) {
	o.log.Debug("scope torn down",
		zap.String("scope_id", stats.ScopeID.String()),
		zap.Bool("root", stats.Root),
		zap.Int("resolved", stats.Resolved),
		zap.Int("disposables", stats.Disposables),
	)
}

// PrometheusObserver exports teardown counters: scopes torn down by kind,
// resolved-cache entries and disposables observed at teardown.
type PrometheusObserver struct {
	teardowns   *prometheus.CounterVec
	resolved    prometheus.Counter
	disposables prometheus.Counter
}

// NewPrometheusObserver registers the teardown metrics with reg and returns
// the observer feeding them.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	o := &PrometheusObserver{
		teardowns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "axon",
			Name:      "scope_teardowns_total",
			Help:      "Number of scopes torn down, by scope kind.",
		}, []string{"kind"}),
		resolved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "axon",
			Name:      "resolved_entries_total",
			Help:      "Resolved-instance cache entries observed at teardown.",
		}),
		disposables: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "axon",
			Name:      "disposables_total",
			Help:      "Disposables captured by torn-down scopes.",
		}),
	}
	reg.MustRegister(o.teardowns, o.resolved, o.disposables)
	return o
}

func (o *PrometheusObserver) ObserveTeardown(stats TeardownStats) {
	kind := "child"
	if stats.Root {
		kind = "root"
	}
	o.teardowns.WithLabelValues(kind).Inc()
	o.resolved.Add(float64(stats.Resolved))
	o.disposables.Add(float64(stats.Disposables))
}
