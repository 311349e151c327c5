package stats

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry collects the engine's advisory counters for a single process.
// Counters are incremented non-atomically in spirit (simple adds, no
// cross-field transactions) but use atomic.Int64 to avoid torn reads across
// goroutines that scrape metrics concurrently with a running operation —
// the engine's own execution is single-threaded per spec_FULL.md §5, the
// atomics only protect the scrape path.
type Registry struct {
	nodesEmitted    atomic.Int64
	rule1Removed    atomic.Int64
	rule2Removed    atomic.Int64
	max1LevelCut    atomic.Int64
	operationsTotal atomic.Int64

	nodesEmittedDesc *prometheus.Desc
	rule1Desc        *prometheus.Desc
	rule2Desc        *prometheus.Desc
	maxCutDesc       *prometheus.Desc
	opsDesc          *prometheus.Desc
}

// New builds a Registry with its Prometheus descriptors pre-built.
// name is used as the metric name prefix, e.g. "adiar".
func New(name string) *Registry {
	return &Registry{
		nodesEmittedDesc: prometheus.NewDesc(name+"_nodes_emitted_total", "Total nodes emitted by reduce.", nil, nil),
		rule1Desc:        prometheus.NewDesc(name+"_rule1_removed_total", "Total nodes removed by the rule-1 (redundant) pass.", nil, nil),
		rule2Desc:        prometheus.NewDesc(name+"_rule2_removed_total", "Total nodes removed by the rule-2 (duplicate) pass.", nil, nil),
		maxCutDesc:       prometheus.NewDesc(name+"_max_1level_cut", "High-water mark of the 1-level cut across all operations.", nil, nil),
		opsDesc:          prometheus.NewDesc(name+"_operations_total", "Total product-construction operations run.", nil, nil),
	}
}

// AddNodesEmitted accumulates n nodes emitted by a reduce pass.
func (r *Registry) AddNodesEmitted(n int64) { r.nodesEmitted.Add(n) }

// AddRule1Removed accumulates n nodes collapsed by the rule-1 pass.
func (r *Registry) AddRule1Removed(n int64) { r.rule1Removed.Add(n) }

// AddRule2Removed accumulates n nodes merged by the rule-2 pass.
func (r *Registry) AddRule2Removed(n int64) { r.rule2Removed.Add(n) }

// ObserveMax1LevelCut records cut as the new high-water mark if larger than
// any previously observed value.
func (r *Registry) ObserveMax1LevelCut(cut int64) {
	for {
		cur := r.max1LevelCut.Load()
		if cut <= cur {
			return
		}
		if r.max1LevelCut.CompareAndSwap(cur, cut) {
			return
		}
	}
}

// IncOperations counts one completed product-construction operation.
func (r *Registry) IncOperations() { r.operationsTotal.Add(1) }

// Snapshot is a point-in-time read of every counter, for tests and for
// callers that want the raw numbers without a Prometheus scrape.
type Snapshot struct {
	NodesEmitted int64
	Rule1Removed int64
	Rule2Removed int64
	Max1LevelCut int64
	Operations   int64
}

// Snapshot reads every counter.
func (r *Registry) Snapshot() Snapshot {
	return Snapshot{
		NodesEmitted: r.nodesEmitted.Load(),
		Rule1Removed: r.rule1Removed.Load(),
		Rule2Removed: r.rule2Removed.Load(),
		Max1LevelCut: r.max1LevelCut.Load(),
		Operations:   r.operationsTotal.Load(),
	}
}

// Describe implements prometheus.Collector.
func (r *Registry) Describe(ch chan<- *prometheus.Desc) {
	ch <- r.nodesEmittedDesc
	ch <- r.rule1Desc
	ch <- r.rule2Desc
	ch <- r.maxCutDesc
	ch <- r.opsDesc
}

// Collect implements prometheus.Collector.
func (r *Registry) Collect(ch chan<- prometheus.Metric) {
	snap := r.Snapshot()
	ch <- prometheus.MustNewConstMetric(r.nodesEmittedDesc, prometheus.CounterValue, float64(snap.NodesEmitted))
	ch <- prometheus.MustNewConstMetric(r.rule1Desc, prometheus.CounterValue, float64(snap.Rule1Removed))
	ch <- prometheus.MustNewConstMetric(r.rule2Desc, prometheus.CounterValue, float64(snap.Rule2Removed))
	ch <- prometheus.MustNewConstMetric(r.maxCutDesc, prometheus.GaugeValue, float64(snap.Max1LevelCut))
	ch <- prometheus.MustNewConstMetric(r.opsDesc, prometheus.CounterValue, float64(snap.Operations))
}

var _ prometheus.Collector = (*Registry)(nil)
