// Package metrics contains helpers for performance metric management inside
// the rule evaluation engine.
package metrics

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	gometrics "github.com/rcrowley/go-metrics"
)

// Well-known metric names. RuleBuild and RuleEval are timers around
// ast.Build and Evaluator.Eval respectively; EvalOps counts every dispatch
// through Evaluator.Eval regardless of operator; SequenceIter adds the
// length of every array map/filter/all/none/some/reduce receive (all/none/
// some count the whole array even when they stop early), and SequenceLen
// records the length distribution of those arrays.
const (
	RuleBuild    = "rule_build"
	RuleEval     = "rule_eval"
	EvalOps      = "eval_ops"
	SequenceIter = "sequence_iter"
	SequenceLen  = "sequence_len"
)

// Info contains attributes describing the underlying metrics provider.
type Info struct {
	Name string `json:"name"`
}

// Metrics defines the interface for a collection of performance metrics
// gathered while building and evaluating rules.
type Metrics interface {
	Info() Info
	Timer(name string) Timer
	Histogram(name string) Histogram
	Counter(name string) Counter
	All() map[string]interface{}
	Clear()
	json.Marshaler
}

type metrics struct {
	mtx        sync.Mutex
	timers     map[string]Timer
	histograms map[string]Histogram
	counters   map[string]Counter
}

// New returns a new Metrics object.
func New() Metrics {
	return &metrics{
		timers:     map[string]Timer{},
		histograms: map[string]Histogram{},
		counters:   map[string]Counter{},
	}
}

// NoOp returns a Metrics implementation that does nothing and costs
// nothing. Used by callers that don't care to collect metrics.
func NoOp() Metrics {
	return noOpInstance
}

func (*metrics) Info() Info {
	return Info{Name: "<built-in>"}
}

// String renders every collected metric as "key:value", sorted by key so
// two runs over the same rule produce comparable output.
func (m *metrics) String() string {
	all := m.All()
	keys := make([]string, 0, len(all))
	for key := range all {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = fmt.Sprintf("%v:%v", key, all[key])
	}
	return strings.Join(parts, " ")
}

func (m *metrics) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.All())
}

func (m *metrics) Timer(name string) Timer {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	t, ok := m.timers[name]
	if !ok {
		t = &timer{}
		m.timers[name] = t
	}
	return t
}

func (m *metrics) Histogram(name string) Histogram {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	h, ok := m.histograms[name]
	if !ok {
		h = newHistogram()
		m.histograms[name] = h
	}
	return h
}

func (m *metrics) Counter(name string) Counter {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	c, ok := m.counters[name]
	if !ok {
		c = &counter{}
		m.counters[name] = c
	}
	return c
}

func (m *metrics) All() map[string]interface{} {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	result := make(map[string]interface{}, len(m.timers)+len(m.histograms)+len(m.counters))
	for name, t := range m.timers {
		result["timer_"+name+"_ns"] = t.Value()
	}
	for name, h := range m.histograms {
		result["histogram_"+name] = h.Value()
	}
	for name, c := range m.counters {
		result["counter_"+name] = c.Value()
	}
	return result
}

func (m *metrics) Clear() {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.timers = map[string]Timer{}
	m.histograms = map[string]Histogram{}
	m.counters = map[string]Counter{}
}

// Timer defines the interface for a restartable timer that accumulates
// elapsed time.
type Timer interface {
	Value() interface{}
	Int64() int64
	Start()
	Stop() int64
}

type timer struct {
	mtx   sync.Mutex
	start time.Time
	value int64
}

func (t *timer) Start() {
	t.mtx.Lock()
	t.start = time.Now()
	t.mtx.Unlock()
}

func (t *timer) Stop() int64 {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	var delta int64
	if !t.start.IsZero() {
		delta = time.Since(t.start).Nanoseconds()
		t.value += delta
		t.start = time.Time{}
	}
	return delta
}

func (t *timer) Value() interface{} { return t.Int64() }

func (t *timer) Int64() int64 {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return t.value
}

// Histogram tracks the distribution of values recorded against a metric
// name, backed by go-metrics' exponentially decaying sample so the
// snapshot stays representative without keeping every observation.
//
// Value's bucket set (count/min/max/mean/median/p90) is sized for
// SequenceLen: rule authors care whether their arrays are typically small
// with the occasional large batch, not a fine-grained tail beyond the
// 90th percentile.
type Histogram interface {
	Value() interface{}
	Update(int64)
}

type histogram struct {
	hist gometrics.Histogram
}

func newHistogram() Histogram {
	sample := gometrics.NewExpDecaySample(1028, 0.015)
	return &histogram{hist: gometrics.NewHistogram(sample)}
}

func (h *histogram) Update(v int64) {
	h.hist.Update(v)
}

func (h *histogram) Value() interface{} {
	snap := h.hist.Snapshot()
	percentiles := snap.Percentiles([]float64{0.5, 0.9})
	return map[string]interface{}{
		"count":  snap.Count(),
		"min":    snap.Min(),
		"max":    snap.Max(),
		"mean":   snap.Mean(),
		"median": percentiles[0],
		"90%":    percentiles[1],
	}
}

// Counter defines the interface for a monotonically increasing counter.
type Counter interface {
	Value() interface{}
	Incr()
	Add(n uint64)
}

type counter struct {
	c atomic.Uint64
}

func (c *counter) Incr() {
	c.c.Add(1)
}

func (c *counter) Add(n uint64) {
	c.c.Add(n)
}

func (c *counter) Value() interface{} {
	return c.c.Load()
}

var noOpInstance = &noOpMetrics{}

type noOpMetrics struct{}

func (*noOpMetrics) Info() Info                   { return Info{Name: "noop"} }
func (*noOpMetrics) Timer(string) Timer           { return noOpTimerInstance }
func (*noOpMetrics) Histogram(string) Histogram   { return noOpHistogramInstance }
func (*noOpMetrics) Counter(string) Counter       { return noOpCounterInstance }
func (*noOpMetrics) All() map[string]interface{}  { return map[string]interface{}{} }
func (*noOpMetrics) Clear()                       {}
func (*noOpMetrics) MarshalJSON() ([]byte, error) { return []byte("{}"), nil }

var noOpTimerInstance = &noOpTimer{}
var noOpHistogramInstance = &noOpHistogram{}
var noOpCounterInstance = &noOpCounter{}

type noOpTimer struct{}

func (*noOpTimer) Value() interface{} { return int64(0) }
func (*noOpTimer) Int64() int64       { return 0 }
func (*noOpTimer) Start()             {}
func (*noOpTimer) Stop() int64        { return 0 }

type noOpHistogram struct{}

func (*noOpHistogram) Value() interface{} { return map[string]interface{}{} }
func (*noOpHistogram) Update(int64)       {}

type noOpCounter struct{}

func (*noOpCounter) Value() interface{} { return uint64(0) }
func (*noOpCounter) Incr()              {}
func (*noOpCounter) Add(uint64)         {}
