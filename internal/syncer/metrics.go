package syncer

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	MetricNameSpace = "cloudsync"
)

type metrics struct {
	tasks      *prometheus.CounterVec
	rows       *prometheus.CounterVec
	batches    *prometheus.CounterVec
	heartbeats *prometheus.CounterVec
	queued     *prometheus.GaugeVec
	running    prometheus.Gauge
}

func newMetrics() *metrics {
	return &metrics{
		tasks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricNameSpace,
				Name:      "tasks_total",
				Help:      "finished sync tasks by mode and result kind",
			},
			[]string{"mode", "result"},
		),
		rows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricNameSpace,
				Name:      "rows_total",
				Help:      "rows handled by direction and result",
			},
			[]string{"direction", "result"},
		),
		batches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricNameSpace,
				Name:      "batches_total",
				Help:      "committed download and upload batches",
			},
			[]string{"direction"},
		),
		heartbeats: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricNameSpace,
				Name:      "heartbeats_total",
				Help:      "cloud lock heartbeats by result",
			},
			[]string{"result"},
		),
		queued: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: MetricNameSpace,
				Name:      "queued_tasks",
				Help:      "tasks waiting in the queue by class",
			},
			[]string{"class"},
		),
		running: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: MetricNameSpace,
				Name:      "running_tasks",
				Help:      "tasks currently executing",
			},
		),
	}
}

func (m *metrics) register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.tasks, m.rows, m.batches, m.heartbeats, m.queued, m.running} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *metrics) rowsDone(direction string, success, fail int64) {
	if success > 0 {
		m.rows.WithLabelValues(direction, "success").Add(float64(success))
	}
	if fail > 0 {
		m.rows.WithLabelValues(direction, "fail").Add(float64(fail))
	}
}

func (m *metrics) queueDepth(q *taskQueue) {
	m.queued.WithLabelValues("priority").Set(float64(q.count(true)))
	m.queued.WithLabelValues("common").Set(float64(q.count(false)))
}
