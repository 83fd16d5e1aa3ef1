package notify

import "sync/atomic"

type MetricsSnapshot struct {
	Subscribers int64
	Published   int64
	Delivered   int64
}

type Metrics struct {
	subscribers atomic.Int64
	published   atomic.Int64
	delivered   atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) RecordSubscriber(delta int) {
	m.subscribers.Add(int64(delta))
}

func (m *Metrics) RecordPublished(delta int) {
	m.published.Add(int64(delta))
}

func (m *Metrics) RecordDelivered(delta int) {
	m.delivered.Add(int64(delta))
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Subscribers: m.subscribers.Load(),
		Published:   m.published.Load(),
		Delivered:   m.delivered.Load(),
	}
}
