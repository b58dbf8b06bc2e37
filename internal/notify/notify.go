// Package notify delivers user-facing toast notifications.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/digitalbookstore/storefront/internal/logger"
	"github.com/digitalbookstore/storefront/internal/metrics"
)

// Severity classifies a toast.
type Severity string

// Severities used by the storefront.
const (
	Info    Severity = "info"
	Success Severity = "success"
)

// Sink receives notifications. Emit must not block.
type Sink interface {
	Emit(severity Severity, text string)
}

// Toast is a single notification as delivered to clients.
type Toast struct {
	ID        string    `json:"id"`
	Severity  Severity  `json:"severity"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewToast stamps a notification with an id and creation time.
func NewToast(severity Severity, text string) Toast {
	return Toast{
		ID:        uuid.NewString(),
		Severity:  severity,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
}

// EventEmitter is anything that can broadcast an event, such as the SSE manager.
type EventEmitter interface {
	Emit(event any)
}

// EmitterSink wraps each notification in a Toast and hands it to an EventEmitter.
type EmitterSink struct {
	emitter EventEmitter
}

// NewEmitterSink creates a sink that forwards toasts to emitter.
func NewEmitterSink(emitter EventEmitter) *EmitterSink {
	return &EmitterSink{emitter: emitter}
}

// Emit implements Sink.
func (s *EmitterSink) Emit(severity Severity, text string) {
	s.emitter.Emit(NewToast(severity, text))
}

// LogSink writes notifications to a logger.
type LogSink struct {
	logger *logger.Logger
}

// NewLogSink creates a sink that logs each toast at info level.
func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{logger: log.Component("notify")}
}

// Emit implements Sink.
func (s *LogSink) Emit(severity Severity, text string) {
	s.logger.Info("toast", "severity", string(severity), "text", text)
}

// MetricsSink counts notifications by severity.
type MetricsSink struct {
	metrics *metrics.Metrics
}

// NewMetricsSink creates a counting sink.
func NewMetricsSink(m *metrics.Metrics) *MetricsSink {
	return &MetricsSink{metrics: m}
}

// Emit implements Sink.
func (s *MetricsSink) Emit(severity Severity, _ string) {
	s.metrics.Notification(string(severity))
}

// Fanout delivers every notification to each sink in order.
type Fanout []Sink

// Emit implements Sink.
func (f Fanout) Emit(severity Severity, text string) {
	for _, s := range f {
		if s != nil {
			s.Emit(severity, text)
		}
	}
}

// Func adapts a function to a Sink.
type Func func(severity Severity, text string)

// Emit implements Sink.
func (f Func) Emit(severity Severity, text string) { f(severity, text) }

// Discard drops every notification.
var Discard Sink = Func(func(Severity, string) {})

// Message is a recorded notification.
type Message struct {
	Severity Severity
	Text     string
}

// Recorder keeps every notification it receives. Safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

// Emit implements Sink.
func (r *Recorder) Emit(severity Severity, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Severity: severity, Text: text})
}

// Messages returns a copy of what has been recorded.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

// Reset forgets recorded messages.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}
