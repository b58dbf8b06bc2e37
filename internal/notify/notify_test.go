package notify

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digitalbookstore/storefront/internal/logger"
)

type captureEmitter struct {
	events []any
}

func (c *captureEmitter) Emit(event any) { c.events = append(c.events, event) }

func TestEmitterSink_WrapsToast(t *testing.T) {
	emitter := &captureEmitter{}
	sink := NewEmitterSink(emitter)

	sink.Emit(Success, `"Dune" added to cart`)

	require.Len(t, emitter.events, 1)
	toast, ok := emitter.events[0].(Toast)
	require.True(t, ok)
	assert.Equal(t, Success, toast.Severity)
	assert.Equal(t, `"Dune" added to cart`, toast.Text)
	assert.False(t, toast.CreatedAt.IsZero())

	_, err := uuid.Parse(toast.ID)
	assert.NoError(t, err)
}

func TestNewToast_UniqueIDs(t *testing.T) {
	a := NewToast(Info, "x")
	b := NewToast(Info, "x")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})

	NewLogSink(log).Emit(Info, "Checkout not implemented")

	out := buf.String()
	assert.Contains(t, out, `"component":"notify"`)
	assert.Contains(t, out, `"severity":"info"`)
	assert.Contains(t, out, `"text":"Checkout not implemented"`)
}

func TestFanout_PreservesOrder(t *testing.T) {
	var order []string
	first := Func(func(_ Severity, text string) { order = append(order, "first:"+text) })
	second := Func(func(_ Severity, text string) { order = append(order, "second:"+text) })

	Fanout{first, nil, second}.Emit(Info, "hi")

	assert.Equal(t, []string{"first:hi", "second:hi"}, order)
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	r.Emit(Success, "a")
	r.Emit(Info, "b")

	msgs := r.Messages()
	assert.Equal(t, []Message{{Success, "a"}, {Info, "b"}}, msgs)

	msgs[0].Text = "mutated"
	assert.Equal(t, "a", r.Messages()[0].Text)

	r.Reset()
	assert.Empty(t, r.Messages())
}

func TestDiscardAndMetricsSink(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard.Emit(Info, "gone")
		NewMetricsSink(nil).Emit(Success, "counted nowhere")
	})
}
