package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	t.Run("records per kind", func(t *testing.T) {
		reg := prometheus.NewPedanticRegistry()
		m := New(reg)

		m.BindingOpened("observable")
		m.BindingOpened("flowable")
		m.BindingClosed("observable")
		m.Emitted("flowable")
		m.Emitted("flowable")
		m.Failed("observable")

		assert.Equal(t, 0.0, testutil.ToFloat64(m.ActiveBindings.WithLabelValues("observable")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveBindings.WithLabelValues("flowable")))
		assert.Equal(t, 2.0, testutil.ToFloat64(m.Emissions.WithLabelValues("flowable")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures.WithLabelValues("observable")))

		count, err := testutil.GatherAndCount(reg)
		assert.NoError(t, err)
		assert.Equal(t, 4, count)
	})

	t.Run("nil metrics record nothing", func(t *testing.T) {
		var m *Metrics

		assert.NotPanics(t, func() {
			m.BindingOpened("observable")
			m.BindingClosed("observable")
			m.Emitted("observable")
			m.Failed("observable")
		})
	})
}
