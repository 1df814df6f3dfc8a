// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

func TestNoopMetrics(t *testing.T) {
	metrics = defaultNoopMetrics()

	assert.Nil(t, HTTPHandler())
	for _, m := range []any{
		Counter("noopCounter"),
		CounterVec("noopCounterVec", nil),
		Gauge("noopGauge"),
		Histogram("noopHist", nil),
		HistogramVec("noopHistVec", nil, nil),
	} {
		require.IsType(t, &noopMeters{}, m)
	}
	Counter("noopCounter").Add(1)
	Gauge("noopGauge").Set(1)
}

func TestPromMetrics(t *testing.T) {
	metrics = defaultNoopMetrics()
	lazyCounter := LazyLoadCounter("lazy_count")
	InitializePrometheusMetrics()
	prom := metrics.(*prometheusMetrics)

	InitializePrometheusMetrics()
	assert.Same(t, prom, metrics)

	require.IsType(t, &promCountMeter{}, lazyCounter())
	lazyCounter().Add(2)
	Counter("lazy_count").Add(1)

	vec := CounterVec("calls", []string{"method"})
	for i := 0; i < 10; i++ {
		vec.AddWithLabel(1, map[string]string{"method": strconv.Itoa(i % 2)})
	}
	Gauge("height").Set(42)

	hist := Histogram("gas", BucketGas)
	hist.Observe(30_000)
	hist.Observe(70_000)

	families, err := prom.registry.Gather()
	require.NoError(t, err)
	byName := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		byName[mf.GetName()] = mf
	}

	assert.Equal(t, float64(3), byName["slotgrid_lazy_count"].Metric[0].GetCounter().GetValue())
	assert.Len(t, byName["slotgrid_calls"].Metric, 2)
	assert.Equal(t, float64(42), byName["slotgrid_height"].Metric[0].GetGauge().GetValue())
	assert.Equal(t, uint64(2), byName["slotgrid_gas"].Metric[0].GetHistogram().GetSampleCount())
	assert.Equal(t, float64(100_000), byName["slotgrid_gas"].Metric[0].GetHistogram().GetSampleSum())

	server := httptest.NewServer(HTTPHandler())
	defer server.Close()
	res, err := http.Get(server.URL)
	require.NoError(t, err)
	defer res.Body.Close()

	parser := expfmt.TextParser{}
	scraped, err := parser.TextToMetricFamilies(res.Body)
	require.NoError(t, err)
	require.Contains(t, scraped, "slotgrid_height")
	assert.Equal(t, float64(42), scraped["slotgrid_height"].Metric[0].GetGauge().GetValue())
	assert.Contains(t, scraped, "go_goroutines")
}
