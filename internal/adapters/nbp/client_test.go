package nbp_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/currency_rates_api/internal/adapters/nbp"
	"github.com/SscSPs/currency_rates_api/internal/apperrors"
	"github.com/SscSPs/currency_rates_api/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tableAResponse = `[
  {"table":"A","no":"203/A/NBP/2025","effectiveDate":"2025-10-20",
   "rates":[{"currency":"dolar amerykański","code":"USD","mid":4.0000},{"currency":"euro","code":"EUR","mid":4.2500}]},
  {"table":"A","no":"204/A/NBP/2025","effectiveDate":"2025-10-22",
   "rates":[{"currency":"dolar amerykański","code":"USD","mid":4.0200}]}
]`

var (
	start = time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	end   = time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC)
)

func TestFetchTables_Success(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(tableAResponse))
	}))
	defer server.Close()

	client := nbp.NewClient(nbp.WithBaseURL(server.URL+"/api/"), nbp.WithTimeout(2*time.Second))

	tables, err := client.FetchTables(context.Background(), "A", start, end)

	require.NoError(t, err)
	assert.Equal(t, "/api/exchangerates/tables/A/2025-10-20/2025-10-22/", gotPath)
	assert.Equal(t, "format=json", gotQuery)
	require.Len(t, tables, 2)
	assert.Equal(t, "2025-10-20", tables[0].EffectiveDate)
	assert.Equal(t, "A", tables[0].Table)
	assert.Len(t, tables[0].Rates, 2)
	assert.Equal(t, "4.02", tables[1].Rates[0].Mid.String())
}

func TestFetchTables_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("404 NotFound - Not Found - Brak danych"))
	}))
	defer server.Close()

	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	client := nbp.NewClient(nbp.WithBaseURL(server.URL), nbp.WithMetrics(m))

	tables, err := client.FetchTables(context.Background(), "B", start, end)

	require.Error(t, err)
	assert.Nil(t, tables)
	assert.ErrorIs(t, err, apperrors.ErrSourceFetch)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "Brak danych")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SourceFetchesTotal.WithLabelValues("B", metrics.StatusFailure)))
}

func TestFetchTables_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	}))
	defer server.Close()

	client := nbp.NewClient(nbp.WithBaseURL(server.URL))

	_, err := client.FetchTables(context.Background(), "A", start, end)

	assert.ErrorIs(t, err, apperrors.ErrSourceFetch)
}

func TestFetchTables_InvalidTableRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"effectiveDate":"2025-10-20","rates":[{"code":"USD","mid":-1}]}]`))
	}))
	defer server.Close()

	client := nbp.NewClient(nbp.WithBaseURL(server.URL))

	_, err := client.FetchTables(context.Background(), "A", start, end)

	assert.ErrorIs(t, err, apperrors.ErrSourceFetch)
}

func TestFetchTables_Timeout(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := nbp.NewClient(nbp.WithBaseURL(server.URL), nbp.WithTimeout(50*time.Millisecond))

	_, err := client.FetchTables(context.Background(), "A", start, end)

	assert.ErrorIs(t, err, apperrors.ErrSourceFetch)
	assert.Equal(t, int32(1), calls.Load(), "no retries expected")
}

func TestFetchTables_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(tableAResponse))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := nbp.NewClient(nbp.WithBaseURL(server.URL)).FetchTables(ctx, "A", start, end)

	assert.ErrorIs(t, err, apperrors.ErrSourceFetch)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTables(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, nbp.NewClient().Tables())

	client := nbp.NewClient(nbp.WithTables([]string{"A"}))
	got := client.Tables()
	got[0] = "Z"
	assert.Equal(t, []string{"A"}, client.Tables())
}
