package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos/internal/checkout"
	"pos/internal/platform/config"
	"pos/internal/platform/logger"
	"pos/internal/platform/metrics"
	"pos/internal/platform/middleware"
	"pos/pkg/testutil"
)

func TestRouter(t *testing.T) {
	testutil.Given(t, "the server router", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		cfg := config.Config{
			APIEndpoint: "http://127.0.0.1:1",
			TaxRate:     config.DefaultTaxRate,
			HTTPTimeout: config.DefaultHTTPTimeout,
		}
		controller, err := checkout.NewController(cfg, logger.Discard(), metrics.New(reg))
		require.NoError(t, err)
		router := newRouter(controller, logger.Discard(), reg)

		testutil.When(t, "calling GET /healthz", func(t *testing.T) {
			rec := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			testutil.Then(t, "it should respond ok with a request id", func(t *testing.T) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.NotEmpty(t, rec.Header().Get(middleware.HeaderRequestID))
			})
		})

		testutil.When(t, "the caller sends its own request id", func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/session/", nil)
			req.Header.Set(middleware.HeaderRequestID, "till-7")
			rec := testutil.DoRequest(router, req)

			testutil.Then(t, "it should echo it", func(t *testing.T) {
				assert.Equal(t, "till-7", rec.Header().Get(middleware.HeaderRequestID))
			})
			testutil.And(t, "it should return the empty session view", func(t *testing.T) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Contains(t, rec.Body.String(), `"lines":[]`)
			})
		})

		testutil.When(t, "purchasing an empty cart", func(t *testing.T) {
			rec := testutil.DoRequest(router, httptest.NewRequest(http.MethodPost, "/session/purchase", nil))

			testutil.Then(t, "it should show a zero popup without calling out", func(t *testing.T) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Contains(t, rec.Body.String(), `"popup":{"excl_tax":0,"incl_tax":0}`)
			})
		})

		testutil.When(t, "calling GET /metrics", func(t *testing.T) {
			rec := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			testutil.Then(t, "it should expose the purchase counter", func(t *testing.T) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Contains(t, rec.Body.String(), "pos_purchases_total")
			})
		})
	})
}
