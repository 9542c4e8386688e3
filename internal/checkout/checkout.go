// Package checkout assembles a session controller from configuration.
package checkout

import (
	"fmt"
	"log/slog"

	"pos/internal/catalog"
	"pos/internal/checkout/models"
	"pos/internal/platform/config"
	"pos/internal/platform/httpclient"
	"pos/internal/platform/metrics"
	"pos/internal/purchase"
	"pos/internal/sales"
	"pos/internal/session"
	"pos/internal/totals"
)

// NewController wires the catalog and sales clients, the purchase submitter
// and the totals calculator into a session controller. m may be nil.
func NewController(cfg config.Config, logger *slog.Logger, m *metrics.Metrics) (*session.Controller, error) {
	rate, err := totals.ParseTaxRate(cfg.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("tax rate: %w", err)
	}
	httpClient := httpclient.New(cfg.HTTPTimeout)

	cat, err := catalog.New(cfg.APIEndpoint,
		catalog.WithHTTPClient(httpClient),
		catalog.WithLogger(logger),
		catalog.WithMetrics(m),
	)
	if err != nil {
		return nil, err
	}
	salesClient, err := sales.New(cfg.APIEndpoint,
		sales.WithHTTPClient(httpClient),
		sales.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	submitter, err := purchase.NewSubmitter(salesClient,
		purchase.WithLogger(logger),
		purchase.WithMetrics(m),
		purchase.WithTerminal(models.Terminal{
			EmployeeCode: cfg.EmployeeCode,
			StoreCode:    cfg.StoreCode,
			PosNo:        cfg.TerminalNo,
		}),
	)
	if err != nil {
		return nil, err
	}

	return session.New(cat, submitter,
		session.WithLogger(logger),
		session.WithMetrics(m),
		session.WithCalculator(totals.NewCalculator(rate)),
	)
}
