package telemetry

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// ExportInterval is how often enabled metrics are written out.
const ExportInterval = 30 * time.Second

// Provider owns the meter provider handed to New.
type Provider struct {
	mp  metric.MeterProvider
	sdk *sdkmetric.MeterProvider
}

// NewProvider returns a no-op provider when disabled. When enabled, metrics
// are exported periodically to w as JSON.
func NewProvider(enabled bool, w io.Writer) (*Provider, error) {
	if !enabled {
		return &Provider{mp: noop.NewMeterProvider()}, nil
	}

	exp, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}
	res := resource.NewSchemaless(attribute.String("service.name", "bascule"))
	sdk := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(ExportInterval))),
	)
	return &Provider{mp: sdk, sdk: sdk}, nil
}

func (p *Provider) MeterProvider() metric.MeterProvider { return p.mp }

func (p *Provider) Enabled() bool { return p.sdk != nil }

// Shutdown flushes pending metrics. It is a no-op when disabled.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.sdk == nil {
		return nil
	}
	if err := p.sdk.Shutdown(ctx); err != nil {
		return fmt.Errorf("metric shutdown failed: %w", err)
	}
	return nil
}
