package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments for the production pipeline.
type Metrics struct {
	ordersCreated      metric.Int64Counter
	statusTransitions  metric.Int64Counter
	consumptionEvents  metric.Int64Counter
	insufficientStock  metric.Int64Counter
	requirementsBuilds metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "buestanflow"
	}
	meter := provider.Meter(name)

	ordersCreated, err := meter.Int64Counter("buestanflow_orders_created_total")
	if err != nil {
		return nil, err
	}
	statusTransitions, err := meter.Int64Counter("buestanflow_status_transitions_total")
	if err != nil {
		return nil, err
	}
	consumptionEvents, err := meter.Int64Counter("buestanflow_consumption_events_total")
	if err != nil {
		return nil, err
	}
	insufficientStock, err := meter.Int64Counter("buestanflow_insufficient_stock_total")
	if err != nil {
		return nil, err
	}
	requirementsBuilds, err := meter.Int64Counter("buestanflow_requirements_generated_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		ordersCreated:      ordersCreated,
		statusTransitions:  statusTransitions,
		consumptionEvents:  consumptionEvents,
		insufficientStock:  insufficientStock,
		requirementsBuilds: requirementsBuilds,
	}, nil
}

// RecordOrderCreated increments order creation counts.
func (m *Metrics) RecordOrderCreated(ctx context.Context, priority string) {
	if m == nil {
		return
	}
	attrs := filterAttributes(attribute.String("priority", strings.TrimSpace(priority)))
	m.ordersCreated.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordStatusTransition increments transition counts labeled by target status.
func (m *Metrics) RecordStatusTransition(ctx context.Context, toStatus string) {
	if m == nil {
		return
	}
	attrs := filterAttributes(attribute.String("to_status", strings.TrimSpace(toStatus)))
	m.statusTransitions.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordConsumption increments consumption event counts.
func (m *Metrics) RecordConsumption(ctx context.Context, items int) {
	if m == nil {
		return
	}
	m.consumptionEvents.Add(ctx, int64(items))
}

// RecordInsufficientStock increments stock rejection counts.
func (m *Metrics) RecordInsufficientStock(ctx context.Context) {
	if m == nil {
		return
	}
	m.insufficientStock.Add(ctx, 1)
}

// RecordRequirementsGenerated increments requirement materialization counts.
func (m *Metrics) RecordRequirementsGenerated(ctx context.Context) {
	if m == nil {
		return
	}
	m.requirementsBuilds.Add(ctx, 1)
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"priority":  {},
	"to_status": {},
}

// filterAttributes strips disallowed labels to keep metrics low-cardinality.
func filterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
