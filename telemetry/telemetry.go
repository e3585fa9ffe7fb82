// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package telemetry provides OpenTelemetry tracing and metrics for
// dispatched request descriptors.
//
// Install a Handler in the dispatcher's handler group to get:
//   - One span per dispatch, named "httpreq.dispatch", which is a child
//     of any span in the dispatch context. The span covers the whole
//     dispatch, including reading the response body.
//   - Trace context injected into the outgoing request headers, if
//     propagators are configured with WithPropagators.
//   - Metrics whose names start with "httpreq.dispatch." (meterPrefix
//     const): dispatches in flight, dispatch duration, body bytes read
//     and timeouts.
package telemetry

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelMetric "go.opentelemetry.io/otel/metric"
	metricNoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	otelTrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/gogama/httpreq"
	"github.com/gogama/httpreq/request"
	"github.com/gogama/httpreq/transient"
)

const (
	instrumentationName = "github.com/gogama/httpreq"
	meterPrefix         = "httpreq.dispatch."
	dispatchSpanName    = "httpreq.dispatch"
	timeoutEventName    = "timeout"
	maskedAttrValue     = "****"

	attrExecutionID = attribute.Key("httpreq.execution.id")
	attrProgress    = attribute.Key("httpreq.progress")
	attrBodyBytes   = attribute.Key("httpreq.body.bytes")
	attrErrCategory = attribute.Key("httpreq.error.category")
	attrHeaderPfx   = "httpreq.header."
)

type stateKey struct{}

type state struct {
	ctx   context.Context
	span  otelTrace.Span
	attrs []attribute.KeyValue
}

// A Handler records a span and metrics for each dispatch.
type Handler struct {
	cfg    config
	tracer otelTrace.Tracer
	meters *meters
}

// New returns a Handler which records telemetry using the given
// providers. A nil provider is replaced with a no-op provider.
func New(tracerProvider otelTrace.TracerProvider, meterProvider otelMetric.MeterProvider, opts ...Option) *Handler {
	if tracerProvider == nil {
		tracerProvider = noop.NewTracerProvider()
	}
	if meterProvider == nil {
		meterProvider = metricNoop.NewMeterProvider()
	}
	return &Handler{
		cfg:    newConfig(opts),
		tracer: tracerProvider.Tracer(instrumentationName),
		meters: newMeters(meterProvider.Meter(instrumentationName)),
	}
}

// Install creates a Handler with New and adds it to the end of each of
// g's handler chains that it handles.
func Install(g *httpreq.HandlerGroup, tracerProvider otelTrace.TracerProvider, meterProvider otelMetric.MeterProvider, opts ...Option) *Handler {
	h := New(tracerProvider, meterProvider, opts...)
	g.PushBack(httpreq.BeforeSend, h)
	g.PushBack(httpreq.AfterTimeout, h)
	g.PushBack(httpreq.AfterExecutionEnd, h)
	return h
}

// Handle records telemetry for evt.
func (h *Handler) Handle(evt httpreq.Event, e *request.Execution) {
	switch evt {
	case httpreq.BeforeSend:
		h.start(e)
	case httpreq.AfterTimeout:
		if s, ok := e.Value(stateKey{}).(*state); ok {
			s.span.AddEvent(timeoutEventName)
			h.meters.timeouts.Add(s.ctx, 1, otelMetric.WithAttributes(s.attrs...))
		}
	case httpreq.AfterExecutionEnd:
		h.end(e)
	}
}

func (h *Handler) start(e *request.Execution) {
	d := e.Descriptor
	u := d.URL()
	attrs := []attribute.KeyValue{
		semconv.HTTPRequestMethodKey.String(d.Method().String()),
		semconv.ServerAddress(u.Hostname()),
		attrProgress.Bool(d.Progress() != nil),
	}

	ctx, span := h.tracer.Start(
		e.Request.Context(),
		dispatchSpanName,
		otelTrace.WithSpanKind(otelTrace.SpanKindClient),
		otelTrace.WithTimestamp(e.Start),
		otelTrace.WithAttributes(attrs...),
		otelTrace.WithAttributes(
			attrExecutionID.String(e.ID.String()),
			semconv.URLFull(u.Redacted()),
		),
		otelTrace.WithAttributes(h.headerAttrs(d)...),
	)

	if h.cfg.propagators != nil {
		h.cfg.propagators.Inject(ctx, propagation.HeaderCarrier(e.Request.Header))
	}

	h.meters.inFlight.Add(ctx, 1, otelMetric.WithAttributes(attrs...))
	e.SetValue(stateKey{}, &state{ctx: ctx, span: span, attrs: attrs})
}

func (h *Handler) end(e *request.Execution) {
	s, ok := e.Value(stateKey{}).(*state)
	if !ok {
		return
	}

	// Same attributes as the +1 in start.
	h.meters.inFlight.Add(s.ctx, -1, otelMetric.WithAttributes(s.attrs...))

	meterAttrs := s.attrs
	if status := e.StatusCode(); status != 0 {
		meterAttrs = append(meterAttrs[:len(meterAttrs):len(meterAttrs)], semconv.HTTPResponseStatusCode(status))
		s.span.SetAttributes(semconv.HTTPResponseStatusCode(status))
	}
	elapsed := float64(e.Duration()) / float64(time.Millisecond)
	h.meters.duration.Record(s.ctx, elapsed, otelMetric.WithAttributes(meterAttrs...))
	h.meters.bytes.Add(s.ctx, int64(len(e.Body)), otelMetric.WithAttributes(meterAttrs...))
	s.span.SetAttributes(attrBodyBytes.Int(len(e.Body)))

	switch {
	case e.Err != nil:
		s.span.SetAttributes(attrErrCategory.String(transient.Categorize(e.Err).String()))
		s.span.RecordError(e.Err)
		s.span.SetStatus(codes.Error, e.Err.Error())
	case e.StatusCode() >= 400:
		s.span.SetStatus(codes.Error, http.StatusText(e.StatusCode()))
	}
	s.span.End(otelTrace.WithTimestamp(e.End))
}

func (h *Handler) headerAttrs(d *request.Descriptor) []attribute.KeyValue {
	values := make(map[string][]string)
	for _, f := range d.HeaderFields() {
		k := http.CanonicalHeaderKey(f.Name)
		values[k] = append(values[k], f.Value)
	}
	attrs := make([]attribute.KeyValue, 0, len(values))
	for k, v := range values {
		value := strings.Join(v, ";")
		if _, found := h.cfg.redactedHeaders[strings.ToLower(k)]; found {
			value = maskedAttrValue
		}
		attrs = append(attrs, attribute.String(attrHeaderPfx+k, value))
	}
	sort.SliceStable(attrs, func(i, j int) bool {
		return attrs[i].Key < attrs[j].Key
	})
	return attrs
}
