// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package telemetry

import otelMetric "go.opentelemetry.io/otel/metric"

type meters struct {
	inFlight otelMetric.Int64UpDownCounter
	duration otelMetric.Float64Histogram
	bytes    otelMetric.Int64Counter
	timeouts otelMetric.Int64Counter
}

func newMeters(meter otelMetric.Meter) *meters {
	return &meters{
		inFlight: upDownCounter(meter, meterPrefix+"in_flight", "Dispatches in flight."),
		duration: histogram(meter, meterPrefix+"duration", "Dispatch duration, including reading the response body.", "ms"),
		bytes:    counter(meter, meterPrefix+"body.bytes", "Response body bytes read.", "By"),
		timeouts: counter(meter, meterPrefix+"timeouts", "Dispatches which timed out.", "1"),
	}
}

func upDownCounter(meter otelMetric.Meter, name, desc string) otelMetric.Int64UpDownCounter {
	return mustInstrument(meter.Int64UpDownCounter(name, otelMetric.WithDescription(desc)))
}

func histogram(meter otelMetric.Meter, name, desc string, unit string) otelMetric.Float64Histogram {
	return mustInstrument(meter.Float64Histogram(name, otelMetric.WithDescription(desc), otelMetric.WithUnit(unit)))
}

func counter(meter otelMetric.Meter, name, desc string, unit string) otelMetric.Int64Counter {
	return mustInstrument(meter.Int64Counter(name, otelMetric.WithDescription(desc), otelMetric.WithUnit(unit)))
}

func mustInstrument[T any](instrument T, err error) T {
	if err != nil {
		panic(err)
	}
	return instrument
}
