/*
 * MIT License
 *
 * Copyright (c) 2022-2025 Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package metric

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// QueryMetric instruments the request/response path of the contacts service
type QueryMetric struct {
	// Specifies the latency of a query in milliseconds
	duration metric.Float64Histogram
	// Specifies the number of queries, labelled by outcome
	count metric.Int64Counter
	// Specifies the number of entity actors spawned by the router
	entitiesCount metric.Int64ObservableGauge
}

// NewQueryMetric creates an instance of QueryMetric
func NewQueryMetric(meter metric.Meter) (*QueryMetric, error) {
	queryMetric := new(QueryMetric)
	var err error

	if queryMetric.duration, err = meter.Float64Histogram(
		"contacts.query.duration",
		metric.WithDescription("The latency of a contacts query in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, fmt.Errorf("failed to create duration instrument, %w", err)
	}

	if queryMetric.count, err = meter.Int64Counter(
		"contacts.query.count",
		metric.WithDescription("Total number of contacts queries by outcome"),
	); err != nil {
		return nil, fmt.Errorf("failed to create count instrument, %w", err)
	}

	if queryMetric.entitiesCount, err = meter.Int64ObservableGauge(
		"contacts.entities.count",
		metric.WithDescription("Number of per-user entity actors"),
	); err != nil {
		return nil, fmt.Errorf("failed to create entitiesCount instrument, %w", err)
	}

	return queryMetric, nil
}

// Duration returns the query latency histogram
func (x *QueryMetric) Duration() metric.Float64Histogram {
	return x.duration
}

// Count returns the query counter
func (x *QueryMetric) Count() metric.Int64Counter {
	return x.count
}

// EntitiesCount returns the entities gauge
func (x *QueryMetric) EntitiesCount() metric.Int64ObservableGauge {
	return x.entitiesCount
}
