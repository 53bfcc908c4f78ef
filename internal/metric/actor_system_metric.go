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

import "go.opentelemetry.io/otel/metric"

// ActorSystemMetric groups the instruments describing an actor system.
//
// Instruments:
//   - actorsystem.actors.count       (Int64ObservableGauge)
//   - actorsystem.processed.count    (Int64ObservableCounter)
//   - actorsystem.deadletters.count  (Int64ObservableCounter)
//   - actorsystem.uptime             (Int64ObservableCounter, unit: seconds)
type ActorSystemMetric struct {
	actorsCount      metric.Int64ObservableGauge
	processedCount   metric.Int64ObservableCounter
	deadlettersCount metric.Int64ObservableCounter
	uptime           metric.Int64ObservableCounter
}

// NewActorSystemMetric creates the system-level instruments using the provided Meter.
func NewActorSystemMetric(meter metric.Meter) (*ActorSystemMetric, error) {
	var instruments ActorSystemMetric
	var err error

	if instruments.actorsCount, err = meter.Int64ObservableGauge(
		"actorsystem.actors.count",
		metric.WithDescription("Number of live actors in the actor system"),
	); err != nil {
		return nil, err
	}

	if instruments.processedCount, err = meter.Int64ObservableCounter(
		"actorsystem.processed.count",
		metric.WithDescription("Total number of messages processed by the actors of the system"),
	); err != nil {
		return nil, err
	}

	if instruments.deadlettersCount, err = meter.Int64ObservableCounter(
		"actorsystem.deadletters.count",
		metric.WithDescription("Total number of deadletters in the actor system"),
	); err != nil {
		return nil, err
	}

	if instruments.uptime, err = meter.Int64ObservableCounter(
		"actorsystem.uptime",
		metric.WithDescription("Uptime of the actor system in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return &instruments, nil
}

// ActorsCount returns the gauge reporting the number of live actors
func (x *ActorSystemMetric) ActorsCount() metric.Int64ObservableGauge {
	return x.actorsCount
}

// ProcessedCount returns the counter of processed messages
func (x *ActorSystemMetric) ProcessedCount() metric.Int64ObservableCounter {
	return x.processedCount
}

// DeadlettersCount returns the observable counter that tracks how many messages
// have been dropped to deadletters across the actor system.
func (x *ActorSystemMetric) DeadlettersCount() metric.Int64ObservableCounter {
	return x.deadlettersCount
}

// Uptime returns the actor system uptime in seconds
func (x *ActorSystemMetric) Uptime() metric.Int64ObservableCounter {
	return x.uptime
}
