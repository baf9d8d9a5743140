/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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
 *
 *
 */

// Package metrics exposes the cluster's named performance counters
// (the allocator profiler counter table) as Prometheus collectors, and
// implements memdomain's MetricsHook so allocator activity is observable
// without the allocator importing a metrics SDK.
package metrics

import (
	prmsdk "github.com/prometheus/client_golang/prometheus"

	"github.com/nabbar/cybercache/types"
)

// Recorder wires memdomain.MetricsHook (and, in the future, the
// compression dispatcher and reactor) into a Prometheus registry.
type Recorder struct {
	usedBytes   *prmsdk.GaugeVec
	quotaBytes  *prmsdk.GaugeVec
	allocTotal  *prmsdk.CounterVec
	freeTotal   *prmsdk.CounterVec
	reclaimCall *prmsdk.CounterVec
	reclaimByte *prmsdk.CounterVec
}

// NewRecorder builds and registers the collectors against reg. Passing
// prometheus.NewRegistry() keeps process-wide state out of tests.
func NewRecorder(reg prmsdk.Registerer) *Recorder {
	r := &Recorder{
		usedBytes: prmsdk.NewGaugeVec(prmsdk.GaugeOpts{
			Namespace: "cybercache",
			Subsystem: "memdomain",
			Name:      "used_bytes",
			Help:      "Bytes currently accounted for in a memory domain.",
		}, []string{"domain"}),
		quotaBytes: prmsdk.NewGaugeVec(prmsdk.GaugeOpts{
			Namespace: "cybercache",
			Subsystem: "memdomain",
			Name:      "quota_bytes",
			Help:      "Configured quota of a memory domain; 0 means unlimited.",
		}, []string{"domain"}),
		allocTotal: prmsdk.NewCounterVec(prmsdk.CounterOpts{
			Namespace: "cybercache",
			Subsystem: "memdomain",
			Name:      "alloc_total",
			Help:      "Allocations accounted against a memory domain.",
		}, []string{"domain"}),
		freeTotal: prmsdk.NewCounterVec(prmsdk.CounterOpts{
			Namespace: "cybercache",
			Subsystem: "memdomain",
			Name:      "free_total",
			Help:      "Releases accounted against a memory domain.",
		}, []string{"domain"}),
		reclaimCall: prmsdk.NewCounterVec(prmsdk.CounterOpts{
			Namespace: "cybercache",
			Subsystem: "memdomain",
			Name:      "reclaim_calls_total",
			Help:      "Reclaimer invocations triggered by quota pressure.",
		}, []string{"domain"}),
		reclaimByte: prmsdk.NewCounterVec(prmsdk.CounterOpts{
			Namespace: "cybercache",
			Subsystem: "memdomain",
			Name:      "reclaim_freed_bytes_total",
			Help:      "Bytes freed by reclaimer invocations.",
		}, []string{"domain"}),
	}

	reg.MustRegister(
		r.usedBytes, r.quotaBytes,
		r.allocTotal, r.freeTotal,
		r.reclaimCall, r.reclaimByte,
	)
	return r
}

// ObserveAlloc implements memdomain.MetricsHook.
func (r *Recorder) ObserveAlloc(d types.Domain, size int64) {
	r.allocTotal.WithLabelValues(d.String()).Inc()
	r.usedBytes.WithLabelValues(d.String()).Add(float64(size))
}

// ObserveFree implements memdomain.MetricsHook.
func (r *Recorder) ObserveFree(d types.Domain, size int64) {
	r.freeTotal.WithLabelValues(d.String()).Inc()
	r.usedBytes.WithLabelValues(d.String()).Sub(float64(size))
}

// ObserveReclaim implements memdomain.MetricsHook.
func (r *Recorder) ObserveReclaim(d types.Domain, requested, freed int64, attempts int) {
	r.reclaimCall.WithLabelValues(d.String()).Inc()
	r.reclaimByte.WithLabelValues(d.String()).Add(float64(freed))
}

// SetQuota publishes a domain's configured quota; call whenever
// memdomain.Runtime.SetQuota changes it.
func (r *Recorder) SetQuota(d types.Domain, bytes int64) {
	r.quotaBytes.WithLabelValues(d.String()).Set(float64(bytes))
}
