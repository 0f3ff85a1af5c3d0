// Package metrics provides an observability framework for the agent loop's
// stage and repair-attempt metrics.
//
// # Design philosophy
//
// This package implements the Null Object pattern so metrics collection
// never requires nil checks throughout the codebase. By default, every
// component uses NoopRecorder, whose methods do nothing and inline away.
//
// # Architecture
//
//  1. Recorder interface - defines all metrics operations
//  2. NoopRecorder - default implementation that does nothing (zero overhead)
//  3. PrometheusRecorder - real implementation, activated when needed
//
// # Usage pattern
//
// Components receive a Recorder through dependency injection:
//
//	type Loop struct {
//	    recorder metrics.Recorder
//	}
//
//	func NewLoop() *Loop {
//	    return &Loop{recorder: metrics.NoopRecorder{}}
//	}
//
// # Activation
//
// To enable metrics, swap NoopRecorder for a real implementation:
//
//	recorder := metrics.NewPrometheusRecorder(registry)
//	loop := NewLoop().WithRecorder(recorder)
package metrics
