// Package server exposes the layout pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz      liveness probe
//	GET  /metrics      Prometheus exposition
//	POST /v1/layout    network in, node positions out
//	POST /v1/render    network in, one rendered artifact out
//	POST /v1/modules   network in, module summaries out
//
// Request bodies are JSON and are checked with struct tags before any work
// is done, so a bad mode, color mode or format is a 400. The layout engine
// itself never rejects a mode; validation here is the upstream check.
//
// # State
//
// The server keeps no per-client state. Every request runs the pipeline
// synchronously to completion; concurrency exists only across requests.
// Results may be served from the runner's cache, which is keyed by content
// hash and therefore never mixes up two different networks.
//
// # Usage
//
//	srv := server.New(server.Config{Addr: ":8080"}, runner, logger)
//	if err := srv.ListenAndServe(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
