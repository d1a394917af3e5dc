// Package server exposes the pipeline over HTTP.
//
// Requests carry a resource bundle as the body (JSON by default; YAML or
// TOML by Content-Type) and pipeline options as query parameters, e.g.
//
//	curl --data-binary @bundle.json 'localhost:8080/v1/render?direction=TB&select=index'
//
// Every response carries an X-Request-ID. Errors are JSON:
//
//	{"code": "INVALID_OPTION", "message": "...", "request_id": "..."}
package server
