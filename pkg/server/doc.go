// Package server exposes the render pipeline over HTTP.
//
// # Endpoints
//
//	POST /v1/render   render a chart, respond with the artifact bytes
//	POST /v1/range    lay a chart out, respond with its value range as JSON
//	GET  /healthz     liveness probe
//
// Both POST endpoints take the same JSON body:
//
//	{
//	  "dataset": {"series": [...], "categories": [...], "values": [[...]]},
//	  "config":  {"title": "Sales", "groups": [{"name": "EU", "series": ["Apples (EU)"]}]},
//	  "format":  "svg"
//	}
//
// Instead of "dataset" a request may carry "csv" (a CSV document as a string)
// or "source" (an http or https URL). Local paths are refused, and remote
// sources are fetched only from hosts listed in Server.AllowedHosts. The
// check covers the requested host, not the targets of redirects.
//
// Failures are answered with {"error": ..., "code": ..., "request_id": ...}
// and a status derived from the error code.
package server
