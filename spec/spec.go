// Package spec embeds the OpenAPI description of the HTTP API so the server
// can serve it at /api/openapi.yaml without a filesystem dependency.
package spec

import _ "embed"

// OpenAPI is the raw openapi.yaml document.
//
//go:embed openapi.yaml
var OpenAPI []byte
