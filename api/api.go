// Package api embeds the OpenAPI description of the Thursday Pints HTTP API.
package api

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml, served at /openapi.yaml.
//
//go:embed openapi.yaml
var OpenAPI []byte
