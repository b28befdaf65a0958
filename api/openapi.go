// Package api содержит OpenAPI-описание HTTP API (отдаётся на /swagger/openapi.json).
package api

import _ "embed"

//go:embed openapi.json
var OpenAPISpec []byte
