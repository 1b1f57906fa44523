// Package api embeds the OpenAPI description of the strata HTTP surface.
package api

import _ "embed"

// Spec is the raw OpenAPI document served at /openapi.yaml and validated
// in tests.
//
//go:embed openapi.yaml
var Spec []byte
