// Package data provides the embedded default product catalog.
package data

import _ "embed"

// Products contains the default catalog as a JSON array of products. It is
// used when no catalog file is configured.
//
//go:embed products.json
var Products []byte
