// Package boarddata provides embedded board and tile data and utilities for
// loading it.
package boarddata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
