// Package web bundles the console's HTML templates and browser assets into the binary.
package web

import "embed"

// Templates holds layouts, partials and pages parsed by the view engine.
//
//go:embed templates/layouts/*.html templates/partials/*.html templates/pages/*.html
var Templates embed.FS

// Static holds the stylesheet and alert script served under /static/.
//
//go:embed static
var Static embed.FS
