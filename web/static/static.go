// Package static embeds the stylesheet and other fixed assets.
package static

import "embed"

//go:embed *.css
var FS embed.FS
