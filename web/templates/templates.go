// Package templates embeds the HTML views. Rendering is a collaborator of
// the handlers, not part of the domain logic.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
