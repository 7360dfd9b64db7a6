// Package template defines the renderer-agnostic template seam. The gotemplate
// subpackage provides the pongo2-backed engine the HTML renderer uses to turn
// widget template data into markup.
package template
