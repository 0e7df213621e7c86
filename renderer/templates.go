package renderer

import "embed"

// templates holds the markdown templates. A template named a_b.md is a partial of a.md.
//
//go:embed templates/*.md
var templates embed.FS
