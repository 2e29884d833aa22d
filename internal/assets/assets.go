// Package assets embeds the files shipped inside the binary.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed locales/*.toml
var localesFS embed.FS

// Locales is rooted at internal/assets/locales and holds one
// active.<lang>.toml message file per language.
var Locales fs.FS

func init() {
	// Embed paths include the leading directory; strip it.
	sub, err := fs.Sub(localesFS, "locales")
	if err != nil {
		panic(err)
	}
	Locales = sub
}
