// Package web embeds the single-page frontend served at the API root.
package web

import "embed"

//go:embed static
var Static embed.FS
