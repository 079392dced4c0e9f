// Package web embeds the browser-side assets: the feed shell, the player
// shell and the two demo games the catalog seeds.
package web

import "embed"

//go:embed static games
var Assets embed.FS
