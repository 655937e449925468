// Package catalog discovers Wallpaper Engine workshop bundles and builds the
// in-memory catalog: one entry per directory carrying the scene.pkg manifest,
// with a best-effort preview resolution and sidecar metadata.
package catalog
