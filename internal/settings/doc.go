// Package settings persists the user's unpack switches and remembered paths
// between runs in a small JSON file.
package settings
