// Package preview turns resolved preview assets into self-contained data-URI
// handles that a presentation layer can attach without touching the filesystem
// again.
package preview
