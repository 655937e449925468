// Package extraction orchestrates unpacking selected bundles through the
// external RePKG tool: destination preflight, sequential batch execution
// with per-item accounting, and the optional media-only cleanup pass.
package extraction
