// Package history persists extraction jobs and their per-item outcomes in a
// local SQLite database so past runs can be inspected after the fact.
package history
