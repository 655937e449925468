// Package logging centralizes slog construction and shared structured
// logging conventions: a console handler with component prefixes, a JSON
// alternative, attribute helpers, and context-derived fields.
package logging
