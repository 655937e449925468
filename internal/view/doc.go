// Package view holds the interactive presentation state of the catalog:
// sort order, filter predicates, and the generation counter that guards
// overlapping asynchronous filter passes.
package view
