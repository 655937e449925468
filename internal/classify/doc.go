// Package classify memoizes the content-rating attribute of catalog entries.
// Ratings live in the bundle's sidecar descriptor; reading them is deferred
// until an entry becomes relevant, then cached for the life of the process.
package classify
