// Package services holds cross-cutting service conventions: the shared error
// taxonomy used to classify failures and context annotation helpers carried
// through the pipeline.
package services
