// Package catalog holds the read-only restaurant dataset and the filter engine
// that selects records matching a user's preferences.
//
// A Dataset is built once from ingested records and shared by every query.
// Nothing in this package mutates a Dataset after construction, so concurrent
// queries may filter the same Dataset without locking.
package catalog
