// Package vector provides the placeholder embedding model and the cosine
// similarity scorer used to order restaurant candidates.
//
// Embed is a pure function of its input text. It stands in for a real
// embedding model and produces vectors with no semantic meaning, which keeps
// ranking reproducible in tests and offline runs.
package vector
