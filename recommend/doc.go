// Package recommend chains search, prompt assembly and the generation backend
// into a single query pipeline.
//
// A Recommender processes each query start to finish: it searches the dataset,
// returns prompt.NoResultsMessage without contacting the backend when nothing
// matched, and otherwise returns the backend's raw response unmodified.
//
// The pipeline never retries. Callers that want a retry policy wrap their
// generator in a RetryingGenerator before handing it to New.
package recommend
