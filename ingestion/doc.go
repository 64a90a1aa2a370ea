// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ingestion loads raw restaurant rows, cleans them into
// core.Restaurant records and stores the result as the dataset snapshot.
//
// Rows come from either the Zomato CSV export or a JSON document (a plain
// array of objects, or a datasets-server page with a "rows" list). Cleaning
// runs concurrently on an ants worker pool while preserving input order:
//
//	pipeline, err := ingestion.NewPipeline(repo, ingestion.WithPoolSize(8))
//	if err != nil {
//	    return err
//	}
//	defer pipeline.Release()
//
//	rows, err := ingestion.ReadCSV(f)
//	stats, err := pipeline.Run(ctx, rows, &ingestion.IngestOptions{Replace: true})
//
// Rows missing a usable rate, location, cuisines or name are dropped and
// counted in Stats.Dropped.
package ingestion
