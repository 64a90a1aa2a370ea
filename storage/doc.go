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


// Package storage provides the storage abstraction layer for shortlist.
//
// The only persisted state is the ingested dataset snapshot. This package
// defines the RestaurantRepository interface and the MUS binary encoding used
// for stored records, decoupling the ingestion and loading code from the
// BadgerDB implementation in storage/badger.
//
// Public constructors return the interface:
//
//	repo, err := badger.NewRepository(path)  // returns storage.RestaurantRepository
//
// Queries never read from the repository directly. The snapshot is loaded
// once into a read-only catalog.Dataset which every query shares.
//
// # Usage
//
//	repo, err := badger.NewRepository("/path/to/db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
//	for r, err := range repo.AllRestaurants(ctx) {
//	    ...
//	}
//
// Use in tests with in-memory storage:
//
//	repo, err := badger.NewMemoryRepository()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
