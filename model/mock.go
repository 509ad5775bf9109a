// Copyright 2025 book-recommender Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import "fmt"

const numMockBooks = 50

// MockSnapshot builds the deterministic fallback dataset published
// when a bundle cannot be loaded: 50 synthetic popular books with
// increasing rating counts, no pivot and no similarity matrix. The
// store stays answerable in degraded mode.
func MockSnapshot() *Snapshot {
	popular := make([]PopularItem, 0, numMockBooks)
	for i := 1; i <= numMockBooks; i++ {
		popular = append(popular, PopularItem{
			Title:      fmt.Sprintf("Mock Popular Book %d", i),
			Author:     fmt.Sprintf("Author %d", i),
			ImageURL:   fmt.Sprintf("https://placehold.co/80x120/4f46e5/ffffff?text=Book%d", i),
			NumRatings: 1000 + i,
			AvgRating:  4.0 + float64(i)/100,
		})
	}
	snapshot, _ := NewSnapshot(popular, nil, nil)
	return snapshot
}
