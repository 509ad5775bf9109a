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

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/A-VIRAL-GUPTAA/book-recommender-deployement/base/log"
)

// PopularItem is one entry of the popularity table. The collection is
// assumed pre-sorted by popularity and consumed by prefix.
type PopularItem struct {
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	ImageURL   string  `json:"image_url"`
	NumRatings int     `json:"num_ratings"`
	AvgRating  float64 `json:"avg_rating"`
}

// Snapshot holds the three model artifacts and the derived title list.
// A snapshot is immutable after construction.
type Snapshot struct {
	Popular []PopularItem
	Pivot   *Pivot
	Scores  [][]float32
	Books   []string

	bookSet mapset.Set[string]
}

// NewSnapshot builds a snapshot and derives the known titles: the
// pivot's row titles when the pivot is non-empty, else the distinct
// titles of the popularity table.
func NewSnapshot(popular []PopularItem, pivot *Pivot, scores [][]float32) (*Snapshot, error) {
	if pivot.Rows() > 0 && scores != nil {
		if len(scores) != pivot.Rows() {
			return nil, errors.Errorf("pivot has %d rows but similarity matrix has %d", pivot.Rows(), len(scores))
		}
		for i, row := range scores {
			if len(row) != pivot.Rows() {
				return nil, errors.Errorf("similarity matrix row %d has %d columns, expected %d", i, len(row), pivot.Rows())
			}
		}
	}
	s := &Snapshot{
		Popular: popular,
		Pivot:   pivot,
		Scores:  scores,
	}
	if pivot.Rows() > 0 {
		s.Books = pivot.Titles()
	} else {
		s.Books = lo.Uniq(lo.Map(popular, func(item PopularItem, _ int) string {
			return item.Title
		}))
	}
	s.bookSet = mapset.NewThreadUnsafeSet(s.Books...)
	return s, nil
}

// Degraded reports whether similarity lookup is unavailable and only
// the popularity fallback can answer queries.
func (s *Snapshot) Degraded() bool {
	return s.Pivot.Rows() == 0 || s.Scores == nil
}

// Has reports whether a title is known to this snapshot.
func (s *Snapshot) Has(title string) bool {
	return s.bookSet.Contains(title)
}

// Store publishes the current snapshot. Loading builds a complete new
// snapshot and swaps it in with a single atomic update, so readers
// never observe partial state and the read path takes no locks.
type Store struct {
	path     string
	snapshot atomic.Pointer[Snapshot]
}

// NewStore creates a store reading bundles from path. Until the first
// load the store holds an empty degraded snapshot.
func NewStore(path string) *Store {
	s := &Store{path: path}
	empty, _ := NewSnapshot(nil, nil, nil)
	s.snapshot.Store(empty)
	return s
}

// Get returns the current snapshot.
func (s *Store) Get() *Snapshot {
	return s.snapshot.Load()
}

// Load decodes the bundle and publishes it. On any failure the mock
// snapshot is published instead so the store stays answerable; the
// returned error reports why the fallback was taken and is for
// logging only.
func (s *Store) Load() error {
	snapshot, err := OpenBundle(s.path)
	if err != nil {
		s.snapshot.Store(MockSnapshot())
		return errors.Annotatef(err, "load bundle %s", s.path)
	}
	s.snapshot.Store(snapshot)
	log.Logger().Info("model loaded",
		zap.Int("num_popular", len(snapshot.Popular)),
		zap.Int("num_books", len(snapshot.Books)),
		zap.Bool("degraded", snapshot.Degraded()))
	return nil
}
