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

package logics

import (
	"fmt"
	"sort"

	"github.com/juju/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/A-VIRAL-GUPTAA/book-recommender-deployement/base"
	"github.com/A-VIRAL-GUPTAA/book-recommender-deployement/base/log"
	"github.com/A-VIRAL-GUPTAA/book-recommender-deployement/model"
)

// NumRecommendations is the maximum number of titles returned per query.
const NumRecommendations = 5

const (
	// MsgModelUnavailable is returned when neither the similarity
	// model nor the popularity table is available.
	MsgModelUnavailable = "Model data unavailable. Please check backend setup."
	// MsgUnexpectedError is returned when a recommendation fails for
	// a reason other than an unknown title.
	MsgUnexpectedError = "An unexpected error occurred during recommendation."
)

// ErrModelDegraded is returned by Similar when the similarity model
// is not loaded.
var ErrModelDegraded = errors.New("similarity model is not loaded")

// BookNotFoundError reports a query title absent from the pivot's
// index. It is a user-visible result, not a fault.
type BookNotFoundError struct {
	Title string
}

func (e *BookNotFoundError) Error() string {
	return fmt.Sprintf("'%s' not found in the trained model's index", e.Title)
}

// Recommender answers similarity queries against the current model
// snapshot. Reads are lock-free; every call works on the snapshot
// published at its start.
type Recommender struct {
	store *model.Store
	rng   base.RandomGenerator
}

// NewRecommender creates a Recommender reading from store. The random
// generator drives degraded-mode sampling only.
func NewRecommender(store *model.Store, rng base.RandomGenerator) *Recommender {
	return &Recommender{store: store, rng: rng}
}

// Similar returns up to NumRecommendations titles ranked by descending
// similarity to title, ties broken by row order. The query's own row
// is excluded by index, not by sort position, so a non-self-maximal
// diagonal cannot push a real neighbor out of the result.
func (r *Recommender) Similar(title string) ([]string, error) {
	return similar(r.store.Get(), title)
}

func similar(snapshot *model.Snapshot, title string) ([]string, error) {
	if snapshot.Degraded() {
		return nil, ErrModelDegraded
	}
	row, ok := snapshot.Pivot.Index(title)
	if !ok {
		return nil, &BookNotFoundError{Title: title}
	}
	if row >= len(snapshot.Scores) {
		return nil, errors.Errorf("similarity matrix has no row %d", row)
	}
	scores := snapshot.Scores[row]
	candidates := make([]int, 0, len(scores))
	for i := range scores {
		if i != row {
			candidates = append(candidates, i)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return scores[candidates[i]] > scores[candidates[j]]
	})
	if len(candidates) > NumRecommendations {
		candidates = candidates[:NumRecommendations]
	}
	results := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		neighbor, ok := snapshot.Pivot.Title(candidate)
		if !ok {
			return nil, errors.Errorf("similarity matrix column %d has no pivot row", candidate)
		}
		results = append(results, neighbor)
	}
	return results, nil
}

// Recommend implements the full query contract: at most
// NumRecommendations entries, never nil, never an error. A degraded
// model answers with a random sample of popular titles, an unknown
// title with a message naming it, and any other failure with a
// generic message.
func (r *Recommender) Recommend(title string) (results []string) {
	defer func() {
		if err := recover(); err != nil {
			log.Logger().Error("recovered from panic in recommendation",
				zap.String("title", title), zap.Any("error", err))
			results = []string{MsgUnexpectedError}
		}
	}()
	snapshot := r.store.Get()
	if snapshot.Degraded() {
		if len(snapshot.Popular) == 0 {
			return []string{MsgModelUnavailable}
		}
		log.Logger().Debug("model not loaded, sampling popular titles",
			zap.String("title", title))
		rows := r.rng.Sample(0, len(snapshot.Popular), NumRecommendations)
		return lo.Map(rows, func(row int, _ int) string {
			return snapshot.Popular[row].Title
		})
	}
	results, err := similar(snapshot, title)
	if err != nil {
		var notFound *BookNotFoundError
		if errors.As(err, &notFound) {
			return []string{fmt.Sprintf("Error: %s.", notFound.Error())}
		}
		log.Logger().Error("recommendation failed",
			zap.String("title", title), zap.Error(err))
		return []string{MsgUnexpectedError}
	}
	return results
}
