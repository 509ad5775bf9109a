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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPivot(t *testing.T) {
	pivot := NewPivot([]string{"A", "B", "C", "B"}, [][]float32{{1}, {2}, {3}, {4}})
	assert.Equal(t, 3, pivot.Rows())
	row, ok := pivot.Index("B")
	assert.True(t, ok)
	assert.Equal(t, 1, row)
	_, ok = pivot.Index("Z")
	assert.False(t, ok)
	title, ok := pivot.Title(2)
	assert.True(t, ok)
	assert.Equal(t, "C", title)
	_, ok = pivot.Title(3)
	assert.False(t, ok)
	assert.Equal(t, []string{"A", "B", "C"}, pivot.Titles())

	// nil pivot is an empty pivot
	var nilPivot *Pivot
	assert.Zero(t, nilPivot.Rows())
	_, ok = nilPivot.Index("A")
	assert.False(t, ok)
}

func TestNewSnapshot(t *testing.T) {
	popular := []PopularItem{
		{Title: "A", Author: "a"},
		{Title: "B", Author: "b"},
		{Title: "A", Author: "a"},
	}
	// books from the pivot when the pivot is non-empty
	pivot := NewPivot([]string{"X", "Y"}, nil)
	snapshot, err := NewSnapshot(popular, pivot, [][]float32{{1, 0.5}, {0.5, 1}})
	assert.NoError(t, err)
	assert.Equal(t, []string{"X", "Y"}, snapshot.Books)
	assert.False(t, snapshot.Degraded())
	assert.True(t, snapshot.Has("X"))
	assert.False(t, snapshot.Has("A"))

	// books from distinct popular titles when the pivot is empty
	snapshot, err = NewSnapshot(popular, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, snapshot.Books)
	assert.True(t, snapshot.Degraded())
	assert.True(t, snapshot.Has("A"))

	// a pivot without a similarity matrix is degraded
	snapshot, err = NewSnapshot(popular, pivot, nil)
	assert.NoError(t, err)
	assert.True(t, snapshot.Degraded())

	// dimension mismatch
	_, err = NewSnapshot(popular, pivot, [][]float32{{1}})
	assert.Error(t, err)
	_, err = NewSnapshot(popular, pivot, [][]float32{{1, 0.5}, {0.5}})
	assert.Error(t, err)
}

func TestMockSnapshot(t *testing.T) {
	snapshot := MockSnapshot()
	assert.Len(t, snapshot.Popular, 50)
	assert.True(t, snapshot.Degraded())
	assert.Len(t, snapshot.Books, 50)
	for i, item := range snapshot.Popular {
		assert.Equal(t, fmt.Sprintf("Mock Popular Book %d", i+1), item.Title)
		assert.Equal(t, fmt.Sprintf("Author %d", i+1), item.Author)
		assert.Equal(t, 1000+i+1, item.NumRatings)
		if i > 0 {
			assert.Greater(t, item.NumRatings, snapshot.Popular[i-1].NumRatings)
		}
	}
	// deterministic
	assert.Equal(t, MockSnapshot().Popular, snapshot.Popular)
}
