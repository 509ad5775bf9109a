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

// Pivot is the item-by-rater table. Only the row index (title to
// position) and its cardinality matter to the recommender; the rater
// columns are opaque.
type Pivot struct {
	si     map[string]int
	is     []string
	values [][]float32
}

// NewPivot creates a Pivot from row titles and their rater columns.
// Duplicate titles keep the first row.
func NewPivot(titles []string, values [][]float32) *Pivot {
	p := &Pivot{si: make(map[string]int, len(titles))}
	for i, title := range titles {
		if _, ok := p.si[title]; ok {
			continue
		}
		p.si[title] = len(p.is)
		p.is = append(p.is, title)
		if i < len(values) {
			p.values = append(p.values, values[i])
		} else {
			p.values = append(p.values, nil)
		}
	}
	return p
}

// Rows returns the number of rows.
func (p *Pivot) Rows() int {
	if p == nil {
		return 0
	}
	return len(p.is)
}

// Index returns the row position of a title.
func (p *Pivot) Index(title string) (int, bool) {
	if p == nil {
		return 0, false
	}
	row, ok := p.si[title]
	return row, ok
}

// Title returns the title at a row position.
func (p *Pivot) Title(row int) (string, bool) {
	if p == nil || row < 0 || row >= len(p.is) {
		return "", false
	}
	return p.is[row], true
}

// Titles returns all row titles in row order.
func (p *Pivot) Titles() []string {
	if p == nil {
		return nil
	}
	return p.is
}
