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
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/juju/errors"
)

// BundleShape tags the known layouts of a serialized bundle. The shape
// is resolved once at the load boundary; everything past the decoder
// operates on a Snapshot regardless of which shape it came from.
type BundleShape int

const (
	// ShapeUnknown is a bundle matching no known layout.
	ShapeUnknown BundleShape = iota
	// ShapeTuple is an array of at least three elements: popularity
	// table, pivot, similarity matrix, in that order.
	ShapeTuple
	// ShapeKeyed is an object with optional keys "popular", "pivot"
	// and "scores". Absent keys leave the artifact empty.
	ShapeKeyed
	// ShapeTable is a bare popularity table.
	ShapeTable
)

func (s BundleShape) String() string {
	switch s {
	case ShapeTuple:
		return "tuple"
	case ShapeKeyed:
		return "keyed"
	case ShapeTable:
		return "table"
	default:
		return "unknown"
	}
}

// pivotPayload is the serialized form of a pivot table.
type pivotPayload struct {
	Index  []string    `json:"index"`
	Values [][]float32 `json:"values"`
}

type keyedPayload struct {
	Popular []PopularItem `json:"popular"`
	Pivot   *pivotPayload `json:"pivot"`
	Scores  [][]float32   `json:"scores"`
}

// ClassifyBundle tags the layout of a raw bundle document. An array
// whose first element is itself an array is the positional tuple; an
// array of objects is a bare popularity table; an object is the keyed
// layout.
func ClassifyBundle(data []byte) BundleShape {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err == nil {
		if len(elements) == 0 {
			return ShapeUnknown
		}
		if bytes.HasPrefix(bytes.TrimSpace(elements[0]), []byte("[")) {
			if len(elements) >= 3 {
				return ShapeTuple
			}
			return ShapeUnknown
		}
		return ShapeTable
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err == nil {
		return ShapeKeyed
	}
	return ShapeUnknown
}

// DecodeBundle decodes a three-artifact bundle into a snapshot. It
// returns an explicit error instead of substituting synthetic data;
// the fallback decision belongs to the caller.
func DecodeBundle(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Trace(err)
	}
	var (
		popular []PopularItem
		pivot   *pivotPayload
		scores  [][]float32
	)
	switch shape := ClassifyBundle(data); shape {
	case ShapeTuple:
		var elements []json.RawMessage
		if err = json.Unmarshal(data, &elements); err != nil {
			return nil, errors.Trace(err)
		}
		if err = json.Unmarshal(elements[0], &popular); err != nil {
			return nil, errors.Annotate(err, "decode popularity table")
		}
		if err = json.Unmarshal(elements[1], &pivot); err != nil {
			return nil, errors.Annotate(err, "decode pivot")
		}
		if err = json.Unmarshal(elements[2], &scores); err != nil {
			return nil, errors.Annotate(err, "decode similarity matrix")
		}
	case ShapeKeyed:
		var payload keyedPayload
		if err = json.Unmarshal(data, &payload); err != nil {
			return nil, errors.Trace(err)
		}
		popular = payload.Popular
		pivot = payload.Pivot
		scores = payload.Scores
	case ShapeTable:
		if err = json.Unmarshal(data, &popular); err != nil {
			return nil, errors.Annotate(err, "decode popularity table")
		}
	default:
		return nil, errors.NotValidf("bundle shape")
	}
	if pivot == nil {
		pivot = &pivotPayload{}
	}
	return NewSnapshot(popular, NewPivot(pivot.Index, pivot.Values), scores)
}

// OpenBundle decodes the bundle file at path.
func OpenBundle(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()
	return DecodeBundle(f)
}
