// Copyright (c) 2026 Shelfnote. All rights reserved.

package rating_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shelfnote/shelfnote/pkg/rating"
)

/*
TestAverage verifies the mean calculation, including the zero-reviews case.
*/
func TestAverage(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"empty_is_zero", nil, 0},
		{"single_rating", []int{4}, 4},
		{"halfway", []int{4, 5}, 4.5},
		{"full_spread", []int{1, 2, 3, 4, 5}, 3},
		{"repeated_values", []int{5, 5, 5}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, rating.Average(tt.ratings), 1e-9)
		})
	}
}
