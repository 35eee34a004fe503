package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageWindow(t *testing.T) {
	e := Ellipsis
	tests := []struct {
		name    string
		current int
		total   int
		want    []int
	}{
		{"no pages", 1, 0, nil},
		{"single page", 1, 1, []int{1}},
		{"all pages fit", 2, 3, []int{1, 2, 3}},
		{"middle of a long run", 6, 10, []int{1, e, 5, 6, 7, e, 10}},
		{"near the start", 2, 10, []int{1, 2, 3, e, 10}},
		{"near the end", 9, 10, []int{1, e, 8, 9, 10}},
		{"single hidden page is shown", 4, 5, []int{1, 2, 3, 4, 5}},
		{"current clamped high", 99, 4, []int{1, 2, 3, 4}},
		{"current clamped low", -1, 4, []int{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PageWindow(tt.current, tt.total))
		})
	}
}

func TestPageWindow_NeverTwoAdjacentEllipses(t *testing.T) {
	for total := 1; total <= 30; total++ {
		for current := 1; current <= total; current++ {
			window := PageWindow(current, total)
			for i := 1; i < len(window); i++ {
				if window[i] == Ellipsis && window[i-1] == Ellipsis {
					t.Fatalf("adjacent ellipses at current=%d total=%d: %v", current, total, window)
				}
			}
			assert.Equal(t, 1, window[0])
			assert.Equal(t, total, window[len(window)-1])
		}
	}
}
