package dataset

import (
	"fmt"

	"expandlist/internal/domain"
)

// DefaultItems is the number of parents in the sample list
const DefaultItems = 20

// Options controls the generated sample data
type Options struct {
	Items             int
	InitiallyExpanded []int // parent ids expanded at construction
}

// DefaultOptions returns the stock sample: 20 parents, the first one expanded
func DefaultOptions() Options {
	return Options{
		Items:             DefaultItems,
		InitiallyExpanded: []int{0},
	}
}

// Generate builds the sample parents. Every parent gets one child and even
// numbered parents get a second one.
func Generate(opts Options) []*domain.ParentItem {
	expanded := make(map[int]bool, len(opts.InitiallyExpanded))
	for _, id := range opts.InitiallyExpanded {
		expanded[id] = true
	}

	parents := make([]*domain.ParentItem, 0, max(opts.Items, 0))
	for i := 0; i < opts.Items; i++ {
		children := []domain.ChildItem{{Text: fmt.Sprintf("Child %d", i)}}
		if i%2 == 0 {
			children = append(children, domain.ChildItem{Text: fmt.Sprintf("Second child %d", i)})
		}
		parents = append(parents, domain.NewParentItem(i, fmt.Sprintf("Parent %d", i), children, expanded[i]))
	}
	return parents
}
