// Package catalog derives the visible page of catalog items from the
// full collection and the user's filter criteria. The derivation is a
// pure function: no I/O, no hidden state, identical inputs always yield
// identical output.
package catalog

import (
	"sort"
	"strings"

	"github.com/pkazmirchuk/shelfmark/internal/models"
)

// DefaultPageSize is used when a criteria carries no positive page size.
const DefaultPageSize = 12

// Criteria is what the user asked for. The zero value of Search and
// Genre means "no constraint".
type Criteria struct {
	// Search is matched case-insensitively as a substring of title,
	// author or isbn.
	Search string
	// Genre is an exact-match facet constraint from the controlled
	// vocabulary.
	Genre string
	// Page is the 1-based page to show; Apply clamps it.
	Page int
	// PageSize is the fixed number of items per page.
	PageSize int
}

// NewCriteria returns unconstrained criteria at page 1.
func NewCriteria(pageSize int) Criteria {
	return Criteria{Page: 1, PageSize: pageSize}
}

// WithSearch returns criteria with a new search constraint. A fresh
// filter starts the user at the top of the new result set.
func (c Criteria) WithSearch(search string) Criteria {
	c.Search = search
	c.Page = 1
	return c
}

// WithGenre returns criteria with a new genre constraint, reset to the
// first page.
func (c Criteria) WithGenre(genre string) Criteria {
	c.Genre = genre
	c.Page = 1
	return c
}

// WithPage returns criteria on another page of the same result set.
func (c Criteria) WithPage(page int) Criteria {
	c.Page = page
	return c
}

// Result is the derived view: the visible page plus everything the
// pagination and facet controls need.
type Result struct {
	// Items is the visible slice, original order preserved.
	Items []models.Book
	// TotalCount is the size of the filtered collection.
	TotalCount int
	// TotalPages is ceil(TotalCount/PageSize); zero when nothing matched.
	TotalPages int
	// Page is the clamped current page.
	Page int
	// Genres is the sorted distinct genre set of the UNfiltered
	// collection, so users can pivot facets without clearing search.
	Genres []string
}

// matches reports whether the lowercased query is a substring of the
// book's title, author or isbn. An absent isbn never matches.
func matches(b models.Book, query string) bool {
	return strings.Contains(strings.ToLower(b.Title), query) ||
		strings.Contains(strings.ToLower(b.Author.String()), query) ||
		(b.ISBN != "" && strings.Contains(strings.ToLower(b.ISBN), query))
}

// Apply filters, paginates and facets the collection. Every input
// combination, including empty collections and empty criteria, produces
// a well-defined result; the engine never errors.
func Apply(items []models.Book, c Criteria) Result {
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}

	filtered := items
	if c.Search != "" {
		query := strings.ToLower(c.Search)
		filtered = make([]models.Book, 0, len(items))
		for _, b := range items {
			if matches(b, query) {
				filtered = append(filtered, b)
			}
		}
	}
	if c.Genre != "" {
		narrowed := make([]models.Book, 0, len(filtered))
		for _, b := range filtered {
			if b.Genre.String() == c.Genre {
				narrowed = append(narrowed, b)
			}
		}
		filtered = narrowed
	}

	totalCount := len(filtered)
	totalPages := 0
	if totalCount > 0 {
		totalPages = (totalCount + c.PageSize - 1) / c.PageSize
	}

	// Clamp to [1, max(totalPages, 1)]: an empty result set still reports
	// page 1.
	limit := totalPages
	if limit < 1 {
		limit = 1
	}
	page := c.Page
	if page < 1 {
		page = 1
	}
	if page > limit {
		page = limit
	}

	start := (page - 1) * c.PageSize
	end := start + c.PageSize
	if start > totalCount {
		start = totalCount
	}
	if end > totalCount {
		end = totalCount
	}

	return Result{
		Items:      filtered[start:end],
		TotalCount: totalCount,
		TotalPages: totalPages,
		Page:       page,
		Genres:     distinctGenres(items),
	}
}

// distinctGenres collects the facet vocabulary present in the full
// collection, lexicographically sorted.
func distinctGenres(items []models.Book) []string {
	seen := make(map[string]struct{}, len(items))
	genres := make([]string, 0, len(items))
	for _, b := range items {
		g := b.Genre.String()
		if g == "" {
			continue
		}
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return genres
}
