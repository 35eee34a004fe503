package catalog

// Ellipsis marks a collapsed run of hidden pages in a pagination window.
const Ellipsis = -1

// PageWindow returns the page numbers to render: page 1, the last page,
// the current page and its neighbours. Each gap between shown numbers
// collapses into a single Ellipsis; a gap hiding only one page renders
// that page instead, so an ellipsis never stands in for less than two
// pages and two ellipses are never adjacent.
func PageWindow(current, total int) []int {
	if total <= 0 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	window := make([]int, 0, 7)
	last := 0
	for p := 1; p <= total; p++ {
		if p != 1 && p != total && (p < current-1 || p > current+1) {
			continue
		}
		switch gap := p - last; {
		case gap == 2:
			window = append(window, p-1)
		case gap > 2:
			window = append(window, Ellipsis)
		}
		window = append(window, p)
		last = p
	}
	return window
}
