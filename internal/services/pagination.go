package services

// MaxPerPage is the hard upper bound for any paginated read.
const MaxPerPage = 100

// ClampPage normalizes pagination input: page floors at 1, per_page is
// clamped into [1, MaxPerPage] with the endpoint default on nonsense input.
// Out-of-range pages simply produce empty result pages downstream.
func ClampPage(page, perPage, def int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = def
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}
