package db

const (
	DefaultPage = 1
	MaxLimit    = 100
)

// Page is a clamped page/limit pair. Build it with NewPage.
type Page struct {
	Page  int
	Limit int
}

// NewPage clamps page to >= 1 and limit to [1, MaxLimit]. A zero
// limit means "not supplied" and falls back to def.
func NewPage(page, limit, def int) Page {
	if page < 1 {
		page = DefaultPage
	}
	if limit == 0 {
		limit = def
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Page: page, Limit: limit}
}

func (p Page) Offset() int { return (p.Page - 1) * p.Limit }

// TotalPages is ceil(total / limit).
func (p Page) TotalPages(total int) int {
	if total <= 0 || p.Limit <= 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}

// StarFilter narrows ListStars; nil fields are ignored.
type StarFilter struct {
	SeasonID *int
}
