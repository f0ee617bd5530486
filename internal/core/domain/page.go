package domain

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
	// MaxPageNumber keeps Skip far from overflow; anything past it is an empty page anyway.
	MaxPageNumber = 1_000_000
)

// Page is a normalised 1-based page request.
type Page struct {
	Number int
	Limit  int
}

// NewPage applies defaults and caps the limit at MaxPageLimit and the number
// at MaxPageNumber.
func NewPage(number, limit int) Page {
	if number < 1 {
		number = 1
	}
	if number > MaxPageNumber {
		number = MaxPageNumber
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return Page{Number: number, Limit: limit}
}

func (p Page) Skip() int64 { return int64(p.Number-1) * int64(p.Limit) }

func (p Page) TotalPages(total int64) int {
	if p.Limit <= 0 || total == 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}
