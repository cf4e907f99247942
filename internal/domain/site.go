package domain

import "time"

// Registration is the sign-up form content.
type Registration struct {
	FullName string
	Email    string
}

// RegistrationResult is what the dashboard shows after sign-up.
type RegistrationResult struct {
	FullName       string
	Email          string
	DashboardTitle string
	RegisteredAt   time.Time
}

// SectionState is the visibility of one page section.
type SectionState struct {
	ID      string
	Visible bool
}

// Carousel is the success-stories slider position. Navigation wraps around.
type Carousel struct {
	Current int
	Size    int
}

// Next moves to the following slide, wrapping to the first.
func (c Carousel) Next() Carousel {
	if c.Size <= 0 {
		return c
	}
	c.Current = (c.Current + 1) % c.Size
	return c
}

// Prev moves to the previous slide, wrapping to the last.
func (c Carousel) Prev() Carousel {
	if c.Size <= 0 {
		return c
	}
	c.Current = (c.Current - 1 + c.Size) % c.Size
	return c
}

// GoTo jumps to slide i.
func (c Carousel) GoTo(i int) (Carousel, error) {
	if i < 0 || i >= c.Size {
		return c, NewValidationError("slide", "out of range")
	}
	c.Current = i
	return c, nil
}

// Offsets returns each slide's horizontal offset in percent relative to the
// current slide.
func (c Carousel) Offsets() []int {
	out := make([]int, c.Size)
	for i := range out {
		out[i] = 100 * (i - c.Current)
	}
	return out
}
