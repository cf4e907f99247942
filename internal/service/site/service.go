// Package site holds the page chrome state: which section is shown and
// where the success-stories slider is.
package site

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/heartmarshall/englishmaster-backend/internal/domain"
)

// DefaultSections is the page's section order. The first one is shown on load.
var DefaultSections = []string{
	"hero",
	"features-overview",
	"dashboard",
	"courses",
	"dictionary",
	"live-classes",
	"quiz",
	"payment",
	"register",
	"success-stories",
	"slider",
	"about",
	"signin",
}

// Story is one slide of the success-stories slider.
type Story struct {
	Student string
	Quote   string
}

// DefaultStories are the slides shown by default.
var DefaultStories = []Story{
	{Student: "Maria G.", Quote: "I passed my IELTS with a 7.5 after three months of live classes."},
	{Student: "Kenji T.", Quote: "The daily quizzes made grammar finally click for me."},
	{Student: "Fatima A.", Quote: "I now lead meetings in English at work with confidence."},
}

// SliderAutoplay is how often the slider advances on its own.
const SliderAutoplay = 4 * time.Second

// Slider actions.
const (
	SlideNext = "next"
	SlidePrev = "prev"
	SlideGoTo = "goto"
)

// SliderState is the slider after an action.
type SliderState struct {
	Carousel domain.Carousel
	Offsets  []int
	Story    Story
	Autoplay time.Duration
}

// Service answers section and slider requests. It keeps no per-client state.
type Service struct {
	sections []string
	stories  []Story
	log      *slog.Logger
}

// NewService creates a site service over the given sections and stories.
func NewService(log *slog.Logger, sections []string, stories []Story) *Service {
	return &Service{
		sections: slices.Clone(sections),
		stories:  slices.Clone(stories),
		log:      log.With("service", "site"),
	}
}

// Sections returns the initial visibility: only the first section shown.
func (s *Service) Sections(_ context.Context) []domain.SectionState {
	if len(s.sections) == 0 {
		return nil
	}
	return s.visibility(s.sections[0])
}

// ShowSection makes id the only visible section.
func (s *Service) ShowSection(ctx context.Context, id string) ([]domain.SectionState, error) {
	if !slices.Contains(s.sections, id) {
		return nil, fmt.Errorf("section %q: %w", id, domain.ErrSectionNotFound)
	}
	s.log.DebugContext(ctx, "show section", slog.String("section", id))
	return s.visibility(id), nil
}

// ShowSectionByLabel resolves a navigation label such as "Live Classes"
// to its section and shows it.
func (s *Service) ShowSectionByLabel(ctx context.Context, label string) ([]domain.SectionState, error) {
	return s.ShowSection(ctx, domain.SectionID(label))
}

func (s *Service) visibility(shown string) []domain.SectionState {
	out := make([]domain.SectionState, len(s.sections))
	for i, id := range s.sections {
		out[i] = domain.SectionState{ID: id, Visible: id == shown}
	}
	return out
}

// Slide applies action to the slider at position current. target is used
// only by SlideGoTo.
func (s *Service) Slide(_ context.Context, current int, action string, target int) (SliderState, error) {
	c := domain.Carousel{Current: current, Size: len(s.stories)}
	if current < 0 || current >= c.Size {
		return SliderState{}, domain.NewValidationError("current", "out of range")
	}

	switch action {
	case SlideNext:
		c = c.Next()
	case SlidePrev:
		c = c.Prev()
	case SlideGoTo:
		var err error
		if c, err = c.GoTo(target); err != nil {
			return SliderState{}, err
		}
	default:
		return SliderState{}, domain.NewValidationError("action", "must be next, prev or goto")
	}

	return SliderState{
		Carousel: c,
		Offsets:  c.Offsets(),
		Story:    s.stories[c.Current],
		Autoplay: SliderAutoplay,
	}, nil
}
