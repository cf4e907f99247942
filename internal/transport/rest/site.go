package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/englishmaster-backend/internal/domain"
	"github.com/heartmarshall/englishmaster-backend/internal/service/registration"
	"github.com/heartmarshall/englishmaster-backend/internal/service/site"
	"github.com/heartmarshall/englishmaster-backend/internal/transport/respond"
)

type siteService interface {
	Sections(ctx context.Context) []domain.SectionState
	ShowSectionByLabel(ctx context.Context, label string) ([]domain.SectionState, error)
	Slide(ctx context.Context, current int, action string, target int) (site.SliderState, error)
}

type registrationService interface {
	Complete(ctx context.Context, input registration.CompleteInput) (domain.RegistrationResult, error)
}

// SiteHandler serves page chrome: sections, the slider and registration.
type SiteHandler struct {
	site         siteService
	registration registrationService
	log          *slog.Logger
}

// NewSiteHandler creates a SiteHandler.
func NewSiteHandler(log *slog.Logger, siteSvc siteService, reg registrationService) *SiteHandler {
	return &SiteHandler{site: siteSvc, registration: reg, log: log.With("handler", "site")}
}

type sectionDTO struct {
	ID      string `json:"id"`
	Visible bool   `json:"visible"`
}

type sectionsResponse struct {
	Sections []sectionDTO `json:"sections"`
}

type slideRequest struct {
	Current int    `json:"current"`
	Action  string `json:"action"`
	Target  int    `json:"target"`
}

type storyDTO struct {
	Student string `json:"student"`
	Quote   string `json:"quote"`
}

type sliderResponse struct {
	Current    int      `json:"current"`
	Size       int      `json:"size"`
	Offsets    []int    `json:"offsets"`
	Story      storyDTO `json:"story"`
	AutoplayMS int64    `json:"autoplay_ms"`
}

type registrationRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type registrationResponse struct {
	FullName       string                  `json:"full_name"`
	Email          string                  `json:"email"`
	DashboardTitle string                  `json:"dashboard_title"`
	Notification   respond.NotificationDTO `json:"notification"`
}

func toSectionsResponse(states []domain.SectionState) sectionsResponse {
	out := sectionsResponse{Sections: make([]sectionDTO, len(states))}
	for i, s := range states {
		out.Sections[i] = sectionDTO{ID: s.ID, Visible: s.Visible}
	}
	return out
}

func (h *SiteHandler) Sections(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, toSectionsResponse(h.site.Sections(r.Context())))
}

// ShowSection accepts either a section ID or its navigation label.
func (h *SiteHandler) ShowSection(w http.ResponseWriter, r *http.Request) {
	states, err := h.site.ShowSectionByLabel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, toSectionsResponse(states))
}

func (h *SiteHandler) Slide(w http.ResponseWriter, r *http.Request) {
	var req slideRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	st, err := h.site.Slide(r.Context(), req.Current, req.Action, req.Target)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, sliderResponse{
		Current:    st.Carousel.Current,
		Size:       st.Carousel.Size,
		Offsets:    st.Offsets,
		Story:      storyDTO{Student: st.Story.Student, Quote: st.Story.Quote},
		AutoplayMS: st.Autoplay.Milliseconds(),
	})
}

// Register completes the sign-up form. It blocks for the simulated delay.
func (h *SiteHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	res, err := h.registration.Complete(r.Context(), registration.CompleteInput{
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, registrationResponse{
		FullName:       res.FullName,
		Email:          res.Email,
		DashboardTitle: res.DashboardTitle,
		Notification:   respond.ToNotificationDTO(domain.Success(domain.MsgRegistrationOK)),
	})
}
