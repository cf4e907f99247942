package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/englishmaster-backend/internal/domain"
	"github.com/heartmarshall/englishmaster-backend/internal/service/dictionary"
	"github.com/heartmarshall/englishmaster-backend/internal/transport/respond"
)

type dictionaryService interface {
	Lookup(ctx context.Context, query string) (domain.LookupResult, error)
	PronounceWord(ctx context.Context, query string) (dictionary.PronounceOutcome, error)
}

// DictionaryHandler serves /api/dictionary.
type DictionaryHandler struct {
	dict dictionaryService
	log  *slog.Logger
}

// NewDictionaryHandler creates a DictionaryHandler.
func NewDictionaryHandler(log *slog.Logger, dict dictionaryService) *DictionaryHandler {
	return &DictionaryHandler{dict: dict, log: log.With("handler", "dictionary")}
}

type lookupResponse struct {
	Query string           `json:"query"`
	Entry respond.EntryDTO `json:"entry"`
}

type pronunciationDTO struct {
	Headword string `json:"headword"`
	AudioURL string `json:"audio_url,omitempty"`
	Speech   bool   `json:"speech"`
}

type pronounceResponse struct {
	Pronunciation *pronunciationDTO        `json:"pronunciation,omitempty"`
	Notification  *respond.NotificationDTO `json:"notification,omitempty"`
}

// Lookup resolves ?q=. An unknown word is a 404 with the "word not found"
// notification.
func (h *DictionaryHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	res, err := h.dict.Lookup(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if !res.Found {
		writeError(w, r, h.log, domain.ErrWordNotFound)
		return
	}

	respond.JSON(w, http.StatusOK, lookupResponse{Query: res.Query, Entry: respond.ToEntryDTO(res.Entry)})
}

// Pronounce tells the page how to voice ?q=. When nothing can be played the
// response carries the "audio unavailable" notification instead.
func (h *DictionaryHandler) Pronounce(w http.ResponseWriter, r *http.Request) {
	out, err := h.dict.PronounceWord(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var resp pronounceResponse
	if p := out.Pronunciation; p != nil {
		resp.Pronunciation = &pronunciationDTO{Headword: p.Headword, AudioURL: p.AudioURL, Speech: p.Speech}
	}
	if n := out.Notification; n != nil {
		dto := respond.ToNotificationDTO(*n)
		resp.Notification = &dto
	}
	respond.JSON(w, http.StatusOK, resp)
}
