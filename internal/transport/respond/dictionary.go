package respond

import "github.com/heartmarshall/englishmaster-backend/internal/domain"

// EntryDTO is the word card.
type EntryDTO struct {
	Headword   string   `json:"headword"`
	Phonetic   string   `json:"phonetic,omitempty"`
	Definition string   `json:"definition"`
	Example    string   `json:"example,omitempty"`
	Synonyms   []string `json:"synonyms,omitempty"`
	AudioURL   string   `json:"audio_url,omitempty"`
	HasAudio   bool     `json:"has_audio"`
}

// ToEntryDTO converts a dictionary entry.
func ToEntryDTO(e *domain.DictionaryEntry) EntryDTO {
	return EntryDTO{
		Headword:   e.Headword,
		Phonetic:   e.Phonetic,
		Definition: e.Definition,
		Example:    e.Example,
		Synonyms:   e.Synonyms,
		AudioURL:   e.AudioURL,
		HasAudio:   e.HasAudio(),
	}
}
