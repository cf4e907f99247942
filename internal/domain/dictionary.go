package domain

// DictionaryEntry is a single word's record as shown in the dictionary panel.
// Phonetic, Example and AudioURL may be empty.
type DictionaryEntry struct {
	Headword   string
	Phonetic   string
	Definition string
	Example    string
	Synonyms   []string
	AudioURL   string
}

// HasAudio reports whether the entry carries a pronunciation clip.
func (e *DictionaryEntry) HasAudio() bool {
	return e != nil && e.AudioURL != ""
}

// LookupResult is either Found(Entry) or NotFound.
type LookupResult struct {
	Query string
	Found bool
	Entry *DictionaryEntry
}

// Found wraps an entry in a positive result.
func Found(query string, entry *DictionaryEntry) LookupResult {
	return LookupResult{Query: query, Found: true, Entry: entry}
}

// NotFound returns a negative result for query.
func NotFound(query string) LookupResult {
	return LookupResult{Query: query}
}

// Pronunciation tells the client how to voice a headword: play AudioURL when
// set, otherwise use speech synthesis on Headword when Speech is true.
type Pronunciation struct {
	Headword string
	AudioURL string
	Speech   bool
}
