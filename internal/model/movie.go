package model

// Movie is a catalog record for one film.  Titles and synopses exist
// in both site languages; helpers below pick the right variant so
// callers never branch on the language code themselves.
//
// Fields:
//  ID          – movie identifier in the catalog service.
//  TitleKG     – Kyrgyz title.
//  TitleRU     – Russian title.
//  SynopsisKG  – Kyrgyz synopsis.
//  SynopsisRU  – Russian synopsis.
//  Trailer     – trailer URL.
//  Genre       – genre label.
//  Language    – original audio language.
//  Duration    – running time in minutes.
//  Poster      – poster image reference.
//  ReleaseDate – release date (YYYY-MM-DD).
//  IsShowing   – whether the movie is currently scheduled.
type Movie struct {
	ID          string `json:"id"`
	TitleKG     string `json:"title_kg"`
	TitleRU     string `json:"title_ru"`
	SynopsisKG  string `json:"synopsis_kg"`
	SynopsisRU  string `json:"synopsis_ru"`
	Trailer     string `json:"trailer"`
	Genre       string `json:"genre"`
	Language    string `json:"language"`
	Duration    int    `json:"duration"`
	Poster      string `json:"poster"`
	ReleaseDate string `json:"release_date"`
	IsShowing   bool   `json:"is_showing"`
}

// Title returns the movie title for the given language code.  Kyrgyz
// is the default when the requested variant is unknown or empty.
func (m Movie) Title(lang string) string {
	if lang == "ru" && m.TitleRU != "" {
		return m.TitleRU
	}
	return m.TitleKG
}

// Synopsis returns the synopsis for the given language code, falling
// back to Kyrgyz the same way Title does.
func (m Movie) Synopsis(lang string) string {
	if lang == "ru" && m.SynopsisRU != "" {
		return m.SynopsisRU
	}
	return m.SynopsisKG
}
