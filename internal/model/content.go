package model

// NewsItem is a published news entry shown on the news page.
type NewsItem struct {
	ID        string `json:"id"`
	TitleKG   string `json:"title_kg"`
	TitleRU   string `json:"title_ru"`
	ContentKG string `json:"content_kg"`
	ContentRU string `json:"content_ru"`
	Image     string `json:"image"`
	Published bool   `json:"published"`
	CreatedAt string `json:"created_at"`
}

// GalleryItem is one photo of the cinema gallery.
type GalleryItem struct {
	ID            string `json:"id"`
	TitleKG       string `json:"title_kg"`
	TitleRU       string `json:"title_ru"`
	DescriptionKG string `json:"description_kg"`
	DescriptionRU string `json:"description_ru"`
	Image         string `json:"image"`
	Category      string `json:"category"`
	CreatedAt     string `json:"created_at"`
}
