package models

// Item is a single to-do entry. Image is nil when no photo was attached,
// otherwise it holds a relative path like "uploads/photo-...jpg".
type Item struct {
	ID    int     `json:"id"`
	Text  string  `json:"text"`
	Image *string `json:"image"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
