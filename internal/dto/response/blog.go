package response

type BlogPost struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Image      string `json:"image,omitempty"`
	AuthorName string `json:"author_name"`
	CreatedAt  string `json:"created_at"`
	Slug       string `json:"slug"`
}
