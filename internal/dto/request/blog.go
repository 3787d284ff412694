package request

type CreatePostForm struct {
	Title   string `validate:"required"`
	Content string `validate:"required"`
}
