package api

import (
	"context"
	"fmt"
	"io"

	"travel-booking/internal/dto/response"
)

// ListPosts fetches all blog posts. Public endpoint.
func (c *Client) ListPosts(ctx context.Context) ([]response.BlogPost, error) {
	var posts []response.BlogPost
	if err := c.getJSON(ctx, "users/blog/posts/", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost fetches a single blog post by slug. Public endpoint.
func (c *Client) GetPost(ctx context.Context, slug string) (*response.BlogPost, error) {
	var post response.BlogPost
	if err := c.getJSON(ctx, fmt.Sprintf("users/blog/posts/%s/", slug), &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost publishes a blog post with an optional cover image.
func (c *Client) CreatePost(ctx context.Context, title, content, imageName string, image io.Reader) (*response.BlogPost, error) {
	fields := map[string]string{
		"title":   title,
		"content": content,
	}
	var post response.BlogPost
	if err := c.postMultipart(ctx, "users/blog/posts/", fields, "image", imageName, image, &post); err != nil {
		return nil, err
	}
	return &post, nil
}
