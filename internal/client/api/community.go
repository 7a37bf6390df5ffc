package api

import (
	"context"
	"net/http"
)

// ListPosts returns one page of community posts, optionally restricted to a
// category. The server decides page boundaries and totals.
func (c *Client) ListPosts(ctx context.Context, page, limit int, category string) (PostPage, error) {
	q := pageQuery(page, limit)
	if category != "" {
		q.Set("category", category)
	}
	return call[PostPage](ctx, c, endpoint{op: "list posts", method: http.MethodGet, path: "/community", query: q, fallback: "Failed to get posts"})
}

func (c *Client) GetPost(ctx context.Context, id string) (Post, error) {
	e := endpoint{op: "get post", method: http.MethodGet, fallback: "Failed to get post"}
	if err := requireID(&e, "id", id, "/community/%s"); err != nil {
		return Post{}, err
	}
	return call[Post](ctx, c, e)
}

func (c *Client) CreatePost(ctx context.Context, in PostInput) (Post, error) {
	e := endpoint{op: "create post", method: http.MethodPost, path: "/community", body: in, fallback: "Failed to create post", errorFirst: true}
	if err := c.checkInput(e, in); err != nil {
		return Post{}, err
	}
	return call[Post](ctx, c, e)
}

// LikePost toggles the current user's like on a post.
func (c *Client) LikePost(ctx context.Context, id string) (LikeStatus, error) {
	e := endpoint{op: "like post", method: http.MethodPost, fallback: "Failed to like post"}
	if err := requireID(&e, "id", id, "/community/%s/like"); err != nil {
		return LikeStatus{}, err
	}
	return call[LikeStatus](ctx, c, e)
}

// AddComment adds a comment and returns the post's updated comment list.
func (c *Client) AddComment(ctx context.Context, postID string, in CommentInput) ([]Comment, error) {
	e := endpoint{op: "add comment", method: http.MethodPost, body: in, fallback: "Failed to add comment", errorFirst: true}
	if err := requireID(&e, "post id", postID, "/community/%s/comments"); err != nil {
		return nil, err
	}
	if err := c.checkInput(e, in); err != nil {
		return nil, err
	}
	return call[[]Comment](ctx, c, e)
}
