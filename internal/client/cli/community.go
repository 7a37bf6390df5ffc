package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mindhaven/internal/client/api"
)

const (
	postsPageSize   = 10
	defaultCategory = "Overthinking"
)

var postCategories = []string{
	"Overthinking", "Stress", "Anxiety", "Work-Life Balance",
	"Relationships", "Perfectionism", "General",
}

// listPosts shows one page of the community feed, optionally narrowed to a
// category: posts [page] [category].
func (a *App) listPosts(ctx context.Context, args []string) error {
	page, rest, err := argPage(args)
	if err != nil {
		return err
	}
	category := ""
	if len(rest) > 0 {
		c, ok := matchCategory(strings.Join(rest, " "))
		if !ok {
			return fmt.Errorf("category must be one of %s", strings.Join(postCategories, ", "))
		}
		category = c
	}

	res, err := a.client.ListPosts(ctx, page, postsPageSize, category)
	if err != nil {
		return err
	}
	if len(res.Posts) == 0 {
		a.println("No posts yet. Type 'share' to start a conversation.")
		return nil
	}
	for _, p := range res.Posts {
		a.printf("[%s] %s  by %s  (%s)  %d likes, %d comments\n",
			p.Key(), p.Title, p.Author.Name, p.Category, len(p.Likes), len(p.Comments))
	}
	if res.TotalPages > 1 {
		a.printf("Page %d of %d\n", res.CurrentPage, res.TotalPages)
	}
	return nil
}

func (a *App) showPost(ctx context.Context, args []string) error {
	id, err := argID(args, "post <id>")
	if err != nil {
		return err
	}
	p, err := a.client.GetPost(ctx, id)
	if err != nil {
		return err
	}
	a.printf("%s\nby %s in %s\n\n%s\n\n", p.Title, p.Author.Name, p.Category, p.Content)
	liked := ""
	if p.UserLiked {
		liked = " (you liked this)"
	}
	a.printf("%d likes%s\n", len(p.Likes), liked)
	for _, c := range p.Comments {
		a.printf("  %s: %s\n", c.Author.Name, c.Content)
	}
	return nil
}

func (a *App) sharePost(ctx context.Context) error {
	title, err := a.prompt("Title")
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Share your thoughts", a.out)
	if err != nil {
		return err
	}
	cat, err := a.prompt(fmt.Sprintf("Category: %s (default %s)", strings.Join(postCategories, ", "), defaultCategory))
	if err != nil {
		return err
	}
	category := defaultCategory
	if cat != "" {
		c, ok := matchCategory(cat)
		if !ok {
			return fmt.Errorf("category must be one of %s", strings.Join(postCategories, ", "))
		}
		category = c
	}
	anonymous, err := a.confirm("Post anonymously?")
	if err != nil {
		return err
	}
	advice, err := a.confirm("Are you seeking advice?")
	if err != nil {
		return err
	}

	p, err := a.client.CreatePost(ctx, api.PostInput{
		Title:         title,
		Content:       content,
		Category:      category,
		IsAnonymous:   anonymous,
		SeekingAdvice: advice,
	})
	if err != nil {
		return err
	}
	a.printf("Post shared (%s).\n", p.Key())
	return nil
}

func (a *App) likePost(ctx context.Context, args []string) error {
	id, err := argID(args, "like <id>")
	if err != nil {
		return err
	}
	st, err := a.client.LikePost(ctx, id)
	if err != nil {
		return err
	}
	if st.UserLiked {
		a.printf("Liked. %d likes.\n", len(st.Likes))
	} else {
		a.printf("Like removed. %d likes.\n", len(st.Likes))
	}
	return nil
}

func (a *App) commentPost(ctx context.Context, args []string) error {
	id, err := argID(args, "comment <id>")
	if err != nil {
		return err
	}
	text, err := a.prompt("Comment")
	if err != nil {
		return err
	}
	anonymous, err := a.confirm("Comment anonymously?")
	if err != nil {
		return err
	}
	comments, err := a.client.AddComment(ctx, id, api.CommentInput{Content: text, IsAnonymous: anonymous})
	if err != nil {
		return err
	}
	a.printf("Comment added. %d comments.\n", len(comments))
	return nil
}

func matchCategory(s string) (string, bool) {
	for _, c := range postCategories {
		if strings.EqualFold(c, strings.TrimSpace(s)) {
			return c, true
		}
	}
	return "", false
}
