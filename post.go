package repurpose

import (
	"encoding/json"
	"fmt"
	"os"
)

// BlogPost is the immutable input to every workflow. It is loaded once per
// run and passed by value from there on.
type BlogPost struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// LoadBlogPost reads a blog post from a JSON document with required "title"
// and "content" fields.
//
// Unlike gateway failures, which degrade to empty defaults, a read or parse
// failure here is returned to the caller and is meant to abort the run with
// a clear diagnostic.
func LoadBlogPost(path string) (BlogPost, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BlogPost{}, fmt.Errorf("repurpose: read blog post: %w", err)
	}

	var post BlogPost
	if err := json.Unmarshal(raw, &post); err != nil {
		return BlogPost{}, fmt.Errorf("repurpose: parse blog post %s: %w", path, err)
	}
	if post.Title == "" || post.Content == "" {
		return BlogPost{}, fmt.Errorf("repurpose: blog post %s: %w", path, ErrIncompletePost)
	}

	return post, nil
}
