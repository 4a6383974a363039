package repurpose

import (
	"errors"
	"fmt"
)

// ErrIncompletePost is returned by LoadBlogPost when the document parses but
// is missing its title or content.
var ErrIncompletePost = errors.New("repurpose: blog post is missing title or content")

// ErrNoCompletion is returned by gateway implementations when the service
// responds without any choices.
var ErrNoCompletion = errors.New("repurpose: gateway returned no completion")

// ErrUnknownTool is returned when the model invokes a tool name outside the
// declared tool set.
var ErrUnknownTool = errors.New("repurpose: unknown tool")

// MalformedArgsError reports a tool invocation whose arguments failed
// validation against the tool's declared schema. At the content-tool boundary
// this degrades to an empty default; in the agent loop missing upstream data
// triggers fallback recovery instead of failing the turn.
type MalformedArgsError struct {
	Tool ToolName
	Err  error
}

func (e *MalformedArgsError) Error() string {
	return fmt.Sprintf("repurpose: malformed arguments for %s: %v", e.Tool, e.Err)
}

func (e *MalformedArgsError) Unwrap() error {
	return e.Err
}
