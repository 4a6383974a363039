package repurpose

import (
	"encoding/json"
	"fmt"

	"github.com/contentloop/repurpose/schema"
	"github.com/tmc/langchaingo/llms"
)

// ToolName identifies one of the five tools exposed to the model. The set is
// closed: dispatch switches over these constants rather than raw strings.
type ToolName string

const (
	ToolExtractKeyPoints       ToolName = "extract_key_points"
	ToolGenerateSummary        ToolName = "generate_summary"
	ToolCreateSocialMediaPosts ToolName = "create_social_media_posts"
	ToolCreateEmailNewsletter  ToolName = "create_email_newsletter"
	ToolFinish                 ToolName = "finish"
)

// -----------------------------------------------------------------------------
// Typed argument records
// -----------------------------------------------------------------------------
//
// Each tool's invocation arguments decode into one of the records below. The
// records carry the tool's declared fields plus the optional upstream fields
// the model tends to pass along in agent mode (key points, summary); absence
// of those upstream fields is what triggers fallback recovery.

// ExtractKeyPointsArgs are the arguments of an extract_key_points invocation.
type ExtractKeyPointsArgs struct {
	Title     string   `json:"title,omitempty"`
	Content   string   `json:"content,omitempty"`
	KeyPoints []string `json:"key_points"`
}

// GenerateSummaryArgs are the arguments of a generate_summary invocation.
type GenerateSummaryArgs struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points,omitempty"`
}

// SocialPostsArgs are the arguments of a create_social_media_posts invocation.
type SocialPostsArgs struct {
	Twitter   string   `json:"twitter"`
	LinkedIn  string   `json:"linkedin"`
	Facebook  string   `json:"facebook"`
	KeyPoints []string `json:"key_points,omitempty"`
}

// EmailNewsletterArgs are the arguments of a create_email_newsletter
// invocation.
type EmailNewsletterArgs struct {
	Subject   string   `json:"subject"`
	Body      string   `json:"body"`
	KeyPoints []string `json:"key_points,omitempty"`
	Summary   string   `json:"summary,omitempty"`
}

// FinishArgs are the arguments of a finish invocation: the agent's final
// workflow result.
type FinishArgs struct {
	Summary     string          `json:"summary"`
	SocialPosts SocialPosts     `json:"social_posts"`
	Email       EmailNewsletter `json:"email"`
}

// Result converts the finish arguments into a WorkflowResult.
func (a FinishArgs) Result() WorkflowResult {
	return WorkflowResult{
		Summary:     a.Summary,
		SocialPosts: a.SocialPosts,
		Email:       a.Email,
	}
}

// -----------------------------------------------------------------------------
// Tool schema table
// -----------------------------------------------------------------------------
//
// The parameter schemas below are the wire contract with the completion
// service; property names and required sets must not drift.

var toolSchemas = map[ToolName]*schema.Schema{
	ToolExtractKeyPoints: schema.MustCompile(schema.Object(map[string]*schema.Property{
		"title":      schema.String("Blog post title"),
		"content":    schema.String("Blog post content"),
		"key_points": schema.StringArray("Key points extracted from the post, in presentation order"),
	}, "key_points")),

	ToolGenerateSummary: schema.MustCompile(schema.Object(map[string]*schema.Property{
		"summary": schema.String("Concise summary of the key points"),
	}, "summary")),

	ToolCreateSocialMediaPosts: schema.MustCompile(schema.Object(map[string]*schema.Property{
		"twitter":  schema.String("Post text for Twitter"),
		"linkedin": schema.String("Post text for LinkedIn"),
		"facebook": schema.String("Post text for Facebook"),
	}, "twitter", "linkedin", "facebook")),

	ToolCreateEmailNewsletter: schema.MustCompile(schema.Object(map[string]*schema.Property{
		"subject": schema.String("Email subject line"),
		"body":    schema.String("Email body"),
	}, "subject", "body")),

	ToolFinish: schema.MustCompile(schema.Object(map[string]*schema.Property{
		"summary":      schema.String("Final summary"),
		"social_posts": schema.Map("Final social media posts, keyed by platform"),
		"email":        schema.Map("Final email newsletter with subject and body"),
	}, "summary", "social_posts", "email")),
}

var toolDescriptions = map[ToolName]string{
	ToolExtractKeyPoints:       "Extract the key points from a blog post.",
	ToolGenerateSummary:        "Generate a concise summary from key points.",
	ToolCreateSocialMediaPosts: "Create platform-specific social media posts from key points.",
	ToolCreateEmailNewsletter:  "Write an email newsletter from the post, summary and key points.",
	ToolFinish:                 "Finish the workflow, reporting all final results.",
}

// Spec returns the llms.Tool specification for the named tool. Panics on an
// unknown name; the tool set is static.
func Spec(name ToolName) llms.Tool {
	s, ok := toolSchemas[name]
	if !ok {
		panic(fmt.Sprintf("repurpose: no spec for tool %q", name))
	}
	return llms.Tool{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        string(name),
			Description: toolDescriptions[name],
			Parameters:  s.Raw(),
		},
	}
}

// ContentToolSpecs returns the four content-tool specifications, without the
// terminal finish tool.
func ContentToolSpecs() []llms.Tool {
	return []llms.Tool{
		Spec(ToolExtractKeyPoints),
		Spec(ToolGenerateSummary),
		Spec(ToolCreateSocialMediaPosts),
		Spec(ToolCreateEmailNewsletter),
	}
}

// AgentToolSpecs returns the full tool set offered to the agent loop,
// including finish.
func AgentToolSpecs() []llms.Tool {
	return append(ContentToolSpecs(), Spec(ToolFinish))
}

// ValidateArgs validates a tool invocation's arguments against the tool's
// declared schema. A failure is reported as a *MalformedArgsError.
func ValidateArgs(name ToolName, args map[string]any) error {
	s, ok := toolSchemas[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if err := s.Validate(args); err != nil {
		return &MalformedArgsError{Tool: name, Err: err}
	}
	return nil
}

// UnmarshalArgs decodes a tool call's JSON argument payload into the given
// typed record. Unknown fields are ignored; missing fields are left at their
// zero values (the caller decides whether that warrants fallback recovery).
func UnmarshalArgs(tc llms.ToolCall, v any) error {
	if tc.FunctionCall == nil {
		return fmt.Errorf("repurpose: tool call %s has no function call", tc.ID)
	}
	args := tc.FunctionCall.Arguments
	if args == "" {
		args = "{}"
	}
	if err := json.Unmarshal([]byte(args), v); err != nil {
		return &MalformedArgsError{Tool: ToolName(tc.FunctionCall.Name), Err: err}
	}
	return nil
}

// ArgsMap decodes a tool call's arguments into a generic map for schema
// validation and logging. Undecodable payloads yield an empty map.
func ArgsMap(tc llms.ToolCall) map[string]any {
	args := map[string]any{}
	if tc.FunctionCall == nil || tc.FunctionCall.Arguments == "" {
		return args
	}
	// Tolerate malformed payloads; validation reports the specifics.
	_ = json.Unmarshal([]byte(tc.FunctionCall.Arguments), &args)
	return args
}
