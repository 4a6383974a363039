package repurpose

// Content type labels passed to the evaluator. They describe what a piece of
// content is supposed to be, not where it came from.
const (
	ContentTypeSummary    = "summary"
	ContentTypeSocialPost = "social_media_post"
	ContentTypeEmail      = "email"
)

// SocialPosts holds one post per supported platform. On the wire this is the
// {"twitter": ..., "linkedin": ..., "facebook": ...} mapping returned by the
// create_social_media_posts tool.
type SocialPosts struct {
	Twitter  string `json:"twitter"`
	LinkedIn string `json:"linkedin"`
	Facebook string `json:"facebook"`
}

// IsZero reports whether no platform has any content.
func (s SocialPosts) IsZero() bool {
	return s.Twitter == "" && s.LinkedIn == "" && s.Facebook == ""
}

// EmailNewsletter is the subject/body pair returned by the
// create_email_newsletter tool.
type EmailNewsletter struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// IsZero reports whether both subject and body are empty.
func (e EmailNewsletter) IsZero() bool {
	return e.Subject == "" && e.Body == ""
}

// WorkflowResult is the terminal output of either workflow. Fragments a run
// failed to produce are left as zero values; callers must not assume every
// field is populated.
type WorkflowResult struct {
	Summary     string          `json:"summary"`
	SocialPosts SocialPosts     `json:"social_posts"`
	Email       EmailNewsletter `json:"email"`
}
