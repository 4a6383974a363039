package repurpose_test

import (
	"testing"

	"github.com/contentloop/repurpose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

func TestSpec(t *testing.T) {
	t.Run("known tool", func(t *testing.T) {
		spec := repurpose.Spec(repurpose.ToolGenerateSummary)

		assert.Equal(t, "function", spec.Type)
		require.NotNil(t, spec.Function)
		assert.Equal(t, "generate_summary", spec.Function.Name)
		assert.NotEmpty(t, spec.Function.Description)

		params, ok := spec.Function.Parameters.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "object", params["type"])
	})

	t.Run("unknown tool panics", func(t *testing.T) {
		assert.Panics(t, func() {
			repurpose.Spec(repurpose.ToolName("nonexistent"))
		})
	})
}

func TestToolSpecSets(t *testing.T) {
	content := repurpose.ContentToolSpecs()
	require.Len(t, content, 4)

	agent := repurpose.AgentToolSpecs()
	require.Len(t, agent, 5)
	assert.Equal(t, "finish", agent[4].Function.Name)

	for _, spec := range content {
		assert.NotEqual(t, "finish", spec.Function.Name)
	}
}

func TestValidateArgs(t *testing.T) {
	testCases := []struct {
		name  string
		tool  repurpose.ToolName
		args  map[string]any
		valid bool
	}{
		{
			name:  "extract with key points",
			tool:  repurpose.ToolExtractKeyPoints,
			args:  map[string]any{"key_points": []any{"a", "b"}},
			valid: true,
		},
		{
			name:  "extract without key points",
			tool:  repurpose.ToolExtractKeyPoints,
			args:  map[string]any{"title": "t"},
			valid: false,
		},
		{
			name:  "summary present",
			tool:  repurpose.ToolGenerateSummary,
			args:  map[string]any{"summary": "s"},
			valid: true,
		},
		{
			name:  "summary missing",
			tool:  repurpose.ToolGenerateSummary,
			args:  map[string]any{},
			valid: false,
		},
		{
			name: "social all platforms",
			tool: repurpose.ToolCreateSocialMediaPosts,
			args: map[string]any{
				"twitter": "x", "linkedin": "y", "facebook": "z",
			},
			valid: true,
		},
		{
			name:  "social missing platform",
			tool:  repurpose.ToolCreateSocialMediaPosts,
			args:  map[string]any{"twitter": "x", "linkedin": "y"},
			valid: false,
		},
		{
			name:  "email subject and body",
			tool:  repurpose.ToolCreateEmailNewsletter,
			args:  map[string]any{"subject": "s", "body": "b"},
			valid: true,
		},
		{
			name:  "email wrong type",
			tool:  repurpose.ToolCreateEmailNewsletter,
			args:  map[string]any{"subject": "s", "body": 42},
			valid: false,
		},
		{
			name: "finish complete",
			tool: repurpose.ToolFinish,
			args: map[string]any{
				"summary":      "s",
				"social_posts": map[string]any{"twitter": "x"},
				"email":        map[string]any{"subject": "s", "body": "b"},
			},
			valid: true,
		},
		{
			name:  "finish incomplete",
			tool:  repurpose.ToolFinish,
			args:  map[string]any{"summary": "s"},
			valid: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := repurpose.ValidateArgs(tc.tool, tc.args)
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var malformed *repurpose.MalformedArgsError
			assert.ErrorAs(t, err, &malformed)
			assert.Equal(t, tc.tool, malformed.Tool)
		})
	}

	t.Run("unknown tool", func(t *testing.T) {
		err := repurpose.ValidateArgs(repurpose.ToolName("nonexistent"), map[string]any{})
		assert.ErrorIs(t, err, repurpose.ErrUnknownTool)
	})
}

func toolCall(name, arguments string) llms.ToolCall {
	return llms.ToolCall{
		ID:   "call-1",
		Type: "function",
		FunctionCall: &llms.FunctionCall{
			Name:      name,
			Arguments: arguments,
		},
	}
}

func TestUnmarshalArgs(t *testing.T) {
	t.Run("typed decode", func(t *testing.T) {
		tc := toolCall("generate_summary", `{"summary": "s", "key_points": ["a"]}`)

		var args repurpose.GenerateSummaryArgs
		require.NoError(t, repurpose.UnmarshalArgs(tc, &args))
		assert.Equal(t, "s", args.Summary)
		assert.Equal(t, []string{"a"}, args.KeyPoints)
	})

	t.Run("empty arguments decode as empty object", func(t *testing.T) {
		tc := toolCall("generate_summary", "")

		var args repurpose.GenerateSummaryArgs
		require.NoError(t, repurpose.UnmarshalArgs(tc, &args))
		assert.Empty(t, args.Summary)
	})

	t.Run("malformed arguments", func(t *testing.T) {
		tc := toolCall("generate_summary", `{"summary"`)

		var args repurpose.GenerateSummaryArgs
		err := repurpose.UnmarshalArgs(tc, &args)
		var malformed *repurpose.MalformedArgsError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, repurpose.ToolGenerateSummary, malformed.Tool)
	})

	t.Run("no function call", func(t *testing.T) {
		var args repurpose.GenerateSummaryArgs
		err := repurpose.UnmarshalArgs(llms.ToolCall{ID: "call-1"}, &args)
		assert.Error(t, err)
	})
}

func TestArgsMap(t *testing.T) {
	testCases := []struct {
		name     string
		input    llms.ToolCall
		expected map[string]any
	}{
		{
			name:     "decodes object",
			input:    toolCall("finish", `{"summary": "s"}`),
			expected: map[string]any{"summary": "s"},
		},
		{
			name:     "empty arguments",
			input:    toolCall("finish", ""),
			expected: map[string]any{},
		},
		{
			name:     "malformed arguments",
			input:    toolCall("finish", `not json`),
			expected: map[string]any{},
		},
		{
			name:     "no function call",
			input:    llms.ToolCall{ID: "call-1"},
			expected: map[string]any{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, repurpose.ArgsMap(tc.input))
		})
	}
}

func TestFinishArgsResult(t *testing.T) {
	args := repurpose.FinishArgs{
		Summary:     "s",
		SocialPosts: repurpose.SocialPosts{Twitter: "x", LinkedIn: "y", Facebook: "z"},
		Email:       repurpose.EmailNewsletter{Subject: "sub", Body: "body"},
	}

	result := args.Result()

	assert.Equal(t, "s", result.Summary)
	assert.Equal(t, args.SocialPosts, result.SocialPosts)
	assert.Equal(t, args.Email, result.Email)
}
