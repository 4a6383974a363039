package schema_test

import (
	"testing"

	"github.com/contentloop/repurpose/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject(t *testing.T) {
	raw := schema.Object(map[string]*schema.Property{
		"summary":    schema.String("a summary"),
		"key_points": schema.StringArray("the points"),
		"extras":     schema.Map("anything"),
	}, "summary")

	assert.Equal(t, "object", raw["type"])
	assert.Equal(t, []string{"summary"}, raw["required"])

	props, ok := raw["properties"].(map[string]any)
	require.True(t, ok)

	summary, ok := props["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", summary["type"])
	assert.Equal(t, "a summary", summary["description"])

	points, ok := props["key_points"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "array", points["type"])
	assert.Equal(t, map[string]any{"type": "string"}, points["items"])

	extras, ok := props["extras"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", extras["type"])
}

func TestObjectNoRequired(t *testing.T) {
	raw := schema.Object(map[string]*schema.Property{
		"summary": schema.String(""),
	})

	_, hasRequired := raw["required"]
	assert.False(t, hasRequired)
}

func TestValidate(t *testing.T) {
	compiled := schema.MustCompile(schema.Object(map[string]*schema.Property{
		"summary":    schema.String("a summary"),
		"key_points": schema.StringArray("the points"),
	}, "summary"))

	testCases := []struct {
		name  string
		input map[string]any
		valid bool
	}{
		{
			name:  "all fields",
			input: map[string]any{"summary": "s", "key_points": []any{"a"}},
			valid: true,
		},
		{
			name:  "required only",
			input: map[string]any{"summary": "s"},
			valid: true,
		},
		{
			name:  "missing required",
			input: map[string]any{"key_points": []any{"a"}},
			valid: false,
		},
		{
			name:  "wrong type",
			input: map[string]any{"summary": 42},
			valid: false,
		},
		{
			name:  "wrong item type",
			input: map[string]any{"summary": "s", "key_points": []any{1}},
			valid: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := compiled.Validate(tc.input)
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			var validation *schema.ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestValidateNilSchema(t *testing.T) {
	var s *schema.Schema
	assert.NoError(t, s.Validate(map[string]any{"anything": true}))
	assert.Nil(t, s.Raw())
}

func TestCompileNil(t *testing.T) {
	s, err := schema.Compile(nil)
	require.NoError(t, err)
	assert.Nil(t, s)
}
