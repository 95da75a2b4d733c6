package node

import "testing"

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare object",
			input: `{"title":"A"}`,
			want:  `{"title":"A"}`,
		},
		{
			name:  "object wrapped in prose",
			input: "Sure, here is the outline:\n{\"title\":\"A\"}\nHope this helps!",
			want:  `{"title":"A"}`,
		},
		{
			name:  "fenced code block",
			input: "```json\n{\"title\":\"A\"}\n```",
			want:  `{"title":"A"}`,
		},
		{
			name:  "array value",
			input: "result: [1, 2, 3] done",
			want:  "[1, 2, 3]",
		},
		{
			name:  "object before array",
			input: `{"items":[1,2]}`,
			want:  `{"items":[1,2]}`,
		},
		{
			name:  "nested braces survive",
			input: `noise {"a":{"b":"}"} } tail`,
			want:  `{"a":{"b":"}"} }`,
		},
		{
			name:  "no json at all",
			input: "just plain text",
			want:  "just plain text",
		},
		{
			name:  "empty input",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSONObject(tt.input); got != tt.want {
				t.Errorf("ExtractJSONObject(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
