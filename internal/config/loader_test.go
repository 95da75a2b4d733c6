package config

import "testing"

func TestExpandEnv(t *testing.T) {
	t.Setenv("BW_TEST_HOST", "redis.internal")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "set variable wins over default",
			input: "host: ${BW_TEST_HOST:localhost}",
			want:  "host: redis.internal",
		},
		{
			name:  "unset variable falls back to default",
			input: "port: ${BW_TEST_UNSET_PORT:6379}",
			want:  "port: 6379",
		},
		{
			name:  "empty default",
			input: "password: ${BW_TEST_UNSET_PASSWORD:}",
			want:  "password: ",
		},
		{
			name:  "unset without default kept verbatim",
			input: "key: ${BW_TEST_UNSET_NO_DEFAULT}",
			want:  "key: ${BW_TEST_UNSET_NO_DEFAULT}",
		},
		{
			name:  "multiple placeholders",
			input: "addr: ${BW_TEST_HOST:x}:${BW_TEST_UNSET_PORT:6379}",
			want:  "addr: redis.internal:6379",
		},
		{
			name:  "plain text untouched",
			input: "level: info",
			want:  "level: info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandEnv(tt.input); got != tt.want {
				t.Errorf("expandEnv(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
