package strings

import "testing"

func TestNormalizeWhitespace(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: " \n\t ",
			want:  "",
		},
		{
			name:  "single token",
			input: "topic",
			want:  "topic",
		},
		{
			name:  "collapses spaces",
			input: "one   two    three",
			want:  "one two three",
		},
		{
			name:  "collapses newlines",
			input: "one\n\n two\tthree",
			want:  "one two three",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeWhitespace(tc.input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNormalizeLowerTrimSpace(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trims and lowercases",
			input: "  DONE  ",
			want:  "done",
		},
		{
			name:  "inner spaces preserved",
			input: "  in progress  ",
			want:  "in progress",
		},
		{
			name:  "whitespace only",
			input: "  \t\n ",
			want:  "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeLowerTrimSpace(tc.input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestTrimSpace(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: " \t\n ",
			want:  "",
		},
		{
			name:  "trimmed",
			input: "  note  ",
			want:  "note",
		},
		{
			name:  "inner whitespace preserved",
			input: "  one  two  ",
			want:  "one  two",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TrimSpace(tc.input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestIsBlank(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{
			name:  "empty",
			input: "",
			want:  true,
		},
		{
			name:  "whitespace",
			input: " \t\n ",
			want:  true,
		},
		{
			name:  "non-empty",
			input: "note",
			want:  false,
		},
		{
			name:  "trimmed non-empty",
			input: "  note  ",
			want:  false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := IsBlank(tc.input)
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestNormalizeNewlines(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "no carriage returns",
			input: "one\ntwo",
			want:  "one\ntwo",
		},
		{
			name:  "crlf",
			input: "one\r\ntwo",
			want:  "one\ntwo",
		},
		{
			name:  "cr only",
			input: "one\rtwo",
			want:  "one\ntwo",
		},
		{
			name:  "mixed",
			input: "one\r\ntwo\rthree",
			want:  "one\ntwo\nthree",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeNewlines(tc.input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestTrimTrailingNewlines(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "no newline",
			input: "note",
			want:  "note",
		},
		{
			name:  "trailing newline",
			input: "note\n",
			want:  "note",
		},
		{
			name:  "trailing crlf",
			input: "note\r\n",
			want:  "note",
		},
		{
			name:  "multiple trailing",
			input: "note\n\r\n",
			want:  "note",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TrimTrailingNewlines(tc.input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestLines(t *testing.T) {
	got := Lines("a\r\nb\rc\n")
	want := []string{"a", "b", "c", ""}
	if len(got) != len(want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
	if got := Lines(""); len(got) != 1 || got[0] != "" {
		t.Fatalf("expected a single empty line, got %q", got)
	}
}

func TestFirstLine(t *testing.T) {
	if got := FirstLine("one\r\ntwo"); got != "one" {
		t.Fatalf("expected %q, got %q", "one", got)
	}
	if got := FirstLine("solo"); got != "solo" {
		t.Fatalf("expected %q, got %q", "solo", got)
	}
}
