package format

import "testing"

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		branch string
		want   string
	}{
		{"main", "main"},
		{"feature/login", "feature-login"},
		{"fix/JIRA-123_thing", "fix-JIRA-123_thing"},
		{"/leading/and/trailing/", "leading-and-trailing"},
		{"weird:name?*", "weird-name"},
		{"über/straße", "über-straße"},
	}

	for _, tt := range tests {
		t.Run(tt.branch, func(t *testing.T) {
			t.Parallel()
			if got := Slug(tt.branch); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.branch, got, tt.want)
			}
		})
	}
}

func TestAge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seconds int64
		want    string
	}{
		{-5, "now"},
		{0, "now"},
		{59, "now"},
		{60, "1m"},
		{3599, "59m"},
		{3600, "1h"},
		{86399, "23h"},
		{86400, "1d"},
		{6 * 86400, "6d"},
		{7 * 86400, "1w"},
		{29 * 86400, "4w"},
		{30 * 86400, "1mo"},
		{400 * 86400, "13mo"},
	}

	for _, tt := range tests {
		if got := Age(tt.seconds); got != tt.want {
			t.Errorf("Age(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestShortenPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"/home/me", "~"},
		{"/home/me/src/repo", "~/src/repo"},
		{"/home/meow/src", "/home/meow/src"},
		{"/tmp/x", "/tmp/x"},
	}

	for _, tt := range tests {
		if got := shortenPath(tt.path, "/home/me"); got != tt.want {
			t.Errorf("shortenPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
