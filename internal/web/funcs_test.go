package web

import (
	"strings"
	"testing"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{in: 0, want: "0"},
		{in: 999, want: "999"},
		{in: 72100, want: "72.1K"},
		{in: 216000, want: "216K"},
		{in: 18500000, want: "18.5M"},
		{in: 8000000, want: "8M"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEmbedURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "https://www.youtube.com/watch?v=k9L3_qEa4kg", want: "https://www.youtube.com/embed/k9L3_qEa4kg"},
		{in: "https://youtu.be/6Vqb2jTjxz8", want: "https://www.youtube.com/embed/6Vqb2jTjxz8"},
		{in: "https://www.youtube.com/embed/yNGd_xtpTqk", want: "https://www.youtube.com/embed/yNGd_xtpTqk"},
		{in: "https://www.tiktok.com/@lana.young6", want: "https://www.tiktok.com/@lana.young6"},
	}
	for _, tt := range tests {
		if got := EmbedURL(tt.in); got != tt.want {
			t.Errorf("EmbedURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSafeHTMLStripsScripts(t *testing.T) {
	got := string(SafeHTML(`<p>ok</p><script>alert(1)</script><a href="javascript:x()">l</a>`))
	if strings.Contains(got, "script") || strings.Contains(got, "javascript") {
		t.Errorf("SafeHTML() = %q", got)
	}
	if !strings.Contains(got, "<p>ok</p>") {
		t.Errorf("SafeHTML() dropped allowed markup: %q", got)
	}
}

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	if err != nil {
		t.Fatalf("Templates() error = %v", err)
	}
	for _, name := range []string{"home.html", "ip.html", "error.html", "admin_dashboard.html", "tutorial_article.html"} {
		if tmpl.Lookup(name) == nil {
			t.Errorf("template %s not defined", name)
		}
	}
}
