package storage

import "testing"

func TestExtractPublicID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1712345678/clabs/1712345678_abc.png", "clabs/1712345678_abc"},
		{"https://res.cloudinary.com/demo/image/upload/clabs/photo.jpg", "clabs/photo"},
		{"https://res.cloudinary.com/demo/image/upload/video-intro.webp", "video-intro"},
		{"https://example.com/no/marker/here.png", ""},
		{"https://res.cloudinary.com/demo/image/upload", ""},
	}
	for _, tt := range tests {
		if got := extractPublicID(tt.url); got != tt.want {
			t.Errorf("extractPublicID(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestPublicURL(t *testing.T) {
	if got := PublicURL("1700000000000_k3j2.png"); got != "/api/image/1700000000000_k3j2.png" {
		t.Errorf("PublicURL() = %q", got)
	}
}
