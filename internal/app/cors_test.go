package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractOriginHost(t *testing.T) {
	assert.Equal(t, "blognoitro.vn", extractOriginHost("https://blognoitro.vn"))
	assert.Equal(t, "localhost:3000", extractOriginHost("http://localhost:3000"))
	assert.Equal(t, "not a url", extractOriginHost("not a url"))
}

func TestMatchOriginPattern(t *testing.T) {
	tests := []struct {
		pattern string
		host    string
		want    bool
	}{
		{"blognoitro.vn", "blognoitro.vn", true},
		{"blognoitro.vn", "evil.vn", false},
		{"*.blognoitro.vn", "www.blognoitro.vn", true},
		{"*.blognoitro.vn", "blognoitro.vn.evil.com", false},
		{"localhost:*", "localhost:3000", true},
		{"localhost:*", "localhost.evil.com", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchOriginPattern(tt.pattern, tt.host), "%s vs %s", tt.pattern, tt.host)
	}
}
