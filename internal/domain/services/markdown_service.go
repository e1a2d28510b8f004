package services

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// InterfaceMarkdownService renders mineral descriptions
type InterfaceMarkdownService interface {
	Render(markdown string) (string, error)
}

// MarkdownService converts GitHub flavoured Markdown into sanitized HTML
type MarkdownService struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewMarkdownService creates a new markdown service
func NewMarkdownService() InterfaceMarkdownService {
	return &MarkdownService{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render returns sanitized HTML for markdown
func (s *MarkdownService) Render(markdown string) (string, error) {
	if markdown == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return s.policy.Sanitize(buf.String()), nil
}
