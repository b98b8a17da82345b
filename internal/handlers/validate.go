package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for admin form fields.
const (
	maxPostTitleLen    = 255
	maxPostDescLen     = 1024
	maxCategoryNameLen = 50
	maxTagNameLen      = 50
	maxSidebarTitleLen = 50
	maxLinkTitleLen    = 50
	maxLinkHrefLen     = 200
)

// validatePost checks post form inputs and returns the first error found.
func validatePost(title, description string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxPostTitleLen {
		return "Title is too long (max 255 characters)."
	}
	if utf8.RuneCountInString(description) > maxPostDescLen {
		return "Description is too long (max 1,024 characters)."
	}
	return ""
}

// validateName checks a single required name field against a limit.
func validateName(name string, limit int) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > limit {
		return "Name is too long."
	}
	return ""
}

// validateSidebar checks sidebar form inputs.
func validateSidebar(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxSidebarTitleLen {
		return "Title is too long (max 50 characters)."
	}
	return ""
}

// validateLink checks link form inputs.
func validateLink(title, href string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxLinkTitleLen {
		return "Title is too long (max 50 characters)."
	}
	href = strings.TrimSpace(href)
	if href == "" {
		return "URL is required."
	}
	if utf8.RuneCountInString(href) > maxLinkHrefLen {
		return "URL is too long (max 200 characters)."
	}
	if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
		return "URL must start with http:// or https://."
	}
	return ""
}
