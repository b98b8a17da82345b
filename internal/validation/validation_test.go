package validation

import (
	"strings"
	"testing"
)

type sample struct {
	Nickname string `form:"nickname" validate:"required,max=50"`
	Email    string `form:"email" validate:"required,max=50,email"`
	Website  string `form:"website" validate:"required,max=100,url"`
	Content  string `form:"content" validate:"required,min=10"`
}

func valid() sample {
	return sample{
		Nickname: "ann",
		Email:    "ann@example.com",
		Website:  "https://ann.example.com",
		Content:  "a perfectly fine comment",
	}
}

func TestValidatePasses(t *testing.T) {
	if errs := New().Validate(valid()); errs != nil {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateRequired(t *testing.T) {
	s := valid()
	s.Nickname = ""
	errs := New().Validate(s)
	if errs["nickname"] != "is required" {
		t.Errorf("nickname: got %q", errs["nickname"])
	}
}

func TestValidateEmail(t *testing.T) {
	s := valid()
	s.Email = "not-an-email"
	errs := New().Validate(s)
	if errs["email"] != "must be a valid email address" {
		t.Errorf("email: got %q", errs["email"])
	}
}

func TestValidateURL(t *testing.T) {
	s := valid()
	s.Website = "not a url"
	errs := New().Validate(s)
	if errs["website"] != "must be a valid URL" {
		t.Errorf("website: got %q", errs["website"])
	}
}

func TestValidateMax(t *testing.T) {
	s := valid()
	s.Nickname = strings.Repeat("x", 51)
	errs := New().Validate(s)
	if errs["nickname"] != "must not exceed 50 characters" {
		t.Errorf("nickname: got %q", errs["nickname"])
	}
}

// The short-content boundary: 9 characters fail, 10 pass.
func TestValidateContentBoundary(t *testing.T) {
	s := valid()

	s.Content = strings.Repeat("x", 9)
	if errs := New().Validate(s); errs["content"] == "" {
		t.Error("9-character content should fail validation")
	}

	s.Content = strings.Repeat("x", 10)
	if errs := New().Validate(s); errs != nil {
		t.Errorf("10-character content should pass, got %v", errs)
	}
}

func TestValidateReportsAllFields(t *testing.T) {
	errs := New().Validate(sample{})
	for _, field := range []string{"nickname", "email", "website", "content"} {
		if errs[field] == "" {
			t.Errorf("missing error for %s", field)
		}
	}
}
