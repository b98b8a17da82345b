// auth_flow_test.go contains handler integration tests for the Auth
// handler methods. Tests exercise real database and Valkey connections;
// they are skipped when those services are unavailable.
package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"

	"blogsys/internal/session"
)

func TestLoginPage_ReturnsHTML(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	rec := httptest.NewRecorder()
	env.Auth.LoginPage(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Content-Type: got %q, want text/html", ct)
	}
}

func TestLoginPage_AuthenticatedRedirects(t *testing.T) {
	env := newTestEnv(t)
	owner := newTestOwner(t, env, false)

	req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	req = withSession(req, testSession(owner.ID, owner.Email, false))
	rec := httptest.NewRecorder()
	env.Auth.LoginPage(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin" {
		t.Errorf("Location: got %q, want /admin", loc)
	}
}

func TestLoginPage_PartialSessionDoesNotRedirect(t *testing.T) {
	env := newTestEnv(t)
	owner := newTestOwner(t, env, false)

	sess := testSession(owner.ID, owner.Email, false)
	sess.TwoFADone = false
	req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	req = withSession(req, sess)
	rec := httptest.NewRecorder()
	env.Auth.LoginPage(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d (partial session should show login)", rec.Code, http.StatusOK)
	}
}

func TestLoginSubmit_ValidCredentials(t *testing.T) {
	env := newTestEnv(t)
	owner := newTestOwner(t, env, false)

	form := url.Values{}
	form.Set("email", owner.Email)
	form.Set("password", "pass")

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.Auth.LoginSubmit(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}

	// A fresh user has no TOTP yet, so the flow goes to setup.
	if loc := rec.Header().Get("Location"); loc != "/admin/2fa/setup" {
		t.Errorf("Location: got %q, want /admin/2fa/setup", loc)
	}

	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName && c.Value != "" {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected %s cookie to be set after successful login", session.CookieName)
	}
}

func TestLoginSubmit_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	owner := newTestOwner(t, env, false)

	form := url.Values{}
	form.Set("email", owner.Email)
	form.Set("password", "wrong")

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.Auth.LoginSubmit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (re-rendered login)", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid email or password.") {
		t.Error("login page should show the credential error")
	}
}

func TestLoginSubmit_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{}
	form.Set("email", "nobody@blogsys.test")
	form.Set("password", "pass")

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.Auth.LoginSubmit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	// Unknown email and wrong password produce the same message.
	if !strings.Contains(rec.Body.String(), "Invalid email or password.") {
		t.Error("login page should not reveal whether the email exists")
	}
}

func TestTwoFASetupPage_GeneratesSecret(t *testing.T) {
	env := newTestEnv(t)
	owner := newTestOwner(t, env, false)

	sess := testSession(owner.ID, owner.Email, false)
	sess.TwoFADone = false
	req := httptest.NewRequest(http.MethodGet, "/admin/2fa/setup", nil)
	req = withSession(req, sess)
	rec := httptest.NewRecorder()
	env.Auth.TwoFASetupPage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "data:image/png;base64,") {
		t.Error("setup page should embed the QR code image")
	}

	stored, err := env.UserStore.FindByID(owner.ID)
	if err != nil || stored == nil {
		t.Fatalf("find user: %v", err)
	}
	if stored.TOTPSecret == nil || *stored.TOTPSecret == "" {
		t.Error("setup should persist a TOTP secret")
	}
	if stored.TOTPEnabled {
		t.Error("TOTP must not be enabled until a code is verified")
	}
}

func TestTwoFAVerifySubmit_CompletesEnrollment(t *testing.T) {
	env := newTestEnv(t)
	owner := newTestOwner(t, env, false)

	// Log in for real so the session lives in Valkey and can be updated.
	form := url.Values{"email": {owner.Email}, "password": {"pass"}}
	loginReq := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	loginReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	loginRec := httptest.NewRecorder()
	env.Auth.LoginSubmit(loginRec, loginReq)

	var cookie *http.Cookie
	for _, c := range loginRec.Result().Cookies() {
		if c.Name == session.CookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("login did not set a session cookie")
	}

	// Enroll a secret directly, then verify with a freshly generated code.
	secret := "JBSWY3DPEHPK3PXPJBSWY3DPEHPK3PXP"
	if err := env.UserStore.SetTOTPSecret(owner.ID, secret); err != nil {
		t.Fatalf("set totp secret: %v", err)
	}
	code, err := totp.GenerateCode(secret, time.Now())
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}

	form = url.Values{"code": {code}}
	req := httptest.NewRequest(http.MethodPost, "/admin/2fa/verify", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	req = withSession(req, &session.Data{
		OwnerID: owner.ID, Email: owner.Email, DisplayName: owner.DisplayName,
	})
	rec := httptest.NewRecorder()
	env.Auth.TwoFAVerifySubmit(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303; body: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/admin" {
		t.Errorf("Location: got %q, want /admin", loc)
	}

	stored, err := env.UserStore.FindByID(owner.ID)
	if err != nil || stored == nil {
		t.Fatalf("find user: %v", err)
	}
	if !stored.TOTPEnabled {
		t.Error("verification should enable TOTP")
	}
}

func TestTwoFAVerifySubmit_RejectsBadCode(t *testing.T) {
	env := newTestEnv(t)
	owner := newTestOwner(t, env, false)

	secret := "JBSWY3DPEHPK3PXPJBSWY3DPEHPK3PXP"
	if err := env.UserStore.SetTOTPSecret(owner.ID, secret); err != nil {
		t.Fatalf("set totp secret: %v", err)
	}
	if err := env.UserStore.EnableTOTP(owner.ID); err != nil {
		t.Fatalf("enable totp: %v", err)
	}

	form := url.Values{"code": {"000000"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/2fa/verify", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = withSession(req, &session.Data{OwnerID: owner.ID, Email: owner.Email})
	rec := httptest.NewRecorder()
	env.Auth.TwoFAVerifySubmit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (re-rendered verify page)", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid code") {
		t.Error("verify page should show the invalid code message")
	}
}

func TestLogout_DestroysSessionCookie(t *testing.T) {
	env := newTestEnv(t)
	owner := newTestOwner(t, env, false)

	form := url.Values{"email": {owner.Email}, "password": {"pass"}}
	loginReq := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	loginReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	loginRec := httptest.NewRecorder()
	env.Auth.LoginSubmit(loginRec, loginReq)

	var cookie *http.Cookie
	for _, c := range loginRec.Result().Cookies() {
		if c.Name == session.CookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("login did not set a session cookie")
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	env.Auth.Logout(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("Location: got %q, want /admin/login", loc)
	}

	// The session must be gone from the backing store.
	getReq := httptest.NewRequest(http.MethodGet, "/admin", nil)
	getReq.AddCookie(cookie)
	if data, _ := env.Sessions.Get(getReq.Context(), getReq); data != nil {
		t.Error("session should be destroyed after logout")
	}
}
