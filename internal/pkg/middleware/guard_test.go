package middleware

import (
	"errors"
	"testing"
)

func adminLookup(string) (string, error) { return "admin", nil }
func userLookup(string) (string, error)  { return "user", nil }
func failLookup(string) (string, error)  { return "", errors.New("store unavailable") }

func TestPublicPathsNeverRedirect(t *testing.T) {
	paths := []string{
		"/", "/login", "/signup", "/reset-password", "/update-password",
		"/auth/callback", "/api/v1/books", "/assets/app.css", "/favicon.ico",
		"/dashboard/cover.png",
	}
	for _, p := range paths {
		if !IsPublicPath(p) {
			t.Fatalf("expected %q to be public", p)
		}
		d := Decide(p, false, "", failLookup)
		if !d.Allow {
			t.Fatalf("anonymous request to %q redirected to %q", p, d.RedirectTo)
		}
	}
}

func TestProtectedPathsRedirectAnonymousToLogin(t *testing.T) {
	for _, p := range []string{"/dashboard", "/dashboard/books", "/dashboard/admin/users"} {
		d := Decide(p, false, "", failLookup)
		if d.Allow || d.RedirectTo != LoginPath {
			t.Fatalf("anonymous request to %q: got %+v, want redirect to %s", p, d, LoginPath)
		}
	}
}

func TestLoggedInUsersLeaveAuthPages(t *testing.T) {
	for _, p := range []string{"/login", "/signup", "/reset-password"} {
		d := Decide(p, true, "u1", userLookup)
		if d.Allow || d.RedirectTo != DashboardPath {
			t.Fatalf("logged-in request to %q: got %+v, want redirect to %s", p, d, DashboardPath)
		}
	}
	// update-password stays reachable for logged-in users
	if d := Decide("/update-password", true, "u1", userLookup); !d.Allow {
		t.Fatalf("logged-in request to /update-password redirected to %q", d.RedirectTo)
	}
}

func TestAdminAreaRequiresAdminRole(t *testing.T) {
	if d := Decide("/dashboard/admin/users", true, "u1", adminLookup); !d.Allow {
		t.Fatalf("admin denied access: %+v", d)
	}
	if d := Decide("/dashboard/admin/users", true, "u2", userLookup); d.Allow || d.RedirectTo != DashboardPath {
		t.Fatalf("non-admin not redirected: %+v", d)
	}
}

func TestAdminAreaFailsClosedOnLookupError(t *testing.T) {
	d := Decide("/dashboard/admin", true, "u3", failLookup)
	if d.Allow || d.RedirectTo != DashboardPath {
		t.Fatalf("lookup failure must fail closed, got %+v", d)
	}
}

func TestOrdinaryDashboardPathsAllowLoggedIn(t *testing.T) {
	called := false
	lookup := func(string) (string, error) {
		called = true
		return "user", nil
	}
	d := Decide("/dashboard/books", true, "u1", lookup)
	if !d.Allow {
		t.Fatalf("logged-in request to /dashboard/books redirected to %q", d.RedirectTo)
	}
	if called {
		t.Fatal("role lookup must only run for admin-prefixed paths")
	}
}
