// Package authz provides the authorization guards used by API routes: RequireUser and
// RequirePlatformAdmin. A failed guard signals a redirect, not an application error;
// callers must stop handling the request and let the redirect reach the client unmodified.
package authz

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
)

const (
	// LoginPath is where unauthenticated callers are sent.
	LoginPath = "/login"
	// NotAuthorizedPath is where authenticated but unauthorized callers are sent.
	NotAuthorizedPath = "/not-authorized"
	// returnToParam carries the post-login return path on the login redirect.
	returnToParam = "redirect_to"
)

// Redirect is the control-transfer signal raised by a failed guard. It satisfies error
// so it can flow through error returns, but it is not an application failure and must
// never be converted into a 5xx response.
type Redirect struct {
	Location string
}

func (r *Redirect) Error() string {
	return "authz: redirect to " + r.Location
}

// siteBaseURL, when configured, makes redirect Locations absolute so they work
// behind a separate frontend origin. Empty keeps redirects relative.
var siteBaseURL string

// SetSiteBaseURL sets the public site origin prepended to guard redirect targets.
// Called once at startup; a trailing slash is stripped.
func SetSiteBaseURL(base string) {
	siteBaseURL = strings.TrimRight(base, "/")
}

// loginRedirect builds the login redirect, appending returnTo when provided.
func loginRedirect(returnTo string) *Redirect {
	loc := LoginPath
	if returnTo != "" {
		loc += "?" + returnToParam + "=" + url.QueryEscape(returnTo)
	}
	return &Redirect{Location: loc}
}

// WriteRedirect writes err to w as a 303 redirect when err carries a *Redirect and
// reports whether it did. Handlers call it right after a guard:
//
//	p, err := authz.RequireUser(ctx, r.URL.Path)
//	if authz.WriteRedirect(w, r, err) {
//		return
//	}
func WriteRedirect(w http.ResponseWriter, r *http.Request, err error) bool {
	var rd *Redirect
	if errors.As(err, &rd) {
		loc := rd.Location
		if siteBaseURL != "" && strings.HasPrefix(loc, "/") {
			loc = siteBaseURL + loc
		}
		http.Redirect(w, r, loc, http.StatusSeeOther)
		return true
	}
	return false
}
