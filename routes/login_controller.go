package routes

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/mbolis/survey-studio/app"
	"github.com/mbolis/survey-studio/httpx"
	"github.com/mbolis/survey-studio/log"
)

var reRefresh = regexp.MustCompile(`(?i)^refresh\s+(.*)`)

// formRequest rewrites r into the form-encoded grant request the bearer
// server expects.
func formRequest(r *http.Request, form url.Values) *http.Request {
	body := form.Encode()
	req := r.Clone(r.Context())
	req.Method = http.MethodPost
	req.Body = io.NopCloser(strings.NewReader(body))
	req.ContentLength = int64(len(body))
	req.Header.Set("content-type", "application/x-www-form-urlencoded")
	req.Header.Set("content-length", strconv.Itoa(len(body)))
	req.Header.Del("authorization")
	return req
}

// Login trades basic auth credentials for an access and refresh token pair.
func Login(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "login.basic_auth")
			return
		}

		app.UserCredentials(w, formRequest(r, url.Values{
			"grant_type": {"password"},
			"username":   {user},
			"password":   {pass},
		}))
	}
}

// Refresh redeems the token in "Authorization: Refresh <token>".
func Refresh(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		match := reRefresh.FindStringSubmatch(r.Header.Get("authorization"))
		if len(match) == 0 {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "refresh.token")
			return
		}

		resp := httpx.NewResponseBuffer()
		app.UserCredentials(resp, formRequest(r, url.Values{
			"grant_type":    {"refresh_token"},
			"refresh_token": {match[1]},
		}))
		if status := resp.Status(); status != 0 && status != http.StatusOK {
			log.Debugf("refresh.grant: status %d: %s", status, bytes.TrimSpace(resp.Body()))
		}
		if err := resp.Flush(w); err != nil {
			log.Errorf("refresh.flush: %s", err)
		}
	}
}
