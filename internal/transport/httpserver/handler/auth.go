package handler

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"team-tracker-go/internal/auth/oidc"
	sessiondomain "team-tracker-go/internal/domain/session"
	userdomain "team-tracker-go/internal/domain/user"
)

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, err := h.Users.Register(r.Context(), userdomain.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.fail(w, "auth.register", err)
		return
	}

	if err := h.signIn(w, r, localSessionData(user)); err != nil {
		h.fail(w, "auth.register", err, "user_id", user.ID)
		return
	}
	h.log.Info("auth.register: user registered", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, err := h.Users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, "auth.login", err)
		return
	}
	if user == nil {
		h.log.Warn("auth.login: invalid credentials")
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
		return
	}

	if err := h.signIn(w, r, localSessionData(user)); err != nil {
		h.fail(w, "auth.login", err, "user_id", user.ID)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// Logout is the XHR variant of sign-out and always answers 204.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.endSession(w, r)
	w.WriteHeader(http.StatusNoContent)
}

// FederatedLogin starts the authorization code flow for an allowed host.
func (h *Handlers) FederatedLogin(w http.ResponseWriter, r *http.Request) {
	if h.federated == nil {
		writeError(w, http.StatusNotFound, "federated_auth_disabled", "federated sign-in is disabled")
		return
	}

	host := requestHostname(r)
	if _, ok := h.allowedDomains[host]; !ok {
		h.log.Warn("auth.federated_login: unknown host", "host", host)
		writeError(w, http.StatusBadRequest, "unknown_host", "unknown host")
		return
	}

	state, verifier := oidc.NewLoginState()
	pending := sessiondomain.PendingLogin{
		State:        state,
		CodeVerifier: verifier,
		CallbackURL:  requestOrigin(r) + "/api/callback",
		ReturnTo:     safeReturnTo(r.URL.Query().Get("returnTo")),
	}

	authURL, err := h.federated.AuthCodeURL(r.Context(), state, verifier, pending.CallbackURL)
	if err != nil {
		h.fail(w, "auth.federated_login", err, "host", host)
		return
	}

	if previousID, err := h.cookies.SessionID(r); err == nil {
		_ = h.Sessions.Destroy(r.Context(), previousID)
	}
	sess, err := h.Sessions.BeginLogin(r.Context(), pending)
	if err != nil {
		h.fail(w, "auth.federated_login", err, "host", host)
		return
	}
	if err := h.cookies.Set(w, sess); err != nil {
		h.fail(w, "auth.federated_login", err, "host", host)
		return
	}
	http.Redirect(w, r, authURL, http.StatusFound)
}

// FederatedCallback completes the flow. Any mismatch sends the browser back to /api/login without
// contacting the issuer.
func (h *Handlers) FederatedCallback(w http.ResponseWriter, r *http.Request) {
	if h.federated == nil {
		writeError(w, http.StatusNotFound, "federated_auth_disabled", "federated sign-in is disabled")
		return
	}
	ctx := r.Context()

	pendingSess, ok := h.pendingSession(r)
	if !ok {
		http.Redirect(w, r, "/api/login", http.StatusFound)
		return
	}
	pending := pendingSess.Data.Pending

	query := r.URL.Query()
	state, code := query.Get("state"), query.Get("code")
	if state == "" || state != pending.State || code == "" {
		h.log.Warn("auth.callback: state mismatch", "has_code", code != "")
		http.Redirect(w, r, "/api/login", http.StatusFound)
		return
	}

	tokens, err := h.federated.Exchange(ctx, code, pending.CodeVerifier, pending.CallbackURL)
	if err != nil {
		h.log.BusinessError("auth.callback: code exchange failed", err)
		http.Redirect(w, r, "/api/login", http.StatusFound)
		return
	}
	if tokens.Claims == nil {
		h.fail(w, "auth.callback", errors.New("token response carried no identity claims"))
		return
	}

	user, err := h.Users.UpsertFederated(ctx, userdomain.FederatedProfile{
		Subject:         tokens.Claims.Subject,
		Email:           tokens.Claims.Email,
		FirstName:       tokens.Claims.FirstName,
		LastName:        tokens.Claims.LastName,
		ProfileImageURL: tokens.Claims.ProfileImageURL,
	})
	if err != nil {
		h.fail(w, "auth.callback", err, "subject", tokens.Claims.Subject)
		return
	}

	sess, err := h.Sessions.Establish(ctx, pendingSess.ID, sessiondomain.DataFromTokens(user.ID, tokens))
	if err != nil {
		h.fail(w, "auth.callback", err, "user_id", user.ID)
		return
	}
	if err := h.cookies.Set(w, sess); err != nil {
		h.fail(w, "auth.callback", err, "user_id", user.ID)
		return
	}

	returnTo := pending.ReturnTo
	if returnTo == "" {
		returnTo = "/"
	}
	http.Redirect(w, r, returnTo, http.StatusFound)
}

// FederatedLogout ends the session and, for federated sessions, continues to the issuer's end-session page.
func (h *Handlers) FederatedLogout(w http.ResponseWriter, r *http.Request) {
	mode := h.endSession(w, r)

	target := "/"
	if mode == sessiondomain.ModeOIDC && h.federated != nil {
		endURL, err := h.federated.EndSessionURL(r.Context(), requestOrigin(r))
		if err != nil {
			h.log.InternalError("auth.logout: end session url failed", err)
		} else if endURL != "" {
			target = endURL
		}
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *Handlers) signIn(w http.ResponseWriter, r *http.Request, data sessiondomain.Data) error {
	previousID, _ := h.cookies.SessionID(r)
	sess, err := h.Sessions.Establish(r.Context(), previousID, data)
	if err != nil {
		return err
	}
	return h.cookies.Set(w, sess)
}

// endSession destroys the cookie's session, if any, and reports the mode it was in.
func (h *Handlers) endSession(w http.ResponseWriter, r *http.Request) sessiondomain.Mode {
	defer h.cookies.Clear(w)

	id, err := h.cookies.SessionID(r)
	if err != nil {
		return ""
	}
	var mode sessiondomain.Mode
	if sess, err := h.Sessions.Load(r.Context(), id); err == nil {
		mode = sess.Data.Mode
	}
	if err := h.Sessions.Destroy(r.Context(), id); err != nil {
		h.log.InternalError("auth.logout: destroy session failed", err)
	}
	return mode
}

func (h *Handlers) pendingSession(r *http.Request) (*sessiondomain.Session, bool) {
	id, err := h.cookies.SessionID(r)
	if err != nil {
		return nil, false
	}
	sess, err := h.Sessions.Load(r.Context(), id)
	if err != nil || sess.Data.Pending == nil {
		return nil, false
	}
	return sess, true
}

func localSessionData(user *userdomain.User) sessiondomain.Data {
	claims := sessiondomain.Claims{Subject: user.ID}
	if user.Email != nil {
		claims.Email = *user.Email
	}
	if user.FirstName != nil {
		claims.FirstName = *user.FirstName
	}
	if user.LastName != nil {
		claims.LastName = *user.LastName
	}
	return sessiondomain.Data{UserID: user.ID, Mode: sessiondomain.ModeLocal, Claims: claims}
}

func requestHostname(r *http.Request) string {
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(host)
}

func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// safeReturnTo accepts local paths only.
func safeReturnTo(value string) string {
	if !strings.HasPrefix(value, "/") || strings.HasPrefix(value, "//") || strings.HasPrefix(value, "/\\") {
		return ""
	}
	return value
}
