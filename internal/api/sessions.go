package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dcollard/maestro/internal/auth"
)

// signupRequest is the request body for creating an account.
type signupRequest struct {
	UserName     string `json:"userName"`
	Password     string `json:"password"`
	EmailAddress string `json:"emailAddress"`
}

func (req *signupRequest) validate() string {
	if req.UserName == "" {
		return "userName is required"
	}
	if req.Password == "" {
		return "password is required"
	}
	if req.EmailAddress == "" {
		return "emailAddress is required"
	}
	return ""
}

// loginRequest is the request body for authenticating.
type loginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// loginResponse is returned on successful authentication.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// handleSignup registers a new account. The response echoes the created
// user; the password digest is never serialised.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeBadRequest(w, msg)
		return
	}

	user, err := s.authenticator.Register(r.Context(), req.UserName, req.Password, req.EmailAddress)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidUsername):
			writeBadRequest(w, "invalid userName")
		case errors.Is(err, auth.ErrUsernameTaken):
			writeRejected(w, "username is already in use")
		default:
			s.storeError(w, r, "registering user", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// handleLogin authenticates a userName/password pair and issues a signed
// bearer token. Unknown userName and wrong password are indistinguishable
// to the caller.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.UserName == "" || req.Password == "" {
		writeBadRequest(w, "userName and password are required")
		return
	}

	user, err := s.authenticator.Authenticate(r.Context(), req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeRejected(w, "invalid username and/or password")
			return
		}
		s.storeError(w, r, "authenticating user", err)
		return
	}

	token, expiresIn, err := s.issueToken(user)
	if err != nil {
		s.logger.Error("signing token failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	})
}

// issueToken signs a short-lived HS256 access token for the user.
func (s *Server) issueToken(user *auth.User) (string, int64, error) {
	ttl := time.Duration(s.sec.JWT.AccessTokenTTL) * time.Minute
	now := time.Now()

	claims := jwt.MapClaims{
		"sub": user.ID.Hex(),
		"usr": user.UserName,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.sec.JWT.Secret))
	if err != nil {
		return "", 0, err
	}
	return signed, int64(ttl.Seconds()), nil
}
