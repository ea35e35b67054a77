package rest

import (
	"net/http"
	"strings"

	"github.com/Gunvolt24/rapid_express/internal/domain"
	"github.com/Gunvolt24/rapid_express/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
)

const (
	authCookieName = "Authorization"
	ctxUserKey     = "auth_user"
)

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if err := req.validate(); err != nil {
		h.respondError(c, err)
		return
	}

	user, token, err := h.svc.Auth.Signup(c.Request.Context(), domain.SignupInput{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.setSessionCookie(c, token)
	respondCreated(c, "User signed up successfully", toAuthView(user, token))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if err := req.validate(); err != nil {
		h.respondError(c, err)
		return
	}

	user, token, err := h.svc.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.setSessionCookie(c, token)
	respondOK(c, "Login successful", toAuthView(user, token))
}

func (h *Handler) logout(c *gin.Context) {
	user := currentUser(c)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, "", -1, "/", "", h.secureCookie, true)
	respondOK(c, "Logout successful", toUserView(user))
}

// requireAuth: токен из cookie Authorization или заголовка "Authorization: Bearer <token>".
// Пользователь кладётся в gin.Context, его id: в контекст запроса (для логов).
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := h.svc.Auth.Authenticate(c.Request.Context(), tokenFromRequest(c.Request))
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.Set(ctxUserKey, user)
		c.Request = c.Request.WithContext(ctxmeta.WithUserID(c.Request.Context(), user.ID))
		c.Next()
	}
}

func tokenFromRequest(r *http.Request) string {
	if ck, err := r.Cookie(authCookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}

// currentUser: пользователь, положенный requireAuth.
func currentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(ctxUserKey); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return &domain.User{}
}

// setSessionCookie: Authorization=<token>; HttpOnly; Max-Age в секундах.
func (h *Handler) setSessionCookie(c *gin.Context, token *domain.AuthToken) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, token.Value, int(token.MaxAge.Seconds()), "/", "", h.secureCookie, true)
}
