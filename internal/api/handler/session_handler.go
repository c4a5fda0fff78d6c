package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
	"github.com/Harsha6202/personalized-news-sentiment/internal/core/ports"
)

const keepAliveInterval = 15 * time.Second

type SessionHandler struct {
	session ports.SessionService
}

func NewSessionHandler(session ports.SessionService) *SessionHandler {
	return &SessionHandler{session: session}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"     validate:"required"`
}

type verifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

// sessionResponse is a session snapshot plus its derived phase. The
// credential never leaves the process.
type sessionResponse struct {
	domain.SessionState
	Phase domain.Phase `json:"phase"`
}

func toSessionResponse(s domain.SessionState) sessionResponse {
	return sessionResponse{SessionState: s, Phase: s.Phase()}
}

// Get returns the current session snapshot.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /v1/session [get]
func (h *SessionHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, toSessionResponse(h.session.State()))
}

// Login signs the user in. An unverified account is never signed in; the
// returned snapshot stays anonymous and a verification mail is sent.
//
// @Summary      Login
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	state := h.session.Login(c.Request().Context(), ports.LoginInput{Email: req.Email, Password: req.Password})
	return c.JSON(http.StatusOK, toSessionResponse(state))
}

// Register creates an account. The session is not signed in.
//
// @Summary      Register a new account
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/session/register [post]
func (h *SessionHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	state := h.session.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	return c.JSON(http.StatusOK, toSessionResponse(state))
}

// Logout forgets the persisted credential.
//
// @Summary      Logout
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /v1/session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, toSessionResponse(h.session.Logout(c.Request().Context())))
}

// VerifyEmail confirms a verification token from the mailed link.
//
// @Summary      Verify email
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      verifyEmailRequest  true  "Verification token"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/session/verify-email [post]
func (h *SessionHandler) VerifyEmail(c echo.Context) error {
	var req verifyEmailRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(h.session.VerifyEmail(c.Request().Context(), req.Token)))
}

// SendVerificationEmail re-sends the verification link to the current identity.
//
// @Summary      Resend verification email
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /v1/session/verification-email [post]
func (h *SessionHandler) SendVerificationEmail(c echo.Context) error {
	return c.JSON(http.StatusOK, toSessionResponse(h.session.SendVerificationEmail(c.Request().Context())))
}

// Events streams every session snapshot as a server-sent event, starting
// with the current one. Intermediate snapshots may be coalesced for slow
// readers; the latest one is always delivered.
//
// @Summary      Session change stream
// @Tags         session
// @Produce      text/event-stream
// @Success      200
// @Router       /v1/session/events [get]
func (h *SessionHandler) Events(c echo.Context) error {
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.WriteHeader(http.StatusOK)

	updates := make(chan domain.SessionState, 1)
	unsubscribe := h.session.Subscribe(func(s domain.SessionState) {
		select {
		case updates <- s:
		default:
			select {
			case <-updates:
			default:
			}
			select {
			case updates <- s:
			default:
			}
		}
	})
	defer unsubscribe()

	if err := writeSessionEvent(w, h.session.State()); err != nil {
		return nil
	}

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-updates:
			if err := writeSessionEvent(w, s); err != nil {
				return nil
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}

func writeSessionEvent(w *echo.Response, s domain.SessionState) error {
	payload, err := json.Marshal(toSessionResponse(s))
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: session\ndata: %s\n\n", payload); err != nil {
		return err
	}
	w.Flush()
	return nil
}
