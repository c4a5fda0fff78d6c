package devapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/Harsha6202/personalized-news-sentiment/internal/api/handler"
	"github.com/Harsha6202/personalized-news-sentiment/internal/infrastructure/graphql"
)

// GraphQLPath is where the development backend listens for documents.
const GraphQLPath = "/v1/graphql"

type graphqlRequest struct {
	Query     string          `json:"query"`
	Variables json.RawMessage `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   map[string]any `json:"data,omitempty"`
	Errors []graphqlError `json:"errors,omitempty"`
}

// call is one decoded operation.
type call struct {
	vars    json.RawMessage
	account *Account // nil when no valid credential came with the request
}

func (c *call) decode(out any) error {
	if len(c.vars) == 0 || string(c.vars) == "null" {
		return nil
	}
	if err := json.Unmarshal(c.vars, out); err != nil {
		return fmt.Errorf("invalid variables: %w", err)
	}
	return nil
}

// resolver answers one operation with the value of its root field.
type resolver func(ctx context.Context, c *call) (any, error)

type operation struct {
	field   string
	authed  bool
	resolve resolver
}

// Server dispatches GraphQL documents on their operation name. It does not
// parse selection sets; every field of a type is always returned.
type Server struct {
	svc *Service
	ops map[string]operation
	log zerolog.Logger
}

func NewServer(svc *Service, log zerolog.Logger) *Server {
	s := &Server{svc: svc, log: log.With().Str("component", "devapi_server").Logger()}
	s.ops = map[string]operation{
		graphql.OpGetCurrentUser:        {field: "getCurrentUser", resolve: s.currentUser},
		graphql.OpLogin:                 {field: "login", resolve: s.login},
		graphql.OpRegister:              {field: "register", resolve: s.register},
		graphql.OpVerifyEmail:           {field: "verifyEmail", resolve: s.verifyEmail},
		graphql.OpSendVerificationEmail: {field: "sendVerificationEmail", resolve: s.sendVerificationEmail},
		graphql.OpGetArticles:           {field: "articles", authed: true, resolve: s.listArticles},
		graphql.OpGetArticle:            {field: "article", authed: true, resolve: s.article},
		graphql.OpGetUserProfile:        {field: "getUserProfile", authed: true, resolve: s.profile},
		graphql.OpGetDashboardStats:     {field: "dashboardStats", authed: true, resolve: s.stats},
		graphql.OpUpdatePreferences:     {field: "updatePreferences", authed: true, resolve: s.updatePreferences},
		graphql.OpSaveArticle:           {field: "saveArticle", authed: true, resolve: s.saveArticle},
		graphql.OpMarkArticleRead:       {field: "markArticleRead", authed: true, resolve: s.markArticleRead},
	}
	return s
}

// Router builds the echo instance serving the GraphQL endpoint.
func (s *Server) Router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.POST(GraphQLPath, s.handle)
	return e
}

func (s *Server) handle(c echo.Context) error {
	var req graphqlRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		return c.JSON(http.StatusBadRequest, graphqlResponse{Errors: []graphqlError{{Message: "request must carry a query"}}})
	}

	name := graphql.OperationName(req.Query)
	op, ok := s.ops[name]
	if !ok {
		return c.JSON(http.StatusOK, failure(fmt.Errorf("unknown operation %q", name)))
	}

	ctx := c.Request().Context()
	cl := &call{vars: req.Variables}
	if token := bearer(c.Request().Header.Get(echo.HeaderAuthorization)); token != "" {
		if account, err := s.svc.Authenticate(ctx, token); err == nil {
			cl.account = account
		}
	}
	if op.authed && cl.account == nil {
		return c.JSON(http.StatusOK, failure(errors.New("not authenticated")))
	}

	value, err := op.resolve(ctx, cl)
	if err != nil {
		s.log.Debug().Err(err).Str("operation", name).Msg("operation failed")
		return c.JSON(http.StatusOK, failure(err))
	}
	return c.JSON(http.StatusOK, graphqlResponse{Data: map[string]any{op.field: value}})
}

func bearer(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func failure(err error) graphqlResponse {
	msg := err.Error()
	if errors.Is(err, ErrInvalidCredentials) {
		msg = "Invalid email or password"
	}
	return graphqlResponse{Errors: []graphqlError{{Message: msg}}}
}

func ack(message string) graphql.ActionResult {
	return graphql.ActionResult{Success: true, Message: message}
}

func nack(message string) graphql.ActionResult {
	return graphql.ActionResult{Success: false, Message: message}
}

func userOf(a *Account) *graphql.User {
	u := graphql.FromIdentity(a.Identity())
	return &u
}

// --- resolvers ---

func (s *Server) currentUser(_ context.Context, c *call) (any, error) {
	if c.account == nil {
		return nil, nil
	}
	return userOf(c.account), nil
}

func (s *Server) login(ctx context.Context, c *call) (any, error) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.decode(&in); err != nil {
		return nil, err
	}
	token, account, err := s.svc.Login(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	return graphql.LoginResult{Token: token, User: userOf(account)}, nil
}

func (s *Server) register(ctx context.Context, c *call) (any, error) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.decode(&in); err != nil {
		return nil, err
	}
	_, err := s.svc.Register(ctx, in.Email, in.Password, in.Name)
	switch {
	case errors.Is(err, ErrAccountExists):
		return nack("An account with this email already exists"), nil
	case errors.Is(err, ErrInvalidInput):
		return nack(err.Error()), nil
	case err != nil:
		return nil, err
	}
	return ack("Registration successful. Please verify your email."), nil
}

func (s *Server) verifyEmail(ctx context.Context, c *call) (any, error) {
	var in struct {
		Token string `json:"token"`
	}
	if err := c.decode(&in); err != nil {
		return nil, err
	}
	if _, err := s.svc.VerifyEmail(ctx, in.Token); err != nil {
		if errors.Is(err, ErrInvalidToken) {
			return nack("Invalid or expired verification token"), nil
		}
		return nil, err
	}
	return ack("Email verified"), nil
}

func (s *Server) sendVerificationEmail(ctx context.Context, c *call) (any, error) {
	var in struct {
		Email string `json:"email"`
	}
	if err := c.decode(&in); err != nil {
		return nil, err
	}
	if err := s.svc.SendVerification(ctx, in.Email); err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nack("No account found for this email"), nil
		}
		return nil, err
	}
	return ack("Verification email sent"), nil
}

func (s *Server) listArticles(ctx context.Context, c *call) (any, error) {
	articles, err := s.svc.Articles(ctx, c.account)
	if err != nil {
		return nil, err
	}
	out := make([]graphql.Article, 0, len(articles))
	for _, a := range articles {
		out = append(out, graphql.FromArticle(a))
	}
	return out, nil
}

func (s *Server) article(ctx context.Context, c *call) (any, error) {
	var in struct {
		ID string `json:"id"`
	}
	if err := c.decode(&in); err != nil {
		return nil, err
	}
	a, err := s.svc.Article(ctx, c.account, in.ID)
	if errors.Is(err, ErrUnknownArticle) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	wire := graphql.FromArticle(*a)
	return &wire, nil
}

func (s *Server) profile(_ context.Context, c *call) (any, error) {
	return userOf(c.account), nil
}

func (s *Server) stats(ctx context.Context, c *call) (any, error) {
	st, err := s.svc.Stats(ctx, c.account)
	if err != nil {
		return nil, err
	}
	return graphql.DashboardStats{
		TotalArticles: st.TotalArticles,
		ReadArticles:  st.ReadArticles,
		SavedArticles: st.SavedArticles,
		SentimentBreakdown: graphql.SentimentBreakdown{
			Positive: st.SentimentBreakdown.Positive,
			Neutral:  st.SentimentBreakdown.Neutral,
			Negative: st.SentimentBreakdown.Negative,
		},
	}, nil
}

func (s *Server) updatePreferences(ctx context.Context, c *call) (any, error) {
	var in struct {
		Preferences graphql.Preferences `json:"preferences"`
	}
	if err := c.decode(&in); err != nil {
		return nil, err
	}
	account, err := s.svc.UpdatePreferences(ctx, c.account, in.Preferences.ToDomain())
	if err != nil {
		return nil, err
	}
	return userOf(account), nil
}

func (s *Server) saveArticle(ctx context.Context, c *call) (any, error) {
	var in struct {
		ID    string `json:"id"`
		Saved bool   `json:"saved"`
	}
	if err := c.decode(&in); err != nil {
		return nil, err
	}
	if err := s.svc.SetSaved(ctx, c.account, in.ID, in.Saved); err != nil {
		if errors.Is(err, ErrUnknownArticle) {
			return nack("Article not found"), nil
		}
		return nil, err
	}
	if in.Saved {
		return ack("Article saved"), nil
	}
	return ack("Article removed"), nil
}

func (s *Server) markArticleRead(ctx context.Context, c *call) (any, error) {
	var in struct {
		ID string `json:"id"`
	}
	if err := c.decode(&in); err != nil {
		return nil, err
	}
	if err := s.svc.MarkRead(ctx, c.account, in.ID); err != nil {
		if errors.Is(err, ErrUnknownArticle) {
			return nack("Article not found"), nil
		}
		return nil, err
	}
	return ack("Article marked as read"), nil
}
