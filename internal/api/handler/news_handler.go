package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
	"github.com/Harsha6202/personalized-news-sentiment/internal/core/ports"
)

type NewsHandler struct {
	news ports.NewsService
}

func NewNewsHandler(news ports.NewsService) *NewsHandler {
	return &NewsHandler{news: news}
}

type articlesResponse struct {
	Articles []domain.Article `json:"articles"`
	Topics   []string         `json:"topics"`
	Total    int              `json:"total"`
}

type shareResponse struct {
	URL string `json:"url"`
}

type preferencesRequest struct {
	Topics          []string `json:"topics"`
	Sources         []string `json:"sources"`
	Keywords        []string `json:"keywords"`
	ExcludeKeywords []string `json:"exclude_keywords"`
}

// List returns the feed filtered by topic (repeatable, any-of) and sentiment.
//
// @Summary      List articles
// @Tags         articles
// @Produce      json
// @Param        topic      query     []string  false  "Topic filter (any of)"  collectionFormat(multi)
// @Param        sentiment  query     string    false  "Sentiment filter"  Enums(positive, neutral, negative)
// @Success      200        {object}  articlesResponse
// @Failure      400        {object}  map[string]string
// @Failure      401        {object}  map[string]string
// @Router       /v1/articles [get]
func (h *NewsHandler) List(c echo.Context) error {
	sentiment, err := domain.ParseSentiment(c.QueryParam("sentiment"))
	if err != nil {
		return domain.NewValidationFault(err.Error())
	}
	filter := domain.ArticleFilter{Topics: c.QueryParams()["topic"], Sentiment: sentiment}

	res, err := h.news.Articles(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articlesResponse{Articles: res.Articles, Topics: res.Topics, Total: res.Total})
}

// Get returns a single article.
//
// @Summary      Get article
// @Tags         articles
// @Produce      json
// @Param        id   path      string  true  "Article ID"
// @Success      200  {object}  domain.Article
// @Failure      404  {object}  map[string]string
// @Router       /v1/articles/{id} [get]
func (h *NewsHandler) Get(c echo.Context) error {
	a, err := h.news.Article(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// ToggleSaved flips the saved flag of an article.
//
// @Summary      Save or unsave article
// @Tags         articles
// @Produce      json
// @Param        id   path      string  true  "Article ID"
// @Success      200  {object}  domain.Article
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /v1/articles/{id}/save [post]
func (h *NewsHandler) ToggleSaved(c echo.Context) error {
	a, err := h.news.ToggleSaved(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// MarkRead marks an article as read.
//
// @Summary      Mark article read
// @Tags         articles
// @Produce      json
// @Param        id   path      string  true  "Article ID"
// @Success      200  {object}  domain.Article
// @Router       /v1/articles/{id}/read [post]
func (h *NewsHandler) MarkRead(c echo.Context) error {
	a, err := h.news.MarkRead(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// Share returns the link to put on the clipboard.
//
// @Summary      Share article
// @Tags         articles
// @Produce      json
// @Param        id   path      string  true  "Article ID"
// @Success      200  {object}  shareResponse
// @Router       /v1/articles/{id}/share [post]
func (h *NewsHandler) Share(c echo.Context) error {
	url, err := h.news.Share(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shareResponse{URL: url})
}

// Profile returns the signed-in identity as stored by the remote API.
//
// @Summary      User profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  domain.Identity
// @Router       /v1/profile [get]
func (h *NewsHandler) Profile(c echo.Context) error {
	identity, err := h.news.Profile(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identity)
}

// Stats returns the dashboard counters.
//
// @Summary      Dashboard stats
// @Tags         profile
// @Produce      json
// @Success      200  {object}  domain.DashboardStats
// @Router       /v1/stats [get]
func (h *NewsHandler) Stats(c echo.Context) error {
	stats, err := h.news.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// UpdatePreferences replaces the stored feed preferences.
//
// @Summary      Update preferences
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      preferencesRequest  true  "Preferences"
// @Success      200   {object}  domain.Identity
// @Failure      400   {object}  map[string]string
// @Router       /v1/preferences [put]
func (h *NewsHandler) UpdatePreferences(c echo.Context) error {
	var req preferencesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	identity, err := h.news.UpdatePreferences(c.Request().Context(), domain.Preferences{
		Topics:          req.Topics,
		Sources:         req.Sources,
		Keywords:        req.Keywords,
		ExcludeKeywords: req.ExcludeKeywords,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identity)
}
