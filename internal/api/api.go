package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"url-shortener/internal/entity"
	"url-shortener/internal/repository"
	"url-shortener/internal/service"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type URLService interface {
	Shorten(ctx context.Context, rawURL string) (*entity.ShortURL, error)
	Resolve(ctx context.Context, urlID string) (string, error)
}

type URLHandler struct {
	urlService URLService
}

func NewURLHandler(urlService URLService) *URLHandler {
	return &URLHandler{
		urlService: urlService,
	}
}

// NewServer registers the routes. Everything under /api requires a JWT signed with jwtSecret;
// the redirect route is public.
func NewServer(h *URLHandler, jwtSecret []byte) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	g := e.Group("/api", echojwt.JWT(jwtSecret))
	g.POST("/urls", h.CreateURL)
	g.GET("/urls/:id", h.GetURL)

	e.GET("/:id", h.Redirect)
	return e
}

func (h *URLHandler) CreateURL(c echo.Context) error {
	req := entity.ShortenRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	shortURL, err := h.urlService.Shorten(c.Request().Context(), req.URL)
	if errors.Is(err, service.ErrInvalidURL) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, shortURL)
}

func (h *URLHandler) GetURL(c echo.Context) error {
	id := strings.ToUpper(c.Param("id"))
	url, err := h.urlService.Resolve(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "URL not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"url_id": id, "url": url})
}

func (h *URLHandler) Redirect(c echo.Context) error {
	url, err := h.urlService.Resolve(c.Request().Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "URL not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.Redirect(http.StatusFound, url)
}
