// Package pages serves the localized landing pages and the locale rules the
// browser scripts use to pick a language.
package pages

import (
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/neuroeducatimo/landing/pkg/common"
	"github.com/neuroeducatimo/landing/pkg/locale"
	"github.com/neuroeducatimo/landing/pkg/logger"
	"go.uber.org/zap"
)

// legacyTeamLang is the language of the old unprefixed /team page
const legacyTeamLang = locale.RU

// LocaleResponse is returned by GET /api/locale
type LocaleResponse struct {
	Lang locale.Code `json:"lang"`
	locale.Rules
}

// Handler serves static landing pages
type Handler struct {
	staticDir string
	resolver  *locale.Resolver
}

// NewHandler creates a new pages handler
func NewHandler(staticDir string, resolver *locale.Resolver) *Handler {
	return &Handler{staticDir: staticDir, resolver: resolver}
}

// RegisterRoutes registers the page routes and the locale endpoint. Routes are
// registered per code so they never shadow /blog, /admin and the API.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/index.html", redirect("/"))
	r.GET("/api/locale", h.Locale)

	for _, code := range locale.Supported() {
		c := code
		r.GET("/"+string(c), h.Home(c))
		r.GET("/"+string(c)+"/", h.Home(c))
		r.GET("/"+string(c)+"/team", h.Team(c))
		r.GET("/"+string(c)+".html", redirect(homePath(c)))
		r.GET("/team-"+string(c), redirect(teamPath(c)))
		r.GET("/team-"+string(c)+".html", redirect(teamPath(c)))
	}

	for alias, code := range locale.Aliases() {
		r.GET("/"+alias, redirect(homePath(code)))
		r.GET("/"+alias+"/", redirect(homePath(code)))
		r.GET("/"+alias+"/team", redirect(teamPath(code)))
		r.GET("/"+alias+".html", redirect(homePath(code)))
		r.GET("/team-"+alias, redirect(teamPath(code)))
		r.GET("/team-"+alias+".html", redirect(teamPath(code)))
	}

	r.GET("/team", redirect(teamPath(legacyTeamLang)))
	r.GET("/team.html", redirect(teamPath(legacyTeamLang)))
}

// Root redirects to the home page of the visitor's language
func (h *Handler) Root(c *gin.Context) {
	code := h.resolver.Resolve(locale.Signals{
		AcceptLanguage: c.GetHeader("Accept-Language"),
	})
	c.Header("Vary", "Accept-Language")
	c.Redirect(http.StatusFound, homePath(code))
}

// Home serves {lang}.html
func (h *Handler) Home(code locale.Code) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.servePage(c, code, "%s.html")
	}
}

// Team serves team-{lang}.html
func (h *Handler) Team(code locale.Code) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.servePage(c, code, "team-%s.html")
	}
}

// Locale resolves a language from ?path=, ?document_lang= and the
// Accept-Language header and returns it with the resolver rules
func (h *Handler) Locale(c *gin.Context) {
	p := c.Query("path")
	if p == "" {
		if ref, err := url.Parse(c.GetHeader("Referer")); err == nil {
			p = ref.Path
		}
	}

	code := h.resolver.Resolve(locale.Signals{
		Path:           p,
		DocumentLang:   c.Query("document_lang"),
		AcceptLanguage: c.GetHeader("Accept-Language"),
	})

	c.JSON(http.StatusOK, LocaleResponse{Lang: code, Rules: h.resolver.Rules()})
}

// Assets serves other files from the static directory. It is meant for NoRoute.
func (h *Handler) Assets(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		common.ErrorResponse(c, http.StatusNotFound, "not found")
		return
	}
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		common.ErrorResponse(c, http.StatusNotFound, "not found")
		return
	}

	if file, ok := h.lookup(c.Request.URL.Path); ok {
		c.File(file)
		return
	}
	c.String(http.StatusNotFound, "404 page not found")
}

func (h *Handler) servePage(c *gin.Context, code locale.Code, pattern string) {
	for _, name := range pageFiles(code, pattern) {
		if file, ok := h.lookup(name); ok {
			c.Header("Content-Language", string(code))
			c.File(file)
			return
		}
	}

	logger.WithContext(c.Request.Context()).Warn("Page file missing",
		zap.String("lang", string(code)),
		zap.String("pattern", pattern),
		zap.String("static_dir", h.staticDir),
	)
	c.String(http.StatusNotFound, "404 page not found")
}

// lookup maps a URL path to a regular file under the static directory.
// Hidden files and anything outside the directory are never served.
func (h *Handler) lookup(urlPath string) (string, bool) {
	clean := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if clean == "" {
		return "", false
	}
	for _, seg := range strings.Split(clean, "/") {
		if strings.HasPrefix(seg, ".") {
			return "", false
		}
	}

	file := filepath.Join(h.staticDir, filepath.FromSlash(clean))
	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		return "", false
	}
	return file, true
}

// pageFiles lists candidate file names for code, canonical name first and
// then the legacy alias name (team-ua.html) older bundles still ship
func pageFiles(code locale.Code, pattern string) []string {
	names := []string{strings.Replace(pattern, "%s", string(code), 1)}
	for alias, target := range locale.Aliases() {
		if target == code {
			names = append(names, strings.Replace(pattern, "%s", alias, 1))
		}
	}
	return names
}

func homePath(code locale.Code) string {
	return "/" + string(code) + "/"
}

func teamPath(code locale.Code) string {
	return "/" + string(code) + "/team"
}

func redirect(target string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if q := c.Request.URL.RawQuery; q != "" {
			c.Redirect(http.StatusMovedPermanently, target+"?"+q)
			return
		}
		c.Redirect(http.StatusMovedPermanently, target)
	}
}
