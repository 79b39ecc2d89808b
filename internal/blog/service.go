// Package blog composes articles, locale resolution and keyword linking into
// the data the public blog pages are rendered from.
package blog

import (
	"context"
	"fmt"
	"strings"

	"github.com/neuroeducatimo/landing/internal/articles"
	"github.com/neuroeducatimo/landing/internal/seo"
	"github.com/neuroeducatimo/landing/pkg/i18n"
	"github.com/neuroeducatimo/landing/pkg/locale"
)

// ArticleSource is the part of the article service the blog reads from
type ArticleSource interface {
	GetBySlug(ctx context.Context, slug string) (*articles.Article, error)
	ListByLanguage(ctx context.Context, lang *locale.Code) ([]*articles.Article, error)
	ListAll(ctx context.Context) ([]*articles.Article, error)
	ListAlternates(ctx context.Context, a *articles.Article) ([]articles.Alternate, error)
}

// ListView is the data for the blog index
type ListView struct {
	Articles []*articles.Article `json:"articles"`
	Locale   locale.Code         `json:"locale"`
	Terms    i18n.Terms          `json:"terms"`
}

// AlternateLink is a translation of the current article, ready for hreflang
type AlternateLink struct {
	Language locale.Code `json:"language"`
	Slug     string      `json:"slug"`
	URL      string      `json:"url"`
}

// ArticleView is the data for a single article page
type ArticleView struct {
	Article          *articles.Article `json:"article"`
	Locale           locale.Code       `json:"locale"`
	Alternates       []AlternateLink   `json:"alternates"`
	DefaultAlternate *AlternateLink    `json:"default_alternate,omitempty"`
	Metadata         seo.Metadata      `json:"metadata"`
	Terms            i18n.Terms        `json:"terms"`
}

// Service assembles blog views
type Service struct {
	articles    ArticleSource
	linker      *seo.Linker
	resolver    *locale.Resolver
	catalog     *i18n.Catalog
	site        seo.Site
	blogDefault locale.Code
}

// NewService creates a blog service. blogDefault is used when a list request
// carries no recognizable language.
func NewService(src ArticleSource, linker *seo.Linker, resolver *locale.Resolver, catalog *i18n.Catalog, site seo.Site, blogDefault string) *Service {
	def := resolver.ResolveOr(blogDefault, resolver.Default())
	return &Service{
		articles:    src,
		linker:      linker,
		resolver:    resolver,
		catalog:     catalog,
		site:        site,
		blogDefault: def,
	}
}

// RenderList returns the articles of the requested language
func (s *Service) RenderList(ctx context.Context, rawLanguage string) (*ListView, error) {
	lang := s.resolver.ResolveOr(rawLanguage, s.blogDefault)

	list, err := s.articles.ListByLanguage(ctx, &lang)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*articles.Article{}
	}

	return &ListView{
		Articles: list,
		Locale:   lang,
		Terms:    s.catalog.Terms(string(lang)),
	}, nil
}

// RenderArticle returns one article in its own language with keyword links
// applied. The visitor's language plays no part.
func (s *Service) RenderArticle(ctx context.Context, slug string) (*ArticleView, error) {
	a, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	alternates, err := s.articles.ListAlternates(ctx, a)
	if err != nil {
		return nil, err
	}

	rendered := *a
	rendered.Content = s.linker.Linkify(a.Content, a.Language)

	links := make([]AlternateLink, 0, len(alternates))
	for _, alt := range alternates {
		links = append(links, s.alternateLink(alt))
	}
	var def *AlternateLink
	if d := articles.DefaultAlternate(alternates); d != nil {
		link := s.alternateLink(*d)
		def = &link
	}

	published := a.PublishedAt
	if published.IsZero() {
		published = a.CreatedAt
	}

	return &ArticleView{
		Article:          &rendered,
		Locale:           a.Language,
		Alternates:       links,
		DefaultAlternate: def,
		Metadata: seo.BuildMetadata(s.site, seo.Page{
			Path:        articlePath(a.Slug),
			Title:       a.Title,
			Summary:     a.Summary,
			Content:     a.Content,
			Keywords:    a.Keywords,
			Image:       a.ImageURL,
			Language:    string(a.Language),
			PublishedAt: published,
			ModifiedAt:  a.LastModified(),
		}),
		Terms: s.catalog.Terms(string(a.Language)),
	}, nil
}

// Sitemap lists the locale home pages and every article permalink
func (s *Service) Sitemap(ctx context.Context) ([]byte, error) {
	all, err := s.articles.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]seo.SitemapEntry, 0, len(locale.Supported())+len(all))
	for _, c := range locale.Supported() {
		entries = append(entries, seo.SitemapEntry{
			Path:       "/" + string(c) + "/",
			ChangeFreq: "weekly",
			Priority:   1.0,
		})
	}
	for _, a := range all {
		entries = append(entries, seo.SitemapEntry{
			Path:       articlePath(a.Slug),
			LastMod:    a.LastModified(),
			ChangeFreq: "monthly",
			Priority:   0.7,
		})
	}
	return seo.BuildSitemap(s.site.BaseURL, entries)
}

// Robots returns a robots.txt allowing everything and naming the sitemap
func (s *Service) Robots() string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /admin\n")
	b.WriteString("Disallow: /api/\n")
	fmt.Fprintf(&b, "\nSitemap: %s\n", seo.AbsoluteURL(s.site.BaseURL, "/sitemap.xml"))
	return b.String()
}

func (s *Service) alternateLink(alt articles.Alternate) AlternateLink {
	return AlternateLink{
		Language: alt.Language,
		Slug:     alt.Slug,
		URL:      seo.AbsoluteURL(s.site.BaseURL, articlePath(alt.Slug)),
	}
}

func articlePath(slug string) string {
	return "/blog/" + slug
}
