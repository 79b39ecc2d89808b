package seo

import (
	"encoding/json"
	"net/url"
	"strings"
	"time"
)

// Site describes the publisher of the pages
type Site struct {
	BaseURL       string
	Author        string
	Publisher     string
	PublisherLogo string
}

// Page is the input for article metadata
type Page struct {
	Path        string
	Title       string
	Summary     string
	Content     string
	Keywords    string
	Image       string
	Language    string
	PublishedAt time.Time
	ModifiedAt  time.Time
}

// Metadata is the structured data emitted for an article page
type Metadata struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	CanonicalURL string    `json:"canonical_url"`
	PublishedAt  time.Time `json:"published_at"`
	ModifiedAt   time.Time `json:"modified_at"`
	Author       string    `json:"author"`
	Publisher    string    `json:"publisher"`
	Image        string    `json:"image,omitempty"`
	InLanguage   string    `json:"in_language"`
	Keywords     string    `json:"keywords,omitempty"`
	JSONLD       string    `json:"json_ld"`
}

const descriptionLimit = 160

// BuildMetadata derives article metadata and its schema.org BlogPosting form
func BuildMetadata(site Site, p Page) Metadata {
	modified := p.ModifiedAt
	if modified.IsZero() {
		modified = p.PublishedAt
	}

	m := Metadata{
		Title:        p.Title,
		Description:  Describe(p.Summary, p.Content, descriptionLimit),
		CanonicalURL: AbsoluteURL(site.BaseURL, p.Path),
		PublishedAt:  p.PublishedAt,
		ModifiedAt:   modified,
		Author:       site.Author,
		Publisher:    site.Publisher,
		Image:        absoluteIfRelative(site.BaseURL, p.Image),
		InLanguage:   p.Language,
		Keywords:     p.Keywords,
	}
	m.JSONLD = blogPostingJSON(site, m)
	return m
}

type jsonLDOrg struct {
	Type string      `json:"@type"`
	Name string      `json:"name"`
	Logo *jsonLDLogo `json:"logo,omitempty"`
}

type jsonLDLogo struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

type jsonLDPage struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
}

type blogPosting struct {
	Context          string     `json:"@context"`
	Type             string     `json:"@type"`
	Headline         string     `json:"headline"`
	Description      string     `json:"description,omitempty"`
	Image            string     `json:"image,omitempty"`
	DatePublished    string     `json:"datePublished"`
	DateModified     string     `json:"dateModified"`
	InLanguage       string     `json:"inLanguage"`
	Keywords         string     `json:"keywords,omitempty"`
	Author           jsonLDOrg  `json:"author"`
	Publisher        jsonLDOrg  `json:"publisher"`
	MainEntityOfPage jsonLDPage `json:"mainEntityOfPage"`
}

func blogPostingJSON(site Site, m Metadata) string {
	doc := blogPosting{
		Context:       "https://schema.org",
		Type:          "BlogPosting",
		Headline:      m.Title,
		Description:   m.Description,
		Image:         m.Image,
		DatePublished: m.PublishedAt.UTC().Format(time.RFC3339),
		DateModified:  m.ModifiedAt.UTC().Format(time.RFC3339),
		InLanguage:    m.InLanguage,
		Keywords:      m.Keywords,
		Author:        jsonLDOrg{Type: "Organization", Name: m.Author},
		Publisher:     jsonLDOrg{Type: "Organization", Name: m.Publisher},
		MainEntityOfPage: jsonLDPage{
			Type: "WebPage",
			ID:   m.CanonicalURL,
		},
	}
	if site.PublisherLogo != "" {
		doc.Publisher.Logo = &jsonLDLogo{Type: "ImageObject", URL: absoluteIfRelative(site.BaseURL, site.PublisherLogo)}
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return ""
	}
	return string(out)
}

// AbsoluteURL joins the site base URL and a path. Each path segment is
// percent-encoded, so slugs in any script yield an RFC 3986 URL.
func AbsoluteURL(baseURL, path string) string {
	if path == "" {
		return baseURL + "/"
	}
	if path[0] != '/' {
		path = "/" + path
	}
	return baseURL + EscapePath(path)
}

// EscapePath percent-encodes every segment of p. Segments that are already
// encoded are decoded first so they are not encoded twice.
func EscapePath(p string) string {
	segs := strings.Split(p, "/")
	for i, seg := range segs {
		if raw, err := url.PathUnescape(seg); err == nil {
			seg = raw
		}
		segs[i] = url.PathEscape(seg)
	}
	return strings.Join(segs, "/")
}

func absoluteIfRelative(baseURL, u string) string {
	if u == "" || u[0] != '/' {
		return u
	}
	return baseURL + EscapePath(u)
}
