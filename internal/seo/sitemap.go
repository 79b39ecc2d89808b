package seo

import (
	"encoding/xml"
	"strconv"
	"time"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapEntry is one page to list
type SitemapEntry struct {
	Path       string
	LastMod    time.Time
	ChangeFreq string
	Priority   float64
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []sitemapURL
}

type sitemapURL struct {
	XMLName    xml.Name `xml:"url"`
	Loc        string   `xml:"loc"`
	LastMod    string   `xml:"lastmod,omitempty"`
	ChangeFreq string   `xml:"changefreq,omitempty"`
	Priority   string   `xml:"priority,omitempty"`
}

// BuildSitemap renders entries as a sitemaps.org document
func BuildSitemap(baseURL string, entries []SitemapEntry) ([]byte, error) {
	set := urlSet{XMLNS: sitemapNS, URLs: make([]sitemapURL, 0, len(entries))}
	for _, e := range entries {
		u := sitemapURL{
			Loc:        AbsoluteURL(baseURL, e.Path),
			ChangeFreq: e.ChangeFreq,
		}
		if !e.LastMod.IsZero() {
			u.LastMod = e.LastMod.UTC().Format("2006-01-02")
		}
		if e.Priority > 0 {
			u.Priority = formatPriority(e.Priority)
		}
		set.URLs = append(set.URLs, u)
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

func formatPriority(p float64) string {
	if p > 1 {
		p = 1
	}
	return strconv.FormatFloat(p, 'f', 1, 64)
}
