package locale

// Signals are the inputs available when resolving a request's language
type Signals struct {
	Path           string
	DocumentLang   string
	AcceptLanguage string
}

// Rules describes the resolver configuration for clients
type Rules struct {
	Supported []Code          `json:"supported"`
	Aliases   map[string]Code `json:"aliases"`
	Default   Code            `json:"default"`
	Order     []string        `json:"order"`
}

// Resolver picks a supported language from request signals
type Resolver struct {
	def Code
}

// NewResolver creates a resolver. An unsupported default falls back to English.
func NewResolver(def string) *Resolver {
	c, ok := Normalize(def)
	if !ok {
		c = EN
	}
	return &Resolver{def: c}
}

// Default returns the fallback language
func (r *Resolver) Default() Code {
	return r.def
}

// Resolve tries path, document language, then Accept-Language and falls back
// to the default. The result is always a supported code.
func (r *Resolver) Resolve(s Signals) Code {
	if c, ok := FromPath(s.Path); ok {
		return c
	}
	if c, ok := FromDocumentLang(s.DocumentLang); ok {
		return c
	}
	if c, ok := FromAcceptLanguage(s.AcceptLanguage); ok {
		return c
	}
	return r.def
}

// ResolveOr normalizes raw and returns fallback when it is not recognized
func (r *Resolver) ResolveOr(raw string, fallback Code) Code {
	if c, ok := Normalize(raw); ok {
		return c
	}
	if IsSupported(fallback) {
		return fallback
	}
	return r.def
}

// Rules returns the resolver configuration
func (r *Resolver) Rules() Rules {
	return Rules{
		Supported: Supported(),
		Aliases:   Aliases(),
		Default:   r.def,
		Order:     []string{"path", "document_lang", "accept_language", "default"},
	}
}
