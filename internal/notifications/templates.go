package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/neuroeducatimo/landing/internal/siteconfig"
	"github.com/neuroeducatimo/landing/pkg/i18n"
	"github.com/neuroeducatimo/landing/pkg/locale"
)

const (
	TagOperator = "lead-operator"
	TagThankYou = "lead-thank-you"
	TagQuiz     = "lead-thank-you-quiz"

	SourceQuiz = "quiz"
)

// LeadDetails is what the email templates know about a registration
type LeadDetails struct {
	Email            string
	OrganizationName string
	Language         string // as submitted
	Phone            string
	OrgType          string
	StudentsCount    string
	Source           string
	QuizAnswers      map[string]interface{}
	QuizAnswersRaw   string // kept when the submitted answers were not valid JSON
	SubmittedAt      time.Time
}

var operatorHTML = template.Must(template.New("operator").Parse(`<h2>New registration</h2>
<table>
{{- range .Rows}}
<tr><td><strong>{{.Label}}</strong></td><td>{{.Value}}</td></tr>
{{- end}}
</table>
{{- if .Answers}}
<h3>Quiz answers</h3>
<pre>{{.Answers}}</pre>
{{- end}}
`))

var thankYouHTML = template.Must(template.New("thanks").Parse(`<p>{{.Greeting}}</p>
<p>{{.Body}}</p>
{{- if .Segments}}
<p>{{.QuizIntro}}</p>
{{- range .Segments}}
<h3>{{.Title}}</h3>
<p>{{.Body}}</p>
{{- end}}
{{- end}}
<p>{{range $i, $line := .Signoff}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
`))

type row struct {
	Label string
	Value string
}

// BuildOperatorNotice renders the email sent to the operator mailbox
func BuildOperatorNotice(to string, d LeadDetails) (Message, error) {
	rows := []row{
		{"Email", d.Email},
		{"Organization", d.OrganizationName},
		{"Language", d.Language},
		{"Phone", d.Phone},
		{"Organization type", d.OrgType},
		{"Students", d.StudentsCount},
		{"Source", d.Source},
	}
	if !d.SubmittedAt.IsZero() {
		rows = append(rows, row{"Submitted", d.SubmittedAt.UTC().Format(time.RFC3339)})
	}

	var shown []row
	var text strings.Builder
	text.WriteString("New registration\n\n")
	for _, r := range rows {
		if r.Value == "" {
			continue
		}
		shown = append(shown, r)
		fmt.Fprintf(&text, "%s: %s\n", r.Label, r.Value)
	}

	answers := formatAnswers(d)
	if answers != "" {
		text.WriteString("\nQuiz answers:\n")
		text.WriteString(answers)
		text.WriteString("\n")
	}

	var html bytes.Buffer
	if err := operatorHTML.Execute(&html, struct {
		Rows    []row
		Answers string
	}{shown, answers}); err != nil {
		return Message{}, fmt.Errorf("render operator email: %w", err)
	}

	subject := fmt.Sprintf("New registration: %s", d.OrganizationName)
	if d.Source == SourceQuiz {
		subject = fmt.Sprintf("New quiz registration: %s", d.OrganizationName)
	}

	return Message{
		To:       to,
		ReplyTo:  d.Email,
		Subject:  subject,
		TextBody: text.String(),
		HTMLBody: html.String(),
		Tag:      TagOperator,
	}, nil
}

// BuildThankYou renders the thank-you email in the lead's language. Quiz
// registrations get the segments matching their answers.
func BuildThankYou(bundle *siteconfig.Bundle, d LeadDetails) (Message, error) {
	lang, ok := locale.Normalize(d.Language)
	if !ok {
		lang = locale.EN
	}
	catalog := bundle.Catalog()
	l := string(lang)

	var segments []siteconfig.QuizSegment
	tag := TagThankYou
	if d.Source == SourceQuiz {
		segments = bundle.MatchQuizSegments(lang, d.QuizAnswers)
		tag = TagQuiz
	}

	greeting := catalog.Translate(i18n.KeyThanksGreeting, l, d.OrganizationName)
	body := catalog.Translate(i18n.KeyThanksBody, l)
	intro := catalog.Translate(i18n.KeyThanksQuizIntro, l)
	signoff := catalog.Translate(i18n.KeyThanksSignoff, l)

	var text strings.Builder
	text.WriteString(greeting + "\n\n" + body + "\n\n")
	if len(segments) > 0 {
		text.WriteString(intro + "\n\n")
		for _, seg := range segments {
			text.WriteString(seg.Title + "\n" + seg.Body + "\n\n")
		}
	}
	text.WriteString(signoff + "\n")

	var html bytes.Buffer
	if err := thankYouHTML.Execute(&html, struct {
		Greeting  string
		Body      string
		QuizIntro string
		Segments  []siteconfig.QuizSegment
		Signoff   []string
	}{greeting, body, intro, segments, strings.Split(signoff, "\n")}); err != nil {
		return Message{}, fmt.Errorf("render thank-you email: %w", err)
	}

	return Message{
		To:       d.Email,
		Subject:  catalog.Translate(i18n.KeyThanksSubject, l),
		TextBody: text.String(),
		HTMLBody: html.String(),
		Tag:      tag,
	}, nil
}

func formatAnswers(d LeadDetails) string {
	if len(d.QuizAnswers) == 0 {
		return d.QuizAnswersRaw
	}
	keys := make([]string, 0, len(d.QuizAnswers))
	for k := range d.QuizAnswers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		v := d.QuizAnswers[k]
		var s string
		if str, ok := v.(string); ok {
			s = str
		} else if data, err := json.Marshal(v); err == nil {
			s = string(data)
		} else {
			s = fmt.Sprint(v)
		}
		fmt.Fprintf(&b, "%s: %s\n", k, s)
	}
	return strings.TrimRight(b.String(), "\n")
}
