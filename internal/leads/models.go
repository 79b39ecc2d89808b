package leads

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	SourceLandingForm = "landing_form"
	SourceQuiz        = "quiz"
)

// Lead is a stored registration
type Lead struct {
	ID               uuid.UUID       `json:"id"`
	Email            string          `json:"email"`
	OrganizationName string          `json:"organization_name"`
	Language         string          `json:"language"`
	Phone            string          `json:"phone,omitempty"`
	OrgType          string          `json:"org_type,omitempty"`
	StudentsCount    string          `json:"students_count,omitempty"`
	Source           string          `json:"source"`
	QuizAnswers      json.RawMessage `json:"quiz_answers,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Submission is a registration as received from the landing form or quiz.
// QuizAnswers holds a JSON body's value; QuizAnswersText the form field.
type Submission struct {
	Email            string          `json:"email" form:"email"`
	OrganizationName string          `json:"organization_name" form:"organization_name"`
	CenterName       string          `json:"center_name" form:"center_name"`
	Lang             string          `json:"lang" form:"lang"`
	Language         string          `json:"language" form:"language"`
	Phone            string          `json:"phone" form:"phone"`
	OrgType          string          `json:"org_type" form:"org_type"`
	StudentsCount    flexString      `json:"students_count" form:"students_count"`
	Source           string          `json:"source" form:"source"`
	QuizAnswers      json.RawMessage `json:"quiz_answers" form:"-"`
	QuizAnswersText  string          `json:"-" form:"-"`
}

// RegisterResult is returned to the client on success
type RegisterResult struct {
	Email            string `json:"email"`
	OrganizationName string `json:"organization_name"`

	Persisted        bool `json:"-"`
	OperatorNotified bool `json:"-"`
}

// flexString accepts a JSON string or number. The quiz posts students_count
// as a number, the landing form as text.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// language returns the submitted language, preferring the form's lang field
func (s *Submission) language() string {
	if v := strings.TrimSpace(s.Lang); v != "" {
		return v
	}
	return strings.TrimSpace(s.Language)
}

// organization returns the organization name, accepting the legacy center_name
func (s *Submission) organization() string {
	if v := strings.TrimSpace(s.OrganizationName); v != "" {
		return v
	}
	return strings.TrimSpace(s.CenterName)
}

func normalizeSource(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case SourceQuiz:
		return SourceQuiz
	default:
		return SourceLandingForm
	}
}

// parseQuizAnswers returns the answers to store and, when they form a JSON
// object, the decoded map used to pick email segments. A JSON string holding
// serialized JSON is unwrapped. Text that is not JSON is stored as a JSON
// string so the column always holds valid JSON.
func parseQuizAnswers(raw json.RawMessage, text string) (json.RawMessage, map[string]interface{}, string) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		if raw[0] != '"' {
			var m map[string]interface{}
			if err := json.Unmarshal(raw, &m); err == nil {
				return raw, m, ""
			}
			return raw, nil, ""
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, nil, ""
		}
		text = s
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil, ""
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(text), &m); err == nil && m != nil {
		return json.RawMessage(text), m, ""
	}
	if json.Valid([]byte(text)) {
		return json.RawMessage(text), nil, ""
	}
	quoted, _ := json.Marshal(text)
	return quoted, nil, text
}
