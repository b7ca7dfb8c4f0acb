package loc

type DiagnosticSeverity int

const (
	ErrorType       DiagnosticSeverity = 1
	WarningType     DiagnosticSeverity = 2
	InformationType DiagnosticSeverity = 3
	HintType        DiagnosticSeverity = 4
)

type DiagnosticCode int

const (
	ERROR                             DiagnosticCode = 1000
	WARNING                           DiagnosticCode = 2000
	WARNING_UNTERMINATED_HTML_COMMENT DiagnosticCode = 2001
	WARNING_UNCLOSED_HTML_TAG         DiagnosticCode = 2002
	WARNING_UNCLOSED_RAW_TEXT_ELEMENT DiagnosticCode = 2003
	INFO                              DiagnosticCode = 3000
	HINT                              DiagnosticCode = 4000
)

type DiagnosticLocation struct {
	File   string `js:"file" json:"file"`
	Line   int    `js:"line" json:"line"`
	Column int    `js:"column" json:"column"`
	Length int    `js:"length" json:"length"`
}

type DiagnosticMessage struct {
	Severity int                 `js:"severity" json:"severity"`
	Code     int                 `js:"code" json:"code"`
	Text     string              `js:"text" json:"text"`
	Location *DiagnosticLocation `js:"location" json:"location,omitempty"`
}

// ErrorWithRange is a diagnostic carrying the source range it refers to.
// It satisfies the error interface so handlers can collect it alongside
// plain errors.
type ErrorWithRange struct {
	Code  DiagnosticCode
	Text  string
	Range Range
}

func (e *ErrorWithRange) Error() string {
	return e.Text
}

func (e *ErrorWithRange) ToMessage(location *DiagnosticLocation) DiagnosticMessage {
	return DiagnosticMessage{
		Code:     int(e.Code),
		Text:     e.Text,
		Location: location,
	}
}
