package parser

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return e.message
}

var (
	// lexical errors
	synErrUnclosedLiteral = newSyntaxError("unclosed quoted literal")
	synErrEmptyLiteral    = newSyntaxError("a quoted literal must include at least one character")

	// syntax errors
	synErrInvalidToken     = newSyntaxError("invalid token")
	synErrNoProduction     = newSyntaxError("a grammar must have at least one production")
	synErrNoProductionName = newSyntaxError("a production name is missing")
	synErrNoColon          = newSyntaxError("the colon must precede alternatives")
	synErrNoSemicolon      = newSyntaxError("the semicolon is missing at the last of an alternative")
	synErrNoDirectiveName  = newSyntaxError("a directive needs a name")
	synErrDirNoSemicolon   = newSyntaxError("a directive must be followed by ;")
)
