package grammar

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	semErrNoRule              = newSemanticError("a grammar needs at least one rule")
	semErrEmptyAlternative    = newSemanticError("an alternative must contain at least one symbol")
	semErrDuplicateRule       = newSemanticError("duplicate rule")
	semErrAxiomNotNonTerminal = newSemanticError("the axiom must be the LHS of some rule")
	semErrDuplicateDir        = newSemanticError("a directive can appear only once")
	semErrDirInvalidName      = newSemanticError("invalid directive name")
	semErrDirInvalidParam     = newSemanticError("invalid parameter")
)
