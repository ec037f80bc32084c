package slump

import "fmt"

// ExitCode identifies a class of fatal error. Hosts that run the generator as a
// process use it as the exit status.
type ExitCode int

const (
	ExitMissingSection ExitCode = 101 // no [THEMES] section in the content config
	ExitLineTooLong    ExitCode = 102 // content config line longer than maxConfigLine
	ExitUnknownToken   ExitCode = 103 // unknown record or property token
	ExitUnknownTheme   ExitCode = 104 // reference to an undeclared theme
	ExitBadArgument    ExitCode = 105 // property argument missing or not a number
	ExitInternal       ExitCode = 110 // generator invariant violated
)

// FatalError reports a broken content file or a generator bug. It is never
// produced by ordinary placement failures, so callers should not retry.
type FatalError struct {
	Code ExitCode
	Msg  string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("slump: %s (exit %d)", e.Msg, e.Code)
}

func fatalf(code ExitCode, format string, args ...any) *FatalError {
	return &FatalError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// internalf aborts generation. Generate recovers the panic and returns it.
func internalf(format string, args ...any) {
	panic(fatalf(ExitInternal, format, args...))
}
