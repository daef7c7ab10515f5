package errors

// Exit codes returned by the jungle binary. Scripts may rely on them, so
// existing values must never be renumbered.
const (
	ExitOK                   = 0
	ExitUnknown              = 1
	ExitUsage                = 2
	ExitInvalidVersion       = 3
	ExitAlreadyInitialized   = 4
	ExitNoVersions           = 5
	ExitInsufficientVersions = 6
	ExitNoCurrent            = 7
	ExitVersionNotFound      = 8
	ExitCannotDeleteCurrent  = 9
	ExitPruneFailed          = 10
	ExitInvalidParent        = 11
	ExitConfig               = 12
)

var exitCodes = map[ErrorCode]int{
	ErrInvalidInput:         ExitUsage,
	ErrInvalidVersion:       ExitInvalidVersion,
	ErrAlreadyInitialized:   ExitAlreadyInitialized,
	ErrNoVersions:           ExitNoVersions,
	ErrInsufficientVersions: ExitInsufficientVersions,
	ErrNoCurrent:            ExitNoCurrent,
	ErrVersionNotFound:      ExitVersionNotFound,
	ErrCannotDeleteCurrent:  ExitCannotDeleteCurrent,
	ErrPruneFailed:          ExitPruneFailed,
	ErrInvalidParent:        ExitInvalidParent,
	ErrConfigLoad:           ExitConfig,
	ErrConfigValid:          ExitConfig,
}

// ExitCode maps an error to the process exit code. nil maps to ExitOK and
// errors without a dedicated code map to ExitUnknown.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if code, ok := exitCodes[GetErrorCode(err)]; ok {
		return code
	}
	return ExitUnknown
}
