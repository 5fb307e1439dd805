package errs

// Exit codes returned by the command line.
const (
	ExitOK            = 0
	ExitGeneral       = 1
	ExitInvalidInput  = 2
	ExitNotFound      = 3
	ExitStateConflict = 4
	ExitDeclined      = 5
	ExitPersistence   = 6
	ExitConfig        = 7
)

// ExitCode maps err to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch KindOf(err) {
	case KindInvalidInput, KindInvalidDurationLiteral:
		return ExitInvalidInput
	case KindTaskNotFound:
		return ExitNotFound
	case KindAlreadyRunning, KindNotRunning:
		return ExitStateConflict
	case KindConfirmationDeclined:
		return ExitDeclined
	case KindPersistenceFailure:
		return ExitPersistence
	case KindConfig:
		return ExitConfig
	default:
		return ExitGeneral
	}
}
