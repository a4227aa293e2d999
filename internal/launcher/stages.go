package launcher

const (
	stageReaper = "__laurn-reaper"
	stageNSRoot = "__laurn-nsroot"
	stageShell  = "__laurn-shell"
)

// MaybeRunStage checks whether args (os.Args[1:]) names one of the
// launcher's hidden re-exec stages. If it does, the stage runs to
// completion and MaybeRunStage returns its exit code with handled=true; the
// caller (cmd/laurn's main) must os.Exit(code) immediately rather than
// falling through to ordinary subcommand dispatch.
//
// Each stage is reached only by the launcher itself, via exec.Command(self,
// stageName, planPath) — never by a user-facing flag.
func MaybeRunStage(args []string) (code int, handled bool) {
	if len(args) < 2 {
		return 0, false
	}

	planPath := args[1]

	switch args[0] {
	case stageReaper:
		return runReaper(planPath), true
	case stageNSRoot:
		return runNSRoot(planPath), true
	case stageShell:
		return runShell(planPath), true
	default:
		return 0, false
	}
}
