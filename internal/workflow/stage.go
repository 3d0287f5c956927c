package workflow

// Stage is one step of the linear wizard. Stages advance strictly forward;
// backward transitions happen only on explicit user action or when an
// operation fails and reverts to the last stable stage.
type Stage int

const (
	// StageConfig collects and verifies credentials.
	StageConfig Stage = iota
	// StagePrompt waits for the user's project description.
	StagePrompt
	// StageGenerating is active while the generation call is in flight.
	StageGenerating
	// StageReview shows the generated files and waits for a decision.
	StageReview
	// StageDeploying is active while provisioning is in flight.
	StageDeploying
	// StageSuccess is terminal: the repository URL is set.
	StageSuccess
)

func (s Stage) String() string {
	switch s {
	case StageConfig:
		return "config"
	case StagePrompt:
		return "prompt"
	case StageGenerating:
		return "generating"
	case StageReview:
		return "review"
	case StageDeploying:
		return "deploying"
	case StageSuccess:
		return "success"
	default:
		return "unknown"
	}
}
