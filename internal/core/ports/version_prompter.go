package ports

// VersionPrompter asks the operator which version to release next.
type VersionPrompter interface {
	// PromptVersion returns the chosen version. current is the manifest version.
	PromptVersion(current string, choices []VersionChoice) (string, error)
}

// VersionChoice is one selectable next version, e.g. {"minor", "1.3.0"}.
type VersionChoice struct {
	Label   string
	Version string
}

// VersionCalculator computes next versions from the current one.
type VersionCalculator interface {
	// Next resolves a release keyword ("minor") or an explicit version.
	Next(current, release string) (string, error)
	// Choices lists every release keyword with its resulting version.
	Choices(current string) ([]VersionChoice, error)
}
