package testutil

import (
	"errors"

	"github.com/pixijs/extension-scripts/internal/core/domain/alias"
	"github.com/pixijs/extension-scripts/internal/core/domain/config"
	"github.com/pixijs/extension-scripts/internal/core/ports"
)

// MockVersionPrompter is a mock implementation of ports.VersionPrompter.
type MockVersionPrompter struct {
	PromptVersionFunc func(current string, choices []ports.VersionChoice) (string, error)
}

// PromptVersion calls the mock PromptVersionFunc.
func (m *MockVersionPrompter) PromptVersion(current string, choices []ports.VersionChoice) (string, error) {
	if m.PromptVersionFunc != nil {
		return m.PromptVersionFunc(current, choices)
	}
	return "", errors.New("MockVersionPrompter: PromptVersionFunc not implemented")
}

// MockConfigResolver is a mock implementation of ports.ConfigResolver.
type MockConfigResolver struct {
	ResolveFunc func(projectDir string) (config.Configuration, error)
}

// Resolve calls the mock ResolveFunc.
func (m *MockConfigResolver) Resolve(projectDir string) (config.Configuration, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(projectDir)
	}
	return config.Configuration{}, errors.New("MockConfigResolver: ResolveFunc not implemented")
}

// MockPredefinedAliasProvider is a mock implementation of ports.PredefinedAliasProvider.
type MockPredefinedAliasProvider struct {
	GetPredefinedAliasesFunc func() ([]alias.Alias, error)
}

// GetPredefinedAliases calls the mock GetPredefinedAliasesFunc.
func (m *MockPredefinedAliasProvider) GetPredefinedAliases() ([]alias.Alias, error) {
	if m.GetPredefinedAliasesFunc != nil {
		return m.GetPredefinedAliasesFunc()
	}
	return nil, errors.New("MockPredefinedAliasProvider: GetPredefinedAliasesFunc not implemented")
}
