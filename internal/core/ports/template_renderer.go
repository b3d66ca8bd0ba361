package ports

// Built-in tool configuration templates.
const (
	TemplateESLint       = "eslint.json"
	TemplateWebdoc       = "webdoc.json"
	TemplateCleanPackage = "clean-package.json"
	TemplateJest         = "jest.json"
	TemplateRollup       = "rollup.config.mjs"
)

// TemplateRenderer supplies the built-in tool configuration files.
type TemplateRenderer interface {
	// Load returns a template as written.
	Load(name string) ([]byte, error)
	// LoadRendered returns a template with every ${key} replaced from values.
	LoadRendered(name string, values map[string]string) ([]byte, error)
}
