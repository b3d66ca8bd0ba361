/*
Package config defines the per-project Configuration record and the pure
derivations used to compute its defaults from the package name.
*/
package config

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
)

// Package holds the facts read from the host project's manifest.
type Package struct {
	Name             string
	Version          string
	Description      string
	Author           string
	Repository       string
	Keywords         []string
	Main             string
	Module           string
	Dependencies     []string
	PeerDependencies []string
	HasESLintConfig  bool
}

/*
Configuration is the merged record of build, lint, docs and deploy options.
It is resolved once per process and must be treated as read-only afterwards.
The json tags are the keys accepted under "extensionConfig" in package.json.
*/
type Configuration struct {
	Clean               []string          `json:"clean"`
	Lint                []string          `json:"lint"`
	Globals             map[string]string `json:"globals"`
	Silent              bool              `json:"silent"`
	Bundle              string            `json:"bundle"`
	BundleModule        string            `json:"bundleModule"`
	BundleSource        string            `json:"bundleSource"`
	BundleModuleSource  string            `json:"bundleModuleSource"`
	ModuleSource        string            `json:"moduleSource"`
	BundleExports       string            `json:"bundleExports"`
	BundleModuleExports string            `json:"bundleModuleExports"`
	Environments        []string          `json:"environments"`
	Namespace           string            `json:"namespace"`
	Source              string            `json:"source"`
	Deploy              string            `json:"deploy"`
	DeployBranch        string            `json:"deployBranch"`
	DeployFiles         string            `json:"deployFiles"`
	Serve               string            `json:"serve"`
	TSConfig            string            `json:"tsconfig"`
	JestConfig          string            `json:"jestConfig"`
	DocsDestination     string            `json:"docsDestination"`
	DocsRepository      string            `json:"docsRepository"`
	DocsName            string            `json:"docsName"`
	DocsCopyright       string            `json:"docsCopyright"`
	DocsTitle           string            `json:"docsTitle"`
	DocsDescription     string            `json:"docsDescription"`
	DocsKeywords        string            `json:"docsKeywords"`
	DocsIndex           string            `json:"docsIndex"`
	Aliases             map[string]string `json:"aliases"`

	// ProjectDir is the absolute root of the host project.
	ProjectDir string `json:"-"`
	// Package is the manifest the defaults were derived from.
	Package Package `json:"-"`
}

// Defaults builds the default record for pkg. year feeds the copyright line.
func Defaults(projectDir string, pkg Package, year int) Configuration {
	copyright := fmt.Sprintf("&copy; Copyright %d %s", year, pkg.Author)
	return Configuration{
		Clean:           []string{},
		Lint:            []string{"src"},
		Globals:         map[string]string{},
		Bundle:          DefaultBundle(pkg.Name),
		BundleModule:    DefaultBundleModule(pkg.Name),
		Environments:    []string{"browser", "node"},
		Namespace:       DefaultNamespace(pkg.Name),
		Source:          "src/index.ts",
		Deploy:          "{dist,examples,docs}/**",
		DeployBranch:    "gh-pages",
		Serve:           "examples",
		TSConfig:        "tsconfig.json",
		DocsDestination: "docs",
		DocsRepository:  pkg.Repository,
		DocsName:        pkg.Name,
		DocsCopyright:   strings.TrimSpace(copyright),
		DocsTitle:       pkg.Name,
		DocsDescription: pkg.Description,
		DocsKeywords:    strings.Join(pkg.Keywords, ", "),
		DocsIndex:       "README.md",
		Aliases:         map[string]string{},
		ProjectDir:      projectDir,
		Package:         pkg,
	}
}

// Finalize fills fields whose defaults depend on other, possibly overridden, fields.
func (c Configuration) Finalize() Configuration {
	if c.DeployFiles == "" {
		c.DeployFiles = c.Deploy
	}
	if c.Globals == nil {
		c.Globals = map[string]string{}
	}
	if c.Aliases == nil {
		c.Aliases = map[string]string{}
	}
	return c
}

// HasEnvironment reports whether env ("browser" or "node") is a build target.
func (c Configuration) HasEnvironment(env string) bool {
	for _, e := range c.Environments {
		if e == env {
			return true
		}
	}
	return false
}

// TemplateValues exposes the scalar fields by their manifest key for ${key} templates.
func (c Configuration) TemplateValues() map[string]string {
	return map[string]string{
		"bundle":              c.Bundle,
		"bundleModule":        c.BundleModule,
		"bundleSource":        c.BundleSource,
		"bundleModuleSource":  c.BundleModuleSource,
		"moduleSource":        c.ModuleSource,
		"bundleExports":       c.BundleExports,
		"bundleModuleExports": c.BundleModuleExports,
		"namespace":           c.Namespace,
		"source":              c.Source,
		"deploy":              c.Deploy,
		"deployBranch":        c.DeployBranch,
		"deployFiles":         c.DeployFiles,
		"serve":               c.Serve,
		"tsconfig":            c.TSConfig,
		"jestConfig":          c.JestConfig,
		"silent":              strconv.FormatBool(c.Silent),
		"docsDestination":     c.DocsDestination,
		"docsRepository":      c.DocsRepository,
		"docsName":            c.DocsName,
		"docsCopyright":       c.DocsCopyright,
		"docsTitle":           c.DocsTitle,
		"docsDescription":     c.DocsDescription,
		"docsKeywords":        c.DocsKeywords,
		"docsIndex":           c.DocsIndex,
	}
}

var (
	nonBundleChars    = regexp.MustCompile(`[^\w-]`)
	nonNamespaceChars = regexp.MustCompile(`[^a-zA-Z0-9]`)
	nonGlobalChars    = regexp.MustCompile(`[^a-zA-Z-]`)
)

func bundleStem(name string) string {
	return nonBundleChars.ReplaceAllString(strings.ReplaceAll(name, "/", "-"), "")
}

// DefaultBundle converts a package name into a browser bundle path,
// e.g. "@scope/my-plugin" -> "dist/scope-my-plugin.js".
func DefaultBundle(name string) string {
	return "dist/" + bundleStem(name) + ".js"
}

// DefaultBundleModule is the ESM sibling of DefaultBundle.
func DefaultBundleModule(name string) string {
	return "dist/" + bundleStem(name) + ".mjs"
}

// DefaultNamespace converts a package name into a JS namespace under PIXI,
// e.g. "@pixi/plugin-special" -> "PIXI.pluginSpecial".
func DefaultNamespace(name string) string {
	words := strings.Split(nonNamespaceChars.ReplaceAllString(path.Base(name), "_"), "_")
	var b strings.Builder
	for i, w := range words {
		if i == 0 || w == "" {
			b.WriteString(w)
			continue
		}
		b.WriteString(strings.ToUpper(w[:1]) + w[1:])
	}
	return "PIXI." + b.String()
}

// BrowserGlobal returns the IIFE global name and footer for namespace.
// Extensions that target the bare PIXI namespace are built under a private
// global and then merged into PIXI so the existing global is not replaced.
func BrowserGlobal(pkgName, namespace string) (global, footer string) {
	if namespace != "PIXI" {
		return namespace, ""
	}
	global = strings.ReplaceAll(nonGlobalChars.ReplaceAllString(pkgName, "_"), "-", "")
	return global, fmt.Sprintf("Object.assign(PIXI, %s);", global)
}
