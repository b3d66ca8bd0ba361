package actions

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pixijs/extension-scripts/internal/core/domain/config"
	"github.com/pixijs/extension-scripts/internal/core/ports"
	"go.uber.org/zap"
)

const (
	projectRollupConfig = "rollup.config.mjs"
	scopedRollupConfig  = ".rollup.config.mjs"
	globalTypesFile     = "global.d.ts"
	indexTypesFile      = "lib/index.d.ts"
	typesOutDir         = "lib"
	defaultMain         = "lib/index.js"
	defaultModule       = "lib/index.mjs"

	globalTypesReference = `/// <reference types="global" />`
	globalPathReference  = `/// <reference path="../global.d.ts" />`
)

// builtInGlobals are the PixiJS packages every extension treats as external,
// with the browser global each of them is exposed as.
var builtInGlobals = map[string]string{
	"pixi.js":                         "PIXI",
	"pixijs":                          "PIXI",
	"@pixi/accessibility":             "PIXI",
	"@pixi/app":                       "PIXI",
	"@pixi/assets":                    "PIXI",
	"@pixi/basis":                     "PIXI",
	"@pixi/canvas-display":            "PIXI",
	"@pixi/canvas-extract":            "PIXI",
	"@pixi/canvas-graphics":           "PIXI",
	"@pixi/canvas-mesh":               "PIXI",
	"@pixi/canvas-particle-container": "PIXI",
	"@pixi/canvas-renderer":           "PIXI",
	"@pixi/canvas-prepare":            "PIXI",
	"@pixi/canvas-sprite":             "PIXI",
	"@pixi/canvas-sprite-tiling":      "PIXI",
	"@pixi/canvas-text":               "PIXI",
	"@pixi/compressed-textures":       "PIXI",
	"@pixi/core":                      "PIXI",
	"@pixi/display":                   "PIXI",
	"@pixi/events":                    "PIXI",
	"@pixi/extensions":                "PIXI",
	"@pixi/extract":                   "PIXI",
	"@pixi/filter-alpha":              "PIXI.filters",
	"@pixi/filter-blur":               "PIXI.filters",
	"@pixi/filter-color-matrix":       "PIXI.filters",
	"@pixi/filter-displacement":       "PIXI.filters",
	"@pixi/filter-fxaa":               "PIXI.filters",
	"@pixi/filter-noise":              "PIXI.filters",
	"@pixi/graphics-extras":           "PIXI",
	"@pixi/graphics":                  "PIXI",
	"@pixi/math-extras":               "PIXI",
	"@pixi/math":                      "PIXI",
	"@pixi/mesh-extras":               "PIXI",
	"@pixi/mesh":                      "PIXI",
	"@pixi/mixin-cache-as-bitmap":     "PIXI",
	"@pixi/mixin-get-child-by-name":   "PIXI",
	"@pixi/mixin-get-global-position": "PIXI",
	"@pixi/particle-container":        "PIXI",
	"@pixi/prepare":                   "PIXI",
	"@pixi/runner":                    "PIXI",
	"@pixi/settings":                  "PIXI",
	"@pixi/sprite-animated":           "PIXI",
	"@pixi/sprite-tiling":             "PIXI",
	"@pixi/sprite":                    "PIXI",
	"@pixi/spritesheet":               "PIXI",
	"@pixi/text-bitmap":               "PIXI",
	"@pixi/text":                      "PIXI",
	"@pixi/ticker":                    "PIXI",
	"@pixi/unsafe-eval":               "PIXI",
	"@pixi/utils":                     "PIXI.utils",
}

// Bundle builds the browser and module bundles, then the type declarations.
func (s *Service) Bundle(ctx context.Context, cfg config.Configuration, _ []string) error {
	if err := s.rollup(ctx, cfg); err != nil {
		return err
	}
	if err := s.tsc(ctx, cfg, "--outDir", s.files.Abs(typesOutDir), "--declaration", "--emitDeclarationOnly"); err != nil {
		return err
	}
	return s.fixGlobalTypes()
}

// Watch rebuilds the bundles on every source change.
func (s *Service) Watch(ctx context.Context, cfg config.Configuration, _ []string) error {
	return s.rollup(ctx, cfg, "-w")
}

// Types type-checks the sources without emitting.
func (s *Service) Types(ctx context.Context, cfg config.Configuration, _ []string) error {
	return s.tsc(ctx, cfg, "-noEmit")
}

// rollup runs the bundler with the project's own config, or with the built-in
// one rendered for this project for the duration of the run.
func (s *Service) rollup(ctx context.Context, cfg config.Configuration, extra ...string) error {
	withSilent := func(configPath string) []string {
		args := append([]string{"-c", configPath}, extra...)
		if cfg.Silent {
			args = append(args, "--silent")
		}
		return args
	}

	if s.files.Exists(projectRollupConfig) {
		return s.run(ctx, cfg, "rollup", withSilent(s.files.Abs(projectRollupConfig)))
	}

	contents, err := s.templates.LoadRendered(ports.TemplateRollup, rollupValues(cfg, s.files, s.now()))
	if err != nil {
		return err
	}
	return s.withScopedFile(scopedRollupConfig, contents, func() error {
		return s.run(ctx, cfg, "rollup", withSilent(s.files.Abs(scopedRollupConfig)))
	})
}

// tsc runs the TypeScript compiler with the project tsconfig when there is one.
func (s *Service) tsc(ctx context.Context, cfg config.Configuration, extra ...string) error {
	if s.files.Exists(cfg.TSConfig) {
		return s.run(ctx, cfg, "tsc", []string{"-p", s.files.Abs(cfg.TSConfig)}, extra)
	}
	return s.run(ctx, cfg, "tsc", []string{
		cfg.Source,
		"--target", "ES2020",
		"--module", "ESNext",
		"--sourceMap",
		"--moduleResolution", "node",
		"--esModuleInterop",
		"--noImplicitAny",
		"--strict",
	}, extra)
}

// fixGlobalTypes points the emitted index declaration at the project's
// global.d.ts, since tsc writes it as a types reference.
func (s *Service) fixGlobalTypes() error {
	if !s.files.Exists(globalTypesFile) {
		return nil
	}
	data, err := s.files.ReadFile(indexTypesFile)
	if err != nil {
		return fmt.Errorf("failed to fix global types: %w", err)
	}
	fixed := strings.Replace(string(data), globalTypesReference, globalPathReference, 1)
	if err := s.files.WriteFile(indexTypesFile, []byte(fixed)); err != nil {
		return fmt.Errorf("failed to fix global types: %w", err)
	}
	s.logger.Debug("fixed global types reference", zap.String("file", indexTypesFile))
	return nil
}

// rollupValues computes the JS literals substituted into the rollup template.
func rollupValues(cfg config.Configuration, files ports.ProjectFiles, now time.Time) map[string]string {
	pkg := cfg.Package

	external := make([]string, 0, len(builtInGlobals)+len(pkg.PeerDependencies)+len(pkg.Dependencies))
	for name := range builtInGlobals {
		external = append(external, name)
	}
	sort.Strings(external)
	external = append(external, pkg.PeerDependencies...)
	external = append(external, pkg.Dependencies...)

	globals := make(map[string]string, len(builtInGlobals)+len(cfg.Globals))
	for k, v := range builtInGlobals {
		globals[k] = v
	}
	for k, v := range cfg.Globals {
		globals[k] = v
	}

	globalName, footer := config.BrowserGlobal(pkg.Name, cfg.Namespace)
	main := firstNonEmpty(pkg.Main, defaultMain)
	module := firstNonEmpty(pkg.Module, defaultModule)

	return map[string]string{
		"external":            jsLiteral(external),
		"globals":             jsLiteral(globals),
		"banner":              jsLiteral(banner(pkg, now)),
		"version":             jsLiteral(pkg.Version),
		"bundleModuleInput":   jsLiteral(firstNonEmpty(cfg.BundleModuleSource, cfg.Source)),
		"bundleModule":        jsLiteral(files.Abs(cfg.BundleModule)),
		"bundleModuleExports": optionalLiteral(cfg.BundleModuleExports),
		"node":                strconv.FormatBool(cfg.HasEnvironment("node")),
		"moduleInput":         jsLiteral(firstNonEmpty(cfg.ModuleSource, cfg.Source)),
		"mainDir":             jsLiteral(filepath.Dir(files.Abs(main))),
		"moduleDir":           jsLiteral(filepath.Dir(files.Abs(module))),
		"basePath":            jsLiteral(filepath.Dir(files.Abs(cfg.Source))),
		"browser":             strconv.FormatBool(cfg.HasEnvironment("browser")),
		"bundleInput":         jsLiteral(firstNonEmpty(cfg.BundleSource, cfg.Source)),
		"bundle":              jsLiteral(files.Abs(cfg.Bundle)),
		"globalName":          jsLiteral(globalName),
		"footer":              optionalLiteral(footer),
		"bundleExports":       optionalLiteral(cfg.BundleExports),
	}
}

func banner(pkg config.Package, now time.Time) string {
	compiled := strings.ReplaceAll(now.UTC().Format(time.RFC1123), "GMT", "UTC")
	return strings.Join([]string{
		"/*!",
		fmt.Sprintf(" * %s - v%s", pkg.Name, pkg.Version),
		fmt.Sprintf(" * Compiled %s", compiled),
		" *",
		fmt.Sprintf(" * %s is licensed under the MIT License.", pkg.Name),
		" * http://www.opensource.org/licenses/mit-license",
		" * ",
		fmt.Sprintf(" * Copyright %d, %s, All Rights Reserved", now.Year(), pkg.Author),
		" */",
	}, "\n")
}

// jsLiteral encodes v as JSON, which is also a valid JS expression.
func jsLiteral(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "undefined"
	}
	return string(data)
}

// optionalLiteral renders an empty string as undefined so rollup keeps its default.
func optionalLiteral(s string) string {
	if s == "" {
		return "undefined"
	}
	return jsLiteral(s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
