/*
Package semverbump computes the next package version the way `npm version`
does for its release keywords.
*/
package semverbump

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pixijs/extension-scripts/internal/core/ports"
)

// Release keywords accepted by Next.
const (
	Major      = "major"
	Minor      = "minor"
	Patch      = "patch"
	Premajor   = "premajor"
	Preminor   = "preminor"
	Prepatch   = "prepatch"
	Prerelease = "prerelease"
)

// ReleaseTypes lists the keywords in the order the picker shows them.
var ReleaseTypes = []string{Patch, Minor, Major, Prerelease, Prepatch, Preminor, Premajor}

// IsReleaseType reports whether s is a release keyword.
func IsReleaseType(s string) bool {
	for _, r := range ReleaseTypes {
		if r == s {
			return true
		}
	}
	return false
}

// Next returns the version after current for a release keyword, or the
// normalized form of release when it is itself a valid version.
func Next(current, release string) (string, error) {
	if !IsReleaseType(release) {
		explicit, err := semver.StrictNewVersion(strings.TrimPrefix(release, "v"))
		if err != nil {
			return "", fmt.Errorf("%q is neither a release type (%s) nor a valid version", release, strings.Join(ReleaseTypes, ", "))
		}
		return explicit.String(), nil
	}

	v, err := semver.StrictNewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return "", fmt.Errorf("current version %q is not valid semver: %w", current, err)
	}

	major, minor, patch, pre := v.Major(), v.Minor(), v.Patch(), v.Prerelease()
	var next *semver.Version
	switch release {
	case Major:
		if pre == "" || minor != 0 || patch != 0 {
			major++
		}
		next = semver.New(major, 0, 0, "", "")
	case Minor:
		if pre == "" || patch != 0 {
			minor++
		}
		next = semver.New(major, minor, 0, "", "")
	case Patch:
		if pre == "" {
			patch++
		}
		next = semver.New(major, minor, patch, "", "")
	case Premajor:
		next = semver.New(major+1, 0, 0, "0", "")
	case Preminor:
		next = semver.New(major, minor+1, 0, "0", "")
	case Prepatch:
		next = semver.New(major, minor, patch+1, "0", "")
	case Prerelease:
		if pre == "" {
			next = semver.New(major, minor, patch+1, "0", "")
		} else {
			next = semver.New(major, minor, patch, bumpPrerelease(pre), "")
		}
	}
	return next.String(), nil
}

// bumpPrerelease increments the last numeric identifier, or appends ".0".
func bumpPrerelease(pre string) string {
	ids := strings.Split(pre, ".")
	for i := len(ids) - 1; i >= 0; i-- {
		if n, err := strconv.ParseUint(ids[i], 10, 64); err == nil {
			ids[i] = strconv.FormatUint(n+1, 10)
			return strings.Join(ids, ".")
		}
	}
	return pre + ".0"
}

// Choices lists every release keyword with the version it would produce.
func Choices(current string) ([]ports.VersionChoice, error) {
	choices := make([]ports.VersionChoice, 0, len(ReleaseTypes))
	for _, r := range ReleaseTypes {
		next, err := Next(current, r)
		if err != nil {
			return nil, err
		}
		choices = append(choices, ports.VersionChoice{Label: r, Version: next})
	}
	return choices, nil
}

// Calculator implements the ports.VersionCalculator interface.
type Calculator struct{}

// NewCalculator creates a new Calculator.
func NewCalculator() ports.VersionCalculator {
	return &Calculator{}
}

// Next implements the ports.VersionCalculator interface.
func (Calculator) Next(current, release string) (string, error) { return Next(current, release) }

// Choices implements the ports.VersionCalculator interface.
func (Calculator) Choices(current string) ([]ports.VersionChoice, error) { return Choices(current) }
