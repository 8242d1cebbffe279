// Package manifest loads and validates the package definition that describes
// what the pipeline builds and publishes.
package manifest

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the package definition file expected at the project root.
const FileName = "package.yaml"

// versionRe accepts dotted numeric versions with an optional pre/post suffix,
// e.g. "3.0.20190405035157" or "1.2.0rc1".
var versionRe = regexp.MustCompile(`^[0-9]+(\.[0-9]+)*([a-z]+[0-9]*)?$`)

var nameSeparatorRe = regexp.MustCompile(`[-_.]+`)

// Manifest represents the package.yaml package definition.
type Manifest struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description,omitempty"`
	Author      string `yaml:"author,omitempty"`
	Email       string `yaml:"email,omitempty"`
	License     string `yaml:"license,omitempty"`
	Homepage    string `yaml:"homepage,omitempty"`
	Readme      string `yaml:"readme,omitempty"`
}

// Load reads and parses the package definition at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read package definition: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse package definition: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid package definition: %w", err)
	}

	return &m, nil
}

// Validate checks that the package definition is usable.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("version is required")
	}
	if !versionRe.MatchString(m.Version) {
		return fmt.Errorf("version %q is not a valid version string", m.Version)
	}
	return nil
}

// NormalizedName returns the package name lowercased with runs of dots,
// underscores, and hyphens collapsed to a single hyphen. This is the form
// that appears in source distribution file names.
func (m *Manifest) NormalizedName() string {
	return nameSeparatorRe.ReplaceAllString(strings.ToLower(m.Name), "-")
}

// SdistName returns the canonical source distribution file name.
func (m *Manifest) SdistName() string {
	return fmt.Sprintf("%s-%s.tar.gz", m.NormalizedName(), m.Version)
}

// SdistPattern returns the version-wildcarded glob that matches source
// distributions of this package regardless of version.
func (m *Manifest) SdistPattern() string {
	return fmt.Sprintf("%s-*.tar.gz", m.NormalizedName())
}

// WheelPrefix returns the file name prefix of a binary wheel for this
// package. Wheel names replace hyphens in the package name with underscores.
func (m *Manifest) WheelPrefix() string {
	return fmt.Sprintf("%s-%s", strings.ReplaceAll(m.NormalizedName(), "-", "_"), m.Version)
}

// MatchesArtifact reports whether the given artifact file name embeds this
// package's name and version.
func (m *Manifest) MatchesArtifact(filename string) bool {
	sdist := fmt.Sprintf("%s-%s", m.NormalizedName(), m.Version)
	return strings.HasPrefix(filename, sdist) || strings.HasPrefix(filename, m.WheelPrefix())
}
