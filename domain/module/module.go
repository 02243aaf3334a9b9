// Package module provides the module record value type and pure functions
// over it. Records are immutable once registered; re-registration under an
// existing name is rejected by the store, not here.
package module

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/blackroad/terramod/domain/variable"
)

// Provider identifies the infrastructure provider a module targets.
type Provider string

const (
	ProviderAWS        Provider = "aws"
	ProviderGCP        Provider = "gcp"
	ProviderAzure      Provider = "azure"
	ProviderKubernetes Provider = "kubernetes"
	ProviderHelm       Provider = "helm"
	ProviderNull       Provider = "null"
)

// Providers lists every valid provider.
var Providers = []Provider{
	ProviderAWS, ProviderGCP, ProviderAzure,
	ProviderKubernetes, ProviderHelm, ProviderNull,
}

// ValidProvider reports whether p is a known provider.
// This is a PURE function.
func ValidProvider(p Provider) bool {
	for _, known := range Providers {
		if p == known {
			return true
		}
	}
	return false
}

// Example is a worked usage example attached to a module.
type Example struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Code        string `json:"code"`
}

// Module is a registered template plus its variable model (immutable value
// type). The template text holds ${var.name} placeholders.
type Module struct {
	ID            string
	Name          string
	Provider      Provider
	ResourceType  string
	Version       string
	Description   string
	Template      string
	Variables     []variable.Declaration
	Outputs       []variable.Output
	Examples      []Example
	Tags          []string
	CreatedAt     time.Time
	DownloadCount int64
}

// BumpPart selects which semver component BumpVersion increments.
type BumpPart string

const (
	BumpMajor BumpPart = "major"
	BumpMinor BumpPart = "minor"
	BumpPatch BumpPart = "patch"
)

// BumpVersion increments one component of a MAJOR.MINOR.PATCH version,
// zeroing the components below it.
// This is a PURE function.
func BumpVersion(version string, part BumpPart) (string, error) {
	fields := strings.Split(version, ".")
	if len(fields) != 3 {
		return "", fmt.Errorf("version %q is not MAJOR.MINOR.PATCH", version)
	}
	nums := make([]int, 3)
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return "", fmt.Errorf("version %q is not MAJOR.MINOR.PATCH", version)
		}
		nums[i] = n
	}
	switch part {
	case BumpMajor:
		nums[0]++
		nums[1], nums[2] = 0, 0
	case BumpMinor:
		nums[1]++
		nums[2] = 0
	case BumpPatch:
		nums[2]++
	default:
		return "", fmt.Errorf("unknown version part %q", part)
	}
	return fmt.Sprintf("%d.%d.%d", nums[0], nums[1], nums[2]), nil
}

// Validate checks the record's structural invariants.
// This is a PURE function.
func Validate(m Module) error {
	if m.Name == "" {
		return fmt.Errorf("module name is required")
	}
	if !ValidProvider(m.Provider) {
		return fmt.Errorf("unknown provider %q (valid: %v)", m.Provider, Providers)
	}
	if m.Template == "" {
		return fmt.Errorf("module template is required")
	}
	if err := variable.ValidateDeclarations(m.Variables); err != nil {
		return err
	}
	return variable.ValidateOutputs(m.Outputs)
}
