// Package env reads vitrine's environment switches.
package env

import (
	"os"
	"strings"

	"github.com/3-lines-studio/vitrine/internal/core"
)

const (
	DevVar    = "VITRINE_DEV"
	ConfigVar = "VITRINE_CONFIG"
)

func DetectMode() core.Mode {
	if IsTruthy(os.Getenv(DevVar)) {
		return core.ModeDev
	}
	return core.ModeProd
}

func IsTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
