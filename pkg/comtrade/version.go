package comtrade

import (
	"github.com/gridtrace/comtrade/pkg/cff"
	"github.com/gridtrace/comtrade/pkg/cfg"
	"github.com/gridtrace/comtrade/pkg/dat"
	"github.com/gridtrace/comtrade/pkg/log"
)

// Version is the current version of the comtrade package.
const Version = "1.0.0"

// MinCompatibleVersion is the minimum version of callers this package
// remains compatible with.
const MinCompatibleVersion = "1.0.0"

// ModuleVersions returns the versions of all sub-modules, keyed by
// module name.
func ModuleVersions() map[string]string {
	return map[string]string{
		"comtrade": Version,
		"cfg":      cfg.Version,
		"dat":      dat.Version,
		"cff":      cff.Version,
		"log":      log.Version,
	}
}
