//go:build !scoringdebug

package scoring

import "github.com/jonathan/talent-intel/internal/types"

// assertNormalized is a no-op in release builds; see assert_debug.go.
func assertNormalized(types.WeightVector) {}
