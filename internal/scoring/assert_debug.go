//go:build scoringdebug

package scoring

import (
	"fmt"
	"math"

	"github.com/jonathan/talent-intel/internal/types"
)

// assertNormalized panics when the weight vector does not sum to 1 within
// tolerance. Normalization is the WeightVector's responsibility; reaching
// the aggregator with a denormalized vector is a programming error. Only
// compiled in with the scoringdebug build tag.
func assertNormalized(w types.WeightVector) {
	if math.Abs(w.Sum()-1) > 1e-6 {
		panic(fmt.Sprintf("scoring: weight vector not normalized (sum=%v)", w.Sum()))
	}
}
