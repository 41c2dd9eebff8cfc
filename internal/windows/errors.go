package windows

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoPositions is returned when a chromosome carries no variant positions.
var ErrNoPositions = errors.New("no variant positions")

// DensityError reports a window size whose densest window holds more SNPs
// than the network accepts. The chromosome needs re-binning with a smaller
// window before it can be predicted.
type DensityError struct {
	WindowSize int
	MaxSnps    int
}

func (e *DensityError) Error() string {
	return fmt.Sprintf("window size %d yields %d SNPs in a single window, more than the %d the network accepts",
		e.WindowSize, e.MaxSnps, MaxSnpsPerWindow)
}
