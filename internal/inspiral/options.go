package inspiral

import (
	"fmt"
	"io"
	"strconv"

	"github.com/arvela/binsim/internal/param"
)

// OptionStopRatio is the effect's one parameter-file key.
const OptionStopRatio = "stop_ratio"

// RequiredOptions is how many options must parse before OptionsComplete
// reports true.
const RequiredOptions = 1

// ReadOption implements param.Handler. Names other than stop_ratio answer
// param.ErrNotMatched so the caller can try other handlers. A recognized
// name with an unparsable or out-of-range value returns an error wrapping
// param.ErrBadValue and leaves the stored ratio unchanged.
func (e *Effect) ReadOption(name, value string) error {
	if name != OptionStopRatio {
		return param.ErrNotMatched
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("%w: %s = %q", param.ErrBadValue, name, value)
	}
	if err := e.SetStopRatio(v); err != nil {
		return err
	}

	e.optionsRead++
	return nil
}

// SetStopRatio sets the merger threshold ratio directly. Values outside
// [0, 1] are rejected with param.ErrBadValue and leave the ratio unchanged.
// Call before Init; the threshold is fixed there.
func (e *Effect) SetStopRatio(v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%w: %s = %g, want [0, 1]", param.ErrBadValue, OptionStopRatio, v)
	}
	e.stopRatio = v
	return nil
}

// WriteOptions implements param.Handler.
func (e *Effect) WriteOptions(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s = %g  # fraction of particles across the barycenter that ends the inspiral\n",
		OptionStopRatio, e.stopRatio)
	return err
}

// OptionsComplete reports whether every required option has been read since
// the effect was constructed. Callers check it after reading the whole
// parameter file.
func (e *Effect) OptionsComplete() bool {
	return e.optionsRead >= RequiredOptions
}
