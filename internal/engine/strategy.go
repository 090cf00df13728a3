package engine

import "fmt"

// Method identifies how a result was (or would be) computed.
type Method int

const (
	MethodExact Method = iota + 1
	MethodNormalApproximation
	MethodUnsupported
)

func (m Method) String() string {
	switch m {
	case MethodExact:
		return "exact"
	case MethodNormalApproximation:
		return "normal_approximation"
	case MethodUnsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// SelectMethod picks exact enumeration when both draw counts are within their
// thresholds, the normal approximation when it is available, and Unsupported
// otherwise. The approximation is never chosen below the thresholds.
func SelectMethod(draws1, draws2 int, cfg Config) Method {
	if draws1 <= cfg.ExactThreshold1 && draws2 <= cfg.ExactThreshold2 {
		return MethodExact
	}
	if cfg.ApproximationAvailable {
		return MethodNormalApproximation
	}
	return MethodUnsupported
}
