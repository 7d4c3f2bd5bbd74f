package ljson

// MaxEncodeDepth is the deepest table nesting Encode accepts.
const MaxEncodeDepth = 16

// checkDepth fails once depth exceeds limit. Callers increment depth when
// they enter a table; scalars never count.
func checkDepth(depth, limit int) error {
	if depth > limit {
		return ErrDepthExceeded
	}
	return nil
}
