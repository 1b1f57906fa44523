package layer

import "github.com/strataforge/strata/pkg/domain"

// CopySpec duplicates the authored subtree rooted at srcPath in src onto
// dstPath in dst, creating placeholder ancestors for the destination as
// needed. The copy is a full value copy of specifier, type, fields,
// metadata, and children; afterwards the two subtrees share no state.
//
// It reports false without mutating anything when the source authors no
// opinion at srcPath or when either path is unusable. src and dst may be
// the same layer, which is the normal case for a rename.
func CopySpec(src *Layer, srcPath domain.Path, dst *Layer, dstPath domain.Path) bool {
	if src == nil || dst == nil {
		return false
	}
	if srcPath.IsZero() || srcPath.IsRoot() || dstPath.IsZero() || dstPath.IsRoot() {
		return false
	}
	spec := src.SpecAt(srcPath)
	if spec == nil {
		return false
	}
	// Copy before any mutation so an overlapping destination cannot
	// observe a half-written subtree.
	if err := dst.SetSpecAt(dstPath, spec.Copy()); err != nil {
		return false
	}
	return true
}
