// SPDX-License-Identifier: Apache-2.0

package str

// Paths accept both '/' and '\\' as separators. Directory paths have no trailing
// separator.
var pathSeparators = Literal(`/\`)

// FileName returns the part of a path after its last separator.
func (s String) FileName() String {
	i := s.FindLastAny(pathSeparators)
	if i == NotFound {
		return s
	}
	return s[i+1:]
}

// FileNameWithoutExtension returns FileName without its last extension. A leading
// dot, as in ".profile", does not start an extension.
func (s String) FileNameWithoutExtension() String {
	name := s.FileName()
	dot := name.FindLast('.')
	if dot == NotFound || dot == 0 {
		return name
	}
	return name[:dot:dot]
}

// ParentDirectory returns the part of a path before its last separator, or an empty
// string when the path has none.
func (s String) ParentDirectory() String {
	i := s.FindLastAny(pathSeparators)
	if i == NotFound {
		return s[:0:0]
	}
	return s[:i:i]
}
