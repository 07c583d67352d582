package shader

import "strings"

// stripComments removes both block comments and line comments from WGSL source.
// Newlines are kept so byte offsets in the result still fall on the same line numbers.
//
// Parameters:
//   - source: raw WGSL source string
//
// Returns:
//   - string: source with all comments removed
func stripComments(source string) string {
	return stripLineComments(stripBlockComments(source))
}

// stripLineComments removes single-line // comments from WGSL source so they
// do not interfere with struct and entry point parsing
//
// Parameters:
//   - source: raw WGSL source string
//
// Returns:
//   - string: source with line comments removed
func stripLineComments(source string) string {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		if idx := strings.Index(line, "//"); idx >= 0 {
			lines[i] = line[:idx]
		}
	}
	return strings.Join(lines, "\n")
}

// stripBlockComments removes block comments (/* ... */) from WGSL source,
// handling nested block comments as WGSL allows. Newlines inside a comment are kept.
//
// Parameters:
//   - source: raw WGSL source string
//
// Returns:
//   - string: source with block comments removed
func stripBlockComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	i := 0
	for i < len(source) {
		if i+1 < len(source) {
			if source[i] == '/' && source[i+1] == '*' {
				depth++
				i += 2
				continue
			}
			if depth > 0 && source[i] == '*' && source[i+1] == '/' {
				depth--
				i += 2
				continue
			}
		}
		if depth == 0 || source[i] == '\n' {
			sb.WriteByte(source[i])
		}
		i++
	}
	return sb.String()
}

// lineAt returns the 1-based line number of a byte offset in source.
func lineAt(source string, offset int) int {
	return strings.Count(source[:offset], "\n") + 1
}

// newVertexInput converts a parsed @location field or parameter into a VertexInput.
func newVertexInput(f parsedField) VertexInput {
	return VertexInput{
		Location: uint32(f.location),
		Name:     f.name,
		TypeName: f.typeName,
		Format:   wgslVertexFormatMap[f.typeName],
	}
}

// splitAtTopLevelCommas splits a string at commas that are not nested inside angle brackets or parentheses.
// This correctly handles WGSL types like array<f32, 4> and attributes like @interpolate(flat, either)
// where the comma is part of the syntax rather than a field separator.
//
// Parameters:
//   - s: the string to split (typically the body of a WGSL struct)
//
// Returns:
//   - []string: substrings between top-level commas
func splitAtTopLevelCommas(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<', '(':
			depth++
		case '>', ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
