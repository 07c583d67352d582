package shader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// structBlockRegex matches struct declarations and captures the name and body
	structBlockRegex = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)

	// locationRegex matches @location(N) attributes
	locationRegex = regexp.MustCompile(`@location\((\d+)\)`)

	// builtinRegex matches @builtin(...) attributes
	builtinRegex = regexp.MustCompile(`@builtin\(\w+\)`)

	// fieldRegex matches a struct field line: optional attributes, name, colon, type.
	fieldRegex = regexp.MustCompile(`(?:(?:@\w+\([^)]*\)\s*)*)*\s*(\w+)\s*:\s*(.+)`)

	// vertexEntryRegex matches @vertex functions and captures the entry point name
	vertexEntryRegex = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)

	// fragmentEntryRegex matches @fragment functions and captures the entry point name
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)

	// fnHeaderRegex matches a function header up to its opening parenthesis and captures the name
	fnHeaderRegex = regexp.MustCompile(`\bfn\s+(\w+)\s*\(`)

	// computeEntryRegex matches @compute functions and captures the entry point name
	computeEntryRegex = regexp.MustCompile(`(?s)@compute\b.*?\bfn\s+(\w+)`)
)

// stageRegexes lists the entry point regex for every stage, in Stage order.
var stageRegexes = []struct {
	stage Stage
	re    *regexp.Regexp
}{
	{StageVertex, vertexEntryRegex},
	{StageFragment, fragmentEntryRegex},
	{StageCompute, computeEntryRegex},
}

// parseEntryPoints finds every @vertex, @fragment and @compute function in WGSL source.
// Line numbers refer to the source as passed in.
//
// Parameters:
//   - source: the WGSL source code string
//
// Returns:
//   - []entryPoint: all entry points, grouped by stage and in source order within a stage
func parseEntryPoints(source string) []entryPoint {
	cleaned := stripComments(source)

	var result []entryPoint
	for _, sr := range stageRegexes {
		for _, m := range sr.re.FindAllStringSubmatchIndex(cleaned, -1) {
			result = append(result, entryPoint{
				stage: sr.stage,
				name:  cleaned[m[2]:m[3]],
				line:  lineAt(cleaned, m[0]),
			})
		}
	}
	return result
}

// parseVertexInputs collects the @location inputs of the named vertex function, whether declared
// inline as parameters or as fields of a parameter's struct type. Builtins are skipped.
// Locations are returned in ascending order.
//
// Parameters:
//   - source: the WGSL source code string
//   - entry: the vertex entry point name
//
// Returns:
//   - []VertexInput: the inputs, empty if the function takes no vertex buffer input
func parseVertexInputs(source, entry string) []VertexInput {
	cleaned := stripComments(source)
	params, ok := functionParams(cleaned, entry)
	if !ok {
		return nil
	}

	structs := make(map[string]parsedStruct)
	for _, ps := range parseStructBlocks(cleaned) {
		structs[ps.name] = ps
	}

	var inputs []VertexInput
	for _, param := range parseStructFields(params) {
		switch {
		case param.isBuiltin:
		case param.location >= 0:
			inputs = append(inputs, newVertexInput(param))
		default:
			for _, f := range structs[param.typeName].fields {
				if !f.isBuiltin && f.location >= 0 {
					inputs = append(inputs, newVertexInput(f))
				}
			}
		}
	}

	sort.Slice(inputs, func(i, j int) bool {
		return inputs[i].Location < inputs[j].Location
	})
	return inputs
}

// functionParams returns the text between the parentheses of fn name's parameter list.
func functionParams(source, name string) (string, bool) {
	for _, m := range fnHeaderRegex.FindAllStringSubmatchIndex(source, -1) {
		if source[m[2]:m[3]] != name {
			continue
		}
		open := m[1] - 1
		depth := 0
		for i := open; i < len(source); i++ {
			switch source[i] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					return source[open+1 : i], true
				}
			}
		}
		return "", false
	}
	return "", false
}

// parseStructBlocks finds all struct { ... } blocks in the cleaned WGSL source
// and parses their fields including @location and @builtin attributes
//
// Parameters:
//   - source: WGSL source with comments already stripped
//
// Returns:
//   - []parsedStruct: all struct blocks found in the source
func parseStructBlocks(source string) []parsedStruct {
	matches := structBlockRegex.FindAllStringSubmatch(source, -1)
	structs := make([]parsedStruct, 0, len(matches))

	for _, match := range matches {
		structs = append(structs, parsedStruct{
			name:   match[1],
			fields: parseStructFields(match[2]),
		})
	}

	return structs
}

// parseStructFields parses the body of a struct block into individual fields,
// extracting @location and @builtin attributes along with the field name and type
//
// Parameters:
//   - body: the content between { and } of a struct declaration
//
// Returns:
//   - []parsedField: all fields found in the struct body
func parseStructFields(body string) []parsedField {
	lines := splitAtTopLevelCommas(body)
	fields := make([]parsedField, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var field parsedField

		if builtinRegex.MatchString(line) {
			field.isBuiltin = true
		}

		field.location = -1
		if locMatch := locationRegex.FindStringSubmatch(line); locMatch != nil {
			if loc, err := strconv.Atoi(locMatch[1]); err == nil {
				field.location = loc
			}
		}

		fm := fieldRegex.FindStringSubmatch(line)
		if fm == nil {
			continue
		}
		field.name = fm[1]
		field.typeName = strings.TrimSpace(fm[2])

		fields = append(fields, field)
	}

	return fields
}
