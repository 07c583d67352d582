package shader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-triangle/common"
	"github.com/Carmen-Shannon/oxy-triangle/engine/geometry"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeValidator struct {
	calls  int
	source string
	err    error
}

func (v *fakeValidator) Validate(source string) error {
	v.calls++
	v.source = source
	return v.err
}

const twoStageTemplate = `//@oxy:include vertex

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) color: vec4<f32>,
}

@vertex
fn VERT(input: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.position = input.position;
    out.color = input.color;
    return out;
}

@fragment
fn FRAG(input: VertexOutput) -> @location(0) vec4<f32> {
    return input.color;
}
`

func twoStage(vert, frag string) string {
	return strings.NewReplacer("VERT", vert, "FRAG", frag).Replace(twoStageTemplate)
}

func TestCompileDefaultSource(t *testing.T) {
	v := &fakeValidator{}
	s, err := Compile("triangle", DefaultSource, WithValidator(v))
	require.NoError(t, err)

	assert.Equal(t, "triangle", s.Key())
	assert.Equal(t, "vertex_main", s.EntryPoint(StageVertex))
	assert.Equal(t, "fragment_main", s.EntryPoint(StageFragment))
	assert.True(t, s.HasStage(StageVertex))
	assert.True(t, s.HasStage(StageFragment))
	assert.False(t, s.HasStage(StageCompute))

	assert.Equal(t, 1, v.calls)
	assert.Equal(t, s.Source(), v.source)
	assert.Contains(t, s.Source(), "struct VertexInput")
	assert.NotContains(t, s.Source(), "@oxy:")
	assert.Equal(t, DefaultSource, s.RawSource())
}

func TestDefaultSourceVertexInputs(t *testing.T) {
	s, err := Compile("triangle", DefaultSource, WithValidator(&fakeValidator{}))
	require.NoError(t, err)

	assert.Equal(t, []VertexInput{
		{Location: 0, Name: "position", TypeName: "vec4<f32>", Format: common.VertexFormatFloat32x4},
		{Location: 1, Name: "color", TypeName: "vec4<f32>", Format: common.VertexFormatFloat32x4},
	}, s.VertexInputs())

	// every input is fed by the geometry's buffer
	layout := geometry.DefaultVertexLayout()
	for _, in := range s.VertexInputs() {
		attr, ok := layout.AttributeAt(in.Location)
		require.True(t, ok)
		assert.Equal(t, in.Format, attr.Format)
	}
}

func TestDefaultSourcePassesNaga(t *testing.T) {
	_, err := Compile("triangle", DefaultSource)
	if err != nil && strings.Contains(err.Error(), "not yet implemented") {
		t.Skipf("naga feature not yet implemented: %v", err)
	}
	require.NoError(t, err)
}

func TestNagaRejectsBrokenSource(t *testing.T) {
	src := twoStage("vertex_main", "fragment_main") + "\nfn broken( {\n"
	_, err := Compile("broken", src)
	require.Error(t, err)

	ce, ok := IsCompileError(err)
	require.True(t, ok)
	assert.Equal(t, "broken", ce.Key)
	assert.NotEmpty(t, ce.Message)
}

func TestNagaPositionMapsToRawSource(t *testing.T) {
	// Dropping the semicolon on raw line 14 makes naga stop at the next statement,
	// processed line 18, which is raw line 15 once the include is unwound.
	src := strings.Replace(DefaultSource, "out.color = input.color;", "out.color = input.color", 1)
	require.NotEqual(t, DefaultSource, src)

	_, err := Compile("triangle", src)
	require.Error(t, err)
	if strings.Contains(err.Error(), "not yet implemented") {
		t.Skipf("naga feature not yet implemented: %v", err)
	}

	ce, ok := IsCompileError(err)
	require.True(t, ok)
	assert.Equal(t, 15, ce.Line)
	assert.Equal(t, 5, ce.Column)
	assert.Contains(t, ce.Message, "line 15, column 5")
	assert.NotContains(t, ce.Message, "line 18")
}

func TestValidatorLineColumnFormat(t *testing.T) {
	src := twoStage("vertex_main", "fragment_main")
	boom := errors.New("parse error: line 6, column 3: expected ';'")
	_, err := Compile("pos", src, WithValidator(&fakeValidator{err: boom}))

	ce, ok := IsCompileError(err)
	require.True(t, ok)
	assert.Equal(t, 3, ce.Line)
	assert.Equal(t, 3, ce.Column)
	assert.Equal(t, "parse error: line 3, column 3: expected ';'", ce.Message)
	assert.True(t, errors.Is(err, boom))
}

func TestEntryPointErrors(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		wantLine int
		wantMsg  string
	}{
		{
			name:    "missing fragment_main",
			source:  strings.SplitN(twoStage("vertex_main", "fragment_main"), "@fragment", 2)[0],
			wantMsg: `missing @fragment entry point "fragment_main"`,
		},
		{
			name:     "renamed fragment",
			source:   twoStage("vertex_main", "frag"),
			wantLine: 16,
			wantMsg:  `@fragment entry point is "frag", want "fragment_main"`,
		},
		{
			name:     "renamed vertex",
			source:   twoStage("vs", "fragment_main"),
			wantLine: 8,
			wantMsg:  `@vertex entry point is "vs", want "vertex_main"`,
		},
		{
			name:     "two vertex stages",
			source:   twoStage("vertex_main", "fragment_main") + "\n@vertex\nfn other(input: VertexInput) -> @builtin(position) vec4<f32> {\n    return input.position;\n}\n",
			wantLine: 21,
			wantMsg:  "more than one @vertex entry point",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &fakeValidator{}
			s, err := Compile("tri", tt.source, WithValidator(v))
			require.Error(t, err)
			assert.Nil(t, s)
			assert.Equal(t, 0, v.calls, "validation must not run after an entry point failure")

			ce, ok := IsCompileError(err)
			require.True(t, ok)
			assert.Equal(t, "tri", ce.Key)
			assert.Equal(t, tt.wantLine, ce.Line)
			assert.Contains(t, ce.Message, tt.wantMsg)
		})
	}
}

func TestCustomEntryPoints(t *testing.T) {
	src := twoStage("vs", "fs")
	_, err := Compile("custom", src, WithValidator(&fakeValidator{}))
	require.Error(t, err)

	s, err := Compile("custom", src,
		WithValidator(&fakeValidator{}),
		WithVertexEntryPoint("vs"),
		WithFragmentEntryPoint("fs"),
	)
	require.NoError(t, err)
	assert.Equal(t, "vs", s.EntryPoint(StageVertex))
	assert.Equal(t, "fs", s.EntryPoint(StageFragment))
}

func TestCommentedEntryPointsAreIgnored(t *testing.T) {
	src := "/*\n@fragment\nfn fragment_main() {}\n*/\n// @fragment fn other() {}\n" +
		strings.SplitN(twoStage("vertex_main", "fragment_main"), "@fragment", 2)[0]
	_, err := Compile("commented", src, WithValidator(&fakeValidator{}))
	require.Error(t, err)
	ce, ok := IsCompileError(err)
	require.True(t, ok)
	assert.Contains(t, ce.Message, "missing @fragment")
}

func TestUnknownIncludeReportsLine(t *testing.T) {
	src := "// header\n\n//@oxy:include camera\n" + twoStage("vertex_main", "fragment_main")
	_, err := Compile("inc", src, WithValidator(&fakeValidator{}))
	require.Error(t, err)

	ce, ok := IsCompileError(err)
	require.True(t, ok)
	assert.Equal(t, "inc", ce.Key)
	assert.Equal(t, 3, ce.Line)
	assert.Contains(t, ce.Message, `"camera"`)
}

func TestMalformedAnnotation(t *testing.T) {
	_, err := Compile("bad", "//@oxy:include\n"+twoStage("vertex_main", "fragment_main"), WithValidator(&fakeValidator{}))
	ce, ok := IsCompileError(err)
	require.True(t, ok)
	assert.Equal(t, 1, ce.Line)

	_, err = Compile("bad", "//@oxy:group 0 0\n"+twoStage("vertex_main", "fragment_main"), WithValidator(&fakeValidator{}))
	ce, ok = IsCompileError(err)
	require.True(t, ok)
	assert.Contains(t, ce.Message, "unknown @oxy annotation type")
}

func TestWithInclude(t *testing.T) {
	src := strings.Replace(twoStage("vertex_main", "fragment_main"), "//@oxy:include vertex", "//@oxy:include my_vertex", 1)
	s, err := Compile("inc", src,
		WithValidator(&fakeValidator{}),
		WithInclude("my_vertex", "VertexInput", "struct VertexInput {\n    @location(0) position: vec4<f32>,\n    @location(1) color: vec4<f32>,\n}\n"),
	)
	require.NoError(t, err)
	require.Len(t, s.VertexInputs(), 2)
	assert.Equal(t, "color", s.VertexInputs()[1].Name)
}

func TestValidatorPositionMapsToRawSource(t *testing.T) {
	// The include on line 1 expands to four lines, so processed line 6 is raw line 3.
	src := twoStage("vertex_main", "fragment_main")
	boom := errors.New("error at 6:3: expected ';'")
	_, err := Compile("pos", src, WithValidator(&fakeValidator{err: boom}))
	require.Error(t, err)

	ce, ok := IsCompileError(err)
	require.True(t, ok)
	assert.Equal(t, 3, ce.Line)
	assert.Equal(t, 3, ce.Column)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), `shader "pos": 3:3:`)
}

func TestValidatorErrorWithoutPosition(t *testing.T) {
	boom := errors.New("unsupported feature")
	_, err := Compile("nopos", DefaultSource, WithValidator(&fakeValidator{err: boom}))
	ce, ok := IsCompileError(err)
	require.True(t, ok)
	assert.Zero(t, ce.Line)
	assert.Zero(t, ce.Column)
	assert.Equal(t, `shader "nopos": unsupported feature`, ce.Error())
}

func TestNilValidatorSkipsValidation(t *testing.T) {
	_, err := Compile("novalidate", DefaultSource+"\nnot wgsl at all", WithValidator(nil))
	assert.NoError(t, err)
}

func TestCompileFromPath(t *testing.T) {
	_, err := CompileFromPath("missing", filepath.Join(t.TempDir(), "nope.wgsl"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceNotFound))

	path := filepath.Join(t.TempDir(), "triangle.wgsl")
	require.NoError(t, os.WriteFile(path, []byte(DefaultSource), 0o644))
	s, err := CompileFromPath("file", path, WithValidator(&fakeValidator{}))
	require.NoError(t, err)
	assert.Equal(t, "file", s.Key())
	assert.Equal(t, "fragment_main", s.EntryPoint(StageFragment))
}

func TestStripBlockCommentsKeepsLines(t *testing.T) {
	src := "a\n/* one\n two /* nested */\n*/b\nc"
	out := stripComments(src)
	assert.Equal(t, strings.Count(src, "\n"), strings.Count(out, "\n"))
	assert.Equal(t, 4, lineAt(out, strings.Index(out, "b")))
}

func TestParseVertexInputsFollowsEntryPoint(t *testing.T) {
	src := `
struct Out {
    @builtin(position) p: vec4<f32>,
    @location(0) uv: vec2<f32>,
}
struct Unused {
    @location(0) a: f32,
}
struct In {
    @location(2) id: u32,
    @location(0) pos: vec3<f32>,
}

@vertex
fn main_vs(
    input: In,
    @builtin(instance_index) instance: u32,
    @location(1) @interpolate(flat, either) uv: vec2f,
) -> Out {
    var out: Out;
    return out;
}`
	inputs := parseVertexInputs(src, "main_vs")
	assert.Equal(t, []VertexInput{
		{Location: 0, Name: "pos", TypeName: "vec3<f32>", Format: common.VertexFormatFloat32x3},
		{Location: 1, Name: "uv", TypeName: "vec2f", Format: common.VertexFormatFloat32x2},
		{Location: 2, Name: "id", TypeName: "u32", Format: common.VertexFormatUint32},
	}, inputs)

	assert.Empty(t, parseVertexInputs(src, "missing"))
	assert.Empty(t, parseVertexInputs("@vertex fn vs(@builtin(vertex_index) i: u32) -> @builtin(position) vec4f { return vec4f(); }", "vs"))

	inputs = parseVertexInputs("@vertex fn vs(@location(0) m: vec4<i32>) -> @builtin(position) vec4f { return vec4f(); }", "vs")
	require.Len(t, inputs, 1)
	assert.Equal(t, common.VertexFormatUndefined, inputs[0].Format)
}
