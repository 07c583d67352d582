package shader

// ShaderBuilderOption is a functional option for configuring a Shader via Compile.
type ShaderBuilderOption func(*shader)

// WithVertexEntryPoint sets the required name of the @vertex function.
//
// Parameters:
//   - name: the vertex entry point name
//
// Returns:
//   - ShaderBuilderOption: a function that applies the entry point option to a shader
func WithVertexEntryPoint(name string) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexEntryPoint = name
	}
}

// WithFragmentEntryPoint sets the required name of the @fragment function.
//
// Parameters:
//   - name: the fragment entry point name
//
// Returns:
//   - ShaderBuilderOption: a function that applies the entry point option to a shader
func WithFragmentEntryPoint(name string) ShaderBuilderOption {
	return func(s *shader) {
		s.fragmentEntryPoint = name
	}
}

// WithValidator replaces the default naga validator. A nil validator disables validation,
// leaving it to the GPU driver at pipeline creation.
//
// Parameters:
//   - v: the validator to run on the processed source
//
// Returns:
//   - ShaderBuilderOption: a function that applies the validator option to a shader
func WithValidator(v Validator) ShaderBuilderOption {
	return func(s *shader) {
		if v == nil {
			v = noopValidator{}
		}
		s.validator = v
	}
}

// WithInclude registers an extra @oxy:include target for this shader.
//
// Parameters:
//   - name: the include argument
//   - typeName: the WGSL type declared by source
//   - source: the WGSL text injected in place of the annotation
//
// Returns:
//   - ShaderBuilderOption: a function that applies the include option to a shader
func WithInclude(name, typeName, source string) ShaderBuilderOption {
	return func(s *shader) {
		s.pp.Register(name, typeName, source)
	}
}
