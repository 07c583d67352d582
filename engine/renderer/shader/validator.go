package shader

import "github.com/gogpu/naga"

// Validator checks processed WGSL source before it is handed to a GPU device.
type Validator interface {
	// Validate reports whether source is a well formed WGSL module.
	//
	// Parameters:
	//   - source: the processed WGSL source
	//
	// Returns:
	//   - error: nil if the module is valid, otherwise a diagnostic that may carry a "line N, column M" or "N:M" position
	Validate(source string) error
}

// NagaValidator validates WGSL by running it through the pure-Go naga front end and SPIR-V back end.
// No GPU is required, so it also runs in tests.
type NagaValidator struct{}

var _ Validator = NagaValidator{}

func (NagaValidator) Validate(source string) error {
	_, err := naga.Compile(source)
	return err
}

// noopValidator accepts every source.
type noopValidator struct{}

func (noopValidator) Validate(string) error { return nil }
