package driver

// Flags is the immutable option set for one compile. Resolve it once (CLI
// flags over manifest over defaults) before calling Compile; nothing in the
// pipeline mutates it.
type Flags struct {
	// StrictMode promotes advisory parser warnings and macro redefinition
	// to errors.
	StrictMode bool
	// WarningsAsErrors promotes every warning-severity diagnostic to an
	// error when the bag is drained.
	WarningsAsErrors bool
	// MaxIncludeDepth bounds nested #include splicing.
	MaxIncludeDepth uint
	// MaxMacroDepth bounds recursive macro expansion.
	MaxMacroDepth uint
	// MaxDiagnostics caps the diagnostics collected per compile.
	MaxDiagnostics int
}

func DefaultFlags() Flags {
	return Flags{
		StrictMode:       false,
		WarningsAsErrors: false,
		MaxIncludeDepth:  16,
		MaxMacroDepth:    64,
		MaxDiagnostics:   100,
	}
}
