package ir

// Version constants for conversion identity and tooling.
const (
	// IRVersion is the tree/value schema version. Bumping it invalidates cached
	// conversions because it is part of every ConversionID.
	IRVersion = "1"

	// CompilerVersion is the svgreact compiler version.
	CompilerVersion = "0.1.0"
)
