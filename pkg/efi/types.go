package efi

// CheckConfig contains all settings for checking one batch file.
type CheckConfig struct {
	// BatchPath is the JSON file holding the batch.
	BatchPath string

	// Repair removes invalid records and rewrites BatchPath.
	Repair bool

	// Dangling enables detection of Works and Manifestations without items.
	Dangling bool

	// LineLimit bounds title length in characters. Zero means DefaultLineLimit.
	LineLimit int

	// TextLimit bounds note length in characters. Zero means DefaultTextLimit.
	TextLimit int

	// Verbose enables detailed logging
	Verbose bool
}
