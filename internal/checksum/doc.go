// Package checksum hashes batch files.
//
// Two checksums are offered:
//
//   - Raw checksum: hash of the exact file content (detects all changes)
//   - Normalized checksum: hash of the JSON content with insignificant
//     whitespace removed (equal for the same records in any indentation)
//
// The raw checksum guards a batch file against concurrent modification
// between loading and writing back. The normalized checksum tells whether
// a rewrite would change any record.
//
// # Example Usage
//
//	calculator := checksum.New()
//	rawChecksum := calculator.CalculateRaw(fileContent)
//	normalizedChecksum := calculator.CalculateNormalized(fileContent)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
