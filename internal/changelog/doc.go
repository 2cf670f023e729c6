// Package changelog renders the release changelog from a commit
// classification.
//
// This package implements:
//   - Section rendering in the configured type order, with labels
//   - Optional removal of the "type:" prefix from bullets
//   - Cleanup of the rendered document into the final artifact
//   - Prepending a release entry to a CHANGELOG.md style file
//
// Rendering never looks at the computed version; both are derived from the
// same frozen classification.
package changelog
