// Package templates provides the template sets that pgxgen renders into a new
// extension crate. The default set is embedded in the binary; a set exported
// to disk can be edited and loaded back, and is validated against an embedded
// JSON Schema before use.
package templates
