// Package scaffold generates a new pgx extension crate from a template set. It
// powers the "pgxgen new" command: the extension name is validated first, then
// the src/, .cargo/ and sql/ directories are created and each file of the
// plan is rendered or copied in a fixed order, stopping at the first failure.
package scaffold
