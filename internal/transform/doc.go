// Package transform provides the text rewrites applied to files after they
// are synced from the repository root into the workspace template.
//
// Six kinds are supported: sed, remove_lines, strip_trailing_blank_lines,
// remove_block, replace_block and remove_precommit_hooks. Each one is a
// concrete type implementing Transform; Spec decodes a manifest entry into
// the right type based on its "type" field.
//
// Every transform resolves its file as base/target (or base when target is
// empty). A resolved path that does not exist is skipped without error, so
// a transform can name a file that only some copies of a directory contain.
package transform
