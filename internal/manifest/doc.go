// Package manifest loads the workspace sync manifest and materializes the
// workspace template from repository-root sources.
//
// A manifest is a YAML document with an ordered "entries" list. Each entry
// copies src (relative to the project root) to dest (relative to the
// destination directory, defaulting to src) and then runs its transform
// chain on the copy. Missing sources are collected and reported after every
// entry has been processed; any other failure stops the sync.
package manifest
