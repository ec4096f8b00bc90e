// Package server exposes scan results and plots over HTTP.
//
// The server wraps a pipeline.Runner and serves one project root. Scan
// results and rendered artifacts are memoized in an in-process LRU so
// repeated requests for the same plot do not re-walk the tree. With
// watching enabled, filesystem changes to Python sources invalidate the
// memo and the next request re-scans.
package server
