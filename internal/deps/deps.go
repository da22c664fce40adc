// Package deps resolves the external binaries the demo pipeline shells out
// to. Resolution prefers a configured path, then a copy bundled next to the
// running executable, then PATH.
package deps

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}
