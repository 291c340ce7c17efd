// Copyright © 2025 The Whisker authors

package macro

// Result is a tagged value returned by async macros for host-interpreted
// side effects such as save, load, or audio requests.  The core never
// inspects it; the host matches on Tag and resumes its own control flow
// when the dependent operation resolves.
type Result struct {
	Tag  string
	Data map[string]interface{}
}
