// Copyright © 2025 The Whisker authors

package macro

// Transform rewrites content for a changer.
type Transform func(c *Changer, content string) string

// Changer is a named, composable content transformation, the mechanism by
// which stacked text-styling directives compose.
type Changer struct {
	Name string

	transform Transform
}

// NewChanger builds a changer applying fn.
func NewChanger(name string, fn Transform) *Changer {
	return &Changer{Name: name, transform: fn}
}

// Apply runs the changer's transform over content.  The context is made
// available for transforms that close over it; the base transform
// signature does not take it.
func (c *Changer) Apply(content string, _ *Context) string {
	return c.transform(c, content)
}

// Combine composes changers: the returned changer applies other first and
// then c to the result, so nesting runs outer-to-inner in combination
// order.
func (c *Changer) Combine(other *Changer) *Changer {
	return NewChanger(c.Name+"+"+other.Name, func(_ *Changer, content string) string {
		return c.transform(c, other.transform(other, content))
	})
}
