// Copyright © 2025 The Whisker authors

package macro

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Default configuration bounds.
const (
	DefaultMaxDepth      = 100
	DefaultMaxOutputSize = 1 << 16
)

// Interpreter mode flags set and queried through the flag store.
const (
	FlagRendering     = "rendering"
	FlagExecuting     = "executing"
	FlagEvaluating    = "evaluating"
	FlagTransitioning = "transitioning"
)

// Config tunes a Context.
type Config struct {
	// MaxDepth bounds the macro call stack.  Push fails beyond it.
	MaxDepth int

	// MaxOutputSize bounds an output buffer.  Writes beyond it emit an
	// overflow notification; accumulation itself is best-effort and the
	// host decides whether to truncate.
	MaxOutputSize int

	// StrictMode emits an undefined-variable notification when Get
	// cannot resolve a name.
	StrictMode bool
}

// DefaultConfig returns the default context configuration.
func DefaultConfig() Config {
	return Config{
		MaxDepth:      DefaultMaxDepth,
		MaxOutputSize: DefaultMaxOutputSize,
	}
}

// Frame is one call-stack entry: the active macro's name and arguments,
// its temp variable layer, and its output accumulator.
type Frame struct {
	Name string
	Args []interface{}

	temps      map[string]interface{}
	output     strings.Builder
	overflowed bool
}

// Output returns the content accumulated in the frame's output buffer.
func (f *Frame) Output() string {
	return f.output.String()
}

// TraceEvent is one recorded push or pop.
type TraceEvent struct {
	Op    string // "push" or "pop"
	Macro string
	Depth int
	Time  time.Time
}

// Annotator observes frame pushes and pops, for mirroring macro activity
// into an external tracing system.
type Annotator interface {
	MacroStarted(name string, args []interface{})
	MacroCompleted(name string)
}

// Context is the macro interpreter state: the frame stack, the base
// variable store, hook contents, flags, and configuration.
//
// A Context is mutated in place by sequential calls and is not designed
// for concurrent mutation; concurrent evaluation must use a Child fork
// per goroutine.
type Context struct {
	frames []*Frame
	vars   map[string]interface{}
	hooks  map[string]interface{}
	flags  map[string]bool
	cfg    Config

	registry  *Registry
	events    chan<- Event
	annotator Annotator

	output     strings.Builder
	overflowed bool
	navTarget  string

	tracing bool
	trace   []TraceEvent
}

// Option configures a new Context.
type Option func(*Context)

// WithRegistry attaches the registry consulted by Call.
func WithRegistry(reg *Registry) Option {
	return func(c *Context) { c.registry = reg }
}

// WithEvents attaches a notification channel.  Sends never block; events
// are dropped when the channel is full.
func WithEvents(ch chan<- Event) Option {
	return func(c *Context) { c.events = ch }
}

// WithConfig overrides the default configuration.
func WithConfig(cfg Config) Option {
	return func(c *Context) { c.cfg = cfg }
}

// WithAnnotator attaches an external push/pop observer.
func WithAnnotator(a Annotator) Option {
	return func(c *Context) { c.annotator = a }
}

// NewContext returns an empty Context with the default configuration.
func NewContext(opts ...Option) *Context {
	c := &Context{
		vars:  make(map[string]interface{}),
		hooks: make(map[string]interface{}),
		flags: make(map[string]bool),
		cfg:   DefaultConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configure replaces the context configuration.
func (c *Context) Configure(cfg Config) {
	c.cfg = cfg
}

// Depth returns the current frame stack height.
func (c *Context) Depth() int {
	return len(c.frames)
}

// Push creates a new frame for the named macro and makes it the active
// scope.  It fails without growing the stack when the configured maximum
// depth is reached.
func (c *Context) Push(name string, args []interface{}) error {
	if c.cfg.MaxDepth > 0 && len(c.frames) >= c.cfg.MaxDepth {
		return fmt.Errorf("push %q: %w at depth %d", name, ErrDepthExceeded, len(c.frames))
	}
	c.frames = append(c.frames, &Frame{
		Name:  name,
		Args:  args,
		temps: make(map[string]interface{}),
	})
	if c.tracing {
		c.trace = append(c.trace, TraceEvent{
			Op: "push", Macro: name, Depth: len(c.frames), Time: time.Now(),
		})
	}
	if c.annotator != nil {
		c.annotator.MacroStarted(name, args)
	}
	c.emit(EventMacroStarted, map[string]interface{}{
		"name": name,
		"args": args,
	})
	return nil
}

// Pop removes the top frame and discards its temp variables.  On an empty
// stack it returns (nil, false) rather than an error.
func (c *Context) Pop() (*Frame, bool) {
	if len(c.frames) == 0 {
		return nil, false
	}
	frame := c.frames[len(c.frames)-1]
	c.frames = c.frames[:len(c.frames)-1]
	if c.tracing {
		c.trace = append(c.trace, TraceEvent{
			Op: "pop", Macro: frame.Name, Depth: len(c.frames), Time: time.Now(),
		})
	}
	if c.annotator != nil {
		c.annotator.MacroCompleted(frame.Name)
	}
	c.emit(EventMacroCompleted, map[string]interface{}{
		"name":   frame.Name,
		"output": frame.Output(),
	})
	return frame, true
}

// Set writes a variable.  A temp write goes to the current frame's layer
// and shadows a base variable of the same name for the dynamic extent of
// the frame; a non-temp write (or a temp write with no frame on the
// stack) goes to the base store.
func (c *Context) Set(name string, value interface{}, temp bool) {
	if temp && len(c.frames) > 0 {
		c.frames[len(c.frames)-1].temps[name] = value
	} else {
		c.vars[name] = value
	}
	c.emit(EventVariableChanged, map[string]interface{}{
		"name":  name,
		"value": value,
		"temp":  temp,
	})
}

// Get resolves a variable, searching frame temp layers innermost-out and
// then the base store.  An unresolved name yields (nil, false); in strict
// mode it additionally emits an undefined-variable notification.
func (c *Context) Get(name string) (interface{}, bool) {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if v, ok := c.frames[i].temps[name]; ok {
			return v, true
		}
	}
	if v, ok := c.vars[name]; ok {
		return v, true
	}
	if c.cfg.StrictMode {
		c.emit(EventUndefinedVariable, map[string]interface{}{"name": name})
	}
	return nil, false
}

// Write appends s to the active output buffer, the top frame's when one
// exists and the context's base buffer otherwise.
func (c *Context) Write(s string) {
	buf, overflowed := &c.output, &c.overflowed
	if n := len(c.frames); n > 0 {
		frame := c.frames[n-1]
		buf, overflowed = &frame.output, &frame.overflowed
	}
	buf.WriteString(s)
	if c.cfg.MaxOutputSize > 0 && buf.Len() > c.cfg.MaxOutputSize && !*overflowed {
		*overflowed = true
		c.emit(EventOutputOverflow, map[string]interface{}{
			"size":  buf.Len(),
			"limit": c.cfg.MaxOutputSize,
		})
	}
}

// Writeln appends s and a newline to the active output buffer.
func (c *Context) Writeln(s string) {
	c.Write(s + "\n")
}

// Output returns the content of the active output buffer.
func (c *Context) Output() string {
	if n := len(c.frames); n > 0 {
		return c.frames[n-1].Output()
	}
	return c.output.String()
}

// DefineHook stores content under a hook name.  Content may be a string
// or an ordered list ([]interface{}); the hook store is independent of
// the variable stores.
func (c *Context) DefineHook(name string, content interface{}) {
	c.hooks[name] = content
}

// Hook returns the content stored under a hook name.
func (c *Context) Hook(name string) (interface{}, bool) {
	content, ok := c.hooks[name]
	return content, ok
}

// HasHook reports whether a hook is defined.
func (c *Context) HasHook(name string) bool {
	_, ok := c.hooks[name]
	return ok
}

// ModifyHook applies fn to a hook's content in place.  It reports whether
// the hook existed.
func (c *Context) ModifyHook(name string, fn func(interface{}) interface{}) bool {
	content, ok := c.hooks[name]
	if !ok {
		return false
	}
	c.hooks[name] = fn(content)
	return true
}

// AppendHook adds item to a hook: string content is concatenated, list
// content gets item inserted at the end.  An undefined hook is created
// holding item.
func (c *Context) AppendHook(name string, item interface{}) {
	content, ok := c.hooks[name]
	if !ok {
		c.hooks[name] = item
		return
	}
	switch cur := content.(type) {
	case string:
		c.hooks[name] = cur + fmt.Sprint(item)
	case []interface{}:
		c.hooks[name] = append(cur, item)
	default:
		c.hooks[name] = []interface{}{cur, item}
	}
}

// ReplaceHook overwrites a hook's content, defining it when absent.
func (c *Context) ReplaceHook(name string, content interface{}) {
	c.hooks[name] = content
}

// ClearHook removes a hook.
func (c *Context) ClearHook(name string) {
	delete(c.hooks, name)
}

// HookNames returns all defined hook names in sorted order.
func (c *Context) HookNames() []string {
	names := make([]string, 0, len(c.hooks))
	for name := range c.hooks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetFlag raises a flag.
func (c *Context) SetFlag(name string) {
	c.flags[name] = true
}

// ClearFlag lowers a flag.
func (c *Context) ClearFlag(name string) {
	delete(c.flags, name)
}

// Flag reports whether a flag is raised.
func (c *Context) Flag(name string) bool {
	return c.flags[name]
}

// IsIn reports whether the context is in the named interpreter mode.  It
// reads the same store as Flag; the spelling exists so macro code can ask
// "am I rendering" without coupling to the caller's internals.
func (c *Context) IsIn(mode string) bool {
	return c.flags[mode]
}

// GotoPassage records a navigation target, raises the transitioning flag,
// and emits a navigate notification.  Navigation itself is the host
// engine's responsibility.
func (c *Context) GotoPassage(name string) {
	c.navTarget = name
	c.SetFlag(FlagTransitioning)
	c.emit(EventPassageNavigate, map[string]interface{}{"target": name})
}

// NavigationTarget returns the most recently recorded navigation target,
// or the empty string when none is pending.
func (c *Context) NavigationTarget() string {
	return c.navTarget
}

// Call looks up a macro in the attached registry and invokes its handler
// with the context itself.  Handler errors are returned to the caller as
// recoverable results.
func (c *Context) Call(name string, args []interface{}) (interface{}, error) {
	if c.registry == nil {
		return nil, fmt.Errorf("call %q: %w", name, ErrNoRegistry)
	}
	def, ok := c.registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("call %q: %w", name, ErrUnknownMacro)
	}
	return def.Handler(c, args)
}

// EnableTracing starts recording push and pop events.
func (c *Context) EnableTracing() {
	c.tracing = true
}

// Trace returns a copy of the recorded trace.
func (c *Context) Trace() []TraceEvent {
	out := make([]TraceEvent, len(c.trace))
	copy(out, c.trace)
	return out
}

// Child forks the context: the child inherits variables, flags, and
// configuration by value at fork time, so later mutation of either
// context is invisible to the other.  The child shares the registry but
// starts with an empty stack, output, hook store, and event channel.
func (c *Context) Child() *Context {
	child := NewContext(WithConfig(c.cfg), WithRegistry(c.registry))
	for name, value := range c.vars {
		child.vars[name] = copyValue(value)
	}
	for name, on := range c.flags {
		child.flags[name] = on
	}
	return child
}

// ResetScope selects the state subset cleared by Reset.
type ResetScope int

const (
	ResetAll ResetScope = iota
	ResetVariables
	ResetOutput
	ResetHooks
	ResetFlags
	ResetStack
)

// Reset clears the selected state subset, leaving the rest untouched.
func (c *Context) Reset(scope ResetScope) {
	if scope == ResetAll || scope == ResetVariables {
		c.vars = make(map[string]interface{})
	}
	if scope == ResetAll || scope == ResetOutput {
		c.output.Reset()
		c.overflowed = false
		for _, frame := range c.frames {
			frame.output.Reset()
			frame.overflowed = false
		}
	}
	if scope == ResetAll || scope == ResetHooks {
		c.hooks = make(map[string]interface{})
	}
	if scope == ResetAll || scope == ResetFlags {
		c.flags = make(map[string]bool)
	}
	if scope == ResetAll || scope == ResetStack {
		c.frames = nil
	}
}

// copyValue copies a variable value so forked contexts cannot observe
// each other through shared lists or maps.
func copyValue(v interface{}) interface{} {
	switch val := v.(type) {
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, elem := range val {
			out[i] = copyValue(elem)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, elem := range val {
			out[k] = copyValue(elem)
		}
		return out
	default:
		return v
	}
}
