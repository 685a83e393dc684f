package expansion

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// defineTable is the define mapping of a context. A nil value is a
// placeholder recording that the name is known to be absent. The table is
// held by pointer so that contexts can share it.
type defineTable struct {
	entries map[string]*Expansion
	version uint64
}

// Context is a scope of defines and expansions linked to its parent.
//
// A Context is not safe for concurrent mutation.
type Context struct {
	parent     *Context
	defines    *defineTable
	expansions []*Expansion
	marker     uint64
}

// NewContext creates a child of parent. Parents that have never held a
// define or an expansion are skipped so that chains carry no empty links.
func NewContext(parent *Context) *Context {
	for parent != nil && parent.isEmpty() {
		parent = parent.parent
	}
	return &Context{parent: parent}
}

func (c *Context) isEmpty() bool {
	return c.defines == nil && c.expansions == nil
}

func (c *Context) ensureDefines() *defineTable {
	if c.defines == nil {
		c.defines = &defineTable{entries: make(map[string]*Expansion)}
	}
	return c.defines
}

// Parent returns the parent context, or nil for a root.
func (c *Context) Parent() *Context {
	return c.parent
}

// Marker returns the change marker. It grows on every mutation of the
// context's expansions or of its (possibly shared) defines.
func (c *Context) Marker() uint64 {
	m := c.marker
	if c.defines != nil {
		m += c.defines.version
	}
	return m
}

// Define looks name up in this context and then in its ancestors. When the
// name is found nowhere a placeholder is stored in this context, so the next
// lookup of the same name stops here.
func (c *Context) Define(name string) (*Expansion, bool) {
	e, _, ok := c.lookupDefine(name)
	return e, ok
}

func (c *Context) lookupDefine(name string) (*Expansion, *Context, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if cur.defines == nil {
			continue
		}
		e, present := cur.defines.entries[name]
		if !present {
			continue
		}
		if e == nil {
			return nil, nil, false
		}
		return e, cur, true
	}
	c.ensureDefines().entries[name] = nil
	return nil, nil, false
}

// AddDefine stores a copy of value under name, replacing any placeholder.
func (c *Context) AddDefine(name string, value *Expansion) {
	if value == nil {
		return
	}
	t := c.ensureDefines()
	t.entries[name] = value.Copy()
	t.version++
}

// AddDefines stores a copy of every non-nil value.
func (c *Context) AddDefines(defines map[string]*Expansion) {
	names := make([]string, 0, len(defines))
	for name := range defines {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c.AddDefine(name, defines[name])
	}
}

// RemoveDefine removes a define held by this context itself.
func (c *Context) RemoveDefine(name string) bool {
	if c.defines == nil {
		return false
	}
	e, ok := c.defines.entries[name]
	if !ok || e == nil {
		return false
	}
	delete(c.defines.entries, name)
	c.defines.version++
	return true
}

// IncrementDefine adds delta to the numeric value of field of the define
// name and returns the value it had before. Missing or non-numeric values
// count as 0. The define is updated in place when this context owns it,
// otherwise a new define shadowing the inherited one is added here.
func (c *Context) IncrementDefine(name string, field, delta int) int {
	e, owner, ok := c.lookupDefine(name)

	old := 0
	if ok {
		old = leadingInt(e.Value(field))
	}
	next := strconv.Itoa(old + delta)

	switch {
	case ok && owner.defines == c.defines:
		e.Set(field, next)
		c.defines.version++
	case ok:
		local := e.Copy()
		local.Set(field, next)
		c.AddDefine(name, local)
	default:
		fresh := New()
		fresh.Set(field, next)
		c.AddDefine(name, fresh)
	}
	c.marker++
	return old
}

var numericPrefix = regexp.MustCompile(`^\s*[-+]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][-+]?[0-9]+)?`)

// leadingInt parses the numeric prefix of s and truncates it to an int.
func leadingInt(s string) int {
	m := numericPrefix.FindString(s)
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
	if err != nil {
		return 0
	}
	return int(f)
}

// AddExpansion pushes e on the expansion stack. It becomes depth 0.
func (c *Context) AddExpansion(e *Expansion) {
	if e == nil {
		return
	}
	c.expansions = append(c.expansions, e)
	c.marker++
}

// AddExpansions pushes every expansion in order.
func (c *Context) AddExpansions(list []*Expansion) {
	for _, e := range list {
		c.AddExpansion(e)
	}
}

// RemoveExpansion removes e from the local stack.
func (c *Context) RemoveExpansion(e *Expansion) bool {
	for i, cur := range c.expansions {
		if cur == e {
			c.expansions = append(c.expansions[:i], c.expansions[i+1:]...)
			c.marker++
			return true
		}
	}
	return false
}

// Expansion returns the expansion at depth, counting from the most recent
// local push outwards through the ancestors.
func (c *Context) Expansion(depth int) (*Expansion, bool) {
	if depth < 0 {
		return nil, false
	}
	for cur := c; cur != nil; cur = cur.parent {
		n := len(cur.expansions)
		if depth < n {
			return cur.expansions[n-1-depth], true
		}
		depth -= n
	}
	return nil, false
}

// Expansions returns every visible expansion ordered by depth.
func (c *Context) Expansions() []*Expansion {
	var out []*Expansion
	for cur := c; cur != nil; cur = cur.parent {
		for i := len(cur.expansions) - 1; i >= 0; i-- {
			out = append(out, cur.expansions[i])
		}
	}
	return out
}

// LocalExpansions returns this context's own expansions in push order.
func (c *Context) LocalExpansions() []*Expansion {
	out := make([]*Expansion, len(c.expansions))
	copy(out, c.expansions)
	return out
}

// LocalDefines returns this context's own defines, without placeholders.
func (c *Context) LocalDefines() map[string]*Expansion {
	out := make(map[string]*Expansion)
	if c.defines == nil {
		return out
	}
	for name, e := range c.defines.entries {
		if e != nil {
			out[name] = e
		}
	}
	return out
}

// EachDefine calls fn for every visible define in name order. Nearer scopes
// shadow farther ones.
func (c *Context) EachDefine(fn func(name string, value *Expansion)) {
	seen := make(map[string]*Expansion)
	var names []string
	for cur := c; cur != nil; cur = cur.parent {
		if cur.defines == nil {
			continue
		}
		for name, e := range cur.defines.entries {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = e
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		if e := seen[name]; e != nil {
			fn(name, e)
		}
	}
}

// Merge copies into c the local expansions and defines of every context on
// other's chain below the lowest ancestor it has in common with c, in
// ancestor to descendant order. Without a common ancestor the whole chain
// of other is copied.
func (c *Context) Merge(other *Context) {
	if other == nil {
		return
	}
	for _, level := range c.divergentChain(other) {
		for _, e := range level.expansions {
			c.expansions = append(c.expansions, e)
		}
		if level.defines != nil && level.defines != c.defines {
			t := c.ensureDefines()
			for name, e := range level.defines.entries {
				if e != nil {
					t.entries[name] = e.Copy()
				}
			}
			t.version++
		}
	}
	c.marker++
}

// divergentChain returns the contexts of other's chain that are not shared
// with c, root first.
func (c *Context) divergentChain(other *Context) []*Context {
	var mine, theirs []*Context
	a, b := c, other
	for a != nil || b != nil {
		if a == b {
			return theirs
		}
		if a != nil {
			mine = append([]*Context{a}, mine...)
			a = a.parent
		}
		if b != nil {
			theirs = append([]*Context{b}, theirs...)
			b = b.parent
		}
	}
	for len(mine) > 0 && len(theirs) > 0 && mine[0] == theirs[0] {
		mine = mine[1:]
		theirs = theirs[1:]
	}
	return theirs
}

// Truncate detaches c's chain at parent: the context whose parent is the
// first non-empty context at or above parent becomes a root. Every context
// kept on the chain gets its marker bumped.
func (c *Context) Truncate(parent *Context) {
	for parent != nil && parent.isEmpty() {
		parent = parent.parent
	}
	for cur := c; cur != nil; cur = cur.parent {
		cur.marker++
		if cur.parent == parent {
			cur.parent = nil
			return
		}
	}
}

// ShareDefines makes c use the define table of from. Later changes made
// through either context are visible through both.
func (c *Context) ShareDefines(from *Context) {
	if from == nil || c == from {
		return
	}
	var before uint64
	if c.defines != nil {
		before = c.defines.version
	}
	c.defines = from.ensureDefines()
	c.marker += before + 1
	from.marker++
}

// Dump writes the defines and expansions of every level of the chain.
func (c *Context) Dump(w io.Writer) error {
	level := 0
	for cur := c; cur != nil; cur = cur.parent {
		if _, err := fmt.Fprintf(w, "level %d (marker %d):\n", level, cur.Marker()); err != nil {
			return err
		}
		defines := cur.LocalDefines()
		names := make([]string, 0, len(defines))
		for name := range defines {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if _, err := fmt.Fprintf(w, "  define %s = %s\n", name, defines[name]); err != nil {
				return err
			}
		}
		for i := len(cur.expansions) - 1; i >= 0; i-- {
			if _, err := fmt.Fprintf(w, "  expansion %s\n", cur.expansions[i]); err != nil {
				return err
			}
		}
		level++
	}
	return nil
}
