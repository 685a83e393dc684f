package macro

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/specialistvlad/netmacro/internal/expansion"
)

// indirectionPattern splits the text of an indirection into either a
// positional field number (groups 1, 2) or a define name (groups 3, 4),
// each followed by an optional flag.
var indirectionPattern = regexp.MustCompile(`(?s)^([0-9]+)([?!~])?|(.*?)([?!~,]|[+]+|[-]+)?$`)

// resolveIndirection evaluates the text of an indirection node.
//
//	@3     field 3 of the expansion at depth
//	@name  field 0 of the define
//	x?     "1" if the field is not empty, "0" otherwise
//	x!     the stored index of the field
//	x~     the number of fields (minus the value field for defines)
//	name+  increment the define, returning its previous value
//	name-  decrement the define, returning its previous value
//	name,  fields 1.. of the define, escaped and joined by commas
//
// An empty name refers to the expansion at depth, like @0.
func (s *EmbeddedString) resolveIndirection(ctx *expansion.Context, depth int, text string) (string, error) {
	m := indirectionPattern.FindStringSubmatch(text)

	var (
		ex    *expansion.Expansion
		found bool
		index int
		named bool
		name  string
		flag  string
	)

	switch {
	case m != nil && m[1] != "":
		n, err := strconv.Atoi(m[1])
		if err != nil {
			n = -1
		}
		index, flag = n, m[2]
		ex, found = ctx.Expansion(depth)
	case m != nil && m[3] == "" && (m[4] == "" || strings.ContainsAny(m[4], "?!~")):
		flag = m[4]
		ex, found = ctx.Expansion(depth)
	default:
		if m != nil {
			name, flag = m[3], m[4]
		} else {
			name = text
		}
		named = true
		ex, found = ctx.Define(name)
	}

	switch {
	case flag == "?":
		v, ok := ex.Get(index)
		if found && ok && v != "" {
			return "1", nil
		}
		return "0", nil
	case flag == "!":
		if !found {
			return "0", nil
		}
		return strconv.Itoa(ex.Index(index)), nil
	case flag == "~":
		n := ex.Num()
		if named && n > 0 {
			n--
		}
		return strconv.Itoa(n), nil
	case flag == ",":
		if !found {
			return "", nil
		}
		fields := make([]string, 0, ex.Num())
		for i := 1; i < ex.Num(); i++ {
			fields = append(fields, Escape(ex.Value(i)))
		}
		return strings.Join(fields, ","), nil
	case strings.HasPrefix(flag, "+"):
		return strconv.Itoa(ctx.IncrementDefine(name, 0, len(flag))), nil
	case strings.HasPrefix(flag, "-"):
		return strconv.Itoa(ctx.IncrementDefine(name, 0, -len(flag))), nil
	}

	v, ok := ex.Get(index)
	if !found || !ok {
		return "", &InvalidExpansionError{
			Location: strings.Repeat("@", depth+1) + "[" + text + "]",
		}
	}
	return v, nil
}
