package typespec

import "strconv"

// FA identifies a definition by name and arity.
type FA struct {
	Name  string
	Arity int
}

func (fa FA) String() string {
	return fa.Name + "/" + strconv.Itoa(fa.Arity)
}

// builtinTypes is the catalog of built-in type names and arities. A
// user declaration may not shadow any entry, and a bare name in a type
// body resolves against this table before the local registry.
var builtinTypes = map[FA]bool{
	{"any", 0}:                          true,
	{"none", 0}:                         true,
	{"atom", 0}:                         true,
	{"map", 0}:                          true,
	{"pid", 0}:                          true,
	{"port", 0}:                         true,
	{"reference", 0}:                    true,
	{"tuple", 0}:                        true,
	{"float", 0}:                        true,
	{"integer", 0}:                      true,
	{"neg_integer", 0}:                  true,
	{"non_neg_integer", 0}:              true,
	{"pos_integer", 0}:                  true,
	{"list", 0}:                         true,
	{"list", 1}:                         true,
	{"nonempty_list", 0}:                true,
	{"nonempty_list", 1}:                true,
	{"maybe_improper_list", 0}:          true,
	{"maybe_improper_list", 2}:          true,
	{"nonempty_improper_list", 2}:       true,
	{"nonempty_maybe_improper_list", 0}: true,
	{"nonempty_maybe_improper_list", 2}: true,
	{"term", 0}:                         true,
	{"arity", 0}:                        true,
	{"as_boolean", 1}:                   true,
	{"binary", 0}:                       true,
	{"bitstring", 0}:                    true,
	{"boolean", 0}:                      true,
	{"byte", 0}:                         true,
	{"char", 0}:                         true,
	{"charlist", 0}:                     true,
	{"nonempty_charlist", 0}:            true,
	{"fun", 0}:                          true,
	{"function", 0}:                     true,
	{"identifier", 0}:                   true,
	{"iodata", 0}:                       true,
	{"iolist", 0}:                       true,
	{"keyword", 0}:                      true,
	{"keyword", 1}:                      true,
	{"mfa", 0}:                          true,
	{"module", 0}:                       true,
	{"no_return", 0}:                    true,
	{"node", 0}:                         true,
	{"number", 0}:                       true,
	{"struct", 0}:                       true,
	{"timeout", 0}:                      true,
	{"string", 0}:                       true,
	{"nonempty_string", 0}:              true,
}

// discouragedTypes maps builtins whose use produces a warning to the
// suggestion included in the message.
var discouragedTypes = map[FA]string{
	{"string", 0}:          "for character lists use charlist(), for strings use binary()",
	{"nonempty_string", 0}: "for character lists use nonempty_charlist(), for strings use binary()",
}

// IsBuiltinType reports whether name/arity is a built-in type.
func IsBuiltinType(name string, arity int) bool {
	return builtinTypes[FA{name, arity}]
}
