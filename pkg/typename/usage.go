package typename

// Builtin names for types that need no declaration.
var (
	Bool    = New("bool")
	String  = New("string")
	Int     = New("int")
	Int32   = New("int32")
	Int64   = New("int64")
	Float32 = New("float32")
	Float64 = New("float64")
	Byte    = New("byte")
	Any     = New("any")
	Time    = New("time", "Time")
)

type usageKind int

const (
	usageBase usageKind = iota
	usageOptional
	usageArray
	usageDictionary
)

// Usage is a TypeName as it is used at a particular site: possibly optional,
// or wrapped in an array or a string-keyed dictionary.
type Usage struct {
	kind    usageKind
	name    TypeName
	wrapped *Usage
}

// AsUsage returns the plain usage of n.
func (n TypeName) AsUsage() Usage {
	return Usage{kind: usageBase, name: n}
}

func wrap(kind usageKind, u Usage) Usage {
	inner := u
	return Usage{kind: kind, wrapped: &inner}
}

// AsOptional returns u made optional. Optional usages are returned unchanged.
func (u Usage) AsOptional() Usage {
	if u.kind == usageOptional {
		return u
	}
	return wrap(usageOptional, u)
}

// StrippingOptional removes a top-level optional wrapper, if any.
func (u Usage) StrippingOptional() Usage {
	if u.kind == usageOptional {
		return *u.wrapped
	}
	return u
}

// WithOptional returns u optional or non-optional at the top level.
func (u Usage) WithOptional(optional bool) Usage {
	if optional {
		return u.AsOptional()
	}
	return u.StrippingOptional()
}

// AsArray returns an array of u.
func (u Usage) AsArray() Usage {
	return wrap(usageArray, u)
}

// AsDictionaryValue returns a string-keyed dictionary with values of u.
func (u Usage) AsDictionaryValue() Usage {
	return wrap(usageDictionary, u)
}

func (u Usage) IsOptional() bool   { return u.kind == usageOptional }
func (u Usage) IsArray() bool      { return u.kind == usageArray }
func (u Usage) IsDictionary() bool { return u.kind == usageDictionary }
func (u Usage) IsBase() bool       { return u.kind == usageBase }

// Wrapped returns the usage inside an optional, array or dictionary wrapper.
func (u Usage) Wrapped() (Usage, bool) {
	if u.wrapped == nil {
		return Usage{}, false
	}
	return *u.wrapped, true
}

// BaseName returns the innermost TypeName.
func (u Usage) BaseName() TypeName {
	for u.kind != usageBase {
		u = *u.wrapped
	}
	return u.name
}

// IsZero reports whether u is the zero value.
func (u Usage) IsZero() bool {
	return u.kind == usageBase && u.name.IsZero()
}

// Equal reports whether u and other describe the same usage.
func (u Usage) Equal(other Usage) bool {
	if u.kind != other.kind {
		return false
	}
	if u.kind == usageBase {
		return u.name.Equal(other.name)
	}
	return u.wrapped.Equal(*other.wrapped)
}

// String renders u in Go syntax using fully-qualified identifier paths,
// e.g. "*[]Components.Schemas.Pet".
func (u Usage) String() string {
	switch u.kind {
	case usageOptional:
		return "*" + u.wrapped.String()
	case usageArray:
		return "[]" + u.wrapped.String()
	case usageDictionary:
		return "map[string]" + u.wrapped.String()
	default:
		return u.name.FullyQualifiedName()
	}
}
