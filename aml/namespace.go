package aml

// Alias binds a second NameString to an already-declared object.
type Alias struct {
	Source NameString
	Alias  NameString
}

func parseAlias(in Input) (Alias, Input, error) {
	rest, err := item(in, opAlias)
	if err != nil {
		return Alias{}, Input{}, err
	}

	source, rest, err := parseNameString(rest)
	if err != nil {
		return Alias{}, Input{}, fail(err)
	}
	alias, rest, err := parseNameString(rest)
	if err != nil {
		return Alias{}, Input{}, fail(err)
	}
	return Alias{Source: source, Alias: alias}, rest, nil
}

// Name binds a NameString to a literal data value in the current scope.
type Name struct {
	Name NameString
	Data DataRefObj
}

func parseName(in Input, ctx *Context) (Name, Input, error) {
	rest, err := item(in, opName)
	if err != nil {
		return Name{}, Input{}, err
	}

	name, rest, err := parseNameString(rest)
	if err != nil {
		return Name{}, Input{}, fail(err)
	}
	data, rest, err := parseDataRefObj(rest, ctx)
	if err != nil {
		return Name{}, Input{}, fail(err)
	}
	return Name{Name: name, Data: data}, rest, nil
}

// Scope reopens an existing named object's scope to add more Terms to
// it.
type Scope struct {
	Name  NameString
	Terms []TermObj
}

func parseScope(in Input, ctx *Context) (Scope, Input, error) {
	rest, err := item(in, opScope)
	if err != nil {
		return Scope{}, Input{}, err
	}

	inner, outer, err := pkg(rest)
	if err != nil {
		return Scope{}, Input{}, fail(err)
	}

	name, inner, err := parseNameString(inner)
	if err != nil {
		return Scope{}, Input{}, fail(err)
	}

	ctx.PushScope(name)
	terms, err := parseTermList(inner, ctx)
	ctx.PopScope()
	if err != nil {
		return Scope{}, Input{}, fail(err)
	}

	return Scope{Name: name, Terms: terms}, outer, nil
}

// NameSpaceModObjKind discriminates NameSpaceModObj's variants.
type NameSpaceModObjKind int

const (
	NameSpaceModObjAlias NameSpaceModObjKind = iota
	NameSpaceModObjName
	NameSpaceModObjScope
)

// NameSpaceModObj is Alias | Name | Scope: the three productions that
// bind or rebind names in the current namespace without declaring a
// full NamedObj.
type NameSpaceModObj struct {
	Kind  NameSpaceModObjKind
	Alias Alias
	Name  Name
	Scope Scope
}

func parseNameSpaceModObj(in Input, ctx *Context) (NameSpaceModObj, Input, error) {
	if alias, rest, err := parseAlias(in); err == nil {
		return NameSpaceModObj{Kind: NameSpaceModObjAlias, Alias: alias}, rest, nil
	} else if isFailure(err) {
		return NameSpaceModObj{}, Input{}, err
	}

	if name, rest, err := parseName(in, ctx); err == nil {
		return NameSpaceModObj{Kind: NameSpaceModObjName, Name: name}, rest, nil
	} else if isFailure(err) {
		return NameSpaceModObj{}, Input{}, err
	}

	scope, rest, err := parseScope(in, ctx)
	if err != nil {
		return NameSpaceModObj{}, Input{}, err
	}
	return NameSpaceModObj{Kind: NameSpaceModObjScope, Scope: scope}, rest, nil
}
