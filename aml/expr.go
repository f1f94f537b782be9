package aml

// Buffer is DefBuffer: a byte array whose declared size is itself a
// TermArg (often a ConstInteger, but may be computed).
type Buffer struct {
	Len   TermArg
	Bytes []byte
}

func parseBuffer(in Input, ctx *Context) (Buffer, Input, error) {
	rest, err := item(in, opBuffer)
	if err != nil {
		return Buffer{}, Input{}, err
	}
	inner, outer, err := pkg(rest)
	if err != nil {
		return Buffer{}, Input{}, fail(err)
	}
	length, inner, err := parseTermArg(inner, ctx)
	if err != nil {
		return Buffer{}, Input{}, fail(err)
	}
	return Buffer{Len: length, Bytes: inner.Bytes}, outer, nil
}

// PkgElementKind discriminates a PkgElement: a literal data value, or a
// name reference to an object defined elsewhere.
type PkgElementKind int

const (
	PkgElementData PkgElementKind = iota
	PkgElementName
)

type PkgElement struct {
	Kind PkgElementKind
	Data DataRefObj
	Name NameString
}

func parsePkgElement(in Input, ctx *Context) (PkgElement, Input, error) {
	if d, rest, err := parseDataRefObj(in, ctx); err == nil {
		return PkgElement{Kind: PkgElementData, Data: d}, rest, nil
	}
	n, rest, err := parseNameString(in)
	if err != nil {
		return PkgElement{}, Input{}, err
	}
	return PkgElement{Kind: PkgElementName, Name: n}, rest, nil
}

func parsePkgElementList(in Input, ctx *Context) ([]PkgElement, error) {
	var elems []PkgElement
	rest := in
	for len(rest.Bytes) != 0 {
		elem, next, err := parsePkgElement(rest, ctx)
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
		rest = next
	}
	return elems, nil
}

// PkgExpr is DefPackage: a fixed element count, known up front as a raw
// byte.
type PkgExpr struct {
	NumElements byte
	Elements    []PkgElement
}

func parsePkgExpr(in Input, ctx *Context) (PkgExpr, Input, error) {
	rest, err := item(in, opPkg)
	if err != nil {
		return PkgExpr{}, Input{}, err
	}
	inner, outer, err := pkg(rest)
	if err != nil {
		return PkgExpr{}, Input{}, fail(err)
	}
	num, inner, err := byteData(inner)
	if err != nil {
		return PkgExpr{}, Input{}, fail(err)
	}
	elements, err := parsePkgElementList(inner, ctx)
	if err != nil {
		return PkgExpr{}, Input{}, fail(err)
	}
	return PkgExpr{NumElements: num, Elements: elements}, outer, nil
}

// VarPkgExpr is DefVarPackage: the element count is itself a TermArg
// rather than a literal byte.
type VarPkgExpr struct {
	NumElements TermArg
	Elements    []PkgElement
}

func parseVarPkgExpr(in Input, ctx *Context) (VarPkgExpr, Input, error) {
	rest, err := item(in, opVarPkg)
	if err != nil {
		return VarPkgExpr{}, Input{}, err
	}
	inner, outer, err := pkg(rest)
	if err != nil {
		return VarPkgExpr{}, Input{}, fail(err)
	}
	num, inner, err := parseTermArg(inner, ctx)
	if err != nil {
		return VarPkgExpr{}, Input{}, fail(err)
	}
	elements, err := parsePkgElementList(inner, ctx)
	if err != nil {
		return VarPkgExpr{}, Input{}, fail(err)
	}
	return VarPkgExpr{NumElements: num, Elements: elements}, outer, nil
}

// Acquire attempts to take a Mutex, with a millisecond timeout.
type Acquire struct {
	Mutex   SuperName
	Timeout byte
}

func parseAcquire(in Input, ctx *Context) (Acquire, Input, error) {
	rest, err := itemPair(in, opExtPrefix, extAcquire)
	if err != nil {
		return Acquire{}, Input{}, err
	}
	mutex, rest, err := parseSuperName(rest, ctx)
	if err != nil {
		return Acquire{}, Input{}, fail(err)
	}
	timeout, rest, err := byteData(rest)
	if err != nil {
		return Acquire{}, Input{}, fail(err)
	}
	return Acquire{Mutex: mutex, Timeout: timeout}, rest, nil
}

// BitwiseKind discriminates Bitwise's variants.
type BitwiseKind int

const (
	BitwiseAnd BitwiseKind = iota
	BitwiseNAnd
	BitwiseNOr
	BitwiseOr
	BitwiseXOr
	BitwiseNot
	BitwiseShiftLeft
	BitwiseShiftRight
)

// bitwiseBinOp is the shared shape of And/NAnd/NOr/Or/XOr: two operands
// and a store target.
type bitwiseBinOp struct {
	Left, Right TermArg
	Target      Target
}

func parseBitwiseBinOp(in Input, ctx *Context, op byte) (bitwiseBinOp, Input, error) {
	rest, err := item(in, op)
	if err != nil {
		return bitwiseBinOp{}, Input{}, err
	}
	left, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return bitwiseBinOp{}, Input{}, fail(err)
	}
	right, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return bitwiseBinOp{}, Input{}, fail(err)
	}
	target, rest, err := parseTarget(rest, ctx)
	if err != nil {
		return bitwiseBinOp{}, Input{}, fail(err)
	}
	return bitwiseBinOp{Left: left, Right: right, Target: target}, rest, nil
}

type Bitwise struct {
	Kind        BitwiseKind
	Left, Right TermArg
	Operand     TermArg
	ShiftCount  TermArg
	Target      Target
}

func parseBitwise(in Input, ctx *Context) (Bitwise, Input, error) {
	ops := []struct {
		op   byte
		kind BitwiseKind
	}{
		{opAnd, BitwiseAnd},
		{opNAnd, BitwiseNAnd},
		{opNOr, BitwiseNOr},
		{opOr, BitwiseOr},
		{opXOr, BitwiseXOr},
	}
	for _, o := range ops {
		if v, rest, err := parseBitwiseBinOp(in, ctx, o.op); err == nil {
			return Bitwise{Kind: o.kind, Left: v.Left, Right: v.Right, Target: v.Target}, rest, nil
		} else if isFailure(err) {
			return Bitwise{}, Input{}, err
		}
	}

	if rest, err := item(in, opNot); err == nil {
		operand, rest, err := parseTermArg(rest, ctx)
		if err != nil {
			return Bitwise{}, Input{}, fail(err)
		}
		target, rest, err := parseTarget(rest, ctx)
		if err != nil {
			return Bitwise{}, Input{}, fail(err)
		}
		return Bitwise{Kind: BitwiseNot, Operand: operand, Target: target}, rest, nil
	}

	shiftOps := []struct {
		op   byte
		kind BitwiseKind
	}{
		{opShiftLeft, BitwiseShiftLeft},
		{opShiftRight, BitwiseShiftRight},
	}
	for _, o := range shiftOps {
		rest, err := item(in, o.op)
		if err != nil {
			continue
		}
		operand, rest, err := parseTermArg(rest, ctx)
		if err != nil {
			return Bitwise{}, Input{}, fail(err)
		}
		count, rest, err := parseTermArg(rest, ctx)
		if err != nil {
			return Bitwise{}, Input{}, fail(err)
		}
		target, rest, err := parseTarget(rest, ctx)
		if err != nil {
			return Bitwise{}, Input{}, fail(err)
		}
		return Bitwise{Kind: o.kind, Operand: operand, ShiftCount: count, Target: target}, rest, nil
	}

	return Bitwise{}, Input{}, newError(in.Span, "not a bitwise opcode")
}

// IntegerKind discriminates Integer's variants.
type IntegerKind int

const (
	IntegerAdd IntegerKind = iota
	IntegerMultiply
	IntegerSubtract
	IntegerDivide
	IntegerDecrement
	IntegerIncrement
)

type Integer struct {
	Kind                IntegerKind
	Left, Right         TermArg
	Target              Target
	Dividend, Divisor   TermArg
	Remainder, Quotient Target
	Name                SuperName
}

func parseIntegerBinOp(in Input, ctx *Context, op byte) (TermArg, TermArg, Target, Input, error) {
	rest, err := item(in, op)
	if err != nil {
		return TermArg{}, TermArg{}, Target{}, Input{}, err
	}
	left, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return TermArg{}, TermArg{}, Target{}, Input{}, fail(err)
	}
	right, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return TermArg{}, TermArg{}, Target{}, Input{}, fail(err)
	}
	target, rest, err := parseTarget(rest, ctx)
	if err != nil {
		return TermArg{}, TermArg{}, Target{}, Input{}, fail(err)
	}
	return left, right, target, rest, nil
}

func parseInteger(in Input, ctx *Context) (Integer, Input, error) {
	if l, r, t, rest, err := parseIntegerBinOp(in, ctx, opAdd); err == nil {
		return Integer{Kind: IntegerAdd, Left: l, Right: r, Target: t}, rest, nil
	} else if isFailure(err) {
		return Integer{}, Input{}, err
	}
	if l, r, t, rest, err := parseIntegerBinOp(in, ctx, opMultiply); err == nil {
		return Integer{Kind: IntegerMultiply, Left: l, Right: r, Target: t}, rest, nil
	} else if isFailure(err) {
		return Integer{}, Input{}, err
	}
	if l, r, t, rest, err := parseIntegerBinOp(in, ctx, opSubtract); err == nil {
		return Integer{Kind: IntegerSubtract, Left: l, Right: r, Target: t}, rest, nil
	} else if isFailure(err) {
		return Integer{}, Input{}, err
	}

	if rest, err := item(in, opDivide); err == nil {
		dividend, rest, err := parseTermArg(rest, ctx)
		if err != nil {
			return Integer{}, Input{}, fail(err)
		}
		divisor, rest, err := parseTermArg(rest, ctx)
		if err != nil {
			return Integer{}, Input{}, fail(err)
		}
		remainder, rest, err := parseTarget(rest, ctx)
		if err != nil {
			return Integer{}, Input{}, fail(err)
		}
		quotient, rest, err := parseTarget(rest, ctx)
		if err != nil {
			return Integer{}, Input{}, fail(err)
		}
		return Integer{Kind: IntegerDivide, Dividend: dividend, Divisor: divisor, Remainder: remainder, Quotient: quotient}, rest, nil
	}

	if rest, err := item(in, opDecrement); err == nil {
		name, rest, err := parseSuperName(rest, ctx)
		if err != nil {
			return Integer{}, Input{}, fail(err)
		}
		return Integer{Kind: IntegerDecrement, Name: name}, rest, nil
	}

	rest, err := item(in, opIncrement)
	if err != nil {
		return Integer{}, Input{}, err
	}
	name, rest, err := parseSuperName(rest, ctx)
	if err != nil {
		return Integer{}, Input{}, fail(err)
	}
	return Integer{Kind: IntegerIncrement, Name: name}, rest, nil
}

// LogicalKind discriminates Logical's variants.
type LogicalKind int

const (
	LogicalAnd LogicalKind = iota
	LogicalEqual
	LogicalGreaterEqual
	LogicalGreater
	LogicalLessEqual
	LogicalLess
	LogicalNotEqual
	LogicalOr
	LogicalNot
)

type Logical struct {
	Kind        LogicalKind
	Left, Right TermArg
	Operand     TermArg
}

func parseLogicalBinOp(in Input, ctx *Context, matchFn func(Input) (Input, error)) (TermArg, TermArg, Input, error) {
	rest, err := matchFn(in)
	if err != nil {
		return TermArg{}, TermArg{}, Input{}, err
	}
	left, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return TermArg{}, TermArg{}, Input{}, fail(err)
	}
	right, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return TermArg{}, TermArg{}, Input{}, fail(err)
	}
	return left, right, rest, nil
}

func matchByte(b byte) func(Input) (Input, error) {
	return func(in Input) (Input, error) { return item(in, b) }
}

func matchBytePair(b0, b1 byte) func(Input) (Input, error) {
	return func(in Input) (Input, error) { return itemPair(in, b0, b1) }
}

func parseLogical(in Input, ctx *Context) (Logical, Input, error) {
	// LNotEqual/LLessEqual/LGreaterEqual are LNot(0x92) immediately
	// followed by LEqual/LGreater/LLess, so they must be tried before
	// the corresponding plain comparison or bare LNot swallows their
	// first byte.
	if l, r, rest, err := parseLogicalBinOp(in, ctx, matchBytePair(opLNot, opLEqual)); err == nil {
		return Logical{Kind: LogicalNotEqual, Left: l, Right: r}, rest, nil
	} else if isFailure(err) {
		return Logical{}, Input{}, err
	}
	if l, r, rest, err := parseLogicalBinOp(in, ctx, matchBytePair(opLNot, opLLess)); err == nil {
		return Logical{Kind: LogicalGreaterEqual, Left: l, Right: r}, rest, nil
	} else if isFailure(err) {
		return Logical{}, Input{}, err
	}
	if l, r, rest, err := parseLogicalBinOp(in, ctx, matchBytePair(opLNot, opLGreater)); err == nil {
		return Logical{Kind: LogicalLessEqual, Left: l, Right: r}, rest, nil
	} else if isFailure(err) {
		return Logical{}, Input{}, err
	}

	if l, r, rest, err := parseLogicalBinOp(in, ctx, matchByte(opLAnd)); err == nil {
		return Logical{Kind: LogicalAnd, Left: l, Right: r}, rest, nil
	} else if isFailure(err) {
		return Logical{}, Input{}, err
	}
	if l, r, rest, err := parseLogicalBinOp(in, ctx, matchByte(opLEqual)); err == nil {
		return Logical{Kind: LogicalEqual, Left: l, Right: r}, rest, nil
	} else if isFailure(err) {
		return Logical{}, Input{}, err
	}
	if l, r, rest, err := parseLogicalBinOp(in, ctx, matchByte(opLGreater)); err == nil {
		return Logical{Kind: LogicalGreater, Left: l, Right: r}, rest, nil
	} else if isFailure(err) {
		return Logical{}, Input{}, err
	}
	if l, r, rest, err := parseLogicalBinOp(in, ctx, matchByte(opLLess)); err == nil {
		return Logical{Kind: LogicalLess, Left: l, Right: r}, rest, nil
	} else if isFailure(err) {
		return Logical{}, Input{}, err
	}
	if l, r, rest, err := parseLogicalBinOp(in, ctx, matchByte(opLOr)); err == nil {
		return Logical{Kind: LogicalOr, Left: l, Right: r}, rest, nil
	} else if isFailure(err) {
		return Logical{}, Input{}, err
	}

	rest, err := item(in, opLNot)
	if err != nil {
		return Logical{}, Input{}, err
	}
	operand, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return Logical{}, Input{}, fail(err)
	}
	return Logical{Kind: LogicalNot, Operand: operand}, rest, nil
}

// ConvertFnKind discriminates ConvertFn's variants.
type ConvertFnKind int

const (
	ConvertFnFromBcd ConvertFnKind = iota
	ConvertFnToBcd
	ConvertFnToBuffer
	ConvertFnToDecimalString
	ConvertFnToHexString
	ConvertFnToInteger
	ConvertFnToString
)

type ConvertFn struct {
	Kind       ConvertFnKind
	Operand    TermArg
	LengthArg  TermArg
	Target     Target
}

func parseConvertFn(in Input, ctx *Context) (ConvertFn, Input, error) {
	extOps := []struct {
		b    byte
		kind ConvertFnKind
	}{
		{extFromBCD, ConvertFnFromBcd},
		{extToBCD, ConvertFnToBcd},
	}
	for _, o := range extOps {
		rest, err := itemPair(in, opExtPrefix, o.b)
		if err != nil {
			continue
		}
		operand, rest, err := parseTermArg(rest, ctx)
		if err != nil {
			return ConvertFn{}, Input{}, fail(err)
		}
		target, rest, err := parseTarget(rest, ctx)
		if err != nil {
			return ConvertFn{}, Input{}, fail(err)
		}
		return ConvertFn{Kind: o.kind, Operand: operand, Target: target}, rest, nil
	}

	plainOps := []struct {
		b    byte
		kind ConvertFnKind
	}{
		{opToBuffer, ConvertFnToBuffer},
		{opToDecimalString, ConvertFnToDecimalString},
		{opToHexString, ConvertFnToHexString},
		{opToInteger, ConvertFnToInteger},
	}
	for _, o := range plainOps {
		rest, err := item(in, o.b)
		if err != nil {
			continue
		}
		operand, rest, err := parseTermArg(rest, ctx)
		if err != nil {
			return ConvertFn{}, Input{}, fail(err)
		}
		target, rest, err := parseTarget(rest, ctx)
		if err != nil {
			return ConvertFn{}, Input{}, fail(err)
		}
		return ConvertFn{Kind: o.kind, Operand: operand, Target: target}, rest, nil
	}

	rest, err := item(in, opToString)
	if err != nil {
		return ConvertFn{}, Input{}, err
	}
	arg, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return ConvertFn{}, Input{}, fail(err)
	}
	lengthArg, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return ConvertFn{}, Input{}, fail(err)
	}
	target, rest, err := parseTarget(rest, ctx)
	if err != nil {
		return ConvertFn{}, Input{}, fail(err)
	}
	return ConvertFn{Kind: ConvertFnToString, Operand: arg, LengthArg: lengthArg, Target: target}, rest, nil
}

type Concat struct {
	Left, Right TermArg
	Target      Target
}

func parseConcat(in Input, ctx *Context) (Concat, Input, error) {
	rest, err := item(in, opConcat)
	if err != nil {
		return Concat{}, Input{}, err
	}
	left, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return Concat{}, Input{}, fail(err)
	}
	right, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return Concat{}, Input{}, fail(err)
	}
	target, rest, err := parseTarget(rest, ctx)
	if err != nil {
		return Concat{}, Input{}, fail(err)
	}
	return Concat{Left: left, Right: right, Target: target}, rest, nil
}

type ConcatRes struct {
	Left, Right TermArg
	Target      Target
}

func parseConcatRes(in Input, ctx *Context) (ConcatRes, Input, error) {
	rest, err := item(in, opConcatRes)
	if err != nil {
		return ConcatRes{}, Input{}, err
	}
	left, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return ConcatRes{}, Input{}, fail(err)
	}
	right, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return ConcatRes{}, Input{}, fail(err)
	}
	target, rest, err := parseTarget(rest, ctx)
	if err != nil {
		return ConcatRes{}, Input{}, fail(err)
	}
	return ConcatRes{Left: left, Right: right, Target: target}, rest, nil
}

type CondRefOf struct {
	Name   SuperName
	Target Target
}

func parseCondRefOf(in Input, ctx *Context) (CondRefOf, Input, error) {
	rest, err := itemPair(in, opExtPrefix, extCondRefOf)
	if err != nil {
		return CondRefOf{}, Input{}, err
	}
	name, rest, err := parseSuperName(rest, ctx)
	if err != nil {
		return CondRefOf{}, Input{}, fail(err)
	}
	target, rest, err := parseTarget(rest, ctx)
	if err != nil {
		return CondRefOf{}, Input{}, fail(err)
	}
	return CondRefOf{Name: name, Target: target}, rest, nil
}

type CopyObj struct {
	Arg  TermArg
	Name SimpleName
}

func parseCopyObj(in Input, ctx *Context) (CopyObj, Input, error) {
	rest, err := item(in, opCopyObj)
	if err != nil {
		return CopyObj{}, Input{}, err
	}
	arg, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return CopyObj{}, Input{}, fail(err)
	}
	name, rest, err := parseSimpleName(rest)
	if err != nil {
		return CopyObj{}, Input{}, fail(err)
	}
	return CopyObj{Arg: arg, Name: name}, rest, nil
}

type DerefOf struct {
	ObjRef TermArg
}

func parseDerefOf(in Input, ctx *Context) (DerefOf, Input, error) {
	rest, err := item(in, opDerefOf)
	if err != nil {
		return DerefOf{}, Input{}, err
	}
	objRef, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return DerefOf{}, Input{}, fail(err)
	}
	return DerefOf{ObjRef: objRef}, rest, nil
}

type FindSetLeftBit struct {
	Operand TermArg
	Target  Target
}

func parseFindSetLeftBit(in Input, ctx *Context) (FindSetLeftBit, Input, error) {
	rest, err := item(in, opFindSetLeftBit)
	if err != nil {
		return FindSetLeftBit{}, Input{}, err
	}
	operand, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return FindSetLeftBit{}, Input{}, fail(err)
	}
	target, rest, err := parseTarget(rest, ctx)
	if err != nil {
		return FindSetLeftBit{}, Input{}, fail(err)
	}
	return FindSetLeftBit{Operand: operand, Target: target}, rest, nil
}

type FindSetRightBit struct {
	Operand TermArg
	Target  Target
}

func parseFindSetRightBit(in Input, ctx *Context) (FindSetRightBit, Input, error) {
	rest, err := item(in, opFindSetRightBit)
	if err != nil {
		return FindSetRightBit{}, Input{}, err
	}
	operand, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return FindSetRightBit{}, Input{}, fail(err)
	}
	target, rest, err := parseTarget(rest, ctx)
	if err != nil {
		return FindSetRightBit{}, Input{}, fail(err)
	}
	return FindSetRightBit{Operand: operand, Target: target}, rest, nil
}

type Index struct {
	Obj    TermArg
	Value  TermArg
	Target Target
}

func parseIndex(in Input, ctx *Context) (Index, Input, error) {
	rest, err := item(in, opIndex)
	if err != nil {
		return Index{}, Input{}, err
	}
	obj, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return Index{}, Input{}, fail(err)
	}
	value, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return Index{}, Input{}, fail(err)
	}
	target, rest, err := parseTarget(rest, ctx)
	if err != nil {
		return Index{}, Input{}, fail(err)
	}
	return Index{Obj: obj, Value: value, Target: target}, rest, nil
}

type Load struct {
	Name   NameString
	Target Target
}

func parseLoad(in Input, ctx *Context) (Load, Input, error) {
	rest, err := itemPair(in, opExtPrefix, extLoad)
	if err != nil {
		return Load{}, Input{}, err
	}
	name, rest, err := parseNameString(rest)
	if err != nil {
		return Load{}, Input{}, fail(err)
	}
	target, rest, err := parseTarget(rest, ctx)
	if err != nil {
		return Load{}, Input{}, fail(err)
	}
	return Load{Name: name, Target: target}, rest, nil
}

type LoadTable struct {
	Args [6]TermArg
}

func parseLoadTable(in Input, ctx *Context) (LoadTable, Input, error) {
	rest, err := itemPair(in, opExtPrefix, extLoadTable)
	if err != nil {
		return LoadTable{}, Input{}, err
	}
	var args [6]TermArg
	for i := range args {
		var arg TermArg
		arg, rest, err = parseTermArg(rest, ctx)
		if err != nil {
			return LoadTable{}, Input{}, fail(err)
		}
		args[i] = arg
	}
	return LoadTable{Args: args}, rest, nil
}

type Match struct {
	SearchPkg       TermArg
	LeftMatchOpcode byte
	Left            TermArg
	RightMatchOpcode byte
	Right           TermArg
	StartIndex      TermArg
}

func parseMatch(in Input, ctx *Context) (Match, Input, error) {
	rest, err := item(in, opMatch)
	if err != nil {
		return Match{}, Input{}, err
	}
	searchPkg, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return Match{}, Input{}, fail(err)
	}
	leftOp, rest, err := byteData(rest)
	if err != nil {
		return Match{}, Input{}, fail(err)
	}
	left, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return Match{}, Input{}, fail(err)
	}
	rightOp, rest, err := byteData(rest)
	if err != nil {
		return Match{}, Input{}, fail(err)
	}
	right, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return Match{}, Input{}, fail(err)
	}
	startIndex, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return Match{}, Input{}, fail(err)
	}
	return Match{
		SearchPkg: searchPkg, LeftMatchOpcode: leftOp, Left: left,
		RightMatchOpcode: rightOp, Right: right, StartIndex: startIndex,
	}, rest, nil
}

type Mid struct {
	MidObj TermArg
	Term1  TermArg
	Term2  TermArg
	Target Target
}

func parseMid(in Input, ctx *Context) (Mid, Input, error) {
	rest, err := item(in, opMid)
	if err != nil {
		return Mid{}, Input{}, err
	}
	midObj, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return Mid{}, Input{}, fail(err)
	}
	term1, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return Mid{}, Input{}, fail(err)
	}
	term2, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return Mid{}, Input{}, fail(err)
	}
	target, rest, err := parseTarget(rest, ctx)
	if err != nil {
		return Mid{}, Input{}, fail(err)
	}
	return Mid{MidObj: midObj, Term1: term1, Term2: term2, Target: target}, rest, nil
}

type Mod struct {
	Dividend, Divisor TermArg
	Target            Target
}

func parseMod(in Input, ctx *Context) (Mod, Input, error) {
	rest, err := item(in, opMod)
	if err != nil {
		return Mod{}, Input{}, err
	}
	dividend, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return Mod{}, Input{}, fail(err)
	}
	divisor, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return Mod{}, Input{}, fail(err)
	}
	target, rest, err := parseTarget(rest, ctx)
	if err != nil {
		return Mod{}, Input{}, fail(err)
	}
	return Mod{Dividend: dividend, Divisor: divisor, Target: target}, rest, nil
}

// ObjTypeKind discriminates the operand form ObjType was given.
type ObjTypeKind int

const (
	ObjTypeSimpleName ObjTypeKind = iota
	ObjTypeDebugObj
	ObjTypeRefOf
	ObjTypeDerefOf
	ObjTypeIndex
)

type ObjType struct {
	Kind       ObjTypeKind
	SimpleName SimpleName
	DebugObj   DebugObj
	RefOf      RefOf
	DerefOf    DerefOf
	Index      Index
}

func parseObjType(in Input, ctx *Context) (ObjType, Input, error) {
	rest, err := item(in, opObjType)
	if err != nil {
		return ObjType{}, Input{}, err
	}

	if v, next, err := parseSimpleName(rest); err == nil {
		return ObjType{Kind: ObjTypeSimpleName, SimpleName: v}, next, nil
	}
	if v, next, err := parseDebugObj(rest); err == nil {
		return ObjType{Kind: ObjTypeDebugObj, DebugObj: v}, next, nil
	}
	if v, next, err := parseRefOf(rest, ctx); err == nil {
		return ObjType{Kind: ObjTypeRefOf, RefOf: v}, next, nil
	}
	if v, next, err := parseDerefOf(rest, ctx); err == nil {
		return ObjType{Kind: ObjTypeDerefOf, DerefOf: v}, next, nil
	}
	v, next, err := parseIndex(rest, ctx)
	if err != nil {
		return ObjType{}, Input{}, fail(err)
	}
	return ObjType{Kind: ObjTypeIndex, Index: v}, next, nil
}

type RefOf struct {
	Name SuperName
}

func parseRefOf(in Input, ctx *Context) (RefOf, Input, error) {
	rest, err := item(in, opRefOf)
	if err != nil {
		return RefOf{}, Input{}, err
	}
	name, rest, err := parseSuperName(rest, ctx)
	if err != nil {
		return RefOf{}, Input{}, fail(err)
	}
	return RefOf{Name: name}, rest, nil
}

type SizeOf struct {
	Name SuperName
}

func parseSizeOf(in Input, ctx *Context) (SizeOf, Input, error) {
	rest, err := item(in, opSizeOf)
	if err != nil {
		return SizeOf{}, Input{}, err
	}
	name, rest, err := parseSuperName(rest, ctx)
	if err != nil {
		return SizeOf{}, Input{}, fail(err)
	}
	return SizeOf{Name: name}, rest, nil
}

type Store struct {
	Term TermArg
	Name SuperName
}

func parseStore(in Input, ctx *Context) (Store, Input, error) {
	rest, err := item(in, opStore)
	if err != nil {
		return Store{}, Input{}, err
	}
	term, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return Store{}, Input{}, fail(err)
	}
	name, rest, err := parseSuperName(rest, ctx)
	if err != nil {
		return Store{}, Input{}, fail(err)
	}
	return Store{Term: term, Name: name}, rest, nil
}

type Timer struct{}

func parseTimer(in Input) (Timer, Input, error) {
	rest, err := itemPair(in, opExtPrefix, extTimer)
	if err != nil {
		return Timer{}, Input{}, err
	}
	return Timer{}, rest, nil
}

type Wait struct {
	Event   SuperName
	Operand TermArg
}

func parseWait(in Input, ctx *Context) (Wait, Input, error) {
	rest, err := itemPair(in, opExtPrefix, extWait)
	if err != nil {
		return Wait{}, Input{}, err
	}
	event, rest, err := parseSuperName(rest, ctx)
	if err != nil {
		return Wait{}, Input{}, fail(err)
	}
	operand, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return Wait{}, Input{}, fail(err)
	}
	return Wait{Event: event, Operand: operand}, rest, nil
}

// ExprKind discriminates Expr's variants.
type ExprKind int

const (
	ExprAcquire ExprKind = iota
	ExprBitwise
	ExprBuffer
	ExprConcat
	ExprConcatRes
	ExprCondRefOf
	ExprConvertFn
	ExprCopyObj
	ExprDerefOf
	ExprFindSetLeftBit
	ExprFindSetRightBit
	ExprIndex
	ExprInteger
	ExprLoad
	ExprLoadTable
	ExprLogical
	ExprMatch
	ExprMid
	ExprMod
	ExprObjType
	ExprPkg
	ExprRefOf
	ExprSizeOf
	ExprStore
	ExprTimer
	ExprVarPkg
	ExprWait
	ExprSymbolAccess
)

// Expr is a value-producing expression: one of the opcodes below, or
// SymbolAccess as the catchall once nothing else matches.
type Expr struct {
	Kind            ExprKind
	Acquire         Acquire
	Bitwise         Bitwise
	Buffer          Buffer
	Concat          Concat
	ConcatRes       ConcatRes
	CondRefOf       CondRefOf
	ConvertFn       ConvertFn
	CopyObj         CopyObj
	DerefOf         DerefOf
	FindSetLeftBit  FindSetLeftBit
	FindSetRightBit FindSetRightBit
	Index           Index
	Integer         Integer
	Load            Load
	LoadTable       LoadTable
	Logical         Logical
	Match           Match
	Mid             Mid
	Mod             Mod
	ObjType         ObjType
	Pkg             PkgExpr
	RefOf           RefOf
	SizeOf          SizeOf
	Store           Store
	Timer           Timer
	VarPkg          VarPkgExpr
	Wait            Wait
	SymbolAccess    SymbolAccess
}

func parseExpr(in Input, ctx *Context) (*Expr, Input, error) {
	type attempt func(Input, *Context) (*Expr, Input, error)

	attempts := []attempt{
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseAcquire(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprAcquire, Acquire: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseBitwise(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprBitwise, Bitwise: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseBuffer(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprBuffer, Buffer: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseConcat(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprConcat, Concat: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseConcatRes(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprConcatRes, ConcatRes: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseCondRefOf(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprCondRefOf, CondRefOf: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseConvertFn(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprConvertFn, ConvertFn: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseCopyObj(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprCopyObj, CopyObj: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseDerefOf(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprDerefOf, DerefOf: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseFindSetLeftBit(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprFindSetLeftBit, FindSetLeftBit: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseFindSetRightBit(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprFindSetRightBit, FindSetRightBit: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseIndex(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprIndex, Index: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseInteger(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprInteger, Integer: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseLoad(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprLoad, Load: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseLoadTable(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprLoadTable, LoadTable: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseLogical(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprLogical, Logical: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseMatch(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprMatch, Match: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseMid(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprMid, Mid: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseMod(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprMod, Mod: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseObjType(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprObjType, ObjType: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parsePkgExpr(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprPkg, Pkg: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseRefOf(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprRefOf, RefOf: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseSizeOf(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprSizeOf, SizeOf: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseStore(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprStore, Store: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseTimer(in)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprTimer, Timer: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseVarPkgExpr(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprVarPkg, VarPkg: v}, rest, nil
		},
		func(in Input, ctx *Context) (*Expr, Input, error) {
			v, rest, err := parseWait(in, ctx)
			if err != nil {
				return nil, Input{}, err
			}
			return &Expr{Kind: ExprWait, Wait: v}, rest, nil
		},
	}

	for _, try := range attempts {
		expr, rest, err := try(in, ctx)
		if err == nil {
			return expr, rest, nil
		}
		if isFailure(err) {
			return nil, Input{}, err
		}
	}

	v, rest, err := parseSymbolAccess(in, ctx)
	if err != nil {
		return nil, Input{}, err
	}
	return &Expr{Kind: ExprSymbolAccess, SymbolAccess: v}, rest, nil
}

// parseRefTypeOpcode parses RefOf | DerefOf | Index | a method-invocation
// SymbolAccess: the subset of Expr that produces a reference usable as a
// SuperName (a writable/referenceable location).
func parseRefTypeOpcode(in Input, ctx *Context) (*Expr, Input, error) {
	if v, rest, err := parseRefOf(in, ctx); err == nil {
		return &Expr{Kind: ExprRefOf, RefOf: v}, rest, nil
	} else if isFailure(err) {
		return nil, Input{}, err
	}
	if v, rest, err := parseDerefOf(in, ctx); err == nil {
		return &Expr{Kind: ExprDerefOf, DerefOf: v}, rest, nil
	} else if isFailure(err) {
		return nil, Input{}, err
	}
	if v, rest, err := parseIndex(in, ctx); err == nil {
		return &Expr{Kind: ExprIndex, Index: v}, rest, nil
	} else if isFailure(err) {
		return nil, Input{}, err
	}

	access, rest, err := parseSymbolAccess(in, ctx)
	if err != nil {
		return nil, Input{}, err
	}
	if access.Kind != SymbolAccessMethod {
		return nil, Input{}, newError(in.Span, "bare variable reference is not a RefTypeOpcode")
	}
	return &Expr{Kind: ExprSymbolAccess, SymbolAccess: access}, rest, nil
}
