package aml

func byteData(in Input) (byte, Input, error) { return takeOne(in) }

func wordData(in Input) (uint16, Input, error) {
	lower, rest, err := byteData(in)
	if err != nil {
		return 0, Input{}, err
	}
	upper, rest, err := byteData(rest)
	if err != nil {
		return 0, Input{}, err
	}
	return uint16(upper)<<8 | uint16(lower), rest, nil
}

func dwordData(in Input) (uint32, Input, error) {
	lower, rest, err := wordData(in)
	if err != nil {
		return 0, Input{}, err
	}
	upper, rest, err := wordData(rest)
	if err != nil {
		return 0, Input{}, err
	}
	return uint32(upper)<<16 | uint32(lower), rest, nil
}

func qwordData(in Input) (uint64, Input, error) {
	lower, rest, err := dwordData(in)
	if err != nil {
		return 0, Input{}, err
	}
	upper, rest, err := dwordData(rest)
	if err != nil {
		return 0, Input{}, err
	}
	return uint64(upper)<<32 | uint64(lower), rest, nil
}

func asciiChar(in Input) (byte, Input, error) {
	return satisfy(in, func(b byte) bool { return b >= 0x01 && b <= 0x7f })
}

func nullChar(in Input) (Input, error) {
	return item(in, 0x00)
}

// ConstIntegerKind discriminates the fixed-width integer literal forms.
type ConstIntegerKind int

const (
	ConstIntegerByte ConstIntegerKind = iota
	ConstIntegerWord
	ConstIntegerDWord
	ConstIntegerQWord
)

// ConstInteger is a ByteConst, WordConst, DWordConst or QWordConst
// literal, normalized to a uint64 value alongside the width it was
// encoded with.
type ConstInteger struct {
	Kind  ConstIntegerKind
	Value uint64
}

func parseConstInteger(in Input) (ConstInteger, Input, error) {
	if rest, err := item(in, opBytePfx); err == nil {
		b, rest, err := byteData(rest)
		if err != nil {
			return ConstInteger{}, Input{}, fail(err)
		}
		return ConstInteger{Kind: ConstIntegerByte, Value: uint64(b)}, rest, nil
	}

	if rest, err := item(in, opWordPfx); err == nil {
		w, rest, err := wordData(rest)
		if err != nil {
			return ConstInteger{}, Input{}, fail(err)
		}
		return ConstInteger{Kind: ConstIntegerWord, Value: uint64(w)}, rest, nil
	}

	if rest, err := item(in, opDWordPfx); err == nil {
		d, rest, err := dwordData(rest)
		if err != nil {
			return ConstInteger{}, Input{}, fail(err)
		}
		return ConstInteger{Kind: ConstIntegerDWord, Value: uint64(d)}, rest, nil
	}

	rest, err := item(in, opQWordPfx)
	if err != nil {
		return ConstInteger{}, Input{}, err
	}
	q, rest, err := qwordData(rest)
	if err != nil {
		return ConstInteger{}, Input{}, fail(err)
	}
	return ConstInteger{Kind: ConstIntegerQWord, Value: q}, rest, nil
}

// ConstObj is ZeroOp | OneOp | OnesOp.
type ConstObj byte

const (
	ConstObjZero ConstObj = iota
	ConstObjOne
	ConstObjOnes
)

func parseConstObj(in Input) (ConstObj, Input, error) {
	if rest, err := item(in, opZero); err == nil {
		return ConstObjZero, rest, nil
	}
	if rest, err := item(in, opOne); err == nil {
		return ConstObjOne, rest, nil
	}
	rest, err := item(in, opOnes)
	if err != nil {
		return 0, Input{}, err
	}
	return ConstObjOnes, rest, nil
}

// AMLString is StringPrefix, ASCII bytes, NUL terminator.
type AMLString struct {
	Value string
}

func parseString(in Input) (AMLString, Input, error) {
	rest, err := item(in, opStringPfx)
	if err != nil {
		return AMLString{}, Input{}, err
	}

	var chars []byte
	for {
		c, next, cerr := asciiChar(rest)
		if cerr != nil {
			break
		}
		chars = append(chars, c)
		rest = next
	}

	next, err := nullChar(rest)
	if err != nil {
		return AMLString{}, Input{}, fail(err)
	}
	return AMLString{Value: string(chars)}, next, nil
}

// RevisionOp is the two-byte 0x5b 0x30 "Revision" pseudo-constant.
type RevisionOp struct{}

func parseRevisionOp(in Input) (RevisionOp, Input, error) {
	rest, err := itemPair(in, opExtPrefix, extRevision)
	if err != nil {
		return RevisionOp{}, Input{}, err
	}
	return RevisionOp{}, rest, nil
}

// ComputationalDataKind discriminates ComputationalData's variants.
type ComputationalDataKind int

const (
	CompDataConstInteger ComputationalDataKind = iota
	CompDataString
	CompDataConstObj
	CompDataRevisionOp
	CompDataBuffer
)

type ComputationalData struct {
	Kind         ComputationalDataKind
	ConstInteger ConstInteger
	String       AMLString
	ConstObj     ConstObj
	Buffer       Buffer
}

func parseComputationalData(in Input, ctx *Context) (ComputationalData, Input, error) {
	if ci, rest, err := parseConstInteger(in); err == nil {
		return ComputationalData{Kind: CompDataConstInteger, ConstInteger: ci}, rest, nil
	}
	if s, rest, err := parseString(in); err == nil {
		return ComputationalData{Kind: CompDataString, String: s}, rest, nil
	}
	if co, rest, err := parseConstObj(in); err == nil {
		return ComputationalData{Kind: CompDataConstObj, ConstObj: co}, rest, nil
	}
	if _, rest, err := parseRevisionOp(in); err == nil {
		return ComputationalData{Kind: CompDataRevisionOp}, rest, nil
	}

	buf, rest, err := parseBuffer(in, ctx)
	if err != nil {
		return ComputationalData{}, Input{}, err
	}
	return ComputationalData{Kind: CompDataBuffer, Buffer: buf}, rest, nil
}

// DataObjKind discriminates DataObj's variants.
type DataObjKind int

const (
	DataObjComputational DataObjKind = iota
	DataObjPkg
	DataObjVarPkg
)

type DataObj struct {
	Kind          DataObjKind
	Computational ComputationalData
	Pkg           PkgExpr
	VarPkg        VarPkgExpr
}

func parseDataObj(in Input, ctx *Context) (DataObj, Input, error) {
	if cd, rest, err := parseComputationalData(in, ctx); err == nil {
		return DataObj{Kind: DataObjComputational, Computational: cd}, rest, nil
	}
	if p, rest, err := parsePkgExpr(in, ctx); err == nil {
		return DataObj{Kind: DataObjPkg, Pkg: p}, rest, nil
	}
	vp, rest, err := parseVarPkgExpr(in, ctx)
	if err != nil {
		return DataObj{}, Input{}, err
	}
	return DataObj{Kind: DataObjVarPkg, VarPkg: vp}, rest, nil
}

// DataRefObj is DataObj | ObjRef. Only DataObj is modeled; ObjRef
// (a reference produced by a preceding RefOf/Index) is left as a future
// extension the original marks commented out too.
type DataRefObj struct {
	Data DataObj
}

func parseDataRefObj(in Input, ctx *Context) (DataRefObj, Input, error) {
	d, rest, err := parseDataObj(in, ctx)
	if err != nil {
		return DataRefObj{}, Input{}, err
	}
	return DataRefObj{Data: d}, rest, nil
}
