package aml

// FieldElementKind discriminates one entry of a FieldList.
type FieldElementKind int

const (
	FieldElementNamed FieldElementKind = iota
	FieldElementReserved
)

// FieldElement is one member of a Field/IndexField/BankField body: either
// a named bit range, or an anonymous reserved span that just advances the
// bit cursor.
type FieldElement struct {
	Kind FieldElementKind
	Name NameSeg
	Bits int
}

func parseFieldElement(in Input) (FieldElement, Input, error) {
	if rest, err := item(in, 0x00); err == nil {
		bits, rest, err := parsePkgLength(rest)
		if err != nil {
			return FieldElement{}, Input{}, fail(err)
		}
		return FieldElement{Kind: FieldElementReserved, Bits: bits}, rest, nil
	}

	seg, rest, err := parseNameSeg(in)
	if err != nil {
		return FieldElement{}, Input{}, err
	}
	bits, rest, err := parsePkgLength(rest)
	if err != nil {
		return FieldElement{}, Input{}, fail(err)
	}
	return FieldElement{Kind: FieldElementNamed, Name: seg, Bits: bits}, rest, nil
}

func parseFieldList(in Input) ([]FieldElement, error) {
	var elems []FieldElement
	rest := in
	for len(rest.Bytes) != 0 {
		elem, next, err := parseFieldElement(rest)
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
		rest = next
	}
	return elems, nil
}

// FieldFlags is the single flags byte shared by Field/IndexField/
// BankField: access type in bits 0-3, lock rule in bit 4, update rule in
// bits 5-6.
type FieldFlags byte

type Field struct {
	Name  NameString
	Flags FieldFlags
	Elems []FieldElement
}

func parseField(in Input, ctx *Context) (Field, Input, error) {
	rest, err := itemPair(in, opExtPrefix, extField)
	if err != nil {
		return Field{}, Input{}, err
	}
	inner, outer, err := pkg(rest)
	if err != nil {
		return Field{}, Input{}, fail(err)
	}
	name, inner, err := parseNameString(inner)
	if err != nil {
		return Field{}, Input{}, fail(err)
	}
	flags, inner, err := byteData(inner)
	if err != nil {
		return Field{}, Input{}, fail(err)
	}
	elems, err := parseFieldList(inner)
	if err != nil {
		return Field{}, Input{}, fail(err)
	}
	_ = ctx
	return Field{Name: name, Flags: FieldFlags(flags), Elems: elems}, outer, nil
}

type IndexField struct {
	IndexName NameString
	DataName  NameString
	Flags     FieldFlags
	Elems     []FieldElement
}

func parseIndexField(in Input, ctx *Context) (IndexField, Input, error) {
	rest, err := itemPair(in, opExtPrefix, extIndexField)
	if err != nil {
		return IndexField{}, Input{}, err
	}
	inner, outer, err := pkg(rest)
	if err != nil {
		return IndexField{}, Input{}, fail(err)
	}
	indexName, inner, err := parseNameString(inner)
	if err != nil {
		return IndexField{}, Input{}, fail(err)
	}
	dataName, inner, err := parseNameString(inner)
	if err != nil {
		return IndexField{}, Input{}, fail(err)
	}
	flags, inner, err := byteData(inner)
	if err != nil {
		return IndexField{}, Input{}, fail(err)
	}
	elems, err := parseFieldList(inner)
	if err != nil {
		return IndexField{}, Input{}, fail(err)
	}
	_ = ctx
	return IndexField{IndexName: indexName, DataName: dataName, Flags: FieldFlags(flags), Elems: elems}, outer, nil
}

type BankField struct {
	Name      NameString
	BankName  NameString
	BankValue TermArg
	Flags     FieldFlags
	Elems     []FieldElement
}

func parseBankField(in Input, ctx *Context) (BankField, Input, error) {
	rest, err := itemPair(in, opExtPrefix, extBankField)
	if err != nil {
		return BankField{}, Input{}, err
	}
	inner, outer, err := pkg(rest)
	if err != nil {
		return BankField{}, Input{}, fail(err)
	}
	name, inner, err := parseNameString(inner)
	if err != nil {
		return BankField{}, Input{}, fail(err)
	}
	bankName, inner, err := parseNameString(inner)
	if err != nil {
		return BankField{}, Input{}, fail(err)
	}
	bankValue, inner, err := parseTermArg(inner, ctx)
	if err != nil {
		return BankField{}, Input{}, fail(err)
	}
	flags, inner, err := byteData(inner)
	if err != nil {
		return BankField{}, Input{}, fail(err)
	}
	elems, err := parseFieldList(inner)
	if err != nil {
		return BankField{}, Input{}, fail(err)
	}
	return BankField{Name: name, BankName: bankName, BankValue: bankValue, Flags: FieldFlags(flags), Elems: elems}, outer, nil
}

// CreateFieldKind discriminates the five fixed-width CreateXField forms.
type CreateFieldKind int

const (
	CreateFieldBit CreateFieldKind = iota
	CreateFieldByte
	CreateFieldWord
	CreateFieldDWord
	CreateFieldQWord
)

// CreateConstField is CreateBitField | CreateByteField | CreateWordField
// | CreateDWordField | CreateQWordField: they share the same
// SourceBuff/ByteIndex/NameString shape and differ only in field width.
type CreateConstField struct {
	Kind       CreateFieldKind
	SourceBuff TermArg
	Index      TermArg
	Name       NameString
}

func parseCreateConstField(in Input, ctx *Context) (CreateConstField, Input, error) {
	kinds := []struct {
		op   byte
		kind CreateFieldKind
	}{
		{opCreateBitField, CreateFieldBit},
		{opCreateByteField, CreateFieldByte},
		{opCreateWordField, CreateFieldWord},
		{opCreateDWordField, CreateFieldDWord},
		{opCreateQWordField, CreateFieldQWord},
	}

	for _, k := range kinds {
		rest, err := item(in, k.op)
		if err != nil {
			continue
		}
		src, rest, err := parseTermArg(rest, ctx)
		if err != nil {
			return CreateConstField{}, Input{}, fail(err)
		}
		index, rest, err := parseTermArg(rest, ctx)
		if err != nil {
			return CreateConstField{}, Input{}, fail(err)
		}
		name, rest, err := parseNameString(rest)
		if err != nil {
			return CreateConstField{}, Input{}, fail(err)
		}
		return CreateConstField{Kind: k.kind, SourceBuff: src, Index: index, Name: name}, rest, nil
	}

	return CreateConstField{}, Input{}, newError(in.Span, "not a CreateXField opcode")
}

// CreateField is the variable-width CreateField form: a bit offset and
// an explicit bit count rather than one of the five fixed widths above.
type CreateField struct {
	SourceBuff TermArg
	BitIndex   TermArg
	NumBits    TermArg
	Name       NameString
}

func parseCreateField(in Input, ctx *Context) (CreateField, Input, error) {
	rest, err := itemPair(in, opExtPrefix, extCreateField)
	if err != nil {
		return CreateField{}, Input{}, err
	}
	src, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return CreateField{}, Input{}, fail(err)
	}
	bitIndex, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return CreateField{}, Input{}, fail(err)
	}
	numBits, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return CreateField{}, Input{}, fail(err)
	}
	name, rest, err := parseNameString(rest)
	if err != nil {
		return CreateField{}, Input{}, fail(err)
	}
	return CreateField{SourceBuff: src, BitIndex: bitIndex, NumBits: numBits, Name: name}, rest, nil
}

type DataRegion struct {
	Name NameString
	Sig  TermArg
	OEMID TermArg
	OEMTableID TermArg
}

func parseDataRegion(in Input, ctx *Context) (DataRegion, Input, error) {
	rest, err := itemPair(in, opExtPrefix, extDataRegion)
	if err != nil {
		return DataRegion{}, Input{}, err
	}
	name, rest, err := parseNameString(rest)
	if err != nil {
		return DataRegion{}, Input{}, fail(err)
	}
	sig, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return DataRegion{}, Input{}, fail(err)
	}
	oemID, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return DataRegion{}, Input{}, fail(err)
	}
	oemTableID, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return DataRegion{}, Input{}, fail(err)
	}
	return DataRegion{Name: name, Sig: sig, OEMID: oemID, OEMTableID: oemTableID}, rest, nil
}

type External struct {
	Name       NameString
	ObjectType byte
	ArgCount   byte
}

func parseExternal(in Input) (External, Input, error) {
	rest, err := item(in, opExternal)
	if err != nil {
		return External{}, Input{}, err
	}
	name, rest, err := parseNameString(rest)
	if err != nil {
		return External{}, Input{}, fail(err)
	}
	objType, rest, err := byteData(rest)
	if err != nil {
		return External{}, Input{}, fail(err)
	}
	argCount, rest, err := byteData(rest)
	if err != nil {
		return External{}, Input{}, fail(err)
	}
	return External{Name: name, ObjectType: objType, ArgCount: argCount}, rest, nil
}

type OpRegion struct {
	Name    NameString
	Space   byte
	Offset  TermArg
	Length  TermArg
}

func parseOpRegion(in Input, ctx *Context) (OpRegion, Input, error) {
	rest, err := itemPair(in, opExtPrefix, extOpRegion)
	if err != nil {
		return OpRegion{}, Input{}, err
	}
	name, rest, err := parseNameString(rest)
	if err != nil {
		return OpRegion{}, Input{}, fail(err)
	}
	space, rest, err := byteData(rest)
	if err != nil {
		return OpRegion{}, Input{}, fail(err)
	}
	offset, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return OpRegion{}, Input{}, fail(err)
	}
	length, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return OpRegion{}, Input{}, fail(err)
	}
	return OpRegion{Name: name, Space: space, Offset: offset, Length: length}, rest, nil
}

type PowerRes struct {
	Name          NameString
	SystemLevel   byte
	ResourceOrder uint16
	Terms         []TermObj
}

func parsePowerRes(in Input, ctx *Context) (PowerRes, Input, error) {
	rest, err := itemPair(in, opExtPrefix, extPowerRes)
	if err != nil {
		return PowerRes{}, Input{}, err
	}
	inner, outer, err := pkg(rest)
	if err != nil {
		return PowerRes{}, Input{}, fail(err)
	}
	name, inner, err := parseNameString(inner)
	if err != nil {
		return PowerRes{}, Input{}, fail(err)
	}
	level, inner, err := byteData(inner)
	if err != nil {
		return PowerRes{}, Input{}, fail(err)
	}
	order, inner, err := wordData(inner)
	if err != nil {
		return PowerRes{}, Input{}, fail(err)
	}
	terms, err := parseTermList(inner, ctx)
	if err != nil {
		return PowerRes{}, Input{}, fail(err)
	}
	return PowerRes{Name: name, SystemLevel: level, ResourceOrder: order, Terms: terms}, outer, nil
}

type ThermalZone struct {
	Name  NameString
	Terms []TermObj
}

func parseThermalZone(in Input, ctx *Context) (ThermalZone, Input, error) {
	rest, err := itemPair(in, opExtPrefix, extThermalZone)
	if err != nil {
		return ThermalZone{}, Input{}, err
	}
	inner, outer, err := pkg(rest)
	if err != nil {
		return ThermalZone{}, Input{}, fail(err)
	}
	name, inner, err := parseNameString(inner)
	if err != nil {
		return ThermalZone{}, Input{}, fail(err)
	}
	terms, err := parseTermList(inner, ctx)
	if err != nil {
		return ThermalZone{}, Input{}, fail(err)
	}
	return ThermalZone{Name: name, Terms: terms}, outer, nil
}

// MethodFlags unpacks the single flags byte of a Method declaration:
// ArgCount in bits 0-2, SerializeFlag in bit 3, SyncLevel in bits 4-7.
type MethodFlags struct {
	ArgCount  int
	Serialized bool
	SyncLevel int
}

func parseMethodFlags(b byte) MethodFlags {
	return MethodFlags{
		ArgCount:   int(b & 0x07),
		Serialized: b&0x08 != 0,
		SyncLevel:  int(b>>4) & 0x0f,
	}
}

type Method struct {
	Name  NameString
	Flags MethodFlags
	Terms []TermObj
}

func parseMethod(in Input, ctx *Context) (Method, Input, error) {
	rest, err := item(in, opMethod)
	if err != nil {
		return Method{}, Input{}, err
	}
	inner, outer, err := pkg(rest)
	if err != nil {
		return Method{}, Input{}, fail(err)
	}
	name, inner, err := parseNameString(inner)
	if err != nil {
		return Method{}, Input{}, fail(err)
	}
	flagByte, inner, err := byteData(inner)
	if err != nil {
		return Method{}, Input{}, fail(err)
	}
	flags := parseMethodFlags(flagByte)

	ctx.AddMethod(name, flags.ArgCount)
	ctx.PushScope(name)
	terms, err := parseTermList(inner, ctx)
	ctx.PopScope()
	if err != nil {
		return Method{}, Input{}, fail(err)
	}

	return Method{Name: name, Flags: flags, Terms: terms}, outer, nil
}

type Device struct {
	Name  NameString
	Terms []TermObj
}

func parseDevice(in Input, ctx *Context) (Device, Input, error) {
	rest, err := itemPair(in, opExtPrefix, extDevice)
	if err != nil {
		return Device{}, Input{}, err
	}
	inner, outer, err := pkg(rest)
	if err != nil {
		return Device{}, Input{}, fail(err)
	}
	name, inner, err := parseNameString(inner)
	if err != nil {
		return Device{}, Input{}, fail(err)
	}
	ctx.PushScope(name)
	terms, err := parseTermList(inner, ctx)
	ctx.PopScope()
	if err != nil {
		return Device{}, Input{}, fail(err)
	}
	return Device{Name: name, Terms: terms}, outer, nil
}

type Event struct {
	Name NameString
}

func parseEvent(in Input) (Event, Input, error) {
	rest, err := itemPair(in, opExtPrefix, extEvent)
	if err != nil {
		return Event{}, Input{}, err
	}
	name, rest, err := parseNameString(rest)
	if err != nil {
		return Event{}, Input{}, fail(err)
	}
	return Event{Name: name}, rest, nil
}

type Mutex struct {
	Name      NameString
	SyncLevel byte
}

func parseMutex(in Input) (Mutex, Input, error) {
	rest, err := itemPair(in, opExtPrefix, extMutex)
	if err != nil {
		return Mutex{}, Input{}, err
	}
	name, rest, err := parseNameString(rest)
	if err != nil {
		return Mutex{}, Input{}, fail(err)
	}
	syncFlags, rest, err := byteData(rest)
	if err != nil {
		return Mutex{}, Input{}, fail(err)
	}
	return Mutex{Name: name, SyncLevel: syncFlags & 0x0f}, rest, nil
}

type Processor struct {
	Name     NameString
	ProcID   byte
	PblkAddr uint32
	PblkLen  byte
	Terms    []TermObj
}

func parseProcessor(in Input, ctx *Context) (Processor, Input, error) {
	rest, err := itemPair(in, opExtPrefix, extProcessor)
	if err != nil {
		return Processor{}, Input{}, err
	}
	inner, outer, err := pkg(rest)
	if err != nil {
		return Processor{}, Input{}, fail(err)
	}
	name, inner, err := parseNameString(inner)
	if err != nil {
		return Processor{}, Input{}, fail(err)
	}
	procID, inner, err := byteData(inner)
	if err != nil {
		return Processor{}, Input{}, fail(err)
	}
	pblkAddr, inner, err := dwordData(inner)
	if err != nil {
		return Processor{}, Input{}, fail(err)
	}
	pblkLen, inner, err := byteData(inner)
	if err != nil {
		return Processor{}, Input{}, fail(err)
	}
	ctx.PushScope(name)
	terms, err := parseTermList(inner, ctx)
	ctx.PopScope()
	if err != nil {
		return Processor{}, Input{}, fail(err)
	}
	return Processor{Name: name, ProcID: procID, PblkAddr: pblkAddr, PblkLen: pblkLen, Terms: terms}, outer, nil
}

// NamedObjKind discriminates NamedObj's variants.
type NamedObjKind int

const (
	NamedObjBankField NamedObjKind = iota
	NamedObjCreateConstField
	NamedObjCreateField
	NamedObjDataRegion
	NamedObjExternal
	NamedObjOpRegion
	NamedObjPowerRes
	NamedObjThermalZone
	NamedObjField
	NamedObjMethod
	NamedObjDevice
	NamedObjEvent
	NamedObjIndexField
	NamedObjMutex
	NamedObjProcessor
)

// NamedObj is one of the fifteen object-declaring productions that bind
// a new name with richer semantics than a plain Name() literal.
type NamedObj struct {
	Kind             NamedObjKind
	BankField        BankField
	CreateConstField CreateConstField
	CreateField      CreateField
	DataRegion       DataRegion
	External         External
	OpRegion         OpRegion
	PowerRes         PowerRes
	ThermalZone      ThermalZone
	Field            Field
	Method           Method
	Device           Device
	Event            Event
	IndexField       IndexField
	Mutex            Mutex
	Processor        Processor
}

func parseNamedObj(in Input, ctx *Context) (NamedObj, Input, error) {
	if v, rest, err := parseBankField(in, ctx); err == nil {
		return NamedObj{Kind: NamedObjBankField, BankField: v}, rest, nil
	} else if isFailure(err) {
		return NamedObj{}, Input{}, err
	}
	if v, rest, err := parseCreateConstField(in, ctx); err == nil {
		return NamedObj{Kind: NamedObjCreateConstField, CreateConstField: v}, rest, nil
	} else if isFailure(err) {
		return NamedObj{}, Input{}, err
	}
	if v, rest, err := parseCreateField(in, ctx); err == nil {
		return NamedObj{Kind: NamedObjCreateField, CreateField: v}, rest, nil
	} else if isFailure(err) {
		return NamedObj{}, Input{}, err
	}
	if v, rest, err := parseDataRegion(in, ctx); err == nil {
		return NamedObj{Kind: NamedObjDataRegion, DataRegion: v}, rest, nil
	} else if isFailure(err) {
		return NamedObj{}, Input{}, err
	}
	if v, rest, err := parseExternal(in); err == nil {
		return NamedObj{Kind: NamedObjExternal, External: v}, rest, nil
	} else if isFailure(err) {
		return NamedObj{}, Input{}, err
	}
	if v, rest, err := parseOpRegion(in, ctx); err == nil {
		return NamedObj{Kind: NamedObjOpRegion, OpRegion: v}, rest, nil
	} else if isFailure(err) {
		return NamedObj{}, Input{}, err
	}
	if v, rest, err := parsePowerRes(in, ctx); err == nil {
		return NamedObj{Kind: NamedObjPowerRes, PowerRes: v}, rest, nil
	} else if isFailure(err) {
		return NamedObj{}, Input{}, err
	}
	if v, rest, err := parseThermalZone(in, ctx); err == nil {
		return NamedObj{Kind: NamedObjThermalZone, ThermalZone: v}, rest, nil
	} else if isFailure(err) {
		return NamedObj{}, Input{}, err
	}
	if v, rest, err := parseField(in, ctx); err == nil {
		return NamedObj{Kind: NamedObjField, Field: v}, rest, nil
	} else if isFailure(err) {
		return NamedObj{}, Input{}, err
	}
	if v, rest, err := parseMethod(in, ctx); err == nil {
		return NamedObj{Kind: NamedObjMethod, Method: v}, rest, nil
	} else if isFailure(err) {
		return NamedObj{}, Input{}, err
	}
	if v, rest, err := parseDevice(in, ctx); err == nil {
		return NamedObj{Kind: NamedObjDevice, Device: v}, rest, nil
	} else if isFailure(err) {
		return NamedObj{}, Input{}, err
	}
	if v, rest, err := parseEvent(in); err == nil {
		return NamedObj{Kind: NamedObjEvent, Event: v}, rest, nil
	} else if isFailure(err) {
		return NamedObj{}, Input{}, err
	}
	if v, rest, err := parseIndexField(in, ctx); err == nil {
		return NamedObj{Kind: NamedObjIndexField, IndexField: v}, rest, nil
	} else if isFailure(err) {
		return NamedObj{}, Input{}, err
	}
	if v, rest, err := parseMutex(in); err == nil {
		return NamedObj{Kind: NamedObjMutex, Mutex: v}, rest, nil
	} else if isFailure(err) {
		return NamedObj{}, Input{}, err
	}

	v, rest, err := parseProcessor(in, ctx)
	if err != nil {
		return NamedObj{}, Input{}, err
	}
	return NamedObj{Kind: NamedObjProcessor, Processor: v}, rest, nil
}
