package aml

// Single-byte AML opcodes. Names mirror ACPI 6.x Table 20-3/20-4.
const (
	opZero      byte = 0x00
	opOne       byte = 0x01
	opAlias     byte = 0x06
	opName      byte = 0x08
	opBytePfx   byte = 0x0a
	opWordPfx   byte = 0x0b
	opDWordPfx  byte = 0x0c
	opStringPfx byte = 0x0d
	opQWordPfx  byte = 0x0e
	opScope     byte = 0x10
	opBuffer    byte = 0x11
	opPkg       byte = 0x12
	opVarPkg    byte = 0x13
	opMethod    byte = 0x14
	opExternal  byte = 0x15
	opDualName  byte = 0x2e
	opMultiName byte = 0x2f
	opExtPrefix byte = 0x5b
	opRootChar  byte = 0x5c
	opParentPfx byte = 0x5e
	opLocal0    byte = 0x60
	opLocal7    byte = 0x67
	opArg0      byte = 0x68
	opArg6      byte = 0x6e
	opStore     byte = 0x70
	opRefOf     byte = 0x71
	opAdd       byte = 0x72
	opConcat    byte = 0x73
	opSubtract  byte = 0x74
	opIncrement byte = 0x75
	opDecrement byte = 0x76
	opMultiply  byte = 0x77
	opDivide    byte = 0x78
	opShiftLeft byte = 0x79
	opShiftRight byte = 0x7a
	opAnd       byte = 0x7b
	opNAnd      byte = 0x7c
	opOr        byte = 0x7d
	opNOr       byte = 0x7e
	opXOr       byte = 0x7f
	opNot       byte = 0x80
	opFindSetLeftBit  byte = 0x81
	opFindSetRightBit byte = 0x82
	opDerefOf   byte = 0x83
	opConcatRes byte = 0x84
	opMod       byte = 0x85
	opNotify    byte = 0x86
	opSizeOf    byte = 0x87
	opIndex     byte = 0x88
	opMatch     byte = 0x89
	opCreateDWordField byte = 0x8a
	opCreateWordField  byte = 0x8b
	opCreateByteField  byte = 0x8c
	opCreateBitField   byte = 0x8d
	opObjType   byte = 0x8e
	opCreateQWordField byte = 0x8f
	opLAnd      byte = 0x90
	opLOr       byte = 0x91
	opLNot      byte = 0x92
	opLEqual    byte = 0x93
	opLGreater  byte = 0x94
	opLLess     byte = 0x95
	opToBuffer  byte = 0x96
	opToDecimalString byte = 0x97
	opToHexString     byte = 0x98
	opToInteger byte = 0x99
	opToString  byte = 0x9c
	opCopyObj   byte = 0x9d
	opMid       byte = 0x9e
	opContinue  byte = 0x9f
	opIf        byte = 0xa0
	opElse      byte = 0xa1
	opWhile     byte = 0xa2
	opNoop      byte = 0xa3
	opReturn    byte = 0xa4
	opBreak     byte = 0xa5
	opBreakPoint byte = 0xcc
	opOnes      byte = 0xff
)

// Second byte of the two-byte extended-opcode (0x5b, ...) encoding.
const (
	extMutex       byte = 0x01
	extEvent       byte = 0x02
	extCondRefOf   byte = 0x12
	extCreateField byte = 0x13
	extLoadTable   byte = 0x1f
	extLoad        byte = 0x20
	extStall       byte = 0x21
	extSleep       byte = 0x22
	extAcquire     byte = 0x23
	extSignal      byte = 0x24
	extWait        byte = 0x25
	extReset       byte = 0x26
	extRelease     byte = 0x27
	extFromBCD     byte = 0x28
	extToBCD       byte = 0x29
	extRevision    byte = 0x30
	extDebug       byte = 0x31
	extFatal       byte = 0x32
	extTimer       byte = 0x33
	extOpRegion    byte = 0x80
	extField       byte = 0x81
	extDevice      byte = 0x82
	extProcessor   byte = 0x83
	extPowerRes    byte = 0x84
	extThermalZone byte = 0x85
	extIndexField  byte = 0x86
	extBankField   byte = 0x87
	extDataRegion  byte = 0x88
)

// LNotEqual, LLessEqual and LGreaterEqual are encoded as LNot (0x92)
// followed by LEqual/LGreater/LLess respectively, per ACPI 6.x §20.2.5;
// they reuse the single-byte opcodes above rather than needing their own
// constants.
