// Package op defines the opcodes that tag every expression node in Creek
// bytecode. The evaluator and the bytecode codec share this one table.
//
// Once a value is assigned to a node kind it is never reused for another,
// so previously written bytecode files keep decoding to the same tree.
package op

import "fmt"

// Code is the one-byte tag written before every node encoding.
type Code uint8

const (
	// Debug
	Nop   Code = 0x00
	Print Code = 0x01

	// Arithmetic
	Add    Code = 0x10
	Sub    Code = 0x11
	Mul    Code = 0x12
	Div    Code = 0x13
	Mod    Code = 0x14
	Exp    Code = 0x15
	Negate Code = 0x16

	// Bitwise
	BitAnd        Code = 0x17
	BitOr         Code = 0x18
	BitXor        Code = 0x19
	BitNot        Code = 0x1A
	BitShiftLeft  Code = 0x1B
	BitShiftRight Code = 0x1C

	// Boolean
	BoolAnd Code = 0x1D
	BoolOr  Code = 0x1E
	BoolXor Code = 0x1F
	BoolNot Code = 0x20

	// Comparison
	Cmp Code = 0x21
	EQ  Code = 0x22
	NE  Code = 0x23
	LT  Code = 0x24
	LE  Code = 0x25
	GT  Code = 0x26
	GE  Code = 0x27

	// Data types
	DataVoid       Code = 0x30
	DataNull       Code = 0x31
	DataBoolean    Code = 0x32
	DataNumber     Code = 0x33
	DataString     Code = 0x34
	DataIdentifier Code = 0x35
	DataVector     Code = 0x36
	DataMap        Code = 0x37
	DataFunction   Code = 0x38
	DataClass      Code = 0x39

	// Control flow
	ControlBlock  Code = 0x40
	ControlDo     Code = 0x41
	ControlIf     Code = 0x42
	ControlSwitch Code = 0x43
	ControlLoop   Code = 0x44
	ControlWhile  Code = 0x45
	ControlFor    Code = 0x46
	ControlForIn  Code = 0x47
	ControlTry    Code = 0x48
	ControlThrow  Code = 0x49
	ControlReturn Code = 0x4A
	ControlBreak  Code = 0x4B

	// General
	Call               Code = 0x50
	VariadicCall       Code = 0x51
	CallMethod         Code = 0x52
	VariadicCallMethod Code = 0x53
	IndexGet           Code = 0x54
	IndexSet           Code = 0x55
	AttrGet            Code = 0x56
	AttrSet            Code = 0x57

	// Variables
	VarCreateLocal  Code = 0x60
	VarLoadLocal    Code = 0x61
	VarStoreLocal   Code = 0x62
	VarCreateGlobal Code = 0x63
	VarLoadGlobal   Code = 0x64
	VarStoreGlobal  Code = 0x65

	// Dynamic load
	DynFunc  Code = 0x70
	DynClass Code = 0x71
	DynVar   Code = 0x72
)

// Family groups opcodes the way the node set is organized.
type Family uint8

const (
	FamilyInvalid Family = iota
	FamilyDebug
	FamilyArithmetic
	FamilyBitwise
	FamilyBoolean
	FamilyComparison
	FamilyData
	FamilyControl
	FamilyGeneral
	FamilyVariable
	FamilyDynLoad
)

// String returns the lowercase family name.
func (f Family) String() string {
	switch f {
	case FamilyDebug:
		return "debug"
	case FamilyArithmetic:
		return "arithmetic"
	case FamilyBitwise:
		return "bitwise"
	case FamilyBoolean:
		return "boolean"
	case FamilyComparison:
		return "comparison"
	case FamilyData:
		return "data"
	case FamilyControl:
		return "control"
	case FamilyGeneral:
		return "general"
	case FamilyVariable:
		return "variable"
	case FamilyDynLoad:
		return "dynload"
	default:
		return "invalid"
	}
}

// Info contains information about an opcode.
type Info struct {
	Code   Code
	Name   string
	Family Family
}

var infos [256]Info

func init() {
	ops := []Info{
		{Nop, "NOP", FamilyDebug},
		{Print, "PRINT", FamilyDebug},

		{Add, "ADD", FamilyArithmetic},
		{Sub, "SUB", FamilyArithmetic},
		{Mul, "MUL", FamilyArithmetic},
		{Div, "DIV", FamilyArithmetic},
		{Mod, "MOD", FamilyArithmetic},
		{Exp, "EXP", FamilyArithmetic},
		{Negate, "NEGATE", FamilyArithmetic},

		{BitAnd, "BIT_AND", FamilyBitwise},
		{BitOr, "BIT_OR", FamilyBitwise},
		{BitXor, "BIT_XOR", FamilyBitwise},
		{BitNot, "BIT_NOT", FamilyBitwise},
		{BitShiftLeft, "BIT_SHIFT_LEFT", FamilyBitwise},
		{BitShiftRight, "BIT_SHIFT_RIGHT", FamilyBitwise},

		{BoolAnd, "BOOL_AND", FamilyBoolean},
		{BoolOr, "BOOL_OR", FamilyBoolean},
		{BoolXor, "BOOL_XOR", FamilyBoolean},
		{BoolNot, "BOOL_NOT", FamilyBoolean},

		{Cmp, "CMP", FamilyComparison},
		{EQ, "EQ", FamilyComparison},
		{NE, "NE", FamilyComparison},
		{LT, "LT", FamilyComparison},
		{LE, "LE", FamilyComparison},
		{GT, "GT", FamilyComparison},
		{GE, "GE", FamilyComparison},

		{DataVoid, "DATA_VOID", FamilyData},
		{DataNull, "DATA_NULL", FamilyData},
		{DataBoolean, "DATA_BOOLEAN", FamilyData},
		{DataNumber, "DATA_NUMBER", FamilyData},
		{DataString, "DATA_STRING", FamilyData},
		{DataIdentifier, "DATA_IDENTIFIER", FamilyData},
		{DataVector, "DATA_VECTOR", FamilyData},
		{DataMap, "DATA_MAP", FamilyData},
		{DataFunction, "DATA_FUNCTION", FamilyData},
		{DataClass, "DATA_CLASS", FamilyData},

		{ControlBlock, "CONTROL_BLOCK", FamilyControl},
		{ControlDo, "CONTROL_DO", FamilyControl},
		{ControlIf, "CONTROL_IF", FamilyControl},
		{ControlSwitch, "CONTROL_SWITCH", FamilyControl},
		{ControlLoop, "CONTROL_LOOP", FamilyControl},
		{ControlWhile, "CONTROL_WHILE", FamilyControl},
		{ControlFor, "CONTROL_FOR", FamilyControl},
		{ControlForIn, "CONTROL_FOR_IN", FamilyControl},
		{ControlTry, "CONTROL_TRY", FamilyControl},
		{ControlThrow, "CONTROL_THROW", FamilyControl},
		{ControlReturn, "CONTROL_RETURN", FamilyControl},
		{ControlBreak, "CONTROL_BREAK", FamilyControl},

		{Call, "CALL", FamilyGeneral},
		{VariadicCall, "VARIADIC_CALL", FamilyGeneral},
		{CallMethod, "CALL_METHOD", FamilyGeneral},
		{VariadicCallMethod, "VARIADIC_CALL_METHOD", FamilyGeneral},
		{IndexGet, "INDEX_GET", FamilyGeneral},
		{IndexSet, "INDEX_SET", FamilyGeneral},
		{AttrGet, "ATTR_GET", FamilyGeneral},
		{AttrSet, "ATTR_SET", FamilyGeneral},

		{VarCreateLocal, "VAR_CREATE_LOCAL", FamilyVariable},
		{VarLoadLocal, "VAR_LOAD_LOCAL", FamilyVariable},
		{VarStoreLocal, "VAR_STORE_LOCAL", FamilyVariable},
		{VarCreateGlobal, "VAR_CREATE_GLOBAL", FamilyVariable},
		{VarLoadGlobal, "VAR_LOAD_GLOBAL", FamilyVariable},
		{VarStoreGlobal, "VAR_STORE_GLOBAL", FamilyVariable},

		{DynFunc, "DYN_FUNC", FamilyDynLoad},
		{DynClass, "DYN_CLASS", FamilyDynLoad},
		{DynVar, "DYN_VAR", FamilyDynLoad},
	}
	for _, o := range ops {
		infos[o.Code] = o
	}
}

// GetInfo returns information about the given opcode. Unassigned codes
// return an Info with an empty name and FamilyInvalid.
func GetInfo(code Code) Info {
	return infos[code]
}

// IsValid reports whether the code is assigned to a node kind.
func (c Code) IsValid() bool {
	return infos[c].Family != FamilyInvalid
}

// String returns the opcode name, or a hex literal for unassigned codes.
func (c Code) String() string {
	if name := infos[c].Name; name != "" {
		return name
	}
	return fmt.Sprintf("0x%02X", uint8(c))
}

// All returns every assigned opcode in ascending order.
func All() []Code {
	var codes []Code
	for i := range infos {
		if infos[i].Family != FamilyInvalid {
			codes = append(codes, Code(i))
		}
	}
	return codes
}
