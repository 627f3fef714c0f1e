// Package coil implements the COIL object container format: a header,
// typed sections with owned payloads, a symbol table, relocations and an
// interned string table, with a byte-exact binary encoding.
package coil

import "fmt"

// Magic is the four-byte signature at the start of every COIL object.
var Magic = [4]byte{'C', 'O', 'I', 'L'}

const (
	VersionMajor = 1
	VersionMinor = 0
	VersionPatch = 0
)

// MakeVersion packs major.minor.patch into a single integer as stored in
// the header.
func MakeVersion(major, minor, patch uint8) uint32 {
	return uint32(major)<<16 | uint32(minor)<<8 | uint32(patch)
}

func VersionParts(v uint32) (major, minor, patch uint8) {
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}

// CurrentVersion is the format version written by this package.
var CurrentVersion = MakeVersion(VersionMajor, VersionMinor, VersionPatch)

// Object-level flags.
type ObjectFlag uint32

const (
	ObjectFlagExecutable ObjectFlag = 1 << iota
	ObjectFlagShared
	ObjectFlagPIC
	ObjectFlagDebugInfo
	ObjectFlagRelocatable
	ObjectFlagPUSpecific
)

// Endianness of section payload contents. The container encoding itself
// is always little-endian.
const (
	EndianLittle uint8 = 0
	EndianBig    uint8 = 1
)

// Processing-unit kinds for the target triple.
type ProcessingUnit uint32

const (
	PUNone ProcessingUnit = iota
	PUCPU
	PUGPU
	PUNPU
	PUDSP
)

// Architectures for the target triple.
type Architecture uint32

const (
	ArchNone Architecture = iota
	ArchX86
	ArchX8664
	ArchARM
	ArchARM64
	ArchRISCV32
	ArchRISCV64
)

// Target modes for the target triple.
type Mode uint32

const (
	ModeNone Mode = iota
	Mode16
	Mode32
	Mode64
)

type SectionType uint32

const (
	SectionNull SectionType = iota
	SectionCode
	SectionData
	SectionROData
	SectionBSS
	SectionSymTab
	SectionStrTab
	SectionReloc
	SectionDebug
	SectionComment
	SectionNote
	SectionSpecial
)

func (t SectionType) String() string {
	switch t {
	case SectionCode:
		return "CODE"
	case SectionData:
		return "DATA"
	case SectionROData:
		return "RODATA"
	case SectionBSS:
		return "BSS"
	case SectionSymTab:
		return "SYMTAB"
	case SectionStrTab:
		return "STRTAB"
	case SectionReloc:
		return "RELOC"
	case SectionDebug:
		return "DEBUG"
	case SectionComment:
		return "COMMENT"
	case SectionNote:
		return "NOTE"
	case SectionSpecial:
		return "SPECIAL"
	}
	return fmt.Sprintf("SectionType(%d)", uint32(t))
}

type SectionFlag uint32

const (
	SectionFlagWritable SectionFlag = 1 << iota
	SectionFlagExecutable
	SectionFlagInitialized
	SectionFlagAlloc
	SectionFlagMergeable
	SectionFlagStrings
	SectionFlagSymTab
	SectionFlagTLS
	SectionFlagGroup
)

type SymbolType uint16

const (
	SymbolNoType SymbolType = iota
	SymbolFunction
	SymbolData
	SymbolSection
	SymbolFile
	SymbolCommon
	SymbolTLS
)

type SymbolBinding uint16

const (
	BindLocal SymbolBinding = iota
	BindGlobal
	BindWeak
	BindUnique
)

func (b SymbolBinding) String() string {
	switch b {
	case BindLocal:
		return "LOCAL"
	case BindGlobal:
		return "GLOBAL"
	case BindWeak:
		return "WEAK"
	case BindUnique:
		return "UNIQUE"
	}
	return fmt.Sprintf("SymbolBinding(%d)", uint16(b))
}

type SymbolVisibility uint16

const (
	VisDefault SymbolVisibility = iota
	VisInternal
	VisHidden
	VisProtected
)

type RelocationType uint32

const (
	RelocNone RelocationType = iota
	RelocAbs32
	RelocAbs64
	RelocPCRel32
	RelocPCRel64
	RelocGOTRel
	RelocPLTRel
)

func (t RelocationType) String() string {
	switch t {
	case RelocAbs32:
		return "ABS32"
	case RelocAbs64:
		return "ABS64"
	case RelocPCRel32:
		return "PCREL32"
	case RelocPCRel64:
		return "PCREL64"
	case RelocGOTRel:
		return "GOTREL"
	case RelocPLTRel:
		return "PLTREL"
	}
	return fmt.Sprintf("RelocationType(%d)", uint32(t))
}
