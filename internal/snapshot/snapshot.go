// Package snapshot is the wire format between the analyzer and the code
// generator: a msgpack encoding of a fully resolved program tree. The
// analyzer writes one .qast file per program; the generator reads it back
// into an ast.Program and emits Java from that.
//
// The format is schema-versioned. Decoding a snapshot with a different
// schema number fails outright; there is no migration path, the producer
// just re-exports.
package snapshot

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/text/unicode/norm"

	"quill/internal/ast"
)

// Schema is the current snapshot format version. Bump on any change to the
// DTO layout below.
const Schema uint16 = 1

// ErrSchema reports a snapshot produced with a different schema version.
var ErrSchema = errors.New("snapshot: schema version mismatch")

const (
	stmtExpr uint8 = iota
	stmtDecl
	stmtAssign
	stmtIf
	stmtFor
	stmtWhile
	stmtReturn
)

const (
	exprLiteral uint8 = iota
	exprGroup
	exprBinary
	exprAccess
	exprCall
)

const (
	litString uint8 = iota
	litChar
	litInteger
	litDecimal
	litBool
	litNull
)

type snapshotDTO struct {
	Schema  uint16
	Program programDTO
}

type programDTO struct {
	Fields  []fieldDTO
	Methods []methodDTO
}

type typeDTO struct {
	Name string
}

type variableDTO struct {
	Name string
	Type typeDTO
}

type functionDTO struct {
	Name       string
	ReturnType typeDTO
	ParamTypes []typeDTO
}

type fieldDTO struct {
	Variable variableDTO
	Value    *exprDTO
}

type methodDTO struct {
	Function functionDTO
	Params   []string
	Body     []stmtDTO
}

type stmtDTO struct {
	Kind     uint8
	Variable *variableDTO // declaration
	Name     string       // for-loop variable
	Target   *exprDTO     // assignment receiver
	Value    *exprDTO     // initializer, condition, iterable or return value
	Body     []stmtDTO    // then branch or loop body
	Else     []stmtDTO
}

type exprDTO struct {
	Kind     uint8
	LitKind  uint8
	LitText  string // string value, or canonical decimal text
	LitChar  uint32
	LitBool  bool
	Op       string
	Left     *exprDTO
	Right    *exprDTO
	Inner    *exprDTO // group
	Receiver *exprDTO
	Variable *variableDTO
	Function *functionDTO
	Args     []exprDTO
}

// Encode serializes a resolved program.
func Encode(prog *ast.Program) ([]byte, error) {
	if prog == nil {
		return nil, errors.New("snapshot: nil program")
	}
	dto := snapshotDTO{Schema: Schema}
	dto.Program.Fields = make([]fieldDTO, 0, len(prog.Fields))
	for i := range prog.Fields {
		f, err := encodeField(&prog.Fields[i])
		if err != nil {
			return nil, err
		}
		dto.Program.Fields = append(dto.Program.Fields, f)
	}
	dto.Program.Methods = make([]methodDTO, 0, len(prog.Methods))
	for i := range prog.Methods {
		m, err := encodeMethod(&prog.Methods[i])
		if err != nil {
			return nil, err
		}
		dto.Program.Methods = append(dto.Program.Methods, m)
	}
	return msgpack.Marshal(&dto)
}

// Decode deserializes a snapshot back into a resolved program. All
// rendering names are NFC-normalized so emitted bytes do not depend on the
// producer's Unicode normalization form.
func Decode(data []byte) (*ast.Program, error) {
	var dto snapshotDTO
	if err := msgpack.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	if dto.Schema != Schema {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchema, dto.Schema, Schema)
	}
	prog := &ast.Program{}
	for i := range dto.Program.Fields {
		f, err := decodeField(&dto.Program.Fields[i])
		if err != nil {
			return nil, err
		}
		prog.Fields = append(prog.Fields, f)
	}
	for i := range dto.Program.Methods {
		m, err := decodeMethod(&dto.Program.Methods[i])
		if err != nil {
			return nil, err
		}
		prog.Methods = append(prog.Methods, m)
	}
	return prog, nil
}

func renderName(name string) string {
	return norm.NFC.String(name)
}
