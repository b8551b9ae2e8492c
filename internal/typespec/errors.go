package typespec

import (
	"errors"
	"fmt"

	"github.com/funvibe/typespec/internal/token"
)

// ErrorCode categorizes compilation errors. Every error produced by
// this package is fatal to the enclosing module's compilation.
type ErrorCode string

const (
	CodeInvalidSpecification      ErrorCode = "invalid_specification"
	CodeUnexpectedExpression      ErrorCode = "unexpected_expression"
	CodeUndefinedType             ErrorCode = "undefined_type"
	CodeUndefinedFunctionSpec     ErrorCode = "undefined_function_spec"
	CodeBuiltinOverride           ErrorCode = "builtin_override"
	CodeInvalidBinarySpec         ErrorCode = "invalid_binary_spec"
	CodeInvalidMapSpec            ErrorCode = "invalid_map_spec"
	CodeStructNotDefined          ErrorCode = "struct_not_defined"
	CodeUndefinedStructField      ErrorCode = "undefined_struct_field"
	CodeUnknownRecord             ErrorCode = "unknown_record"
	CodeUndefinedRecordField      ErrorCode = "undefined_record_field"
	CodeUnresolvedModuleRef       ErrorCode = "unresolved_module_reference"
	CodeInvalidOptionalCallback   ErrorCode = "invalid_optional_callback"
	CodeUnknownOptionalCallback   ErrorCode = "unknown_optional_callback"
	CodeDuplicateOptionalCallback ErrorCode = "duplicate_optional_callback"
	CodeMissingReturnType         ErrorCode = "missing_return_type"
	CodeDefaultArgument           ErrorCode = "default_argument_unsupported"
	CodeDuplicateTypeDefinition   ErrorCode = "duplicate_type_definition"
)

// Error is a fatal typespec compilation error. Name and Arity identify
// the declaration being compiled when that is known.
type Error struct {
	Code    ErrorCode
	Message string
	Name    string
	Arity   int
	Pos     token.Pos
}

func (e *Error) Error() string {
	where := ""
	if e.Name != "" {
		where = fmt.Sprintf(" in %s/%d", e.Name, e.Arity)
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s%s", e.Pos, e.Message, where)
	}
	return e.Message + where
}

// Is allows errors.Is matching against a bare *Error carrying only a
// code: errors.Is(err, &Error{Code: CodeUndefinedType}).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func newError(code ErrorCode, pos token.Pos, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	}
}

// CodeOf extracts the ErrorCode from err, or "" when err is not a
// typespec error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
