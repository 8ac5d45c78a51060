package evaluator

import "fmt"

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

func newError(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

func newErrorWithLocation(line, column int, format string, args ...interface{}) *Error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Line:    line,
		Column:  column,
	}
}

// newErrorWithStack snapshots the evaluator call stack so the runtime
// report can show where the failure happened.
func (e *Evaluator) newErrorWithStack(line, column int, format string, args ...interface{}) *Error {
	err := newErrorWithLocation(line, column, format, args...)
	for i := len(e.CallStack) - 1; i >= 0; i-- {
		frame := e.CallStack[i]
		err.StackTrace = append(err.StackTrace, StackFrame{
			Name:   frame.Name,
			Line:   frame.Line,
			Column: frame.Column,
		})
	}
	return err
}

func isError(obj Object) bool {
	if obj == nil {
		return false
	}
	_, ok := obj.(*Error)
	return ok
}

func isTruthy(obj Object) bool {
	switch obj := obj.(type) {
	case *Boolean:
		return obj.Value
	case *Nil:
		return false
	default:
		return true
	}
}

func nativeBoolToBooleanObject(input bool) *Boolean {
	if input {
		return TRUE
	}
	return FALSE
}

func isNumeric(obj Object) bool {
	switch obj.(type) {
	case *Integer, *Float:
		return true
	}
	return false
}

func toFloat(obj Object) float64 {
	switch obj := obj.(type) {
	case *Integer:
		return float64(obj.Value)
	case *Float:
		return obj.Value
	}
	return 0
}

// objectsEqual implements == over the primitive types. Composite
// values compare by identity.
func objectsEqual(left, right Object) bool {
	switch left := left.(type) {
	case *Integer:
		if r, ok := right.(*Integer); ok {
			return left.Value == r.Value
		}
		if r, ok := right.(*Float); ok {
			return float64(left.Value) == r.Value
		}
	case *Float:
		if r, ok := right.(*Float); ok {
			return left.Value == r.Value
		}
		if r, ok := right.(*Integer); ok {
			return left.Value == float64(r.Value)
		}
	case *String:
		if r, ok := right.(*String); ok {
			return left.Value == r.Value
		}
	case *Boolean:
		if r, ok := right.(*Boolean); ok {
			return left.Value == r.Value
		}
	case *Nil:
		_, ok := right.(*Nil)
		return ok
	}
	return left == right
}
