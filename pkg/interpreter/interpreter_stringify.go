package interpreter

import (
	"fmt"
	"strconv"

	"tagl/interpreter-go/pkg/runtime"
)

// ValueToString returns the display form print writes for a value.
func ValueToString(val runtime.Value) string {
	return valueToString(val)
}

func valueToString(val runtime.Value) string {
	switch v := val.(type) {
	case runtime.StringValue:
		return v.Val
	case runtime.IntegerValue:
		return strconv.FormatInt(v.Val, 10)
	case runtime.BoolValue:
		if v.Val {
			return "true"
		}
		return "false"
	case runtime.NullValue:
		return "null"
	case runtime.FunctionValue:
		return fmt.Sprintf("<function %s>", v.Name)
	default:
		return fmt.Sprintf("<%v>", val)
	}
}

// describeValue is the variant-tagged form used in runtime type errors.
func describeValue(val runtime.Value) string {
	switch v := val.(type) {
	case runtime.StringValue:
		return fmt.Sprintf("String(%q)", v.Val)
	case runtime.IntegerValue:
		return fmt.Sprintf("Integer(%d)", v.Val)
	case runtime.BoolValue:
		return fmt.Sprintf("Boolean(%t)", v.Val)
	case runtime.NullValue:
		return "Null"
	case runtime.FunctionValue:
		return fmt.Sprintf("Function(%s)", v.Name)
	default:
		return fmt.Sprintf("%v", val)
	}
}
