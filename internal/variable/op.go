package variable

// Op tags the operator that produced a Variable.
// OpNone marks an independent (leaf) variable.
type Op uint8

// Supported operators.
const (
	OpNone Op = iota
	OpNeg
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
	OpTanh
)

// String returns the operator name.
func (o Op) String() string {
	switch o {
	case OpNone:
		return "none"
	case OpNeg:
		return "neg"
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpPow:
		return "pow"
	case OpTanh:
		return "tanh"
	default:
		return "unknown"
	}
}

// Arity returns the number of operands the operator takes.
func (o Op) Arity() int {
	switch o {
	case OpNone:
		return 0
	case OpNeg, OpTanh:
		return 1
	default:
		return 2
	}
}
