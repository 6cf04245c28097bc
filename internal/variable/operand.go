package variable

// Operand is a value that can take part in Variable arithmetic:
// a *Variable or a Const.
type Operand interface {
	promote() *Variable
}

// Const is a bare number used as an operand.
// Each use promotes it to a new independent Variable.
type Const float64

func (c Const) promote() *Variable {
	return New(float64(c))
}

func (v *Variable) promote() *Variable {
	return v
}

// Promote converts an operand into a Variable. Variables are returned as is;
// constants become new leaves.
func Promote(o Operand) *Variable {
	return o.promote()
}

// Add returns a + b. Either side may be a constant.
func Add(a, b Operand) *Variable {
	return Promote(a).Add(b)
}

// Sub returns a - b.
func Sub(a, b Operand) *Variable {
	return Promote(a).Sub(b)
}

// Mul returns a * b.
func Mul(a, b Operand) *Variable {
	return Promote(a).Mul(b)
}

// Div returns a / b.
func Div(a, b Operand) *Variable {
	return Promote(a).Div(b)
}

// Pow returns a ** b.
func Pow(a, b Operand) *Variable {
	return Promote(a).Pow(b)
}

// Neg returns -a.
func Neg(a Operand) *Variable {
	return Promote(a).Neg()
}

// Tanh returns tanh(a).
func Tanh(a Operand) *Variable {
	return Promote(a).Tanh()
}
