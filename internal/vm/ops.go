package vm

import "github.com/aketzali/minic/internal/pcode"

// arith pops two operands and pushes the arithmetic result. Integer
// operands stay integer (truncating division/modulo); either operand being
// float promotes the whole operation to float, mirroring the semantic
// analyser's own int/float promotion rule.
func (m *Machine) arith(op pcode.Mnemonic) error {
	b, err := m.pop()
	if err != nil {
		return err
	}
	a, err := m.pop()
	if err != nil {
		return err
	}

	if !a.isFloat && !b.isFloat {
		switch op {
		case pcode.Adi:
			m.push(intVal(a.i + b.i))
		case pcode.Sbi:
			m.push(intVal(a.i - b.i))
		case pcode.Mpi:
			m.push(intVal(a.i * b.i))
		case pcode.Dvi:
			if b.i == 0 {
				m.warnf("division by zero at pc=%d", m.pc)
				m.push(intVal(0))
				return nil
			}
			m.push(intVal(a.i / b.i))
		case pcode.Mod:
			if b.i == 0 {
				m.warnf("division by zero at pc=%d", m.pc)
				m.push(intVal(0))
				return nil
			}
			m.push(intVal(a.i % b.i))
		case pcode.Pot:
			m.push(intVal(intPow(a.i, b.i)))
		}
		return nil
	}

	af, bf := a.asFloat(), b.asFloat()
	switch op {
	case pcode.Adi:
		m.push(floatVal(af + bf))
	case pcode.Sbi:
		m.push(floatVal(af - bf))
	case pcode.Mpi:
		m.push(floatVal(af * bf))
	case pcode.Dvi:
		if bf == 0 {
			m.warnf("division by zero at pc=%d", m.pc)
			m.push(floatVal(0))
			return nil
		}
		m.push(floatVal(af / bf))
	case pcode.Mod:
		m.push(floatVal(0))
	case pcode.Pot:
		m.push(floatVal(floatPow(af, bf)))
	}
	return nil
}

func (m *Machine) compare(op pcode.Mnemonic) error {
	b, err := m.pop()
	if err != nil {
		return err
	}
	a, err := m.pop()
	if err != nil {
		return err
	}
	af, bf := a.asFloat(), b.asFloat()
	var result bool
	switch op {
	case pcode.Les:
		result = af < bf
	case pcode.Leq:
		result = af <= bf
	case pcode.Grt:
		result = af > bf
	case pcode.Geq:
		result = af >= bf
	case pcode.Equ:
		result = af == bf
	case pcode.Neq:
		result = af != bf
	}
	m.push(boolVal(result))
	return nil
}

func (m *Machine) logic(op pcode.Mnemonic) error {
	b, err := m.pop()
	if err != nil {
		return err
	}
	a, err := m.pop()
	if err != nil {
		return err
	}
	if op == pcode.And {
		m.push(boolVal(a.truthy() && b.truthy()))
	} else {
		m.push(boolVal(a.truthy() || b.truthy()))
	}
	return nil
}

func intPow(base, exp int64) int64 {
	if exp < 0 {
		return 0
	}
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	return result
}

func floatPow(base, exp float64) float64 {
	neg := exp < 0
	if neg {
		exp = -exp
	}
	result := 1.0
	for i := 0.0; i < exp; i++ {
		result *= base
	}
	if neg && result != 0 {
		return 1 / result
	}
	return result
}
