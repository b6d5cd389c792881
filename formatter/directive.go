// FILE: lixenwraith/ulog/formatter/directive.go
package formatter

// directive is one parsed conversion specifier
type directive struct {
	plus  bool
	fill  byte // 0 when no width was given
	width int
	prec  int // -1 when absent
	verb  byte
}

// padWidth is the rendered field width; a precision widens the field by the fraction part
func (d *directive) padWidth() int {
	if d.width == 0 {
		return 0
	}
	if d.prec > 0 {
		return d.width + 1 + d.prec
	}
	return d.width
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// parseDirective reads flags, width, precision and size hint starting just after '%'
// and returns the directive and the index following the verb
func parseDirective(template string, start, i int) (directive, int, error) {
	d := directive{prec: -1}

	if i < len(template) && template[i] == '+' {
		d.plus = true
		i++
	}

	if i < len(template) && isDigit(template[i]) {
		d.fill = ' '
		if template[i] == '0' {
			d.fill = '0'
		}
		for i < len(template) && isDigit(template[i]) {
			d.width = d.width*10 + int(template[i]-'0')
			i++
		}
	}

	if i < len(template) && template[i] == '.' {
		i++
		d.prec = 0
		for i < len(template) && isDigit(template[i]) {
			d.prec = d.prec*10 + int(template[i]-'0')
			i++
		}
	}

	if i < len(template) {
		switch template[i] {
		case 'z', 'h', 'l', 'L':
			i++
			if i >= len(template) {
				return d, i, newError(template, start, 0, reasonSizeHint)
			}
		}
	}

	if i >= len(template) {
		return d, i, newError(template, start, 0, reasonUnterminated)
	}

	d.verb = template[i]
	return d, i + 1, nil
}
