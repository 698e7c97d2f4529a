// Package attrlex splits the body of an HLS tag (the text after the
// colon) into either a bare value or an attribute-list mapping, honoring
// quoted strings that may themselves contain commas or equals signs.
package attrlex

// mode is the lexer's current sub-state while walking a tag body.
type mode int

const (
	modeKey mode = iota
	modeValue
)

// Result is the outcome of lexing one tag body.
type Result struct {
	// IsAttributeList is true when at least one unquoted '=' was found
	// before an unquoted comma or end of input, i.e. the body parses as
	// an attribute list rather than a bare value.
	IsAttributeList bool
	// Value holds the bare value when IsAttributeList is false.
	Value string
	// Attributes holds key->value when IsAttributeList is true. Values
	// have at most one surrounding pair of double quotes stripped.
	Attributes map[string]string
}

// Lex classifies and splits a tag body per the HLS attribute-list
// grammar. It never backtracks: it walks the body once, char by char.
func Lex(body string) Result {
	if body == "" {
		return Result{Value: ""}
	}

	attrs := make(map[string]string)
	quoted := false
	m := modeKey
	sawEquals := false
	var keyBuf, valBuf []byte

	commit := func() {
		key := string(keyBuf)
		val := unquote(string(valBuf))
		if key != "" {
			attrs[key] = val
		}
		keyBuf = keyBuf[:0]
		valBuf = valBuf[:0]
	}

	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '"':
			quoted = !quoted
			if m == modeKey {
				keyBuf = append(keyBuf, c)
			} else {
				valBuf = append(valBuf, c)
			}
		case c == ',' && !quoted && !sawEquals:
			// An unquoted comma before any '=': the body is a bare value.
			return Result{Value: body}
		case c == '=' && !quoted && m == modeKey:
			sawEquals = true
			m = modeValue
		case c == ',' && !quoted && m == modeValue:
			commit()
			m = modeKey
		default:
			if m == modeKey {
				keyBuf = append(keyBuf, c)
			} else {
				valBuf = append(valBuf, c)
			}
		}
	}

	if !sawEquals {
		// No '=' ever appeared before a comma or end of input: the
		// whole body is a bare value, per spec.md §4.1 S3.
		return Result{Value: body}
	}

	commit()
	return Result{IsAttributeList: true, Attributes: attrs}
}

// unquote strips a single surrounding pair of double quotes, if present.
// Hex values (0x...) and every other unquoted form are returned as-is;
// typed coercion is the tag processor's job, not the lexer's.
func unquote(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}
