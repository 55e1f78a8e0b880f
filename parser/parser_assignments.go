package parser

// ExprToPattern converts an expression parsed as an assignment's left-hand
// side ("[a, b] = pair", "{x} = obj") into a Pattern. The interpreter's
// assignment path does not call it; it destructures array/object literal
// targets directly. Array/object literals convert
// element-by-element; anything else (an Identifier or a MemberExpression)
// is already a valid simple assignment target and is wrapped verbatim.
func ExprToPattern(e Expression) Pattern {
	switch v := e.(type) {
	case *ArrayLiteral:
		pat := &ArrayPattern{}
		for _, el := range v.Elements {
			if el.Expr == nil {
				pat.Elements = append(pat.Elements, nil)
				continue
			}
			if el.Spread {
				pat.Rest = ExprToPattern(el.Expr)
				continue
			}
			pat.Elements = append(pat.Elements, exprToPatternWithDefault(el.Expr))
		}
		return pat
	case *ObjectLiteral:
		pat := &ObjectPattern{}
		for _, prop := range v.Properties {
			if prop.Spread {
				pat.Rest = ExprToPattern(prop.Value)
				continue
			}
			pat.Properties = append(pat.Properties, ObjectPatternProperty{
				Key:      prop.Key,
				Computed: prop.Computed,
				Value:    exprToPatternWithDefault(prop.Value),
			})
		}
		return pat
	case *Identifier:
		return &IdentifierPattern{Name: v.Name}
	default:
		// A MemberExpression or other simple assignment target: wrap it as
		// an opaque pattern the interpreter assigns to directly rather than
		// binds, distinguished by type switch at evaluation time.
		return &ExpressionPattern{Expr: e}
	}
}

func exprToPatternWithDefault(e Expression) Pattern {
	if assign, ok := e.(*AssignmentExpression); ok {
		return &DefaultPattern{Target: ExprToPattern(assign.Target), Default: assign.Value}
	}
	return ExprToPattern(e)
}

// ExpressionPattern wraps a non-destructuring assignment target (a member
// expression, e.g. "obj.x = ..." or "arr[i] = ...") so it can flow through
// Pattern-typed destructuring code paths; the interpreter assigns to Expr
// directly instead of binding a name.
type ExpressionPattern struct {
	Expr Expression
}

func (p *ExpressionPattern) Literal() string { return p.Expr.Literal() }
func (p *ExpressionPattern) patternNode()    {}
