// Package sqlmap translates a parsed SPARQL Query AST into a single
// parameterized SQL statement against the Node/Quad schema, plus a Plan
// describing how to read projected columns back out of each result row.
package sqlmap

import (
	"fmt"
	"strings"

	"github.com/quiesnet/rdfstore/internal/sparql"
	"github.com/quiesnet/rdfstore/internal/xsdtype"
)

// Lookup resolves (lexical, datatype) to a Node id without creating one;
// sqlmap.Map calls this once per resource/literal term in the pattern to
// materialize its id as a query parameter. A miss is reported via ok=false,
// not an error - the mapper substitutes a sentinel id so the generated
// query correctly returns zero rows rather than failing.
type Lookup func(lexical string, datatype int64) (id int64, ok bool, err error)

// missingNodeID never matches a real row: Node.oid is always non-negative.
const missingNodeID int64 = -1

type binding struct {
	alias    string
	col      string
	resource bool
}

type mapper struct {
	lookup     Lookup
	bindings   map[string]binding
	aliasCount int
	args       []any
}

func (m *mapper) allocAlias() string {
	alias := fmt.Sprintf("q%d", m.aliasCount)
	m.aliasCount++
	return alias
}

func (m *mapper) resolve(lexical string, datatype int64) (int64, error) {
	id, ok, err := m.lookup(lexical, datatype)
	if err != nil {
		return 0, err
	}
	if !ok {
		return missingNodeID, nil
	}
	return id, nil
}

// mapQuad allocates a fresh alias for one mandatory quad and returns the
// join fragment for it, recording or constraining variable bindings for
// its subject/predicate/object. The AST's graph position is never
// translated: named-graph scoping is out of scope, so it carries no
// column in the Quad table.
func (m *mapper) mapQuad(q sparql.Quad, joinKeyword string) (string, error) {
	alias := m.allocAlias()

	positions := [3]struct {
		col  string
		node sparql.Node
	}{
		{"s", q.Subject},
		{"p", q.Predicate},
		{"o", q.Object},
	}

	var conds []string
	for _, pos := range positions {
		cond, err := m.mapPosition(alias, pos.col, pos.node)
		if err != nil {
			return "", err
		}
		if cond != "" {
			conds = append(conds, cond)
		}
	}

	on := "1 = 1"
	if len(conds) > 0 {
		on = strings.Join(conds, " AND ")
	}
	return fmt.Sprintf("%s Quad %s ON %s", joinKeyword, alias, on), nil
}

func (m *mapper) mapPosition(alias, col string, node sparql.Node) (string, error) {
	switch n := node.(type) {
	case sparql.UnboundNode:
		return "", nil

	case sparql.VariableNode:
		if existing, seen := m.bindings[n.Name]; seen {
			return fmt.Sprintf("%s.%s = %s.%s", alias, col, existing.alias, existing.col), nil
		}
		// "g, s, p" positions are resource-typed by construction; "o" is
		// the only position that can bind to a literal.
		m.bindings[n.Name] = binding{alias: alias, col: col, resource: col != "o"}
		return "", nil

	case sparql.ResourceNode:
		id, err := m.resolve(n.IRI, int64(xsdtype.IRI))
		if err != nil {
			return "", err
		}
		m.args = append(m.args, id)
		return fmt.Sprintf("%s.%s = ?", alias, col), nil

	case sparql.LiteralNode:
		datatype := int64(xsdtype.Plain)
		if n.Datatype != "" {
			dtID, err := m.resolve(n.Datatype, int64(xsdtype.IRI))
			if err != nil {
				return "", err
			}
			datatype = dtID
		}
		id, err := m.resolve(n.Lexical, datatype)
		if err != nil {
			return "", err
		}
		m.args = append(m.args, id)
		return fmt.Sprintf("%s.%s = ?", alias, col), nil

	default:
		return "", &SemanticError{Reason: fmt.Sprintf("unsupported node kind %T", node)}
	}
}

func (m *mapper) mapPattern(pattern sparql.Pattern, joinKeyword string) ([]string, error) {
	var frags []string
	for _, q := range pattern.Mandatory {
		frag, err := m.mapQuad(q, joinKeyword)
		if err != nil {
			return nil, err
		}
		frags = append(frags, frag)
	}
	for _, sub := range pattern.Optional {
		subFrags, err := m.mapPattern(*sub, "LEFT JOIN")
		if err != nil {
			return nil, err
		}
		frags = append(frags, subFrags...)
	}
	return frags, nil
}

// renderOrderExpr renders the one expression shape the translator supports:
// a bare bound variable. Any other operator is a documented deficiency of
// the translator, not of the AST, and is reported as a SemanticError.
func (m *mapper) renderOrderExpr(e sparql.Expr) (string, error) {
	ve, ok := e.(sparql.ValueExpr)
	if !ok {
		return "", &SemanticError{Reason: "unsupported expression operator in ORDER BY"}
	}
	v, ok := ve.Node.(sparql.VariableNode)
	if !ok {
		return "", &SemanticError{Reason: "unsupported expression operator in ORDER BY"}
	}
	b, ok := m.bindings[v.Name]
	if !ok {
		return "", &SemanticError{Reason: fmt.Sprintf("variable %q is never bound", v.Name)}
	}
	return fmt.Sprintf("(SELECT l FROM Node WHERE oid=%s.%s)", b.alias, b.col), nil
}

// Map translates q into a parameterized SQL statement plus the Plan needed
// to decode its result rows. lookup must never create a Node: a term with
// no matching id still produces valid, always-empty-result SQL.
func Map(q *sparql.Query, lookup Lookup) (sqlText string, args []any, plan Plan, err error) {
	m := &mapper{lookup: lookup, bindings: make(map[string]binding)}

	joinFrags, err := m.mapPattern(q.Pattern, "JOIN")
	if err != nil {
		return "", nil, Plan{}, err
	}

	var selectCols []string
	for _, name := range q.Projection {
		b, ok := m.bindings[name]
		if !ok {
			return "", nil, Plan{}, &SemanticError{Reason: fmt.Sprintf("projected variable %q is never bound", name)}
		}
		lexCol := fmt.Sprintf("(SELECT l FROM Node WHERE oid=%s.%s)", b.alias, b.col)
		if b.resource {
			selectCols = append(selectCols, lexCol)
		} else {
			dtCol := fmt.Sprintf("(SELECT d.l FROM Node n JOIN Node d ON n.d=d.oid WHERE n.oid=%s.%s)", b.alias, b.col)
			selectCols = append(selectCols, dtCol, lexCol)
		}
		plan.Columns = append(plan.Columns, ProjectionCol{Name: name, Resource: b.resource})
	}

	distinct := ""
	if q.Distinct {
		distinct = "DISTINCT "
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(distinct)
	sb.WriteString(strings.Join(selectCols, ", "))
	sb.WriteString(" FROM (SELECT NULL) ")
	sb.WriteString(strings.Join(joinFrags, " "))

	if len(q.Order) > 0 {
		var parts []string
		for _, oc := range q.Order {
			expr, err := m.renderOrderExpr(oc.Expr)
			if err != nil {
				return "", nil, Plan{}, err
			}
			if oc.Desc {
				expr += " DESC"
			}
			parts = append(parts, expr)
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(parts, ", "))
	}

	switch {
	case q.Limit >= 0:
		fmt.Fprintf(&sb, " LIMIT %d", q.Limit)
		if q.Offset >= 0 {
			fmt.Fprintf(&sb, " OFFSET %d", q.Offset)
		}
	case q.Offset >= 0:
		fmt.Fprintf(&sb, " LIMIT -1 OFFSET %d", q.Offset)
	}

	return sb.String(), m.args, plan, nil
}
