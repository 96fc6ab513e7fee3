package turtle

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Row is one subject/predicate/object tuple as read from the store, in the
// order an Exporter expects: grouped by subject, then by predicate.
type Row struct {
	SubjectIRI   string
	PredicateIRI string

	// ObjectIsResource selects between ObjectIRI and the
	// ObjectLexical/ObjectDatatype pair.
	ObjectIsResource bool
	ObjectIRI        string

	// ObjectDatatype is "" for a plain literal, or the full datatype IRI
	// for a typed literal.
	ObjectLexical  string
	ObjectDatatype string
}

// errWriter wraps an io.Writer, remembering the first write error so that a
// long sequence of unconditional writes doesn't need an error check after
// every single one.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) WriteString(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

func (ew *errWriter) WriteByte(c byte) {
	if ew.err != nil {
		return
	}
	_, ew.err = ew.w.Write([]byte{c})
}

// abbreviate renders a 1-based counter as a bijective base-26 string:
// 1->a, 2->b, ..., 26->z, 27->aa, 28->ab, ...
func abbreviate(n int) string {
	var buf []byte
	for n != 0 {
		buf = append(buf, byte('a'+(n-1)%26))
		n = (n - 1) / 26
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

func writeEscaped(buf *bytes.Buffer, s string, extra byte) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\t':
			buf.WriteString(`\t`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\\':
			buf.WriteString(`\\`)
		default:
			if c == extra {
				buf.WriteByte('\\')
			}
			buf.WriteByte(c)
		}
	}
}

func writeURI(buf *bytes.Buffer, uri string) {
	buf.WriteByte('<')
	writeEscaped(buf, uri, '>')
	buf.WriteByte('>')
}

func writeLiteral(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	writeEscaped(buf, s, '"')
	buf.WriteByte('"')
}

// splitNamespace splits uri at its last '#', inclusive, for prefix
// abbreviation; IRIs with no '#' fall back to splitting at the last '/' so
// that path-style vocabularies (no fragment separator at all) still
// abbreviate. An IRI with neither is left unabbreviated.
func splitNamespace(uri string) (ns, local string, ok bool) {
	i := strings.LastIndexByte(uri, '#')
	if i < 0 {
		i = strings.LastIndexByte(uri, '/')
	}
	if i < 0 {
		return "", "", false
	}
	return uri[:i+1], uri[i+1:], true
}

// Exporter serializes subject-grouped rows as Turtle, minting a namespace
// prefix the first time each namespace (as split by splitNamespace) is seen.
type Exporter struct {
	prefix *errWriter
	stmt   bytes.Buffer

	abbreviations map[string]string
	lastSubj      string
	lastPred      string
	wroteAny      bool
}

// NewExporter returns an Exporter writing to w.
func NewExporter(w io.Writer) *Exporter {
	return &Exporter{
		prefix:        &errWriter{w: w},
		abbreviations: make(map[string]string),
	}
}

// writeResource writes uri into the statement buffer, possibly abbreviated,
// minting and emitting a new @prefix declaration directly to the
// destination writer if this is the namespace's first use.
func (e *Exporter) writeResource(uri string) {
	ns, local, ok := splitNamespace(uri)
	if !ok {
		writeURI(&e.stmt, uri)
		return
	}
	abbr, exists := e.abbreviations[ns]
	if !exists {
		abbr = abbreviate(len(e.abbreviations) + 1)
		e.abbreviations[ns] = abbr
		e.prefix.WriteString(fmt.Sprintf("@prefix %s: ", abbr))
		var nsBuf bytes.Buffer
		writeURI(&nsBuf, ns)
		e.prefix.WriteString(nsBuf.String())
		e.prefix.WriteString(".\n")
	}
	e.stmt.WriteString(abbr)
	e.stmt.WriteByte(':')
	e.stmt.WriteString(local)
}

// WriteRow adds one subject/predicate/object row. Rows must arrive ordered
// by subject then predicate; WriteRow detects group boundaries by simple
// string comparison against the previous row, not by re-sorting.
func (e *Exporter) WriteRow(r Row) error {
	if e.prefix.err != nil {
		return e.prefix.err
	}

	switch {
	case r.SubjectIRI != e.lastSubj:
		if e.wroteAny {
			e.stmt.WriteString(".\n")
			if _, err := e.prefix.w.Write(e.stmt.Bytes()); err != nil {
				e.prefix.err = err
				return err
			}
			e.stmt.Reset()
		}
		e.lastSubj = r.SubjectIRI
		e.lastPred = r.PredicateIRI
		e.writeResource(r.SubjectIRI)
		e.stmt.WriteByte(' ')
		e.writeResource(r.PredicateIRI)

	case r.PredicateIRI != e.lastPred:
		e.stmt.WriteString(";\n\t")
		e.lastPred = r.PredicateIRI
		e.writeResource(r.PredicateIRI)

	default:
		e.stmt.WriteByte(',')
	}

	e.stmt.WriteByte(' ')
	if r.ObjectIsResource {
		e.writeResource(r.ObjectIRI)
	} else {
		writeLiteral(&e.stmt, r.ObjectLexical)
		if r.ObjectDatatype != "" {
			e.stmt.WriteString("^^")
			e.writeResource(r.ObjectDatatype)
		}
	}
	e.wroteAny = true
	return e.prefix.err
}

// Close flushes any buffered statement text. It must be called after the
// last WriteRow.
func (e *Exporter) Close() error {
	if e.prefix.err != nil {
		return e.prefix.err
	}
	if e.wroteAny {
		e.stmt.WriteString(".\n")
		if _, err := e.prefix.w.Write(e.stmt.Bytes()); err != nil {
			return err
		}
		e.stmt.Reset()
	}
	return nil
}

// Export drains rows from next (which returns ok=false once exhausted)
// through an Exporter and flushes it.
func Export(w io.Writer, next func() (Row, bool, error)) error {
	e := NewExporter(w)
	for {
		row, ok, err := next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if err := e.WriteRow(row); err != nil {
			return err
		}
	}
	return e.Close()
}
