// Package xmlresult serializes SPARQL query results (or an in-band error)
// as the SPARQL Query Results XML Format.
package xmlresult

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/quiesnet/rdfstore/internal/query"
)

const resultsNS = "http://www.w3.org/2005/sparql-results#"

type document struct {
	XMLName xml.Name  `xml:"sparql"`
	XMLNS   string    `xml:"xmlns,attr"`
	Head    head      `xml:"head"`
	Results *resultsE `xml:"results,omitempty"`
}

type head struct {
	Variables []variableE `xml:"variable,omitempty"`
	Error     *errorE     `xml:"error,omitempty"`
}

type variableE struct {
	Name string `xml:"name,attr"`
}

type errorE struct {
	Message string `xml:",cdata"`
}

type resultsE struct {
	Result []resultE `xml:"result"`
}

type resultE struct {
	Binding []bindingE `xml:"binding"`
}

type bindingE struct {
	Name    string    `xml:"name,attr"`
	URI     string    `xml:"uri,omitempty"`
	Literal *literalE `xml:"literal,omitempty"`
}

type literalE struct {
	Datatype string `xml:"datatype,attr,omitempty"`
	Value    string `xml:",chardata"`
}

// WriteResults writes a full results document: one <variable> per
// projected name, in order, followed by one <result> per row.
func WriteResults(w io.Writer, projection []string, rows []query.Row) error {
	doc := document{XMLNS: resultsNS}
	for _, name := range projection {
		doc.Head.Variables = append(doc.Head.Variables, variableE{Name: name})
	}

	res := &resultsE{}
	for _, row := range rows {
		var r resultE
		for _, b := range row.Bindings {
			be := bindingE{Name: b.Name}
			if b.IsURI {
				be.URI = b.Value
			} else {
				be.Literal = &literalE{Value: b.Value, Datatype: b.Datatype}
			}
			r.Binding = append(r.Binding, be)
		}
		res.Result = append(res.Result, r)
	}
	doc.Results = res

	return encode(w, doc)
}

// WriteError writes a head-only document carrying the query's failure
// message, per the in-band error rendering the CLI's sparql command uses.
func WriteError(w io.Writer, msg string) error {
	doc := document{XMLNS: resultsNS, Head: head{Error: &errorE{Message: msg}}}
	return encode(w, doc)
}

func encode(w io.Writer, doc document) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode sparql results: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
