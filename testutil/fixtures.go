// Package testutil provides shared fixtures for integration-style tests:
// a small but realistic ontology document and GAF line builders.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// OntologyJSON is a minimal OBO graph document with the aspect roots, a
// protein binding branch, and one obsolete term replaced by a live one.
const OntologyJSON = `{
  "graphs": [
    {
      "id": "http://purl.obolibrary.org/obo/go.json",
      "nodes": [
        {
          "id": "http://purl.obolibrary.org/obo/GO_0003674",
          "lbl": "molecular_function",
          "type": "CLASS",
          "meta": {
            "basicPropertyValues": [
              {"pred": "http://www.geneontology.org/formats/oboInOwl#hasOBONamespace", "val": "molecular_function"}
            ]
          }
        },
        {
          "id": "http://purl.obolibrary.org/obo/GO_0008150",
          "lbl": "biological_process",
          "type": "CLASS",
          "meta": {
            "basicPropertyValues": [
              {"pred": "http://www.geneontology.org/formats/oboInOwl#hasOBONamespace", "val": "biological_process"}
            ]
          }
        },
        {
          "id": "http://purl.obolibrary.org/obo/GO_0005515",
          "lbl": "protein binding",
          "type": "CLASS",
          "meta": {
            "basicPropertyValues": [
              {"pred": "http://www.geneontology.org/formats/oboInOwl#hasOBONamespace", "val": "molecular_function"}
            ]
          }
        },
        {
          "id": "http://purl.obolibrary.org/obo/GO_0019900",
          "lbl": "kinase binding",
          "type": "CLASS",
          "meta": {
            "basicPropertyValues": [
              {"pred": "http://www.geneontology.org/formats/oboInOwl#hasOBONamespace", "val": "molecular_function"}
            ]
          }
        },
        {
          "id": "http://purl.obolibrary.org/obo/GO_0000001",
          "lbl": "obsolete mitochondrion inheritance",
          "type": "CLASS",
          "meta": {
            "deprecated": true,
            "basicPropertyValues": [
              {"pred": "http://purl.obolibrary.org/obo/IAO_0100001", "val": "http://purl.obolibrary.org/obo/GO_0019900"},
              {"pred": "http://www.geneontology.org/formats/oboInOwl#hasOBONamespace", "val": "molecular_function"}
            ]
          }
        }
      ],
      "edges": [
        {"sub": "http://purl.obolibrary.org/obo/GO_0005515", "pred": "is_a", "obj": "http://purl.obolibrary.org/obo/GO_0003674"},
        {"sub": "http://purl.obolibrary.org/obo/GO_0019900", "pred": "is_a", "obj": "http://purl.obolibrary.org/obo/GO_0005515"}
      ]
    }
  ]
}`

// WriteOntology writes the fixture ontology to dir and returns its path.
func WriteOntology(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "go-fixture.json")
	if err := os.WriteFile(path, []byte(OntologyJSON), 0644); err != nil {
		t.Fatalf("write ontology fixture: %v", err)
	}
	return path
}

// GAFLine builds one 17-column GAF 2.1 line with typical values.
func GAFLine(term, evidence, withFrom string) string {
	cols := []string{
		"UniProtKB", "P12345", "ABC1", "", term, "PMID:12345", evidence,
		withFrom, "F", "", "", "protein", "taxon:9606", "20240115",
		"UniProt", "", "",
	}
	return strings.Join(cols, "\t")
}

// WriteGAF writes lines to a GAF file in dir and returns its path.
func WriteGAF(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write gaf fixture: %v", err)
	}
	return path
}
