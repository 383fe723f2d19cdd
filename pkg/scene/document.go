package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/scenesnap/scenesnap/pkg/errors"
)

// Page identifies the container the selection was taken from.
type Page struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Document is the host-supplied envelope: page identity, the root node
// forest, and an optional list of pre-selected node ids.
type Document struct {
	Page      Page     `json:"page"`
	Selection []string `json:"selection,omitempty"`
	Nodes     []*Node  `json:"nodes"`
}

// ReadDocument decodes a scene document from r.
func ReadDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode scene document")
	}
	return &doc, nil
}

// ReadDocumentFile reads and decodes a scene document from a JSON file.
func ReadDocumentFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDocument(f)
}

// FindByID returns the first node with the given id in a depth-first walk
// of the document forest, or nil if no node carries it.
func (d *Document) FindByID(id string) *Node {
	for _, r := range d.Nodes {
		if n := findByID(r, id); n != nil {
			return n
		}
	}
	return nil
}

func findByID(n *Node, id string) *Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// ResolveSelection resolves node ids against the document forest, preserving
// the order of ids. Unknown ids are an error.
func (d *Document) ResolveSelection(ids []string) ([]*Node, error) {
	roots := make([]*Node, 0, len(ids))
	for _, id := range ids {
		if err := errors.ValidateNodeID(id); err != nil {
			return nil, err
		}
		n := d.FindByID(id)
		if n == nil {
			return nil, errors.New(errors.ErrCodeInvalidSelector, "unknown node id: %s", id)
		}
		roots = append(roots, n)
	}
	return roots, nil
}

// SelectedRoots returns the selection roots for the document: the resolved
// Selection ids when present, otherwise every top-level node.
func (d *Document) SelectedRoots() ([]*Node, error) {
	if len(d.Selection) == 0 {
		return d.Nodes, nil
	}
	return d.ResolveSelection(d.Selection)
}
