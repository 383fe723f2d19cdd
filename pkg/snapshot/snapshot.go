package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/scenesnap/scenesnap/pkg/errors"
	"github.com/scenesnap/scenesnap/pkg/scene"
)

// EmptySelectionMessage is the exact message handed to the boundary when no
// nodes are selected.
const EmptySelectionMessage = "No elements selected"

// ErrEmptySelection is returned by [Build] when the root sequence is empty.
// It is the only caller-visible failure of the serializer.
var ErrEmptySelection = errors.New(errors.ErrCodeEmptySelection, EmptySelectionMessage)

// Envelope is the top-level snapshot: page identity plus the serialized
// selection roots in input order.
type Envelope struct {
	PageName      string           `json:"pageName" bson:"pageName"`
	PageID        string           `json:"pageId" bson:"pageId"`
	SelectedNodes []SerializedNode `json:"selectedNodes" bson:"selectedNodes"`
}

// ErrorPayload is the JSON shape reported for selection-level failures.
type ErrorPayload struct {
	Error string `json:"error"`
}

// Build serializes a non-empty ordered sequence of selection roots into an
// envelope. Input order is preserved. An empty sequence yields
// [ErrEmptySelection] and no envelope.
func Build(pageName, pageID string, roots []*scene.Node) (*Envelope, error) {
	if len(roots) == 0 {
		return nil, ErrEmptySelection
	}

	env := &Envelope{
		PageName:      pageName,
		PageID:        pageID,
		SelectedNodes: make([]SerializedNode, len(roots)),
	}
	for i, r := range roots {
		env.SelectedNodes[i] = Serialize(r)
	}
	return env, nil
}

// FromDocument builds the envelope for a document's selection: the resolved
// Selection ids when present, otherwise every top-level node.
func FromDocument(doc *scene.Document) (*Envelope, error) {
	roots, err := doc.SelectedRoots()
	if err != nil {
		return nil, err
	}
	return Build(doc.Page.Name, doc.Page.ID, roots)
}

// =============================================================================
// Snapshot Serialization API
// =============================================================================

// Marshal converts an envelope to pretty-printed JSON bytes with stable
// 2-space indentation.
func Marshal(env *Envelope) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(env, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes an envelope as pretty-printed JSON to an io.Writer.
func Write(env *Envelope, w io.Writer) error {
	return writeTo(env, w)
}

// WriteFile writes an envelope to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(env *Envelope, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTo(env, f)
}

// Read decodes an envelope from its JSON form.
func Read(r io.Reader) (*Envelope, error) {
	var env Envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &env, nil
}

// Payload produces the boundary message for a selection: the envelope JSON
// on success, or the structured error payload when the selection is empty.
// Any other error is returned to the caller unencoded.
func Payload(pageName, pageID string, roots []*scene.Node) ([]byte, error) {
	env, err := Build(pageName, pageID, roots)
	if err != nil {
		if errors.Is(err, errors.ErrCodeEmptySelection) {
			return marshalIndent(ErrorPayload{Error: EmptySelectionMessage})
		}
		return nil, err
	}
	return Marshal(env)
}

func writeTo(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func marshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(v, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
