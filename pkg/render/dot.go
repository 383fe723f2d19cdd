package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/scenesnap/scenesnap/pkg/snapshot"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes geometry and type-specific attributes in node
	// labels. When false, only the node name and type are shown.
	Detailed bool
}

// ToDOT converts a snapshot envelope to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(env *snapshot.Envelope, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph selection {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [label=%q, shape=folder, fillcolor=lightyellow];\n",
		pageID(env), fmt.Sprintf("%s\n%s", env.PageName, env.PageID))

	for i := range env.SelectedNodes {
		writeNode(&buf, &env.SelectedNodes[i], pageID(env), opts)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func pageID(env *snapshot.Envelope) string {
	if env.PageID != "" {
		return "page:" + env.PageID
	}
	return "page"
}

func writeNode(buf *bytes.Buffer, n *snapshot.SerializedNode, parent string, opts Options) {
	fmt.Fprintf(buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, opts), ", "))
	fmt.Fprintf(buf, "  %q -> %q;\n", parent, n.ID)
	for i := range n.Children {
		writeNode(buf, &n.Children[i], n.ID, opts)
	}
}

func fmtAttrs(n *snapshot.SerializedNode, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed))}
	if !n.Visible {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fontcolor=gray40")
	}
	if n.ComponentID != nil {
		attrs = append(attrs, "fillcolor=lavender")
	}
	return attrs
}

func fmtLabel(n *snapshot.SerializedNode, detailed bool) string {
	label := n.Name
	if label == "" {
		label = n.ID
	}
	if !detailed {
		return fmt.Sprintf("%s\n%s", label, n.Type)
	}

	parts := []string{
		n.Type,
		fmt.Sprintf("%s × %s at (%s, %s)",
			fmtNum(n.Width), fmtNum(n.Height), fmtNum(n.X), fmtNum(n.Y)),
	}
	if n.Characters != nil {
		parts = append(parts, fmt.Sprintf("%q", *n.Characters))
	}
	if n.LayoutMode != nil {
		parts = append(parts, "layout: "+*n.LayoutMode)
	}
	if n.CornerRadius != nil {
		parts = append(parts, "radius: "+fmtNum(*n.CornerRadius))
	}

	return label + "\n" + strings.Join(parts, "\n")
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
