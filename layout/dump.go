package layout

import (
	"fmt"

	tp "github.com/xlab/treeprint"
)

// Dump renders the box tree, one box per line with its content rect.
func Dump(b *LayoutBox) string {
	if b == nil {
		return ""
	}
	root := tp.New()
	dumpBox(root, b)
	return root.String()
}

func dumpBox(t tp.Tree, b *LayoutBox) {
	label := boxLabel(b)
	if len(b.Children) == 0 {
		t.AddNode(label)
		return
	}
	branch := t.AddBranch(label)
	for _, c := range b.Children {
		dumpBox(branch, c)
	}
}

func boxLabel(b *LayoutBox) string {
	r := b.Dimensions.Content
	var what string
	switch {
	case b.Node == nil:
		what = "anonymous"
	case b.Node.IsText():
		what = fmt.Sprintf("%s %q", b.Type, b.Node.Data)
	case b.Node.IsElement():
		what = fmt.Sprintf("%s <%s>", b.Type, b.Node.TagName())
	default:
		what = "viewport"
	}
	return fmt.Sprintf("%s x=%g y=%g w=%g h=%g", what, r.X, r.Y, r.Width, r.Height)
}
