package lectern

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// HitShape is used for custom hit testing regions.
type HitShape interface {
	Contains(x, y float64) bool
}

// ClickContext carries click event data.
type ClickContext struct {
	Node      *Node
	UserData  any
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	PointerID int
	Modifiers KeyModifiers
}

// --- ID counter ---

// nodeIDCounter is only touched from the game loop goroutine.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the scene graph element. Slides, indicators, navigation chrome and
// the section banner are all trees of Nodes. A single flat struct is used for
// every node type.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). PivotX/PivotY are in local pixels.
	X, Y   float64
	ScaleX float64
	ScaleY float64
	PivotX float64
	PivotY float64

	// Size of rect nodes and the hit area of containers.
	Width, Height float64

	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Visibility & interaction
	Alpha        float64
	Visible      bool
	Interactable bool
	ZIndex       int

	Color Color

	// Text fields (NodeTypeText)
	Text *TextBlock

	// Ring fields (NodeTypeRing)
	Ring *Ring

	customImage *ebiten.Image

	// Clip confines the children to the node's Width x Height box when drawn.
	Clip      bool
	clipImage *ebiten.Image

	UserData any
	HitShape HitShape

	// Callbacks (nil by default)
	OnClick  func(ClickContext)
	OnUpdate func(dt float64)

	disposed       bool
	sortedChildren []*Node
	childrenSorted bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
	n.childrenSorted = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewRect creates a solid rectangle of the given size and color.
func NewRect(name string, w, h float64, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypeRect, Width: w, Height: h}
	nodeDefaults(n)
	n.Color = c
	return n
}

// NewText creates a text node with the given content, size in surface pixels
// and color.
func NewText(name, content string, size float64, c Color) *Node {
	n := &Node{
		Name: name,
		Type: NodeTypeText,
		Text: &TextBlock{
			Content: content,
			Size:    size,
			dirty:   true,
		},
	}
	nodeDefaults(n)
	n.Color = c
	return n
}

// NewRing creates a circular progress indicator centered on the node origin.
func NewRing(name string, radius, width float64, c Color) *Node {
	n := &Node{
		Name: name,
		Type: NodeTypeRing,
		Ring: &Ring{Radius: radius, Width: width},
	}
	nodeDefaults(n)
	n.Color = c
	return n
}

// NewImage creates a node that draws img.
func NewImage(name string, img *ebiten.Image) *Node {
	n := &Node{Name: name, Type: NodeTypeImage, customImage: img}
	nodeDefaults(n)
	return n
}

// SetText replaces the content of a text node. No-op for other node types.
func (n *Node) SetText(content string) {
	if n.Text == nil || n.Text.Content == content {
		return
	}
	n.Text.Content = content
	n.Text.dirty = true
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("lectern: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("lectern: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("lectern: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// Find returns the first node in this subtree (depth-first, including n)
// whose Name equals name, or nil.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if f := c.Find(name); f != nil {
			return f
		}
	}
	return nil
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.HitShape = nil
	n.customImage = nil
	if n.clipImage != nil {
		n.clipImage.Deallocate()
		n.clipImage = nil
	}
	n.Text = nil
	n.Ring = nil
	n.UserData = nil
	n.OnClick = nil
	n.OnUpdate = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}

// paintOrder returns the children sorted by ZIndex (stable), reusing a buffer.
func (n *Node) paintOrder() []*Node {
	if n.childrenSorted {
		if n.sortedChildren == nil {
			return n.children
		}
		return n.sortedChildren
	}
	n.childrenSorted = true
	needSort := false
	for _, c := range n.children {
		if c.ZIndex != 0 {
			needSort = true
			break
		}
	}
	if !needSort {
		n.sortedChildren = nil
		return n.children
	}
	n.sortedChildren = append(n.sortedChildren[:0], n.children...)
	// Insertion sort: child lists are short and mostly ordered.
	s := n.sortedChildren
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1].ZIndex > s[j].ZIndex; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
	return s
}
