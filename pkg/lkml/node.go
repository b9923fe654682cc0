// Package lkml provides a minimal LookML parser and the syntax tree
// consumed by the style engine. The tree is immutable once parsed; callers
// only read it through the Node interface.
package lkml

// NodeKind identifies the concrete type of a syntax tree node.
type NodeKind int

// Node kinds.
const (
	KindDocument NodeKind = iota
	KindContainer
	KindBlock
	KindPair
	KindList
	KindToken
)

// String returns the string representation of the node kind.
func (k NodeKind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindContainer:
		return "container"
	case KindBlock:
		return "block"
	case KindPair:
		return "pair"
	case KindList:
		return "list"
	case KindToken:
		return "token"
	default:
		return "unknown"
	}
}

// Node is the read-only view of a parsed LookML node.
type Node interface {
	// Kind returns the concrete node kind.
	Kind() NodeKind

	// Type returns the node's LookML type: the block kind ("dimension"),
	// the pair key ("sql") or the list key ("timeframes"). Empty for
	// document, container and token nodes.
	Type() string

	// Name returns the block identifier ("count_users" in
	// "measure: count_users { ... }"). Empty for other kinds.
	Name() string

	// Value returns the pair value or token text. Empty for other kinds.
	Value() string

	// Children returns the ordered child nodes.
	Children() []Node

	// Line returns the 1-based source line the node starts on.
	Line() int
}

// Document is the root of a parsed file. Its only child is a Container
// holding the top-level items.
type Document struct {
	Root *Container
}

func (d *Document) Kind() NodeKind { return KindDocument }
func (d *Document) Type() string   { return "" }
func (d *Document) Name() string   { return "" }
func (d *Document) Value() string  { return "" }
func (d *Document) Line() int      { return 1 }

func (d *Document) Children() []Node {
	if d.Root == nil {
		return nil
	}
	return []Node{d.Root}
}

// Container is a pure grouping node with no type of its own. Documents and
// blocks hold their items through a container.
type Container struct {
	Items []Node
}

func (c *Container) Kind() NodeKind   { return KindContainer }
func (c *Container) Type() string     { return "" }
func (c *Container) Name() string     { return "" }
func (c *Container) Value() string    { return "" }
func (c *Container) Children() []Node { return c.Items }

func (c *Container) Line() int {
	if len(c.Items) == 0 {
		return 0
	}
	return c.Items[0].Line()
}

// Block is a braced LookML entry such as "dimension: id { ... }".
// The identifier between the type and the brace is optional.
type Block struct {
	BlockType string
	BlockName string
	Body      *Container
	LineNum   int
}

func (b *Block) Kind() NodeKind { return KindBlock }
func (b *Block) Type() string   { return b.BlockType }
func (b *Block) Name() string   { return b.BlockName }
func (b *Block) Value() string  { return "" }
func (b *Block) Line() int      { return b.LineNum }

func (b *Block) Children() []Node {
	if b.Body == nil {
		return nil
	}
	return []Node{b.Body}
}

// Pair is a key/value entry such as "type: count" or "sql: ${TABLE}.id ;;".
type Pair struct {
	Key     string
	Val     string
	LineNum int
}

func (p *Pair) Kind() NodeKind   { return KindPair }
func (p *Pair) Type() string     { return p.Key }
func (p *Pair) Name() string     { return "" }
func (p *Pair) Value() string    { return p.Val }
func (p *Pair) Children() []Node { return nil }
func (p *Pair) Line() int        { return p.LineNum }

// List is a bracketed entry such as "timeframes: [time, date, week]".
// Its children are the item tokens in declared order.
type List struct {
	Key     string
	Items   []*Token
	LineNum int
}

func (l *List) Kind() NodeKind { return KindList }
func (l *List) Type() string   { return l.Key }
func (l *List) Name() string   { return "" }
func (l *List) Value() string  { return "" }
func (l *List) Line() int      { return l.LineNum }

func (l *List) Children() []Node {
	items := make([]Node, len(l.Items))
	for i, t := range l.Items {
		items[i] = t
	}
	return items
}

// Token is a bare value inside a list.
type Token struct {
	Text    string
	LineNum int
}

func (t *Token) Kind() NodeKind   { return KindToken }
func (t *Token) Type() string     { return "" }
func (t *Token) Name() string     { return "" }
func (t *Token) Value() string    { return t.Text }
func (t *Token) Children() []Node { return nil }
func (t *Token) Line() int        { return t.LineNum }
