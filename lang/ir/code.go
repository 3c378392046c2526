package ir

import (
	"fmt"

	"golang.org/x/exp/maps"
)

// MainLabel is the entry block's reserved label.
const MainLabel = ".main"

// EndLabel is a reserved sentinel the serializer resolves to the byte
// offset immediately past the end of the code segment, used to address the
// start of the string table. No actual Block carries this label.
const EndLabel = ".end"

// Block is a labeled, ordered sequence of ops. Labels are unique within a
// Code.
type Block struct {
	Label string
	Ops   []Op
}

func (b *Block) emit(op Op) { b.Ops = append(b.Ops, op) }

// LastOp returns the block's final op and true, or the zero Op and false if
// the block is empty.
func (b *Block) LastOp() (Op, bool) {
	if len(b.Ops) == 0 {
		return Op{}, false
	}
	return b.Ops[len(b.Ops)-1], true
}

// Code is an ordered list of Blocks plus the bookkeeping needed to append
// new ones with fresh labels as the visitor walks the AST. The cursor is the
// block new ops are appended to; it is repositioned explicitly by callers
// (e.g. the visitor, when it starts or resumes generating into a different
// block).
type Code struct {
	Blocks []*Block
	cursor *Block

	byLabel  map[string]*Block
	labelSeq int
}

// New returns a Code with just the reserved .main block, empty and current.
func New() *Code {
	c := &Code{byLabel: make(map[string]*Block)}
	main := &Block{Label: MainLabel}
	c.Blocks = append(c.Blocks, main)
	c.byLabel[MainLabel] = main
	c.cursor = main
	return c
}

// Cursor returns the block ops are currently appended to.
func (c *Code) Cursor() *Block { return c.cursor }

// SetCursor repositions the cursor to b, which must belong to this Code.
func (c *Code) SetCursor(b *Block) { c.cursor = b }

// Emit appends op to the cursor block.
func (c *Code) Emit(op Op) { c.cursor.emit(op) }

// FreshLabel returns a new unique label `.L<n>_<hint>`; hint is purely for
// human readability in dumps and diagnostics.
func (c *Code) FreshLabel(hint string) string {
	n := c.labelSeq
	c.labelSeq++
	return fmt.Sprintf(".L%d_%s", n, hint)
}

// NewBlock appends a fresh, empty block (labeled `.L<n>_<hint>`) at the end
// of the block list and returns it. It does not change the cursor.
func (c *Code) NewBlock(hint string) *Block {
	b := &Block{Label: c.FreshLabel(hint)}
	c.Blocks = append(c.Blocks, b)
	c.byLabel[b.Label] = b
	return b
}

// NewBlockAfterCursor creates a fresh, empty block and inserts it into the
// block list immediately after the cursor's current block, rather than at
// the tail. It does not move the cursor.
//
// A block that doesn't end in an unconditional jump or return falls
// through to whatever block sits next in list order, so a merge block
// reached that way (an if's or if-else's end, a short-circuit and/or's
// end) must be positioned by where it sits in the nesting, not
// by creation order. Creating such a block while the cursor is still on
// the block the branch originates from, and inserting it right after
// that block, gives the right order for free: a construct nested inside
// another one is always visited - and so has its own merge block
// inserted - before the outer construct's cursor moves past the branch
// point, which pushes the inner merge block between the branch block and
// the outer merge block already sitting there. Mirrors the original
// compiler's insert_label primitive.
func (c *Code) NewBlockAfterCursor(hint string) *Block {
	b := &Block{Label: c.FreshLabel(hint)}
	c.byLabel[b.Label] = b

	idx := -1
	for i, blk := range c.Blocks {
		if blk == c.cursor {
			idx = i
			break
		}
	}
	if idx < 0 {
		panic("bug: cursor block not found in Code.Blocks")
	}

	c.Blocks = append(c.Blocks, nil)
	copy(c.Blocks[idx+2:], c.Blocks[idx+1:])
	c.Blocks[idx+1] = b
	return b
}

// NewNamedBlock appends a fresh block under an explicit label (e.g.
// `func_<name>` for a function entry) and returns it. It does not change
// the cursor. Defining the same label twice is a compiler bug.
func (c *Code) NewNamedBlock(label string) *Block {
	if _, ok := c.byLabel[label]; ok {
		panic(fmt.Sprintf("bug: duplicate IR block label %q", label))
	}
	b := &Block{Label: label}
	c.Blocks = append(c.Blocks, b)
	c.byLabel[label] = b
	return b
}

// Block looks up a block by label.
func (c *Code) Block(label string) (*Block, bool) {
	b, ok := c.byLabel[label]
	return b, ok
}

// Labels returns every block label currently defined, in no particular
// order; used by tests and diagnostics rather than code generation.
func (c *Code) Labels() []string { return maps.Keys(c.byLabel) }
