package lzwuc

// trieNode is a node of the dictionary's 256-ary trie.
type trieNode struct {
	index    int32 // dictionary index, or -1 if no entry ends here
	children int32 // offset into Dictionary.blocks, or -1 if the node has no children
}

// A Dictionary maps byte sequences to LZW symbols and back.
// Entries 0 to 255 are the single-byte sequences. The dictionary only grows, up to its capacity.
//
// The trie is an arena: nodes refer to their children by offset, and a child id of 0 means absent,
// since node 0 is the root and is nobody's child.
type Dictionary struct {
	entries [][]byte
	nodes   []trieNode
	blocks  [][256]int32
	limit   int
}

// NewDictionary returns a dictionary seeded with all single-byte sequences.
func NewDictionary(opts ...Option) *Dictionary {
	cfg := newConfig(opts)
	d := &Dictionary{
		entries: make([][]byte, 0, 1024),
		nodes:   make([]trieNode, 0, 1024),
		limit:   cfg.maxEntries,
	}
	d.nodes = append(d.nodes, trieNode{index: -1, children: -1})
	for i := 0; i < 256; i++ {
		d.Add([]byte{byte(i)})
	}
	return d
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Cap returns the maximum number of entries.
func (d *Dictionary) Cap() int {
	return d.limit
}

// Lookup returns the index of seq.
// The second return value is false if seq is not in the dictionary; the empty sequence never is.
func (d *Dictionary) Lookup(seq []byte) (int, bool) {
	node := int32(0)
	for _, c := range seq {
		node = d.child(node, c)
		if node == 0 {
			return 0, false
		}
	}
	idx := d.nodes[node].index
	if idx < 0 {
		return 0, false
	}
	return int(idx), true
}

// Add inserts seq and returns its index. If seq is already present its existing index is returned.
// The second return value is false if seq is new but the dictionary is full, or if seq is empty;
// the dictionary is not modified in that case.
func (d *Dictionary) Add(seq []byte) (int, bool) {
	if len(seq) == 0 {
		return 0, false
	}
	if idx, ok := d.Lookup(seq); ok {
		return idx, true
	}
	if len(d.entries) >= d.limit {
		return 0, false
	}

	node := int32(0)
	for _, c := range seq {
		node = d.makeChild(node, c)
	}
	idx := len(d.entries)
	d.nodes[node].index = int32(idx)
	d.entries = append(d.entries, append([]byte(nil), seq...))
	return idx, true
}

// Resolve returns the sequence with index i. The returned slice must not be modified.
func (d *Dictionary) Resolve(i int) []byte {
	return d.entries[i]
}

func (d *Dictionary) child(node int32, c byte) int32 {
	blk := d.nodes[node].children
	if blk < 0 {
		return 0
	}
	return d.blocks[blk][c]
}

func (d *Dictionary) makeChild(node int32, c byte) int32 {
	if d.nodes[node].children < 0 {
		d.nodes[node].children = int32(len(d.blocks))
		d.blocks = append(d.blocks, [256]int32{})
	}
	blk := d.nodes[node].children
	ch := d.blocks[blk][c]
	if ch == 0 {
		ch = int32(len(d.nodes))
		d.nodes = append(d.nodes, trieNode{index: -1, children: -1})
		d.blocks[blk][c] = ch
	}
	return ch
}
