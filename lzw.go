// Package lzwuc provides a Lempel-Ziv-Welch compressor whose symbols are written with universal integer codes.
// The codes themselves live in package uc and its subpackages; package bitstream holds the bits.
//
// Below is an example of compressing a file with the Elias delta code and restoring it:
//    go run ./lzw --encode --type delta gettysburg.txt gettys.lzw
//    go run ./lzw --decode --type delta gettys.lzw gettys.txt
//    diff gettysburg.txt gettys.txt
//
// The compressed file is the raw bit stream without any header,
// so it must be decoded with the same code it was encoded with.
package lzwuc

import (
	"github.com/pkg/errors"

	"github.com/fumin/lzwuc/uc"
)

// Encode performs LZW coding of data, appending one codeword per symbol to enc.
func Encode(enc uc.Encoder, data []byte, opts ...Option) {
	d := NewDictionary(opts...)

	// node is the trie node of the current word data[start:i].
	node := int32(0)
	start := 0
	for i, c := range data {
		if ch := d.child(node, c); ch != 0 && d.nodes[ch].index >= 0 {
			node = ch
			continue
		}

		d.Add(data[start : i+1])
		enc.Encode(uint64(d.nodes[node].index))
		node = d.child(0, c)
		start = i
	}
	if len(data) > 0 {
		enc.Encode(uint64(d.nodes[node].index))
	}
}

// Decode reverses Encode, consuming dec until it reports the end of the stream.
// On error, the bytes decoded so far are returned along with it.
func Decode(dec uc.Decoder, opts ...Option) ([]byte, error) {
	d := NewDictionary(opts...)
	out := make([]byte, 0, dec.Len()/4)
	var prev, scratch []byte
	for {
		v, ok := dec.Decode()
		if !ok {
			break
		}
		if v > uint64(d.Len()) {
			return out, errors.Wrapf(ErrCorruptCode, "symbol %d at bit %d, dictionary has %d entries", v, dec.Index(), d.Len())
		}
		code := int(v)

		// The symbol for a word that starts with the previous word and ends with its first byte
		// arrives before we could add it.
		if code == d.Len() {
			if len(prev) == 0 {
				return out, errors.Wrapf(ErrCorruptCode, "symbol %d at bit %d has no preceding word", v, dec.Index())
			}
			scratch = append(append(scratch[:0], prev...), prev[0])
			if _, ok := d.Add(scratch); !ok {
				return out, errors.Wrapf(ErrCorruptCode, "symbol %d at bit %d, dictionary is full", v, dec.Index())
			}
		}

		word := d.Resolve(code)
		out = append(out, word...)
		if len(prev) > 0 {
			scratch = append(append(scratch[:0], prev...), word[0])
			d.Add(scratch)
		}
		prev = word
	}
	if err := dec.Err(); err != nil {
		return out, errors.Wrapf(err, "after %d bytes", len(out))
	}
	return out, nil
}
