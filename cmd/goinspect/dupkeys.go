package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/reoring/goinspect"
)

// maxDuplicateReports bounds the duplicates reported for one document.
const maxDuplicateReports = 32

type frameKind uint8

const (
	inObject frameKind = iota
	inArray
)

// dupFrame tracks one open container while scanning tokens.
type dupFrame struct {
	kind         frameKind
	path         goinspect.Path
	keys         map[string]struct{}
	expectingKey bool
	key          string
	index        int
}

// childPath is the path of the value about to be read in f.
func (f *dupFrame) childPath() goinspect.Path {
	if f.kind == inObject {
		return f.path.Child(goinspect.Literal(f.key))
	}
	return f.path.Child(goinspect.Index(f.index))
}

// valueDone advances f past one complete member value.
func (f *dupFrame) valueDone() {
	if f.kind == inObject {
		f.expectingKey = true
		return
	}
	f.index++
}

// duplicateKeys scans a JSON document and returns the pointer of every object
// member whose key repeats an earlier key of the same object. Decoding keeps
// only the last of such members.
func duplicateKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var (
		dups  []string
		stack []*dupFrame
	)
	top := func() *dupFrame {
		if len(stack) == 0 {
			return nil
		}
		return stack[len(stack)-1]
	}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			if len(stack) > 0 {
				return dups, io.ErrUnexpectedEOF
			}
			return dups, nil
		}
		if err != nil {
			return dups, err
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{', '[':
				var p goinspect.Path
				if f := top(); f != nil {
					p = f.childPath()
				}
				f := &dupFrame{kind: inArray, path: p}
				if v == '{' {
					f.kind, f.keys, f.expectingKey = inObject, map[string]struct{}{}, true
				}
				stack = append(stack, f)
			case '}', ']':
				stack = stack[:len(stack)-1]
				if f := top(); f != nil {
					f.valueDone()
				}
			}
		case string:
			f := top()
			if f != nil && f.kind == inObject && f.expectingKey {
				f.key, f.expectingKey = v, false
				if _, seen := f.keys[v]; seen && len(dups) < maxDuplicateReports {
					dups = append(dups, f.childPath().Pointer())
				}
				f.keys[v] = struct{}{}
				continue
			}
			if f != nil {
				f.valueDone()
			}
		default:
			if f := top(); f != nil {
				f.valueDone()
			}
		}
	}
}
