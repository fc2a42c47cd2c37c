// Package jsonscan walks JSON documents token by token with goccy/go-json.
package jsonscan

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	j "github.com/goccy/go-json"
)

// Kind is the JSON value kind of a document root.
type Kind int

const (
	KindInvalid Kind = iota
	KindObject
	KindArray
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindNull:
		return "null"
	default:
		return "invalid"
	}
}

// KindOf returns the kind of the first JSON value in data.
func KindOf(data []byte) Kind {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return KindInvalid
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			return KindObject
		case '[':
			return KindArray
		}
	case string:
		return KindString
	case j.Number, float64:
		return KindNumber
	case bool:
		return KindBool
	case nil:
		return KindNull
	}
	return KindInvalid
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

// TopLevelKeys returns the keys of the root object in document order,
// duplicates included. Keys of nested objects are skipped.
func TopLevelKeys(data []byte) ([]string, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var (
		keys  []string
		stack []frame
	)
	// valueDone flips the enclosing object back to expecting a key.
	valueDone := func() {
		if n := len(stack); n > 0 {
			top := &stack[n-1]
			if top.kind == kindObject && !top.expectingKey {
				top.expectingKey = true
			}
		}
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("scan json: %w", err)
		}
		switch v := tok.(type) {
		case j.Delim:
			switch v {
			case '{':
				if len(stack) == 0 && keys == nil {
					keys = []string{}
				}
				stack = append(stack, frame{kind: kindObject, expectingKey: true})
			case '[':
				stack = append(stack, frame{kind: kindArray})
			case '}', ']':
				if n := len(stack); n > 0 {
					stack = stack[:n-1]
				}
				valueDone()
			}
		case string:
			if n := len(stack); n > 0 {
				top := &stack[n-1]
				if top.kind == kindObject && top.expectingKey {
					top.expectingKey = false
					if n == 1 {
						keys = append(keys, v)
					}
					continue
				}
			}
			valueDone()
		default:
			valueDone()
		}
	}
	if keys == nil {
		return nil, errors.New("scan json: root is not an object")
	}
	return keys, nil
}
