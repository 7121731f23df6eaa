// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package topics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand/v2"
)

// Kind tags a Node as a flat topic list or a set of named children.
type Kind int

const (
	KindFlat Kind = iota
	KindNested
)

// Node is one entry of the topic catalog. A flat node holds topics directly;
// a nested node holds named children in file order. The catalog root is a
// nested node whose children are the top-level categories.
type Node struct {
	Kind     Kind
	Topics   []string
	Children []Child
}

// Child is a named entry of a nested node.
type Child struct {
	Name string
	Node *Node
}

// Flat returns a flat node holding topics.
func Flat(topics ...string) *Node {
	return &Node{Kind: KindFlat, Topics: topics}
}

// Nested returns a nested node holding children in the given order.
func Nested(children ...Child) *Node {
	return &Node{Kind: KindNested, Children: children}
}

// Child returns the named child of a nested node, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil || n.Kind != KindNested {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c.Node
		}
	}
	return nil
}

// Leaves returns every topic under n, concatenated in mapping order.
func (n *Node) Leaves() []string {
	if n == nil {
		return nil
	}
	if n.Kind == KindFlat {
		return append([]string(nil), n.Topics...)
	}
	var out []string
	for _, c := range n.Children {
		out = append(out, c.Node.Leaves()...)
	}
	return out
}

// Sample draws one topic from n. A flat node draws uniformly from its list.
// A nested node first draws a child uniformly and then samples within it, so
// every child is equally likely regardless of size and topics in small
// children are picked more often than topics in large ones.
func (n *Node) Sample(r *rand.Rand) (string, bool) {
	if n == nil {
		return "", false
	}
	switch n.Kind {
	case KindFlat:
		if len(n.Topics) == 0 {
			return "", false
		}
		return n.Topics[r.IntN(len(n.Topics))], true
	default:
		if len(n.Children) == 0 {
			return "", false
		}
		return n.Children[r.IntN(len(n.Children))].Node.Sample(r)
	}
}

// MarshalJSON encodes a flat node as an array and a nested node as an object
// whose keys keep the children's order.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n.Kind == KindFlat {
		topics := n.Topics
		if topics == nil {
			topics = []string{}
		}
		return json.Marshal(topics)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range n.Children {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := c.Node.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", c.Name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an array into a flat node and an object into a nested
// node, preserving key order.
func (n *Node) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty topic node")
	}

	switch data[0] {
	case '[':
		var topics []string
		if err := json.Unmarshal(data, &topics); err != nil {
			return fmt.Errorf("decoding topic list: %w", err)
		}
		*n = Node{Kind: KindFlat, Topics: topics}
		return nil

	case '{':
		dec := json.NewDecoder(bytes.NewReader(data))
		if _, err := dec.Token(); err != nil {
			return err
		}
		var children []Child
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return err
			}
			name, ok := tok.(string)
			if !ok {
				return fmt.Errorf("unexpected token %v", tok)
			}
			child := &Node{}
			if err := dec.Decode(child); err != nil {
				return fmt.Errorf("decoding %q: %w", name, err)
			}
			children = append(children, Child{Name: name, Node: child})
		}
		if _, err := dec.Token(); err != nil {
			return err
		}
		*n = Node{Kind: KindNested, Children: children}
		return nil
	}

	return fmt.Errorf("topic node must be a list or an object, got %q", data[0])
}
