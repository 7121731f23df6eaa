// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package topics persists the topic catalog and picks subjects from it.
// The catalog is a JSON document: each top-level key is a category mapping
// either to a list of topics or to an object of sub-category lists.
package topics

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrUnknownCategory is returned when a category is not in the catalog.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrEmpty is returned when a random draw finds no topics.
	ErrEmpty = errors.New("no topics available")

	// ErrKindMismatch is returned when AddTopic targets a flat category with a
	// sub-category, or a nested category without one.
	ErrKindMismatch = errors.New("category shape does not match request")
)

// Store holds the catalog loaded from disk. Every mutation is written back
// immediately; concurrent writers are last-writer-wins.
type Store struct {
	path string
	root *Node
	rng  *rand.Rand
}

// Open loads the catalog at path. When the file does not exist the default
// catalog is installed and persisted. A nil rng uses a randomly seeded source.
func Open(path string, rng *rand.Rand) (*Store, error) {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s := &Store{path: path, rng: rng}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading catalog %s: %w", path, err)
		}
		s.root = DefaultCatalog()
		if err := s.Save(); err != nil {
			return nil, err
		}
		return s, nil
	}

	root := &Node{}
	if err := json.Unmarshal(data, root); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	if root.Kind != KindNested {
		return nil, fmt.Errorf("parsing catalog %s: top level must be an object", path)
	}
	s.root = root
	return s, nil
}

// Save writes the whole catalog to disk.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.root, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating catalog directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing catalog %s: %w", s.path, err)
	}
	return nil
}

// Categories returns the top-level category names in catalog order.
func (s *Store) Categories() []string {
	names := make([]string, 0, len(s.root.Children))
	for _, c := range s.root.Children {
		names = append(names, c.Name)
	}
	return names
}

// RandomTopic draws a topic. An empty category draws uniformly across every
// topic in the catalog; a named category is sampled with Node.Sample.
func (s *Store) RandomTopic(category string) (string, error) {
	if category == "" {
		all := s.root.Leaves()
		if len(all) == 0 {
			return "", ErrEmpty
		}
		return all[s.rng.IntN(len(all))], nil
	}

	node := s.root.Child(category)
	if node == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	topic, ok := node.Sample(s.rng)
	if !ok {
		return "", fmt.Errorf("%w in %s", ErrEmpty, category)
	}
	return topic, nil
}

// TopicsByCategory returns the topics of a category. With a sub-category it
// returns that list only; without one on a nested category it returns every
// sub-list concatenated in catalog order. Unknown names yield nil.
func (s *Store) TopicsByCategory(category, subCategory string) []string {
	node := s.root.Child(category)
	if node == nil {
		return nil
	}
	if subCategory != "" {
		return node.Child(subCategory).Leaves()
	}
	return node.Leaves()
}

// AddTopic appends topic to a category (and sub-category), creating either when
// absent, then persists the catalog. Duplicates are kept.
func (s *Store) AddTopic(category, topic, subCategory string) error {
	category = strings.TrimSpace(category)
	topic = strings.TrimSpace(topic)
	subCategory = strings.TrimSpace(subCategory)
	if category == "" || topic == "" {
		return fmt.Errorf("category and topic are required")
	}

	node := s.root.Child(category)
	if node == nil {
		if subCategory != "" {
			node = Nested()
		} else {
			node = Flat()
		}
		s.root.Children = append(s.root.Children, Child{Name: category, Node: node})
	}

	target := node
	if subCategory != "" {
		if node.Kind != KindNested {
			return fmt.Errorf("%w: %s is a flat list", ErrKindMismatch, category)
		}
		target = node.Child(subCategory)
		if target == nil {
			target = Flat()
			node.Children = append(node.Children, Child{Name: subCategory, Node: target})
		}
	}
	if target.Kind != KindFlat {
		return fmt.Errorf("%w: %s has sub-categories; name one", ErrKindMismatch, category)
	}

	target.Topics = append(target.Topics, topic)
	return s.Save()
}

// ListAll writes every category, sub-category, and topic to w.
func (s *Store) ListAll(w io.Writer) {
	fmt.Fprintln(w, "Available topics:")
	for _, c := range s.root.Children {
		fmt.Fprintf(w, "\n%s:\n", strings.ToUpper(c.Name))
		listNode(w, c.Node, "  ")
	}
}

func listNode(w io.Writer, n *Node, indent string) {
	if n.Kind == KindFlat {
		for i, t := range n.Topics {
			fmt.Fprintf(w, "%s%d. %s\n", indent, i+1, t)
		}
		return
	}
	for _, c := range n.Children {
		fmt.Fprintf(w, "%s%s:\n", indent, c.Name)
		listNode(w, c.Node, indent+"  ")
	}
}
