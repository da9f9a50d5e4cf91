// Package label loads the ground-truth class of every structural domain from
// a tab-separated file and counts how many domains carry each class.
package label

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
)

var (
	// ErrMalformed marks a label line with fewer than two tab-separated fields.
	ErrMalformed = errors.New("malformed label record")

	// ErrNotFound marks a lookup for an identifier or class never loaded.
	ErrNotFound = errors.New("not found")
)

// Catalog maps domain identifiers to class labels. It is read-only after
// construction.
type Catalog struct {
	classes    map[string]string
	population map[string]int
}

// Load parses the label file at path.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("label: %w", err)
	}
	defer f.Close()
	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("label: %s: %w", path, err)
	}
	slog.Info("labels loaded", "file", path, "domains", c.Len(), "classes", len(c.population))
	return c, nil
}

// Parse reads "identifier<TAB>class" records, one per line. Surrounding
// whitespace is trimmed and fields past the second are ignored. Every line,
// blank ones included, must carry both fields. A repeated identifier takes
// the later class while both classes keep their counts.
func Parse(r io.Reader) (*Catalog, error) {
	c := &Catalog{
		classes:    make(map[string]string),
		population: make(map[string]int),
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		fields := strings.Split(text, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: %w: %q", line, ErrMalformed, text)
		}
		id, class := fields[0], fields[1]
		if prev, ok := c.classes[id]; ok {
			slog.Warn("duplicate label record", "line", line, "id", id, "previous", prev, "class", class)
		}
		c.classes[id] = class
		c.population[class]++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// ClassOf returns the class label of id.
func (c *Catalog) ClassOf(id string) (string, error) {
	class, ok := c.classes[id]
	if !ok {
		return "", fmt.Errorf("label: class of %q: %w", id, ErrNotFound)
	}
	return class, nil
}

// Has reports whether id has a class label.
func (c *Catalog) Has(id string) bool {
	_, ok := c.classes[id]
	return ok
}

// PopulationOf returns how many label records named class.
func (c *Catalog) PopulationOf(class string) (int, error) {
	n, ok := c.population[class]
	if !ok {
		return 0, fmt.Errorf("label: population of %q: %w", class, ErrNotFound)
	}
	return n, nil
}

// Len reports the number of labeled identifiers.
func (c *Catalog) Len() int { return len(c.classes) }

// Classes returns the distinct class labels, sorted.
func (c *Catalog) Classes() []string {
	out := make([]string, 0, len(c.population))
	for class := range c.population {
		out = append(out, class)
	}
	sort.Strings(out)
	return out
}
