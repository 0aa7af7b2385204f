package menu

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileNode mirrors Node on disk. Online defaults to true when omitted.
type fileNode struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Icon        string     `yaml:"icon"`
	ServiceID   string     `yaml:"service_id"`
	Online      *bool      `yaml:"online,omitempty"`
	Roles       []string   `yaml:"roles"`
	StatusLabel string     `yaml:"status_label,omitempty"`
	Children    []fileNode `yaml:"children,omitempty"`
}

type registryFile struct {
	Menus []fileNode `yaml:"menus"`
}

// Load reads and validates a registry file.
func Load(path string) (Forest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a YAML registry and validates it.
func Parse(data []byte) (Forest, error) {
	var rf registryFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	f := make(Forest, 0, len(rf.Menus))
	for _, fn := range rf.Menus {
		f = append(f, fn.node())
	}
	if err := Validate(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (fn fileNode) node() Node {
	n := Node{
		ID:          fn.ID,
		Title:       fn.Title,
		Icon:        fn.Icon,
		ServiceID:   fn.ServiceID,
		Online:      fn.Online == nil || *fn.Online,
		StatusLabel: fn.StatusLabel,
	}
	for _, r := range fn.Roles {
		role, err := ParseRole(r)
		if err != nil {
			// keep the raw value so Validate reports it
			role = Role(r)
		}
		n.Roles = append(n.Roles, role)
	}
	for _, c := range fn.Children {
		n.Children = append(n.Children, c.node())
	}
	return n
}

func toFile(n Node) fileNode {
	online := n.Online
	fn := fileNode{
		ID:          n.ID,
		Title:       n.Title,
		Icon:        n.Icon,
		ServiceID:   n.ServiceID,
		Online:      &online,
		StatusLabel: n.StatusLabel,
	}
	for _, r := range n.Roles {
		fn.Roles = append(fn.Roles, string(r))
	}
	for _, c := range n.Children {
		fn.Children = append(fn.Children, toFile(c))
	}
	return fn
}

// Encode writes f in the registry file format.
func Encode(w io.Writer, f Forest) error {
	rf := registryFile{Menus: make([]fileNode, 0, len(f))}
	for _, n := range f {
		rf.Menus = append(rf.Menus, toFile(n))
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rf); err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	return enc.Close()
}

// Format draws the forest as an indented tree, one node per line.
func Format(f Forest) string {
	var b strings.Builder
	formatLevel(&b, f, "")
	return b.String()
}

func formatLevel(b *strings.Builder, nodes []Node, prefix string) {
	for i, n := range nodes {
		last := i == len(nodes)-1
		branch, next := "├─ ", "│  "
		if last {
			branch, next = "└─ ", "   "
		}
		roles := make([]string, 0, len(n.Roles))
		for _, r := range n.Roles {
			roles = append(roles, string(r))
		}
		fmt.Fprintf(b, "%s%s%s %s [%s] %s (%s)", prefix, branch, n.ID, n.Title, n.Kind(), n.ServiceID, strings.Join(roles, ","))
		if n.StatusLabel != "" {
			fmt.Fprintf(b, " «%s»", n.StatusLabel)
		}
		b.WriteByte('\n')
		formatLevel(b, n.Children, prefix+next)
	}
}
