package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveTheme updates theme.name in the config file, preserving comments
// and formatting in every other section by editing the yaml.Node tree
// rather than re-marshalling the whole config.
func SaveTheme(configPath string, name string) error {
	data, err := os.ReadFile(configPath) //nolint:gosec // G304: path is the user's own config file
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	if doc.Kind == 0 {
		// Empty or new file - create document structure
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{
					Kind: yaml.MappingNode,
					Content: []*yaml.Node{
						{Kind: yaml.ScalarNode, Value: "theme"},
						{
							Kind: yaml.MappingNode,
							Content: []*yaml.Node{
								{Kind: yaml.ScalarNode, Value: "name"},
								{Kind: yaml.ScalarNode, Value: name},
							},
						},
					},
				},
			},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind == yaml.MappingNode {
			setThemeName(root, name)
		}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

// setThemeName updates or creates the theme.name entry on the root
// mapping node.
func setThemeName(root *yaml.Node, name string) {
	var themeNode *yaml.Node
	for i := 0; i < len(root.Content)-1; i += 2 {
		if root.Content[i].Value == "theme" {
			themeNode = root.Content[i+1]
			break
		}
	}
	if themeNode == nil {
		themeNode = &yaml.Node{Kind: yaml.MappingNode}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: "theme"},
			themeNode,
		)
	}
	if themeNode.Kind != yaml.MappingNode {
		themeNode.Kind = yaml.MappingNode
		themeNode.Tag = ""
		themeNode.Value = ""
		themeNode.Content = nil
	}
	for i := 0; i < len(themeNode.Content)-1; i += 2 {
		if themeNode.Content[i].Value == "name" {
			themeNode.Content[i+1].Value = name
			themeNode.Content[i+1].Tag = ""
			return
		}
	}
	themeNode.Content = append(themeNode.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "name"},
		&yaml.Node{Kind: yaml.ScalarNode, Value: name},
	)
}

// writeAtomic writes via a temp file and rename so a crash never leaves
// a truncated config.
func writeAtomic(configPath string, content []byte) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".tint.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(content); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
