package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// RenderDefaultYAML renders a commented markgen.yaml holding every default.
func RenderDefaultYAML() string {
	var b strings.Builder
	b.WriteString("# markgen configuration (YAML)\n")

	var topLevel []ConfigOption
	sections := make(map[string][]ConfigOption)
	var sectionOrder []string

	for _, o := range GetConfigOptions() {
		section, key, ok := strings.Cut(o.Key, ".")
		if !ok {
			topLevel = append(topLevel, o)
			continue
		}
		if _, seen := sections[section]; !seen {
			sectionOrder = append(sectionOrder, section)
		}
		sections[section] = append(sections[section], ConfigOption{Key: key, Default: o.Default, Comment: o.Comment})
	}

	for _, o := range topLevel {
		writeYAMLOption(&b, "", o)
	}
	for _, section := range sectionOrder {
		b.WriteString("\n" + section + ":\n")
		for _, o := range sections[section] {
			writeYAMLOption(&b, "  ", o)
		}
	}
	return b.String()
}

func writeYAMLOption(b *strings.Builder, indent string, o ConfigOption) {
	if o.Comment != "" {
		fmt.Fprintf(b, "%s# %s\n", indent, o.Comment)
	}
	fmt.Fprintf(b, "%s%s: %s\n", indent, o.Key, yamlScalar(o.Default))
}

func yamlScalar(v any) string {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSuffix(string(out), "\n")
}

// Effective renders the resolved value of every known key as YAML.
func Effective(v *viper.Viper) ([]byte, error) {
	root := make(map[string]any)
	for _, o := range GetConfigOptions() {
		section, key, ok := strings.Cut(o.Key, ".")
		if !ok {
			root[o.Key] = v.Get(o.Key)
			continue
		}
		m, _ := root[section].(map[string]any)
		if m == nil {
			m = make(map[string]any)
			root[section] = m
		}
		m[key] = v.Get(o.Key)
	}
	out, err := yaml.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return out, nil
}
