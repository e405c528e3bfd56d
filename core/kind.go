package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind identifies an element variant.
type Kind int

const (
	KindUnknown Kind = iota
	KindTitle
	KindSection
	KindText
	KindEmphasis
	KindBold
	KindHorizontalLine
	KindUnorderedList
	KindOrderedList
	KindImage
	KindLink
	KindTable
)

var kindNames = map[Kind]string{
	KindTitle:          "title",
	KindSection:        "section",
	KindText:           "text",
	KindEmphasis:       "emphasis",
	KindBold:           "bold",
	KindHorizontalLine: "rule",
	KindUnorderedList:  "unordered",
	KindOrderedList:    "ordered",
	KindImage:          "image",
	KindLink:           "link",
	KindTable:          "table",
}

// kindAliases are extra spellings accepted by ParseKind.
var kindAliases = map[string]Kind{
	"heading":        KindSection,
	"italic":         KindEmphasis,
	"strong":         KindBold,
	"hr":             KindHorizontalLine,
	"horizontalline": KindHorizontalLine,
	"ul":             KindUnorderedList,
	"unorderedlist":  KindUnorderedList,
	"ol":             KindOrderedList,
	"orderedlist":    KindOrderedList,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalJSON encodes the kind by name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// ParseKind resolves a kind name as written in document descriptions.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.NewReplacer("_", "", "-", "").Replace(name)
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	if k, ok := kindAliases[name]; ok {
		return k, nil
	}
	return KindUnknown, fmt.Errorf("unknown element kind %q", s)
}
