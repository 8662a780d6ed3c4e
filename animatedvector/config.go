package animatedvector

import (
	"fmt"
	"strings"
)

// ConfigChanges is a set of configuration axes. A drawable
// whose state depends on one of them must be reloaded when it changes.
type ConfigChanges uint32

const (
	ConfigLocale ConfigChanges = 1 << iota
	ConfigLayoutDirection
	ConfigOrientation
	ConfigScreenSize
	ConfigDensity
	ConfigUIMode
)

var configNames = [...]struct {
	flag ConfigChanges
	name string
}{
	{ConfigLocale, "locale"},
	{ConfigLayoutDirection, "layoutDirection"},
	{ConfigOrientation, "orientation"},
	{ConfigScreenSize, "screenSize"},
	{ConfigDensity, "density"},
	{ConfigUIMode, "uiMode"},
}

func (c ConfigChanges) String() string {
	var chunks []string
	for _, cn := range configNames {
		if c&cn.flag != 0 {
			chunks = append(chunks, cn.name)
		}
	}
	return strings.Join(chunks, "|")
}

// ParseConfigChanges reads a list of axes separated by '|', such as
// "orientation|layoutDirection".
func ParseConfigChanges(s string) (ConfigChanges, error) {
	var out ConfigChanges
	for _, chunk := range strings.Split(s, "|") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		found := false
		for _, cn := range configNames {
			if cn.name == chunk {
				out |= cn.flag
				found = true
				break
			}
		}
		if !found {
			return out, fmt.Errorf("unknown configuration %q", chunk)
		}
	}
	return out, nil
}
