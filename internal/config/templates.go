package config

import (
	"fmt"
	"os"
)

func Template() string {
	return bitsctlTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(bitsctlTemplate), 0o600)
}

const bitsctlTemplate = `# part 1 sums packet versions, part 2 evaluates the expression.
part = 1

# input path, "-" reads stdin
input = "-"

# dump format: text | yaml | json | cbor
format = "text"

# packet nesting limit, 0 disables
max_depth = 512

log_level = "info"

# prometheus text exposition written on exit, empty disables
metrics_file = ""
`
