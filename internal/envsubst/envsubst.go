package envsubst

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	envSubstRe = regexp.MustCompile(`\$?\$\{([^}]+)\}`)
)

// Replace substitutes ${NAME} references in text with values from vars.
// $${NAME} is left in the text as ${NAME}. Unknown names are replaced
// with an empty string and reported in a *KeyError.
func Replace(text string, vars map[string]string) (string, error) {
	unknownKeys := make(map[string]bool)
	s := envSubstRe.ReplaceAllStringFunc(text, func(match string) string {
		// replace escaped characters
		if strings.HasPrefix(match, "$$") {
			return match[1:]
		}

		// remove surrounding ${} characters
		key := strings.TrimSpace(match[2 : len(match)-1])

		v, ok := vars[key]
		if !ok {
			unknownKeys[key] = true
		}
		return v
	})

	if len(unknownKeys) == 0 {
		return s, nil
	}

	unknownKeysSlice := make([]string, 0, len(unknownKeys))
	for key := range unknownKeys {
		unknownKeysSlice = append(unknownKeysSlice, key)
	}
	sort.Strings(unknownKeysSlice)

	return s, &KeyError{keys: unknownKeysSlice}
}

type KeyError struct {
	keys []string
}

// MissingKeys returns the unknown names in sorted order.
func (this *KeyError) MissingKeys() []string {
	return this.keys
}

func (this *KeyError) Error() string {
	return fmt.Sprintf("no value found for keys: %s", strings.Join(this.keys, ", "))
}
