package scaffold

import "fmt"

// AllowedNameChars describes the character set accepted by ValidateName.
const AllowedNameChars = "[a-z0-9_]"

// ValidationError reports an extension name that cannot be used.
type ValidationError struct {
	Name string
	Char rune // offending character, zero when the name is empty
}

func (e *ValidationError) Error() string {
	if e.Name == "" {
		return "extension name is empty; it must be in the set of " + AllowedNameChars
	}
	return fmt.Sprintf("invalid extension name %q: character %q is not allowed; extension name must be in the set of %s",
		e.Name, e.Char, AllowedNameChars)
}

// ValidateName checks that every character of name is a lowercase ASCII
// letter, a digit or an underscore. Uppercase letters are rejected.
func ValidateName(name string) error {
	if name == "" {
		return &ValidationError{Name: name}
	}
	for _, c := range name {
		if !isNameChar(c) {
			return &ValidationError{Name: name, Char: c}
		}
	}
	return nil
}

func isNameChar(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_'
}
