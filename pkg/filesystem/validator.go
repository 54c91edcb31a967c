package filesystem

import (
	"fmt"
	"strings"
)

// MaxFileNameLength bounds item names in bytes.
const MaxFileNameLength = 256

// validateName checks a folder or file name.
func validateName(name string) error {
	if len(name) >= MaxFileNameLength || len(name) == 0 {
		return ErrIllegalObjectName.WithError(fmt.Errorf("length of name must be between 1 and 255"))
	}

	if strings.ContainsAny(name, "\\/:*?\"<>|") {
		return ErrIllegalObjectName.WithError(fmt.Errorf("name contains illegal characters"))
	}

	if name == "." || name == ".." {
		return ErrIllegalObjectName.WithError(fmt.Errorf("name cannot be only dot"))
	}

	if strings.TrimSpace(name) != name {
		return ErrIllegalObjectName.WithError(fmt.Errorf("name cannot start or end with spaces"))
	}

	return nil
}
