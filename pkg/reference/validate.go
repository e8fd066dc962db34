package reference

import (
	"fmt"

	"github.com/praetorian-inc/rexp/pkg/matcher"
)

// ValidateSyntaxEntry checks required fields and that the construct compiles
// on every engine it claims.
func ValidateSyntaxEntry(en Entry) error {
	if err := validateFields(en); err != nil {
		return err
	}
	for _, e := range enginesOf(en) {
		if _, err := matcher.Compile(en.Code, engineConfig(e)); err != nil {
			return fmt.Errorf("syntax %q does not compile on %s: %w", en.Code, e, err)
		}
	}
	return nil
}

// ValidateModifier checks that (?code) is accepted by every engine the modifier claims.
func ValidateModifier(en Entry) error {
	if err := validateFields(en); err != nil {
		return err
	}
	for _, e := range enginesOf(en) {
		pattern := "(?" + en.Code + ")a"
		if _, err := matcher.Compile(pattern, engineConfig(e)); err != nil {
			return fmt.Errorf("modifier %q is not accepted by %s: %w", en.Code, e, err)
		}
	}
	return nil
}

// Validate checks every entry of the tables.
func (t *Tables) Validate() error {
	for _, en := range t.Syntax {
		if err := ValidateSyntaxEntry(en); err != nil {
			return err
		}
	}
	for _, en := range t.Modifiers {
		if err := ValidateModifier(en); err != nil {
			return err
		}
	}
	return nil
}

func validateFields(en Entry) error {
	if en.Code == "" {
		return fmt.Errorf("reference entry code is required")
	}
	if en.Description == "" {
		return fmt.Errorf("reference entry %q description is required", en.Code)
	}
	return nil
}

func enginesOf(en Entry) []matcher.Engine {
	if len(en.Engines) == 0 {
		return matcher.Engines()
	}
	return en.Engines
}

func engineConfig(e matcher.Engine) matcher.Config {
	cfg := matcher.DefaultConfig()
	cfg.Engine = e
	return cfg
}
