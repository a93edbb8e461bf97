package cli

import (
	"fmt"

	"github.com/julianstephens/thoughts/internal/constants"
	"github.com/julianstephens/thoughts/internal/state"
	"github.com/julianstephens/thoughts/internal/storage"
	"github.com/julianstephens/thoughts/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	result, err := validateStore(ctx)
	if err != nil {
		return err
	}

	ctx.println(result.FormatReport())
	if result.HasConflicts() {
		return fmt.Errorf("validation found %d conflict(s)", len(result.Conflicts))
	}
	return nil
}

// validateStore checks the stored list, and the key counter when the
// monotonic policy is in use.
func validateStore(ctx *Context) (validation.ValidationResult, error) {
	thoughts, err := storage.LoadThoughts(ctx.Store)
	if err != nil {
		return validation.ValidationResult{}, err
	}

	validator := validation.New()
	result := validator.ValidateThoughts(thoughts)

	if ctx.Options.Policy != state.KeyPolicyLength {
		next, err := storage.LoadNextKey(ctx.Store)
		if err != nil {
			return validation.ValidationResult{}, err
		}
		// A missing counter is derived from the list on load
		if _, present, _ := ctx.Store.GetItem(constants.NextKeyKey); present {
			result.Merge(validator.ValidateCounter(thoughts, next))
		}
	}
	return result, nil
}
