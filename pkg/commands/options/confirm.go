package options

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// ConfirmOptions
type ConfirmOptions struct {
	Yes bool
}

func AddConfirmArgs(cmd *cobra.Command, o *ConfirmOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		`Do not ask for confirmation.`)
}

// Confirm asks label as a yes/no question unless --yes was given.
func (o *ConfirmOptions) Confirm(label string) (bool, error) {
	if o.Yes {
		return true, nil
	}
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} ",
		Valid:   "{{ . | green }} ",
		Invalid: "{{ . | red }} ",
		Success: "{{ . | bold }} ",
	}
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Templates: templates,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return true, nil
}
