package options

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OutputOptions
type OutputOptions struct {
	JSON   bool
	Output string
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.PersistentFlags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
	cmd.PersistentFlags().StringVarP(&po.Output, "output", "o", "",
		"Output format. One of 'json' or 'yaml'. Default is human readable text.")
}

// Format returns the structured format requested, or empty for text.
func (o *OutputOptions) Format() string {
	if o.JSON {
		return "json"
	}
	return o.Output
}

func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}
