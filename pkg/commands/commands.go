package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/facemenu/pkg/app"
	"tableflip.dev/facemenu/pkg/commands/options"
	"tableflip.dev/facemenu/pkg/logging"
	"tableflip.dev/facemenu/pkg/printers"
	"tableflip.dev/facemenu/pkg/store"
)

var (
	output = &options.OutputOptions{}
	mo     = &options.MenuOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "facemenu",
		Short: base.Wrap80("Build avatar expression menus on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddMenuArgs(cmd, mo)
	options.AddOutputArg(cmd, output)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addInit(topLevel)
	addMenu(topLevel)
	addShow(topLevel)
	addFind(topLevel)
	addInfo(topLevel)
	addKey(topLevel)
	addAdd(topLevel)
	addCopy(topLevel)
	addRemove(topLevel)
	addMove(topLevel)
	addMode(topLevel)
	addGroup(topLevel)
	addBranch(topLevel)
	addCondition(topLevel)
	addAnimation(topLevel)
	addMerge(topLevel)
	addWatch(topLevel)
	addMCP(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}

// env is what every command needs after configuration is loaded.
type env struct {
	settings *store.Settings
	app      *app.Service
}

func loadEnv() (*env, error) {
	settings, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	logging.Configure(settings.LogFile)
	logging.SetTraceEnabled(settings.Trace)

	repo, err := store.Load(settings)
	if err != nil {
		return nil, err
	}
	return &env{
		settings: settings,
		app:      &app.Service{Repository: repo},
	}, nil
}

func (e *env) menu() string {
	return mo.Key(e.settings)
}

type resultOutput struct {
	Operation string `json:"operation"`
	Code      string `json:"code"`
	Menu      string `json:"menu"`
	ID        string `json:"id,omitempty"`
}

// report prints a successful result, or turns a failed one into an error.
func report(cmd *cobra.Command, res app.Result) error {
	if !res.OK() {
		return fmt.Errorf("%s %s: %s: %v", res.Operation, res.MenuID, res.Code, res.Err)
	}
	if format := output.Format(); format != "" {
		p := printers.Structured{Format: format, Out: cmd.OutOrStdout()}
		return p.Print(resultOutput{
			Operation: res.Operation,
			Code:      res.Code.String(),
			Menu:      res.MenuID,
			ID:        res.ID,
		})
	}
	line := fmt.Sprintf("✓ %s %s", res.Operation, res.MenuID)
	if res.ID != "" {
		line += " " + res.ID
	}
	_, _ = color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), line)
	return nil
}

// run loads the environment and reports the result of op.
func run(cmd *cobra.Command, op func(ctx context.Context, e *env) app.Result) error {
	cmd.SilenceUsage = true
	e, err := loadEnv()
	if err != nil {
		return output.HandleError(err)
	}
	return output.HandleError(report(cmd, op(cmd.Context(), e)))
}

// itemCompletions lists mode and group ids of the configured menu.
func itemCompletions(toComplete string) []string {
	e, err := loadEnv()
	if err != nil {
		return nil
	}
	res := e.app.Get(context.Background(), e.menu())
	if !res.OK() {
		return nil
	}
	var out []string
	for _, id := range append(res.Menu.ModeIDs(), res.Menu.GroupIDs()...) {
		if strings.HasPrefix(id, toComplete) {
			out = append(out, id)
		}
	}
	return out
}

func completeItems(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return itemCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
}

func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func boolFlag(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}

func floatFlag(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return &v
}
