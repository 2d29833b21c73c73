package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rocrate-convert/internal/app"
)

type inspectOptions struct {
	Input string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize the entities of a JSON-LD metadata graph",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Input, "input", "", "Input JSON-LD file or RO-Crate directory")
	_ = viper.BindPFlag("input", cmd.Flags().Lookup("input"))
	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, opts inspectOptions) error {
	service := app.NewService()
	result, err := service.Inspect(ctx, app.InspectRequest{
		InputPath: resolveString(cmd, opts.Input, "input", "input"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("entities: %d\n", result.Entities)
	fmt.Printf("datasets: %d\n", result.Datasets)
	fmt.Printf("hierarchical: %t\n", result.Hierarchical)
	for _, classifier := range []string{"Investigation", "Study", "Assay", "Material"} {
		if count := result.Classifiers[classifier]; count > 0 {
			fmt.Printf("%s: %d\n", classifier, count)
		}
	}
	return nil
}
