package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rocrate-convert/internal/app"
)

type convertOptions struct {
	Input   string
	Mapping string
	Output  string
}

func newConvertCommand() *cobra.Command {
	opts := convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a JSON-LD metadata graph to a target document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConvert(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Input, "input", "", "Input JSON-LD file or RO-Crate directory")
	cmd.Flags().StringVar(&opts.Mapping, "mapping", "", "Mapping profile path")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Output JSON path (default output/<input>.<profile>.json)")
	_ = viper.BindPFlag("input", cmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("mapping", cmd.Flags().Lookup("mapping"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runConvert(ctx context.Context, cmd *cobra.Command, opts convertOptions) error {
	service := app.NewService()
	result, err := service.Convert(ctx, app.ConvertRequest{
		InputPath:   resolveString(cmd, opts.Input, "input", "input"),
		MappingPath: resolveString(cmd, opts.Mapping, "mapping", "mapping"),
		OutputPath:  resolveString(cmd, opts.Output, "output", "output"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("converted %d document(s) to %s\n", result.Documents, result.OutputPath)
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
