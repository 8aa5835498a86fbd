package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mailbridge/mailbridge/internal/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the executor version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.GetVersion())
		},
	}
}
