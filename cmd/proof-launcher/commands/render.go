package commands

import (
	"fmt"

	"github.com/proofworks/proof-launcher/pkg/security"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <proof-dir>",
	Short: "Print the boot script a launch would attach for a proof directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	proofDir := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	validator := security.NewValidator(security.MaxUserDataSize)
	if err := validator.ValidateProofDir(proofDir); err != nil {
		return err
	}

	script, err := newScript(cfg)
	if err != nil {
		return err
	}

	userData := script.Render(proofDir)
	if err := validator.ValidateUserDataSize(len(userData)); err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), userData)
	return nil
}
