package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dominant-strategies/go-ziftr/cmd/utils"
	"github.com/dominant-strategies/go-ziftr/consensus/ziftr"
	"github.com/dominant-strategies/go-ziftr/log"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "checks a sealed header against a target",
	Long: `verifies that the header given by --header carries the kernel data of its own
base header and that its final digest meets --target (or the target derived from
--difficulty). Exits non-zero when the seal is invalid.`,
	RunE:         runVerify,
	SilenceUsage: true,
	Example:      `go-ziftr verify --header=0x... --difficulty=16`,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	for _, flag := range []utils.Flag{utils.HeaderFlag, utils.TargetFlag, utils.DifficultyFlag} {
		utils.CreateAndBindFlag(flag, verifyCmd)
	}
}

func runVerify(cmd *cobra.Command, args []string) error {
	header, err := utils.HeaderFromConfig()
	if err != nil {
		return err
	}
	target, err := utils.TargetFromConfig()
	if err != nil {
		return err
	}
	engine := ziftr.New(ziftr.Config{Log: log.Global})
	defer engine.Close()

	if err := engine.VerifySeal(header, target); err != nil {
		log.Global.WithFields(log.Fields{
			"nonce":  header.Nonce(),
			"target": target.Hex(),
			"err":    err,
		}).Warn("Invalid seal")
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "valid: %s\n", ziftr.ProofHash(header).Hex())
	return nil
}
