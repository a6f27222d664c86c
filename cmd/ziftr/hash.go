package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dominant-strategies/go-ziftr/cmd/utils"
	"github.com/dominant-strategies/go-ziftr/consensus/ziftr"
	"github.com/dominant-strategies/go-ziftr/log"
)

var hashCmd = &cobra.Command{
	Use:   "hash",
	Short: "prints the ziftr digest of a header",
	Long: `hashes the header given by --header once with the plain cascade and prints the
permutation it selected, the visible digest and the proof digest that embeds the
kernel data bits into the version word.`,
	RunE:    runHash,
	Example: `go-ziftr hash --header=0x01000000...`,
}

func init() {
	rootCmd.AddCommand(hashCmd)
	utils.CreateAndBindFlag(utils.HeaderFlag, hashCmd)
}

func runHash(cmd *cobra.Command, args []string) error {
	header, err := utils.HeaderFromConfig()
	if err != nil {
		return err
	}
	digest := ziftr.Combine(&header)
	kernel := ziftr.KernelData(header)
	sealed := header
	sealed.SetVersion(header.BaseVersion() | kernel)
	index := ziftr.OrderOf(&header)
	order := ziftr.OrderAt(index)

	log.Global.WithFields(log.Fields{
		"order": index,
		"chain": order,
	}).Debug("Hashed header")

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "order:  %d %v\n", index, order)
	fmt.Fprintf(out, "digest: %s\n", digest.Hash().Hex())
	fmt.Fprintf(out, "kernel: %#08x\n", kernel)
	fmt.Fprintf(out, "sealed: %s\n", sealed.Hex())
	fmt.Fprintf(out, "proof:  %s\n", ziftr.ProofHash(sealed).Hex())
	return nil
}
