package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Tmalone1250/mtk-sale/logx"
)

type ownerOpConfig struct {
	Caller    string
	Candidate string
}

var ownerOpCfg ownerOpConfig

// proposeOwnerCmd represents the propose-owner command
var proposeOwnerCmd = &cobra.Command{
	Use:   "propose-owner",
	Short: "Propose a new exchange owner (current owner only)",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runOwnerOp(func(rs *runtimeState) error {
			return rs.exchange.ProposeOwner(ownerOpCfg.Caller, ownerOpCfg.Candidate)
		}); err != nil {
			logx.Error("OWNER CLI", err)
		}
	},
}

// acceptOwnerCmd represents the accept-owner command
var acceptOwnerCmd = &cobra.Command{
	Use:   "accept-owner",
	Short: "Accept a pending exchange ownership transfer",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runOwnerOp(func(rs *runtimeState) error {
			return rs.exchange.AcceptOwner(ownerOpCfg.Caller)
		}); err != nil {
			logx.Error("OWNER CLI", err)
		}
	},
}

// cancelOwnerCmd represents the cancel-owner command
var cancelOwnerCmd = &cobra.Command{
	Use:   "cancel-owner",
	Short: "Cancel a pending exchange ownership transfer (current owner only)",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runOwnerOp(func(rs *runtimeState) error {
			return rs.exchange.CancelOwner(ownerOpCfg.Caller)
		}); err != nil {
			logx.Error("OWNER CLI", err)
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{proposeOwnerCmd, acceptOwnerCmd, cancelOwnerCmd} {
		c.Flags().StringVarP(&ownerOpCfg.Caller, "caller", "c", "", "acting principal")
		rootCmd.AddCommand(c)
	}
	proposeOwnerCmd.Flags().StringVarP(&ownerOpCfg.Candidate, "candidate", "n", "", "proposed owner")
	_ = proposeOwnerCmd.MarkFlagRequired("candidate")
}

func runOwnerOp(op func(rs *runtimeState) error) error {
	rs, err := openState()
	if err != nil {
		return err
	}
	defer rs.close()
	return op(rs)
}
