package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tmalone1250/mtk-sale/logx"
)

type adminOpConfig struct {
	Caller    string
	Role      string
	Principal string
	NotBefore int64
}

var adminOpCfg adminOpConfig

// grantCmd represents the grant command
var grantCmd = &cobra.Command{
	Use:   "grant",
	Short: "Grant a role to a principal (admin only)",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runAdminOp(func(rs *runtimeState) error {
			return rs.permissions.Grant(adminOpCfg.Caller, adminOpCfg.Role, adminOpCfg.Principal)
		}); err != nil {
			logx.Error("GRANT CLI", err)
		}
	},
}

// revokeCmd represents the revoke command
var revokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Revoke a role from a principal (admin only)",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runAdminOp(func(rs *runtimeState) error {
			return rs.permissions.Revoke(adminOpCfg.Caller, adminOpCfg.Role, adminOpCfg.Principal)
		}); err != nil {
			logx.Error("REVOKE CLI", err)
		}
	},
}

// proposeAdminCmd represents the propose-admin command
var proposeAdminCmd = &cobra.Command{
	Use:   "propose-admin",
	Short: "Propose a two-step admin handover (admin only)",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runAdminOp(func(rs *runtimeState) error {
			return rs.permissions.ProposeAdmin(adminOpCfg.Caller, adminOpCfg.Principal, adminOpCfg.NotBefore)
		}); err != nil {
			logx.Error("ADMIN CLI", err)
		}
	},
}

// acceptAdminCmd represents the accept-admin command
var acceptAdminCmd = &cobra.Command{
	Use:   "accept-admin",
	Short: "Accept a pending admin handover (candidate only)",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runAdminOp(func(rs *runtimeState) error {
			return rs.permissions.AcceptAdmin(adminOpCfg.Caller)
		}); err != nil {
			logx.Error("ADMIN CLI", err)
		}
	},
}

// cancelAdminCmd represents the cancel-admin command
var cancelAdminCmd = &cobra.Command{
	Use:   "cancel-admin",
	Short: "Cancel a pending admin handover (admin only)",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runAdminOp(func(rs *runtimeState) error {
			return rs.permissions.CancelAdmin(adminOpCfg.Caller)
		}); err != nil {
			logx.Error("ADMIN CLI", err)
		}
	},
}

// pauseCmd represents the pause command
var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause all balance mutation (pauser only)",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runAdminOp(func(rs *runtimeState) error {
			return rs.ledger.Pause(adminOpCfg.Caller)
		}); err != nil {
			logx.Error("PAUSE CLI", err)
		}
	},
}

// unpauseCmd represents the unpause command
var unpauseCmd = &cobra.Command{
	Use:   "unpause",
	Short: "Lift the pause flag (pauser only)",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runAdminOp(func(rs *runtimeState) error {
			return rs.ledger.Unpause(adminOpCfg.Caller)
		}); err != nil {
			logx.Error("PAUSE CLI", err)
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{grantCmd, revokeCmd, proposeAdminCmd, acceptAdminCmd, cancelAdminCmd, pauseCmd, unpauseCmd} {
		c.Flags().StringVarP(&adminOpCfg.Caller, "caller", "c", "", "acting principal")
		_ = c.MarkFlagRequired("caller")
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{grantCmd, revokeCmd} {
		c.Flags().StringVarP(&adminOpCfg.Role, "role", "r", "", "role identifier (admin, minter, pauser)")
		c.Flags().StringVarP(&adminOpCfg.Principal, "principal", "p", "", "principal the role change applies to")
		_ = c.MarkFlagRequired("role")
		_ = c.MarkFlagRequired("principal")
	}
	proposeAdminCmd.Flags().StringVarP(&adminOpCfg.Principal, "candidate", "p", "", "proposed admin principal")
	proposeAdminCmd.Flags().Int64Var(&adminOpCfg.NotBefore, "not-before", 0, "earliest acceptance time (unix seconds, 0 = now plus configured delay)")
	_ = proposeAdminCmd.MarkFlagRequired("candidate")
}

func runAdminOp(op func(rs *runtimeState) error) error {
	rs, err := openState()
	if err != nil {
		return err
	}
	defer rs.close()

	if err := op(rs); err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}
