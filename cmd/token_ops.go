package cmd

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	"github.com/Tmalone1250/mtk-sale/logx"
)

type tokenOpConfig struct {
	From   string
	To     string
	Owner  string
	Amount string
}

var tokenOpCfg tokenOpConfig

// parseAmount parses a decimal amount, allowing _ separators like 1_000
func parseAmount(s string) (*uint256.Int, error) {
	amount, err := uint256.FromDecimal(strings.ReplaceAll(s, "_", ""))
	if err != nil {
		return nil, fmt.Errorf("could not parse amount string: %v", err)
	}
	return amount, nil
}

// mintCmd represents the mint command
var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint new tokens to a principal (minter only)",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runLedgerOp(func(rs *runtimeState, amount *uint256.Int) error {
			return rs.ledger.Mint(tokenOpCfg.From, tokenOpCfg.To, amount)
		}); err != nil {
			logx.Error("MINT CLI", err)
		}
	},
}

// transferCmd represents the transfer command
var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfer tokens to another principal",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runLedgerOp(func(rs *runtimeState, amount *uint256.Int) error {
			return rs.ledger.Transfer(tokenOpCfg.From, tokenOpCfg.To, amount)
		}); err != nil {
			logx.Error("TRANSFER CLI", err)
		}
	},
}

// approveCmd represents the approve command
var approveCmd = &cobra.Command{
	Use:   "approve",
	Short: "Set a spender allowance",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runLedgerOp(func(rs *runtimeState, amount *uint256.Int) error {
			return rs.ledger.Approve(tokenOpCfg.From, tokenOpCfg.To, amount)
		}); err != nil {
			logx.Error("APPROVE CLI", err)
		}
	},
}

// transferFromCmd represents the transfer-from command
var transferFromCmd = &cobra.Command{
	Use:   "transfer-from",
	Short: "Transfer tokens on the strength of an allowance",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runLedgerOp(func(rs *runtimeState, amount *uint256.Int) error {
			return rs.ledger.TransferFrom(tokenOpCfg.From, tokenOpCfg.Owner, tokenOpCfg.To, amount)
		}); err != nil {
			logx.Error("TRANSFER CLI", err)
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{mintCmd, transferCmd, approveCmd, transferFromCmd} {
		c.Flags().StringVarP(&tokenOpCfg.From, "from", "f", "", "acting principal")
		c.Flags().StringVarP(&tokenOpCfg.To, "to", "t", "", "recipient (or spender for approve)")
		c.Flags().StringVarP(&tokenOpCfg.Amount, "amount", "a", "", "amount in smallest units")
		_ = c.MarkFlagRequired("from")
		_ = c.MarkFlagRequired("to")
		_ = c.MarkFlagRequired("amount")
		rootCmd.AddCommand(c)
	}
	transferFromCmd.Flags().StringVarP(&tokenOpCfg.Owner, "owner", "w", "", "balance owner the allowance draws on")
	_ = transferFromCmd.MarkFlagRequired("owner")
}

func runLedgerOp(op func(rs *runtimeState, amount *uint256.Int) error) error {
	amount, err := parseAmount(tokenOpCfg.Amount)
	if err != nil {
		return err
	}

	rs, err := openState()
	if err != nil {
		return err
	}
	defer rs.close()

	if err := op(rs, amount); err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}
