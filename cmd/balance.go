package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tmalone1250/mtk-sale/jsonx"
	"github.com/Tmalone1250/mtk-sale/logx"
	"github.com/Tmalone1250/mtk-sale/utils"
)

// balanceCmd represents the balance command
var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Show token and currency balances for a principal",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runBalance(args[0]); err != nil {
			logx.Error("BALANCE CLI", err)
		}
	},
}

// accountsCmd represents the accounts command
var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Dump every token account as JSON",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runAccounts(); err != nil {
			logx.Error("ACCOUNTS CLI", err)
		}
	},
}

// supplyCmd represents the supply command
var supplyCmd = &cobra.Command{
	Use:   "supply",
	Short: "Show total and maximum supply",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSupply(); err != nil {
			logx.Error("SUPPLY CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(supplyCmd)
}

func runAccounts() error {
	rs, err := openState()
	if err != nil {
		return err
	}
	defer rs.close()

	accounts, err := rs.ledger.GetAllAccounts()
	if err != nil {
		return err
	}

	data, err := jsonx.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal accounts: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func runBalance(addr string) error {
	rs, err := openState()
	if err != nil {
		return err
	}
	defer rs.close()

	tokens, err := rs.ledger.BalanceOf(addr)
	if err != nil {
		return err
	}
	funds, err := rs.vault.BalanceOf(addr)
	if err != nil {
		return err
	}

	fmt.Printf("tokens:   %s\ncurrency: %s\n", utils.Uint256ToString(tokens), utils.Uint256ToString(funds))
	return nil
}

func runSupply() error {
	rs, err := openState()
	if err != nil {
		return err
	}
	defer rs.close()

	total, err := rs.ledger.TotalSupply()
	if err != nil {
		return err
	}
	max, err := rs.ledger.MaxSupply()
	if err != nil {
		return err
	}
	paused, err := rs.ledger.IsPaused()
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\ntotal supply: %s\nmax supply:   %s\npaused:       %t\n",
		rs.ledger.Name(), rs.ledger.Symbol(), utils.Uint256ToString(total), utils.Uint256ToString(max), paused)
	return nil
}
