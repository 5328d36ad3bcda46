package cmd

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	"github.com/Tmalone1250/mtk-sale/logx"
	"github.com/Tmalone1250/mtk-sale/utils"
)

type exchangeOpConfig struct {
	Caller string
	Amount string
}

var exchangeOpCfg exchangeOpConfig

// buyCmd represents the buy command
var buyCmd = &cobra.Command{
	Use:   "buy",
	Short: "Buy tokens with settlement currency",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runExchangeOp(func(rs *runtimeState, amount *uint256.Int) error {
			return rs.exchange.Buy(exchangeOpCfg.Caller, amount)
		}); err != nil {
			logx.Error("BUY CLI", err)
		}
	},
}

// sellCmd represents the sell command
var sellCmd = &cobra.Command{
	Use:   "sell",
	Short: "Sell tokens back to the exchange (requires a prior approve)",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runExchangeOp(func(rs *runtimeState, amount *uint256.Int) error {
			return rs.exchange.Sell(exchangeOpCfg.Caller, amount)
		}); err != nil {
			logx.Error("SELL CLI", err)
		}
	},
}

// depositCmd represents the deposit command
var depositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "Create settlement currency for a principal",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runExchangeOp(func(rs *runtimeState, amount *uint256.Int) error {
			return rs.vault.Deposit(exchangeOpCfg.Caller, amount)
		}); err != nil {
			logx.Error("DEPOSIT CLI", err)
		}
	},
}

// withdrawCurrencyCmd represents the withdraw-currency command
var withdrawCurrencyCmd = &cobra.Command{
	Use:   "withdraw-currency",
	Short: "Withdraw the exchange's currency treasury (owner only)",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runAdminOp(func(rs *runtimeState) error {
			return rs.exchange.WithdrawCurrency(adminOpCfg.Caller)
		}); err != nil {
			logx.Error("WITHDRAW CLI", err)
		}
	},
}

// withdrawTokensCmd represents the withdraw-tokens command
var withdrawTokensCmd = &cobra.Command{
	Use:   "withdraw-tokens",
	Short: "Withdraw tokens from the exchange reserve (owner only)",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runExchangeOp(func(rs *runtimeState, amount *uint256.Int) error {
			return rs.exchange.WithdrawTokens(exchangeOpCfg.Caller, amount)
		}); err != nil {
			logx.Error("WITHDRAW CLI", err)
		}
	},
}

// reserveCmd represents the reserve command
var reserveCmd = &cobra.Command{
	Use:   "reserve",
	Short: "Show the exchange's token reserve and currency treasury",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runReserve(); err != nil {
			logx.Error("RESERVE CLI", err)
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{buyCmd, sellCmd, depositCmd, withdrawTokensCmd} {
		c.Flags().StringVarP(&exchangeOpCfg.Caller, "caller", "c", "", "acting principal")
		c.Flags().StringVarP(&exchangeOpCfg.Amount, "amount", "a", "", "amount in smallest units")
		_ = c.MarkFlagRequired("caller")
		_ = c.MarkFlagRequired("amount")
		rootCmd.AddCommand(c)
	}
	withdrawCurrencyCmd.Flags().StringVarP(&adminOpCfg.Caller, "caller", "c", "", "acting principal")
	_ = withdrawCurrencyCmd.MarkFlagRequired("caller")
	rootCmd.AddCommand(withdrawCurrencyCmd)
	rootCmd.AddCommand(reserveCmd)
}

func runExchangeOp(op func(rs *runtimeState, amount *uint256.Int) error) error {
	amount, err := parseAmount(exchangeOpCfg.Amount)
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

func runReserve() error {
	rs, err := openState()
	if err != nil {
		return err
	}
	defer rs.close()

	reserve, err := rs.exchange.Reserve()
	if err != nil {
		return err
	}
	treasury, err := rs.exchange.CurrencyBalance()
	if err != nil {
		return err
	}
	owner, err := rs.exchange.Owner()
	if err != nil {
		return err
	}

	fmt.Printf("reserve:  %s\ntreasury: %s\nowner:    %s\n", utils.Uint256ToString(reserve), utils.Uint256ToString(treasury), owner)
	return nil
}
