package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Tmalone1250/mtk-sale/logx"
)

var rootCmd = &cobra.Command{
	Use:   "mtk",
	Short: "MTK token and exchange CLI",
	Long:  "Command line interface for operating the MTK capped token ledger and its fixed-rate exchange.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error("CMD", "Command execution failed:", err)
		os.Exit(1)
	}
}
