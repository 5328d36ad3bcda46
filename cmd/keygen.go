package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tmalone1250/mtk-sale/config"
	"github.com/Tmalone1250/mtk-sale/logx"
)

var keygenOutFile string

// keygenCmd represents the keygen command
var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a principal keypair",
	Long:  "Generates an Ed25519 keypair, prints the base58 address, and writes the hex private key to a file.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runKeygen(); err != nil {
			logx.Error("KEYGEN CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)

	keygenCmd.Flags().StringVarP(&keygenOutFile, "out", "o", "key.txt", "output file for the private key")
}

func runKeygen() error {
	addr, privHex, err := config.GenerateKeypair()
	if err != nil {
		return fmt.Errorf("failed to generate keypair: %w", err)
	}

	if err := os.WriteFile(keygenOutFile, []byte(privHex), 0o600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}

	fmt.Printf("address: %s\nprivate key written to %s\n", addr, keygenOutFile)
	return nil
}
