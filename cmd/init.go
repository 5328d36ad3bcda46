package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tmalone1250/mtk-sale/config"
	"github.com/Tmalone1250/mtk-sale/events"
	"github.com/Tmalone1250/mtk-sale/ledger"
	"github.com/Tmalone1250/mtk-sale/logx"
	"github.com/Tmalone1250/mtk-sale/roles"
	"github.com/Tmalone1250/mtk-sale/types"
	"github.com/Tmalone1250/mtk-sale/utils"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the ledger and exchange from genesis.yml",
	Long: `Creates a fresh store, records the token info, grants the initial
admin/minter/pauser roles, mints the initial balance to the founding
principal, and records the exchange owner and rates.

The exchange is granted the minter role as part of genesis so it can
serve buys past its reserve.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInit(); err != nil {
			logx.Error("INIT CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit() error {
	gen, err := config.LoadGenesisConfig(genesisPath)
	if err != nil {
		return fmt.Errorf("failed to load genesis: %w", err)
	}

	stores, err := loadStores()
	if err != nil {
		return err
	}
	defer stores.MustClose()

	maxSupply, err := utils.Uint256FromString(gen.Token.MaxSupply)
	if err != nil {
		return fmt.Errorf("invalid max supply: %w", err)
	}
	initialBalance, err := utils.Uint256FromString(gen.Token.InitialBalance)
	if err != nil {
		return fmt.Errorf("invalid initial balance: %w", err)
	}
	buyPrice, err := utils.Uint256FromString(gen.Exchange.BuyPrice)
	if err != nil {
		return fmt.Errorf("invalid buy price: %w", err)
	}
	sellPrice, err := utils.Uint256FromString(gen.Exchange.SellPrice)
	if err != nil {
		return fmt.Errorf("invalid sell price: %w", err)
	}

	eventBus := events.NewEventBus()
	permissions := roles.NewPermissionStore(stores, eventBus, time.Duration(gen.Admin.TransferDelaySecs)*time.Second)

	led, err := ledger.NewLedger(gen.Token.Name, gen.Token.Symbol, maxSupply, stores, permissions, eventBus)
	if err != nil {
		return err
	}

	// genesis grants go straight to the role store; there is no admin yet
	// to authorize them
	if err := stores.Role.Grant(types.RoleAdmin, gen.Admin.Address); err != nil {
		return err
	}
	if err := stores.Role.Grant(types.RoleMinter, gen.Token.InitialHolder); err != nil {
		return err
	}
	if err := stores.Role.Grant(types.RolePauser, gen.Token.InitialHolder); err != nil {
		return err
	}
	if err := stores.Role.Grant(types.RoleMinter, gen.Exchange.Address); err != nil {
		return err
	}

	if !initialBalance.IsZero() {
		if err := led.Mint(gen.Token.InitialHolder, gen.Token.InitialHolder, initialBalance); err != nil {
			return fmt.Errorf("failed to mint initial balance: %w", err)
		}
	}

	if err := stores.Meta.SetOwner(gen.Exchange.Owner); err != nil {
		return err
	}
	if err := stores.Meta.SetRates(buyPrice, sellPrice); err != nil {
		return err
	}

	logx.Info("INIT CLI", fmt.Sprintf("Initialized %s (%s): max supply %s, initial balance %s to %s",
		gen.Token.Name, gen.Token.Symbol, gen.Token.MaxSupply, gen.Token.InitialBalance, utils.ShortenLog(gen.Token.InitialHolder)))
	fmt.Printf("Initialized %s (%s)\n", gen.Token.Name, gen.Token.Symbol)
	return nil
}
