package store

// Declare database key prefix for objects
const (
	PrefixAccount   = "account:"
	PrefixAllowance = "allowance:"
	PrefixRole      = "role:"
	PrefixCurrency  = "currency:"

	MetaKeyTokenName    = "meta:token_name"
	MetaKeyTokenSymbol  = "meta:token_symbol"
	MetaKeyMaxSupply    = "meta:max_supply"
	MetaKeyTotalSupply  = "meta:total_supply"
	MetaKeyPaused       = "meta:paused"
	MetaKeyPendingAdmin = "meta:pending_admin"
	MetaKeyOwner        = "meta:exchange_owner"
	MetaKeyPendingOwner = "meta:pending_owner"
	MetaKeyBuyPrice     = "meta:buy_price"
	MetaKeySellPrice    = "meta:sell_price"
)
