package events

import (
	"time"

	"github.com/holiman/uint256"
)

// EventType is an enum-like string type for ledger and exchange events
type EventType string

const (
	EventMinted             EventType = "Minted"
	EventTransferred        EventType = "Transferred"
	EventApproved           EventType = "Approved"
	EventPaused             EventType = "Paused"
	EventUnpaused           EventType = "Unpaused"
	EventRoleGranted        EventType = "RoleGranted"
	EventRoleRevoked        EventType = "RoleRevoked"
	EventAdminProposed      EventType = "AdminProposed"
	EventAdminAccepted      EventType = "AdminAccepted"
	EventAdminCanceled      EventType = "AdminCanceled"
	EventPurchased          EventType = "Purchased"
	EventSold               EventType = "Sold"
	EventCurrencyWithdrawn  EventType = "CurrencyWithdrawn"
	EventTokensWithdrawn    EventType = "TokensWithdrawn"
	EventOwnershipProposed  EventType = "OwnershipProposed"
	EventOwnershipAccepted  EventType = "OwnershipAccepted"
	EventOwnershipCanceled  EventType = "OwnershipCanceled"
)

// LedgerEvent represents any state transition in the ledger or exchange.
// Each successful mutating operation emits exactly one of these.
type LedgerEvent interface {
	Type() EventType
	Timestamp() time.Time
	Principal() string
}

// Minted event when new supply is created for a principal
type Minted struct {
	to        string
	amount    *uint256.Int
	minter    string
	timestamp time.Time
}

func NewMinted(to string, amount *uint256.Int, minter string) *Minted {
	return &Minted{to: to, amount: amount, minter: minter, timestamp: time.Now()}
}

func (e *Minted) Type() EventType      { return EventMinted }
func (e *Minted) Timestamp() time.Time { return e.timestamp }
func (e *Minted) Principal() string    { return e.to }
func (e *Minted) Amount() *uint256.Int { return e.amount }
func (e *Minted) Minter() string       { return e.minter }

// Transferred event when balance moves between principals
type Transferred struct {
	from      string
	to        string
	amount    *uint256.Int
	timestamp time.Time
}

func NewTransferred(from, to string, amount *uint256.Int) *Transferred {
	return &Transferred{from: from, to: to, amount: amount, timestamp: time.Now()}
}

func (e *Transferred) Type() EventType      { return EventTransferred }
func (e *Transferred) Timestamp() time.Time { return e.timestamp }
func (e *Transferred) Principal() string    { return e.from }
func (e *Transferred) From() string         { return e.from }
func (e *Transferred) To() string           { return e.to }
func (e *Transferred) Amount() *uint256.Int { return e.amount }

// Approved event when an owner sets a spender allowance
type Approved struct {
	owner     string
	spender   string
	amount    *uint256.Int
	timestamp time.Time
}

func NewApproved(owner, spender string, amount *uint256.Int) *Approved {
	return &Approved{owner: owner, spender: spender, amount: amount, timestamp: time.Now()}
}

func (e *Approved) Type() EventType      { return EventApproved }
func (e *Approved) Timestamp() time.Time { return e.timestamp }
func (e *Approved) Principal() string    { return e.owner }
func (e *Approved) Spender() string      { return e.spender }
func (e *Approved) Amount() *uint256.Int { return e.amount }

// PauseChanged event when the pause flag flips
type PauseChanged struct {
	paused    bool
	pauser    string
	timestamp time.Time
}

func NewPauseChanged(paused bool, pauser string) *PauseChanged {
	return &PauseChanged{paused: paused, pauser: pauser, timestamp: time.Now()}
}

func (e *PauseChanged) Type() EventType {
	if e.paused {
		return EventPaused
	}
	return EventUnpaused
}

func (e *PauseChanged) Timestamp() time.Time { return e.timestamp }
func (e *PauseChanged) Principal() string    { return e.pauser }
func (e *PauseChanged) IsPaused() bool       { return e.paused }

// RoleChanged event when a role is granted or revoked
type RoleChanged struct {
	role      string
	principal string
	admin     string
	granted   bool
	timestamp time.Time
}

func NewRoleChanged(role, principal, admin string, granted bool) *RoleChanged {
	return &RoleChanged{role: role, principal: principal, admin: admin, granted: granted, timestamp: time.Now()}
}

func (e *RoleChanged) Type() EventType {
	if e.granted {
		return EventRoleGranted
	}
	return EventRoleRevoked
}

func (e *RoleChanged) Timestamp() time.Time { return e.timestamp }
func (e *RoleChanged) Principal() string    { return e.principal }
func (e *RoleChanged) Role() string         { return e.role }
func (e *RoleChanged) Admin() string        { return e.admin }

// AdminTransfer event for the two-step admin handover lifecycle
type AdminTransfer struct {
	event     EventType
	candidate string
	notBefore int64
	timestamp time.Time
}

func NewAdminProposed(candidate string, notBefore int64) *AdminTransfer {
	return &AdminTransfer{event: EventAdminProposed, candidate: candidate, notBefore: notBefore, timestamp: time.Now()}
}

func NewAdminAccepted(candidate string) *AdminTransfer {
	return &AdminTransfer{event: EventAdminAccepted, candidate: candidate, timestamp: time.Now()}
}

func NewAdminCanceled(candidate string) *AdminTransfer {
	return &AdminTransfer{event: EventAdminCanceled, candidate: candidate, timestamp: time.Now()}
}

func (e *AdminTransfer) Type() EventType      { return e.event }
func (e *AdminTransfer) Timestamp() time.Time { return e.timestamp }
func (e *AdminTransfer) Principal() string    { return e.candidate }
func (e *AdminTransfer) NotBefore() int64     { return e.notBefore }

// Purchased event when the exchange satisfies a buy
type Purchased struct {
	buyer     string
	paid      *uint256.Int
	tokens    *uint256.Int
	minted    bool
	timestamp time.Time
}

func NewPurchased(buyer string, paid, tokens *uint256.Int, minted bool) *Purchased {
	return &Purchased{buyer: buyer, paid: paid, tokens: tokens, minted: minted, timestamp: time.Now()}
}

func (e *Purchased) Type() EventType      { return EventPurchased }
func (e *Purchased) Timestamp() time.Time { return e.timestamp }
func (e *Purchased) Principal() string    { return e.buyer }
func (e *Purchased) Paid() *uint256.Int   { return e.paid }
func (e *Purchased) Tokens() *uint256.Int { return e.tokens }
func (e *Purchased) Minted() bool         { return e.minted }

// Sold event when the exchange buys tokens back
type Sold struct {
	seller    string
	tokens    *uint256.Int
	paid      *uint256.Int
	timestamp time.Time
}

func NewSold(seller string, tokens, paid *uint256.Int) *Sold {
	return &Sold{seller: seller, tokens: tokens, paid: paid, timestamp: time.Now()}
}

func (e *Sold) Type() EventType      { return EventSold }
func (e *Sold) Timestamp() time.Time { return e.timestamp }
func (e *Sold) Principal() string    { return e.seller }
func (e *Sold) Tokens() *uint256.Int { return e.tokens }
func (e *Sold) Paid() *uint256.Int   { return e.paid }

// Withdrawn event when the exchange owner pulls treasury funds
type Withdrawn struct {
	event     EventType
	owner     string
	amount    *uint256.Int
	timestamp time.Time
}

func NewCurrencyWithdrawn(owner string, amount *uint256.Int) *Withdrawn {
	return &Withdrawn{event: EventCurrencyWithdrawn, owner: owner, amount: amount, timestamp: time.Now()}
}

func NewTokensWithdrawn(owner string, amount *uint256.Int) *Withdrawn {
	return &Withdrawn{event: EventTokensWithdrawn, owner: owner, amount: amount, timestamp: time.Now()}
}

func (e *Withdrawn) Type() EventType      { return e.event }
func (e *Withdrawn) Timestamp() time.Time { return e.timestamp }
func (e *Withdrawn) Principal() string    { return e.owner }
func (e *Withdrawn) Amount() *uint256.Int { return e.amount }

// OwnershipTransfer event for the two-step exchange ownership handover
type OwnershipTransfer struct {
	event     EventType
	principal string
	timestamp time.Time
}

func NewOwnershipProposed(candidate string) *OwnershipTransfer {
	return &OwnershipTransfer{event: EventOwnershipProposed, principal: candidate, timestamp: time.Now()}
}

func NewOwnershipAccepted(owner string) *OwnershipTransfer {
	return &OwnershipTransfer{event: EventOwnershipAccepted, principal: owner, timestamp: time.Now()}
}

func NewOwnershipCanceled(candidate string) *OwnershipTransfer {
	return &OwnershipTransfer{event: EventOwnershipCanceled, principal: candidate, timestamp: time.Now()}
}

func (e *OwnershipTransfer) Type() EventType      { return e.event }
func (e *OwnershipTransfer) Timestamp() time.Time { return e.timestamp }
func (e *OwnershipTransfer) Principal() string    { return e.principal }
