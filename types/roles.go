package types

// Role identifiers. Admin manages grants and is itself transferable
// through a two-step, optionally delayed handover.
const (
	RoleAdmin  = "admin"
	RoleMinter = "minter"
	RolePauser = "pauser"
)

// PendingAdmin records a proposed admin handover. Candidate may accept
// only at or after NotBefore (unix seconds).
type PendingAdmin struct {
	Candidate string `json:"candidate"`
	NotBefore int64  `json:"not_before"`
}

// PendingOwner records a proposed exchange ownership handover.
type PendingOwner struct {
	Candidate string `json:"candidate"`
}
