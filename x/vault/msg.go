package vault

import (
	"github.com/driphq/drip"
	"github.com/driphq/drip/coin"
	"github.com/driphq/drip/errors"
)

var _ drip.Msg = (*CreateVaultMsg)(nil)
var _ drip.Msg = (*DepositMsg)(nil)
var _ drip.Msg = (*RedeemMsg)(nil)
var _ drip.Msg = (*DistributeMsg)(nil)
var _ drip.Msg = (*BatchDistributeMsg)(nil)
var _ drip.Msg = (*TransferVaultOwnershipMsg)(nil)

// CreateVaultMsg materializes a new vault with an empty pool.
type CreateVaultMsg struct {
	Asset       string
	Name        string
	Description string
	Owner       drip.Address
}

func (CreateVaultMsg) Path() string {
	return "vault/create"
}

func (m *CreateVaultMsg) Validate() error {
	var errs error
	if !coin.IsCC(m.Asset) {
		errs = errors.AppendField(errs, "Asset", errors.ErrCurrency)
	}
	if m.Name == "" {
		errs = errors.AppendField(errs, "Name", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	return errs
}

func (m *CreateVaultMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *CreateVaultMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// DepositMsg moves funds from the main signer into the vault pool and
// mints the same number of shares to the receiver.
type DepositMsg struct {
	VaultID []byte
	Amount  int64
	// Receiver is credited with the shares. When empty, the main signer
	// receives them.
	Receiver drip.Address
}

func (DepositMsg) Path() string {
	return "vault/deposit"
}

func (m *DepositMsg) Validate() error {
	var errs error
	if len(m.VaultID) == 0 {
		errs = errors.AppendField(errs, "VaultID", errors.ErrEmpty)
	}
	if m.Amount <= 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	if len(m.Receiver) != 0 {
		errs = errors.AppendField(errs, "Receiver", m.Receiver.Validate())
	}
	return errs
}

func (m *DepositMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *DepositMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// RedeemMsg burns shares from the main signer and pays the same amount of
// the vault asset from the pool.
type RedeemMsg struct {
	VaultID []byte
	Shares  int64
	// Receiver is paid the redeemed funds. When empty, the main signer
	// is paid.
	Receiver drip.Address
}

func (RedeemMsg) Path() string {
	return "vault/redeem"
}

func (m *RedeemMsg) Validate() error {
	var errs error
	if len(m.VaultID) == 0 {
		errs = errors.AppendField(errs, "VaultID", errors.ErrEmpty)
	}
	if m.Shares <= 0 {
		errs = errors.AppendField(errs, "Shares", errors.ErrAmount)
	}
	if len(m.Receiver) != 0 {
		errs = errors.AppendField(errs, "Receiver", m.Receiver.Validate())
	}
	return errs
}

func (m *RedeemMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *RedeemMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// DistributeMsg pays funds out of the vault pool without burning shares.
// Only the vault owner can do this.
type DistributeMsg struct {
	VaultID   []byte
	Recipient drip.Address
	Amount    int64
}

func (DistributeMsg) Path() string {
	return "vault/distribute"
}

func (m *DistributeMsg) Validate() error {
	var errs error
	if len(m.VaultID) == 0 {
		errs = errors.AppendField(errs, "VaultID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	if m.Amount <= 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}

func (m *DistributeMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *DistributeMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// Payment is a single recipient entry of a batch distribution.
type Payment struct {
	Recipient drip.Address
	Amount    int64
}

func (p Payment) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Recipient", p.Recipient.Validate())
	if p.Amount <= 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}

// BatchDistributeMsg pays funds from the vault pool to many recipients at
// once. The whole batch is applied or none of it is.
type BatchDistributeMsg struct {
	VaultID    []byte
	Recipients []Payment
}

func (BatchDistributeMsg) Path() string {
	return "vault/batch_distribute"
}

func (m *BatchDistributeMsg) Validate() error {
	var errs error
	if len(m.VaultID) == 0 {
		errs = errors.AppendField(errs, "VaultID", errors.ErrEmpty)
	}
	if len(m.Recipients) == 0 {
		errs = errors.AppendField(errs, "Recipients", errors.ErrEmpty)
	}
	for i, p := range m.Recipients {
		if err := p.Validate(); err != nil {
			errs = errors.Append(errs, errors.Wrapf(err, "recipient #%d", i))
		}
	}
	return errs
}

func (m *BatchDistributeMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *BatchDistributeMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// TransferVaultOwnershipMsg hands the vault owner capability to another
// address. Signed by the current owner.
type TransferVaultOwnershipMsg struct {
	VaultID  []byte
	NewOwner drip.Address
}

func (TransferVaultOwnershipMsg) Path() string {
	return "vault/transfer_ownership"
}

func (m *TransferVaultOwnershipMsg) Validate() error {
	var errs error
	if len(m.VaultID) == 0 {
		errs = errors.AppendField(errs, "VaultID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "NewOwner", m.NewOwner.Validate())
	return errs
}

func (m *TransferVaultOwnershipMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *TransferVaultOwnershipMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}
