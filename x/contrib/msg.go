package contrib

import (
	"github.com/driphq/drip"
	"github.com/driphq/drip/errors"
)

var _ drip.Msg = (*AddContributorMsg)(nil)
var _ drip.Msg = (*UpdateAllocationMsg)(nil)
var _ drip.Msg = (*RemoveContributorMsg)(nil)
var _ drip.Msg = (*UpdateEarningsMsg)(nil)
var _ drip.Msg = (*UpdateConfigurationMsg)(nil)

// AddContributorMsg registers a new contributor for a vault.
type AddContributorMsg struct {
	VaultID           []byte
	Wallet            drip.Address
	Name              string
	Role              string
	MonthlyAllocation int64
}

func (AddContributorMsg) Path() string {
	return "contrib/add"
}

func (m *AddContributorMsg) Validate() error {
	var errs error
	if len(m.VaultID) == 0 {
		errs = errors.AppendField(errs, "VaultID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Wallet", m.Wallet.Validate())
	if m.Name == "" {
		errs = errors.AppendField(errs, "Name", errors.ErrEmpty)
	}
	if m.MonthlyAllocation < 0 {
		errs = errors.AppendField(errs, "MonthlyAllocation", errors.ErrAmount)
	}
	return errs
}

func (m *AddContributorMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *AddContributorMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// UpdateAllocationMsg changes the monthly allocation of a contributor.
type UpdateAllocationMsg struct {
	VaultID           []byte
	Wallet            drip.Address
	MonthlyAllocation int64
}

func (UpdateAllocationMsg) Path() string {
	return "contrib/update_allocation"
}

func (m *UpdateAllocationMsg) Validate() error {
	var errs error
	if len(m.VaultID) == 0 {
		errs = errors.AppendField(errs, "VaultID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Wallet", m.Wallet.Validate())
	if m.MonthlyAllocation < 0 {
		errs = errors.AppendField(errs, "MonthlyAllocation", errors.ErrAmount)
	}
	return errs
}

func (m *UpdateAllocationMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *UpdateAllocationMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// RemoveContributorMsg deactivates a contributor. The record is kept.
type RemoveContributorMsg struct {
	VaultID []byte
	Wallet  drip.Address
}

func (RemoveContributorMsg) Path() string {
	return "contrib/remove"
}

func (m *RemoveContributorMsg) Validate() error {
	var errs error
	if len(m.VaultID) == 0 {
		errs = errors.AppendField(errs, "VaultID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Wallet", m.Wallet.Validate())
	return errs
}

func (m *RemoveContributorMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *RemoveContributorMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// UpdateEarningsMsg adds to the lifetime earnings of a contributor.
// Usually issued by the payout extension, never decreases the total.
type UpdateEarningsMsg struct {
	VaultID []byte
	Wallet  drip.Address
	Amount  int64
}

func (UpdateEarningsMsg) Path() string {
	return "contrib/update_earnings"
}

func (m *UpdateEarningsMsg) Validate() error {
	var errs error
	if len(m.VaultID) == 0 {
		errs = errors.AppendField(errs, "VaultID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Wallet", m.Wallet.Validate())
	if m.Amount <= 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}

func (m *UpdateEarningsMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *UpdateEarningsMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// UpdateConfigurationMsg patches the package configuration. Changing the
// owner hands over the registry capability.
type UpdateConfigurationMsg struct {
	Patch *Configuration
}

func (UpdateConfigurationMsg) Path() string {
	return "contrib/update_configuration"
}

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Field("Patch", errors.ErrEmpty, "patch is required")
	}
	return nil
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *UpdateConfigurationMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}
