package payout

import (
	"github.com/driphq/drip"
	"github.com/driphq/drip/errors"
)

var _ drip.Msg = (*ScheduleDistributionMsg)(nil)
var _ drip.Msg = (*ExecuteDistributionMsg)(nil)
var _ drip.Msg = (*SetReservedFundsMsg)(nil)
var _ drip.Msg = (*UpdateConfigurationMsg)(nil)

// ScheduleDistributionMsg plans a distribution of a vault's yield.
type ScheduleDistributionMsg struct {
	VaultID     []byte
	ScheduledAt drip.UnixTime
	Method      string
}

func (ScheduleDistributionMsg) Path() string {
	return "payout/schedule"
}

func (m *ScheduleDistributionMsg) Validate() error {
	var errs error
	if len(m.VaultID) == 0 {
		errs = errors.AppendField(errs, "VaultID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "ScheduledAt", m.ScheduledAt.Validate())
	if m.ScheduledAt == 0 {
		errs = errors.AppendField(errs, "ScheduledAt", errors.ErrEmpty)
	}
	if !validMethod(m.Method) {
		errs = errors.AppendField(errs, "Method", errors.ErrInput)
	}
	return errs
}

func (m *ScheduleDistributionMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *ScheduleDistributionMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// ExecuteDistributionMsg runs a due schedule and pays the contributors.
type ExecuteDistributionMsg struct {
	ScheduleID []byte
}

func (ExecuteDistributionMsg) Path() string {
	return "payout/execute"
}

func (m *ExecuteDistributionMsg) Validate() error {
	if len(m.ScheduleID) == 0 {
		return errors.Field("ScheduleID", errors.ErrEmpty, "schedule id is required")
	}
	return nil
}

func (m *ExecuteDistributionMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *ExecuteDistributionMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// SetReservedFundsMsg sets the reserve skim to the given value. Unlike a
// configuration patch it can express zero, turning the reserve off.
type SetReservedFundsMsg struct {
	ReservedFundsBps int64
}

func (SetReservedFundsMsg) Path() string {
	return "payout/set_reserved_funds"
}

func (m *SetReservedFundsMsg) Validate() error {
	if m.ReservedFundsBps < 0 || m.ReservedFundsBps > maxBps {
		return errors.Field("ReservedFundsBps", errors.ErrInput, "basis points out of range")
	}
	return nil
}

func (m *SetReservedFundsMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *SetReservedFundsMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// UpdateConfigurationMsg patches the package configuration. Changing the
// owner hands over the scheduling capability, changing the bps adjusts
// the reserve skim.
type UpdateConfigurationMsg struct {
	Patch *Configuration
}

func (UpdateConfigurationMsg) Path() string {
	return "payout/update_configuration"
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
