package qvote

import (
	"github.com/driphq/drip"
	"github.com/driphq/drip/errors"
)

var _ drip.Msg = (*CreateVotingMsg)(nil)
var _ drip.Msg = (*VoteMsg)(nil)
var _ drip.Msg = (*EndVotingMsg)(nil)
var _ drip.Msg = (*UpdateConfigurationMsg)(nil)

// CreateVotingMsg opens a new voting on a contributor nomination.
type CreateVotingMsg struct {
	VaultID     []byte
	Nominee     drip.Address
	NomineeName string
	Role        string
	Description string
	// Duration determines the voting end, relative to the current block
	// time.
	Duration drip.UnixDuration
}

func (CreateVotingMsg) Path() string {
	return "qvote/create"
}

func (m *CreateVotingMsg) Validate() error {
	var errs error
	if len(m.VaultID) == 0 {
		errs = errors.AppendField(errs, "VaultID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Nominee", m.Nominee.Validate())
	if m.NomineeName == "" {
		errs = errors.AppendField(errs, "NomineeName", errors.ErrEmpty)
	}
	if m.Duration <= 0 {
		errs = errors.AppendField(errs, "Duration", errors.ErrInput)
	}
	return errs
}

func (m *CreateVotingMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *CreateVotingMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// VoteMsg places or replaces the signer's position in a voting.
type VoteMsg struct {
	VotingID []byte
	Count    int64
	InFavor  bool
}

func (VoteMsg) Path() string {
	return "qvote/vote"
}

func (m *VoteMsg) Validate() error {
	var errs error
	if len(m.VotingID) == 0 {
		errs = errors.AppendField(errs, "VotingID", errors.ErrEmpty)
	}
	if m.Count <= 0 {
		errs = errors.AppendField(errs, "Count", errors.ErrAmount)
	}
	if m.Count > MaxVotes {
		errs = errors.AppendField(errs, "Count", errors.ErrOverflow)
	}
	return errs
}

func (m *VoteMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *VoteMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// EndVotingMsg closes a voting after its end time and seals the outcome.
type EndVotingMsg struct {
	VotingID []byte
}

func (EndVotingMsg) Path() string {
	return "qvote/end"
}

func (m *EndVotingMsg) Validate() error {
	if len(m.VotingID) == 0 {
		return errors.Field("VotingID", errors.ErrEmpty, "voting id is required")
	}
	return nil
}

func (m *EndVotingMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *EndVotingMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// UpdateConfigurationMsg patches the package configuration.
type UpdateConfigurationMsg struct {
	Patch *Configuration
}

func (UpdateConfigurationMsg) Path() string {
	return "qvote/update_configuration"
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
