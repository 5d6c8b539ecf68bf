package qvote

import (
	"github.com/driphq/drip"
	"github.com/driphq/drip/errors"
)

// VoteEntry pairs a vote record with its voter address. Scans return
// entries ordered by voter.
type VoteEntry struct {
	Voter drip.Address
	Vote  *Vote
}

// Controller is the voting functionality offered to other extensions.
type Controller interface {
	// GetVoting returns the voting with given identifier.
	GetVoting(db drip.ReadOnlyKVStore, votingID []byte) (*Voting, error)
	// GetVote returns the standing vote of a voter, nil if absent.
	GetVote(db drip.ReadOnlyKVStore, votingID []byte, voter drip.Address) (*Vote, error)
	// Votes returns all standing votes of a voting, ordered by voter.
	Votes(db drip.ReadOnlyKVStore, votingID []byte) ([]VoteEntry, error)
	// ApprovedWeight returns the winning tally of the most recent ended
	// and approved voting nominating given wallet for given vault. Zero
	// when no such voting exists.
	ApprovedWeight(db drip.ReadOnlyKVStore, vaultID []byte, wallet drip.Address) (int64, error)
}

// BaseController implements Controller over the voting buckets.
type BaseController struct {
	votings *VotingBucket
	votes   VoteBucket
}

var _ Controller = (*BaseController)(nil)

// NewController returns a base controller implementation.
func NewController() *BaseController {
	return &BaseController{
		votings: NewVotingBucket(),
		votes:   NewVoteBucket(),
	}
}

func (c *BaseController) GetVoting(db drip.ReadOnlyKVStore, votingID []byte) (*Voting, error) {
	return c.votings.GetVoting(db, votingID)
}

func (c *BaseController) GetVote(db drip.ReadOnlyKVStore, votingID []byte, voter drip.Address) (*Vote, error) {
	return c.votes.GetVote(db, votingID, voter)
}

func (c *BaseController) Votes(db drip.ReadOnlyKVStore, votingID []byte) ([]VoteEntry, error) {
	objs, err := c.votes.PrefixScan(db, votingID)
	if err != nil {
		return nil, errors.Wrap(err, "scan votes")
	}
	entries := make([]VoteEntry, 0, len(objs))
	for _, obj := range objs {
		entries = append(entries, VoteEntry{
			Voter: drip.Address(obj.Key()[len(votingID):]),
			Vote:  obj.Value().(*Vote),
		})
	}
	return entries, nil
}

func (c *BaseController) ApprovedWeight(db drip.ReadOnlyKVStore, vaultID []byte, wallet drip.Address) (int64, error) {
	objs, err := c.votings.PrefixScan(db, nil)
	if err != nil {
		return 0, errors.Wrap(err, "scan votings")
	}
	// Identifiers are sequential, the scan is ordered. The last match is
	// the most recent decision about this wallet.
	var weight int64
	for _, obj := range objs {
		v := AsVoting(obj)
		if v.Active || !v.Approved {
			continue
		}
		if !v.Nominee.Equals(wallet) {
			continue
		}
		if string(v.VaultID) != string(vaultID) {
			continue
		}
		weight = v.VotesFor
	}
	return weight, nil
}
