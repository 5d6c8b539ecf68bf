package qvote

import (
	"github.com/driphq/drip"
	"github.com/driphq/drip/errors"
	"github.com/driphq/drip/orm"
)

const (
	// BucketName stores the votings
	BucketName = "voting"
	// VoteBucketName stores the individual vote records
	VoteBucketName = "vote"

	// MaxVotes is the most votes a single voter can hold in one voting.
	MaxVotes = 10
)

// VoteCost returns the price of holding count votes. Quadratic pricing
// makes strong opinions expensive.
func VoteCost(count int64) int64 {
	return count * count
}

// VotingAccount returns the address of the pool that collects the vote
// payments of a single voting.
func VotingAccount(votingID []byte) drip.Address {
	return drip.NewCondition("qvote", "pool", votingID).Address()
}

// Voting is a single nomination put up for a quadratic vote.
type Voting struct {
	VaultID      []byte
	Nominee      drip.Address
	NomineeName  string
	Role         string
	Description  string
	StartTime    drip.UnixTime
	EndTime      drip.UnixTime
	VotesFor     int64
	VotesAgainst int64
	// Active is false once the voting was ended.
	Active bool
	// Approved is meaningful only after the voting ended.
	Approved bool
}

var _ orm.CloneableData = (*Voting)(nil)

func (v *Voting) Copy() orm.CloneableData {
	return &Voting{
		VaultID:      append([]byte(nil), v.VaultID...),
		Nominee:      v.Nominee.Clone(),
		NomineeName:  v.NomineeName,
		Role:         v.Role,
		Description:  v.Description,
		StartTime:    v.StartTime,
		EndTime:      v.EndTime,
		VotesFor:     v.VotesFor,
		VotesAgainst: v.VotesAgainst,
		Active:       v.Active,
		Approved:     v.Approved,
	}
}

func (v *Voting) Validate() error {
	var errs error
	if len(v.VaultID) == 0 {
		errs = errors.AppendField(errs, "VaultID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Nominee", v.Nominee.Validate())
	if v.NomineeName == "" {
		errs = errors.AppendField(errs, "NomineeName", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "StartTime", v.StartTime.Validate())
	errs = errors.AppendField(errs, "EndTime", v.EndTime.Validate())
	if v.EndTime <= v.StartTime {
		errs = errors.AppendField(errs, "EndTime", errors.ErrState)
	}
	if v.VotesFor < 0 {
		errs = errors.AppendField(errs, "VotesFor", errors.ErrAmount)
	}
	if v.VotesAgainst < 0 {
		errs = errors.AppendField(errs, "VotesAgainst", errors.ErrAmount)
	}
	return errs
}

func (v *Voting) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(v)
}

func (v *Voting) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, v)
}

// Vote is the standing position of a single voter within one voting.
type Vote struct {
	Count   int64
	InFavor bool
	// Paid is the cumulative amount charged for this position.
	Paid int64
}

var _ orm.CloneableData = (*Vote)(nil)

func (v *Vote) Copy() orm.CloneableData {
	return &Vote{
		Count:   v.Count,
		InFavor: v.InFavor,
		Paid:    v.Paid,
	}
}

func (v *Vote) Validate() error {
	var errs error
	if v.Count <= 0 || v.Count > MaxVotes {
		errs = errors.AppendField(errs, "Count", errors.ErrAmount)
	}
	if v.Paid < 0 {
		errs = errors.AppendField(errs, "Paid", errors.ErrAmount)
	}
	return errs
}

func (v *Vote) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(v)
}

func (v *Vote) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, v)
}

//--- buckets

// VotingBucket stores the votings, identified by an 8 byte sequence value.
type VotingBucket struct {
	orm.Bucket
	idSeq orm.Sequence
}

// NewVotingBucket creates the voting storage
func NewVotingBucket() *VotingBucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Voting{}))
	return &VotingBucket{
		Bucket: b,
		idSeq:  b.Sequence(orm.SeqID),
	}
}

// Create persists given voting under a newly assigned identifier.
func (b *VotingBucket) Create(db drip.KVStore, v *Voting) (orm.Object, error) {
	id, err := b.idSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire id")
	}
	obj := orm.NewSimpleObj(id, v)
	if err := b.Bucket.Save(db, obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// GetVoting returns the voting with given identifier or ErrNotFound.
func (b *VotingBucket) GetVoting(db drip.ReadOnlyKVStore, votingID []byte) (*Voting, error) {
	obj, err := b.Get(db, votingID)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "voting %x", votingID)
	}
	return AsVoting(obj), nil
}

// RegisterQuery exposes the votings over the query router
func (b *VotingBucket) RegisterQuery(qr drip.QueryRouter) {
	b.Register("votings", qr)
}

// AsVoting extracts the voting from the object, panics on a wrong type
func AsVoting(obj orm.Object) *Voting {
	return obj.Value().(*Voting)
}

// VoteBucket stores vote records under a composite key of the voting
// identifier and the voter address.
type VoteBucket struct {
	orm.Bucket
}

// NewVoteBucket creates the vote storage
func NewVoteBucket() VoteBucket {
	return VoteBucket{
		Bucket: orm.NewBucket(VoteBucketName, orm.NewSimpleObj(nil, &Vote{})),
	}
}

func voteKey(votingID []byte, voter drip.Address) []byte {
	key := make([]byte, 0, len(votingID)+len(voter))
	key = append(key, votingID...)
	return append(key, voter...)
}

// GetVote returns the standing vote of given voter, or nil when the voter
// did not participate yet.
func (b VoteBucket) GetVote(db drip.ReadOnlyKVStore, votingID []byte, voter drip.Address) (*Vote, error) {
	obj, err := b.Get(db, voteKey(votingID, voter))
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return obj.Value().(*Vote), nil
}

// SetVote persists the standing vote of given voter.
func (b VoteBucket) SetVote(db drip.KVStore, votingID []byte, voter drip.Address, vote *Vote) error {
	return b.Bucket.Save(db, orm.NewSimpleObj(voteKey(votingID, voter), vote))
}

// RegisterQuery exposes the vote records over the query router
func (b VoteBucket) RegisterQuery(qr drip.QueryRouter) {
	b.Register("votes", qr)
}
