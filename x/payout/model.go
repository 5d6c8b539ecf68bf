package payout

import (
	"github.com/driphq/drip"
	"github.com/driphq/drip/errors"
	"github.com/driphq/drip/orm"
	"github.com/driphq/drip/x/vault"
)

// BucketName stores the distribution schedules
const BucketName = "payout"

// Distribution methods.
const (
	// MethodProportional splits by monthly allocation.
	MethodProportional = "proportional"
	// MethodEqual splits evenly among active contributors.
	MethodEqual = "equal"
	// MethodVotingWeighted splits by approved voting tallies.
	MethodVotingWeighted = "voting_weighted"
)

func validMethod(method string) bool {
	switch method {
	case MethodProportional, MethodEqual, MethodVotingWeighted:
		return true
	}
	return false
}

// ComponentAccount returns the address that must hold the vault owner
// capability for scheduled distributions to move funds.
func ComponentAccount() drip.Address {
	return drip.NewCondition("payout", "ctrl", []byte("scheduler")).Address()
}

// Schedule is a single planned distribution of a vault's yield.
type Schedule struct {
	VaultID     []byte
	ScheduledAt drip.UnixTime
	Method      string
	Executed    bool
	ExecutedAt  drip.UnixTime
	// Payments records the executed transfers. Empty until execution.
	Payments    []vault.Payment
	TotalAmount int64
}

var _ orm.CloneableData = (*Schedule)(nil)

func (s *Schedule) Copy() orm.CloneableData {
	cpy := &Schedule{
		VaultID:     append([]byte(nil), s.VaultID...),
		ScheduledAt: s.ScheduledAt,
		Method:      s.Method,
		Executed:    s.Executed,
		ExecutedAt:  s.ExecutedAt,
		TotalAmount: s.TotalAmount,
	}
	if s.Payments != nil {
		cpy.Payments = append([]vault.Payment(nil), s.Payments...)
	}
	return cpy
}

func (s *Schedule) Validate() error {
	var errs error
	if len(s.VaultID) == 0 {
		errs = errors.AppendField(errs, "VaultID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "ScheduledAt", s.ScheduledAt.Validate())
	if s.ScheduledAt == 0 {
		errs = errors.AppendField(errs, "ScheduledAt", errors.ErrEmpty)
	}
	if !validMethod(s.Method) {
		errs = errors.AppendField(errs, "Method", errors.ErrInput)
	}
	if s.TotalAmount < 0 {
		errs = errors.AppendField(errs, "TotalAmount", errors.ErrAmount)
	}
	return errs
}

func (s *Schedule) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

func (s *Schedule) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, s)
}

// ScheduleBucket stores the schedules, identified by an 8 byte sequence
// value.
type ScheduleBucket struct {
	orm.Bucket
	idSeq orm.Sequence
}

// NewScheduleBucket creates the schedule storage
func NewScheduleBucket() *ScheduleBucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Schedule{}))
	return &ScheduleBucket{
		Bucket: b,
		idSeq:  b.Sequence(orm.SeqID),
	}
}

// Create persists given schedule under a newly assigned identifier.
func (b *ScheduleBucket) Create(db drip.KVStore, s *Schedule) (orm.Object, error) {
	id, err := b.idSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire id")
	}
	obj := orm.NewSimpleObj(id, s)
	if err := b.Bucket.Save(db, obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// GetSchedule returns the schedule with given identifier or ErrNotFound.
func (b *ScheduleBucket) GetSchedule(db drip.ReadOnlyKVStore, scheduleID []byte) (*Schedule, error) {
	obj, err := b.Get(db, scheduleID)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "schedule %x", scheduleID)
	}
	return AsSchedule(obj), nil
}

// RegisterQuery exposes the schedules over the query router
func (b *ScheduleBucket) RegisterQuery(qr drip.QueryRouter) {
	b.Register("payouts", qr)
}

// AsSchedule extracts the schedule from the object, panics on a wrong type
func AsSchedule(obj orm.Object) *Schedule {
	return obj.Value().(*Schedule)
}
