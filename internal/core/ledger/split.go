package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hisaab-app/hisaab-backend/internal/core/domain"
)

var (
	// ErrEmptyParticipantSet is returned when a split has no participants.
	ErrEmptyParticipantSet = errors.New("expense must have at least one participant")

	// ErrNegativeShare is returned when a share amount or percentage is negative.
	ErrNegativeShare = errors.New("share amounts must not be negative")

	// ErrSplitMismatch is returned when custom share amounts do not reconcile
	// with the expense total.
	ErrSplitMismatch = errors.New("shares do not sum to the expense total")

	// ErrPercentageSum is returned when split percentages do not sum to 100.
	ErrPercentageSum = errors.New("percentages do not sum to 100")
)

// minorUnitPlaces is the number of fractional digits carried by all money
// amounts (cents/paise).
const minorUnitPlaces = 2

var (
	// cent is one unit of least-significant precision.
	cent = decimal.New(1, -minorUnitPlaces)

	// sumTolerance is the maximum deviation allowed between a set of share
	// amounts and the expense total they divide.
	sumTolerance = decimal.New(1, -minorUnitPlaces)

	oneHundred = decimal.NewFromInt(100)
)

// ShareEntry is a caller-provided amount for one participant of a custom split.
type ShareEntry struct {
	MemberID string
	Amount   decimal.Decimal
}

// PercentEntry is a caller-provided percentage for one participant of a
// percentage split.
type PercentEntry struct {
	MemberID string
	Percent  decimal.Decimal
}

// EqualSplit divides total evenly among memberIDs.
//
// The per-head base is total/n rounded to the minor unit; whatever
// remainder that rounding leaves is handed out one cent at a time in list
// order, so the first participants absorb it and the share sum equals the
// total exactly. The result is deterministic but order-dependent.
func EqualSplit(total decimal.Decimal, memberIDs []string) ([]domain.ParticipantShare, error) {
	if len(memberIDs) == 0 {
		return nil, ErrEmptyParticipantSet
	}
	total = total.Round(minorUnitPlaces)
	if total.IsNegative() {
		return nil, fmt.Errorf("%w: expense total is %s", ErrNegativeShare, total)
	}

	n := decimal.NewFromInt(int64(len(memberIDs)))
	base := total.DivRound(n, minorUnitPlaces)

	shares := make([]domain.ParticipantShare, len(memberIDs))
	for i, id := range memberIDs {
		shares[i] = domain.ParticipantShare{MemberID: id, Amount: base}
	}

	// Rounding the base leaves at most n-1 cents of drift in either
	// direction. Distribute it cent by cent starting from the front of the
	// list until the running sum matches the total exactly.
	diff := total.Sub(base.Mul(n))
	step := cent
	if diff.IsNegative() {
		step = cent.Neg()
	}
	for i := 0; !diff.IsZero(); i = (i + 1) % len(shares) {
		shares[i].Amount = shares[i].Amount.Add(step)
		diff = diff.Sub(step)
	}

	return shares, nil
}

// CustomSplit builds shares from caller-chosen amounts. Amounts are taken
// as given, with no redistribution; they must reconcile with the expense
// total to within one minor unit.
func CustomSplit(total decimal.Decimal, entries []ShareEntry) ([]domain.ParticipantShare, error) {
	total = total.Round(minorUnitPlaces)

	shares := make([]domain.ParticipantShare, len(entries))
	for i, e := range entries {
		shares[i] = domain.ParticipantShare{MemberID: e.MemberID, Amount: e.Amount.Round(minorUnitPlaces)}
	}

	if err := ValidateParticipants(total, shares); err != nil {
		return nil, err
	}
	return shares, nil
}

// PercentageSplit builds shares from per-participant percentages of the
// total. Each share is total*percent/100 rounded to the minor unit.
func PercentageSplit(total decimal.Decimal, entries []PercentEntry) ([]domain.ParticipantShare, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyParticipantSet
	}
	total = total.Round(minorUnitPlaces)
	if total.IsNegative() {
		return nil, fmt.Errorf("%w: expense total is %s", ErrNegativeShare, total)
	}

	percentSum := decimal.Zero
	for _, e := range entries {
		if e.Percent.IsNegative() {
			return nil, fmt.Errorf("%w: percentage for member %s is %s", ErrNegativeShare, e.MemberID, e.Percent)
		}
		percentSum = percentSum.Add(e.Percent)
	}
	if percentSum.Sub(oneHundred).Abs().GreaterThan(sumTolerance) {
		return nil, fmt.Errorf("%w: percentages sum to %s", ErrPercentageSum, percentSum)
	}

	shares := make([]domain.ParticipantShare, len(entries))
	for i, e := range entries {
		shares[i] = domain.ParticipantShare{
			MemberID: e.MemberID,
			Amount:   total.Mul(e.Percent).DivRound(oneHundred, minorUnitPlaces),
		}
	}
	return shares, nil
}
