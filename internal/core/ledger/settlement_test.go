package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hisaab-app/hisaab-backend/internal/core/domain"
	"github.com/hisaab-app/hisaab-backend/internal/core/ledger"
)

func balance(memberID, net string) domain.Balance {
	return domain.Balance{
		MemberID:   memberID,
		GroupID:    "grp-1",
		NetBalance: dec(net),
	}
}

func TestOptimizeSettlementsTwoDebtorsOneCreditor(t *testing.T) {
	balances := []domain.Balance{
		balance("alice", "300.00"),
		balance("bob", "-100.00"),
		balance("carol", "-200.00"),
	}

	settlements := ledger.OptimizeSettlements(balances)
	require.Len(t, settlements, 2)

	assert.Equal(t, "carol", settlements[0].FromUserID)
	assert.Equal(t, "alice", settlements[0].ToUserID)
	assert.True(t, settlements[0].Amount.Equal(dec("200.00")))

	assert.Equal(t, "bob", settlements[1].FromUserID)
	assert.Equal(t, "alice", settlements[1].ToUserID)
	assert.True(t, settlements[1].Amount.Equal(dec("100.00")))

	// Input must not be mutated.
	assert.True(t, balances[0].NetBalance.Equal(dec("300.00")))
	assert.True(t, balances[2].NetBalance.Equal(dec("-200.00")))
}

func TestOptimizeSettlementsEqualDebtorsKeepMembershipOrder(t *testing.T) {
	// bob and carol owe the same amount; the stable sort keeps bob (listed
	// first) closer to the middle, so carol pays first from the far end.
	balances := []domain.Balance{
		balance("alice", "200.00"),
		balance("bob", "-100.00"),
		balance("carol", "-100.00"),
	}

	settlements := ledger.OptimizeSettlements(balances)
	require.Len(t, settlements, 2)
	assert.Equal(t, "carol", settlements[0].FromUserID)
	assert.Equal(t, "bob", settlements[1].FromUserID)
	assert.Equal(t, "grp-1", settlements[0].GroupID)
}

func TestOptimizeSettlementsAllSettled(t *testing.T) {
	balances := []domain.Balance{
		balance("alice", "0.00"),
		balance("bob", "0.005"),
		balance("carol", "-0.005"),
	}
	assert.Empty(t, ledger.OptimizeSettlements(balances))
	assert.Empty(t, ledger.OptimizeSettlements(nil))
}

func TestOptimizeSettlementsOneCentDebtIsCollected(t *testing.T) {
	balances := []domain.Balance{
		balance("alice", "0.01"),
		balance("bob", "-0.01"),
	}
	settlements := ledger.OptimizeSettlements(balances)
	require.Len(t, settlements, 1)
	assert.True(t, settlements[0].Amount.Equal(dec("0.01")))
}

func TestOptimizeSettlementsConservationAndMinimality(t *testing.T) {
	balances := []domain.Balance{
		balance("alice", "120.55"),
		balance("bob", "-40.20"),
		balance("carol", "79.45"),
		balance("dev", "-100.00"),
		balance("esha", "-59.80"),
	}

	settlements := ledger.OptimizeSettlements(balances)

	positive := decimal.Zero
	for _, b := range balances {
		if b.NetBalance.IsPositive() {
			positive = positive.Add(b.NetBalance)
		}
	}
	volume := decimal.Zero
	for _, s := range settlements {
		volume = volume.Add(s.Amount)
		assert.True(t, s.Amount.IsPositive())
	}

	assert.True(t, volume.Equal(positive), "settled volume %s, positive balances %s", volume, positive)
	assert.LessOrEqual(t, len(settlements), len(balances)-1)
}

func TestOptimizeSettlementsDeterministic(t *testing.T) {
	balances := []domain.Balance{
		balance("alice", "50.00"),
		balance("bob", "50.00"),
		balance("carol", "-50.00"),
		balance("dev", "-50.00"),
	}

	first := ledger.OptimizeSettlements(balances)
	second := ledger.OptimizeSettlements(balances)
	assert.Equal(t, first, second)
}
