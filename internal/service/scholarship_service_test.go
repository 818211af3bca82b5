package service

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/unifin/internal/chain"
)

func TestScholarshipSubmit_ValidatesDepartmentAndYear(t *testing.T) {
	contracts := testContracts(t)
	n := newNode(t, contracts)
	svc := NewScholarshipService(testDeps(contracts))

	r := svc.Submit(context.Background(), connected(studentAddr, n), ScholarshipInput{
		Name: "Ann", Department: "Astrology", YearOfStudy: 9, Reason: "need", Amount: "1",
	})

	assert.Equal(t, chain.KindValidation, r.Kind)
	assert.Contains(t, r.Fields, "department")
	assert.Contains(t, r.Fields, "year_of_study")
	assert.Empty(t, n.Calls())
}

func TestScholarshipSubmit_Success(t *testing.T) {
	contracts := testContracts(t)
	n := newNode(t, contracts)
	svc := NewScholarshipService(testDeps(contracts))

	r := svc.Submit(context.Background(), connected(studentAddr, n), ScholarshipInput{
		Name: "Ann", Department: "Computer Science", YearOfStudy: 2, Reason: "need", Amount: "1",
	})

	require.True(t, r.OK(), r.Message)
	assert.Equal(t, []string{"submitApplication"}, n.sent)
}

func TestScholarshipList_ReadsEveryApplication(t *testing.T) {
	contracts := testContracts(t)
	n := newNode(t, contracts)
	n.on(chain.Scholarship, "getApplicationsCount", values(big.NewInt(2))).
		on(chain.Scholarship, "getApplication", func(args []any) []any {
			id := args[0].(*big.Int).Int64()
			return []any{
				common.HexToAddress(studentAddr), "Ann", "Computer Science", big.NewInt(2), "need",
				big.NewInt(1e18), id == 1, false, big.NewInt(1700000000),
			}
		})
	svc := NewScholarshipService(testDeps(contracts))

	apps, err := svc.List(context.Background(), connected(adminAddr, n))

	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, uint64(0), apps[0].ID)
	assert.Equal(t, "pending", apps[0].Status())
	assert.Equal(t, "approved", apps[1].Status())
	assert.Equal(t, "1.0", apps[1].AmountEther)
	assert.Equal(t, int64(1700000000), apps[1].SubmittedAt.Unix())
}

func TestScholarshipReview_RequiresConnection(t *testing.T) {
	contracts := testContracts(t)
	n := newNode(t, contracts)
	svc := NewScholarshipService(testDeps(contracts))

	r := svc.Approve(context.Background(), testWallet{provider: n}, 0)

	assert.Equal(t, chain.MessageWalletNotConnected, r.Message)
	assert.Empty(t, n.Calls())
}
