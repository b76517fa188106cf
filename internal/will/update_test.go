package will

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	d := New(time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC))

	require.Equal(t, Single, d.Testator.MaritalStatus)
	require.Empty(t, d.Executors)
	require.Empty(t, d.Beneficiaries)
	require.False(t, d.HasChildren)
	require.False(t, d.IsPremium)
	require.False(t, d.AcceptedTerms)
	require.Equal(t, "09/03/2024", d.GenerationDate)
}

func TestApply_ShallowMergeDoesNotClobberUnrelatedFields(t *testing.T) {
	d := New(time.Now())

	premium := true
	d.Apply(&Update{IsPremium: &premium})
	require.True(t, d.IsPremium)

	// a later unrelated update must leave premium alone
	d.Apply(&Update{Testator: &Testator{FullName: "Ada Lovelace", MaritalStatus: Married}})
	require.True(t, d.IsPremium)
	require.Equal(t, "Ada Lovelace", d.Testator.FullName)
	require.Equal(t, Married, d.Testator.MaritalStatus)
}

func TestApply_SequencesReplaceWholesale(t *testing.T) {
	d := New(time.Now())

	first := []Person{{FullName: "Exec One", Address: "1 High St"}}
	d.Apply(&Update{Executors: &first})
	require.Len(t, d.Executors, 1)

	second := []Person{
		{FullName: "Exec Two", Address: "2 High St"},
		{FullName: "Exec Three", Address: "3 High St"},
	}
	d.Apply(&Update{Executors: &second})
	// no element-wise merge: the new sequence replaces the old entirely
	require.Equal(t, second, d.Executors)
}

func TestApply_Idempotent(t *testing.T) {
	d := New(time.Now())

	amount := 25.0
	accepted := true
	u := &Update{DonationAmount: &amount, AcceptedTerms: &accepted}
	d.Apply(u)
	before := *d
	d.Apply(u)
	require.Equal(t, before, *d)
}

func TestApply_NilAndEmptyAreNoOps(t *testing.T) {
	d := New(time.Now())
	d.Testator.FullName = "Someone"
	before := *d

	d.Apply(nil)
	require.Equal(t, before, *d)

	d.Apply(&Update{})
	require.Equal(t, before, *d)
}

func TestApply_GenerationDateImmutable(t *testing.T) {
	d := New(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	gen := d.GenerationDate

	name := "x"
	d.Apply(&Update{SignatureData: &name, ResiduaryBeneficiary: &name})
	require.Equal(t, gen, d.GenerationDate)
}
