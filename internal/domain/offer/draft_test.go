package offer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftLifecycle(t *testing.T) {
	dr := NewDraft(dec("23"))

	a, err := dr.Add(LineInput{Name: "Nagłośnienie", Quantity: dec("3"), UnitPrice: dec("100"), DiscountPercent: dec("10")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, "270.00", a.Subtotal.StringFixed(2))

	b, err := dr.Add(LineInput{Name: "Oświetlenie", Quantity: dec("1"), UnitPrice: dec("500")})
	require.NoError(t, err)
	c, err := dr.Add(LineInput{Name: "Scena", Quantity: dec("2"), UnitPrice: dec("250")})
	require.NoError(t, err)

	totals := dr.Totals()
	assert.Equal(t, "1270.00", totals.Net.StringFixed(2))
	assert.Equal(t, "1562.10", totals.Gross.StringFixed(2))

	updated, err := dr.Update(b.ID, LineInput{Name: "Oświetlenie LED", Quantity: dec("2"), UnitPrice: dec("500")})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Position)
	assert.Equal(t, "1000.00", updated.Subtotal.StringFixed(2))

	assert.True(t, dr.Remove(a.ID))
	assert.False(t, dr.Remove(a.ID))

	lines := dr.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, b.ID, lines[0].ID)
	assert.Equal(t, 0, lines[0].Position)
	assert.Equal(t, c.ID, lines[1].ID)
	assert.Equal(t, 1, lines[1].Position)

	next, err := dr.Add(LineInput{Name: "Transport", Quantity: dec("1"), UnitPrice: dec("80")})
	require.NoError(t, err)
	assert.Equal(t, int64(4), next.ID, "ids are never reused")
}

func TestDraftRejectsInvalidLines(t *testing.T) {
	dr := NewDraft(DefaultVATRate)

	_, err := dr.Add(LineInput{Name: "X", Quantity: dec("-1"), UnitPrice: dec("1")})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Empty(t, dr.Lines())

	_, err = dr.Update(99, LineInput{Name: "X", Quantity: dec("1"), UnitPrice: dec("1")})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestDraftLinesIsCopy(t *testing.T) {
	dr := NewDraft(DefaultVATRate)
	_, err := dr.Add(LineInput{Name: "A", Quantity: dec("1"), UnitPrice: dec("10")})
	require.NoError(t, err)

	lines := dr.Lines()
	lines[0].Name = "changed"
	assert.Equal(t, "A", dr.Lines()[0].Name)
}
