package composer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAddItem_AcumularMergesQuantities(t *testing.T) {
	dr := New[int](Acumular)
	dr.ChangeParent(3)

	require.NoError(t, dr.AddItem(Line{ItemID: 7, Cantidad: 2, Precio: d("10.50")}))
	require.NoError(t, dr.AddItem(Line{ItemID: 7, Cantidad: 3, Precio: d("10.50")}))
	require.NoError(t, dr.AddItem(Line{ItemID: 8, Cantidad: 1, Precio: d("4")}))

	items := dr.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 5, items[0].Cantidad)
	assert.True(t, d("56.50").Equal(dr.Total()))
}

func TestAddItem_DeduplicarKeepsFirst(t *testing.T) {
	dr := New[string](Deduplicar)
	dr.ChangeParent("ABC123")

	require.NoError(t, dr.AddItem(Line{ItemID: 1, Cantidad: 1, Precio: d("50000")}))
	require.NoError(t, dr.AddItem(Line{ItemID: 1, Cantidad: 1, Precio: d("99999")}))

	items := dr.Items()
	require.Len(t, items, 1)
	assert.True(t, d("50000").Equal(items[0].Precio))
}

func TestAddItem_RejectsZeroQuantity(t *testing.T) {
	dr := New[int](Acumular)
	assert.ErrorIs(t, dr.AddItem(Line{ItemID: 1, Cantidad: 0}), ErrCantidad)
	assert.Equal(t, 0, dr.Len())
}

func TestChangeParent_ClearsNonEmptyList(t *testing.T) {
	dr := New[int](Acumular)
	assert.False(t, dr.ChangeParent(1))
	require.NoError(t, dr.AddItem(Line{ItemID: 7, Cantidad: 2, Precio: d("1")}))

	// Same parent again: nothing changes.
	assert.False(t, dr.ChangeParent(1))
	assert.Equal(t, 1, dr.Len())

	assert.True(t, dr.ChangeParent(2))
	assert.Equal(t, 0, dr.Len())
	p, ok := dr.Parent()
	assert.True(t, ok)
	assert.Equal(t, 2, p)
}

func TestChangeParent_EmptyListIsNotCleared(t *testing.T) {
	dr := New[int](Acumular)
	dr.ChangeParent(1)
	assert.False(t, dr.ChangeParent(2))
}

func TestTotal_RecomputedAfterEveryMutation(t *testing.T) {
	dr := New[int](Acumular)
	dr.ChangeParent(1)
	require.NoError(t, dr.AddItem(Line{ItemID: 1, Cantidad: 2, Precio: d("3.25")}))
	require.NoError(t, dr.AddItem(Line{ItemID: 2, Cantidad: 1, Precio: d("10")}))
	assert.True(t, d("16.5").Equal(dr.Total()))

	require.NoError(t, dr.SetCantidad(2, 4))
	assert.True(t, d("46.5").Equal(dr.Total()))

	dr.RemoveItem(1)
	assert.True(t, d("40").Equal(dr.Total()))

	dr.RemoveItem(2)
	assert.True(t, decimal.Zero.Equal(dr.Total()))
}

func TestSetCantidad_Invalid(t *testing.T) {
	dr := New[int](Acumular)
	dr.ChangeParent(1)
	require.NoError(t, dr.AddItem(Line{ItemID: 1, Cantidad: 2, Precio: d("1")}))
	assert.ErrorIs(t, dr.SetCantidad(1, 0), ErrCantidad)
	assert.Equal(t, 2, dr.Items()[0].Cantidad)
}

func TestValidate(t *testing.T) {
	dr := New[int](Acumular)
	assert.ErrorIs(t, dr.Validate(), ErrSinPadre)

	dr.ChangeParent(9)
	assert.ErrorIs(t, dr.Validate(), ErrSinItems)

	require.NoError(t, dr.AddItem(Line{ItemID: 1, Cantidad: 1, Precio: d("1")}))
	assert.NoError(t, dr.Validate())
}

func TestItems_ReturnsCopy(t *testing.T) {
	dr := New[int](Acumular)
	dr.ChangeParent(1)
	require.NoError(t, dr.AddItem(Line{ItemID: 1, Cantidad: 1, Precio: d("1")}))

	items := dr.Items()
	items[0].Cantidad = 99
	assert.Equal(t, 1, dr.Items()[0].Cantidad)
}
