package listing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dharsanguruparan/strazak/internal/client"
)

func TestPager_ShortPageDisablesNext(t *testing.T) {
	p := NewPager(50)
	p.Observe(50, nil)
	require.True(t, p.HasNext())
	require.True(t, p.Next())
	require.Equal(t, 50, p.Offset())
	require.Equal(t, 1, p.Page())

	p.Observe(49, nil)
	require.False(t, p.HasNext())
	require.False(t, p.Next())
	require.Equal(t, 50, p.Offset())
}

func TestPager_TotalCountDecidesNext(t *testing.T) {
	p := NewPager(50)
	total := 100
	p.Observe(50, &total)
	require.True(t, p.HasNext())
	p.Next()
	p.Observe(50, &total)
	require.False(t, p.HasNext(), "offset+returned == total")

	n, ok := p.Total()
	require.True(t, ok)
	require.Equal(t, 100, n)

	from, to := p.Window()
	require.Equal(t, 51, from)
	require.Equal(t, 100, to)
}

func TestPager_PrevStopsAtFirstPage(t *testing.T) {
	p := NewPager(10)
	require.False(t, p.HasPrev())
	require.False(t, p.Prev())
	p.Seek(3)
	require.Equal(t, 30, p.Offset())
	require.True(t, p.Prev())
	require.Equal(t, 20, p.Offset())
	p.Seek(-4)
	require.Equal(t, 0, p.Offset())
}

func TestNewPager_DefaultSize(t *testing.T) {
	require.Equal(t, DefaultPageSize, NewPager(0).Size())
}

func TestSort_Toggle(t *testing.T) {
	var s Sort
	s.Toggle("nazwisko_imie")
	require.Equal(t, Sort{Column: "nazwisko_imie", Order: client.Ascending}, s)

	s.Toggle("nazwisko_imie")
	require.Equal(t, client.Descending, s.Order)

	s.Toggle("nazwisko_imie")
	require.Equal(t, client.Ascending, s.Order)

	s.Toggle("nazwisko_imie")
	s.Toggle("czas_rozp_zdarzenia")
	require.Equal(t, Sort{Column: "czas_rozp_zdarzenia", Order: client.Ascending}, s)

	s.Clear()
	require.Equal(t, Sort{}, s)
}
