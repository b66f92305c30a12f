package listing_test

import (
	"errors"
	"testing"
	"time"

	"hris-admin/internal/listing"
	"hris-admin/internal/shared/apperror"
	"hris-admin/internal/shared/locale"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	ID     string
	Name   string
	Team   string
	Joined time.Time
}

func newPeopleView() *listing.View[person] {
	return listing.NewView(locale.Default,
		listing.StringField("id", func(p person) string { return p.ID }),
		listing.StringField("name", func(p person) string { return p.Name }),
		listing.StringField("team", func(p person) string { return p.Team }),
		listing.TimeField("joined", func(p person) time.Time { return p.Joined }, locale.Default.FormatDate),
	)
}

func names(ps []person) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func load(t *testing.T, v *listing.View[person], ps ...person) {
	t.Helper()
	require.True(t, v.Commit(v.Begin(), ps))
}

var (
	ann   = person{ID: "e1", Name: "Ann", Team: "Eng", Joined: time.Date(2021, 3, 5, 0, 0, 0, 0, time.UTC)}
	bo    = person{ID: "e2", Name: "Bo", Team: "", Joined: time.Date(2020, 1, 9, 0, 0, 0, 0, time.UTC)}
	carla = person{ID: "e3", Name: "Carla", Team: "Engineering", Joined: time.Date(2022, 3, 5, 0, 0, 0, 0, time.UTC)}
)

func TestView_Apply(t *testing.T) {
	t.Run("empty filters keep every record including absent values", func(t *testing.T) {
		v := newPeopleView()
		load(t, v, ann, bo, carla)

		assert.Equal(t, []string{"Ann", "Bo", "Carla"}, names(v.Displayed()))
	})

	t.Run("case-insensitive trimmed substring", func(t *testing.T) {
		v := newPeopleView()
		load(t, v, ann, bo, carla)

		require.NoError(t, v.SetFilter("name", "  cAr "))

		assert.Equal(t, []string{"Carla"}, names(v.Displayed()))
		assert.Len(t, v.Full(), 3)
	})

	t.Run("all filters must match", func(t *testing.T) {
		v := newPeopleView()
		load(t, v, ann, bo, carla)

		require.NoError(t, v.SetFilters(map[string]string{"team": "eng", "name": "a"}))

		assert.Equal(t, []string{"Ann", "Carla"}, names(v.Displayed()))

		require.NoError(t, v.SetFilter("id", "3"))
		assert.Equal(t, []string{"Carla"}, names(v.Displayed()))
	})

	t.Run("absent value never matches a non-empty filter", func(t *testing.T) {
		v := newPeopleView()
		load(t, v, ann, bo)

		require.NoError(t, v.SetFilter("team", "e"))

		assert.Equal(t, []string{"Ann"}, names(v.Displayed()))
	})

	t.Run("date filter matches the rendered date", func(t *testing.T) {
		v := newPeopleView()
		load(t, v, ann, bo, carla)

		require.NoError(t, v.SetFilter("joined", "3/5/"))
		assert.Equal(t, []string{"Ann", "Carla"}, names(v.Displayed()))

		require.NoError(t, v.SetFilter("joined", "2021-03-05"))
		assert.Empty(t, v.Displayed())
	})

	t.Run("unknown field leaves filters untouched", func(t *testing.T) {
		v := newPeopleView()
		load(t, v, ann, bo)

		err := v.SetFilters(map[string]string{"name": "ann", "salary": "1"})

		assert.True(t, errors.Is(err, apperror.ErrUnknownField))
		assert.Equal(t, "", v.Filters()["name"])
		assert.Len(t, v.Displayed(), 2)
	})

	t.Run("commit re-filters the new full list", func(t *testing.T) {
		v := newPeopleView()
		load(t, v, ann, bo)
		require.NoError(t, v.SetFilter("name", "bo"))

		load(t, v, ann, carla)

		assert.Empty(t, v.Displayed())
		assert.Equal(t, "bo", v.Filters()["name"])
	})
}

func TestView_Reset(t *testing.T) {
	v := newPeopleView()
	load(t, v, carla, ann, bo)
	require.NoError(t, v.Sort("name", true))
	require.NoError(t, v.SetFilters(map[string]string{"name": "a", "team": "eng"}))

	v.Reset()

	assert.Equal(t, []string{"Carla", "Bo", "Ann"}, names(v.Displayed()))
	for _, f := range v.Filters() {
		assert.Equal(t, "", f)
	}
}

func TestView_Sort(t *testing.T) {
	t.Run("descending by name", func(t *testing.T) {
		v := newPeopleView()
		load(t, v, ann, bo)

		require.NoError(t, v.Sort("name", true))

		assert.Equal(t, []string{"Bo", "Ann"}, names(v.Full()))
		assert.Equal(t, []string{"Bo", "Ann"}, names(v.Displayed()))
		state, ok := v.Sorted()
		assert.True(t, ok)
		assert.Equal(t, listing.SortState{Field: "name", Desc: true}, state)
	})

	t.Run("ascending is ordered and idempotent", func(t *testing.T) {
		v := newPeopleView()
		load(t, v, carla, bo, ann)

		require.NoError(t, v.Sort("joined", false))
		first := v.Full()
		require.NoError(t, v.Sort("joined", false))

		assert.Equal(t, first, v.Full())
		for i := 1; i < len(first); i++ {
			assert.False(t, first[i].Joined.Before(first[i-1].Joined))
		}
		assert.Equal(t, []string{"Bo", "Ann", "Carla"}, names(first))
	})

	t.Run("ties keep their relative order", func(t *testing.T) {
		v := newPeopleView()
		x := person{ID: "x", Name: "Same", Team: "b"}
		y := person{ID: "y", Name: "Same", Team: "a"}
		load(t, v, x, ann, y)

		require.NoError(t, v.Sort("name", false))
		assert.Equal(t, []string{"e1", "x", "y"}, []string{v.Full()[0].ID, v.Full()[1].ID, v.Full()[2].ID})

		require.NoError(t, v.Sort("name", true))
		assert.Equal(t, []string{"x", "y", "e1"}, []string{v.Full()[0].ID, v.Full()[1].ID, v.Full()[2].ID})
	})

	t.Run("sort keeps the current filter", func(t *testing.T) {
		v := newPeopleView()
		load(t, v, ann, bo, carla)
		require.NoError(t, v.SetFilter("name", "a"))

		require.NoError(t, v.Sort("name", true))

		assert.Equal(t, []string{"Carla", "Ann"}, names(v.Displayed()))
	})

	t.Run("unknown field", func(t *testing.T) {
		v := newPeopleView()
		load(t, v, ann, bo)

		err := v.Sort("salary", false)

		assert.True(t, errors.Is(err, apperror.ErrUnknownField))
		assert.Equal(t, []string{"Ann", "Bo"}, names(v.Full()))
	})
}

func TestView_Commit(t *testing.T) {
	t.Run("stale token is dropped", func(t *testing.T) {
		v := newPeopleView()
		slow := v.Begin()
		fast := v.Begin()

		assert.True(t, v.Commit(fast, []person{ann, bo}))
		assert.False(t, v.Commit(slow, []person{carla}))

		assert.Equal(t, []string{"Ann", "Bo"}, names(v.Full()))
		assert.Equal(t, fast, v.Committed())
	})

	t.Run("a new fetch replaces the sorted order", func(t *testing.T) {
		v := newPeopleView()
		load(t, v, bo, ann)
		require.NoError(t, v.Sort("name", false))

		load(t, v, bo, ann)

		assert.Equal(t, []string{"Bo", "Ann"}, names(v.Full()))
		_, sorted := v.Sorted()
		assert.False(t, sorted)
	})

	t.Run("nil items become an empty list", func(t *testing.T) {
		v := newPeopleView()
		load(t, v, nil...)

		assert.NotNil(t, v.Full())
		assert.Empty(t, v.Displayed())
	})
}

func TestHolder(t *testing.T) {
	h := listing.NewHolder(func() person { return person{Team: "none"} })
	assert.Equal(t, "none", h.Staged().Team)

	h.Stage(ann)
	assert.Equal(t, ann, h.Staged())

	gen := h.Generation()
	assert.True(t, h.Edit(gen, func(p *person) { p.Name = "Anne" }))
	assert.Equal(t, "Anne", h.Staged().Name)

	h.Unstage()
	assert.Equal(t, person{Team: "none"}, h.Staged())
	assert.False(t, h.Edit(gen, func(p *person) { p.Name = "late" }))
	assert.Equal(t, "", h.Staged().Name)
}
