package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStore_SetGetHasDelete(t *testing.T) {
	s := NewStore()

	require.False(t, s.Has(AdminStats))
	_, ok := s.Get(AdminStats)
	require.False(t, ok)

	s.Set(AdminStats, []byte(`{"a":1}`))
	require.True(t, s.Has(AdminStats))

	got, ok := s.Get(AdminStats)
	require.True(t, ok)
	require.Equal(t, `{"a":1}`, string(got))

	s.Set(AdminStats, []byte(`{"a":2}`))
	got, _ = s.Get(AdminStats)
	require.Equal(t, `{"a":2}`, string(got))

	s.Delete(AdminStats)
	require.False(t, s.Has(AdminStats))

	// Deleting a missing key is a no-op.
	s.Delete(AdminStats)
	s.Delete(ProductKey("missing"))
	require.Equal(t, 0, s.Len())
}

func TestStore_ValuesAreCopied(t *testing.T) {
	s := NewStore()

	in := []byte("abc")
	s.Set(Categories, in)
	in[0] = 'x'

	out, _ := s.Get(Categories)
	require.Equal(t, "abc", string(out))

	out[1] = 'y'
	again, _ := s.Get(Categories)
	require.Equal(t, "abc", string(again))
}

func TestStore_ParameterizedKeysAreDistinct(t *testing.T) {
	s := NewStore()
	s.Set(ProductKey("1"), []byte("one"))
	s.Set(ProductKey("2"), []byte("two"))
	s.Set(OrderKey("1"), []byte("order"))

	require.Equal(t, 3, s.Len())
	got, _ := s.Get(ProductKey("1"))
	require.Equal(t, "one", string(got))
}

func TestKey_String(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{AdminStats, "admin-stats"},
		{AdminPieCharts, "admin-pie-charts"},
		{AdminBarCharts, "admin-bar-charts"},
		{AdminLineCharts, "admin-line-charts"},
		{LatestProducts, "latest-product"},
		{Categories, "categories"},
		{AllProducts, "all-products"},
		{AllOrders, "all-orders"},
		{ProductKey("p1"), "product-p1"},
		{OrderKey("o1"), "order-o1"},
		{UserOrdersKey("u1"), "my-orders-u1"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			require.Equal(t, tc.want, tc.key.String())
		})
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := ProductKey(fmt.Sprintf("%d", i%4))
			s.Set(key, []byte("v"))
			s.Has(key)
			s.Get(key)
			if i%3 == 0 {
				s.Delete(key)
			}
		}(i)
	}
	wg.Wait()

	require.LessOrEqual(t, s.Len(), 4)
}

type payload struct {
	Name  string    `json:"name"`
	Chart []float64 `json:"chart"`
}

type recordingObserver struct {
	hits, misses, invalidated map[Kind]int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{
		hits:        map[Kind]int{},
		misses:      map[Kind]int{},
		invalidated: map[Kind]int{},
	}
}

func (o *recordingObserver) Hit(k Kind)         { o.hits[k]++ }
func (o *recordingObserver) Miss(k Kind)        { o.misses[k]++ }
func (o *recordingObserver) Invalidated(k Kind) { o.invalidated[k]++ }

func TestLoadSave_RoundTrip(t *testing.T) {
	obs := newRecordingObserver()
	s := NewStore(WithObserver(obs))

	_, ok := Load[payload](s, AdminBarCharts)
	require.False(t, ok)

	want := payload{Name: "bar", Chart: []float64{0, 1, 2.5}}
	require.NoError(t, Save(s, AdminBarCharts, want))

	got, ok := Load[payload](s, AdminBarCharts)
	require.True(t, ok)
	require.Equal(t, want, got)

	require.Equal(t, 1, obs.hits[KindAdminBarCharts])
	require.Equal(t, 1, obs.misses[KindAdminBarCharts])
}

func TestLoad_CorruptEntryIsAMiss(t *testing.T) {
	obs := newRecordingObserver()
	s := NewStore(WithObserver(obs))
	s.Set(AdminLineCharts, []byte("{not json"))

	got, ok := Load[payload](s, AdminLineCharts)
	require.False(t, ok)
	require.Equal(t, payload{}, got)
	require.Equal(t, 1, obs.misses[KindAdminLineCharts])

	require.NoError(t, Save(s, AdminLineCharts, payload{Name: "fresh"}))
	got, ok = Load[payload](s, AdminLineCharts)
	require.True(t, ok)
	require.Equal(t, "fresh", got.Name)
}

func TestStore_SetIfEpoch(t *testing.T) {
	s := NewStore()

	epoch := s.Epoch()
	require.True(t, s.SetIfEpoch(AdminStats, []byte("a"), epoch))

	s.Invalidate(Invalidation{Product: true})
	require.False(t, s.SetIfEpoch(AdminPieCharts, []byte("b"), epoch))
	require.False(t, s.Has(AdminPieCharts))

	epoch = s.Epoch()
	s.Delete(ProductKey("missing"))
	stored, err := SaveIfEpoch(s, AdminPieCharts, payload{Name: "late"}, epoch)
	require.NoError(t, err)
	require.False(t, stored)

	epoch = s.Epoch()
	s.Set(AdminBarCharts, []byte("c"))
	stored, err = SaveIfEpoch(s, AdminPieCharts, payload{Name: "fresh"}, epoch)
	require.NoError(t, err)
	require.True(t, stored)
	got, ok := Load[payload](s, AdminPieCharts)
	require.True(t, ok)
	require.Equal(t, "fresh", got.Name)
}

type series struct {
	Points []float64 `json:"points"`
}

func (s series) Validate() error {
	if len(s.Points) != 3 {
		return fmt.Errorf("want 3 points, got %d", len(s.Points))
	}
	return nil
}

func TestLoad_NullAndInvalidEntriesAreMisses(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "null", raw: "null"},
		{name: "padded null", raw: " null\n"},
		{name: "empty object", raw: "{}"},
		{name: "short series", raw: `{"points":[1,2]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := newRecordingObserver()
			s := NewStore(WithObserver(obs))
			s.Set(AdminBarCharts, []byte(tt.raw))

			got, ok := Load[series](s, AdminBarCharts)
			require.False(t, ok)
			require.Equal(t, series{}, got)
			require.Equal(t, 1, obs.misses[KindAdminBarCharts])
			require.Zero(t, obs.hits[KindAdminBarCharts])
		})
	}

	s := NewStore()
	s.Set(AdminBarCharts, []byte(`{"points":[1,2,3]}`))
	got, ok := Load[series](s, AdminBarCharts)
	require.True(t, ok)
	require.Equal(t, []float64{1, 2, 3}, got.Points)
}

func TestSave_EncodeError(t *testing.T) {
	s := NewStore()
	err := Save(s, AdminStats, map[string]interface{}{"bad": make(chan int)})
	require.ErrorContains(t, err, "encode cache entry admin-stats")
	require.False(t, s.Has(AdminStats))
}
