package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "cart", OwnerKey(0))
	assert.Equal(t, "cart:42", OwnerKey(42))
}

func TestStore_ReadEmpty(t *testing.T) {
	t.Parallel()

	s := NewStore(NewMemoryKV())
	lines, err := s.Read(GuestKey)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestStore_WriteRead(t *testing.T) {
	t.Parallel()

	s := NewStore(NewMemoryKV())
	in := []Line{{ProductID: 1, Qty: 2}, {ProductID: 7, Qty: 1}}
	require.NoError(t, s.Write(in, GuestKey))

	out, err := s.Read(GuestKey)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestStore_OwnerKeysAreIsolated(t *testing.T) {
	t.Parallel()

	s := NewStore(NewMemoryKV())
	guestLines := []Line{{ProductID: 1, Qty: 1}}
	ownerLines := []Line{{ProductID: 2, Qty: 3}}

	require.NoError(t, s.Write(guestLines, OwnerKey(0)))
	require.NoError(t, s.Write(ownerLines, OwnerKey(5)))

	gotGuest, err := s.Read(OwnerKey(0))
	require.NoError(t, err)
	gotOwner, err := s.Read(OwnerKey(5))
	require.NoError(t, err)

	assert.Equal(t, guestLines, gotGuest)
	assert.Equal(t, ownerLines, gotOwner)
}

func TestStore_MalformedPayloadReadsAsEmpty(t *testing.T) {
	t.Parallel()

	kv := NewMemoryKV()
	require.NoError(t, kv.Set(GuestKey, []byte("{not json")))

	s := NewStore(kv)
	lines, err := s.Read(GuestKey)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestStore_DropsInvalidEntries(t *testing.T) {
	t.Parallel()

	kv := NewMemoryKV()
	require.NoError(t, kv.Set(GuestKey, []byte(`[{"id":1,"qty":2},{"id":0,"qty":5},{"id":3,"qty":0}]`)))

	s := NewStore(kv)
	lines, err := s.Read(GuestKey)
	require.NoError(t, err)
	assert.Equal(t, []Line{{ProductID: 1, Qty: 2}}, lines)
}

func TestStore_SubscribeSignalsOnWrite(t *testing.T) {
	t.Parallel()

	s := NewStore(NewMemoryKV())
	ch, cancel := s.Subscribe(GuestKey)
	defer cancel()

	require.NoError(t, s.Write([]Line{{ProductID: 1, Qty: 1}}, GuestKey))

	select {
	case <-ch:
	default:
		t.Fatal("expected a change signal after write")
	}
}

func TestStore_SubscribeOtherKeyStaysQuiet(t *testing.T) {
	t.Parallel()

	s := NewStore(NewMemoryKV())
	ch, cancel := s.Subscribe(OwnerKey(1))
	defer cancel()

	require.NoError(t, s.Write([]Line{{ProductID: 1, Qty: 1}}, OwnerKey(2)))

	select {
	case <-ch:
		t.Fatal("unexpected signal for a different owner key")
	default:
	}
}

func TestAdd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		lines     []Line
		productID uint
		qty       uint
		want      []Line
	}{
		{
			name:      "new product",
			lines:     nil,
			productID: 1,
			qty:       2,
			want:      []Line{{ProductID: 1, Qty: 2}},
		},
		{
			name:      "existing product accumulates",
			lines:     []Line{{ProductID: 1, Qty: 2}},
			productID: 1,
			qty:       3,
			want:      []Line{{ProductID: 1, Qty: 5}},
		},
		{
			name:      "zero quantity coerced to one",
			lines:     nil,
			productID: 4,
			qty:       0,
			want:      []Line{{ProductID: 4, Qty: 1}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Add(tt.lines, tt.productID, tt.qty))
		})
	}
}

func TestDecrement_FlooredAtOne(t *testing.T) {
	t.Parallel()

	lines := []Line{{ProductID: 1, Qty: 2}}
	lines = Decrement(lines, 1)
	assert.Equal(t, []Line{{ProductID: 1, Qty: 1}}, lines)

	lines = Decrement(lines, 1)
	assert.Equal(t, []Line{{ProductID: 1, Qty: 1}}, lines, "decrement never drops below 1")
}

func TestRemove(t *testing.T) {
	t.Parallel()

	lines := []Line{{ProductID: 1, Qty: 2}, {ProductID: 2, Qty: 1}}
	assert.Equal(t, []Line{{ProductID: 2, Qty: 1}}, Remove(lines, 1))
}

func TestMutationsArePure(t *testing.T) {
	t.Parallel()

	orig := []Line{{ProductID: 1, Qty: 2}}
	_ = Add(orig, 1, 1)
	_ = Increment(orig, 1)
	_ = Decrement(orig, 1)
	_ = Remove(orig, 1)
	_ = Clear(orig)

	assert.Equal(t, []Line{{ProductID: 1, Qty: 2}}, orig, "mutation helpers must not touch their input")
}
