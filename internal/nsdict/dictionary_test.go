package nsdict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/gomlgo/internal/errors"
	"github.com/vk/gomlgo/internal/nsid"
)

// ref is a minimal markup reference.
type ref struct {
	ns   string
	name string
}

func (r ref) NamespaceURI() string { return r.ns }
func (r ref) LocalName() string    { return r.name }

const foreignNS = "http://grimoire.gl/ns/default"

func TestDictionary_SetAndGet(t *testing.T) {
	d := New[string]()
	d.Set(nsid.MustParse("hoge.test"), "Grimoire")

	v, err := d.Get("test")
	require.NoError(t, err)
	assert.Equal(t, "Grimoire", v)

	v, err = d.Get("hoge.test")
	require.NoError(t, err)
	assert.Equal(t, "Grimoire", v)

	_, err = d.Get("false")
	assert.True(t, errors.IsNotFound(err))
}

func TestDictionary_SameIdentityReplaces(t *testing.T) {
	d := New[string]()
	a := nsid.New("ns", "test")
	b := nsid.MustParse("ns.test")

	d.Set(nsid.New("ns", "first"), "0")
	d.Set(a, "A")
	d.Set(b, "B")

	assert.Equal(t, 2, d.Len())
	v, err := d.Get(a)
	require.NoError(t, err)
	assert.Equal(t, "B", v)
	assert.Equal(t, []nsid.Identity{nsid.New("ns", "first"), a}, d.Keys(), "replacement keeps position")
}

func TestDictionary_CaseSensitiveKeys(t *testing.T) {
	d := New[string]()
	lower := nsid.MustParse("test")
	upper := nsid.MustParse("Test")
	d.Set(lower, "test1")
	d.Set(upper, "test2")

	v, err := d.Get(lower)
	require.NoError(t, err)
	assert.Equal(t, "test1", v)

	v, err = d.Get(upper)
	require.NoError(t, err)
	assert.Equal(t, "test2", v)
}

func TestDictionary_Ambiguity(t *testing.T) {
	d := New[string]()
	d.Set(nsid.MustParse("NS1.test"), "one")
	d.Set(nsid.MustParse("NS2.test"), "two")

	_, err := d.Get("test")
	require.Error(t, err)
	assert.True(t, errors.IsAmbiguous(err))
	assert.Contains(t, err.Error(), "NS1.test")
	assert.Contains(t, err.Error(), "NS2.test")
	assert.NotEmpty(t, errors.GetAllHints(err))

	v, err := d.Get("NS1.test")
	require.NoError(t, err)
	assert.Equal(t, "one", v)
}

func TestDictionary_ExactBeforeFuzzy(t *testing.T) {
	d := New[string]()
	bare := nsid.MustParse("test")
	qualified := nsid.MustParse("ns.test")
	d.Set(bare, "gr1")
	d.Set(qualified, "gr2")

	v, err := d.Get(bare)
	require.NoError(t, err)
	assert.Equal(t, "gr1", v)

	v, err = d.Get(qualified)
	require.NoError(t, err)
	assert.Equal(t, "gr2", v)

	v, err = d.Get("ns.test")
	require.NoError(t, err)
	assert.Equal(t, "gr2", v)

	_, err = d.Get("test")
	assert.True(t, errors.IsAmbiguous(err), "bare names never take the exact path")
}

func TestDictionary_NamespaceSuffix(t *testing.T) {
	d := New[string]()
	d.Set(nsid.MustParse("gl.grimoire.core.Transform"), "core")
	d.Set(nsid.MustParse("gl.other.Transform"), "other")

	v, err := d.Get("core.Transform")
	require.NoError(t, err)
	assert.Equal(t, "core", v)

	_, err = d.Get("Transform")
	assert.True(t, errors.IsAmbiguous(err))

	_, err = d.Get("gl.Transform")
	assert.True(t, errors.IsAmbiguous(err), "no suffix match falls back to every name match")

	d.Set(nsid.MustParse("hardcore.Transform"), "hardcore")
	v, err = d.Get("core.Transform")
	require.NoError(t, err)
	assert.Equal(t, "core", v, "suffixes match whole namespace segments only")
}

func TestDictionary_Refs(t *testing.T) {
	testCases := []struct {
		name      string
		stored    map[string]string
		query     ref
		expected  string
		expectErr func(error) bool
	}{
		{
			name:     "strict namespace from element",
			stored:   map[string]string{"test": "test1", "test.test": "test2"},
			query:    ref{ns: "test", name: "test"},
			expected: "test2",
		},
		{
			name:      "foreign namespace with two candidates is ambiguous",
			stored:    map[string]string{"test": "test1", "grimoirejs.test": "test2"},
			query:     ref{ns: foreignNS, name: "test"},
			expectErr: errors.IsAmbiguous,
		},
		{
			name:     "foreign namespace with one candidate",
			stored:   map[string]string{"test": "test"},
			query:    ref{ns: foreignNS, name: "test"},
			expected: "test",
		},
		{
			name:     "fuzzy name",
			stored:   map[string]string{"grimoirejs.test": "test2"},
			query:    ref{ns: foreignNS, name: "test"},
			expected: "test2",
		},
		{
			name:      "ambiguous across similar namespaces",
			stored:    map[string]string{"AATEST.test": "test1", "AATEST2.test": "test2"},
			query:     ref{ns: foreignNS, name: "test"},
			expectErr: errors.IsAmbiguous,
		},
		{
			name:     "attribute without namespace is a bare name",
			stored:   map[string]string{"grimoirejs.position": "p"},
			query:    ref{name: "position"},
			expected: "p",
		},
		{
			name:      "unknown",
			stored:    map[string]string{"a.b": "c"},
			query:     ref{name: "missing"},
			expectErr: errors.IsNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := New[string]()
			for raw, v := range tc.stored {
				d.Set(nsid.MustParse(raw), v)
			}

			v, err := d.GetRef(tc.query)
			if tc.expectErr != nil {
				require.Error(t, err)
				assert.True(t, tc.expectErr(err), "unexpected error category: %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, v)
		})
	}
}

func TestDictionary_Lookup(t *testing.T) {
	d := New[int]()
	id := nsid.MustParse("ns.value")
	d.Set(id, 42)

	got, v, err := d.Lookup("value")
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, 42, v)

	_, _, err = d.Lookup(3.14)
	assert.True(t, errors.IsInvalidOperation(err))

	var nilID *nsid.Identity
	_, _, err = d.Lookup(nilID)
	assert.True(t, errors.IsInvalidOperation(err))

	v, err = d.Get(&id)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestDictionary_OrderDeleteClear(t *testing.T) {
	d := New[int]()
	for i, raw := range []string{"c", "a", "b"} {
		d.Set(nsid.MustParse(raw), i)
	}
	assert.Equal(t, []int{0, 1, 2}, d.Values())

	assert.True(t, d.Delete(nsid.MustParse("a")))
	assert.False(t, d.Delete(nsid.MustParse("a")))
	assert.Equal(t, []int{0, 2}, d.Values())

	v, err := d.Get("b")
	require.NoError(t, err)
	assert.Equal(t, 2, v, "index must be rebuilt after delete")

	clone := d.Clone()
	d.Clear()
	assert.Equal(t, 0, d.Len())
	assert.False(t, d.Has("b"))
	assert.True(t, clone.Has("b"))
	assert.True(t, clone.HasExact(nsid.MustParse("b")))
}

func TestDictionary_EachUsesSnapshot(t *testing.T) {
	d := New[int]()
	d.Set(nsid.MustParse("a"), 1)
	d.Set(nsid.MustParse("b"), 2)

	seen := 0
	d.Each(func(id nsid.Identity, v int) {
		seen++
		d.Set(nsid.New("extra", id.Name), v)
	})
	assert.Equal(t, 2, seen)
	assert.Equal(t, 4, d.Len())
}
