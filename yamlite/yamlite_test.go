package yamlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"
)

// statsTube is a verbatim beanstalkd stats-tube reply.
const statsTube = `---
name: default
current-jobs-urgent: 0
current-jobs-ready: 3
current-jobs-reserved: 1
total-jobs: 4
pause: 0
cmd-delete: 0
`

const tubeList = `---
- default
- emails
- "imports/2024"
`

func TestDecodeDict(t *testing.T) {
	t.Parallel()

	d, err := DecodeDict([]byte(statsTube))
	require.NoError(t, err)

	name, ok := d.Get("name")
	require.True(t, ok)
	assert.Equal(t, "default", name)

	ready, err := d.Int("current-jobs-ready")
	require.NoError(t, err)
	assert.Equal(t, int64(3), ready)

	total, err := d.Uint64("total-jobs")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), total)
}

func TestDecodeDict_SkipsNoiseLines(t *testing.T) {
	t.Parallel()

	in := "---\r\n# generated\r\n\r\nkey: value\r\n"
	d, err := DecodeDict([]byte(in))
	require.NoError(t, err)
	assert.Equal(t, Dict{"key": "value"}, d)
}

func TestDecodeDict_EmptyValue(t *testing.T) {
	t.Parallel()

	d, err := DecodeDict([]byte("key:\n"))
	require.NoError(t, err)
	assert.Equal(t, Dict{"key": ""}, d)
}

func TestDecodeDict_KeepsNumericLookingStrings(t *testing.T) {
	t.Parallel()

	d, err := DecodeDict([]byte("version: 1.13\nid: 00af12\n"))
	require.NoError(t, err)

	v, _ := d.Get("version")
	assert.Equal(t, "1.13", v, "version must stay a string")

	_, err = d.Int("version")
	assert.Error(t, err)
}

func TestDecodeDict_SyntaxErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   string
	}{
		{name: "list item in a dict", in: "---\n- default\n"},
		{name: "no colon", in: "just a scalar\n"},
		{name: "no space after colon", in: "key:value\n"},
		{name: "empty key", in: ": value\n"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeDict([]byte(tc.in))
			require.Error(t, err)
			var syntaxErr *SyntaxError
			assert.ErrorAs(t, err, &syntaxErr)
		})
	}
}

func TestDecodeList(t *testing.T) {
	t.Parallel()

	got, err := DecodeList([]byte(tubeList))
	require.NoError(t, err)
	assert.Equal(t, []string{"default", "emails", "imports/2024"}, got)

	_, err = DecodeList([]byte("---\nkey: value\n"))
	assert.Error(t, err, "a mapping is not a list")
}

func TestDict_TypedAccessors(t *testing.T) {
	t.Parallel()

	d, err := DecodeDict([]byte("draining: false\npaused: yes\nrusage-utime: 0.148125\n"))
	require.NoError(t, err)

	draining, err := d.Bool("draining")
	require.NoError(t, err)
	assert.False(t, draining)

	paused, err := d.Bool("paused")
	require.NoError(t, err)
	assert.True(t, paused)

	utime, err := d.Seconds("rusage-utime")
	require.NoError(t, err)
	assert.Equal(t, 148125*time.Microsecond, utime)

	_, err = d.Bool("missing")
	assert.Error(t, err)
	_, err = d.Seconds("draining")
	assert.Error(t, err)
}

// TestAgreesWithReferenceDecoder checks the subset against yaml.v3: any
// document this package accepts must decode identically there.
func TestAgreesWithReferenceDecoder(t *testing.T) {
	t.Parallel()

	t.Run("dict", func(t *testing.T) {
		t.Parallel()
		ours, err := DecodeDict([]byte(statsTube))
		require.NoError(t, err)

		var reference map[string]string
		require.NoError(t, yaml.Unmarshal([]byte(statsTube), &reference))
		assert.Equal(t, reference, map[string]string(ours))
	})

	t.Run("list", func(t *testing.T) {
		t.Parallel()
		ours, err := DecodeList([]byte(tubeList))
		require.NoError(t, err)

		var reference []string
		require.NoError(t, yaml.Unmarshal([]byte(tubeList), &reference))
		assert.Equal(t, reference, ours)
	})

	t.Run("colon without space is a scalar, not a mapping", func(t *testing.T) {
		t.Parallel()
		in := []byte("key:value\n")

		var scalar string
		require.NoError(t, yaml.Unmarshal(in, &scalar))
		assert.Equal(t, "key:value", scalar)

		_, err := DecodeDict(in)
		assert.Error(t, err)
	})
}
