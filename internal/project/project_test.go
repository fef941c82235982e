package project

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathHash_StableAndShort(t *testing.T) {
	a := PathHash("/home/user/dev/alpha")
	b := PathHash("/home/user/dev/alpha")
	c := PathHash("/home/user/dev/bravo")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)
	assert.Regexp(t, "^[0-9a-f]{16}$", a)
}

func TestPathHash_KnownValue(t *testing.T) {
	// sha256("") = e3b0c44298fc1c149afbf4c8996fb924...
	assert.Equal(t, "e3b0c44298fc1c14", PathHash(""))
}

func TestString(t *testing.T) {
	assert.Nil(t, String(""))
	require.NotNil(t, String("main"))
	assert.Equal(t, "main", *String("main"))
}

func TestFlags_MarshalKnownKeysInOrder(t *testing.T) {
	ci := Flags{"gitlabCi": false, "travis": true, "circleci": false, "githubActions": true}
	data, err := json.Marshal(ci)
	require.NoError(t, err)
	assert.Equal(t, `{"githubActions":true,"circleci":false,"travis":true,"gitlabCi":false}`, string(data))

	deploy := Flags{"netlify": false, "vercel": true, "fly": false, "render": true, "azure": false}
	data, err = json.Marshal(deploy)
	require.NoError(t, err)
	assert.Equal(t, `{"fly":false,"vercel":true,"netlify":false,"azure":false,"render":true}`, string(data))
}

func TestFlags_MarshalEmptyAndNil(t *testing.T) {
	data, err := json.Marshal(Flags{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))

	data, err = json.Marshal(struct {
		CICD Flags `json:"cicd"`
	}{})
	require.NoError(t, err)
	assert.Equal(t, `{"cicd":null}`, string(data))
}

func TestFlags_RoundTrip(t *testing.T) {
	in := Flags{"githubActions": true, "custom": false}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Flags
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestFlagsAny(t *testing.T) {
	assert.False(t, Flags(nil).Any())
	assert.False(t, Flags{"travis": false}.Any())
	assert.True(t, Flags{"travis": false, "githubActions": true}.Any())
}

func TestFacts_NullableFieldsEncodeAsNull(t *testing.T) {
	data, err := json.Marshal(Facts{Name: "x"})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	for _, key := range []string{"lastCommitDate", "branch", "remoteUrl", "daysInactive", "framework", "packageManager", "description"} {
		v, ok := m[key]
		assert.True(t, ok, "key %q missing", key)
		assert.Nil(t, v, "key %q should be null", key)
	}
}

func TestDeriveInput_IgnoresUnknownFields(t *testing.T) {
	doc := `{"scannedAt":"2026-01-01T00:00:00Z","projectCount":1,"projects":[{"pathHash":"abc","extra":true,"cicd":{"github_actions":true}}]}`
	var in DeriveInput
	require.NoError(t, json.Unmarshal([]byte(doc), &in))
	require.Len(t, in.Projects, 1)
	assert.Equal(t, "abc", in.Projects[0].PathHash)
	assert.True(t, in.Projects[0].CICD.Any())
	require.NotNil(t, in.ScannedAt)
	assert.Equal(t, "2026-01-01T00:00:00Z", *in.ScannedAt)
}
