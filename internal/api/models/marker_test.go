package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarker_PresenceFromJSON(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		present bool
	}{
		{"missing", `{}`, false},
		{"null", `{"isStartNodeOfContainer":null}`, false},
		{"string id", `{"isStartNodeOfContainer":"root-marker"}`, true},
		{"zero", `{"isStartNodeOfContainer":0}`, true},
		{"false", `{"isStartNodeOfContainer":false}`, true},
		{"empty string", `{"isStartNodeOfContainer":""}`, true},
		{"object", `{"isStartNodeOfContainer":{"id":"c1"}}`, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var n FlowNode
			require.NoError(t, json.Unmarshal([]byte(tc.payload), &n))
			assert.Equal(t, tc.present, n.IsStartNodeOfContainer.Present())
		})
	}
}

func TestMarker_MarkerOf(t *testing.T) {
	m, err := MarkerOf(nil)
	require.NoError(t, err)
	assert.False(t, m.Present())

	m, err = MarkerOf(false)
	require.NoError(t, err)
	assert.True(t, m.Present())

	m, err = MarkerOf("c1")
	require.NoError(t, err)
	var id string
	require.NoError(t, m.Decode(&id))
	assert.Equal(t, "c1", id)
}

func TestMarker_ScanAndValue(t *testing.T) {
	var m Marker
	require.NoError(t, m.Scan(nil))
	assert.False(t, m.Present())

	require.NoError(t, m.Scan("null"))
	assert.False(t, m.Present())

	require.NoError(t, m.Scan([]byte(`"c1"`)))
	assert.True(t, m.Present())

	v, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, `"c1"`, v)

	v, err = Marker(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	assert.Error(t, m.Scan(42))
}

func TestMarker_DecodeAbsent(t *testing.T) {
	var id string
	assert.Error(t, Marker(nil).Decode(&id))
}

func TestMarker_MarshalJSON(t *testing.T) {
	raw, err := json.Marshal(FlowNode{ID: "n1"})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"isStartNodeOfContainer":null`)

	m, _ := MarkerOf(0)
	raw, err = json.Marshal(FlowNode{ID: "n1", IsStartNodeOfContainer: m})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"isStartNodeOfContainer":0`)
}
