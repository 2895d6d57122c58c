package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeMarshalJSON(t *testing.T) {
	at := time.Date(2024, 5, 20, 10, 30, 0, 0, time.Local)
	b, err := json.Marshal(Time(at))
	require.NoError(t, err)
	assert.Equal(t, `"2024-05-20 10:30:00"`, string(b))
}

func TestTimeMarshalJSONZero(t *testing.T) {
	b, err := json.Marshal(Time(time.Time{}))
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestTimeUnmarshalJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want time.Time
	}{
		{"local format", `"2024-05-20 10:30:00"`, time.Date(2024, 5, 20, 10, 30, 0, 0, time.Local)},
		{"rfc3339", `"2024-05-20T10:30:00Z"`, time.Date(2024, 5, 20, 10, 30, 0, 0, time.UTC)},
		{"null", `null`, time.Time{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var got Time
			require.NoError(t, json.Unmarshal([]byte(c.in), &got))
			assert.True(t, got.Time().Equal(c.want), "got %v want %v", got.Time(), c.want)
		})
	}
}

func TestTimeUnmarshalJSONInvalid(t *testing.T) {
	var got Time
	assert.Error(t, json.Unmarshal([]byte(`"not-a-time"`), &got))
}

func TestTimeScan(t *testing.T) {
	at := time.Date(2024, 5, 20, 10, 30, 0, 0, time.Local)

	var fromTime Time
	require.NoError(t, fromTime.Scan(at))
	assert.True(t, fromTime.Time().Equal(at))

	var fromString Time
	require.NoError(t, fromString.Scan("2024-05-20 10:30:00"))
	assert.True(t, fromString.Time().Equal(at))

	var fromNil Time
	require.NoError(t, fromNil.Scan(nil))
	assert.True(t, fromNil.IsZero())
}
