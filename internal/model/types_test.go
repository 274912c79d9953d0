package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "valid date", input: "1990-05-15", want: "1990-05-15"},
		{name: "leap day", input: "2024-02-29", want: "2024-02-29"},
		{name: "rejects datetime", input: "1990-05-15T00:00:00", wantErr: true},
		{name: "rejects us format", input: "05/15/1990", wantErr: true},
		{name: "rejects impossible day", input: "2023-02-30", wantErr: true},
		{name: "rejects empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(1990, time.May, 15)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1990-05-15"`, string(data))

	var decoded Date
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Equal(d.Time))
}

func TestDateUnmarshalRejectsNonString(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`19900515`), &d))
	assert.Error(t, json.Unmarshal([]byte(`{"year": 1990}`), &d))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2001, time.December, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2001-12-03", d.String())

	require.NoError(t, d.Scan([]byte("1985-07-20")))
	assert.Equal(t, "1985-07-20", d.String())

	assert.Error(t, d.Scan(42))
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "iso without zone", input: "2024-11-05T14:30:00", want: "2024-11-05T14:30:00"},
		{name: "rfc3339", input: "2024-11-05T14:30:00Z", want: "2024-11-05T14:30:00"},
		{name: "space separated", input: "2024-11-05 14:30:00", want: "2024-11-05T14:30:00"},
		{name: "rejects date only", input: "2024-11-05", wantErr: true},
		{name: "rejects garbage", input: "next tuesday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dt, err := ParseDateTime(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, dt.String())
		})
	}
}

func TestDateTimeJSONRoundTrip(t *testing.T) {
	dt, err := ParseDateTime("2024-11-05T14:30:00")
	require.NoError(t, err)

	data, err := json.Marshal(dt)
	require.NoError(t, err)
	assert.Equal(t, `"2024-11-05T14:30:00"`, string(data))

	var decoded DateTime
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Equal(dt.Time))
}

func TestParseGender(t *testing.T) {
	for _, valid := range []string{"Male", "Female", "Other"} {
		g, err := ParseGender(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, g.String())
	}

	for _, invalid := range []string{"male", "FEMALE", "unknown", "", "M"} {
		_, err := ParseGender(invalid)
		assert.Error(t, err, "gender %q should be rejected", invalid)
	}
}

func TestGenderUnmarshalRejectsInvalid(t *testing.T) {
	var g Gender
	require.NoError(t, json.Unmarshal([]byte(`"Female"`), &g))
	assert.Equal(t, GenderFemale, g)

	assert.Error(t, json.Unmarshal([]byte(`"female"`), &g))
	assert.Error(t, json.Unmarshal([]byte(`1`), &g))
}

func TestGenderScan(t *testing.T) {
	var g Gender
	require.NoError(t, g.Scan("Other"))
	assert.Equal(t, GenderOther, g)

	require.NoError(t, g.Scan([]byte("Male")))
	assert.Equal(t, GenderMale, g)

	assert.Error(t, g.Scan(3.14))
}
