package kafka

import (
	"testing"

	"github.com/nickhafer/ufo-sightings-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRow(t *testing.T) {
	value := []byte(`{
		"Date_time": "2023-06-01 14:00:00",
		"latitude": 45.25,
		"longitude": -100,
		"Hour": 14,
		"UFO_shape": "Circle",
		"Description": null,
		"verified": true,
		"tags": ["a","b"]
	}`)

	row, err := decodeRow(value)
	require.NoError(t, err)

	assert.Equal(t, "2023-06-01 14:00:00", row[domain.ColDateTime])
	assert.Equal(t, "45.25", row[domain.ColLatitude])
	assert.Equal(t, "-100", row[domain.ColLongitude])
	assert.Equal(t, "14", row[domain.ColHour])
	assert.Equal(t, "", row[domain.ColDescription])
	assert.Equal(t, "true", row["verified"])
	assert.Equal(t, `["a","b"]`, row["tags"])

	rec := domain.NormalizeRow(row)
	assert.True(t, rec.HasValidCoordinates())
	assert.Equal(t, "Thursday", rec.DayOfWeek)
}

func TestDecodeRow_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not json", "not-json{{{"},
		{"array", `["Date_time"]`},
		{"null", "null"},
		{"string", `"2023-06-01"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeRow([]byte(tt.value))
			assert.Error(t, err)
		})
	}
}

func TestSerializeToMessage(t *testing.T) {
	row := domain.RawRow{
		domain.ColDateTime: "2023-06-01 14:00:00",
		domain.ColShape:    "Circle",
	}

	msg, err := serializeToMessage(row)
	require.NoError(t, err)

	assert.Equal(t, []byte(domain.NormalizeRow(row).ID), msg.Key)
	assert.JSONEq(t, `{"Date_time":"2023-06-01 14:00:00","UFO_shape":"Circle"}`, string(msg.Value))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "content_type", msg.Headers[0].Key)

	back, err := decodeRow(msg.Value)
	require.NoError(t, err)
	assert.Equal(t, row, back)
}
