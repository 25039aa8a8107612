package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialup-inc/gphoto2"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		typ  gphoto2.WidgetType
		in   string
		want interface{}
	}{
		{gphoto2.WidgetText, "hello", "hello"},
		{gphoto2.WidgetMenu, "1/250", "1/250"},
		{gphoto2.WidgetRange, "-1.5", float32(-1.5)},
		{gphoto2.WidgetToggle, "on", true},
		{gphoto2.WidgetToggle, "0", false},
		{gphoto2.WidgetDate, "86400", time.Unix(86400, 0)},
	}

	for _, tt := range tests {
		got, err := ParseValue(tt.typ, tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	d, err := ParseValue(gphoto2.WidgetDate, "2024-05-01T12:00:00Z")
	require.NoError(t, err)
	assert.True(t, d.(time.Time).Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))

	for _, bad := range []struct {
		typ gphoto2.WidgetType
		in  string
	}{
		{gphoto2.WidgetRange, "wide"},
		{gphoto2.WidgetToggle, "maybe"},
		{gphoto2.WidgetDate, "yesterday"},
		{gphoto2.WidgetButton, "press"},
		{gphoto2.WidgetSection, ""},
	} {
		_, err := ParseValue(bad.typ, bad.in)
		assert.Error(t, err, bad.in)
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "on", FormatValue(true))
	assert.Equal(t, "0.5", FormatValue(float32(0.5)))
	assert.Equal(t, "1970-01-02T00:00:00Z", FormatValue(time.Unix(86400, 0).UTC()))
	assert.Equal(t, "auto", FormatValue("auto"))
}
