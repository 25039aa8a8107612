package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dialup-inc/gphoto2"
)

// ParseValue converts command line text to the Go type SetValue expects
// for a widget of type t.
func ParseValue(t gphoto2.WidgetType, s string) (interface{}, error) {
	switch t {
	case gphoto2.WidgetText, gphoto2.WidgetMenu, gphoto2.WidgetRadio:
		return s, nil
	case gphoto2.WidgetRange:
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", s)
		}
		return float32(f), nil
	case gphoto2.WidgetToggle:
		switch strings.ToLower(s) {
		case "1", "on", "yes", "true":
			return true, nil
		case "0", "off", "no", "false":
			return false, nil
		}
		return nil, fmt.Errorf("%q is not on or off", s)
	case gphoto2.WidgetDate:
		if s == "now" {
			return time.Now(), nil
		}
		if ts, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.Unix(ts, 0), nil
		}
		d, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("%q is not a unix time or RFC 3339 date", s)
		}
		return d, nil
	}
	return nil, fmt.Errorf("%s widgets have no value", t)
}

// FormatValue renders a widget value for display.
func FormatValue(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case bool:
		if v {
			return "on"
		}
		return "off"
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}
