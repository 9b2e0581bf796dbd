package domain

import "testing"

func TestFormatDisplayDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "2024-03-15T04:00:00.000Z", want: "March 2024"},
		{in: "2019-11-01T00:00:00+02:00", want: "November 2019"},
		{in: "2018-06-01", want: "June 2018"},
		{in: "2018-06-01T09:30", want: "June 2018"},
		{in: "not-a-date", want: "not-a-date"},
		{in: "not-a-date-at-all-long", want: "not-a-date"},
		{in: "2024-13-45T04:00:00.000Z", want: "2024-13-45"},
		{in: "short", want: "short"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FormatDisplayDate(tt.in); got != tt.want {
				t.Errorf("FormatDisplayDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWireDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "  ", want: ""},
		{in: "2020-01-01", want: "2020-01-01T04:00:00.000Z"},
		{in: "2020-01-01T04:00:00.000Z", want: "2020-01-01T04:00:00.000Z"},
		{in: "2020-01-01T23:59:00+05:00", want: "2020-01-01T04:00:00.000Z"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := WireDate(tt.in); got != tt.want {
				t.Errorf("WireDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDateRange(t *testing.T) {
	end := "2021-06-01T04:00:00.000Z"
	empty := ""

	tests := []struct {
		name  string
		start string
		end   *string
		want  string
	}{
		{name: "no start", start: "", end: &end, want: ""},
		{name: "open ended", start: "2020-01-01T04:00:00.000Z", end: nil, want: "January 2020 – Present"},
		{name: "empty end", start: "2020-01-01T04:00:00.000Z", end: &empty, want: "January 2020 – Present"},
		{name: "closed", start: "2020-01-01T04:00:00.000Z", end: &end, want: "January 2020 – June 2021"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateRange(tt.start, tt.end); got != tt.want {
				t.Errorf("DateRange() = %q, want %q", got, tt.want)
			}
		})
	}
}
