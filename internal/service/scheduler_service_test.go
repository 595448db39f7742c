package service

import "testing"

func TestBuildDailySpec(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "23:50", want: "0 50 23 * * *"},
		{in: "00:00", want: "0 0 0 * * *"},
		{in: "9:05", want: "0 5 9 * * *"},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "12", wantErr: true},
	}
	for _, tc := range cases {
		got, err := buildDailySpec(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%q: expected error, got spec %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: got spec %q, want %q", tc.in, got, tc.want)
		}
	}
}
