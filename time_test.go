package drip

import (
	"encoding/json"
	"testing"
	"time"
)

func TestUnixTimeUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		raw      string
		wantErr  bool
		wantTime UnixTime
	}{
		"number": {
			raw:      "1234567890",
			wantTime: 1234567890,
		},
		"time string": {
			raw:      `"2009-02-13T23:31:30Z"`,
			wantTime: 1234567890,
		},
		"negative number": {
			raw:     "-1",
			wantErr: true,
		},
		"garbage": {
			raw:     `"not a time"`,
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixTime
			err := json.Unmarshal([]byte(tc.raw), &got)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %+v", err)
			}
			if got != tc.wantTime {
				t.Fatalf("unexpected time: %d", got)
			}
		})
	}
}

func TestUnixTimeAdd(t *testing.T) {
	base := UnixTime(100)
	if got := base.Add(90 * time.Second); got != 190 {
		t.Fatalf("unexpected time: %d", got)
	}
	// Sub-second granularity is dropped.
	if got := base.Add(900 * time.Millisecond); got != 100 {
		t.Fatalf("unexpected time: %d", got)
	}
}

func TestAsUnixTimeRoundtrip(t *testing.T) {
	now := time.Now()
	if got := AsUnixTime(now).Time().Unix(); got != now.Unix() {
		t.Fatalf("unexpected unix time: %d", got)
	}
}

func TestUnixDurationUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		raw     string
		wantDur UnixDuration
		wantErr bool
	}{
		"number of seconds": {
			raw:     "600",
			wantDur: 600,
		},
		"duration string": {
			raw:     `"10m"`,
			wantDur: 600,
		},
		"garbage": {
			raw:     `"never"`,
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixDuration
			err := json.Unmarshal([]byte(tc.raw), &got)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %+v", err)
			}
			if got != tc.wantDur {
				t.Fatalf("unexpected duration: %d", got)
			}
		})
	}
}
