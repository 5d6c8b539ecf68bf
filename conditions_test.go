package drip

import (
	"encoding/json"
	"testing"

	"github.com/driphq/drip/errors"
)

func TestConditionParse(t *testing.T) {
	cond := NewCondition("vault", "pool", []byte{0, 0, 0, 0, 0, 0, 0, 1})

	ext, typ, data, err := cond.Parse()
	if err != nil {
		t.Fatalf("cannot parse: %+v", err)
	}
	if ext != "vault" || typ != "pool" {
		t.Fatalf("unexpected sections: %q %q", ext, typ)
	}
	if len(data) != 8 || data[7] != 1 {
		t.Fatalf("unexpected data: %x", data)
	}
}

func TestConditionValidate(t *testing.T) {
	cases := map[string]struct {
		cond    Condition
		wantErr *errors.Error
	}{
		"valid condition": {
			cond: NewCondition("qvote", "poll", []byte("some-id")),
		},
		"data with a newline byte": {
			cond: NewCondition("qvote", "poll", []byte{0x20, 0x01}),
		},
		"missing data": {
			cond:    Condition("vault/pool/"),
			wantErr: errors.ErrInput,
		},
		"extension too short": {
			cond:    NewCondition("ab", "pool", []byte("data")),
			wantErr: errors.ErrInput,
		},
		"garbage": {
			cond:    Condition("foobar"),
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.cond.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %+v", err)
				}
			} else if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestConditionAddressIsDeterministic(t *testing.T) {
	a := NewCondition("vault", "pool", []byte{1}).Address()
	b := NewCondition("vault", "pool", []byte{1}).Address()
	c := NewCondition("vault", "pool", []byte{2}).Address()

	if err := a.Validate(); err != nil {
		t.Fatalf("invalid address: %+v", err)
	}
	if !a.Equals(b) {
		t.Fatal("same condition must produce the same address")
	}
	if a.Equals(c) {
		t.Fatal("different conditions must produce different addresses")
	}
}

func TestAddressJSONRoundtrip(t *testing.T) {
	addr := NewCondition("contrib", "seq", []byte("x")).Address()

	raw, err := json.Marshal(addr)
	if err != nil {
		t.Fatalf("cannot marshal: %+v", err)
	}
	var got Address
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("cannot unmarshal: %+v", err)
	}
	if !addr.Equals(got) {
		t.Fatalf("address changed during the roundtrip: %s", got)
	}
}

func TestAddressUnmarshalJSONFormats(t *testing.T) {
	cond := NewCondition("vault", "pool", []byte{1, 2, 3})

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr Address
	}{
		"default hex": {
			json:     `"` + cond.Address().String() + `"`,
			wantAddr: cond.Address(),
		},
		"explicit hex": {
			json:     `"hex:` + cond.Address().String() + `"`,
			wantAddr: cond.Address(),
		},
		"condition format": {
			json:     `"cond:vault/pool/010203"`,
			wantAddr: cond.Address(),
		},
		"empty zeroes the address": {
			json:     `""`,
			wantAddr: nil,
		},
		"unknown format": {
			json:    `"base64:aaaa"`,
			wantErr: errors.ErrType,
		},
		"invalid hex": {
			json:    `"hex:zzzz"`,
			wantErr: errors.ErrInternal,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if tc.wantErr != nil {
				if err == nil {
					t.Fatal("expected an error")
				}
				if tc.wantErr != errors.ErrInternal && !tc.wantErr.Is(err) {
					t.Fatalf("unexpected error: %+v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %+v", err)
			}
			if !a.Equals(tc.wantAddr) {
				t.Fatalf("unexpected address: %s", a)
			}
		})
	}
}
