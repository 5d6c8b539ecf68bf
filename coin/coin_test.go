package coin

import (
	"math"
	"testing"

	"github.com/driphq/drip/errors"
)

func TestCoinAdd(t *testing.T) {
	cases := map[string]struct {
		a, b    Coin
		wantErr *errors.Error
		want    Coin
	}{
		"same currency": {
			a:    NewCoin(100, "DRIP"),
			b:    NewCoin(23, "DRIP"),
			want: NewCoin(123, "DRIP"),
		},
		"negative amount": {
			a:    NewCoin(100, "DRIP"),
			b:    NewCoin(-40, "DRIP"),
			want: NewCoin(60, "DRIP"),
		},
		"currency mismatch": {
			a:       NewCoin(1, "DRIP"),
			b:       NewCoin(1, "USDX"),
			wantErr: errors.ErrCurrency,
		},
		"positive overflow": {
			a:       NewCoin(math.MaxInt64, "DRIP"),
			b:       NewCoin(1, "DRIP"),
			wantErr: errors.ErrOverflow,
		},
		"negative overflow": {
			a:       NewCoin(math.MinInt64, "DRIP"),
			b:       NewCoin(-1, "DRIP"),
			wantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.a.Add(tc.b)
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("unexpected error: %+v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %+v", err)
			}
			if !got.Equals(tc.want) {
				t.Fatalf("unexpected result: %s", got)
			}
		})
	}
}

func TestCoinDivide(t *testing.T) {
	cases := map[string]struct {
		total    Coin
		pieces   int64
		wantOne  Coin
		wantRest Coin
		wantErr  *errors.Error
	}{
		"even split": {
			total:    NewCoin(100, "DRIP"),
			pieces:   4,
			wantOne:  NewCoin(25, "DRIP"),
			wantRest: NewCoin(0, "DRIP"),
		},
		"split with leftover": {
			total:    NewCoin(100, "DRIP"),
			pieces:   3,
			wantOne:  NewCoin(33, "DRIP"),
			wantRest: NewCoin(1, "DRIP"),
		},
		"zero pieces": {
			total:   NewCoin(100, "DRIP"),
			pieces:  0,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			one, rest, err := tc.total.Divide(tc.pieces)
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("unexpected error: %+v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %+v", err)
			}
			if !one.Equals(tc.wantOne) || !rest.Equals(tc.wantRest) {
				t.Fatalf("unexpected result: %s %s", one, rest)
			}
		})
	}
}

func TestCoinMultiply(t *testing.T) {
	got, err := NewCoin(7, "DRIP").Multiply(6)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if !got.Equals(NewCoin(42, "DRIP")) {
		t.Fatalf("unexpected result: %s", got)
	}

	if _, err := NewCoin(math.MaxInt64/2, "DRIP").Multiply(3); !errors.ErrOverflow.Is(err) {
		t.Fatalf("expected overflow, got %+v", err)
	}
}

func TestCoinValidate(t *testing.T) {
	if err := NewCoin(1, "DRIP").Validate(); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	for _, ticker := range []string{"", "ab", "TOOLONG", "dr1p"} {
		if err := NewCoin(1, ticker).Validate(); !errors.ErrCurrency.Is(err) {
			t.Fatalf("ticker %q: unexpected error: %+v", ticker, err)
		}
	}
}
