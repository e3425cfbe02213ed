package persistence

import (
	"errors"
	"strings"
	"testing"
	"time"

	"saldo/internal/core"
)

func sampleTransactions() []core.Transaction {
	base := time.Date(2025, 6, 1, 9, 30, 15, 123456789, time.UTC)
	return []core.Transaction{
		{ID: "b", Description: "Coffee", Amount: core.Money{Cents: 450}, Type: core.Expense, Category: core.Food, Date: base.Add(time.Hour)},
		{ID: "a", Description: "Pay day", Amount: core.Money{Cents: 100000}, Type: core.Income, Category: core.Salary, Date: base},
	}
}

func TestEncodeShape(t *testing.T) {
	data, err := Encode(sampleTransactions()[:1])
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `[{"id":"b","description":"Coffee","amount":4.5,"type":"expense","category":"Food","date":"2025-06-01T10:30:15.123456789Z"}]`
	if string(data) != want {
		t.Fatalf("unexpected encoding:\n got %s\nwant %s", data, want)
	}

	empty, err := Encode(nil)
	if err != nil || string(empty) != "[]" {
		t.Fatalf("expected [] for empty sequence, got %s err=%v", empty, err)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	in := sampleTransactions()
	data, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d transactions, got %d", len(in), len(out))
	}
	for i := range in {
		if !in[i].Equal(out[i]) {
			t.Fatalf("transaction %d changed in round trip:\n in %+v\nout %+v", i, in[i], out[i])
		}
	}
}

func TestDecodeLongDescription(t *testing.T) {
	in := sampleTransactions()
	in[0].Description = strings.Repeat("weekly groceries at the market ", 40)
	data, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != len(in) || !out[0].Equal(in[0]) {
		t.Fatalf("long description did not round trip: %+v", out)
	}
}

func TestDecodeEmptyValues(t *testing.T) {
	for _, in := range []string{"", "  ", "null", "[]"} {
		txs, err := Decode([]byte(in))
		if err != nil || len(txs) != 0 {
			t.Fatalf("%q expected empty sequence, got %v err=%v", in, txs, err)
		}
	}
}

func TestDecodeCorrupt(t *testing.T) {
	valid := `{"id":"a","description":"Pay","amount":10,"type":"income","category":"Salary","date":"2025-01-01T00:00:00Z"}`
	cases := []struct {
		name string
		data string
	}{
		{"not json", `{{{`},
		{"object instead of array", `{"id":"a"}`},
		{"string amount", strings.Replace(`[`+valid+`]`, `"amount":10`, `"amount":"10"`, 1)},
		{"zero amount", strings.Replace(`[`+valid+`]`, `"amount":10`, `"amount":0`, 1)},
		{"amount past int64", strings.Replace(`[`+valid+`]`, `"amount":10`, `"amount":184467440737095517.16`, 1)},
		{"amount past max", strings.Replace(`[`+valid+`]`, `"amount":10`, `"amount":90071992547409.93`, 1)},
		{"sub cent amount", strings.Replace(`[`+valid+`]`, `"amount":10`, `"amount":4.555`, 1)},
		{"unknown type", strings.Replace(`[`+valid+`]`, `"income"`, `"gift"`, 1)},
		{"category of other type", strings.Replace(`[`+valid+`]`, `"Salary"`, `"Food"`, 1)},
		{"missing id", strings.Replace(`[`+valid+`]`, `"id":"a"`, `"id":""`, 1)},
		{"bad date", strings.Replace(`[`+valid+`]`, `2025-01-01T00:00:00Z`, `yesterday`, 1)},
		{"missing date", `[{"id":"a","description":"Pay","amount":10,"type":"income","category":"Salary"}]`},
		{"null record", `[null]`},
		{"duplicate id", `[` + valid + `,` + valid + `]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			txs, err := Decode([]byte(tc.data))
			if !errors.Is(err, ErrCorrupt) {
				t.Fatalf("expected ErrCorrupt, got %v", err)
			}
			if txs != nil {
				t.Fatalf("expected no transactions, got %v", txs)
			}
		})
	}
}
