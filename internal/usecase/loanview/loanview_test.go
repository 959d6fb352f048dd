package loanview

import (
	"math"
	"testing"
)

func TestWaiverOptions_NothingRemaining(t *testing.T) {
	for _, remaining := range []float64{0, -0.01, -500} {
		if got := WaiverOptions(remaining, 100); len(got) != 0 {
			t.Fatalf("WaiverOptions(%v, 100) = %v, want empty", remaining, got)
		}
	}
}

func TestWaiverOptions_Basic(t *testing.T) {
	got := WaiverOptions(1000, 100)
	want := []float64{100, 250, 500, 1000}
	if len(got) != len(want) {
		t.Fatalf("options = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("options[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWaiverOptions_InRangeAscendingDeduped(t *testing.T) {
	cases := []struct {
		remaining, monthly float64
	}{
		{1000, 100},
		{1000, 250},  // monthly collides with the 25% option
		{100, 100},   // monthly collides with the full amount
		{33.33, 10},  // cents rounding
		{0.01, 5000}, // monthly above remaining
		{99.996, 25},
		{7500.5, 325.75},
	}
	for _, tc := range cases {
		got := WaiverOptions(tc.remaining, tc.monthly)
		seen := map[float64]bool{}
		prev := 0.0
		for i, opt := range got {
			if opt <= 0 || opt > tc.remaining {
				t.Fatalf("WaiverOptions(%v, %v): option %v outside (0, remaining]", tc.remaining, tc.monthly, opt)
			}
			if i > 0 && opt <= prev {
				t.Fatalf("WaiverOptions(%v, %v): not strictly ascending: %v", tc.remaining, tc.monthly, got)
			}
			if seen[opt] {
				t.Fatalf("WaiverOptions(%v, %v): duplicate %v", tc.remaining, tc.monthly, opt)
			}
			if math.Abs(opt*100-math.Round(opt*100)) > 1e-6 {
				t.Fatalf("WaiverOptions(%v, %v): option %v not rounded to cents", tc.remaining, tc.monthly, opt)
			}
			seen[opt] = true
			prev = opt
		}
	}
}

func TestWaiverOptions_MonthlyNotOfferableWhenAboveRemaining(t *testing.T) {
	got := WaiverOptions(50, 5000)
	for _, opt := range got {
		if opt > 50 {
			t.Fatalf("option %v exceeds remaining balance", opt)
		}
	}
}

func TestWaiverOptionLabel(t *testing.T) {
	cases := []struct {
		amount, remaining float64
		want              string
	}{
		{250, 1000, "$250.00 (25% waiver)"},
		{1000, 1000, "$1,000.00 (100% waiver)"},
		{100, 1000, "$100.00 (10% waiver)"},
		{333.33, 1000, "$333.33 (33.3% waiver)"},
		{50, 0, "$50.00"}, // nothing remaining, bare amount
	}
	for _, tc := range cases {
		if got := WaiverOptionLabel(tc.amount, tc.remaining, "USD"); got != tc.want {
			t.Fatalf("WaiverOptionLabel(%v, %v) = %q, want %q", tc.amount, tc.remaining, got, tc.want)
		}
	}
}

func TestWaiverOptionLabel_NearIntegerPercent(t *testing.T) {
	// 249.9/1000 is 24.99%, within 0.05 of 25, so rendered as an integer.
	if got := WaiverOptionLabel(249.9, 1000, "USD"); got != "$249.90 (25% waiver)" {
		t.Fatalf("label = %q, want integer percent", got)
	}
	// 24.9% stays fractional.
	if got := WaiverOptionLabel(249, 1000, "USD"); got != "$249.00 (24.9% waiver)" {
		t.Fatalf("label = %q, want one-decimal percent", got)
	}
}

func TestProgress_Clamps(t *testing.T) {
	submitted, approved := Progress(100, 150, 120)
	if submitted != 100 || approved != 100 {
		t.Fatalf("Progress(100, 150, 120) = %v, %v, want 100, 100", submitted, approved)
	}
}

func TestProgress_ZeroTotal(t *testing.T) {
	submitted, approved := Progress(0, 50, 50)
	if submitted != 0 || approved != 0 {
		t.Fatalf("Progress(0, 50, 50) = %v, %v, want 0, 0", submitted, approved)
	}
}

func TestProgress_Partial(t *testing.T) {
	submitted, approved := Progress(200, 50, 25)
	if submitted != 25 || approved != 12.5 {
		t.Fatalf("Progress(200, 50, 25) = %v, %v, want 25, 12.5", submitted, approved)
	}
}

func TestExtractManageToken(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"abc123", "abc123"},
		{"  abc123  ", "abc123"},
		{"https://x.test/manage/tok-9", "tok-9"},
		{"https://x.test/manage/tok-9/extra", "tok-9"},
		{"http://x.test/manage/tok-9?q=1", "tok-9"},
		{"/manage/tok-9", "tok-9"},
		{"manage/tok-9", "tok-9"},
		{"x.test/manage/tok-9", "tok-9"},
		{"https://x.test/other/path", ""},
		{"https://x.test/manage", ""}, // nothing after the segment
		{"not a url and no slash", "not a url and no slash"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := ExtractManageToken(tc.in); got != tc.want {
			t.Fatalf("ExtractManageToken(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestReadableAction(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"payment.approved", "Payment Approved"},
		{"loan_completed", "Loan Completed"},
		{"waiver.applied_by_lender", "Waiver Applied By Lender"},
	}
	for _, tc := range cases {
		if got := ReadableAction(tc.in); got != tc.want {
			t.Fatalf("ReadableAction(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPayloadSummary(t *testing.T) {
	got := PayloadSummary(map[string]any{"amount": 50, "reason": "late"})
	want := "amount: 50 • reason: late"
	if got != want {
		t.Fatalf("PayloadSummary = %q, want %q", got, want)
	}
	if got := PayloadSummary(nil); got != "" {
		t.Fatalf("PayloadSummary(nil) = %q, want empty", got)
	}
}
