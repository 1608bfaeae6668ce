package errors

import "testing"

func TestFieldNil(t *testing.T) {
	if err := Field("Amount", nil, "must be positive"); err != nil {
		t.Fatalf("a nil error must stay nil, got %+v", err)
	}
	var nilErr *Error
	if err := Field("Amount", nilErr, "must be positive"); err != nil {
		t.Fatalf("a typed nil error must stay nil, got %+v", err)
	}
}

func TestFieldKeepsClass(t *testing.T) {
	err := Field("Beneficiary", ErrEmpty, "who gets the funds")
	if !ErrEmpty.Is(err) {
		t.Fatalf("field wrapping must not change the error class: %+v", err)
	}
}

func TestFieldErrors(t *testing.T) {
	cases := map[string]struct {
		err       error
		fieldName string
		wantLen   int
	}{
		"nil error": {
			err:       nil,
			fieldName: "Amount",
			wantLen:   0,
		},
		"not a field error": {
			err:       ErrState,
			fieldName: "Amount",
			wantLen:   0,
		},
		"single match": {
			err:       Field("Amount", ErrAmount, "negative"),
			fieldName: "Amount",
			wantLen:   1,
		},
		"name mismatch": {
			err:       Field("Amount", ErrAmount, "negative"),
			fieldName: "Beneficiary",
			wantLen:   0,
		},
		"wrapped match": {
			err:       Wrap(Field("Amount", ErrAmount, "negative"), "create"),
			fieldName: "Amount",
			wantLen:   1,
		},
		"match inside a bundle": {
			err: Append(
				Field("Amount", ErrAmount, "negative"),
				Field("Beneficiary", ErrEmpty, ""),
			),
			fieldName: "Beneficiary",
			wantLen:   1,
		},
		"several matches for one field": {
			err: Append(
				Field("Milestones.0", ErrAmount, "share too low"),
				Field("Milestones.0", ErrEmpty, "no description"),
				Field("Milestones.1", ErrAmount, "share too high"),
			),
			fieldName: "Milestones.0",
			wantLen:   2,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := FieldErrors(tc.err, tc.fieldName)
			if len(got) != tc.wantLen {
				t.Fatalf("want %d errors, got %d: %+v", tc.wantLen, len(got), got)
			}
		})
	}
}

func TestAppendFieldCollectsValidation(t *testing.T) {
	var errs error
	errs = AppendField(errs, "Amount", ErrAmount)
	errs = AppendField(errs, "Beneficiary", nil)
	errs = AppendField(errs, "Purpose", ErrEmpty)

	if !ErrAmount.Is(errs) || !ErrEmpty.Is(errs) {
		t.Fatalf("bundle lost member classes: %+v", errs)
	}
	if got := FieldErrors(errs, "Beneficiary"); len(got) != 0 {
		t.Fatalf("nil member must not be recorded: %+v", got)
	}
}
