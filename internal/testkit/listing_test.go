package testkit

import (
	"reflect"
	"strings"
	"testing"
)

const wellFormed = `; header

org 0
mov r5, #program_exit
bal FUNC_main
program_exit nop
bal program_exit
FUNC_main ld r1, [r6, #2]
movs r2, r1, asr
add r6, r6, #-5
GLOBAL_x DEFW 40000
`

func TestCheckListingWellFormed(t *testing.T) {
	l, err := CheckListing(wellFormed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Org != "0" || l.Instructions != 8 {
		t.Fatalf("unexpected listing %+v", l)
	}
	if got := l.Undefined(); len(got) != 0 {
		t.Fatalf("unexpected undefined labels %v", got)
	}
	if l.Labels["FUNC_main"] != 8 {
		t.Fatalf("FUNC_main line = %d", l.Labels["FUNC_main"])
	}
}

func TestCheckListingUndefined(t *testing.T) {
	l, err := CheckListing("org 0\nbal FUNC_main\nld r1, GLOBAL_y\n")
	if err != nil {
		t.Fatal(err)
	}
	if got := l.Undefined(); !reflect.DeepEqual(got, []string{"FUNC_main", "GLOBAL_y"}) {
		t.Fatalf("Undefined() = %v", got)
	}
}

func TestCheckListingViolations(t *testing.T) {
	cases := []struct {
		name, text, want string
	}{
		{"duplicate label", "org 0\na nop\na nop\n", "already defined"},
		{"two labels", "org 0\na b nop\n", "share a line"},
		{"dangling label", "org 0\nnop\na", "labels nothing"},
		{"wide immediate", "org 0\nmov r1, #16\n", "outside"},
		{"missing org", "nop\n", "before org"},
		{"late org", "org 0\nnop\norg 4\n", "second org"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CheckListing(tc.text)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q, got %v", tc.want, err)
			}
		})
	}
}
