package util

import "testing"

func TestPtr(t *testing.T) {
	p := Ptr(false)
	if p == nil || *p {
		t.Fatalf("expected pointer to false, got %v", p)
	}
	q := Ptr(false)
	if p == q {
		t.Error("expected distinct pointers")
	}
}

func TestDeref(t *testing.T) {
	var nilCount *int64
	tests := []struct {
		name string
		p    *int64
		def  int64
		want int64
		or   int64
	}{
		{"nil", nilCount, 7, 0, 7},
		{"set", Ptr[int64](3), 7, 3, 3},
		{"zero", Ptr[int64](0), 7, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Deref(tt.p); got != tt.want {
				t.Errorf("Deref: expected %d, got %d", tt.want, got)
			}
			if got := DerefOr(tt.p, tt.def); got != tt.or {
				t.Errorf("DerefOr: expected %d, got %d", tt.or, got)
			}
		})
	}
}
