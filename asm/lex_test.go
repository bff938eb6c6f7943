package asm

import "testing"

func TestIsRegister(t *testing.T) {
	for _, r := range []string{"r0", "r1", "r7"} {
		if !IsRegister(r) {
			t.Errorf("IsRegister(%q) = false, want true", r)
		}
	}
	for _, r := range []string{"r8", "R0", "reg1", "r"} {
		if IsRegister(r) {
			t.Errorf("IsRegister(%q) = true, want false", r)
		}
	}
}

func TestIsReserved(t *testing.T) {
	for _, n := range []string{"mov", "stop", "mcro", "mcroend", "data", "entry"} {
		if !IsReserved(n) {
			t.Errorf("IsReserved(%q) = false, want true", n)
		}
	}
	if IsReserved("counter") {
		t.Error("IsReserved(counter) = true, want false")
	}
}

func TestIsIdentifier(t *testing.T) {
	if !IsIdentifier("LOOP1", nil) {
		t.Error("expected LOOP1 to be a legal identifier")
	}
	if IsIdentifier("1LOOP", nil) {
		t.Error("identifiers must start with a letter")
	}
	if IsIdentifier("mov", nil) {
		t.Error("reserved words are not legal identifiers")
	}
	if IsIdentifier("r3", nil) {
		t.Error("register names are not legal identifiers")
	}
	long := "abcdefghijklmnopqrstuvwxyzabcde" // 31 chars
	if IsIdentifier(long, nil) {
		t.Error("identifiers longer than 30 characters are illegal")
	}
}

func TestParseIntRanges(t *testing.T) {
	if _, ok := ParseInt("511", NumData); !ok {
		t.Error("511 should be a valid DATA value")
	}
	if _, ok := ParseInt("512", NumData); ok {
		t.Error("512 should overflow a DATA value")
	}
	if _, ok := ParseInt("127", NumIns); !ok {
		t.Error("127 should be a valid INS immediate")
	}
	if _, ok := ParseInt("128", NumIns); ok {
		t.Error("128 should overflow an INS immediate")
	}
	if _, ok := ParseInt("12x", NumData); ok {
		t.Error("trailing garbage should be rejected")
	}
}

func TestValidateCommaList(t *testing.T) {
	if _, ok := ValidateCommaList(",1,2"); ok {
		t.Error("leading comma should be rejected")
	}
	if _, ok := ValidateCommaList("1,2,"); ok {
		t.Error("trailing comma should be rejected")
	}
	if _, ok := ValidateCommaList("1,,2"); ok {
		t.Error("consecutive commas should be rejected")
	}
	fields, ok := ValidateCommaList("1, 2 ,3")
	if !ok {
		t.Fatal("expected a well-formed list to validate")
	}
	want := []string{"1", "2", "3"}
	for i, w := range want {
		if fields[i] != w {
			t.Errorf("field %d = %q, want %q", i, fields[i], w)
		}
	}
}
