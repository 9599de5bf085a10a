package auth

import "testing"

func TestHashPasswordAndCheckPasswordBcrypt(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "" {
		t.Fatalf("expected non-empty hash")
	}
	if !CheckPassword("s3cret", hash) {
		t.Fatalf("expected bcrypt password check to pass")
	}
	if CheckPassword("wrong", hash) {
		t.Fatalf("expected bcrypt password check to fail")
	}
	if CheckPassword("s3cret", "") {
		t.Fatalf("empty stored hash must never match")
	}
}

func TestValidatePassword(t *testing.T) {
	valid := "Str0ng#Password!"
	if err := ValidatePassword(valid); err != nil {
		t.Fatalf("expected valid password, got: %v", err)
	}
	cases := map[string]string{
		"short":             "short1!A",
		"missing uppercase": "alllowercase123!",
		"missing lowercase": "ALLUPPERCASE123!",
		"missing digits":    "NoDigitsHere!!!",
		"missing specials":  "NoSpecials1234",
	}
	for name, pw := range cases {
		if err := ValidatePassword(pw); err == nil {
			t.Fatalf("%s: expected %q to fail", name, pw)
		}
	}
}
