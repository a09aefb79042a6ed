package error

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSpecErrors_Error(t *testing.T) {
	cause := errors.New("cause")
	errs := SpecErrors{
		{Cause: cause, Row: 3, Col: 1},
		{Cause: cause, Detail: "detail", Row: 1, Col: 5},
		{Cause: cause, Row: 1, Col: 2},
	}
	expected := "1:2: error: cause\n1:5: error: cause: detail\n3:1: error: cause"
	if errs.Error() != expected {
		t.Fatalf("unexpected message; want: %q, got: %q", expected, errs.Error())
	}
	if errs[0].Row != 3 {
		t.Fatalf("Error must not reorder the errors")
	}
}

func TestSpecError_Error(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.txt")
	err := os.WriteFile(path, []byte("S : A B ;\nA : a | ;\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	cause := errors.New("an alternative cannot be empty")
	specErr := &SpecError{
		Cause:      cause,
		FilePath:   path,
		SourceName: "g.txt",
		Row:        2,
		Col:        7,
	}
	expected := "g.txt: 2:7: error: an alternative cannot be empty\n    A : a | ;"
	if specErr.Error() != expected {
		t.Fatalf("unexpected message; want: %q, got: %q", expected, specErr.Error())
	}
	if !errors.Is(specErr, cause) {
		t.Fatalf("a spec error must unwrap to its cause")
	}
}
