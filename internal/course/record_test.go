package course

import "testing"

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Algebra", "Algebra"},
		{"Linear Algebra II", "Linear_Algebra_II"},
		{"intro_to_go", "intro_to_go"},
		{"C++ (advanced)", "C_advanced"},
		{"../../etc/passwd", "etcpasswd"},
		{"数学", ""},
	}
	for _, tc := range cases {
		if got := SanitizeName(tc.in); got != tc.want {
			t.Fatalf("SanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
