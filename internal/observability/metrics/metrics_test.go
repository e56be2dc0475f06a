package metrics

import "testing"

func TestNormalizePath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/healthz", "/healthz"},
		{"/v1/analyses", "/v1/analyses"},
		{"/v1/analyses/1b4e28ba-2fa1-11d2-883f-0016d3cca427", "/v1/analyses/{analysis_id}"},
		{"/v1/analyses/1b4e28ba-2fa1-11d2-883f-0016d3cca427/export", "/v1/analyses/{analysis_id}/export"},
		{"/v1/documents/check", "/v1/documents/check"},
	}
	for _, tc := range cases {
		if got := normalizePath(tc.in); got != tc.want {
			t.Fatalf("normalizePath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
