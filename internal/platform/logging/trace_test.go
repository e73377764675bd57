package logging

import "testing"

func TestParseTraceparent(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		projectID string
		ok        bool
		sampled   bool
	}{
		{"sampled", "00-3d23d071b5bfd6579171efce907685cb-08f067aa0ba902b7-01", "test-project", true, true},
		{"not sampled", "00-3d23d071b5bfd6579171efce907685cb-08f067aa0ba902b7-00", "test-project", true, false},
		{"no project", "00-3d23d071b5bfd6579171efce907685cb-08f067aa0ba902b7-01", "", false, false},
		{"malformed", "trace/span;o=1", "test-project", false, false},
		{"empty", "", "test-project", false, false},
		{"short trace id", "00-3d23d071-08f067aa0ba902b7-01", "test-project", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc, ok := parseTraceparent(tt.header, tt.projectID)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if !ok {
				return
			}
			want := "projects/test-project/traces/3d23d071b5bfd6579171efce907685cb"
			if tc.resource != want {
				t.Fatalf("expected resource %q, got %q", want, tc.resource)
			}
			if tc.spanID != "08f067aa0ba902b7" {
				t.Fatalf("unexpected span ID %q", tc.spanID)
			}
			if tc.sampled != tt.sampled {
				t.Fatalf("expected sampled=%v, got %v", tt.sampled, tc.sampled)
			}
		})
	}
}

func TestTraceContextFields(t *testing.T) {
	tc := traceContext{resource: "projects/p/traces/t", spanID: "s", sampled: true}
	fields := tc.fields()
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	if fields[0].Key != "logging.googleapis.com/trace" || fields[0].String != "projects/p/traces/t" {
		t.Fatalf("unexpected trace field: %+v", fields[0])
	}
	if fields[2].Key != "logging.googleapis.com/trace_sampled" || fields[2].Integer != 1 {
		t.Fatalf("unexpected sampled field: %+v", fields[2])
	}
}
