package git

import "testing"

func TestOutcomeKind_String(t *testing.T) {
	tests := []struct {
		kind     OutcomeKind
		expected string
	}{
		{OutcomeSuccess, "success"},
		{OutcomeFailure, "failure"},
		{OutcomeRateLimited, "rate_limited"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("OutcomeKind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSignature_Matches(t *testing.T) {
	sig := NewSignature("Connection refused", "ssh:")

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"both parts present", "ssh: connect to host example.com port 22: Connection refused", true},
		{"parts in any order", "Connection refused by ssh: daemon", true},
		{"only first part", "Connection refused", false},
		{"only second part", "ssh: handshake failed", false},
		{"neither part", "fatal: repository not found", false},
		{"empty input", "", false},
		{"case matters", "ssh: connection refused", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sig.Matches(tt.input); got != tt.expected {
				t.Errorf("Matches(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		exitCode int
		stderr   string
		expected OutcomeKind
	}{
		// Zero exit is success regardless of captured text.
		{"clean success", 0, "", OutcomeSuccess},
		{"success with noise on stderr", 0, "warning: redirecting to https://...", OutcomeSuccess},
		{"success with rate-limit-looking text", 0, "ssh: Connection refused", OutcomeSuccess},

		// Rate-limit signature takes precedence over generic failure.
		{"rate limited", 128, "ssh: connect to host git.example.com port 22: Connection refused\nfatal: Could not read from remote repository.", OutcomeRateLimited},
		{"rate limited with other error signatures too", 1, "error: failed to push some refs\nssh: connect: Connection refused", OutcomeRateLimited},

		// Generic failures.
		{"plain failure", 1, "error: failed to push some refs to 'origin'", OutcomeFailure},
		{"connection refused without ssh", 128, "fatal: unable to access: Connection refused", OutcomeFailure},
		{"ssh error without connection refused", 255, "ssh: Could not resolve hostname", OutcomeFailure},
		{"failure with empty stderr", 1, "", OutcomeFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.exitCode, tt.stderr); got != tt.expected {
				t.Errorf("Classify(%d, %q) = %v, want %v", tt.exitCode, tt.stderr, got, tt.expected)
			}
		})
	}
}
