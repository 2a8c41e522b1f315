package session

import (
	"testing"
	"time"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input string
		want  Mode
	}{
		{"", ModePlain},
		{"plain", ModePlain},
		{"JDBC", ModeJDBC},
		{"Odbc", ModeODBC},
		{"cli", ModeCLI},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if err != nil {
			t.Fatalf("ParseMode(%q) failed: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	if _, err := ParseMode("shell"); err == nil || err.Error() != `unknown mode "shell"` {
		t.Fatalf("expected unknown mode error, got %v", err)
	}
}

func TestTimeZone(t *testing.T) {
	var nilCfg *Configuration
	if nilCfg.TimeZone() != time.UTC {
		t.Error("nil configuration should report UTC")
	}
	if (&Configuration{}).TimeZone() != time.UTC {
		t.Error("unset zone should report UTC")
	}

	zone := time.FixedZone("X", 3600)
	base := Default()
	cfg := base.WithZone(zone)
	if cfg.TimeZone() != zone {
		t.Errorf("WithZone: got %v", cfg.TimeZone())
	}
	if base.Zone != time.UTC {
		t.Errorf("WithZone modified its receiver: %v", base.Zone)
	}
	if cfg.PageSize != base.PageSize || cfg.Mode != base.Mode {
		t.Error("WithZone should keep the other settings")
	}
}
