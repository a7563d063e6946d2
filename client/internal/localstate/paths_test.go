package localstate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDataDir_Resolution(t *testing.T) {
	cases := []struct {
		name string
		home string
		xdg  string
		want func(tmp string) string
	}{
		{
			name: "explicit override wins",
			home: "override",
			xdg:  "xdg",
			want: func(tmp string) string { return filepath.Join(tmp, "override") },
		},
		{
			name: "xdg state home",
			xdg:  "xdg",
			want: func(tmp string) string { return filepath.Join(tmp, "xdg", appName) },
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tmp := t.TempDir()
			t.Setenv(envHome, "")
			t.Setenv(envXDG, "")
			if c.home != "" {
				t.Setenv(envHome, filepath.Join(tmp, c.home))
			}
			if c.xdg != "" {
				t.Setenv(envXDG, filepath.Join(tmp, c.xdg))
			}

			dir, err := DataDir()
			if err != nil {
				t.Fatalf("DataDir error: %v", err)
			}
			if want := c.want(tmp); dir != want {
				t.Fatalf("expected dir %s, got %s", want, dir)
			}
			if _, err := os.Stat(dir); err != nil {
				t.Fatalf("dir not created: %v", err)
			}
		})
	}
}

func TestDBPath(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(envHome, tmp)

	p, err := DBPath()
	if err != nil {
		t.Fatalf("DBPath error: %v", err)
	}
	if expected := filepath.Join(tmp, dbFilename); p != expected {
		t.Fatalf("expected path %s, got %s", expected, p)
	}
}
